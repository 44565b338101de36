package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studymate-labs/studymate-cli/internal/core/domain"
)

func TestAnswerService_ListAndGet(t *testing.T) {
	store := &mockAnswerStore{}
	svc := NewAnswerService(store)
	ctx := context.Background()

	require.NoError(t, store.SaveAnswer(ctx, &domain.Answer{ID: "a1", Body: "first", CreatedAt: time.Now()}))
	require.NoError(t, store.SaveAnswer(ctx, &domain.Answer{ID: "a2", Body: "second", CreatedAt: time.Now()}))

	answers, err := svc.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, answers, 2)
	assert.Equal(t, "a2", answers[0].ID, "newest first")

	answer, err := svc.Get(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, "first", answer.Body)

	_, err = svc.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAnswerService_ExportWritesSafeFilename(t *testing.T) {
	store := &mockAnswerStore{}
	svc := NewAnswerService(store)
	ctx := context.Background()
	dir := t.TempDir()

	require.NoError(t, store.SaveAnswer(ctx, &domain.Answer{
		ID:    "a1",
		Title: `Essay: "Cells/Life"`,
		Body:  "answer body",
	}))

	path, err := svc.Export(ctx, "a1", dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "Essay_ _Cells_Life_.txt"), path)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "answer body\n", string(content))
}

func TestSafeFileName_ReplacesInvalidCharacters(t *testing.T) {
	assert.Equal(t, "a_b_c_d_e_f_g_h_i_j",
		domain.SafeFileName(`a<b>c:d"e/f\g|h?i*j`))
}
