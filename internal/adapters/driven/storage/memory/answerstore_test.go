package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studymate-labs/studymate-cli/internal/core/domain"
)

func TestAnswerStore_SaveAndGet(t *testing.T) {
	store := NewAnswerStore()
	ctx := context.Background()

	answer := &domain.Answer{
		ID:          "ans-1",
		Kind:        domain.AnswerKindQuestion,
		Question:    "What is mitosis?",
		Body:        "Cell division.",
		UsedContext: true,
		Model:       "llama3.2",
		CreatedAt:   time.Now(),
	}
	err := store.SaveAnswer(ctx, answer)
	require.NoError(t, err)

	got, err := store.GetAnswer(ctx, "ans-1")
	require.NoError(t, err)
	assert.Equal(t, "What is mitosis?", got.Question)
	assert.True(t, got.UsedContext)
}

func TestAnswerStore_Get_NotFound(t *testing.T) {
	store := NewAnswerStore()

	_, err := store.GetAnswer(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAnswerStore_List_NewestFirst(t *testing.T) {
	store := NewAnswerStore()
	ctx := context.Background()

	base := time.Now()
	for i, id := range []string{"old", "mid", "new"} {
		err := store.SaveAnswer(ctx, &domain.Answer{
			ID:        id,
			Kind:      domain.AnswerKindQuestion,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	answers, err := store.ListAnswers(ctx, 0)
	require.NoError(t, err)
	require.Len(t, answers, 3)
	assert.Equal(t, "new", answers[0].ID)
	assert.Equal(t, "mid", answers[1].ID)
	assert.Equal(t, "old", answers[2].ID)
}

func TestAnswerStore_List_Limit(t *testing.T) {
	store := NewAnswerStore()
	ctx := context.Background()

	base := time.Now()
	for i := 0; i < 5; i++ {
		err := store.SaveAnswer(ctx, &domain.Answer{
			ID:        domain.ChunkID("ans", i),
			Kind:      domain.AnswerKindAssignment,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		})
		require.NoError(t, err)
	}

	answers, err := store.ListAnswers(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, answers, 2)
}
