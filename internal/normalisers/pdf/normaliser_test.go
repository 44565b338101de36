package pdf

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studymate-labs/studymate-cli/internal/core/domain"
)

func TestNew(t *testing.T) {
	normaliser := New()
	require.NotNil(t, normaliser)
	assert.IsType(t, &Normaliser{}, normaliser)
}

func TestSupportedExtensions(t *testing.T) {
	normaliser := New()
	exts := normaliser.SupportedExtensions()

	assert.Equal(t, []string{".pdf"}, exts)
}

func TestNormalise_NilMaterial(t *testing.T) {
	normaliser := New()
	ctx := context.Background()

	text, err := normaliser.Normalise(ctx, nil)
	assert.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, text)
}

func TestNormalise_NotAPDF(t *testing.T) {
	normaliser := New()
	ctx := context.Background()

	material := domain.NewMaterial("/notes/broken.pdf", []byte("this is not a pdf"))

	text, err := normaliser.Normalise(ctx, &material)
	assert.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, text)
}

func TestNormalise_EmptyContent(t *testing.T) {
	normaliser := New()
	ctx := context.Background()

	material := domain.NewMaterial("/notes/empty.pdf", nil)

	text, err := normaliser.Normalise(ctx, &material)
	assert.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, text)
}
