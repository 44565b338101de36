package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studymate-labs/studymate-cli/internal/adapters/driven/storage/memory"
	"github.com/studymate-labs/studymate-cli/internal/core/domain"
)

func newSettingsFixture() *SettingsService {
	return NewSettingsService(memory.NewConfigStore(), nil)
}

func TestSettings_GetReturnsDefaultsWhenUnset(t *testing.T) {
	svc := newSettingsFixture()

	settings, err := svc.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.StorageBackendSQLite, settings.Storage.Backend)
	assert.Equal(t, domain.DefaultChunkSize, settings.Chunking.ChunkSize)
	assert.Equal(t, domain.DefaultChunkOverlap, settings.Chunking.ChunkOverlap)
	assert.Equal(t, domain.DefaultMaxContextChunks, settings.Retrieval.MaxContextChunks)
	assert.Equal(t, domain.AIProviderOllama, settings.Embedding.Provider)
	assert.Equal(t, "bge-m3", settings.Embedding.Model)
	assert.Equal(t, domain.AIProviderOllama, settings.LLM.Provider)
}

func TestSettings_SaveRoundTrip(t *testing.T) {
	svc := newSettingsFixture()

	want := svc.GetDefaults()
	want.Storage.Backend = domain.StorageBackendMemory
	want.Materials.Paths = []string{"/tmp/materials"}
	want.Chunking.ChunkSize = 250
	want.Chunking.ChunkOverlap = 25
	want.Ingest.EmbedsPerSecond = 2.5
	want.LLM.TimeoutSeconds = 60

	require.NoError(t, svc.Save(&want))

	got, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.StorageBackendMemory, got.Storage.Backend)
	assert.Equal(t, []string{"/tmp/materials"}, got.Materials.Paths)
	assert.Equal(t, 250, got.Chunking.ChunkSize)
	assert.Equal(t, 25, got.Chunking.ChunkOverlap)
	assert.InDelta(t, 2.5, got.Ingest.EmbedsPerSecond, 0.001)
	assert.Equal(t, 60, got.LLM.TimeoutSeconds)
}

func TestSettings_SetEmbeddingProvider(t *testing.T) {
	svc := newSettingsFixture()

	// Cloud providers require a key.
	err := svc.SetEmbeddingProvider(domain.AIProviderOpenAI, "", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.NoError(t, svc.SetEmbeddingProvider(domain.AIProviderOpenAI, "", "sk-test"))

	settings, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.AIProviderOpenAI, settings.Embedding.Provider)
	assert.Equal(t, "text-embedding-3-small", settings.Embedding.Model, "default model filled in")
	assert.Equal(t, "sk-test", settings.Embedding.APIKey)
}

func TestSettings_SetLLMProviderRejectsUnknown(t *testing.T) {
	svc := newSettingsFixture()

	err := svc.SetLLMProvider(domain.AIProvider("mystery"), "", "")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettings_ValidateCatchesBadChunking(t *testing.T) {
	svc := newSettingsFixture()
	settings := svc.GetDefaults()
	settings.Chunking.ChunkSize = 50
	settings.Chunking.ChunkOverlap = 50
	require.NoError(t, svc.Save(&settings))

	err := svc.Validate()

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettings_ValidateConfigsWithoutValidator(t *testing.T) {
	svc := newSettingsFixture()

	assert.NoError(t, svc.ValidateEmbeddingConfig(context.Background()))
	assert.NoError(t, svc.ValidateLLMConfig(context.Background()))
}
