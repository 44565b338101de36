package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	err := store.Set("embedding.model", "bge-m3")
	require.NoError(t, err)

	val, ok := store.Get("embedding.model")
	require.True(t, ok)
	assert.Equal(t, "bge-m3", val)
}

func TestConfigStore_GetString(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("llm.provider", "ollama"))
	require.NoError(t, store.Set("chunking.chunk_size", 500))

	assert.Equal(t, "ollama", store.GetString("llm.provider"))
	assert.Equal(t, "", store.GetString("missing"))
	assert.Equal(t, "", store.GetString("chunking.chunk_size"))
}

func TestConfigStore_GetInt(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("chunking.chunk_size", 500))
	require.NoError(t, store.Set("chunking.chunk_overlap", int64(50)))
	require.NoError(t, store.Set("retrieval.max_context_chunks", float64(3)))

	assert.Equal(t, 500, store.GetInt("chunking.chunk_size"))
	assert.Equal(t, 50, store.GetInt("chunking.chunk_overlap"))
	assert.Equal(t, 3, store.GetInt("retrieval.max_context_chunks"))
	assert.Equal(t, 0, store.GetInt("missing"))
}

func TestConfigStore_GetFloat(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("ingest.embeds_per_second", 2.5))
	require.NoError(t, store.Set("ingest.workers", 4))
	require.NoError(t, store.Set("other", int64(7)))

	assert.Equal(t, 2.5, store.GetFloat("ingest.embeds_per_second"))
	assert.Equal(t, 4.0, store.GetFloat("ingest.workers"))
	assert.Equal(t, 7.0, store.GetFloat("other"))
	assert.Equal(t, 0.0, store.GetFloat("missing"))
}

func TestConfigStore_GetBool(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("flag", true))

	assert.True(t, store.GetBool("flag"))
	assert.False(t, store.GetBool("missing"))
}

func TestConfigStore_GetStringSlice(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("materials.paths", []string{"/notes", "/slides"}))
	require.NoError(t, store.Set("materials.extensions", []any{".txt", ".md"}))

	assert.Equal(t, []string{"/notes", "/slides"}, store.GetStringSlice("materials.paths"))
	assert.Equal(t, []string{".txt", ".md"}, store.GetStringSlice("materials.extensions"))
	assert.Nil(t, store.GetStringSlice("missing"))
}

func TestConfigStore_SaveLoadAreNoOps(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("key", "value"))

	require.NoError(t, store.Save())
	require.NoError(t, store.Load())

	assert.Equal(t, "value", store.GetString("key"))
	assert.Equal(t, ":memory:", store.Path())
}
