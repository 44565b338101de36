package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studymate-labs/studymate-cli/internal/core/domain"
)

func storedEntry(source string, seq int, content string, vec []float32) domain.StoreEntry {
	return domain.StoreEntry{
		Chunk:     domain.NewChunk(source, seq, content),
		Embedding: vec,
	}
}

func TestRetrieve_ReturnsRankedHits(t *testing.T) {
	store := newMockChunkStore()
	require.NoError(t, store.Put(context.Background(), []domain.StoreEntry{
		storedEntry("notes.txt", 0, "first", []float32{1, 0}),
		storedEntry("notes.txt", 1, "second", []float32{0, 1}),
	}))
	store.queryHits = []domain.ChunkHit{
		{Chunk: domain.NewChunk("notes.txt", 0, "first"), Similarity: 0.9},
		{Chunk: domain.NewChunk("notes.txt", 1, "second"), Similarity: 0.4},
	}

	svc := NewRetrievalService(store, &mockEmbedder{vector: []float32{1, 0}}, 3)
	hits, err := svc.Retrieve(context.Background(), "query", 2)

	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "first", hits[0].Chunk.Content)
	assert.Greater(t, hits[0].Similarity, hits[1].Similarity)
}

func TestRetrieve_EmbedderFailureDegradesToEmpty(t *testing.T) {
	store := newMockChunkStore()
	require.NoError(t, store.Put(context.Background(), []domain.StoreEntry{
		storedEntry("notes.txt", 0, "first", []float32{1, 0}),
	}))

	embedder := &mockEmbedder{err: errors.New("connection refused")}
	svc := NewRetrievalService(store, embedder, 3)

	hits, err := svc.Retrieve(context.Background(), "query", 3)

	require.NoError(t, err, "embedding failure must not surface as an error")
	assert.Empty(t, hits)
}

func TestRetrieve_EmptyVectorDegradesToEmpty(t *testing.T) {
	store := newMockChunkStore()
	require.NoError(t, store.Put(context.Background(), []domain.StoreEntry{
		storedEntry("notes.txt", 0, "first", []float32{1, 0}),
	}))

	svc := NewRetrievalService(store, &mockEmbedder{vector: nil}, 3)
	hits, err := svc.Retrieve(context.Background(), "query", 3)

	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestRetrieve_NilEmbedderDegradesToEmpty(t *testing.T) {
	store := newMockChunkStore()
	require.NoError(t, store.Put(context.Background(), []domain.StoreEntry{
		storedEntry("notes.txt", 0, "first", []float32{1, 0}),
	}))

	svc := NewRetrievalService(store, nil, 3)
	hits, err := svc.Retrieve(context.Background(), "query", 3)

	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestRetrieve_EmptyStoreSkipsEmbedding(t *testing.T) {
	embedder := &mockEmbedder{vector: []float32{1}}
	svc := NewRetrievalService(newMockChunkStore(), embedder, 3)

	hits, err := svc.Retrieve(context.Background(), "query", 3)

	require.NoError(t, err)
	assert.Empty(t, hits)
	assert.Zero(t, embedder.calls, "no point embedding against an empty store")
}

func TestRetrieve_DefaultsAndClampsK(t *testing.T) {
	store := newMockChunkStore()
	require.NoError(t, store.Put(context.Background(), []domain.StoreEntry{
		storedEntry("notes.txt", 0, "only", []float32{1, 0}),
	}))
	store.queryHits = []domain.ChunkHit{
		{Chunk: domain.NewChunk("notes.txt", 0, "only"), Similarity: 1},
	}

	svc := NewRetrievalService(store, &mockEmbedder{vector: []float32{1, 0}}, 3)

	// k <= 0 falls back to the configured maximum, then clamps to the
	// store's entry count (1 here).
	hits, err := svc.Retrieve(context.Background(), "query", -5)
	require.NoError(t, err)
	assert.Len(t, hits, 1)

	hits, err = svc.Retrieve(context.Background(), "query", 100)
	require.NoError(t, err)
	assert.Len(t, hits, 1)
}

func TestRetrieve_StoreErrorPropagates(t *testing.T) {
	store := newMockChunkStore()
	store.countErr = errors.New("disk gone")

	svc := NewRetrievalService(store, &mockEmbedder{vector: []float32{1}}, 3)
	_, err := svc.Retrieve(context.Background(), "query", 3)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
}

func TestRetrieve_BlankQueryReturnsNothing(t *testing.T) {
	svc := NewRetrievalService(newMockChunkStore(), &mockEmbedder{vector: []float32{1}}, 3)

	hits, err := svc.Retrieve(context.Background(), "   ", 3)

	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestChunkSources_DistinctInRankOrder(t *testing.T) {
	hits := []domain.ChunkHit{
		{Chunk: domain.NewChunk("b.txt", 0, "x")},
		{Chunk: domain.NewChunk("a.txt", 0, "y")},
		{Chunk: domain.NewChunk("b.txt", 1, "z")},
	}

	assert.Equal(t, []string{"b.txt", "a.txt"}, chunkSources(hits))
}
