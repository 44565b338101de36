package driven

import (
	"context"

	"github.com/studymate-labs/studymate-cli/internal/core/domain"
)

// ChunkStore persists chunks with their embeddings and answers similarity
// queries. Backed by SQLite by default; an in-memory implementation with
// identical semantics exists for tests and must be selected explicitly.
//
// All entries in one store instance share a single embedding
// dimensionality, fixed by the first successful write. Writes carrying a
// different dimensionality fail whole with domain.SchemaMismatchError.
type ChunkStore interface {
	// Put upserts entries keyed by Chunk.ID: re-ingesting an id
	// overwrites rather than duplicates. The call is all-or-nothing; on
	// any error no entry is applied.
	Put(ctx context.Context, entries []domain.StoreEntry) error

	// ReplaceSource atomically swaps all stored chunks of one source for
	// the given entries. The previous chunks remain queryable until the
	// replacement commits, so a failed refresh never leaves the source
	// without its old index.
	ReplaceSource(ctx context.Context, source string, entries []domain.StoreEntry) error

	// DeleteSource removes all chunks of a source.
	DeleteSource(ctx context.Context, source string) error

	// Query returns the top-k entries by cosine similarity to the query
	// embedding, descending, ties broken by insertion order. An empty
	// store yields an empty slice and no error.
	Query(ctx context.Context, embedding []float32, k int) ([]domain.ChunkHit, error)

	// Reset drops all entries and the recorded dimensionality.
	Reset(ctx context.Context) error

	// Count returns the number of stored entries.
	Count(ctx context.Context) (int, error)

	// Sources returns the distinct source identifiers currently stored.
	Sources(ctx context.Context) ([]string, error)

	// Dimensions returns the dimensionality the store is schematised to,
	// or 0 when the store is empty.
	Dimensions(ctx context.Context) (int, error)

	// Close releases resources.
	Close() error
}
