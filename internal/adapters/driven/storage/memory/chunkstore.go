package memory

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/studymate-labs/studymate-cli/internal/core/domain"
	"github.com/studymate-labs/studymate-cli/internal/core/ports/driven"
)

// Ensure ChunkStore implements the interface.
var _ driven.ChunkStore = (*ChunkStore)(nil)

// ChunkStore is an in-memory implementation of driven.ChunkStore. It
// mirrors the SQLite store's semantics: dimensionality fixed by the first
// successful write, all-or-nothing writes, cosine ranking with insertion
// order breaking ties.
type ChunkStore struct {
	mu         sync.RWMutex
	entries    map[string]storedEntry
	dimensions int
	nextSeq    int64
}

type storedEntry struct {
	entry domain.StoreEntry
	// seq orders entries by insertion for deterministic tie-breaking.
	seq int64
}

// NewChunkStore creates a new in-memory chunk store.
func NewChunkStore() *ChunkStore {
	return &ChunkStore{
		entries: make(map[string]storedEntry),
	}
}

// Put upserts entries keyed by chunk id. The call is all-or-nothing: a
// dimension mismatch anywhere rejects the whole batch.
func (s *ChunkStore) Put(_ context.Context, entries []domain.StoreEntry) error {
	if len(entries) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkDimensions(entries); err != nil {
		return err
	}
	s.putLocked(entries)
	return nil
}

// ReplaceSource atomically swaps all chunks of one source for the given
// entries. On error the previous chunks are untouched.
func (s *ChunkStore) ReplaceSource(_ context.Context, source string, entries []domain.StoreEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkDimensions(entries); err != nil {
		return err
	}
	for id, stored := range s.entries {
		if stored.entry.Chunk.Source == source {
			delete(s.entries, id)
		}
	}
	s.putLocked(entries)
	return nil
}

// DeleteSource removes all chunks of a source.
func (s *ChunkStore) DeleteSource(_ context.Context, source string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, stored := range s.entries {
		if stored.entry.Chunk.Source == source {
			delete(s.entries, id)
		}
	}
	return nil
}

// Query returns the top-k entries by cosine similarity, descending.
func (s *ChunkStore) Query(_ context.Context, embedding []float32, k int) ([]domain.ChunkHit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.entries) == 0 || k <= 0 {
		return []domain.ChunkHit{}, nil
	}
	if len(embedding) != s.dimensions {
		return nil, &domain.SchemaMismatchError{Expected: s.dimensions, Actual: len(embedding)}
	}

	type scored struct {
		hit domain.ChunkHit
		seq int64
	}
	candidates := make([]scored, 0, len(s.entries))
	for _, stored := range s.entries {
		candidates = append(candidates, scored{
			hit: domain.ChunkHit{
				Chunk:      stored.entry.Chunk,
				Similarity: cosineSimilarity(embedding, stored.entry.Embedding),
			},
			seq: stored.seq,
		})
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].hit.Similarity != candidates[j].hit.Similarity {
			return candidates[i].hit.Similarity > candidates[j].hit.Similarity
		}
		return candidates[i].seq < candidates[j].seq
	})

	if k > len(candidates) {
		k = len(candidates)
	}
	hits := make([]domain.ChunkHit, k)
	for i := 0; i < k; i++ {
		hits[i] = candidates[i].hit
	}
	return hits, nil
}

// Reset drops all entries and the recorded dimensionality.
func (s *ChunkStore) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[string]storedEntry)
	s.dimensions = 0
	s.nextSeq = 0
	return nil
}

// Count returns the number of stored entries.
func (s *ChunkStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries), nil
}

// Sources returns the distinct source identifiers currently stored.
func (s *ChunkStore) Sources(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]struct{})
	sources := make([]string, 0)
	for _, stored := range s.entries {
		if _, ok := seen[stored.entry.Chunk.Source]; ok {
			continue
		}
		seen[stored.entry.Chunk.Source] = struct{}{}
		sources = append(sources, stored.entry.Chunk.Source)
	}
	sort.Strings(sources)
	return sources, nil
}

// Dimensions returns the schematised dimensionality, or 0 when empty.
func (s *ChunkStore) Dimensions(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dimensions, nil
}

// Close releases resources. No-op for the in-memory store.
func (s *ChunkStore) Close() error {
	return nil
}

// checkDimensions validates a batch against the store schema before any
// entry is applied. Caller holds the write lock.
func (s *ChunkStore) checkDimensions(entries []domain.StoreEntry) error {
	expected := s.dimensions
	for _, entry := range entries {
		// An empty vector would read as "schema unset" below and slip
		// past the all-or-nothing check.
		if len(entry.Embedding) == 0 {
			return fmt.Errorf("%w: chunk %s has an empty embedding", domain.ErrInvalidInput, entry.Chunk.ID)
		}
		if expected == 0 {
			expected = len(entry.Embedding)
			continue
		}
		if len(entry.Embedding) != expected {
			return &domain.SchemaMismatchError{Expected: expected, Actual: len(entry.Embedding)}
		}
	}
	return nil
}

// putLocked applies validated entries. Caller holds the write lock.
func (s *ChunkStore) putLocked(entries []domain.StoreEntry) {
	for _, entry := range entries {
		if s.dimensions == 0 {
			s.dimensions = len(entry.Embedding)
		}
		seq := s.nextSeq
		if existing, ok := s.entries[entry.Chunk.ID]; ok {
			// Upsert keeps the original insertion slot.
			seq = existing.seq
		} else {
			s.nextSeq++
		}
		s.entries[entry.Chunk.ID] = storedEntry{entry: entry, seq: seq}
	}
}

// cosineSimilarity computes cosine similarity between two vectors of
// equal length. Zero vectors yield 0.
func cosineSimilarity(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
