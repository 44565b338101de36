package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/studymate-labs/studymate-cli/internal/core/domain"
	"github.com/studymate-labs/studymate-cli/internal/core/ports/driven"
	"github.com/studymate-labs/studymate-cli/internal/core/ports/driving"
	"github.com/studymate-labs/studymate-cli/internal/logger"
)

// Ensure RetrievalService implements the interface.
var _ driving.RetrievalService = (*RetrievalService)(nil)

// embedTimeout bounds a single query embedding call.
const embedTimeout = 30 * time.Second

// RetrievalService finds stored chunks relevant to a query by embedding
// the query and ranking stored entries by cosine similarity.
type RetrievalService struct {
	chunkStore       driven.ChunkStore
	embeddingService driven.EmbeddingService
	maxContextChunks int
}

// NewRetrievalService creates a new retrieval service. The embedding
// service may be nil, in which case every retrieval degrades to an empty
// result. maxContextChunks <= 0 falls back to the default.
func NewRetrievalService(
	chunkStore driven.ChunkStore,
	embeddingService driven.EmbeddingService,
	maxContextChunks int,
) *RetrievalService {
	if maxContextChunks <= 0 {
		maxContextChunks = domain.DefaultMaxContextChunks
	}
	return &RetrievalService{
		chunkStore:       chunkStore,
		embeddingService: embeddingService,
		maxContextChunks: maxContextChunks,
	}
}

// Retrieve embeds the query and returns up to k chunks ranked by cosine
// similarity, descending. A failed or unconfigured embedder is a degraded
// condition, not an error: the caller proceeds with no context. Store
// failures do propagate, because answering from a broken index would be
// silently wrong rather than visibly degraded.
func (s *RetrievalService) Retrieve(ctx context.Context, query string, k int) ([]domain.ChunkHit, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	if k <= 0 {
		k = s.maxContextChunks
	}

	count, err := s.chunkStore.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	if count == 0 {
		logger.Debug("Retrieval: empty store, no context available")
		return nil, nil
	}
	if k > count {
		k = count
	}

	if s.embeddingService == nil {
		logger.Degraded("Retrieval skipped: no embedding service configured; answering without course context")
		return nil, nil
	}

	embedCtx, cancel := context.WithTimeout(ctx, embedTimeout)
	defer cancel()

	vector, err := s.embeddingService.Embed(embedCtx, query)
	if err != nil {
		logger.Degraded("Retrieval degraded: query embedding failed (%v); answering without course context", err)
		return nil, nil
	}
	if len(vector) == 0 {
		logger.Degraded("Retrieval degraded: embedder returned an empty vector; answering without course context")
		return nil, nil
	}

	hits, err := s.chunkStore.Query(ctx, vector, k)
	if err != nil {
		return nil, fmt.Errorf("query chunk store: %w", err)
	}

	logger.Debug("Retrieval: %d hits for query (k=%d)", len(hits), k)
	return hits, nil
}

// chunkTexts extracts the chunk contents from hits, in rank order.
func chunkTexts(hits []domain.ChunkHit) []string {
	if len(hits) == 0 {
		return nil
	}
	texts := make([]string, len(hits))
	for i := range hits {
		texts[i] = hits[i].Chunk.Content
	}
	return texts
}

// chunkSources returns the distinct sources of the hits, in rank order.
func chunkSources(hits []domain.ChunkHit) []string {
	var sources []string
	seen := make(map[string]bool)
	for i := range hits {
		src := hits[i].Chunk.Source
		if src == "" || seen[src] {
			continue
		}
		seen[src] = true
		sources = append(sources, src)
	}
	return sources
}
