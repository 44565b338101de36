package driving

import (
	"context"

	"github.com/studymate-labs/studymate-cli/internal/core/domain"
)

// RetrievalService finds stored chunks relevant to a free-text query.
type RetrievalService interface {
	// Retrieve embeds the query and returns up to k chunks ranked by
	// similarity. An unavailable embedder degrades to an empty result
	// rather than an error; the caller proceeds without context.
	Retrieve(ctx context.Context, query string, k int) ([]domain.ChunkHit, error)
}
