package driving

import (
	"context"

	"github.com/studymate-labs/studymate-cli/internal/core/domain"
)

// RefreshOrchestrator coordinates corpus ingestion: loading materials,
// chunking, embedding and storing.
type RefreshOrchestrator interface {
	// Refresh re-ingests all configured material sources. Sources whose
	// documents fail to embed keep their previously stored chunks; the
	// report records what was skipped or degraded.
	Refresh(ctx context.Context) (*domain.RefreshReport, error)

	// Status reports the current corpus state.
	Status(ctx context.Context) (*domain.CorpusStatus, error)

	// Reset removes all stored chunks and clears the recorded
	// embedding dimensionality.
	Reset(ctx context.Context) error

	// Watch blocks, re-ingesting affected sources as material files
	// change, until the context is cancelled.
	Watch(ctx context.Context) error
}
