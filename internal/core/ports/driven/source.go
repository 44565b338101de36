package driven

import (
	"context"

	"github.com/studymate-labs/studymate-cli/internal/core/domain"
)

// MaterialSource supplies raw course materials. The core makes no
// assumption about where materials come from, only that each carries a
// stable source identifier and UTF-8 decodable content.
type MaterialSource interface {
	// Name identifies the source for logging and status output.
	Name() string

	// Validate checks the source is ready to load (e.g. the directory
	// exists and is readable). Returns nil if ready.
	Validate(ctx context.Context) error

	// Load streams all materials. Both channels close when the load
	// finishes; per-file failures arrive on the error channel and do
	// not stop the stream.
	Load(ctx context.Context) (<-chan domain.Material, <-chan error)

	// Watch emits change notifications until the context is cancelled.
	// Implementations debounce rapid successive events for one path.
	Watch(ctx context.Context) (<-chan domain.MaterialEvent, error)

	// Close releases resources.
	Close() error
}
