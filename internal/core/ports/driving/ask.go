package driving

import (
	"context"

	"github.com/studymate-labs/studymate-cli/internal/core/domain"
)

// AskService answers free-form questions against the indexed corpus.
type AskService interface {
	// Ask retrieves context for the question, builds a tutoring prompt
	// and generates an answer. The returned Answer records whether any
	// corpus context was used and which sources contributed.
	Ask(ctx context.Context, question string) (*domain.Answer, error)
}
