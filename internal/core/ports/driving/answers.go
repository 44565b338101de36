package driving

import (
	"context"

	"github.com/studymate-labs/studymate-cli/internal/core/domain"
)

// AnswerService provides access to previously generated answers.
type AnswerService interface {
	// List returns saved answers, newest first, up to limit.
	// A limit of zero or less returns all answers.
	List(ctx context.Context, limit int) ([]domain.Answer, error)

	// Get retrieves a saved answer by ID.
	// Returns domain.ErrNotFound if no answer exists with that ID.
	Get(ctx context.Context, id string) (*domain.Answer, error)

	// Export writes a saved answer to a text file under dir and
	// returns the path written. The filename derives from the
	// answer title.
	Export(ctx context.Context, id string, dir string) (string, error)
}
