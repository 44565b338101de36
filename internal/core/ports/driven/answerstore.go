package driven

import (
	"context"

	"github.com/studymate-labs/studymate-cli/internal/core/domain"
)

// AnswerStore persists generated answers so students can revisit them.
type AnswerStore interface {
	// SaveAnswer stores an answer.
	SaveAnswer(ctx context.Context, answer *domain.Answer) error

	// GetAnswer retrieves an answer by ID.
	// Returns domain.ErrNotFound if it does not exist.
	GetAnswer(ctx context.Context, id string) (*domain.Answer, error)

	// ListAnswers returns answers ordered newest first.
	ListAnswers(ctx context.Context, limit int) ([]domain.Answer, error)
}
