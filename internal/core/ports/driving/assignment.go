package driving

import (
	"context"

	"github.com/studymate-labs/studymate-cli/internal/core/domain"
)

// AssignmentService produces complete answers for assignments.
type AssignmentService interface {
	// Solve retrieves course material relevant to the assignment,
	// builds the assignment prompt and generates a full answer.
	// The answer is persisted before being returned.
	Solve(ctx context.Context, assignment domain.Assignment) (*domain.Answer, error)
}
