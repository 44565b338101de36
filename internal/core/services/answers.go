package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/studymate-labs/studymate-cli/internal/core/domain"
	"github.com/studymate-labs/studymate-cli/internal/core/ports/driven"
	"github.com/studymate-labs/studymate-cli/internal/core/ports/driving"
)

// Ensure AnswerService implements the interface.
var _ driving.AnswerService = (*AnswerService)(nil)

// AnswerService provides access to previously generated answers.
type AnswerService struct {
	answerStore driven.AnswerStore
}

// NewAnswerService creates a new answer service.
func NewAnswerService(answerStore driven.AnswerStore) *AnswerService {
	return &AnswerService{answerStore: answerStore}
}

// List returns saved answers, newest first, up to limit.
func (s *AnswerService) List(ctx context.Context, limit int) ([]domain.Answer, error) {
	answers, err := s.answerStore.ListAnswers(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}
	return answers, nil
}

// Get retrieves a saved answer by ID.
func (s *AnswerService) Get(ctx context.Context, id string) (*domain.Answer, error) {
	answer, err := s.answerStore.GetAnswer(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get answer %s: %w", id, err)
	}
	return answer, nil
}

// Export writes a saved answer to a text file under dir and returns the
// path written. The filename derives from the answer title with invalid
// characters replaced.
func (s *AnswerService) Export(ctx context.Context, id, dir string) (string, error) {
	answer, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}

	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("create export directory: %w", err)
	}

	path := filepath.Join(dir, answer.ExportName())
	if err := os.WriteFile(path, []byte(answer.Body+"\n"), 0o600); err != nil {
		return "", fmt.Errorf("write answer file: %w", err)
	}
	return path, nil
}
