package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/studymate-labs/studymate-cli/internal/core/domain"
	"github.com/studymate-labs/studymate-cli/internal/core/ports/driven"
)

// Ensure AnswerStore implements the interface.
var _ driven.AnswerStore = (*AnswerStore)(nil)

// AnswerStore is an in-memory implementation of driven.AnswerStore.
type AnswerStore struct {
	mu      sync.RWMutex
	answers map[string]domain.Answer
}

// NewAnswerStore creates a new in-memory answer store.
func NewAnswerStore() *AnswerStore {
	return &AnswerStore{
		answers: make(map[string]domain.Answer),
	}
}

// SaveAnswer stores an answer.
func (s *AnswerStore) SaveAnswer(_ context.Context, answer *domain.Answer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.answers[answer.ID] = *answer
	return nil
}

// GetAnswer retrieves an answer by ID.
func (s *AnswerStore) GetAnswer(_ context.Context, id string) (*domain.Answer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	answer, ok := s.answers[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &answer, nil
}

// ListAnswers returns answers ordered newest first.
func (s *AnswerStore) ListAnswers(_ context.Context, limit int) ([]domain.Answer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	answers := make([]domain.Answer, 0, len(s.answers))
	for _, answer := range s.answers {
		answers = append(answers, answer)
	}
	sort.Slice(answers, func(i, j int) bool {
		if !answers[i].CreatedAt.Equal(answers[j].CreatedAt) {
			return answers[i].CreatedAt.After(answers[j].CreatedAt)
		}
		return answers[i].ID > answers[j].ID
	})
	if limit > 0 && limit < len(answers) {
		answers = answers[:limit]
	}
	return answers, nil
}
