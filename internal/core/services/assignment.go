package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/studymate-labs/studymate-cli/internal/core/domain"
	"github.com/studymate-labs/studymate-cli/internal/core/ports/driven"
	"github.com/studymate-labs/studymate-cli/internal/core/ports/driving"
	"github.com/studymate-labs/studymate-cli/internal/logger"
)

// Ensure AssignmentService implements the interface.
var _ driving.AssignmentService = (*AssignmentService)(nil)

// AssignmentService produces complete answers for assignments.
type AssignmentService struct {
	retrieval       driving.RetrievalService
	llmService      driven.LLMService
	answerStore     driven.AnswerStore
	previewRunes    int
	generateTimeout time.Duration
}

// NewAssignmentService creates a new assignment service. previewRunes and
// generateTimeout fall back to their defaults when <= 0.
func NewAssignmentService(
	retrieval driving.RetrievalService,
	llmService driven.LLMService,
	answerStore driven.AnswerStore,
	previewRunes int,
	generateTimeout time.Duration,
) *AssignmentService {
	if previewRunes <= 0 {
		previewRunes = domain.DefaultChunkPreviewRunes
	}
	if generateTimeout <= 0 {
		generateTimeout = DefaultGenerateTimeout
	}
	return &AssignmentService{
		retrieval:       retrieval,
		llmService:      llmService,
		answerStore:     answerStore,
		previewRunes:    previewRunes,
		generateTimeout: generateTimeout,
	}
}

// Solve retrieves course material relevant to the assignment, builds the
// assignment prompt and generates a full answer. The retrieval query is
// the title and description combined so both contribute to ranking.
func (s *AssignmentService) Solve(ctx context.Context, assignment domain.Assignment) (*domain.Answer, error) {
	if strings.TrimSpace(assignment.Title) == "" {
		return nil, fmt.Errorf("%w: assignment title is required", domain.ErrInvalidInput)
	}
	if s.llmService == nil {
		return nil, fmt.Errorf("%w: no LLM provider configured", domain.ErrNotConfigured)
	}

	logger.Section("Solve Assignment")
	logger.Debug("Title: %q", assignment.Title)

	hits, err := s.retrieval.Retrieve(ctx, assignment.RetrievalQuery(), 0)
	if err != nil {
		return nil, fmt.Errorf("retrieve context: %w", err)
	}
	if len(hits) == 0 {
		logger.Degraded("Solving %q from general knowledge only (no course context retrieved)", assignment.Title)
	}

	prompt := AssignmentPrompt(assignment.Title, assignment.Description, chunkTexts(hits), s.previewRunes)
	body, err := generate(ctx, s.llmService, prompt, s.generateTimeout)
	if err != nil {
		return nil, err
	}

	answer := &domain.Answer{
		ID:             uuid.NewString(),
		Kind:           domain.AnswerKindAssignment,
		Title:          assignment.Title,
		Question:       assignment.Description,
		Body:           body,
		UsedContext:    len(hits) > 0,
		ContextSources: chunkSources(hits),
		Model:          s.llmService.ModelName(),
		CreatedAt:      time.Now().UTC(),
	}

	if s.answerStore != nil {
		if err := s.answerStore.SaveAnswer(ctx, answer); err != nil {
			logger.Warn("Failed to save answer %s: %v", answer.ID, err)
		}
	}

	return answer, nil
}
