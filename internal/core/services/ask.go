package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/studymate-labs/studymate-cli/internal/core/domain"
	"github.com/studymate-labs/studymate-cli/internal/core/ports/driven"
	"github.com/studymate-labs/studymate-cli/internal/core/ports/driving"
	"github.com/studymate-labs/studymate-cli/internal/logger"
)

// Ensure AskService implements the interface.
var _ driving.AskService = (*AskService)(nil)

// DefaultGenerateTimeout bounds a single answer generation call.
const DefaultGenerateTimeout = 120 * time.Second

// AskService answers free-form questions against the indexed corpus.
type AskService struct {
	retrieval       driving.RetrievalService
	llmService      driven.LLMService
	answerStore     driven.AnswerStore
	generateTimeout time.Duration
}

// NewAskService creates a new ask service. generateTimeout <= 0 falls back
// to the default.
func NewAskService(
	retrieval driving.RetrievalService,
	llmService driven.LLMService,
	answerStore driven.AnswerStore,
	generateTimeout time.Duration,
) *AskService {
	if generateTimeout <= 0 {
		generateTimeout = DefaultGenerateTimeout
	}
	return &AskService{
		retrieval:       retrieval,
		llmService:      llmService,
		answerStore:     answerStore,
		generateTimeout: generateTimeout,
	}
}

// Ask retrieves context for the question, builds the tutoring prompt and
// generates an answer. Retrieval degradation is tolerated: the answer is
// generated from general knowledge and marked UsedContext=false so the
// caller can tell the difference.
func (s *AskService) Ask(ctx context.Context, question string) (*domain.Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("%w: empty question", domain.ErrInvalidInput)
	}
	if s.llmService == nil {
		return nil, fmt.Errorf("%w: no LLM provider configured", domain.ErrNotConfigured)
	}

	logger.Section("Ask")
	logger.Debug("Question: %q", question)

	hits, err := s.retrieval.Retrieve(ctx, question, 0)
	if err != nil {
		return nil, fmt.Errorf("retrieve context: %w", err)
	}
	if len(hits) == 0 {
		logger.Degraded("Answering %q from general knowledge only (no course context retrieved)", question)
	}

	prompt := TutorPrompt(question, chunkTexts(hits))
	body, err := generate(ctx, s.llmService, prompt, s.generateTimeout)
	if err != nil {
		return nil, err
	}

	answer := &domain.Answer{
		ID:             uuid.NewString(),
		Kind:           domain.AnswerKindQuestion,
		Question:       question,
		Body:           body,
		UsedContext:    len(hits) > 0,
		ContextSources: chunkSources(hits),
		Model:          s.llmService.ModelName(),
		CreatedAt:      time.Now().UTC(),
	}

	if s.answerStore != nil {
		if err := s.answerStore.SaveAnswer(ctx, answer); err != nil {
			// The generated answer is still useful; losing history is
			// not worth losing the answer.
			logger.Warn("Failed to save answer %s: %v", answer.ID, err)
		}
	}

	return answer, nil
}

// generate runs one LLM call under the enforced timeout and classifies a
// deadline overrun as a recoverable generation timeout.
func generate(ctx context.Context, llm driven.LLMService, prompt string, timeout time.Duration) (string, error) {
	genCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	body, err := llm.Generate(genCtx, prompt, driven.GenerateOptions{})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || genCtx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("%w after %s: %w", domain.ErrGenerationTimeout, timeout, err)
		}
		return "", fmt.Errorf("%w: %w", domain.ErrLLMUnavailable, err)
	}

	body = strings.TrimSpace(body)
	if body == "" {
		return "", fmt.Errorf("%w: model returned an empty answer", domain.ErrLLMUnavailable)
	}
	return body, nil
}
