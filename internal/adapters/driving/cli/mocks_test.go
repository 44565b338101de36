package cli

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/studymate-labs/studymate-cli/internal/core/domain"
)

// mockRetrievalService is a mock implementation of driving.RetrievalService.
type mockRetrievalService struct {
	hits []domain.ChunkHit
	err  error
}

func (m *mockRetrievalService) Retrieve(_ context.Context, _ string, _ int) ([]domain.ChunkHit, error) {
	return m.hits, m.err
}

// mockAskService is a mock implementation of driving.AskService.
type mockAskService struct {
	answer *domain.Answer
	err    error
}

func (m *mockAskService) Ask(_ context.Context, _ string) (*domain.Answer, error) {
	return m.answer, m.err
}

// mockAssignmentService is a mock implementation of driving.AssignmentService.
type mockAssignmentService struct {
	answer *domain.Answer
	err    error
}

func (m *mockAssignmentService) Solve(_ context.Context, _ domain.Assignment) (*domain.Answer, error) {
	return m.answer, m.err
}

// mockAnswerService is a mock implementation of driving.AnswerService.
type mockAnswerService struct {
	answers []domain.Answer
	answer  *domain.Answer
	err     error
}

func (m *mockAnswerService) List(_ context.Context, _ int) ([]domain.Answer, error) {
	return m.answers, m.err
}

func (m *mockAnswerService) Get(_ context.Context, _ string) (*domain.Answer, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.answer == nil {
		return nil, domain.ErrNotFound
	}
	return m.answer, nil
}

func (m *mockAnswerService) Export(_ context.Context, _ string, dir string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	if m.answer == nil {
		return "", domain.ErrNotFound
	}
	path := filepath.Join(dir, m.answer.ExportName())
	if err := os.WriteFile(path, []byte(m.answer.Body), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// mockRefreshService is a mock implementation of driving.RefreshOrchestrator.
type mockRefreshService struct {
	report   *domain.RefreshReport
	status   *domain.CorpusStatus
	err      error
	resets   int
	watched  bool
	watchErr error
}

func (m *mockRefreshService) Refresh(_ context.Context) (*domain.RefreshReport, error) {
	return m.report, m.err
}

func (m *mockRefreshService) Status(_ context.Context) (*domain.CorpusStatus, error) {
	return m.status, m.err
}

func (m *mockRefreshService) Reset(_ context.Context) error {
	m.resets++
	return m.err
}

func (m *mockRefreshService) Watch(_ context.Context) error {
	m.watched = true
	return m.watchErr
}

// mockSettingsService is a mock implementation of driving.SettingsService.
type mockSettingsService struct {
	settings    *domain.AppSettings
	err         error
	validateErr error
	pingErr     error
	savedPaths  []string
}

func (m *mockSettingsService) Get() (*domain.AppSettings, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.settings == nil {
		defaults := domain.DefaultAppSettings()
		m.settings = &defaults
	}
	return m.settings, nil
}

func (m *mockSettingsService) Save(settings *domain.AppSettings) error {
	if m.err != nil {
		return m.err
	}
	m.settings = settings
	return nil
}

func (m *mockSettingsService) SetEmbeddingProvider(provider domain.AIProvider, model, apiKey string) error {
	if m.err != nil {
		return m.err
	}
	settings, _ := m.Get() //nolint:errcheck // err handled above
	settings.Embedding.Provider = provider
	settings.Embedding.Model = model
	settings.Embedding.APIKey = apiKey
	return nil
}

func (m *mockSettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	if m.err != nil {
		return m.err
	}
	settings, _ := m.Get() //nolint:errcheck // err handled above
	settings.LLM.Provider = provider
	settings.LLM.Model = model
	settings.LLM.APIKey = apiKey
	return nil
}

func (m *mockSettingsService) SetMaterialPaths(paths []string) error {
	if m.err != nil {
		return m.err
	}
	m.savedPaths = paths
	settings, _ := m.Get() //nolint:errcheck // err handled above
	settings.Materials.Paths = paths
	return nil
}

func (m *mockSettingsService) Validate() error {
	return m.validateErr
}

func (m *mockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (m *mockSettingsService) ValidateEmbeddingConfig(_ context.Context) error {
	return m.pingErr
}

func (m *mockSettingsService) ValidateLLMConfig(_ context.Context) error {
	return m.pingErr
}

// testAnswer returns a representative saved answer.
func testAnswer() *domain.Answer {
	return &domain.Answer{
		ID:             "ans-1",
		Kind:           domain.AnswerKindQuestion,
		Question:       "what is a heap?",
		Body:           "A heap is a tree-shaped priority structure.",
		UsedContext:    true,
		ContextSources: []string{"lecture_2.md"},
		Model:          "llama3.2",
		CreatedAt:      time.Date(2026, 8, 20, 10, 30, 0, 0, time.UTC),
	}
}

// setupTestServices wires mock services into the package-level vars and
// returns a cleanup that restores the previous wiring.
func setupTestServices() func() {
	oldRetrieval := retrievalService
	oldAsk := askService
	oldAssignment := assignmentService
	oldAnswers := answerService
	oldRefresh := refreshService
	oldSettings := settingsService

	retrievalService = &mockRetrievalService{
		hits: []domain.ChunkHit{
			{
				Chunk: domain.Chunk{
					ID:      "lecture_3.pdf_0",
					Source:  "lecture_3.pdf",
					Content: "Quicksort degrades on sorted input",
				},
				Similarity: 0.95,
			},
		},
	}
	askService = &mockAskService{answer: testAnswer()}
	assignmentService = &mockAssignmentService{answer: testAnswer()}
	answerService = &mockAnswerService{
		answers: []domain.Answer{*testAnswer()},
		answer:  testAnswer(),
	}
	refreshService = &mockRefreshService{
		report: &domain.RefreshReport{
			Documents:    4,
			Chunks:       17,
			StoredChunks: 17,
		},
		status: &domain.CorpusStatus{
			Phase:      domain.PhaseStored,
			Chunks:     17,
			Sources:    3,
			Dimensions: 1024,
		},
	}
	settingsService = &mockSettingsService{}

	return func() {
		retrievalService = oldRetrieval
		askService = oldAsk
		assignmentService = oldAssignment
		answerService = oldAnswers
		refreshService = oldRefresh
		settingsService = oldSettings
	}
}
