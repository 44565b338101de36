package mcp

import (
	"context"

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

// mockRefreshService is a mock implementation of driving.RefreshOrchestrator.
type mockRefreshService struct {
	report *domain.RefreshReport
	status *domain.CorpusStatus
	err    error
}

func (m *mockRefreshService) Refresh(_ context.Context) (*domain.RefreshReport, error) {
	return m.report, m.err
}

func (m *mockRefreshService) Status(_ context.Context) (*domain.CorpusStatus, error) {
	return m.status, m.err
}

func (m *mockRefreshService) Reset(_ context.Context) error {
	return m.err
}

func (m *mockRefreshService) Watch(_ context.Context) error {
	return m.err
}
