package mcp

import (
	"github.com/studymate-labs/studymate-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Retrieval finds chunks relevant to a query.
	Retrieval driving.RetrievalService

	// Ask answers questions against the corpus.
	Ask driving.AskService

	// Refresh re-ingests the corpus and reports its state.
	Refresh driving.RefreshOrchestrator
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Retrieval == nil {
		return ErrMissingRetrievalService
	}
	if p.Ask == nil {
		return ErrMissingAskService
	}
	// Refresh is optional; the tool and resource degrade without it.
	return nil
}
