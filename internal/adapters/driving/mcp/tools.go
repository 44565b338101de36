package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// SearchInput is the input schema for the search_materials tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"the query to find relevant course material"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of chunks to return (default 3)"`
}

// SearchOutput is the output schema for the search_materials tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single retrieved chunk.
type SearchResultOutput struct {
	ChunkID    string  `json:"chunk_id"`
	Source     string  `json:"source"`
	Similarity float64 `json:"similarity"`
	Content    string  `json:"content"`
}

// AskInput is the input schema for the ask_studymate tool.
type AskInput struct {
	Question string `json:"question" jsonschema:"the question to answer using the course materials"`
}

// AskOutput is the output schema for the ask_studymate tool.
type AskOutput struct {
	Answer      string   `json:"answer"`
	UsedContext bool     `json:"used_context"`
	Sources     []string `json:"sources,omitempty"`
	AnswerID    string   `json:"answer_id"`
}

// RefreshInput is the input schema for the refresh_corpus tool.
type RefreshInput struct{}

// RefreshOutput is the output schema for the refresh_corpus tool.
type RefreshOutput struct {
	Documents        int      `json:"documents"`
	StoredChunks     int      `json:"stored_chunks"`
	SkippedDocuments int      `json:"skipped_documents"`
	DegradedSources  []string `json:"degraded_sources,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_materials",
		Description: "Search the indexed course materials for relevant passages",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask_studymate",
		Description: "Answer a question using the indexed course materials",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "refresh_corpus",
		Description: "Re-ingest all configured course material directories",
	}, s.handleRefresh)
}

// handleSearch handles the search_materials tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	hits, err := s.ports.Retrieval.Retrieve(ctx, input.Query, input.Limit)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(hits)),
		Count:   len(hits),
	}

	for i := range hits {
		output.Results[i] = SearchResultOutput{
			ChunkID:    hits[i].Chunk.ID,
			Source:     hits[i].Chunk.Source,
			Similarity: hits[i].Similarity,
			Content:    hits[i].Chunk.Content,
		}
	}

	return nil, output, nil
}

// handleAsk handles the ask_studymate tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	answer, err := s.ports.Ask.Ask(ctx, input.Question)
	if err != nil {
		return nil, AskOutput{}, err
	}

	return nil, AskOutput{
		Answer:      answer.Body,
		UsedContext: answer.UsedContext,
		Sources:     answer.ContextSources,
		AnswerID:    answer.ID,
	}, nil
}

// handleRefresh handles the refresh_corpus tool invocation.
func (s *Server) handleRefresh(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ RefreshInput,
) (*mcp.CallToolResult, RefreshOutput, error) {
	if s.ports.Refresh == nil {
		return nil, RefreshOutput{}, errors.New("refresh is not available")
	}

	report, err := s.ports.Refresh.Refresh(ctx)
	if err != nil {
		return nil, RefreshOutput{}, err
	}

	return nil, RefreshOutput{
		Documents:        report.Documents,
		StoredChunks:     report.StoredChunks,
		SkippedDocuments: report.SkippedDocuments,
		DegradedSources:  report.DegradedSources,
	}, nil
}
