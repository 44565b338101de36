package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for StudyMate resources.
	uriScheme = "studymate://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "corpus/status",
		Name:        "corpus-status",
		Description: "Current state of the indexed course material corpus",
		MIMEType:    "application/json",
	}, s.handleStatusResource)
}

// handleStatusResource returns the current corpus status.
func (s *Server) handleStatusResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Refresh == nil {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{{
				URI:      req.Params.URI,
				MIMEType: "application/json",
				Text:     "{}",
			}},
		}, nil
	}

	status, err := s.ports.Refresh.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting corpus status: %w", err)
	}

	type statusInfo struct {
		Phase       string `json:"phase"`
		Running     bool   `json:"running"`
		Documents   int    `json:"documents"`
		Chunks      int    `json:"chunks"`
		Sources     int    `json:"sources"`
		Dimensions  int    `json:"dimensions"`
		LastRefresh string `json:"last_refresh,omitempty"`
		Errors      int    `json:"errors"`
	}

	info := statusInfo{
		Phase:      status.Phase.String(),
		Running:    status.Running,
		Documents:  status.Documents,
		Chunks:     status.Chunks,
		Sources:    status.Sources,
		Dimensions: status.Dimensions,
		Errors:     status.Errors,
	}
	if !status.LastRefresh.IsZero() {
		info.LastRefresh = status.LastRefresh.Format(time.RFC3339)
	}

	data, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling status: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
