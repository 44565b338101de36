package cli

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/studymate-labs/studymate-cli/internal/adapters/driving/mcp"
	"github.com/studymate-labs/studymate-cli/internal/logger"
)

var serveHTTP string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can search
the corpus and ask questions through StudyMate.

By default the server communicates over stdio using JSON-RPC. Use
--http to listen on an address instead, which enables testing with the
MCP Inspector web UI and remote access.

If serve.refresh_schedule is set in the settings (a cron expression),
the corpus is refreshed on that schedule while serving.

Examples:
  # Stdio mode (default, for Claude Desktop)
  studymate serve

  # HTTP mode (for MCP Inspector, remote access)
  studymate serve --http :8080

Claude Desktop configuration (claude_desktop_config.json):
  {
    "mcpServers": {
      "studymate": {
        "command": "/path/to/studymate",
        "args": ["serve"]
      }
    }
  }`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveHTTP, "http", "", "HTTP listen address (empty = stdio)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ports := &mcp.Ports{
		Retrieval: retrievalService,
		Ask:       askService,
		Refresh:   refreshService,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	if job := startScheduledRefresh(cmd); job != nil {
		defer job.Stop()
	}

	addr := serveHTTP
	if addr == "" && settingsService != nil {
		if settings, err := settingsService.Get(); err == nil {
			addr = settings.Serve.HTTPAddr
		}
	}

	if addr != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on %s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}

// startScheduledRefresh starts the periodic corpus refresh if a cron
// schedule is configured. Returns nil when no schedule is set.
func startScheduledRefresh(cmd *cobra.Command) *cron.Cron {
	if settingsService == nil || refreshService == nil {
		return nil
	}

	settings, err := settingsService.Get()
	if err != nil || settings.Serve.RefreshSchedule == "" {
		return nil
	}

	schedule := settings.Serve.RefreshSchedule
	c := cron.New()
	_, err = c.AddFunc(schedule, func() {
		report, err := refreshService.Refresh(cmd.Context())
		if err != nil {
			logger.Warn("Scheduled refresh failed: %v", err)
			return
		}
		logger.Info("Scheduled refresh: %d chunks stored", report.StoredChunks)
	})
	if err != nil {
		logger.Warn("Invalid refresh schedule %q: %v", schedule, err)
		return nil
	}

	c.Start()
	logger.Info("Scheduled corpus refresh: %s", schedule)
	return c
}
