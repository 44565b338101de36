package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var refreshWatch bool

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Re-ingest course materials into the corpus",
	Long: `Reads all configured material directories, chunks and embeds the
documents and replaces the stored corpus source by source. A source
whose embeddings fail keeps its previously stored chunks.

With --watch the command keeps running and re-ingests sources as their
files change.`,
	RunE: runRefresh,
}

func init() {
	refreshCmd.Flags().BoolVarP(&refreshWatch, "watch", "w", false, "keep watching material directories for changes")
	rootCmd.AddCommand(refreshCmd)
}

func runRefresh(cmd *cobra.Command, _ []string) error {
	if refreshService == nil {
		return errors.New("refresh service not configured")
	}

	report, err := refreshService.Refresh(cmd.Context())
	if err != nil {
		return fmt.Errorf("refresh failed: %w", err)
	}

	cmd.Printf("Refreshed %d documents into %d chunks in %s\n",
		report.Documents, report.StoredChunks, report.Duration().Round(time.Millisecond))
	if report.SkippedDocuments > 0 {
		cmd.Printf("Skipped %d documents (see warnings above)\n", report.SkippedDocuments)
	}
	if len(report.DegradedSources) > 0 {
		cmd.Printf("Kept previous chunks for: %s\n", strings.Join(report.DegradedSources, ", "))
	}

	if !refreshWatch {
		return nil
	}

	cmd.Println("Watching for changes. Press Ctrl+C to stop.")
	if err := refreshService.Watch(cmd.Context()); err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}
	return nil
}
