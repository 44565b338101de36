package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the corpus state",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if refreshService == nil {
		return errors.New("refresh service not configured")
	}

	status, err := refreshService.Status(cmd.Context())
	if err != nil {
		return fmt.Errorf("status failed: %w", err)
	}

	cmd.Println("Corpus Status")
	cmd.Println("=============")
	cmd.Printf("  Phase: %s\n", status.Phase)
	if status.Running {
		cmd.Println("  Refresh: in progress")
	}
	cmd.Printf("  Sources: %d\n", status.Sources)
	cmd.Printf("  Chunks: %d\n", status.Chunks)
	if status.Dimensions > 0 {
		cmd.Printf("  Dimensions: %d\n", status.Dimensions)
	}
	if !status.LastRefresh.IsZero() {
		cmd.Printf("  Last refresh: %s\n", status.LastRefresh.Format("2006-01-02 15:04:05"))
		cmd.Printf("  Documents: %d\n", status.Documents)
		if status.Errors > 0 {
			cmd.Printf("  Skipped documents: %d\n", status.Errors)
		}
	}

	return nil
}
