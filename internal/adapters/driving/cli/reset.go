package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var resetForce bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all stored chunks",
	Long: `Removes every stored chunk and clears the recorded embedding
dimensionality, so the next refresh may use a different embedding
model. Saved answers are kept.`,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().BoolVarP(&resetForce, "force", "f", false, "skip the confirmation prompt")
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, _ []string) error {
	if refreshService == nil {
		return errors.New("refresh service not configured")
	}

	if !resetForce {
		cmd.Print("This deletes all indexed chunks. Continue? [y/N]: ")
		reader := bufio.NewReader(os.Stdin)
		input, _ := reader.ReadString('\n') //nolint:errcheck // CLI prompt, empty input declines
		if answer := strings.ToLower(strings.TrimSpace(input)); answer != "y" && answer != "yes" {
			cmd.Println("Aborted.")
			return nil
		}
	}

	if err := refreshService.Reset(cmd.Context()); err != nil {
		return fmt.Errorf("reset failed: %w", err)
	}

	cmd.Println("Corpus cleared.")
	return nil
}
