package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a question about your course materials",
	Long: `Answers a free-form question using the indexed corpus as context.

When no relevant material is found the assistant still answers from
general knowledge and says so.

Examples:
  studymate ask "When does quicksort degrade to O(n^2)?"
  studymate ask what is a B-tree`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if askService == nil {
		return errors.New("ask service not configured")
	}

	question := strings.TrimSpace(strings.Join(args, " "))
	if question == "" {
		return errors.New("question is empty")
	}

	answer, err := askService.Ask(cmd.Context(), question)
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	cmd.Println(answer.Body)
	cmd.Println()
	if answer.UsedContext {
		cmd.Printf("Sources: %s\n", strings.Join(answer.ContextSources, ", "))
	} else {
		cmd.Println("Note: answered from general knowledge, no course material matched.")
	}
	cmd.Printf("Saved as answer %s\n", answer.ID)

	return nil
}
