package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/studymate-labs/studymate-cli/internal/core/domain"
)

var (
	answersLimit     int
	answersExportDir string
)

var answersCmd = &cobra.Command{
	Use:   "answers",
	Short: "Browse saved answers",
	Long: `Every ask and solve result is persisted. These commands list, show
and export that history.`,
	RunE: runAnswersList,
}

var answersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved answers, newest first",
	RunE:  runAnswersList,
}

var answersShowCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Print a saved answer",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnswersShow,
}

var answersExportCmd = &cobra.Command{
	Use:   "export [id]",
	Short: "Write a saved answer to a text file",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnswersExport,
}

func init() {
	answersListCmd.Flags().IntVarP(&answersLimit, "limit", "n", 20, "maximum number of answers to list (0 = all)")
	answersExportCmd.Flags().StringVarP(&answersExportDir, "out", "o", ".", "directory to write the answer file to")
	answersCmd.AddCommand(answersListCmd)
	answersCmd.AddCommand(answersShowCmd)
	answersCmd.AddCommand(answersExportCmd)
	rootCmd.AddCommand(answersCmd)
}

func runAnswersList(cmd *cobra.Command, _ []string) error {
	if answerService == nil {
		return errors.New("answer service not configured")
	}

	answers, err := answerService.List(cmd.Context(), answersLimit)
	if err != nil {
		return fmt.Errorf("listing answers failed: %w", err)
	}

	if len(answers) == 0 {
		cmd.Println("No saved answers.")
		return nil
	}

	for i := range answers {
		a := &answers[i]
		cmd.Printf("  %s  %s  [%s]  %s\n",
			a.ID, a.CreatedAt.Format("2006-01-02 15:04"), a.Kind, answerHeading(a))
	}

	return nil
}

func runAnswersShow(cmd *cobra.Command, args []string) error {
	if answerService == nil {
		return errors.New("answer service not configured")
	}

	answer, err := answerService.Get(cmd.Context(), args[0])
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("no answer with id %s", args[0])
		}
		return fmt.Errorf("getting answer failed: %w", err)
	}

	cmd.Printf("%s (%s, %s)\n", answerHeading(answer), answer.Kind, answer.CreatedAt.Format("2006-01-02 15:04"))
	cmd.Printf("Model: %s\n", answer.Model)
	if answer.UsedContext {
		cmd.Printf("Sources: %s\n", strings.Join(answer.ContextSources, ", "))
	} else {
		cmd.Println("Sources: none (general knowledge)")
	}
	cmd.Println()
	cmd.Println(answer.Body)

	return nil
}

func runAnswersExport(cmd *cobra.Command, args []string) error {
	if answerService == nil {
		return errors.New("answer service not configured")
	}

	path, err := answerService.Export(cmd.Context(), args[0], answersExportDir)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("no answer with id %s", args[0])
		}
		return fmt.Errorf("export failed: %w", err)
	}

	cmd.Printf("Wrote %s\n", path)
	return nil
}

// answerHeading picks the title for assignments, the question otherwise.
func answerHeading(a *domain.Answer) string {
	if a.Title != "" {
		return a.Title
	}
	return preview(a.Question, 60)
}
