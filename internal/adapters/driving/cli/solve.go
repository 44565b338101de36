package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/studymate-labs/studymate-cli/internal/core/domain"
)

var (
	solveTitle       string
	solveDescription string
	solveFile        string
	solveOut         string
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Solve an assignment using your course materials",
	Long: `Produces a complete answer for an assignment. The title and
description are used to retrieve relevant course material before
generation.

The description can be given inline or read from a file. With --out the
answer body is also written to a text file named after the title.

Examples:
  studymate solve --title "Exercise 3" --description "Prove that ..."
  studymate solve --title "Essay 2" --file assignment.txt --out ./answers`,
	RunE: runSolve,
}

func init() {
	solveCmd.Flags().StringVarP(&solveTitle, "title", "t", "", "assignment title (required)")
	solveCmd.Flags().StringVarP(&solveDescription, "description", "d", "", "assignment description")
	solveCmd.Flags().StringVarP(&solveFile, "file", "f", "", "read the description from a file")
	solveCmd.Flags().StringVarP(&solveOut, "out", "o", "", "directory to write the answer file to")
	_ = solveCmd.MarkFlagRequired("title") //nolint:errcheck // flag exists
	rootCmd.AddCommand(solveCmd)
}

func runSolve(cmd *cobra.Command, _ []string) error {
	if assignmentService == nil {
		return errors.New("assignment service not configured")
	}

	title := strings.TrimSpace(solveTitle)
	if title == "" {
		return errors.New("assignment title is empty")
	}

	description := solveDescription
	if solveFile != "" {
		content, err := os.ReadFile(solveFile)
		if err != nil {
			return fmt.Errorf("reading description file: %w", err)
		}
		description = string(content)
	}

	assignment := domain.Assignment{
		Title:       title,
		Description: strings.TrimSpace(description),
	}

	answer, err := assignmentService.Solve(cmd.Context(), assignment)
	if err != nil {
		return fmt.Errorf("solve failed: %w", err)
	}

	cmd.Println(answer.Body)
	cmd.Println()
	if answer.UsedContext {
		cmd.Printf("Sources: %s\n", strings.Join(answer.ContextSources, ", "))
	} else {
		cmd.Println("Note: answered from general knowledge, no course material matched.")
	}
	cmd.Printf("Saved as answer %s\n", answer.ID)

	if solveOut != "" {
		path, err := writeAnswerFile(answer, solveOut)
		if err != nil {
			return fmt.Errorf("writing answer file: %w", err)
		}
		cmd.Printf("Wrote %s\n", path)
	}

	return nil
}

// writeAnswerFile writes the answer body under dir, named from the title.
func writeAnswerFile(answer *domain.Answer, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, answer.ExportName())
	if err := os.WriteFile(path, []byte(answer.Body), 0o644); err != nil {
		return "", err
	}
	return path, nil
}
