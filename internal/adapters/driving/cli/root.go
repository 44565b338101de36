// Package cli implements the command-line driving adapter. Commands
// call the core services through their driving ports; main wires the
// services in before Execute runs.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/studymate-labs/studymate-cli/internal/core/ports/driving"
	"github.com/studymate-labs/studymate-cli/internal/logger"
)

// version is the build version, overridable at link time.
var version = "dev"

// Services injected by main. Commands check for nil and fail with a
// clear error when a service was not wired.
var (
	retrievalService  driving.RetrievalService
	askService        driving.AskService
	assignmentService driving.AssignmentService
	answerService     driving.AnswerService
	refreshService    driving.RefreshOrchestrator
	settingsService   driving.SettingsService
)

// Services aggregates everything the CLI needs.
type Services struct {
	Retrieval  driving.RetrievalService
	Ask        driving.AskService
	Assignment driving.AssignmentService
	Answers    driving.AnswerService
	Refresh    driving.RefreshOrchestrator
	Settings   driving.SettingsService
}

// SetServices injects the core services the commands run against.
func SetServices(s Services) {
	retrievalService = s.Retrieval
	askService = s.Ask
	assignmentService = s.Assignment
	answerService = s.Answers
	refreshService = s.Refresh
	settingsService = s.Settings
}

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "studymate",
	Short: "Course material study assistant",
	Long: `StudyMate answers questions and solves assignments using your own
course materials. Point it at your lecture notes, refresh the corpus,
then ask away.

Typical workflow:
  studymate settings paths ~/uni/algorithms
  studymate refresh
  studymate ask "When is quicksort quadratic?"`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
