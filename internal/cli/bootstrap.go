package cli

import (
	"github.com/spf13/cobra"

	"github.com/subtitle-improver/subsetup/internal/bootstrap"
	"github.com/subtitle-improver/subsetup/internal/console"
)

func init() {
	rootCmd.AddCommand(setupCmd)
}

var setupCmd = &cobra.Command{
	Use:     "setup",
	Aliases: []string{"bootstrap"},
	Short:   "Check prerequisites, install dependencies and create .env",
	Long: `Run the environment setup in order:

  1. Check that Python is installed (fatal if missing)
  2. Install the packages from requirements.txt (fatal on failure)
  3. Check for FFmpeg and FFprobe (warning only)
  4. Create .env from .env.example if it does not exist yet
  5. Print next steps

An existing .env is never modified. This is also what runs when no
subcommand is given.`,
	Args: cobra.NoArgs,
	RunE: runBootstrap,
}

func runBootstrap(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	logger := newLogger(cmd, settings)
	logger.Debug("settings loaded", "project", settings.ProjectDir, "file", settings.SourceFile)

	runner := bootstrap.New(
		settings,
		newCommandRunner(cmd, logger),
		newPrompter(cmd),
		console.New(cmd.OutOrStdout()),
		logger,
	)
	report, err := runner.Run(cmd.Context())
	if err != nil {
		return err
	}
	logger.Debug("setup finished", "outcome", report.Outcome, "states", report.Visited)

	if fatal := report.Outcome.Err(); fatal != nil {
		return &ExitError{Code: report.Outcome.ExitCode(), Err: fatal, Silent: true}
	}
	return nil
}
