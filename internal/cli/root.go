package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/subtitle-improver/subsetup/internal/branding"
	"github.com/subtitle-improver/subsetup/internal/config"
	"github.com/subtitle-improver/subsetup/internal/logging"
	"github.com/subtitle-improver/subsetup/internal/platform"
	"github.com/subtitle-improver/subsetup/internal/prompt"
	"github.com/subtitle-improver/subsetup/internal/runtime"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	flagProjectDir string
	flagSettings   string
	flagNoPause    bool
	flagVerbose    bool
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flagProjectDir, "project-dir", "C", "", "Subtitle Improver project directory (default: current directory)")
	pf.StringVar(&flagSettings, "settings", "", "Settings file (default: <project-dir>/"+branding.SettingsFile()+")")
	pf.BoolVar(&flagNoPause, "no-pause", false, "Do not wait for a key press before exiting")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` prepares a local environment for ` + branding.AppName() + `.

Without a subcommand it runs the full setup: checks for Python, installs the
packages listed in requirements.txt, looks for FFmpeg and creates .env from
.env.example.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.NoArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Status markers and tool banners are UTF-8.
		if err := platform.EnableUTF8Console(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "[WARN] Could not switch console to UTF-8: %v\n", err)
		}
		return nil
	},
	RunE: runBootstrap,
}

// ExitError carries a process exit code. Silent errors have already been
// reported to the user and are not printed again.
type ExitError struct {
	Code   int
	Err    error
	Silent bool
}

func (e *ExitError) Error() string { return e.Err.Error() }
func (e *ExitError) Unwrap() error { return e.Err }

// Execute runs the root command with build info injected via ldflags and
// returns the process exit code.
func Execute(ctx context.Context, version, commit, date string) int {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		if !exitErr.Silent {
			fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", exitErr.Err)
		}
		return exitErr.Code
	}
	fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
	return 1
}

func loadOptions() config.LoadOptions {
	overrides := map[string]any{}
	if flagNoPause {
		overrides["pause"] = false
	}
	if flagVerbose {
		overrides["verbose"] = true
	}
	return config.LoadOptions{
		ProjectDir: flagProjectDir,
		File:       flagSettings,
		Overrides:  overrides,
	}
}

func loadSettings() (*config.Settings, error) {
	s, err := config.Load(loadOptions())
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}
	return s, nil
}

func newLogger(cmd *cobra.Command, s *config.Settings) *log.Logger {
	return logging.New(cmd.ErrOrStderr(), s.Verbose)
}

func newCommandRunner(cmd *cobra.Command, logger *log.Logger) *runtime.ExecRunner {
	return runtime.NewExecRunner(runtime.Streams{
		Stdin:  cmd.InOrStdin(),
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
	}, logger)
}

func newPrompter(cmd *cobra.Command) prompt.Prompter {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok {
		return prompt.NewTerminal(f, cmd.OutOrStdout())
	}
	return prompt.NewReader(in, cmd.OutOrStdout())
}

func printf(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format, args...)
}
