package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/subtitle-improver/subsetup/internal/config"
	"github.com/subtitle-improver/subsetup/internal/console"
	"github.com/subtitle-improver/subsetup/internal/deps"
	"github.com/subtitle-improver/subsetup/internal/dotenv"
	"github.com/subtitle-improver/subsetup/internal/logging"
	"github.com/subtitle-improver/subsetup/internal/manifest"
	"github.com/subtitle-improver/subsetup/internal/prompt"
	"github.com/subtitle-improver/subsetup/internal/runtime"
)

const (
	exitPauseMessage    = "Press any key to exit . . ."
	summaryPauseMessage = "Press any key to continue . . ."
)

// Runner executes the bootstrap sequence.
type Runner struct {
	Settings *config.Settings
	Commands runtime.CommandRunner
	Prompter prompt.Prompter
	Console  *console.Console
	Logger   *log.Logger

	// Locate resolves a tool outside PATH. Defaults to deps.Locate.
	Locate func(deps.Requirement) deps.Status

	// InitConfig creates the configuration file from its template.
	// Defaults to dotenv.Init.
	InitConfig func(path, template string) (dotenv.InitStatus, error)
}

// New returns a Runner with the given collaborators.
func New(settings *config.Settings, commands runtime.CommandRunner, prompter prompt.Prompter, con *console.Console, logger *log.Logger) *Runner {
	return &Runner{
		Settings:   settings,
		Commands:   commands,
		Prompter:   prompter,
		Console:    con,
		Logger:     logger,
		Locate:     deps.Locate,
		InitConfig: dotenv.Init,
	}
}

// Run walks the state machine to a terminal state. The returned error is
// non-nil only for failures outside the two fatal outcomes: prompt or file
// I/O errors and cancellation. Fatal outcomes are reported in Report.Outcome.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	if r.Logger == nil {
		r.Logger = logging.Discard()
	}
	if r.Locate == nil {
		r.Locate = deps.Locate
	}
	if r.InitConfig == nil {
		r.InitConfig = dotenv.Init
	}

	report := &Report{PackageCount: -1}
	state := StateCheckInterpreter
	for {
		report.Visited = append(report.Visited, state)
		r.Logger.Debug("entering state", "state", state)

		var next State
		var err error
		switch state {
		case StateCheckInterpreter:
			next = r.checkInterpreter(ctx, report)
		case StateInstallDeps:
			next = r.installDeps(ctx, report)
		case StateCheckTool:
			next = r.checkTools(ctx, report)
		case StateInitConfig:
			next, err = r.initConfig(ctx, report)
		case StateSummary:
			report.Outcome = OutcomeCompleted
			return report, r.summary(ctx)
		case StateFailInterpreter:
			report.Outcome = OutcomeFatalMissingInterpreter
			return report, r.pause(ctx, exitPauseMessage)
		case StateFailInstall:
			report.Outcome = OutcomeFatalInstallFailed
			return report, r.pause(ctx, exitPauseMessage)
		default:
			return report, fmt.Errorf("unknown bootstrap state %v", state)
		}
		if err != nil {
			return report, err
		}
		if err := ctx.Err(); err != nil {
			return report, err
		}
		state = next
	}
}

func (r *Runner) checkInterpreter(ctx context.Context, report *Report) State {
	s := r.Settings.Interpreter
	r.Console.Info("Checking for %s...", s.Command)

	status := r.Commands.Run(ctx, runtime.Command{Name: s.Command, Args: s.VersionArgs, Quiet: true})
	if !status.Success() {
		if status.NotFound() {
			r.Console.Fail("%s is not installed or not on PATH", s.Command)
		} else {
			r.Console.Fail("%s exited with status %d", runtime.Command{Name: s.Command, Args: s.VersionArgs}, status.Code)
		}
		r.Console.Info("Install Python %s or newer from %s", s.MinVersion, s.DownloadURL)
		r.Console.Detail("Enable \"Add Python to PATH\" during installation, then run setup again.")
		return StateFailInterpreter
	}

	banner := firstLine(status.Output())
	report.InterpreterVersion = banner
	if banner == "" {
		r.Console.OK("%s found", s.Command)
	} else {
		r.Console.OK("%s found", banner)
	}

	if s.MinVersion != "" && banner != "" {
		ok, version, err := deps.MeetsMinimum(banner, s.MinVersion)
		switch {
		case err != nil:
			r.Logger.Debug("skipping minimum version check", "banner", banner, "err", err)
		case !ok:
			report.BelowMinimum = true
			r.Console.Warn("Python %s is older than the recommended %s", version, s.MinVersion)
			r.Console.Detail("Download a newer release from %s", s.DownloadURL)
		}
	}
	return StateInstallDeps
}

func (r *Runner) installDeps(ctx context.Context, report *Report) State {
	s := r.Settings
	path := s.ManifestPath()

	if m, err := manifest.ParseFile(path); err != nil {
		r.Logger.Debug("could not parse manifest", "path", path, "err", err)
	} else {
		report.PackageCount = len(m.Packages)
	}

	r.Console.Info("Installing dependencies from %s...", s.Installer.Manifest)
	cmd := runtime.Command{
		Name: s.Installer.Command,
		Args: manifest.InstallArgs(path),
		Dir:  s.ProjectDir,
	}
	status := r.Commands.Run(ctx, cmd)
	if !status.Success() {
		if status.NotFound() {
			r.Console.Fail("Failed to install dependencies: %s is not installed or not on PATH", cmd.Name)
		} else {
			r.Console.Fail("Failed to install dependencies (%s exited with status %d)", cmd.Name, status.Code)
		}
		return StateFailInstall
	}

	switch {
	case report.PackageCount == 1:
		r.Console.OK("Dependencies installed (1 package)")
	case report.PackageCount > 1:
		r.Console.OK("Dependencies installed (%d packages)", report.PackageCount)
	default:
		r.Console.OK("Dependencies installed")
	}
	return StateCheckTool
}

func (r *Runner) checkTools(ctx context.Context, report *Report) State {
	for _, tool := range r.Settings.Tools {
		result := r.checkTool(ctx, tool)
		report.Tools = append(report.Tools, result)

		if result.Available {
			if result.Version != "" {
				r.Console.OK("%s found: %s", tool.Name, result.Version)
			} else {
				r.Console.OK("%s found", tool.Name)
			}
			continue
		}

		r.Console.Warn("%s not found (optional)", tool.Name)
		if tool.DownloadURL != "" {
			r.Console.Detail("Download: %s", tool.DownloadURL)
		}
		if tool.SetupDoc != "" {
			r.Console.Detail("See %s for setup instructions", tool.SetupDoc)
		}
	}
	return StateInitConfig
}

func (r *Runner) checkTool(ctx context.Context, tool config.ToolSettings) ToolResult {
	result := ToolResult{Name: tool.Name, Command: tool.Command}
	cmd := runtime.Command{Name: tool.Command, Args: tool.VersionArgs, Quiet: true}

	status := r.Commands.Run(ctx, cmd)
	if status.NotFound() && len(tool.SearchPaths) > 0 {
		located := r.Locate(tool.Requirement())
		if located.Available && located.Command != tool.Command {
			r.Logger.Debug("tool found outside PATH", "tool", tool.Name, "path", located.Command)
			cmd.Name = located.Command
			result.Command = located.Command
			status = r.Commands.Run(ctx, cmd)
		}
	}

	if status.Success() {
		result.Available = true
		result.Version = firstLine(status.Output())
	}
	return result
}

func (r *Runner) initConfig(ctx context.Context, report *Report) (State, error) {
	s := r.Settings
	envPath := s.EnvFilePath()

	status, err := r.InitConfig(envPath, s.TemplatePath())
	report.ConfigStatus = status
	var permErr error
	if err != nil && status == dotenv.StatusCreated {
		// The copy succeeded; only tightening its permissions failed.
		permErr, err = err, nil
	}
	if err != nil {
		r.Console.Fail("Could not create %s: %v", s.EnvFile.Path, err)
		return StateInitConfig, fmt.Errorf("initializing configuration file: %w", err)
	}

	switch status {
	case dotenv.StatusExisted:
		r.Console.OK("%s already exists", s.EnvFile.Path)
	case dotenv.StatusCreated:
		r.Console.OK("Created %s from %s", s.EnvFile.Path, s.EnvFile.Template)
		if permErr != nil {
			r.Console.Warn("Could not restrict permissions on %s: %v", s.EnvFile.Path, permErr)
		}
		r.Console.Warn("Edit %s and replace the %s placeholder with your real key", s.EnvFile.Path, s.EnvFile.CredentialKey)
		if err := r.offerEditor(ctx, report, envPath); err != nil {
			return StateInitConfig, err
		}
	case dotenv.StatusTemplateMissing:
		r.Console.Fail("%s template not found", s.EnvFile.Template)
		r.Console.Detail("Create %s manually and set %s", s.EnvFile.Path, s.EnvFile.CredentialKey)
	}
	return StateSummary, nil
}

func (r *Runner) offerEditor(ctx context.Context, report *Report, envPath string) error {
	if r.Prompter == nil {
		return nil
	}
	report.PromptShown = true
	open, err := r.Prompter.Confirm(ctx, fmt.Sprintf("Open %s in an editor now", r.Settings.EnvFile.Path))
	if err != nil {
		return fmt.Errorf("asking to open editor: %w", err)
	}
	if !open {
		return nil
	}

	editor := r.Settings.EditorCommand()
	if err := dotenv.OpenEditor(ctx, r.Commands, editor, envPath); err != nil {
		r.Console.Warn("Could not open editor: %v", err)
		r.Console.Detail("Edit %s manually", envPath)
		return nil
	}
	report.EditorOpened = true
	return nil
}

func (r *Runner) summary(ctx context.Context) error {
	s := r.Settings
	r.Console.Blank()
	r.Console.Banner("Setup complete")
	if s.Summary.UsageHint != "" {
		r.Console.Info("Next step:")
		r.Console.Hint("%s", s.Summary.UsageHint)
	}
	if len(s.Summary.Docs) > 0 {
		r.Console.Info("Documentation: %s", strings.Join(s.Summary.Docs, ", "))
	}
	r.Console.Blank()
	return r.pause(ctx, summaryPauseMessage)
}

func (r *Runner) pause(ctx context.Context, message string) error {
	if !r.Settings.Pause || r.Prompter == nil {
		return nil
	}
	if err := r.Prompter.Pause(ctx, message); err != nil {
		return fmt.Errorf("waiting for acknowledgment: %w", err)
	}
	return nil
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(line)
}
