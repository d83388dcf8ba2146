// Package doctor runs read-only diagnostics over a Subtitle Improver
// project. Nothing here installs packages or writes files.
package doctor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/subtitle-improver/subsetup/internal/config"
	"github.com/subtitle-improver/subsetup/internal/console"
	"github.com/subtitle-improver/subsetup/internal/deps"
	"github.com/subtitle-improver/subsetup/internal/dotenv"
	"github.com/subtitle-improver/subsetup/internal/manifest"
	"github.com/subtitle-improver/subsetup/internal/runtime"
)

// Level grades a single check.
type Level int

const (
	LevelOK Level = iota
	LevelWarn
	LevelFail
	LevelMissing
)

// Marker returns the console marker for l.
func (l Level) Marker() console.Marker {
	switch l {
	case LevelOK:
		return console.MarkerOK
	case LevelWarn:
		return console.MarkerWarn
	case LevelMissing:
		return console.MarkerMiss
	default:
		return console.MarkerFail
	}
}

// Result is the outcome of one check.
type Result struct {
	Check    string
	Level    Level
	Detail   string
	Required bool
}

// Checker inspects the environment described by Settings.
type Checker struct {
	Settings *config.Settings
	Commands runtime.CommandRunner
	Locate   func(deps.Requirement) deps.Status
}

// New returns a Checker using deps.Locate for tools outside PATH.
func New(settings *config.Settings, commands runtime.CommandRunner) *Checker {
	return &Checker{Settings: settings, Commands: commands, Locate: deps.Locate}
}

// Run executes every check in a fixed order.
func (c *Checker) Run(ctx context.Context) []Result {
	results := []Result{
		c.checkInterpreter(ctx),
		c.checkInstaller(ctx),
		c.checkManifest(),
	}
	for _, tool := range c.Settings.Tools {
		results = append(results, c.checkTool(ctx, tool))
	}
	results = append(results, c.checkTemplate())
	results = append(results, c.checkEnvFile()...)
	return results
}

// Failed reports whether any required check failed.
func Failed(results []Result) bool {
	for _, r := range results {
		if r.Required && (r.Level == LevelFail || r.Level == LevelMissing) {
			return true
		}
	}
	return false
}

// Render writes results as a table.
func Render(w io.Writer, results []Result) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Check", "Status", "Detail"})
	for _, r := range results {
		tw.AppendRow(table.Row{r.Check, string(r.Level.Marker()), r.Detail})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignCenter, AlignHeader: text.AlignCenter},
		{Number: 3, WidthMax: 72},
	})
	tw.Render()
}

func (c *Checker) checkInterpreter(ctx context.Context) Result {
	s := c.Settings.Interpreter
	res := Result{Check: "Interpreter (" + s.Command + ")", Required: true}

	status := c.Commands.Run(ctx, runtime.Command{Name: s.Command, Args: s.VersionArgs, Quiet: true})
	if !status.Success() {
		res.Level = LevelMissing
		res.Detail = describeFailure(status) + "; download from " + s.DownloadURL
		return res
	}

	banner := firstLine(status.Output())
	res.Detail = banner
	if s.MinVersion == "" {
		return res
	}
	ok, _, err := deps.MeetsMinimum(banner, s.MinVersion)
	switch {
	case err != nil:
		res.Level = LevelWarn
		res.Detail = fmt.Sprintf("%s (could not verify minimum %s)", banner, s.MinVersion)
	case !ok:
		res.Level = LevelWarn
		res.Detail = fmt.Sprintf("%s (older than %s)", banner, s.MinVersion)
	}
	return res
}

func (c *Checker) checkInstaller(ctx context.Context) Result {
	name := c.Settings.Installer.Command
	res := Result{Check: "Installer (" + name + ")", Required: true}

	status := c.Commands.Run(ctx, runtime.Command{Name: name, Args: []string{"--version"}, Quiet: true})
	if !status.Success() {
		res.Level = LevelMissing
		res.Detail = describeFailure(status)
		return res
	}
	res.Detail = firstLine(status.Output())
	return res
}

func (c *Checker) checkManifest() Result {
	res := Result{Check: "Manifest (" + c.Settings.Installer.Manifest + ")", Required: true}

	m, err := manifest.ParseFile(c.Settings.ManifestPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			res.Level = LevelMissing
			res.Detail = "not found"
		} else {
			res.Level = LevelFail
			res.Detail = err.Error()
		}
		return res
	}

	res.Detail = fmt.Sprintf("%d packages", len(m.Packages))
	if len(m.Includes) > 0 {
		res.Detail += fmt.Sprintf(", includes %s", strings.Join(m.Includes, ", "))
	}
	if len(m.Packages) == 0 && len(m.Includes) == 0 {
		res.Level = LevelWarn
		res.Detail = "no packages listed"
	}
	return res
}

func (c *Checker) checkTool(ctx context.Context, tool config.ToolSettings) Result {
	res := Result{Check: tool.Name + " (optional)"}
	cmd := runtime.Command{Name: tool.Command, Args: tool.VersionArgs, Quiet: true}

	status := c.Commands.Run(ctx, cmd)
	if status.NotFound() && len(tool.SearchPaths) > 0 && c.Locate != nil {
		if located := c.Locate(tool.Requirement()); located.Available && located.Command != tool.Command {
			cmd.Name = located.Command
			status = c.Commands.Run(ctx, cmd)
		}
	}

	if !status.Success() {
		res.Level = LevelWarn
		res.Detail = describeFailure(status)
		if tool.SetupDoc != "" {
			res.Detail += "; see " + tool.SetupDoc
		}
		return res
	}
	res.Detail = firstLine(status.Output())
	if cmd.Name != tool.Command {
		res.Detail += " at " + cmd.Name
	}
	return res
}

func (c *Checker) checkTemplate() Result {
	res := Result{Check: "Template (" + c.Settings.EnvFile.Template + ")"}
	if _, err := os.Stat(c.Settings.TemplatePath()); err != nil {
		res.Level = LevelWarn
		res.Detail = "not found"
		return res
	}
	res.Detail = "present"
	return res
}

func (c *Checker) checkEnvFile() []Result {
	s := c.Settings.EnvFile
	file := Result{Check: "Config (" + s.Path + ")"}
	path := c.Settings.EnvFilePath()

	if _, err := os.Stat(path); err != nil {
		file.Level = LevelMissing
		file.Detail = "not created yet; run setup"
		return []Result{file}
	}
	file.Detail = "present"

	cred := Result{Check: "Credential (" + s.CredentialKey + ")"}
	state, err := dotenv.CheckCredential(path, s.CredentialKey, s.Placeholder)
	switch {
	case err != nil:
		cred.Level = LevelFail
		cred.Detail = err.Error()
	case state == dotenv.CredentialMissing:
		cred.Level = LevelMissing
		cred.Detail = "not set in " + s.Path
	case state == dotenv.CredentialPlaceholder:
		cred.Level = LevelWarn
		cred.Detail = "still the template placeholder"
	default:
		cred.Detail = "set"
	}
	return []Result{file, cred}
}

func describeFailure(status runtime.ExitStatus) string {
	if status.NotFound() {
		return "not found on PATH"
	}
	if status.Err != nil {
		return status.Err.Error()
	}
	return fmt.Sprintf("exited with status %d", status.Code)
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(line)
}
