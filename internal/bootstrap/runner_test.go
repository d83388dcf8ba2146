package bootstrap

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subtitle-improver/subsetup/internal/config"
	"github.com/subtitle-improver/subsetup/internal/console"
	"github.com/subtitle-improver/subsetup/internal/deps"
	"github.com/subtitle-improver/subsetup/internal/dotenv"
	"github.com/subtitle-improver/subsetup/internal/testsupport"
)

const templateContent = "# Subtitle Improver\nOPENAI_API_KEY=your_api_key_here\nGPT_MODEL=gpt-4o-mini\n"

type fixture struct {
	dir      string
	settings *config.Settings
	commands *testsupport.FakeRunner
	prompter *testsupport.ScriptedPrompter
	out      *bytes.Buffer
	runner   *Runner
}

// newFixture returns a project where every external command succeeds and
// the template exists but the configuration file does not.
func newFixture(t *testing.T, answers ...bool) *fixture {
	t.Helper()
	dir := t.TempDir()

	s := config.Default(dir)
	s.Interpreter.Command = "python"
	s.Installer.Command = "pip"
	s.Editor = "fake-editor"
	s.Tools = []config.ToolSettings{{
		Name:        "FFmpeg",
		Command:     "ffmpeg",
		VersionArgs: []string{"-version"},
		DownloadURL: config.FFmpegDownloadURL,
		SetupDoc:    config.FFmpegSetupDoc,
	}}

	testsupport.WriteFile(t, s.ManifestPath(), "openai>=1.0\nsrt\n")
	testsupport.WriteFile(t, s.TemplatePath(), templateContent)

	commands := testsupport.NewFakeRunner().
		Succeed("python", "Python 3.12.1\n").
		Succeed("pip", "Successfully installed openai srt\n").
		Succeed("ffmpeg", "ffmpeg version 6.1.1 Copyright (c) 2000-2023\nbuilt with gcc\n").
		Succeed("fake-editor", "")
	prompter := testsupport.NewScriptedPrompter(answers...)
	out := &bytes.Buffer{}

	r := New(s, commands, prompter, console.Plain(out), nil)
	r.Locate = func(req deps.Requirement) deps.Status {
		return deps.Status{Name: req.Name, Command: req.Command}
	}

	return &fixture{dir: dir, settings: s, commands: commands, prompter: prompter, out: out, runner: r}
}

func (f *fixture) run(t *testing.T) *Report {
	t.Helper()
	report, err := f.runner.Run(context.Background())
	require.NoError(t, err)
	return report
}

func TestRun_HappyPath(t *testing.T) {
	f := newFixture(t)

	report := f.run(t)

	assert.Equal(t, OutcomeCompleted, report.Outcome)
	assert.Equal(t, 0, report.Outcome.ExitCode())
	assert.Equal(t, []State{StateCheckInterpreter, StateInstallDeps, StateCheckTool, StateInitConfig, StateSummary}, report.Visited)
	assert.Equal(t, "Python 3.12.1", report.InterpreterVersion)
	assert.False(t, report.BelowMinimum)
	assert.Equal(t, 2, report.PackageCount)
	require.Len(t, report.Tools, 1)
	assert.True(t, report.Tools[0].Available)
	assert.Equal(t, "ffmpeg version 6.1.1 Copyright (c) 2000-2023", report.Tools[0].Version)
	assert.Equal(t, dotenv.StatusCreated, report.ConfigStatus)

	out := f.out.String()
	assert.Contains(t, out, "[ OK ] Python 3.12.1 found")
	assert.Contains(t, out, "[ OK ] Dependencies installed (2 packages)")
	assert.Contains(t, out, "[ OK ] FFmpeg found")
	assert.Contains(t, out, "[ OK ] Created .env from .env.example")
	assert.Contains(t, out, "[WARN] Edit .env and replace the OPENAI_API_KEY placeholder")
	assert.Contains(t, out, "Setup complete")
	assert.Contains(t, out, "python subtitle_improver.py video.mp4")
	assert.Contains(t, out, "README.md, QUICKSTART.md, FFMPEG_SETUP.md")

	assert.Equal(t, []string{summaryPauseMessage}, f.prompter.Pauses)
}

func TestRun_InstallerInvocation(t *testing.T) {
	f := newFixture(t)
	f.run(t)

	var pipCalls int
	for _, c := range f.commands.Calls() {
		if c.Name != "pip" {
			continue
		}
		pipCalls++
		assert.Equal(t, []string{"install", "-r", f.settings.ManifestPath()}, c.Args)
		assert.Equal(t, f.dir, c.Dir)
		assert.False(t, c.Quiet, "installer output should be streamed")
	}
	assert.Equal(t, 1, pipCalls)
}

func TestRun_Idempotence(t *testing.T) {
	f := newFixture(t)
	envPath := f.settings.EnvFilePath()
	testsupport.WriteFile(t, envPath, "OPENAI_API_KEY=sk-real\n")
	before := testsupport.HashFile(t, envPath)

	first := f.run(t)
	second := f.run(t)

	assert.Equal(t, before, testsupport.HashFile(t, envPath))
	for _, report := range []*Report{first, second} {
		assert.Equal(t, OutcomeCompleted, report.Outcome)
		assert.Equal(t, dotenv.StatusExisted, report.ConfigStatus)
		assert.False(t, report.PromptShown)
	}
	assert.Contains(t, f.out.String(), "[ OK ] .env already exists")
}

func TestRun_FatalMissingInterpreter(t *testing.T) {
	f := newFixture(t)
	f.commands.Missing("python")

	report := f.run(t)

	assert.Equal(t, OutcomeFatalMissingInterpreter, report.Outcome)
	assert.Equal(t, 1, report.Outcome.ExitCode())
	assert.ErrorIs(t, report.Outcome.Err(), ErrMissingInterpreter)
	assert.Equal(t, []State{StateCheckInterpreter, StateFailInterpreter}, report.Visited)

	assert.Zero(t, f.commands.CallCount("pip"))
	assert.Zero(t, f.commands.CallCount("ffmpeg"))
	assert.Zero(t, f.commands.CallCount("fake-editor"))
	assert.Empty(t, f.prompter.Questions)
	testsupport.AssertNotExists(t, f.settings.EnvFilePath())

	out := f.out.String()
	assert.Contains(t, out, "[FAIL] python is not installed or not on PATH")
	assert.Contains(t, out, config.PythonDownloadURL)
	assert.NotContains(t, out, "Setup complete")
	assert.Equal(t, []string{exitPauseMessage}, f.prompter.Pauses)
}

func TestRun_FatalInterpreterNonZeroExit(t *testing.T) {
	f := newFixture(t)
	f.commands.Fail("python", 9009)

	report := f.run(t)

	assert.Equal(t, OutcomeFatalMissingInterpreter, report.Outcome)
	assert.Contains(t, f.out.String(), "python --version exited with status 9009")
	assert.Zero(t, f.commands.CallCount("pip"))
}

func TestRun_FatalInstallFailed(t *testing.T) {
	f := newFixture(t)
	f.commands.Fail("pip", 1)

	report := f.run(t)

	assert.Equal(t, OutcomeFatalInstallFailed, report.Outcome)
	assert.Equal(t, 1, report.Outcome.ExitCode())
	assert.ErrorIs(t, report.Outcome.Err(), ErrInstallFailed)
	assert.Equal(t, []State{StateCheckInterpreter, StateInstallDeps, StateFailInstall}, report.Visited)
	assert.Zero(t, f.commands.CallCount("ffmpeg"))
	testsupport.AssertNotExists(t, f.settings.EnvFilePath())
	assert.Contains(t, f.out.String(), "[FAIL] Failed to install dependencies (pip exited with status 1)")
	assert.Equal(t, []string{exitPauseMessage}, f.prompter.Pauses)
}

func TestRun_NonFatalToolMissing(t *testing.T) {
	f := newFixture(t)
	f.commands.Missing("ffmpeg")

	report := f.run(t)

	assert.Equal(t, OutcomeCompleted, report.Outcome)
	assert.Equal(t, 0, report.Outcome.ExitCode())
	assert.True(t, report.Reached(StateInitConfig))
	assert.Equal(t, []string{"FFmpeg"}, report.MissingTools())
	assert.Equal(t, dotenv.StatusCreated, report.ConfigStatus)

	out := f.out.String()
	assert.Contains(t, out, "[WARN] FFmpeg not found (optional)")
	assert.Contains(t, out, config.FFmpegDownloadURL)
	assert.Contains(t, out, config.FFmpegSetupDoc)
}

func TestRun_ToolFoundOutsidePath(t *testing.T) {
	f := newFixture(t)
	located := filepath.Join(f.dir, "ffmpeg", "bin", "ffmpeg")
	f.settings.Tools[0].SearchPaths = []string{located}
	f.commands.Missing("ffmpeg").Succeed(located, "ffmpeg version 7.0\n")
	f.runner.Locate = func(req deps.Requirement) deps.Status {
		return deps.Status{Name: req.Name, Command: located, Available: true}
	}

	report := f.run(t)

	require.Len(t, report.Tools, 1)
	assert.True(t, report.Tools[0].Available)
	assert.Equal(t, located, report.Tools[0].Command)
	assert.Equal(t, 1, f.commands.CallCount(located))
}

func TestRun_TemplateCopyCorrectness(t *testing.T) {
	f := newFixture(t)
	templateBytes, err := os.ReadFile(f.settings.TemplatePath())
	require.NoError(t, err)

	f.run(t)

	created, err := os.ReadFile(f.settings.EnvFilePath())
	require.NoError(t, err)
	assert.Equal(t, templateBytes, created)
}

func TestRun_MissingTemplate(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.Remove(f.settings.TemplatePath()))

	report := f.run(t)

	assert.Equal(t, OutcomeCompleted, report.Outcome)
	assert.Equal(t, 0, report.Outcome.ExitCode())
	assert.Equal(t, dotenv.StatusTemplateMissing, report.ConfigStatus)
	assert.False(t, report.PromptShown)
	testsupport.AssertNotExists(t, f.settings.EnvFilePath())
	assert.Contains(t, f.out.String(), "[FAIL] .env.example template not found")
	assert.True(t, report.Reached(StateSummary))
}

func TestRun_PromptGating(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		f := newFixture(t)
		report := f.run(t)
		assert.True(t, report.PromptShown)
		assert.Equal(t, []string{"Open .env in an editor now"}, f.prompter.Questions)
	})

	t.Run("pre-existing", func(t *testing.T) {
		f := newFixture(t, true)
		testsupport.WriteFile(t, f.settings.EnvFilePath(), "OPENAI_API_KEY=sk-real\n")
		report := f.run(t)
		assert.False(t, report.PromptShown)
		assert.Empty(t, f.prompter.Questions)
		assert.Zero(t, f.commands.CallCount("fake-editor"))
	})
}

func TestRun_EditorAccepted(t *testing.T) {
	f := newFixture(t, true)

	report := f.run(t)

	assert.True(t, report.EditorOpened)
	calls := f.commands.Calls()
	last := calls[len(calls)-1]
	assert.Equal(t, "fake-editor", last.Name)
	assert.Equal(t, []string{f.settings.EnvFilePath()}, last.Args)
	assert.True(t, last.Interactive)
}

func TestRun_EditorDeclined(t *testing.T) {
	f := newFixture(t, false)

	report := f.run(t)

	assert.True(t, report.PromptShown)
	assert.False(t, report.EditorOpened)
	assert.Zero(t, f.commands.CallCount("fake-editor"))
}

func TestRun_EditorFailureIsNotFatal(t *testing.T) {
	f := newFixture(t, true)
	f.commands.Missing("fake-editor")

	report := f.run(t)

	assert.Equal(t, OutcomeCompleted, report.Outcome)
	assert.False(t, report.EditorOpened)
	assert.Contains(t, f.out.String(), "[WARN] Could not open editor")
}

func TestRun_BelowMinimumVersionWarns(t *testing.T) {
	f := newFixture(t)
	f.commands.Succeed("python", "Python 3.6.9\n")

	report := f.run(t)

	assert.Equal(t, OutcomeCompleted, report.Outcome)
	assert.True(t, report.BelowMinimum)
	assert.Contains(t, f.out.String(), "[WARN] Python 3.6.9 is older than the recommended 3.8")
}

func TestRun_VersionOnStderr(t *testing.T) {
	f := newFixture(t)
	f.commands.Respond("python", testsupport.FakeStatus(0, "", "Python 2.7.18\n"))

	report := f.run(t)

	assert.Equal(t, "Python 2.7.18", report.InterpreterVersion)
	assert.True(t, report.BelowMinimum)
}

func TestRun_NoPause(t *testing.T) {
	f := newFixture(t)
	f.settings.Pause = false

	f.run(t)
	assert.Empty(t, f.prompter.Pauses)

	f.commands.Missing("python")
	f.run(t)
	assert.Empty(t, f.prompter.Pauses)
}

func TestRun_CopyFailureAborts(t *testing.T) {
	f := newFixture(t)
	// A directory in place of the template cannot be copied.
	require.NoError(t, os.Remove(f.settings.TemplatePath()))
	require.NoError(t, os.Mkdir(f.settings.TemplatePath(), 0o755))

	report, err := f.runner.Run(context.Background())

	require.Error(t, err)
	assert.False(t, report.Reached(StateSummary))
	testsupport.AssertNotExists(t, f.settings.EnvFilePath())
}

func TestRun_Canceled(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := f.runner.Run(ctx)

	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, []State{StateCheckInterpreter}, report.Visited)
}

func TestStateTerminal(t *testing.T) {
	assert.True(t, StateSummary.Terminal())
	assert.True(t, StateFailInterpreter.Terminal())
	assert.True(t, StateFailInstall.Terminal())
	assert.False(t, StateCheckTool.Terminal())
	assert.Equal(t, "InitConfig", StateInitConfig.String())
	assert.Equal(t, "fatal-install-failed", OutcomeFatalInstallFailed.String())
	assert.NoError(t, OutcomeCompleted.Err())
}

func TestRun_SinglePackageWording(t *testing.T) {
	f := newFixture(t)
	testsupport.WriteFile(t, f.settings.ManifestPath(), "openai>=1.0\n")

	report := f.run(t)

	assert.Equal(t, 1, report.PackageCount)
	assert.Contains(t, f.out.String(), "[ OK ] Dependencies installed (1 package)\n")
}

func TestRun_WithoutPrompter(t *testing.T) {
	f := newFixture(t)
	f.runner.Prompter = nil

	report := f.run(t)

	assert.Equal(t, OutcomeCompleted, report.Outcome)
	assert.Equal(t, dotenv.StatusCreated, report.ConfigStatus)
	assert.False(t, report.PromptShown)
	assert.Zero(t, f.commands.CallCount("fake-editor"))
}

func TestRun_PermissionFailureAfterCopyWarns(t *testing.T) {
	f := newFixture(t, false)
	f.runner.InitConfig = func(path, template string) (dotenv.InitStatus, error) {
		data, err := os.ReadFile(template)
		if err != nil {
			return dotenv.StatusTemplateMissing, err
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return dotenv.StatusTemplateMissing, err
		}
		return dotenv.StatusCreated, errors.New("chmod: operation not permitted")
	}

	report := f.run(t)

	assert.Equal(t, OutcomeCompleted, report.Outcome)
	assert.Equal(t, dotenv.StatusCreated, report.ConfigStatus)
	assert.True(t, report.PromptShown)
	assert.True(t, report.Reached(StateSummary))
	out := f.out.String()
	assert.Contains(t, out, "[WARN] Could not restrict permissions on .env: chmod: operation not permitted")
	assert.NotContains(t, out, "Could not create")
}

func TestRun_InterruptedAtPause(t *testing.T) {
	f := newFixture(t)
	f.commands.Missing("python")
	ctx, cancel := context.WithCancel(context.Background())
	f.runner.Prompter = cancellingPrompter{cancel: cancel}

	report, err := f.runner.Run(ctx)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, OutcomeFatalMissingInterpreter, report.Outcome)
}

// cancellingPrompter cancels the run while waiting, as Ctrl-C would.
type cancellingPrompter struct {
	cancel context.CancelFunc
}

func (p cancellingPrompter) Confirm(ctx context.Context, _ string) (bool, error) {
	p.cancel()
	<-ctx.Done()
	return false, ctx.Err()
}

func (p cancellingPrompter) Pause(ctx context.Context, _ string) error {
	p.cancel()
	<-ctx.Done()
	return ctx.Err()
}
