package runtime

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/charmbracelet/log"
)

// ExecRunner runs commands with os/exec.
type ExecRunner struct {
	// Stdin, Stdout and Stderr can be set for testing; default to the
	// process's own streams.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	Logger *log.Logger
}

// NewExecRunner returns an ExecRunner bound to the given streams.
func NewExecRunner(streams Streams, logger *log.Logger) *ExecRunner {
	return &ExecRunner{
		Stdin:  streams.Stdin,
		Stdout: streams.Stdout,
		Stderr: streams.Stderr,
		Logger: logger,
	}
}

// Run executes cmd and blocks until it exits. Output is captured and, unless
// cmd.Quiet is set, streamed to the configured writers at the same time.
func (r *ExecRunner) Run(ctx context.Context, cmd Command) ExitStatus {
	if r.Logger != nil {
		r.Logger.Debug("running command", "cmd", cmd.String(), "dir", cmd.Dir)
	}

	bin, err := exec.LookPath(cmd.Name)
	if err != nil {
		if r.Logger != nil {
			r.Logger.Debug("command not found", "name", cmd.Name, "err", err)
		}
		return ExitStatus{Code: ExitCodeNotFound, Err: err}
	}

	c := exec.CommandContext(ctx, bin, cmd.Args...)
	c.Dir = cmd.Dir

	stdout := r.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := r.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	var stdoutBuf, stderrBuf bytes.Buffer
	if cmd.Quiet {
		c.Stdout = &stdoutBuf
		c.Stderr = &stderrBuf
	} else {
		c.Stdout = io.MultiWriter(stdout, &stdoutBuf)
		c.Stderr = io.MultiWriter(stderr, &stderrBuf)
	}

	if cmd.Interactive {
		stdin := r.Stdin
		if stdin == nil {
			stdin = os.Stdin
		}
		c.Stdin = stdin
	}

	err = c.Run()

	status := ExitStatus{
		Stdout: stdoutBuf.String(),
		Stderr: stderrBuf.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			status.Code = exitErr.ExitCode()
			if status.Code < 0 {
				// Killed by a signal.
				status.Code = 1
				status.Err = fmt.Errorf("%s: %w", cmd.Name, err)
			}
		} else {
			status.Code = 1
			status.Err = fmt.Errorf("executing %s: %w", cmd.Name, err)
		}
	}

	if r.Logger != nil {
		r.Logger.Debug("command finished", "cmd", cmd.Name, "code", status.Code)
	}
	return status
}
