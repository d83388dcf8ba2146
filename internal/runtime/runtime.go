package runtime

import (
	"context"
	"errors"
	"io"
	"os/exec"
	"strings"
)

// ExitCodeNotFound is reported when the executable could not be located.
// It matches the conventional shell status for "command not found".
const ExitCodeNotFound = 127

// Command describes one external invocation.
type Command struct {
	Name string
	Args []string
	Dir  string

	// Interactive attaches the runner's stdin so the child can read from the
	// terminal (editors, installers asking for confirmation).
	Interactive bool

	// Quiet captures output without echoing it to the runner's writers.
	Quiet bool
}

// String renders the command line for log and status messages.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// ExitStatus reports how an external command finished.
type ExitStatus struct {
	Code   int
	Stdout string
	Stderr string

	// Err is set when the process could not be started at all, e.g. the
	// executable was not found. Code is non-zero whenever Err is set.
	Err error
}

// Success reports whether the command started and exited with status 0.
func (s ExitStatus) Success() bool {
	return s.Err == nil && s.Code == 0
}

// NotFound reports whether the executable could not be located.
func (s ExitStatus) NotFound() bool {
	return errors.Is(s.Err, exec.ErrNotFound)
}

// Output returns stdout, falling back to stderr. Several tools print their
// version banner on stderr (older Python releases among them).
func (s ExitStatus) Output() string {
	if out := strings.TrimSpace(s.Stdout); out != "" {
		return out
	}
	return strings.TrimSpace(s.Stderr)
}

// CommandRunner runs external commands synchronously. Implementations never
// return a Go error for a failing command; failures are expressed through the
// returned ExitStatus so callers branch on exit codes only.
type CommandRunner interface {
	Run(ctx context.Context, cmd Command) ExitStatus
}

// Streams groups the standard streams handed to child processes.
type Streams struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}
