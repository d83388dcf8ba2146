// Package testsupport provides fakes and fixtures shared by package tests.
package testsupport

import (
	"context"
	"os/exec"
	"sync"

	"github.com/subtitle-improver/subsetup/internal/runtime"
)

// FakeRunner is a scripted runtime.CommandRunner. Responses are keyed by
// command name; unscripted commands behave as if the executable is missing.
type FakeRunner struct {
	mu        sync.Mutex
	responses map[string]runtime.ExitStatus
	calls     []runtime.Command
}

// NewFakeRunner returns an empty FakeRunner.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{responses: make(map[string]runtime.ExitStatus)}
}

// Succeed scripts name to exit 0 and print stdout.
func (f *FakeRunner) Succeed(name, stdout string) *FakeRunner {
	return f.Respond(name, runtime.ExitStatus{Code: 0, Stdout: stdout})
}

// Fail scripts name to exit with code.
func (f *FakeRunner) Fail(name string, code int) *FakeRunner {
	return f.Respond(name, runtime.ExitStatus{Code: code, Stderr: "failed"})
}

// Missing scripts name to be absent from PATH.
func (f *FakeRunner) Missing(name string) *FakeRunner {
	return f.Respond(name, NotFound())
}

// Respond scripts an arbitrary status for name.
func (f *FakeRunner) Respond(name string, status runtime.ExitStatus) *FakeRunner {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[name] = status
	return f
}

// Run records the call and returns the scripted status.
func (f *FakeRunner) Run(_ context.Context, cmd runtime.Command) runtime.ExitStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, cmd)
	if status, ok := f.responses[cmd.Name]; ok {
		return status
	}
	return NotFound()
}

// Calls returns every recorded invocation in order.
func (f *FakeRunner) Calls() []runtime.Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]runtime.Command, len(f.calls))
	copy(out, f.calls)
	return out
}

// CallCount returns how many times name was invoked.
func (f *FakeRunner) CallCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// NotFound is the status a real runner reports for a missing executable.
func NotFound() runtime.ExitStatus {
	return runtime.ExitStatus{Code: runtime.ExitCodeNotFound, Err: exec.ErrNotFound}
}

// FakeStatus builds an ExitStatus for a process that started and exited.
func FakeStatus(code int, stdout, stderr string) runtime.ExitStatus {
	return runtime.ExitStatus{Code: code, Stdout: stdout, Stderr: stderr}
}
