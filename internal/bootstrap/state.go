package bootstrap

import (
	"errors"
	"fmt"

	"github.com/subtitle-improver/subsetup/internal/dotenv"
)

// State is a step of the bootstrap state machine.
type State int

const (
	StateCheckInterpreter State = iota
	StateInstallDeps
	StateCheckTool
	StateInitConfig
	StateSummary
	StateFailInterpreter
	StateFailInstall
)

func (s State) String() string {
	switch s {
	case StateCheckInterpreter:
		return "CheckInterpreter"
	case StateInstallDeps:
		return "InstallDeps"
	case StateCheckTool:
		return "CheckTool"
	case StateInitConfig:
		return "InitConfig"
	case StateSummary:
		return "Summary"
	case StateFailInterpreter:
		return "FailInterpreter"
	case StateFailInstall:
		return "FailInstall"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Terminal reports whether the run ends in s.
func (s State) Terminal() bool {
	return s == StateSummary || s == StateFailInterpreter || s == StateFailInstall
}

// Outcome is the final result of a run.
type Outcome int

const (
	OutcomeCompleted Outcome = iota
	OutcomeFatalMissingInterpreter
	OutcomeFatalInstallFailed
)

// Sentinel errors for the fatal outcomes.
var (
	ErrMissingInterpreter = errors.New("interpreter not available")
	ErrInstallFailed      = errors.New("dependency installation failed")
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCompleted:
		return "completed"
	case OutcomeFatalMissingInterpreter:
		return "fatal-missing-interpreter"
	case OutcomeFatalInstallFailed:
		return "fatal-install-failed"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// ExitCode maps the outcome to a process exit status.
func (o Outcome) ExitCode() int {
	if o == OutcomeCompleted {
		return 0
	}
	return 1
}

// Err returns the sentinel error for a fatal outcome, nil otherwise.
func (o Outcome) Err() error {
	switch o {
	case OutcomeFatalMissingInterpreter:
		return ErrMissingInterpreter
	case OutcomeFatalInstallFailed:
		return ErrInstallFailed
	default:
		return nil
	}
}

// ToolResult records the availability of one optional tool.
type ToolResult struct {
	Name      string
	Command   string
	Available bool
	Version   string
}

// Report is what a run observed.
type Report struct {
	Outcome Outcome
	Visited []State

	InterpreterVersion string
	// BelowMinimum is set when the detected interpreter is older than the
	// configured minimum. It never fails the run.
	BelowMinimum bool

	// PackageCount is the number of packages listed in the manifest, or -1
	// when the manifest could not be parsed.
	PackageCount int

	Tools []ToolResult

	ConfigStatus dotenv.InitStatus
	PromptShown  bool
	EditorOpened bool
}

// Reached reports whether the run entered s.
func (r *Report) Reached(s State) bool {
	for _, v := range r.Visited {
		if v == s {
			return true
		}
	}
	return false
}

// MissingTools returns the names of tools that were not found.
func (r *Report) MissingTools() []string {
	var names []string
	for _, t := range r.Tools {
		if !t.Available {
			names = append(names, t.Name)
		}
	}
	return names
}
