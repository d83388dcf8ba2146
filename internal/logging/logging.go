// Package logging configures the diagnostic logger. User-facing status goes
// through the console package; this logger carries debug detail only.
package logging

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/subtitle-improver/subsetup/internal/branding"
)

// New returns a logger writing to w. Debug output is enabled by verbose;
// otherwise only warnings and errors are shown.
func New(w io.Writer, verbose bool) *log.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix:          branding.CLIName(),
		Level:           level,
		ReportTimestamp: verbose,
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}
