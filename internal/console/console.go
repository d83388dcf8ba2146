// Package console prints human-readable status lines with fixed-width
// markers such as "[ OK ]" and "[WARN]".
package console

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Marker labels a status line.
type Marker string

const (
	MarkerOK   Marker = "[ OK ]"
	MarkerWarn Marker = "[WARN]"
	MarkerFail Marker = "[FAIL]"
	MarkerInfo Marker = "[INFO]"
	MarkerMiss Marker = "[MISS]"
)

var markerColors = map[Marker]lipgloss.Color{
	MarkerOK:   lipgloss.Color("42"),
	MarkerWarn: lipgloss.Color("214"),
	MarkerFail: lipgloss.Color("196"),
	MarkerInfo: lipgloss.Color("39"),
	MarkerMiss: lipgloss.Color("214"),
}

// Console writes status output to a single writer.
type Console struct {
	w      io.Writer
	color  bool
	banner lipgloss.Style
	hint   lipgloss.Style
}

// New returns a Console writing to w. Colors are enabled only when w is a
// terminal and NO_COLOR is unset.
func New(w io.Writer) *Console {
	return &Console{
		w:     w,
		color: isTerminal(w) && os.Getenv("NO_COLOR") == "",
		banner: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")),
		hint: lipgloss.NewStyle().
			Foreground(lipgloss.Color("242")).
			Italic(true),
	}
}

// Plain returns a Console that never emits color codes.
func Plain(w io.Writer) *Console {
	c := New(w)
	c.color = false
	return c
}

// Status prints one marker-prefixed line.
func (c *Console) Status(m Marker, format string, args ...any) {
	fmt.Fprintf(c.w, "%s %s\n", c.marker(m), fmt.Sprintf(format, args...))
}

func (c *Console) OK(format string, args ...any)   { c.Status(MarkerOK, format, args...) }
func (c *Console) Warn(format string, args ...any) { c.Status(MarkerWarn, format, args...) }
func (c *Console) Fail(format string, args ...any) { c.Status(MarkerFail, format, args...) }
func (c *Console) Info(format string, args ...any) { c.Status(MarkerInfo, format, args...) }

// Detail prints an indented continuation line under the previous status.
func (c *Console) Detail(format string, args ...any) {
	fmt.Fprintf(c.w, "       %s\n", fmt.Sprintf(format, args...))
}

// Hint prints a de-emphasized line, e.g. a suggested next command.
func (c *Console) Hint(format string, args ...any) {
	text := fmt.Sprintf(format, args...)
	if c.color {
		text = c.hint.Render(text)
	}
	fmt.Fprintf(c.w, "  %s\n", text)
}

// Banner prints a title framed by rules.
func (c *Console) Banner(title string) {
	rule := strings.Repeat("=", 44)
	if c.color {
		title = c.banner.Render(title)
	}
	fmt.Fprintf(c.w, "%s\n  %s\n%s\n", rule, title, rule)
}

// Blank prints an empty line.
func (c *Console) Blank() { fmt.Fprintln(c.w) }

func (c *Console) marker(m Marker) string {
	if !c.color {
		return string(m)
	}
	color, ok := markerColors[m]
	if !ok {
		return string(m)
	}
	return lipgloss.NewStyle().Bold(true).Foreground(color).Render(string(m))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
