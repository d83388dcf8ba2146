// Package prompt asks the user yes/no questions and waits for acknowledgment.
// On a terminal a single keystroke answers, like cmd.exe's "choice" and
// "pause"; with redirected input whole lines are read instead.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// ErrInterrupted is returned when the user presses Ctrl-C at a prompt or the
// context is cancelled while waiting for input.
var ErrInterrupted = errors.New("interrupted")

const keyCtrlC = 3

// Prompter is the interactive capability the bootstrap depends on.
type Prompter interface {
	// Confirm asks a yes/no question. Only an explicit "y"/"yes" is true.
	Confirm(ctx context.Context, question string) (bool, error)
	// Pause prints message and blocks until the user acknowledges.
	Pause(ctx context.Context, message string) error
}

// Terminal prompts on a file descriptor, typically os.Stdin. Reads are
// abandoned when the context is cancelled; a Terminal is not reused after
// ErrInterrupted.
type Terminal struct {
	in     io.Reader
	reader *bufio.Reader
	out    io.Writer
	fd     int
	raw    bool
}

// NewTerminal returns a Terminal reading from in and writing to out.
// Single-keystroke mode is used when in is an interactive terminal.
func NewTerminal(in *os.File, out io.Writer) *Terminal {
	t := &Terminal{in: in, reader: bufio.NewReader(in), out: out, fd: -1}
	if in != nil {
		fd := in.Fd()
		if isatty.IsTerminal(fd) {
			t.fd = int(fd)
			t.raw = true
		}
	}
	return t
}

// NewReader returns a line-oriented prompter over an arbitrary reader.
func NewReader(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: in, reader: bufio.NewReader(in), out: out, fd: -1}
}

// Confirm implements Prompter.
func (t *Terminal) Confirm(ctx context.Context, question string) (bool, error) {
	fmt.Fprintf(t.out, "%s [Y/N]? ", question)

	if t.raw {
		key, err := t.readKey(ctx)
		if errors.Is(err, ErrInterrupted) {
			fmt.Fprintln(t.out)
			return false, err
		}
		if err == nil {
			fmt.Fprintf(t.out, "%c\n", printable(key))
			if key == keyCtrlC {
				return false, ErrInterrupted
			}
			return key == 'y' || key == 'Y', nil
		}
		// Fall through to line mode when raw mode is unavailable (e.g. mintty).
	}

	line, err := t.readLine(ctx)
	if errors.Is(err, ErrInterrupted) {
		fmt.Fprintln(t.out)
		return false, err
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("reading answer: %w", err)
	}
	if errors.Is(err, io.EOF) && line == "" {
		fmt.Fprintln(t.out)
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

// Pause implements Prompter.
func (t *Terminal) Pause(ctx context.Context, message string) error {
	if message == "" {
		message = "Press any key to continue . . ."
	}
	fmt.Fprint(t.out, message)

	if t.raw {
		key, err := t.readKey(ctx)
		if errors.Is(err, ErrInterrupted) {
			fmt.Fprintln(t.out)
			return err
		}
		if err == nil {
			fmt.Fprintln(t.out)
			if key == keyCtrlC {
				return ErrInterrupted
			}
			return nil
		}
	}

	_, err := t.readLine(ctx)
	fmt.Fprintln(t.out)
	if errors.Is(err, ErrInterrupted) {
		return err
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("waiting for acknowledgment: %w", err)
	}
	return nil
}

type readResult struct {
	line string
	err  error
}

// readLine reads one line, giving up when ctx is done. The blocked read is
// left behind on cancellation.
func (t *Terminal) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInterrupted, err)
	}
	done := make(chan readResult, 1)
	go func() {
		line, err := t.reader.ReadString('\n')
		done <- readResult{line: line, err: err}
	}()
	select {
	case r := <-done:
		return r.line, r.err
	case <-ctx.Done():
		return "", fmt.Errorf("%w: %w", ErrInterrupted, ctx.Err())
	}
}

// readKey reads one byte with the terminal in raw mode, giving up when ctx
// is done.
func (t *Terminal) readKey(ctx context.Context) (byte, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInterrupted, err)
	}
	state, err := term.MakeRaw(t.fd)
	if err != nil {
		return 0, fmt.Errorf("entering raw mode: %w", err)
	}
	defer term.Restore(t.fd, state)

	done := make(chan readResult, 1)
	go func() {
		var buf [1]byte
		_, err := io.ReadFull(t.in, buf[:])
		done <- readResult{line: string(buf[:]), err: err}
	}()
	select {
	case r := <-done:
		if r.err != nil {
			return 0, fmt.Errorf("reading key: %w", r.err)
		}
		return r.line[0], nil
	case <-ctx.Done():
		return 0, fmt.Errorf("%w: %w", ErrInterrupted, ctx.Err())
	}
}

func printable(b byte) rune {
	if b < 0x20 || b > 0x7e {
		return ' '
	}
	return rune(b)
}
