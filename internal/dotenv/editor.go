package dotenv

import (
	"context"
	"fmt"
	"strings"

	"github.com/subtitle-improver/subsetup/internal/runtime"
)

// EditorCommand builds the invocation that opens path in editor. The editor
// string may carry arguments, e.g. "code --wait".
func EditorCommand(editor, path string) (runtime.Command, error) {
	fields := strings.Fields(editor)
	if len(fields) == 0 {
		return runtime.Command{}, fmt.Errorf("no editor configured")
	}
	args := append(fields[1:len(fields):len(fields)], path)
	return runtime.Command{Name: fields[0], Args: args, Interactive: true}, nil
}

// OpenEditor opens path in editor and blocks until the editor exits.
func OpenEditor(ctx context.Context, runner runtime.CommandRunner, editor, path string) error {
	cmd, err := EditorCommand(editor, path)
	if err != nil {
		return err
	}
	status := runner.Run(ctx, cmd)
	if status.Err != nil {
		return fmt.Errorf("running editor %s: %w", cmd.Name, status.Err)
	}
	if status.Code != 0 {
		return fmt.Errorf("editor %s exited with status %d", cmd.Name, status.Code)
	}
	return nil
}
