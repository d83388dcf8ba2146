package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/subtitle-improver/subsetup/internal/dotenv"
)

var envShowNoRedact bool

func init() {
	envShowCmd.Flags().BoolVar(&envShowNoRedact, "no-redact", false, "Show values without redaction")

	envCmd.AddCommand(envShowCmd)
	envCmd.AddCommand(envEditCmd)
	rootCmd.AddCommand(envCmd)
}

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Inspect and edit the application's .env file",
}

var envShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print .env with secrets redacted",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			return err
		}
		path := settings.EnvFilePath()

		entries, err := dotenv.ParseFile(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("%s not found; run '%s setup' first", path, cmd.Root().Name())
			}
			return err
		}

		out := cmd.OutOrStdout()
		printf(out, "# %s\n", path)
		for _, e := range entries {
			value := e.Value
			if !envShowNoRedact {
				value = dotenv.RedactValue(e.Key, value)
			}
			printf(out, "%s=%s\n", e.Key, value)
		}
		return nil
	},
}

var envEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open .env in a text editor",
	Long: `Open the .env file in an editor. The editor is taken from the "editor"
setting, then $EDITOR, then notepad on Windows or vi elsewhere.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			return err
		}
		path := settings.EnvFilePath()
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("%s not found; run '%s setup' first", path, cmd.Root().Name())
			}
			return fmt.Errorf("checking %s: %w", path, err)
		}

		logger := newLogger(cmd, settings)
		return dotenv.OpenEditor(cmd.Context(), newCommandRunner(cmd, logger), settings.EditorCommand(), path)
	},
}
