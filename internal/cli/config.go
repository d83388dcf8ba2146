package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/subtitle-improver/subsetup/internal/branding"
	"github.com/subtitle-improver/subsetup/internal/config"
)

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage setup settings",
	Long: `Read and write setup settings stored in ` + branding.SettingsFile() + ` in the project
directory. Settings can also be given as ` + branding.EnvPrefix() + `_* environment variables,
e.g. ` + branding.EnvVar("INTERPRETER_COMMAND") + `=py.`,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a setting value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		path, err := settingsFilePath()
		if err != nil {
			return err
		}
		if err := config.Set(path, key, value); err != nil {
			return fmt.Errorf("setting %q: %w", key, err)
		}
		printf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a setting value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := config.Get(loadOptions(), args[0])
		if err != nil {
			return err
		}
		printf(cmd.OutOrStdout(), "%s\n", value)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings as YAML",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			return err
		}
		out, err := config.Marshal(settings)
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		if settings.SourceFile != "" {
			printf(w, "# source: %s\n", settings.SourceFile)
		}
		printf(w, "%s", out)
		return nil
	},
}

func settingsFilePath() (string, error) {
	if flagSettings != "" {
		return flagSettings, nil
	}
	dir := flagProjectDir
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving project directory: %w", err)
	}
	return config.FilePath(abs), nil
}
