package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/subtitle-improver/subsetup/internal/branding"
)

var (
	versionShort bool
	versionJSON  bool
)

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print the version number only")
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Print build information as JSON")
	rootCmd.AddCommand(versionCmd)
}

// buildInfo describes this binary and the application it prepares.
type buildInfo struct {
	Name    string `json:"name"`
	App     string `json:"app"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

func currentBuild() buildInfo {
	return buildInfo{
		Name:    branding.CLIName(),
		App:     branding.AppName(),
		Version: buildVersion,
		Commit:  buildCommit,
		Date:    buildDate,
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the setup tool's version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := currentBuild()
		w := cmd.OutOrStdout()

		switch {
		case versionShort:
			printf(w, "%s\n", info.Version)
		case versionJSON:
			out, err := json.MarshalIndent(info, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding build info: %w", err)
			}
			printf(w, "%s\n", out)
		default:
			printf(w, "%s %s for %s\n", branding.DisplayName(), info.Version, info.App)
			printf(w, "  commit %s, built %s\n", info.Commit, info.Date)
		}
		return nil
	},
}
