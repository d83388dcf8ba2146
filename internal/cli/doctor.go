package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/subtitle-improver/subsetup/internal/console"
	"github.com/subtitle-improver/subsetup/internal/doctor"
)

func init() {
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the environment without changing anything",
	Long: `Run read-only diagnostic checks: Python and its version, the package
installer, the dependency manifest, optional tools, the .env template, the
.env file and whether the API key has been filled in.

Exits non-zero when Python, the installer or the manifest is unavailable.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := loadSettings()
		if err != nil {
			return err
		}
		logger := newLogger(cmd, settings)

		checker := doctor.New(settings, newCommandRunner(cmd, logger))
		results := checker.Run(cmd.Context())
		doctor.Render(cmd.OutOrStdout(), results)

		con := console.New(cmd.OutOrStdout())
		if doctor.Failed(results) {
			con.Fail("Required checks failed. Run '%s setup' after fixing them.", cmd.Root().Name())
			return &ExitError{Code: 1, Err: errors.New("required checks failed"), Silent: true}
		}
		con.OK("All required checks passed")
		return nil
	},
}
