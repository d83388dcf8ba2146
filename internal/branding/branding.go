// Package branding provides compile-time identity values for the CLI.
//
// Values live in branding.yaml next to this file and are baked into the
// binary with //go:embed, so a fork only edits the YAML.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName      string `yaml:"cli_name"`
	DisplayName  string `yaml:"display_name"`
	Description  string `yaml:"description"`
	AppName      string `yaml:"app_name"`
	EnvPrefix    string `yaml:"env_prefix"`
	SettingsFile string `yaml:"settings_file"`
	GoModule     string `yaml:"go_module"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing/empty.
		defaults = brand{
			CLIName:      "subsetup",
			DisplayName:  "Subtitle Improver Setup",
			Description:  "Prepare a local environment for Subtitle Improver",
			AppName:      "Subtitle Improver",
			EnvPrefix:    "SUBSETUP",
			SettingsFile: "subsetup.yaml",
			GoModule:     "github.com/subtitle-improver/subsetup",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "subsetup").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// AppName returns the name of the application being set up.
func AppName() string { load(); return defaults.AppName }

// EnvPrefix returns the environment variable prefix (e.g., "SUBSETUP").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// SettingsFile returns the settings file name looked up in the project directory.
func SettingsFile() string { load(); return defaults.SettingsFile }

// GoModule returns the Go module path. Not consumed at runtime.
func GoModule() string { load(); return defaults.GoModule }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("PROJECT_DIR") → "SUBSETUP_PROJECT_DIR".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
