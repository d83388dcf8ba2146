package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/subtitle-improver/subsetup/internal/branding"
	"github.com/subtitle-improver/subsetup/internal/deps"
	"github.com/subtitle-improver/subsetup/internal/platform"
)

const fileType = "yaml"

// Settings is the fully resolved bootstrap configuration.
type Settings struct {
	ProjectDir  string              `mapstructure:"project_dir" yaml:"project_dir"`
	Pause       bool                `mapstructure:"pause" yaml:"pause"`
	Verbose     bool                `mapstructure:"verbose" yaml:"verbose"`
	Editor      string              `mapstructure:"editor" yaml:"editor"`
	Interpreter InterpreterSettings `mapstructure:"interpreter" yaml:"interpreter"`
	Installer   InstallerSettings   `mapstructure:"installer" yaml:"installer"`
	Tools       []ToolSettings      `mapstructure:"tools" yaml:"tools"`
	EnvFile     EnvFileSettings     `mapstructure:"env_file" yaml:"env_file"`
	Summary     SummarySettings     `mapstructure:"summary" yaml:"summary"`

	// SourceFile is the settings file that was merged, if any.
	SourceFile string `mapstructure:"-" yaml:"-"`
}

// InterpreterSettings describes the required language runtime.
type InterpreterSettings struct {
	Command     string   `mapstructure:"command" yaml:"command"`
	VersionArgs []string `mapstructure:"version_args" yaml:"version_args"`
	MinVersion  string   `mapstructure:"min_version" yaml:"min_version"`
	DownloadURL string   `mapstructure:"download_url" yaml:"download_url"`
}

// InstallerSettings describes the package installer and its manifest.
type InstallerSettings struct {
	Command  string `mapstructure:"command" yaml:"command"`
	Manifest string `mapstructure:"manifest" yaml:"manifest"`
}

// ToolSettings describes an optional external tool.
type ToolSettings struct {
	Name        string   `mapstructure:"name" yaml:"name"`
	Command     string   `mapstructure:"command" yaml:"command"`
	VersionArgs []string `mapstructure:"version_args" yaml:"version_args"`
	DownloadURL string   `mapstructure:"download_url" yaml:"download_url"`
	SetupDoc    string   `mapstructure:"setup_doc" yaml:"setup_doc"`
	SearchPaths []string `mapstructure:"search_paths" yaml:"search_paths"`
}

// EnvFileSettings describes the application's configuration file and its template.
type EnvFileSettings struct {
	Path          string `mapstructure:"path" yaml:"path"`
	Template      string `mapstructure:"template" yaml:"template"`
	CredentialKey string `mapstructure:"credential_key" yaml:"credential_key"`
	Placeholder   string `mapstructure:"placeholder" yaml:"placeholder"`
}

// SummarySettings holds the text printed when the bootstrap completes.
type SummarySettings struct {
	UsageHint string   `mapstructure:"usage_hint" yaml:"usage_hint"`
	Docs      []string `mapstructure:"docs" yaml:"docs"`
}

// Requirement converts the tool settings into a lookup requirement.
func (t ToolSettings) Requirement() deps.Requirement {
	return deps.Requirement{
		Name:        t.Name,
		Command:     t.Command,
		VersionArgs: t.VersionArgs,
		Description: "Optional media tool",
		Optional:    true,
		SearchPaths: t.SearchPaths,
	}
}

// Resolve joins a settings path with the project directory unless it is absolute.
func (s *Settings) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(s.ProjectDir, path)
}

// ManifestPath returns the resolved dependency manifest path.
func (s *Settings) ManifestPath() string { return s.Resolve(s.Installer.Manifest) }

// EnvFilePath returns the resolved configuration file path.
func (s *Settings) EnvFilePath() string { return s.Resolve(s.EnvFile.Path) }

// TemplatePath returns the resolved configuration template path.
func (s *Settings) TemplatePath() string { return s.Resolve(s.EnvFile.Template) }

// EditorCommand returns the editor to launch: the configured one, then
// $EDITOR, then the platform default.
func (s *Settings) EditorCommand() string {
	if e := strings.TrimSpace(s.Editor); e != "" {
		return e
	}
	if e := strings.TrimSpace(os.Getenv("EDITOR")); e != "" {
		return e
	}
	return platform.DefaultEditor()
}

// LoadOptions controls where settings are read from.
type LoadOptions struct {
	// ProjectDir overrides the project directory; empty means the
	// SUBSETUP_PROJECT_DIR variable or the working directory.
	ProjectDir string

	// File is an explicit settings file. It must exist. When empty,
	// <project_dir>/subsetup.yaml is used if present.
	File string

	// Overrides are applied last, keyed by dotted setting name.
	Overrides map[string]any
}

// Load resolves settings from defaults, the settings file, the environment
// and opts.Overrides. The settings file is validated against the embedded
// schema before it is merged.
func Load(opts LoadOptions) (*Settings, error) {
	v := newViper()

	projectDir := opts.ProjectDir
	if projectDir == "" {
		projectDir = v.GetString("project_dir")
	}
	absDir, err := filepath.Abs(projectDir)
	if err != nil {
		return nil, fmt.Errorf("resolving project directory %s: %w", projectDir, err)
	}

	file, err := resolveSettingsFile(absDir, opts.File)
	if err != nil {
		return nil, err
	}
	if file != "" {
		if err := ValidateFile(file); err != nil {
			return nil, err
		}
		v.SetConfigFile(file)
		v.SetConfigType(fileType)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading settings file %s: %w", file, err)
		}
	}

	for key, value := range opts.Overrides {
		v.Set(key, value)
	}
	v.Set("project_dir", absDir)

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unmarshalling settings: %w", err)
	}
	s.SourceFile = file
	return &s, nil
}

// Default returns the built-in settings rooted at projectDir, ignoring any
// settings file and environment.
func Default(projectDir string) *Settings {
	v := viper.New()
	setDefaults(v)
	v.Set("project_dir", projectDir)

	var s Settings
	// Defaults are static and always decode.
	_ = v.Unmarshal(&s)
	return &s
}

// FilePath returns the default settings file location for a project directory.
func FilePath(projectDir string) string {
	return filepath.Join(projectDir, branding.SettingsFile())
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(branding.EnvPrefix())
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func resolveSettingsFile(projectDir, explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("settings file %s: %w", explicit, err)
		}
		return explicit, nil
	}

	candidate := FilePath(projectDir)
	info, err := os.Stat(candidate)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("stat settings file: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("settings file %s is a directory", candidate)
	}
	return candidate, nil
}
