package config

import (
	"github.com/spf13/viper"

	"github.com/subtitle-improver/subsetup/internal/deps"
	"github.com/subtitle-improver/subsetup/internal/platform"
)

// Default links and file names for the Subtitle Improver project layout.
const (
	PythonDownloadURL = "https://www.python.org/downloads/"
	FFmpegDownloadURL = "https://ffmpeg.org/download.html"
	FFmpegSetupDoc    = "FFMPEG_SETUP.md"

	DefaultManifest      = "requirements.txt"
	DefaultEnvFile       = ".env"
	DefaultEnvTemplate   = ".env.example"
	DefaultCredentialKey = "OPENAI_API_KEY"
	DefaultPlaceholder   = "your_api_key_here"
	DefaultMinPython     = "3.8"
	DefaultUsageHint     = "python subtitle_improver.py video.mp4"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("project_dir", ".")
	v.SetDefault("pause", true)
	v.SetDefault("verbose", false)
	v.SetDefault("editor", "")

	v.SetDefault("interpreter.command", platform.DefaultInterpreter())
	v.SetDefault("interpreter.version_args", []string{"--version"})
	v.SetDefault("interpreter.min_version", DefaultMinPython)
	v.SetDefault("interpreter.download_url", PythonDownloadURL)

	v.SetDefault("installer.command", platform.DefaultInstaller())
	v.SetDefault("installer.manifest", DefaultManifest)

	v.SetDefault("tools", []map[string]any{
		ffmpegTool("FFmpeg", "ffmpeg"),
		ffmpegTool("FFprobe", "ffprobe"),
	})

	v.SetDefault("env_file.path", DefaultEnvFile)
	v.SetDefault("env_file.template", DefaultEnvTemplate)
	v.SetDefault("env_file.credential_key", DefaultCredentialKey)
	v.SetDefault("env_file.placeholder", DefaultPlaceholder)

	v.SetDefault("summary.usage_hint", DefaultUsageHint)
	v.SetDefault("summary.docs", []string{"README.md", "QUICKSTART.md", FFmpegSetupDoc})
}

func ffmpegTool(name, binary string) map[string]any {
	return map[string]any{
		"name":         name,
		"command":      binary,
		"version_args": []string{"-version"},
		"download_url": FFmpegDownloadURL,
		"setup_doc":    FFmpegSetupDoc,
		"search_paths": deps.FFmpegSearchPaths(binary),
	}
}
