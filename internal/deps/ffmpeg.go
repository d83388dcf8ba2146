package deps

import "runtime"

// Well-known FFmpeg install locations on Windows, where installers and
// package managers rarely add the binaries to PATH.
var windowsFFmpegDirs = []string{
	`C:\ffmpeg\bin`,
	`C:\Program Files\ffmpeg\bin`,
	`C:\Program Files (x86)\ffmpeg\bin`,
	`~\ffmpeg\bin`,
	`C:\ProgramData\chocolatey\bin`,
	`~\scoop\apps\ffmpeg\current\bin`,
	`~\scoop\shims`,
	`ffmpeg\bin`,
	`.`,
}

// FFmpegSearchPaths returns fallback locations for an FFmpeg-suite binary
// (ffmpeg, ffprobe) on the current OS. Relative entries resolve against the
// working directory.
func FFmpegSearchPaths(binary string) []string {
	if runtime.GOOS != "windows" {
		return []string{
			"/usr/local/bin/" + binary,
			"/opt/homebrew/bin/" + binary,
			"/usr/bin/" + binary,
		}
	}
	paths := make([]string, 0, len(windowsFFmpegDirs))
	for _, dir := range windowsFFmpegDirs {
		paths = append(paths, dir+`\`+binary+".exe")
	}
	return paths
}
