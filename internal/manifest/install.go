package manifest

import "path/filepath"

// InstallArgs returns the package-installer arguments that install the
// dependencies declared in the manifest at path: "install -r <file>" for a
// requirements file, "install <dir>" for a pyproject.toml.
func InstallArgs(path string) []string {
	if DetectFormat(path) == FormatPyProject {
		dir := filepath.Dir(path)
		if dir == "" {
			dir = "."
		}
		return []string{"install", dir}
	}
	return []string{"install", "-r", path}
}
