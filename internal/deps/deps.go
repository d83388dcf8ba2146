package deps

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// Requirement defines an external executable the target application relies on.
type Requirement struct {
	Name        string
	Command     string
	VersionArgs []string
	Description string
	Optional    bool

	// SearchPaths are checked, in order, when Command is not on PATH.
	// A leading "~" expands to the user's home directory.
	SearchPaths []string
}

// Status reports the availability of a requirement.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Locate resolves req to an executable path. PATH wins; otherwise the first
// existing, executable entry of SearchPaths is returned.
func Locate(req Requirement) Status {
	cmd := strings.TrimSpace(req.Command)
	status := Status{
		Name:        req.Name,
		Command:     cmd,
		Description: strings.TrimSpace(req.Description),
		Optional:    req.Optional,
	}
	if cmd == "" {
		status.Detail = "command not configured"
		return status
	}

	if resolved, err := exec.LookPath(cmd); err == nil {
		status.Command = resolved
		status.Available = true
		return status
	}

	for _, candidate := range req.SearchPaths {
		expanded := expandHome(candidate)
		if expanded == "" {
			continue
		}
		if info, err := os.Stat(expanded); err == nil && isExecutable(info) {
			status.Command = expanded
			status.Available = true
			return status
		}
	}

	status.Detail = fmt.Sprintf("binary %q not found", cmd)
	return status
}

func expandHome(path string) string {
	path = strings.TrimSpace(path)
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	if path == "~" {
		return home
	}
	if path[1] == '/' || path[1] == '\\' {
		return filepath.Join(home, path[2:])
	}
	return path
}

func isExecutable(info os.FileInfo) bool {
	if info == nil || info.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}
