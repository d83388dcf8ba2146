package platform

import "runtime"

// DefaultInterpreter returns the Python launcher name conventional for the OS.
func DefaultInterpreter() string {
	if runtime.GOOS == "windows" {
		return "python"
	}
	return "python3"
}

// DefaultEditor returns the editor used when neither settings nor $EDITOR name one.
func DefaultEditor() string {
	if runtime.GOOS == "windows" {
		return "notepad"
	}
	return "vi"
}

// DefaultInstaller returns the pip launcher name conventional for the OS.
func DefaultInstaller() string {
	if runtime.GOOS == "windows" {
		return "pip"
	}
	return "pip3"
}
