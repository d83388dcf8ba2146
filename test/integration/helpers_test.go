//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"testing"
)

// testEnv is an isolated project directory plus a bin directory that
// replaces PATH for the duration of the test.
type testEnv struct {
	ProjectDir string
	BinDir     string
	LogFile    string // every stub appends its argv here
}

// setupTestEnv creates the sandbox and points PATH at an empty bin directory.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stub executables are shell scripts")
	}

	env := &testEnv{
		ProjectDir: t.TempDir(),
		BinDir:     t.TempDir(),
	}
	env.LogFile = filepath.Join(env.BinDir, "calls.log")
	t.Setenv("PATH", env.BinDir)
	t.Setenv("EDITOR", "")
	return env
}

// stub installs an executable named name that logs its arguments, prints
// stdout and exits with code.
func (e *testEnv) stub(t *testing.T, name, stdout string, code int) {
	t.Helper()
	script := "#!/bin/sh\n" +
		"echo \"" + name + " $*\" >> '" + e.LogFile + "'\n" +
		"printf '%s' '" + stdout + "'\n" +
		"exit " + strconv.Itoa(code) + "\n"
	writeFile(t, filepath.Join(e.BinDir, name), script)
	if err := os.Chmod(filepath.Join(e.BinDir, name), 0o755); err != nil {
		t.Fatalf("chmod stub %s: %v", name, err)
	}
}

// calls returns the logged invocations.
func (e *testEnv) calls(t *testing.T) []string {
	t.Helper()
	data, err := os.ReadFile(e.LogFile)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		t.Fatalf("reading call log: %v", err)
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}
