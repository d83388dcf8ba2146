package dotenv

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/subtitle-improver/subsetup/internal/testsupport"
)

func TestRedactValue_SensitiveKeys(t *testing.T) {
	tests := []struct {
		key      string
		value    string
		expected string
	}{
		{"OPENAI_API_KEY", "sk-12345678", "sk-1***"},
		{"GITHUB_TOKEN", "ghp_abcdef123456", "ghp_***"},
		{"DB_PASSWORD", "hunter2", "hunt***"},
		{"SPLUNK_CREDENTIAL", "abc", "***"},
		{"openai_api_key", "sk-abcdef", "sk-a***"},
		{"GPT_MODEL", "gpt-4o-mini", "gpt-4o-mini"},
		{"LOG_LEVEL", "info", "info"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			result := RedactValue(tt.key, tt.value)
			if result != tt.expected {
				t.Errorf("RedactValue(%q, %q) = %q, want %q", tt.key, tt.value, result, tt.expected)
			}
		})
	}
}

func TestParseFile(t *testing.T) {
	tmp := t.TempDir()
	envFile := filepath.Join(tmp, ".env")

	content := "\ufeff# This is a comment\n" +
		"OPENAI_API_KEY=sk-first\n" +
		"GPT_MODEL = \"gpt-4o-mini\"\n" +
		"\n" +
		"export WHISPER_LANG='ru'\n" +
		"CONNECTION_STRING=host=localhost port=5432\n" +
		"NOT_A_PAIR\n" +
		"EMPTY_VALUE=\n" +
		"OPENAI_API_KEY=sk-second\n"
	testsupport.WriteFile(t, envFile, content)

	entries, err := ParseFile(envFile)
	if err != nil {
		t.Fatalf("ParseFile error: %v", err)
	}

	want := []Entry{
		{"OPENAI_API_KEY", "sk-first"},
		{"GPT_MODEL", "gpt-4o-mini"},
		{"WHISPER_LANG", "ru"},
		{"CONNECTION_STRING", "host=localhost port=5432"},
		{"EMPTY_VALUE", ""},
		{"OPENAI_API_KEY", "sk-second"},
	}
	if !reflect.DeepEqual(entries, want) {
		t.Errorf("entries = %+v\nwant %+v", entries, want)
	}

	value, ok := Lookup(entries, "OPENAI_API_KEY")
	if !ok || value != "sk-second" {
		t.Errorf("Lookup = %q, %v; want last assignment", value, ok)
	}
	if _, ok := Lookup(entries, "MISSING"); ok {
		t.Error("Lookup found a missing key")
	}
}

func TestParseFile_Missing(t *testing.T) {
	if _, err := ParseFile(filepath.Join(t.TempDir(), "nope.env")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestIsPlaceholder(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"your_api_key_here", true},
		{"YOUR_API_KEY_HERE", true},
		{"your-openai-key-here", true},
		{"<paste key>", true},
		{"sk-proj-abc123", false},
		{"yourself", false},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			if got := IsPlaceholder(tt.value, "your_api_key_here"); got != tt.want {
				t.Errorf("IsPlaceholder(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}

	if !IsPlaceholder("sk-replace-me", "sk-replace-me") {
		t.Error("configured placeholder not detected")
	}
}

func TestCheckCredential(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, ".env")

	testsupport.WriteFile(t, path, "OPENAI_API_KEY=your_api_key_here\n")
	if state, err := CheckCredential(path, "OPENAI_API_KEY", "your_api_key_here"); err != nil || state != CredentialPlaceholder {
		t.Errorf("placeholder: state=%s err=%v", state, err)
	}

	testsupport.WriteFile(t, path, "OPENAI_API_KEY=sk-live\n")
	if state, err := CheckCredential(path, "OPENAI_API_KEY", "your_api_key_here"); err != nil || state != CredentialSet {
		t.Errorf("set: state=%s err=%v", state, err)
	}

	testsupport.WriteFile(t, path, "GPT_MODEL=gpt-4o\n")
	if state, err := CheckCredential(path, "OPENAI_API_KEY", ""); err != nil || state != CredentialMissing {
		t.Errorf("missing: state=%s err=%v", state, err)
	}

	if _, err := CheckCredential(filepath.Join(tmp, "nope"), "OPENAI_API_KEY", ""); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestEditorCommand(t *testing.T) {
	cmd, err := EditorCommand("code --wait", ".env")
	if err != nil {
		t.Fatal(err)
	}
	if cmd.Name != "code" || !reflect.DeepEqual(cmd.Args, []string{"--wait", ".env"}) {
		t.Errorf("unexpected command: %+v", cmd)
	}
	if !cmd.Interactive {
		t.Error("editor must be interactive")
	}

	if _, err := EditorCommand("  ", ".env"); err == nil {
		t.Error("expected error for empty editor")
	}
}

func TestOpenEditor(t *testing.T) {
	runner := testsupport.NewFakeRunner().Succeed("notepad", "")
	if err := OpenEditor(context.Background(), runner, "notepad", ".env"); err != nil {
		t.Fatalf("OpenEditor failed: %v", err)
	}
	calls := runner.Calls()
	if len(calls) != 1 || calls[0].Args[0] != ".env" {
		t.Errorf("unexpected calls: %+v", calls)
	}

	runner = testsupport.NewFakeRunner().Fail("vi", 1)
	if err := OpenEditor(context.Background(), runner, "vi", ".env"); err == nil {
		t.Error("expected error for failing editor")
	}

	runner = testsupport.NewFakeRunner()
	if err := OpenEditor(context.Background(), runner, "missing-editor", ".env"); err == nil {
		t.Error("expected error for missing editor")
	}
}
