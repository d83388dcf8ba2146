package branding

import "testing"

func TestEmbeddedValues(t *testing.T) {
	if got := CLIName(); got != "subsetup" {
		t.Errorf("CLIName() = %q, want subsetup", got)
	}
	if got := EnvPrefix(); got != "SUBSETUP" {
		t.Errorf("EnvPrefix() = %q, want SUBSETUP", got)
	}
	if got := SettingsFile(); got != "subsetup.yaml" {
		t.Errorf("SettingsFile() = %q, want subsetup.yaml", got)
	}
}

func TestEnvVar(t *testing.T) {
	if got := EnvVar("project_dir"); got != "SUBSETUP_PROJECT_DIR" {
		t.Errorf("EnvVar(project_dir) = %q", got)
	}
}
