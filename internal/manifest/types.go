package manifest

// Format identifies the kind of dependency manifest.
type Format string

// Supported manifest formats.
const (
	FormatRequirements Format = "requirements"
	FormatPyProject    Format = "pyproject"
)

// Package is one dependency declared in a manifest.
type Package struct {
	Name string // normalized distribution name, e.g. "openai"
	Spec string // the full requirement as written, e.g. "openai>=1.0.0"
	Line int    // 1-based source line; 0 when the format has no line notion
}

// Manifest is a parsed dependency manifest.
type Manifest struct {
	Path     string
	Format   Format
	Packages []Package

	// Includes lists nested requirement files referenced with -r/--requirement.
	Includes []string
}
