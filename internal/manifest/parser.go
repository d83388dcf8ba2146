package manifest

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// DetectFormat infers the manifest format from its file name.
func DetectFormat(path string) Format {
	if strings.EqualFold(filepath.Base(path), "pyproject.toml") || strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatPyProject
	}
	return FormatRequirements
}

// ParseFile reads and parses the manifest at path.
func ParseFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}

	var m *Manifest
	switch DetectFormat(path) {
	case FormatPyProject:
		m, err = ParsePyProject(data)
	default:
		m, err = ParseRequirements(data)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	m.Path = path
	return m, nil
}

// ParseRequirements parses pip requirements-file syntax. Blank lines,
// comments and pip options are skipped; -r includes are recorded but not
// followed.
func ParseRequirements(data []byte) (*Manifest, error) {
	m := &Manifest{Format: FormatRequirements}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	var continued strings.Builder
	startLine := 0
	for scanner.Scan() {
		lineNo++
		raw := scanner.Text()

		// Backslash continuation joins physical lines.
		if strings.HasSuffix(raw, `\`) {
			if continued.Len() == 0 {
				startLine = lineNo
			}
			continued.WriteString(strings.TrimSuffix(raw, `\`))
			continue
		}
		line := raw
		at := lineNo
		if continued.Len() > 0 {
			continued.WriteString(raw)
			line = continued.String()
			at = startLine
			continued.Reset()
		}

		line = stripComment(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, "-") {
			if include, ok := includeTarget(line); ok {
				m.Includes = append(m.Includes, include)
			}
			continue
		}

		name := RequirementName(line)
		if name == "" {
			continue
		}
		m.Packages = append(m.Packages, Package{Name: name, Spec: line, Line: at})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading requirements: %w", err)
	}
	return m, nil
}

type pyProject struct {
	Project struct {
		Name                 string              `toml:"name"`
		Dependencies         []string            `toml:"dependencies"`
		OptionalDependencies map[string][]string `toml:"optional-dependencies"`
	} `toml:"project"`
}

// ParsePyProject extracts [project].dependencies from a pyproject.toml.
// Optional dependency groups are not included.
func ParsePyProject(data []byte) (*Manifest, error) {
	var doc pyProject
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding pyproject.toml: %w", err)
	}

	m := &Manifest{Format: FormatPyProject}
	for _, dep := range doc.Project.Dependencies {
		spec := strings.TrimSpace(dep)
		name := RequirementName(spec)
		if name == "" {
			continue
		}
		m.Packages = append(m.Packages, Package{Name: name, Spec: spec})
	}
	return m, nil
}

// RequirementName returns the normalized distribution name of a PEP 508
// requirement string ("Open_AI[extra]>=1.0; python_version>'3.8'" → "open-ai").
// URL and path requirements yield "".
func RequirementName(spec string) string {
	spec = strings.TrimSpace(spec)
	if spec == "" || strings.Contains(spec, "://") || strings.HasPrefix(spec, ".") || strings.HasPrefix(spec, "/") {
		// "name @ https://..." still has a usable name before the "@".
		if before, _, found := strings.Cut(spec, "@"); found && !strings.Contains(before, "://") {
			return normalizeName(before)
		}
		return ""
	}
	end := strings.IndexAny(spec, "<>=!~;[ @(\t")
	if end >= 0 {
		spec = spec[:end]
	}
	return normalizeName(spec)
}

func normalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	replacer := strings.NewReplacer("_", "-", ".", "-")
	return replacer.Replace(name)
}

func stripComment(line string) string {
	line = strings.TrimSpace(line)
	if strings.HasPrefix(line, "#") {
		return ""
	}
	// Inline comments need preceding whitespace per pip's rules.
	if idx := strings.Index(line, " #"); idx >= 0 {
		line = line[:idx]
	}
	if idx := strings.Index(line, "\t#"); idx >= 0 {
		line = line[:idx]
	}
	return strings.TrimSpace(line)
}

func includeTarget(line string) (string, bool) {
	for _, prefix := range []string{"--requirement=", "--requirement ", "-r "} {
		if strings.HasPrefix(line, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(line, prefix)), true
		}
	}
	if strings.HasPrefix(line, "-r") && len(line) > 2 {
		return strings.TrimSpace(line[2:]), true
	}
	return "", false
}
