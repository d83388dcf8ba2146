// Package manifest reads the dependency manifest of the application being set
// up. It understands pip requirements files and the [project].dependencies
// table of pyproject.toml, and derives the installer arguments for each.
package manifest
