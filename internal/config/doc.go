// Package config loads the bootstrap settings: which interpreter, installer
// and tools to check, where the manifest and configuration files live, and
// the links and hints shown to the user. Values layer as built-in defaults,
// then an optional subsetup.yaml in the project directory, then SUBSETUP_*
// environment variables, then command-line overrides.
package config
