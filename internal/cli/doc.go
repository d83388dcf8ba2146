// Package cli defines the Cobra command tree for subsetup. Each file
// registers one top-level command with the root command. Commands delegate
// to internal packages and only handle flags, output and exit codes.
package cli
