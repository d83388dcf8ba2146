// Package runtime defines the CommandRunner capability used for every external
// invocation the bootstrap performs (interpreter and tool version queries, the
// package installer, the editor) and provides an os/exec backed implementation.
// Tests substitute a fake runner to drive each branch deterministically.
package runtime
