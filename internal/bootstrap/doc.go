// Package bootstrap prepares a local environment for the Subtitle Improver
// application. A Runner walks a fixed sequence of states:
//
//	CheckInterpreter -> InstallDeps -> CheckTool -> InitConfig -> Summary
//
// Only the first two states can fail the run (FailInterpreter and
// FailInstall). A missing optional tool or a missing configuration template
// is reported and the run continues.
package bootstrap
