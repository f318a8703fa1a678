// Package execshell runs external command-line tools for ghdash.
//
// ShellExecutor wraps a CommandRunner with structured logging and typed
// failures, OSCommandRunner is the os/exec backed runner, and
// CommandEventObserver lets callers render command lifecycle events.
package execshell
