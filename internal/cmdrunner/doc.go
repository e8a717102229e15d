// Package cmdrunner provides context-aware external command execution.
//
// This package wraps os/exec to provide command execution with proper
// context support for cancellation and timeouts. All commands are
// executed with structured error handling via apperrors.VCSError.
//
// # Functions
//
// RunCommandContext executes a command with stdout/stderr connected to
// the terminal, suitable for interactive commands or those with visible
// output:
//
//	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
//	defer cancel()
//	err := cmdrunner.RunCommandContext(ctx, "/path/to/dir", "git", "status")
//
// RunCommandOutputContext executes a command and captures its combined
// output, suitable for commands whose output needs to be processed:
//
//	output, err := cmdrunner.RunCommandOutputContext(ctx, ".", "git", "rev-parse", "HEAD")
//
// RunCommandEnvContext behaves like RunCommandContext but replaces the
// subprocess's environment outright, used to export
// BUMPVERSION_CURRENT_VERSION/BUMPVERSION_NEW_VERSION to VCS commit hooks.
//
// # Timeout Handling
//
// The package defines default timeout constants:
//   - DefaultTimeout: 30 seconds for general commands
//   - DefaultOutputTimeout: 5 seconds for output-capturing commands
package cmdrunner
