// Package cmdrunner executes external commands (git, hg) with context
// cancellation and timeout support, wrapping failures as apperrors.VCSError
// the way the teacher's cmdrunner wraps them as apperrors.CommandError.
package cmdrunner

import (
	"context"
	"os"
	"os/exec"
	"time"

	"github.com/indaco/vbump/internal/apperrors"
)

// Default timeouts for command execution.
const (
	DefaultTimeout       = 30 * time.Second
	DefaultOutputTimeout = 5 * time.Second
)

// RunCommandContext executes a command with the given context, streaming
// its stdout/stderr to the process's own.
func RunCommandContext(ctx context.Context, dir string, command string, args ...string) error {
	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Dir = dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return &apperrors.VCSError{Command: append([]string{command}, args...), Err: err}
	}
	return nil
}

// RunCommandEnvContext behaves like RunCommandContext but runs with the
// given environment instead of inheriting the parent's, used for exporting
// BUMPVERSION_CURRENT_VERSION/BUMPVERSION_NEW_VERSION to the VCS commit
// hook (spec.md §6).
func RunCommandEnvContext(ctx context.Context, dir string, env []string, command string, args ...string) error {
	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Dir = dir
	cmd.Env = env
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return &apperrors.VCSError{Command: append([]string{command}, args...), Err: err}
	}
	return nil
}

// RunCommandOutputContext executes a command and returns its combined
// stdout+stderr output.
func RunCommandOutputContext(ctx context.Context, dir string, command string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", &apperrors.VCSError{Command: append([]string{command}, args...), Err: err}
	}
	return string(output), nil
}
