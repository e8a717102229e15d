package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/indaco/vbump/internal/apperrors"
)

func main() {
	if err := newCLI().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "vbump:", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps a fatal error to a process exit status. Every failure kind
// distinguished in spec.md §7 exits non-zero; the specific codes are not
// mandated, so distinct small integers are used to aid scripting.
func exitCode(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrUnknownPart):
		return 2
	case errors.Is(err, apperrors.ErrTerminalValue):
		return 3
	case errors.Is(err, apperrors.ErrMissingValue):
		return 4
	case errors.Is(err, apperrors.ErrVersionNotFound):
		return 5
	case errors.Is(err, apperrors.ErrWorkingCopyDirty):
		return 6
	case errors.Is(err, apperrors.ErrSignedTagsUnsupported):
		return 7
	case errors.Is(err, apperrors.ErrVCS):
		return 8
	default:
		return 1
	}
}
