package main

import (
	"errors"
	"testing"

	"github.com/indaco/vbump/internal/apperrors"
)

func TestExitCodeDistinguishesErrorKinds(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"unknown-part", &apperrors.UnknownPartError{Part: "x"}, 2},
		{"terminal-value", &apperrors.TerminalValueError{Values: []string{"a"}}, 3},
		{"missing-value", &apperrors.MissingValueError{Key: "x"}, 4},
		{"version-not-found", &apperrors.VersionNotFoundError{Path: "VERSION"}, 5},
		{"working-copy-dirty", &apperrors.WorkingCopyDirtyError{VCS: "git"}, 6},
		{"signed-tags-unsupported", &apperrors.SignedTagsUnsupportedError{VCS: "mercurial"}, 7},
		{"vcs-error", &apperrors.VCSError{Command: []string{"git"}, Err: errors.New("boom")}, 8},
		{"generic", errors.New("boom"), 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := exitCode(tc.err); got != tc.want {
				t.Errorf("exitCode(%v) = %d, want %d", tc.err, got, tc.want)
			}
		})
	}
}

func TestDefaultConfigFileFallsBackToBumpversionCfg(t *testing.T) {
	if got := defaultConfigFile(); got != ".bumpversion.cfg" {
		t.Fatalf("defaultConfigFile() = %q, want .bumpversion.cfg", got)
	}
}
