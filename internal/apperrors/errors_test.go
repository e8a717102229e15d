package apperrors

import (
	"errors"
	"testing"
)

func TestUnknownPartErrorIsSentinel(t *testing.T) {
	err := &UnknownPartError{Part: "release"}
	if !errors.Is(err, ErrUnknownPart) {
		t.Fatalf("expected errors.Is to match ErrUnknownPart")
	}
	if got, want := err.Error(), `no part named "release"`; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}

func TestTerminalValueErrorIsSentinel(t *testing.T) {
	err := &TerminalValueError{Part: "release", Values: []string{"dev", "gamma"}}
	if !errors.Is(err, ErrTerminalValue) {
		t.Fatalf("expected errors.Is to match ErrTerminalValue")
	}
}

func TestVersionNotFoundErrorIsSentinel(t *testing.T) {
	err := &VersionNotFoundError{Path: "VERSION", Search: "1.2.0"}
	if !errors.Is(err, ErrVersionNotFound) {
		t.Fatalf("expected errors.Is to match ErrVersionNotFound")
	}
}

func TestWorkingCopyDirtyErrorMessage(t *testing.T) {
	err := &WorkingCopyDirtyError{VCS: "git", Lines: []string{" M file.go"}}
	if !errors.Is(err, ErrWorkingCopyDirty) {
		t.Fatalf("expected errors.Is to match ErrWorkingCopyDirty")
	}
	want := "git working directory is not clean:\n M file.go"
	if err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestSignedTagsUnsupportedError(t *testing.T) {
	err := &SignedTagsUnsupportedError{VCS: "mercurial"}
	if !errors.Is(err, ErrSignedTagsUnsupported) {
		t.Fatalf("expected errors.Is to match ErrSignedTagsUnsupported")
	}
}

func TestVCSErrorUnwrap(t *testing.T) {
	inner := errors.New("exit status 1")
	err := &VCSError{Command: []string{"git", "tag"}, Err: inner}
	if !errors.Is(err, ErrVCS) {
		t.Fatalf("expected errors.Is to match ErrVCS")
	}
	if !errors.Is(err, inner) {
		t.Fatalf("expected Unwrap to expose inner error")
	}
}

func TestConfigErrorUnwrap(t *testing.T) {
	inner := errors.New("boom")
	err := &ConfigError{Operation: "load", Err: inner}
	if !errors.Is(err, inner) {
		t.Fatalf("expected Unwrap to expose inner error")
	}
}

func TestWrapGitReturnsNilForNilError(t *testing.T) {
	if err := WrapGit("status", nil); err != nil {
		t.Fatalf("WrapGit(nil) = %v, want nil", err)
	}
}

func TestWrapGitWrapsAsVCSError(t *testing.T) {
	inner := errors.New("exit status 1")
	err := WrapGit("tag", inner)
	if !errors.Is(err, ErrVCS) {
		t.Fatalf("expected errors.Is to match ErrVCS")
	}
	if !errors.Is(err, inner) {
		t.Fatalf("expected Unwrap to expose inner error")
	}
}

func TestWrapFileWrapsAsIOError(t *testing.T) {
	inner := errors.New("permission denied")
	err := WrapFile("write", "VERSION", inner)
	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("expected WrapFile to produce *IOError, got %T", err)
	}
	if ioErr.Path != "VERSION" {
		t.Fatalf("Path = %q, want VERSION", ioErr.Path)
	}
}
