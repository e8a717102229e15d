// Package apperrors defines the typed error kinds vbump surfaces to its
// caller. These typed errors enable proper error handling with errors.Is
// and errors.As without coupling internal packages to the CLI framework.
//
// Error Handling Conventions:
//   - Always wrap errors from external packages with context
//   - Use sentinel errors for common, well-known conditions
//   - Use typed errors when callers need to extract structured information
//   - Include relevant context (file paths, part names, values) in messages
package apperrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for conditions callers commonly check with errors.Is.
var (
	// ErrUnknownPart indicates a bump was requested for a part absent from
	// the version schema.
	ErrUnknownPart = errors.New("unknown version part")

	// ErrTerminalValue indicates an Enumerated part was bumped past its
	// last configured value.
	ErrTerminalValue = errors.New("part already at terminal value")

	// ErrMissingValue indicates a serialization template referenced a
	// context key that does not exist.
	ErrMissingValue = errors.New("missing value for serialization")

	// ErrVersionNotFound indicates a configured file does not contain the
	// expected version text.
	ErrVersionNotFound = errors.New("version not found in file")

	// ErrWorkingCopyDirty indicates the VCS working copy has uncommitted
	// changes and --allow-dirty was not supplied.
	ErrWorkingCopyDirty = errors.New("working copy is dirty")

	// ErrSignedTagsUnsupported indicates a VCS collaborator that cannot
	// create signed tags was asked to do so.
	ErrSignedTagsUnsupported = errors.New("signed tags are not supported by this VCS")

	// ErrVCS indicates a VCS subprocess or operation failed.
	ErrVCS = errors.New("vcs operation failed")
)

// InvalidRegexError indicates a --parse pattern failed to compile.
type InvalidRegexError struct {
	Pattern string
	Err     error
}

func (e *InvalidRegexError) Error() string {
	return fmt.Sprintf("invalid parse regex %q: %v", e.Pattern, e.Err)
}

func (e *InvalidRegexError) Unwrap() error { return e.Err }

// UnknownPartError names the requested part that has no schema entry.
type UnknownPartError struct {
	Part string
}

func (e *UnknownPartError) Error() string {
	return fmt.Sprintf("no part named %q", e.Part)
}

func (e *UnknownPartError) Is(target error) bool { return target == ErrUnknownPart }

// TerminalValueError indicates an Enumerated part has no successor value.
type TerminalValueError struct {
	Part   string
	Values []string
}

func (e *TerminalValueError) Error() string {
	return fmt.Sprintf("part %q already has the maximum value among %v and cannot be bumped", e.Part, e.Values)
}

func (e *TerminalValueError) Is(target error) bool { return target == ErrTerminalValue }

// MissingValueError indicates a serialization template key had no value
// in the context.
type MissingValueError struct {
	Key     string
	Version string
}

func (e *MissingValueError) Error() string {
	return fmt.Sprintf("did not find key %q in %s when serializing version number", e.Key, e.Version)
}

func (e *MissingValueError) Is(target error) bool { return target == ErrMissingValue }

// VersionNotFoundError indicates should_contain_version failed for a file.
type VersionNotFoundError struct {
	Path   string
	Search string
}

func (e *VersionNotFoundError) Error() string {
	return fmt.Sprintf("did not find %q in file: %q", e.Search, e.Path)
}

func (e *VersionNotFoundError) Is(target error) bool { return target == ErrVersionNotFound }

// WorkingCopyDirtyError carries the dirty status lines reported by the VCS.
type WorkingCopyDirtyError struct {
	VCS   string
	Lines []string
}

func (e *WorkingCopyDirtyError) Error() string {
	return fmt.Sprintf("%s working directory is not clean:\n%s", e.VCS, joinLines(e.Lines))
}

func (e *WorkingCopyDirtyError) Is(target error) bool { return target == ErrWorkingCopyDirty }

// SignedTagsUnsupportedError indicates the active VCS cannot sign tags.
type SignedTagsUnsupportedError struct {
	VCS string
}

func (e *SignedTagsUnsupportedError) Error() string {
	return fmt.Sprintf("%s does not support signed tags", e.VCS)
}

func (e *SignedTagsUnsupportedError) Is(target error) bool {
	return target == ErrSignedTagsUnsupported
}

// IOError wraps a file operation failure with path context.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// VCSError wraps a subprocess failure with its command and exit status.
type VCSError struct {
	Command []string
	Err     error
}

func (e *VCSError) Error() string {
	return fmt.Sprintf("failed to run %v: %v", e.Command, e.Err)
}

func (e *VCSError) Unwrap() error { return e.Err }

func (e *VCSError) Is(target error) bool { return target == ErrVCS }

// ConfigError indicates a configuration file load/save failure.
type ConfigError struct {
	Operation string
	Err       error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s failed: %v", e.Operation, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// WrapGit wraps a failed VCS subcommand as a VCSError, returning nil when
// err is nil so call sites can use it unconditionally.
func WrapGit(operation string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*VCSError); ok {
		return err
	}
	return &VCSError{Command: []string{operation}, Err: err}
}

// WrapFile wraps a failed local file operation as an IOError, returning nil
// when err is nil so call sites can use it unconditionally.
func WrapFile(op, path string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*IOError); ok {
		return err
	}
	return &IOError{Op: op, Path: path, Err: err}
}

func joinLines(lines []string) string {
	out := ""
	for i, l := range lines {
		if i > 0 {
			out += "\n"
		}
		out += l
	}
	return out
}
