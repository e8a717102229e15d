// Package vcsint implements the VCS collaborator spec.md §6 describes only
// at its interface: dirty-working-copy detection, commit, and tag
// creation, for Git and Mercurial. Semantics are grounded on
// original_source/bumpversion/vcs.py; the Git tag-distance lookup uses
// go-git/v6 in-process instead of shelling out to `git describe`.
package vcsint

import (
	"context"
	"fmt"

	"github.com/indaco/vbump/internal/tmplctx"
	"github.com/indaco/vbump/internal/vlog"
)

// Collaborator is the VCS-facing surface the engine drives: the dirty check
// and tag lookup run before any file is verified or rewritten, Commit and
// Tag only after every configured file has been rewritten (spec.md §5).
type Collaborator interface {
	// Name identifies the VCS for error messages ("git", "mercurial").
	Name() string

	// AssertNonDirty returns a WorkingCopyDirtyError if the working copy
	// has uncommitted changes (untracked files are ignored, matching the
	// original's "??"-prefixed-line exclusion).
	AssertNonDirty(ctx context.Context) error

	// LatestTagInfo returns the commit_sha/distance_to_latest_tag/dirty
	// keys for template expansion, or nil if no matching tag is reachable.
	LatestTagInfo(ctx context.Context) (*tmplctx.VCSInfo, error)

	// Commit records message as a commit of the working copy, exporting
	// BUMPVERSION_CURRENT_VERSION and BUMPVERSION_NEW_VERSION to the
	// subprocess environment.
	Commit(ctx context.Context, message, currentVersion, newVersion string) error

	// Tag creates a tag named name. When message is non-empty the tag is
	// annotated; sign requests a signed tag, which Mercurial refuses with
	// SignedTagsUnsupportedError.
	Tag(ctx context.Context, sign bool, name, message string) error
}

// Detect picks a collaborator by inspecting the working directory for a
// .git or .hg control directory, preferring Git when both are present.
func Detect(dir string) Collaborator {
	if isDir(dir + "/.git") {
		vlog.Debugf("detected git working copy at %s", dir)
		return NewGit(dir)
	}
	if isDir(dir + "/.hg") {
		vlog.Debugf("detected mercurial working copy at %s", dir)
		return NewMercurial(dir)
	}
	vlog.Debugf("no VCS control directory found at %s", dir)
	return nil
}

// Select returns the collaborator named by vcs ("git" or "mercurial"),
// bypassing Detect's directory-presence autodetection. An empty vcs
// defers to Detect, which is the common case; forcing a specific VCS is
// how a repository with both .git and .hg (or a bare working copy set up
// for a test) can exercise the non-default collaborator from the CLI.
func Select(dir, vcs string) (Collaborator, error) {
	switch vcs {
	case "":
		return Detect(dir), nil
	case "git":
		return NewGit(dir), nil
	case "mercurial", "hg":
		return NewMercurial(dir), nil
	default:
		return nil, fmt.Errorf("unknown --vcs %q: must be \"git\" or \"mercurial\"", vcs)
	}
}
