package vcsint

import (
	"context"
	"os"
	"strings"

	"github.com/indaco/vbump/internal/apperrors"
	"github.com/indaco/vbump/internal/cmdrunner"
	"github.com/indaco/vbump/internal/tmplctx"
	"github.com/indaco/vbump/internal/vlog"
)

// Mercurial is the Mercurial VCS collaborator. It has no tag-distance
// concept and refuses to create signed tags, mirroring
// original_source/bumpversion/vcs.py's Mercurial class.
type Mercurial struct {
	dir string
}

// NewMercurial constructs a Mercurial collaborator rooted at dir.
func NewMercurial(dir string) *Mercurial { return &Mercurial{dir: dir} }

func (m *Mercurial) Name() string { return "mercurial" }

func (m *Mercurial) AssertNonDirty(ctx context.Context) error {
	vlog.Debugf("checking mercurial working copy cleanliness in %s", m.dir)
	out, err := cmdrunner.RunCommandOutputContext(ctx, m.dir, "hg", "status", "-mard")
	if err != nil {
		return apperrors.WrapGit("status", err)
	}
	var dirty []string
	for _, line := range strings.Split(out, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "??") {
			continue
		}
		dirty = append(dirty, trimmed)
	}
	if len(dirty) > 0 {
		return &apperrors.WorkingCopyDirtyError{VCS: "Mercurial", Lines: dirty}
	}
	return nil
}

// LatestTagInfo always returns nil: the original Mercurial collaborator
// does not implement latest_tag_info.
func (m *Mercurial) LatestTagInfo(ctx context.Context) (*tmplctx.VCSInfo, error) {
	return nil, nil
}

func (m *Mercurial) Commit(ctx context.Context, message, currentVersion, newVersion string) error {
	vlog.Infof("committing %s -> %s", currentVersion, newVersion)
	f, err := os.CreateTemp("", "vbump-commit-*")
	if err != nil {
		return apperrors.WrapFile("create", "", err)
	}
	path := f.Name()
	defer os.Remove(path)
	if _, err := f.WriteString(message); err != nil {
		f.Close()
		return apperrors.WrapFile("write", path, err)
	}
	f.Close()

	env := append(os.Environ(),
		"HGENCODING=utf-8",
		"BUMPVERSION_CURRENT_VERSION="+currentVersion,
		"BUMPVERSION_NEW_VERSION="+newVersion,
	)
	return cmdrunner.RunCommandEnvContext(ctx, m.dir, env, "hg", "commit", "--logfile", path)
}

func (m *Mercurial) Tag(ctx context.Context, sign bool, name, message string) error {
	if sign {
		return &apperrors.SignedTagsUnsupportedError{VCS: "Mercurial"}
	}
	vlog.Infof("tagging %s", name)
	args := []string{"tag", name}
	if message != "" {
		args = append(args, "--message", message)
	}
	if err := cmdrunner.RunCommandContext(ctx, m.dir, "hg", args...); err != nil {
		return apperrors.WrapGit("tag", err)
	}
	return nil
}
