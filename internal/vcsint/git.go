package vcsint

import (
	"context"
	"os"
	"strings"

	"github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing"
	"github.com/go-git/go-git/v6/plumbing/object"
	"github.com/go-git/go-git/v6/plumbing/storer"

	"github.com/indaco/vbump/internal/apperrors"
	"github.com/indaco/vbump/internal/cmdrunner"
	"github.com/indaco/vbump/internal/tmplctx"
	"github.com/indaco/vbump/internal/vlog"
)

// Git is the Git VCS collaborator. Dirty-check, commit, and tag creation
// shell out to the git binary (mirroring the original's subprocess-based
// implementation and the teacher's internal/cmdrunner conventions); the
// tag-distance lookup used for template context walks the repository
// in-process with go-git/v6 instead.
type Git struct {
	dir string
}

// NewGit constructs a Git collaborator rooted at dir.
func NewGit(dir string) *Git { return &Git{dir: dir} }

func (g *Git) Name() string { return "git" }

func (g *Git) AssertNonDirty(ctx context.Context) error {
	vlog.Debugf("checking git working copy cleanliness in %s", g.dir)
	out, err := cmdrunner.RunCommandOutputContext(ctx, g.dir, "git", "status", "--porcelain")
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
		return &apperrors.WorkingCopyDirtyError{VCS: "Git", Lines: dirty}
	}
	return nil
}

// LatestTagInfo walks history from HEAD looking for the nearest ancestor
// commit that carries a tag matching "v*", counting the number of commits
// traversed as distance_to_latest_tag, mirroring the fields `git describe
// --dirty --tags --long --abbrev=40 --match=v*` exposes.
func (g *Git) LatestTagInfo(ctx context.Context) (*tmplctx.VCSInfo, error) {
	repo, err := git.PlainOpen(g.dir)
	if err != nil {
		return nil, nil
	}
	head, err := repo.Head()
	if err != nil {
		return nil, nil
	}

	tagged := make(map[plumbing.Hash]bool)
	tagIter, err := repo.Tags()
	if err == nil {
		_ = tagIter.ForEach(func(ref *plumbing.Reference) error {
			name := ref.Name().Short()
			if strings.HasPrefix(name, "v") {
				hash := ref.Hash()
				if obj, err := repo.TagObject(hash); err == nil {
					hash = obj.Target
				}
				tagged[hash] = true
			}
			return nil
		})
	}

	logIter, err := repo.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		return nil, nil
	}
	defer logIter.Close()

	distance := 0
	found := false
	var commitSHA string
	_ = logIter.ForEach(func(c *object.Commit) error {
		if commitSHA == "" {
			commitSHA = c.Hash.String()
		}
		if tagged[c.Hash] {
			found = true
			return storer.ErrStop
		}
		distance++
		return nil
	})

	if !found {
		return nil, nil
	}

	dirtyErr := g.AssertNonDirty(ctx)

	return &tmplctx.VCSInfo{
		CommitSHA:           commitSHA,
		DistanceToLatestTag: distance,
		HasDistanceToLatest: true,
		Dirty:               dirtyErr != nil,
	}, nil
}

func (g *Git) Commit(ctx context.Context, message, currentVersion, newVersion string) error {
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
		"BUMPVERSION_CURRENT_VERSION="+currentVersion,
		"BUMPVERSION_NEW_VERSION="+newVersion,
	)
	return cmdrunner.RunCommandEnvContext(ctx, g.dir, env, "git", "commit", "-F", path)
}

func (g *Git) Tag(ctx context.Context, sign bool, name, message string) error {
	vlog.Infof("tagging %s (sign=%v)", name, sign)
	args := []string{"tag", name}
	if sign {
		args = append(args, "--sign")
	}
	if message != "" {
		args = append(args, "--message", message)
	}
	if err := cmdrunner.RunCommandContext(ctx, g.dir, "git", args...); err != nil {
		return apperrors.WrapGit("tag", err)
	}
	return nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
