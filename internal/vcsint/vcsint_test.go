package vcsint

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}
}

func initRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	run := func(args ...string) {
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		cmd.Env = append(os.Environ(),
			"GIT_AUTHOR_NAME=vbump", "GIT_AUTHOR_EMAIL=vbump@example.com",
			"GIT_COMMITTER_NAME=vbump", "GIT_COMMITTER_EMAIL=vbump@example.com",
		)
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("git %v: %v\n%s", args, err, out)
		}
	}
	run("init")
	if err := os.WriteFile(filepath.Join(dir, "VERSION"), []byte("1.0.0"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	run("add", "VERSION")
	run("commit", "-m", "initial")
	return dir
}

func TestGitAssertNonDirtyCleanRepo(t *testing.T) {
	requireGit(t)
	dir := initRepo(t)
	g := NewGit(dir)
	if err := g.AssertNonDirty(context.Background()); err != nil {
		t.Fatalf("AssertNonDirty on clean repo: %v", err)
	}
}

func TestGitAssertNonDirtyDirtyRepo(t *testing.T) {
	requireGit(t)
	dir := initRepo(t)
	if err := os.WriteFile(filepath.Join(dir, "VERSION"), []byte("1.0.1"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	g := NewGit(dir)
	if err := g.AssertNonDirty(context.Background()); err == nil {
		t.Fatalf("expected dirty working copy error")
	}
}

func TestGitAssertNonDirtyIgnoresUntracked(t *testing.T) {
	requireGit(t)
	dir := initRepo(t)
	if err := os.WriteFile(filepath.Join(dir, "untracked.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	g := NewGit(dir)
	if err := g.AssertNonDirty(context.Background()); err != nil {
		t.Fatalf("untracked files must not count as dirty: %v", err)
	}
}

func TestDetectPicksGit(t *testing.T) {
	requireGit(t)
	dir := initRepo(t)
	collab := Detect(dir)
	if collab == nil || collab.Name() != "git" {
		t.Fatalf("Detect = %v, want git collaborator", collab)
	}
}

func TestSelectForcesNamedCollaborator(t *testing.T) {
	dir := t.TempDir()

	collab, err := Select(dir, "mercurial")
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if collab.Name() != "mercurial" {
		t.Fatalf("Select(mercurial) = %v, want mercurial collaborator even without a .hg directory", collab.Name())
	}

	collab, err = Select(dir, "git")
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if collab.Name() != "git" {
		t.Fatalf("Select(git) = %v, want git collaborator even without a .git directory", collab.Name())
	}
}

func TestSelectEmptyDefersToDetect(t *testing.T) {
	requireGit(t)
	dir := initRepo(t)
	collab, err := Select(dir, "")
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if collab == nil || collab.Name() != "git" {
		t.Fatalf("Select(\"\") = %v, want autodetected git collaborator", collab)
	}
}

func TestSelectRejectsUnknownVCS(t *testing.T) {
	if _, err := Select(t.TempDir(), "svn"); err == nil {
		t.Fatalf("expected an error for an unknown --vcs value")
	}
}
