// Package rewrite implements the file rewriter (spec.md §4.F): bounded
// sliding-window containment checks, the should_contain_version fallback to
// a version's literal original spelling, and the replace operation with its
// pyproject.toml special case and line-ending preservation.
package rewrite

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/aymanbagabas/go-udiff"
	"github.com/indaco/vbump/internal/apperrors"
	"github.com/indaco/vbump/internal/tmplctx"
	"github.com/indaco/vbump/internal/verconfig"
	"github.com/indaco/vbump/internal/verpart"
	"github.com/indaco/vbump/internal/vlog"
)

// ConfiguredFile is a path plus the (possibly file-specific) version
// config that governs how its version text is located and rewritten.
type ConfiguredFile struct {
	Path   string
	Config *verconfig.Config
}

// lineEnding reports the first line separator observed in content, so
// Replace can write the file back with the same convention it found
// (spec.md §4.F, §5: newline preservation).
func lineEnding(content string) string {
	if i := strings.IndexByte(content, '\n'); i >= 0 {
		if i > 0 && content[i-1] == '\r' {
			return "\r\n"
		}
		return "\n"
	}
	if strings.IndexByte(content, '\r') >= 0 {
		return "\r"
	}
	return "\n"
}

// Contains reports whether search appears in the file at f.Path using a
// bounded sliding-window match: the expression is split on line
// boundaries, the file is scanned with a window of the same line count,
// the first search line must be a substring of the first window line, the
// last search line a substring of the last window line, and every
// interior line must match exactly.
func (f *ConfiguredFile) Contains(search string) (bool, error) {
	if search == "" {
		return false, nil
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return false, &apperrors.IOError{Op: "read", Path: f.Path, Err: err}
	}

	searchLines := splitLines(search)
	fileLines := splitLines(normalizeNewlines(string(data)))

	n := len(searchLines)
	if n == 0 {
		return false, nil
	}

	var window []string
	for _, line := range fileLines {
		window = append(window, line)
		if len(window) > n {
			window = window[1:]
		}
		if len(window) < n {
			continue
		}
		if matchesWindow(searchLines, window) {
			return true, nil
		}
	}
	return false, nil
}

func matchesWindow(search, window []string) bool {
	if !strings.Contains(window[0], search[0]) {
		return false
	}
	if !strings.Contains(window[len(window)-1], search[len(search)-1]) {
		return false
	}
	for i := 1; i < len(search)-1; i++ {
		if window[i] != search[i] {
			return false
		}
	}
	return true
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return s
}

func splitLines(s string) []string {
	s = normalizeNewlines(s)
	return strings.Split(s, "\n")
}

// ShouldContainVersion verifies that f currently contains the expected
// version text. If the configured search expression does not match and
// the search template is still the unmodified default, it retries with
// version's literal original string before failing (spec.md §4.F).
func (f *ConfiguredFile) ShouldContainVersion(version *verpart.Version, ctx tmplctx.Context) error {
	currentVersion, err := f.Config.SerializeOrLiteral(version, ctx)
	if err != nil {
		return err
	}
	ctx = tmplctx.WithSerialized(ctx, currentVersion, "")

	searchExpr, err := tmplctx.Expand(f.Config.Search, ctx)
	if err != nil {
		return err
	}

	ok, err := f.Contains(searchExpr)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}

	if f.Config.Search == verconfig.DefaultSearch {
		ok, err := f.Contains(version.Original)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
	}

	return &apperrors.VersionNotFoundError{Path: f.Path, Search: searchExpr}
}

var pyprojectVersionLine = regexp.MustCompile(`(?m)^(version\s*=\s*)`)

// Replace rewrites f.Path so that the text matching the configured search
// template (after expansion against current) becomes the configured
// replace template (after expansion against next). The unified diff is
// logged at info level in both modes; dryRun suppresses the write.
func (f *ConfiguredFile) Replace(current, next *verpart.Version, ctx tmplctx.Context, dryRun bool) error {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return &apperrors.IOError{Op: "read", Path: f.Path, Err: err}
	}
	before := string(data)
	sep := lineEnding(before)

	currentVersion, err := f.Config.SerializeOrLiteral(current, ctx)
	if err != nil {
		return err
	}
	newVersion, err := f.Config.SerializeOrLiteral(next, ctx)
	if err != nil {
		return err
	}
	rendered := tmplctx.WithSerialized(ctx, currentVersion, newVersion)

	searchFor, err := tmplctx.Expand(f.Config.Search, rendered)
	if err != nil {
		return err
	}
	replaceWith, err := tmplctx.Expand(f.Config.Replace, rendered)
	if err != nil {
		return err
	}

	normalized := normalizeNewlines(before)
	var after string
	if filepath.Base(f.Path) == "pyproject.toml" {
		after = replacePyprojectVersion(normalized, searchFor, replaceWith)
	} else {
		after = strings.ReplaceAll(normalized, searchFor, replaceWith)
	}

	if after == normalized {
		after = strings.ReplaceAll(normalized, current.Original, replaceWith)
	}

	if after != normalized {
		diff := udiff.Unified("a/"+f.Path, "b/"+f.Path, normalized, after)
		if dryRun {
			vlog.Infof("would change file %s:\n%s", f.Path, diff)
		} else {
			vlog.Infof("changing file %s:\n%s", f.Path, diff)
		}
	} else {
		if dryRun {
			vlog.Infof("would not change file %s", f.Path)
		} else {
			vlog.Infof("not changing file %s", f.Path)
		}
	}

	if dryRun {
		return nil
	}

	out := strings.ReplaceAll(after, "\n", sep)
	if err := os.WriteFile(f.Path, []byte(out), 0o644); err != nil {
		return &apperrors.IOError{Op: "write", Path: f.Path, Err: err}
	}
	return nil
}

// replacePyprojectVersion applies the anchored `version = "..."` /
// `version = '...'` substitution, trying both quote styles since Go's RE2
// engine (unlike the original's backreference-based pattern) cannot match
// "whatever quote character opened the string"; each quote style is tried
// as its own fixed pattern instead.
func replacePyprojectVersion(content, searchFor, replaceWith string) string {
	for _, quote := range []string{`'`, `"`} {
		pattern := regexp.MustCompile(
			`(?m)^(version\s*=\s*)` + regexp.QuoteMeta(quote) + regexp.QuoteMeta(searchFor) + regexp.QuoteMeta(quote),
		)
		replaced := pattern.ReplaceAllString(content, "${1}"+quote+replaceWith+quote)
		if replaced != content {
			return replaced
		}
	}
	return content
}
