// Package cfgfile loads and rewrites the INI-style configuration file
// (default .bumpversion.cfg, fallback setup.cfg) described in spec.md §6:
// a root [bumpversion] section, per-file [bumpversion:file:PATH] and
// [bumpversion:glob:PATTERN] sections, and per-part [bumpversion:part:NAME]
// sections.
package cfgfile

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/ini.v1"

	"github.com/indaco/vbump/internal/apperrors"
	"github.com/indaco/vbump/internal/vlog"
)

const rootSection = "bumpversion"

// DefaultParse and DefaultSerialize mirror the original's built-in
// major.minor.patch scheme, each used when the [bumpversion] section does
// not declare that key.
const DefaultParse = `(?P<major>\d+)\.(?P<minor>\d+)\.(?P<patch>\d+)`

var DefaultSerialize = []string{"{major}.{minor}.{patch}"}

// PartConfig is the [bumpversion:part:NAME] section.
type PartConfig struct {
	Name          string
	Values        []string
	FirstValue    string
	OptionalValue string
	Independent   bool
}

// FileTarget is a [bumpversion:file:PATH] (or :file (suffix):PATH) section:
// a path plus optional per-file overrides of parse/serialize/search/replace.
type FileTarget struct {
	Path      string
	Parse     string
	Serialize []string
	Search    string
	Replace   string
}

// GlobTarget is a [bumpversion:glob:PATTERN] section, expanded to one
// FileTarget per matching path at load time.
type GlobTarget struct {
	Pattern   string
	Parse     string
	Serialize []string
	Search    string
	Replace   string
}

// Config is the fully parsed configuration file.
type Config struct {
	CurrentVersion string
	Commit         bool
	Tag            bool
	SignTags       bool
	AllowDirty     bool
	Message        string
	TagName        string
	TagMessage     string
	MessageEmoji   string
	Search         string
	Replace        string
	Parse          string
	Serialize      []string
	Files          []FileTarget
	Parts          map[string]PartConfig

	path string
	raw  *ini.File
}

// Load reads and parses the configuration file at path. explicit reports
// whether path came from an explicit --config-file flag rather than
// vbump's computed default (.bumpversion.cfg, falling back to setup.cfg):
// a missing explicit path is fatal (spec.md §6), but a missing default
// path is not — the original logs "Could not read config file" as INFO
// and proceeds with built-in defaults and whatever --current-version/
// --new-version the caller supplied on the command line.
func Load(path string, explicit bool) (*Config, error) {
	if !explicit {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			vlog.Infof("could not read config file at %s", path)
			return &Config{
				path:      path,
				raw:       ini.Empty(),
				Parts:     map[string]PartConfig{},
				Parse:     DefaultParse,
				Serialize: append([]string(nil), DefaultSerialize...),
			}, nil
		}
	}

	raw, err := ini.LoadSources(ini.LoadOptions{PreserveSurroundedQuote: true, AllowShadows: true, AllowPythonMultilineValues: true}, path)
	if err != nil {
		return nil, &apperrors.ConfigError{Operation: "load", Err: err}
	}

	cfg := &Config{path: path, raw: raw, Parts: map[string]PartConfig{}}

	root := raw.Section(rootSection)
	cfg.CurrentVersion = root.Key("current_version").String()
	cfg.Commit = root.Key("commit").MustBool(false)
	cfg.Tag = root.Key("tag").MustBool(false)
	cfg.SignTags = root.Key("sign_tags").MustBool(false)
	cfg.AllowDirty = root.Key("allow_dirty").MustBool(false)
	cfg.Message = root.Key("message").String()
	cfg.TagName = root.Key("tag_name").String()
	cfg.TagMessage = root.Key("tag_message").String()
	cfg.MessageEmoji = root.Key("message_emoji").String()
	cfg.Search = root.Key("search").String()
	cfg.Replace = root.Key("replace").String()
	cfg.Parse = root.Key("parse").String()
	if cfg.Parse == "" {
		cfg.Parse = DefaultParse
	}
	cfg.Serialize = root.Key("serialize").ValueWithShadows()
	if len(cfg.Serialize) == 0 {
		cfg.Serialize = DefaultSerialize
	}

	var globs []GlobTarget

	for _, sec := range raw.Sections() {
		name := sec.Name()
		switch {
		case strings.HasPrefix(name, rootSection+":part:"):
			partName := strings.TrimPrefix(name, rootSection+":part:")
			cfg.Parts[partName] = PartConfig{
				Name:          partName,
				Values:        splitNonEmptyLines(sec.Key("values").String()),
				FirstValue:    sec.Key("first_value").String(),
				OptionalValue: sec.Key("optional_value").String(),
				Independent:   parseIndependent(sec.Key("independent").String()),
			}
		case strings.HasPrefix(name, rootSection+":file"):
			path := fileSectionPath(name, rootSection+":file")
			cfg.Files = append(cfg.Files, FileTarget{
				Path:      path,
				Parse:     sec.Key("parse").String(),
				Serialize: sec.Key("serialize").ValueWithShadows(),
				Search:    sec.Key("search").String(),
				Replace:   sec.Key("replace").String(),
			})
		case strings.HasPrefix(name, rootSection+":glob:"):
			pattern := strings.TrimPrefix(name, rootSection+":glob:")
			globs = append(globs, GlobTarget{
				Pattern:   pattern,
				Parse:     sec.Key("parse").String(),
				Serialize: sec.Key("serialize").ValueWithShadows(),
				Search:    sec.Key("search").String(),
				Replace:   sec.Key("replace").String(),
			})
		}
	}

	for _, g := range globs {
		matches, err := doublestar.FilepathGlob(g.Pattern)
		if err != nil {
			return nil, &apperrors.ConfigError{Operation: "glob", Err: err}
		}
		for _, m := range matches {
			cfg.Files = append(cfg.Files, FileTarget{
				Path: m, Parse: g.Parse, Serialize: g.Serialize, Search: g.Search, Replace: g.Replace,
			})
		}
	}

	return cfg, nil
}

// fileSectionPath extracts PATH from a "bumpversion:file:PATH" or
// "bumpversion:file (suffix):PATH" section name, the parenthesized suffix
// existing only so the same path may be declared more than once under
// different per-file configs (spec.md §6).
func fileSectionPath(name, prefix string) string {
	rest := strings.TrimPrefix(name, prefix)
	rest = strings.TrimPrefix(rest, ":")
	if idx := strings.Index(rest, ")"); strings.HasPrefix(rest, " (") && idx >= 0 {
		rest = rest[idx+1:]
		rest = strings.TrimPrefix(rest, ":")
	}
	return rest
}

func splitNonEmptyLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// parseIndependent interprets the independent key the way spec.md §4.E
// requires: a falsy string value must be read as false, only an
// explicit truthy boolean-like value enables independence.
func parseIndependent(s string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	return b
}

// Save updates the config file's current_version in place, preserving
// every other section, key, and key capitalization (spec.md §6).
func Save(cfg *Config, newVersion string) error {
	cfg.raw.Section(rootSection).Key("current_version").SetValue(newVersion)
	if err := cfg.raw.SaveTo(cfg.path); err != nil {
		return &apperrors.ConfigError{Operation: "save", Err: err}
	}
	return nil
}

// Path returns the filesystem path this Config was loaded from.
func (c *Config) Path() string { return c.path }

// String helps tests and diagnostics render a Config compactly.
func (c *Config) String() string {
	return fmt.Sprintf("Config{path=%s, current_version=%s, files=%d}", c.path, c.CurrentVersion, len(c.Files))
}
