// Package engine orchestrates a single bump: load configuration, parse the
// current version, compute the next one, verify every configured file
// before touching any of them, rewrite them, persist the new version to
// the configuration file, and drive the VCS collaborator (spec.md §2, §5).
package engine

import (
	"context"
	"fmt"

	"github.com/indaco/vbump/internal/cfgfile"
	"github.com/indaco/vbump/internal/partfn"
	"github.com/indaco/vbump/internal/rewrite"
	"github.com/indaco/vbump/internal/tmplctx"
	"github.com/indaco/vbump/internal/vcsint"
	"github.com/indaco/vbump/internal/verconfig"
	"github.com/indaco/vbump/internal/verpart"
	"github.com/indaco/vbump/internal/vlog"
)

// Options carries every CLI flag override that can reshape a run
// (spec.md §6's flags table). A zero value of a string/slice field means
// "use whatever the configuration file says".
type Options struct {
	ConfigPath         string
	ConfigFileExplicit bool
	VCS                string
	Part               string
	CurrentVersion     string
	NewVersion         string
	Parse              string
	Serialize          []string
	Search             string
	Replace            string
	ExtraFiles         []string
	NoConfiguredFiles  bool

	Commit       *bool
	Tag          *bool
	SignTags     *bool
	AllowDirty   bool
	Message      string
	TagName      string
	TagMessage   string
	MessageEmoji string

	DryRun bool

	WorkDir string
}

// Result summarizes a completed run for the caller to report or list.
type Result struct {
	OldVersion    string
	NewVersion    string
	FilesTouched  []string
	ConfigPath    string
	TaggedAs      string
	CommitMessage string
}

// Run executes the full two-phase bump pipeline described by spec.md §5.
func Run(ctx context.Context, opts Options) (*Result, error) {
	cfg, err := cfgfile.Load(opts.ConfigPath, opts.ConfigFileExplicit)
	if err != nil {
		return nil, err
	}

	applyOverrides(cfg, opts)

	partSchemas, err := buildPartSchemas(cfg.Parts)
	if err != nil {
		return nil, err
	}

	rootConfig, err := verconfig.New(cfg.Parse, cfg.Serialize, partSchemas, cfg.Search, cfg.Replace)
	if err != nil {
		return nil, err
	}
	ordering := rootConfig.Order()

	// Absence of a match is not fatal at parse time (spec.md §4.C): the
	// original only warns and proceeds, since a run driven entirely by
	// --new-version never needs to bump current's parts, only to rewrite
	// files against its literal text. A downstream Bump still fails with
	// UnknownPartError if a part bump actually requires the unparsed value.
	current, ok := rootConfig.Parse(cfg.CurrentVersion)
	if !ok {
		vlog.Warnf("evaluating 'parse' option: %q does not parse current version %q", cfg.Parse, cfg.CurrentVersion)
		current = verpart.NewVersion(nil, cfg.CurrentVersion)
	}

	workDir := opts.WorkDir
	if workDir == "" {
		workDir = "."
	}
	collaborator, err := vcsint.Select(workDir, opts.VCS)
	if err != nil {
		return nil, err
	}

	allowDirty := opts.AllowDirty || cfg.AllowDirty
	if collaborator != nil && !allowDirty {
		if err := collaborator.AssertNonDirty(ctx); err != nil {
			return nil, err
		}
	}

	var vcsInfo *tmplctx.VCSInfo
	if collaborator != nil {
		vcsInfo, err = collaborator.LatestTagInfo(ctx)
		if err != nil {
			return nil, err
		}
	}

	next, err := computeNext(current, opts, rootConfig, ordering)
	if err != nil {
		return nil, err
	}

	baseCtx := tmplctx.Assemble(current, next, ordering, vcsInfo)

	files, err := buildConfiguredFiles(cfg, opts, partSchemas)
	if err != nil {
		return nil, err
	}

	vlog.Infof("asserting %d configured file(s) contain the version string", len(files))
	for _, f := range files {
		if err := f.ShouldContainVersion(current, baseCtx); err != nil {
			return nil, err
		}
	}

	var touched []string
	for _, f := range files {
		if err := f.Replace(current, next, baseCtx, opts.DryRun); err != nil {
			return nil, err
		}
		touched = append(touched, f.Path)
	}

	currentVersionStr, err := rootConfig.SerializeOrLiteral(current, baseCtx)
	if err != nil {
		return nil, err
	}
	newVersionStr, err := rootConfig.SerializeOrLiteral(next, baseCtx)
	if err != nil {
		return nil, err
	}
	vlog.Infof("new version will be %q", newVersionStr)

	if !opts.DryRun {
		vlog.Infof("writing new version to config file %s", cfg.Path())
		if err := cfgfile.Save(cfg, newVersionStr); err != nil {
			return nil, err
		}
	}

	result := &Result{
		OldVersion:   currentVersionStr,
		NewVersion:   newVersionStr,
		FilesTouched: touched,
		ConfigPath:   cfg.Path(),
	}

	renderCtx := tmplctx.WithSerialized(baseCtx, currentVersionStr, newVersionStr)
	messageEmoji := opts.MessageEmoji
	if messageEmoji == "" {
		messageEmoji = cfg.MessageEmoji
	}
	renderCtx["message_emoji"] = messageEmoji

	shouldCommit := cfg.Commit
	if opts.Commit != nil {
		shouldCommit = *opts.Commit
	}
	shouldTag := cfg.Tag
	if opts.Tag != nil {
		shouldTag = *opts.Tag
	}
	signTags := cfg.SignTags
	if opts.SignTags != nil {
		signTags = *opts.SignTags
	}

	if opts.DryRun {
		return result, nil
	}

	if shouldCommit && collaborator != nil {
		message := opts.Message
		if message == "" {
			message = cfg.Message
		}
		if message == "" {
			message = "Bump version: {current_version} -> {new_version}"
		}
		rendered, err := tmplctx.Expand(message, renderCtx)
		if err != nil {
			return nil, err
		}
		if err := collaborator.Commit(ctx, rendered, currentVersionStr, newVersionStr); err != nil {
			return nil, err
		}
		result.CommitMessage = rendered

		if shouldTag {
			tagName := opts.TagName
			if tagName == "" {
				tagName = cfg.TagName
			}
			if tagName == "" {
				tagName = "v{new_version}"
			}
			renderedName, err := tmplctx.Expand(tagName, renderCtx)
			if err != nil {
				return nil, err
			}
			tagMessage := opts.TagMessage
			if tagMessage == "" {
				tagMessage = cfg.TagMessage
			}
			renderedMessage := ""
			if tagMessage != "" {
				renderedMessage, err = tmplctx.Expand(tagMessage, renderCtx)
				if err != nil {
					return nil, err
				}
			}
			if err := collaborator.Tag(ctx, signTags, renderedName, renderedMessage); err != nil {
				return nil, err
			}
			result.TaggedAs = renderedName
		}
	}

	return result, nil
}

// applyOverrides layers CLI flag overrides onto the loaded configuration
// in place, the way the original applies --new-version/--parse/etc. on
// top of the values read from the config file.
func applyOverrides(cfg *cfgfile.Config, opts Options) {
	if opts.CurrentVersion != "" {
		cfg.CurrentVersion = opts.CurrentVersion
	}
	if opts.Parse != "" {
		cfg.Parse = opts.Parse
	}
	if len(opts.Serialize) > 0 {
		cfg.Serialize = opts.Serialize
	}
	if opts.Search != "" {
		cfg.Search = opts.Search
	}
	if opts.Replace != "" {
		cfg.Replace = opts.Replace
	}
}

// computeNext returns the post-bump version: a literal parse of
// opts.NewVersion when supplied, otherwise the result of bumping opts.Part.
// Like the current-version parse in Run, a --new-version that the
// configured regex cannot match is not fatal (spec.md §4.C): it is used
// verbatim as the new version's literal text.
func computeNext(current *verpart.Version, opts Options, cfg *verconfig.Config, ordering []string) (*verpart.Version, error) {
	if opts.NewVersion != "" {
		next, ok := cfg.Parse(opts.NewVersion)
		if !ok {
			vlog.Warnf("evaluating 'parse' option: does not parse new version %q", opts.NewVersion)
			next = verpart.NewVersion(nil, opts.NewVersion)
		}
		return next, nil
	}
	if opts.Part == "" {
		return nil, fmt.Errorf("a version part to bump is required")
	}
	return current.Bump(opts.Part, ordering)
}

// buildPartSchemas constructs the per-part partfn.Func set from the
// configuration file's [bumpversion:part:NAME] sections.
func buildPartSchemas(parts map[string]cfgfile.PartConfig) (map[string]partfn.Func, error) {
	schemas := make(map[string]partfn.Func, len(parts))
	for name, part := range parts {
		if len(part.Values) > 0 {
			fn, err := partfn.NewEnumerated(part.Values, part.FirstValue, part.OptionalValue, part.Independent)
			if err != nil {
				return nil, fmt.Errorf("part %q: %w", name, err)
			}
			schemas[name] = fn
			continue
		}
		fn, err := partfn.NewNumeric(part.FirstValue, part.Independent)
		if err != nil {
			return nil, fmt.Errorf("part %q: %w", name, err)
		}
		schemas[name] = fn
	}
	return schemas, nil
}

// buildConfiguredFiles turns the configuration's file targets (plus any
// CLI-supplied extra file positionals) into rewrite.ConfiguredFile values,
// each carrying its own per-file verconfig.Config when overrides are
// declared, falling back to the root configuration otherwise.
func buildConfiguredFiles(cfg *cfgfile.Config, opts Options, partSchemas map[string]partfn.Func) ([]*rewrite.ConfiguredFile, error) {
	var out []*rewrite.ConfiguredFile

	if !opts.NoConfiguredFiles {
		for _, ft := range cfg.Files {
			fileCfg, err := fileConfig(cfg, ft.Parse, ft.Serialize, ft.Search, ft.Replace, partSchemas)
			if err != nil {
				return nil, err
			}
			out = append(out, &rewrite.ConfiguredFile{Path: ft.Path, Config: fileCfg})
		}
	}

	for _, path := range opts.ExtraFiles {
		fileCfg, err := fileConfig(cfg, "", nil, "", "", partSchemas)
		if err != nil {
			return nil, err
		}
		out = append(out, &rewrite.ConfiguredFile{Path: path, Config: fileCfg})
	}

	return out, nil
}

// fileConfig builds a verconfig.Config for a single file target, falling
// back to the root configuration's parse/serialize/search/replace for any
// field the file target leaves unset.
func fileConfig(cfg *cfgfile.Config, parse string, serialize []string, search, replace string, partSchemas map[string]partfn.Func) (*verconfig.Config, error) {
	if parse == "" {
		parse = cfg.Parse
	}
	if len(serialize) == 0 {
		serialize = cfg.Serialize
	}
	if search == "" {
		search = cfg.Search
	}
	if replace == "" {
		replace = cfg.Replace
	}
	return verconfig.New(parse, serialize, partSchemas, search, replace)
}
