package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/indaco/vbump/internal/console"
	"github.com/indaco/vbump/internal/engine"
	"github.com/indaco/vbump/internal/vlog"
	"github.com/indaco/vbump/internal/version"
)

var noColorFlag bool

// newCLI builds the root command: a single program taking one positional
// part and zero or more positional file paths, matching spec.md §6's flat
// CLI surface rather than the teacher's subcommand tree.
func newCLI() *cli.Command {
	return &cli.Command{
		Name:      "vbump",
		Version:   fmt.Sprintf("v%s", version.GetVersion()),
		Usage:     "Bump a version identifier across tracked files",
		UsageText: "vbump [options] <part> [file ...]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config-file", Usage: "Path of the config file to load", Value: defaultConfigFile()},
			&cli.StringFlag{Name: "current-version", Usage: "Override the version read from the config file"},
			&cli.StringFlag{Name: "new-version", Usage: "Use this version verbatim, skipping bump computation"},
			&cli.StringFlag{Name: "parse", Usage: "Override the configured parse regex"},
			&cli.StringSliceFlag{Name: "serialize", Usage: "Override the configured serialize templates (repeatable)"},
			&cli.StringFlag{Name: "search", Usage: "Override the configured search template"},
			&cli.StringFlag{Name: "replace", Usage: "Override the configured replace template"},
			&cli.BoolFlag{Name: "commit", Usage: "Commit the bump"},
			&cli.BoolFlag{Name: "no-commit", Usage: "Do not commit the bump"},
			&cli.BoolFlag{Name: "tag", Usage: "Tag the commit"},
			&cli.BoolFlag{Name: "no-tag", Usage: "Do not tag the commit"},
			&cli.BoolFlag{Name: "sign-tags", Usage: "Sign the created tag"},
			&cli.BoolFlag{Name: "no-sign-tags", Usage: "Do not sign the created tag"},
			&cli.StringFlag{Name: "tag-name", Usage: "Template for the tag name"},
			&cli.StringFlag{Name: "tag-message", Usage: "Template for the annotated tag message"},
			&cli.StringFlag{Name: "message", Usage: "Template for the commit message"},
			&cli.StringFlag{Name: "message-emoji", Usage: "Emoji substituted into message/tag-message templates"},
			&cli.StringFlag{Name: "vcs", Usage: "Force the VCS collaborator (git or mercurial) instead of autodetecting"},
			&cli.BoolFlag{Name: "allow-dirty", Usage: "Skip the VCS clean-working-copy check"},
			&cli.BoolFlag{Name: "dry-run", Aliases: []string{"n"}, Usage: "Do not write any file; log intended changes"},
			&cli.BoolFlag{Name: "list", Usage: "Emit machine-readable key=value lines instead of a summary"},
			&cli.BoolFlag{Name: "no-configured-files", Usage: "Ignore files declared in the config file"},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "Increase logging verbosity (repeatable)"},
			&cli.BoolFlag{Name: "no-color", Usage: "Disable colored output", Destination: &noColorFlag},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			console.SetNoColor(noColorFlag)
			vlog.SetNoColor(noColorFlag)
			vlog.SetVerbosity(cmd.Count("verbose"))
			return ctx, nil
		},
		Action: runBump,
	}
}

// defaultConfigFile mirrors the original's fallback order: prefer
// .bumpversion.cfg, fall back to setup.cfg when present.
func defaultConfigFile() string {
	if _, err := os.Stat(".bumpversion.cfg"); err == nil {
		return ".bumpversion.cfg"
	}
	if _, err := os.Stat("setup.cfg"); err == nil {
		return "setup.cfg"
	}
	return ".bumpversion.cfg"
}

func runBump(ctx context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	if len(args) == 0 && cmd.String("new-version") == "" {
		return fmt.Errorf("a version part to bump is required")
	}

	var part string
	var files []string
	if len(args) > 0 {
		part = args[0]
		files = args[1:]
	}

	opts := engine.Options{
		ConfigPath:         cmd.String("config-file"),
		ConfigFileExplicit: cmd.IsSet("config-file"),
		VCS:                cmd.String("vcs"),
		Part:               part,
		CurrentVersion:     cmd.String("current-version"),
		NewVersion:         cmd.String("new-version"),
		Parse:              cmd.String("parse"),
		Serialize:          cmd.StringSlice("serialize"),
		Search:             cmd.String("search"),
		Replace:            cmd.String("replace"),
		ExtraFiles:         files,
		NoConfiguredFiles:  cmd.Bool("no-configured-files"),
		AllowDirty:         cmd.Bool("allow-dirty"),
		Message:            cmd.String("message"),
		TagName:            cmd.String("tag-name"),
		TagMessage:         cmd.String("tag-message"),
		MessageEmoji:       cmd.String("message-emoji"),
		DryRun:             cmd.Bool("dry-run"),
	}

	if cmd.Bool("commit") {
		t := true
		opts.Commit = &t
	}
	if cmd.Bool("no-commit") {
		f := false
		opts.Commit = &f
	}
	if cmd.Bool("tag") {
		t := true
		opts.Tag = &t
	}
	if cmd.Bool("no-tag") {
		f := false
		opts.Tag = &f
	}
	if cmd.Bool("sign-tags") {
		t := true
		opts.SignTags = &t
	}
	if cmd.Bool("no-sign-tags") {
		f := false
		opts.SignTags = &f
	}

	result, err := engine.Run(ctx, opts)
	if err != nil {
		return err
	}

	if cmd.Bool("list") {
		console.List(os.Stdout, map[string]string{
			"current_version": result.OldVersion,
			"new_version":     result.NewVersion,
		})
		return nil
	}

	console.PrintBumpSummary(os.Stdout, part, result.OldVersion, result.NewVersion)
	if opts.DryRun {
		console.PrintDryRunNotice(os.Stdout)
	} else {
		console.PrintFilesRewritten(os.Stdout, result.FilesTouched)
	}
	return nil
}
