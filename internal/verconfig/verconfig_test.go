package verconfig

import (
	"testing"

	"github.com/indaco/vbump/internal/partfn"
	"github.com/indaco/vbump/internal/tmplctx"
)

func TestParseAndBumpSimpleTriple(t *testing.T) {
	cfg, err := New(`XXX(?P<spam>\d+);(?P<blob>\d+);(?P<slurp>\d+)`,
		[]string{"XXX{spam};{blob};{slurp}"}, nil, "", "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	v, ok := cfg.Parse("XXX1;0;0")
	if !ok {
		t.Fatalf("expected parse to succeed")
	}
	next, err := v.Bump("blob", cfg.Order())
	if err != nil {
		t.Fatalf("Bump: %v", err)
	}
	got, err := cfg.Serialize(next, tmplctx.Context{})
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	if got != "XXX1;1;0" {
		t.Fatalf("Serialize = %q, want XXX1;1;0", got)
	}
}

func TestShortestCompleteTemplateChosen(t *testing.T) {
	cfg, err := New(`(?P<major>\d+)\.(?P<minor>\d+)(\.(?P<patch>\d+))?`,
		[]string{"{major}.{minor}.{patch}", "{major}.{minor}"}, nil, "", "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	v, ok := cfg.Parse("0.9")
	if !ok {
		t.Fatalf("expected parse to succeed")
	}
	next, err := v.Bump("minor", cfg.Order())
	if err != nil {
		t.Fatalf("Bump: %v", err)
	}
	got, err := cfg.Serialize(next, tmplctx.Context{})
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	if got != "0.10" {
		t.Fatalf("Serialize = %q, want 0.10", got)
	}
}

func TestEnumeratedPartPromotionAndReset(t *testing.T) {
	release, err := partfn.NewEnumerated([]string{"dev", "gamma"}, "", "gamma", false)
	if err != nil {
		t.Fatalf("NewEnumerated: %v", err)
	}
	cfg, err := New(`(?P<major>\d+)\.(?P<minor>\d+)\.(?P<release>\w+)`,
		[]string{"{major}.{minor}.{release}", "{major}.{minor}"},
		map[string]partfn.Func{"release": release}, "", "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	v, ok := cfg.Parse("1.5.dev")
	if !ok {
		t.Fatalf("expected parse to succeed")
	}

	afterRelease, err := v.Bump("release", cfg.Order())
	if err != nil {
		t.Fatalf("Bump(release): %v", err)
	}
	got, err := cfg.Serialize(afterRelease, tmplctx.Context{})
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	if got != "1.5" {
		t.Fatalf("Serialize = %q, want 1.5", got)
	}

	afterMinor, err := afterRelease.Bump("minor", cfg.Order())
	if err != nil {
		t.Fatalf("Bump(minor): %v", err)
	}
	got, err = cfg.Serialize(afterMinor, tmplctx.Context{})
	if err != nil {
		t.Fatalf("Serialize: %v", err)
	}
	if got != "1.6.dev" {
		t.Fatalf("Serialize = %q, want 1.6.dev", got)
	}
}

func TestVerboseRegexSupportsCommentsAndWhitespace(t *testing.T) {
	cfg, err := New(`
		(?P<major>\d+)  # major version
		\.
		(?P<minor>\d+)  # minor version
	`, []string{"{major}.{minor}"}, nil, "", "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	v, ok := cfg.Parse("3.4")
	if !ok {
		t.Fatalf("expected verbose regex to still parse 3.4")
	}
	if pv, _ := v.Get("major"); pv.Value() != "3" {
		t.Fatalf("major = %q, want 3", pv.Value())
	}
}

func TestInvalidRegexIsConfigError(t *testing.T) {
	if _, err := New(`(unclosed`, []string{"{major}"}, nil, "", ""); err == nil {
		t.Fatalf("expected invalid-regex error")
	}
}

func TestUnparsableVersionReturnsFalse(t *testing.T) {
	cfg, err := New(`(?P<major>\d+)`, []string{"{major}"}, nil, "", "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, ok := cfg.Parse("not-a-version-at-all-!!!"); ok {
		t.Fatalf("expected parse to fail gracefully")
	}
}
