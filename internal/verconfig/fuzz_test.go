package verconfig

import (
	"testing"

	"github.com/indaco/vbump/internal/tmplctx"
)

// FuzzParse exercises Config.Parse with arbitrary version strings against
// the default major.minor.patch parse regex. Parse must never panic, and a
// successful parse must always be re-serializable.
func FuzzParse(f *testing.F) {
	seeds := []string{
		"1.2.3",
		"0.0.0",
		"1.2.3-dev",
		"",
		"v1.2.3",
		"1.2",
		"1.2.3.4",
		"not-a-version",
		"999999999999999999999.0.0",
		"1.2.3\n",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	cfg, err := New(`(?P<major>\d+)\.(?P<minor>\d+)\.(?P<patch>\d+)`,
		[]string{"{major}.{minor}.{patch}"}, nil, "", "")
	if err != nil {
		f.Fatalf("New: %v", err)
	}

	f.Fuzz(func(t *testing.T, input string) {
		version, ok := cfg.Parse(input)
		if !ok {
			return
		}
		if _, err := cfg.Serialize(version, tmplctx.Context{}); err != nil {
			t.Errorf("Serialize of a successfully parsed version %q failed: %v", input, err)
		}
	})
}

// FuzzCompile exercises New's regex compilation (verbose-mode stripping
// included) with arbitrary patterns. Compilation must never panic; an
// invalid pattern must come back as an error, never a crash.
func FuzzCompile(f *testing.F) {
	seeds := []string{
		`(?P<major>\d+)\.(?P<minor>\d+)\.(?P<patch>\d+)`,
		`(?x)
			(?P<major>\d+)\.
			(?P<minor>\d+)\.
			(?P<patch>\d+)
		`,
		`[`,
		`(?P<major>\d+`,
		``,
		`.*`,
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, pattern string) {
		_, _ = New(pattern, []string{"{major}"}, nil, "", "")
	})
}
