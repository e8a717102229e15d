package cfgfile

import (
	"os"
	"path/filepath"
	"testing"
)

// FuzzLoad exercises Load with arbitrary INI content. Load must never
// panic, and a successful load must always produce a usable Config.
func FuzzLoad(f *testing.F) {
	seeds := []string{
		"[bumpversion]\ncurrent_version = 1.2.3\n",
		"[bumpversion]\ncurrent_version = 1.2.3\ncommit = True\ntag = True\n",
		"[bumpversion:file:VERSION]\n",
		"[bumpversion:part:release]\nvalues =\n\tdev\n\tgamma\n",
		"[bumpversion:glob:**/*.txt]\n",
		"",
		"[bumpversion",
		"[bumpversion]\ncurrent_version",
		"[bumpversion]\nindependent = not-a-bool\n",
		"\x00\x01\x02",
	}
	for _, s := range seeds {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, input string) {
		path := filepath.Join(t.TempDir(), ".bumpversion.cfg")
		if err := os.WriteFile(path, []byte(input), 0o644); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}

		cfg, err := Load(path, true)
		if err != nil {
			return
		}

		// A successfully loaded config must never panic on its accessors.
		_ = cfg.String()
		_ = cfg.Path()
		for _, ft := range cfg.Files {
			_ = ft.Path
		}
		for _, p := range cfg.Parts {
			_ = p.Name
		}
	})
}
