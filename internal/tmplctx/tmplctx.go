// Package tmplctx assembles the mapping used to expand the serialization,
// search, replace, tag-name, tag-message, and commit-message templates:
// version parts, pre-/post-bump part values, timestamps, environment
// variables, and VCS metadata (spec.md §4.G).
package tmplctx

import (
	"os"
	"time"

	"github.com/indaco/vbump/internal/verpart"
)

// Context is the template-expansion environment. Values are either a
// verpart.PartValue (for version-part keys), a string (serialized
// versions, VCS metadata, environment variables), or a time.Time (the
// "now"/"utcnow" keys).
type Context map[string]any

// VCSInfo carries the optional VCS-provided template keys. When
// HasDistanceToLatest is false the distance could not be determined, and
// Assemble leaves distance_to_latest_tag out of the context.
type VCSInfo struct {
	CommitSHA            string
	DistanceToLatestTag  int
	Dirty                bool
	HasDistanceToLatest  bool
}

// Assemble builds the base context shared by every template expansion in a
// run: every part of current (and, once computed, of next) under its own
// name plus current_<part>/new_<part>, "now"/"utcnow" timestamps, every
// process environment variable under a "$"-prefixed key (mirroring the
// original's prefixed_environ()), and VCS metadata when vcs is non-nil.
func Assemble(current *verpart.Version, next *verpart.Version, order []string, vcs *VCSInfo) Context {
	ctx := make(Context)

	for _, name := range order {
		if pv, ok := current.Get(name); ok {
			ctx[name] = pv
			ctx["current_"+name] = pv
		}
	}
	if next != nil {
		for _, name := range order {
			if pv, ok := next.Get(name); ok {
				ctx[name] = pv
				ctx["new_"+name] = pv
			}
		}
	}

	now := time.Now()
	ctx["now"] = now
	ctx["utcnow"] = now.UTC()

	for _, kv := range os.Environ() {
		for i := 0; i < len(kv); i++ {
			if kv[i] == '=' {
				ctx["$"+kv[:i]] = kv[i+1:]
				break
			}
		}
	}

	if vcs != nil {
		ctx["commit_sha"] = vcs.CommitSHA
		if vcs.HasDistanceToLatest {
			ctx["distance_to_latest_tag"] = fmtInt(vcs.DistanceToLatestTag)
		}
		ctx["dirty"] = fmtBool(vcs.Dirty)
	}

	return ctx
}

// WithSerialized returns a copy of ctx with current_version and/or
// new_version set to the given serialized strings. Empty strings leave the
// corresponding key untouched.
func WithSerialized(ctx Context, currentVersion, newVersion string) Context {
	cp := make(Context, len(ctx)+2)
	for k, v := range ctx {
		cp[k] = v
	}
	if currentVersion != "" {
		cp["current_version"] = currentVersion
	}
	if newVersion != "" {
		cp["new_version"] = newVersion
	}
	return cp
}

func fmtInt(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

func fmtBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}
