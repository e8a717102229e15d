// Package verconfig owns the compiled version-parsing regex, the ordered
// list of serialization templates, the per-part bump-function schemas, and
// the default search/replace templates (spec.md §4.C, §4.D).
package verconfig

import (
	"fmt"
	"regexp"

	"github.com/indaco/vbump/internal/apperrors"
	"github.com/indaco/vbump/internal/partfn"
	"github.com/indaco/vbump/internal/tmplctx"
	"github.com/indaco/vbump/internal/verpart"
	"github.com/indaco/vbump/internal/vlog"
)

// DefaultSearch and DefaultReplace are the templates used when a file does
// not declare its own search/replace expressions.
const (
	DefaultSearch  = "{current_version}"
	DefaultReplace = "{new_version}"
)

// Config holds everything needed to parse a version string and serialize a
// Version back out: the compiled parse regex, the ordered serialization
// templates, and the per-part bump schemas.
type Config struct {
	parseRegex  *regexp.Regexp
	serializers []string
	partSchemas map[string]partfn.Func
	Search      string
	Replace     string
}

// New compiles parse (in verbose mode) and builds a Config. serializers
// must be non-empty; partSchemas may be nil, in which case every part
// defaults to a Numeric schema. search/replace default to
// DefaultSearch/DefaultReplace when empty.
func New(parse string, serializers []string, partSchemas map[string]partfn.Func, search, replace string) (*Config, error) {
	if len(serializers) == 0 {
		return nil, fmt.Errorf("serialize list cannot be empty")
	}
	vlog.Debugf("compiling parse regexp %q", parse)
	re, err := regexp.Compile(stripVerbose(parse))
	if err != nil {
		return nil, &apperrors.InvalidRegexError{Pattern: parse, Err: err}
	}
	if partSchemas == nil {
		partSchemas = map[string]partfn.Func{}
	}
	if search == "" {
		search = DefaultSearch
	}
	if replace == "" {
		replace = DefaultReplace
	}
	return &Config{
		parseRegex:  re,
		serializers: serializers,
		partSchemas: partSchemas,
		Search:      search,
		Replace:     replace,
	}, nil
}

// Order returns the version's part-name ordering: the capture-group
// ordering of the first (most complete, by contract) serialization
// template.
func (c *Config) Order() []string {
	return tmplctx.FieldNames(c.serializers[0])
}

// defaultSchema is the Numeric function used for any capture group that
// has no explicit per-part schema.
func defaultSchema() partfn.Func {
	fn, _ := partfn.NewNumeric("", false)
	return fn
}

func (c *Config) schemaFor(name string) partfn.Func {
	if fn, ok := c.partSchemas[name]; ok {
		return fn
	}
	return defaultSchema()
}

// Parse matches versionString against the configured regex. A non-matching
// string is not fatal: Parse returns (nil, false) so the caller can log a
// warning and proceed (spec.md §4.C).
func (c *Config) Parse(versionString string) (*verpart.Version, bool) {
	if versionString == "" {
		return nil, false
	}
	vlog.Debugf("parsing version %q using regexp %q", versionString, c.parseRegex.String())
	match := c.parseRegex.FindStringSubmatch(versionString)
	if match == nil {
		return nil, false
	}
	names := c.parseRegex.SubexpNames()
	values := make(map[string]verpart.PartValue)
	for i, name := range names {
		if i == 0 || name == "" {
			continue
		}
		values[name] = verpart.NewPartValue(match[i], c.schemaFor(name))
	}
	return verpart.NewVersion(values, versionString), true
}

// incompleteRepresentationError is raised internally by serialize when a
// template omits a non-optional part; it is caught by chooseFormat and
// never surfaced to the user (spec.md §7: "incomplete-representation —
// internal; ... never user-visible").
type incompleteRepresentationError struct {
	keys   []string
	format string
}

func (e *incompleteRepresentationError) Error() string {
	return fmt.Sprintf("could not represent %v in format %q", e.keys, e.format)
}

// serialize expands format against version overlaid on ctx. When
// raiseIfIncomplete is true, it additionally verifies that every part that
// must appear (the longest schema-ordered prefix containing a non-optional
// part) is actually referenced by format.
func (c *Config) serialize(version *verpart.Version, format string, ctx tmplctx.Context, raiseIfIncomplete bool) (string, error) {
	values := make(tmplctx.Context, len(ctx))
	for k, v := range ctx {
		values[k] = v
	}
	order := c.Order()
	for _, name := range order {
		if pv, ok := version.Get(name); ok {
			values[name] = pv
		}
	}

	serialized, err := tmplctx.Expand(format, values)
	if err != nil {
		return "", err
	}

	if raiseIfIncomplete {
		var needed []string
		for i, name := range order {
			pv, ok := values[name].(verpart.PartValue)
			if !ok {
				continue
			}
			if !pv.IsOptional() {
				needed = order[:i+1]
			}
		}
		required := make(map[string]bool)
		for _, f := range tmplctx.FieldNames(format) {
			required[f] = true
		}
		for _, n := range needed {
			if !required[n] {
				return "", &incompleteRepresentationError{keys: needed, format: format}
			}
		}
	}

	return serialized, nil
}

// chooseFormat implements the shortest-complete-template rule of spec.md
// §4.D, including its open-question tie-break: when no template is
// complete, the first template tried is kept (DESIGN.md open-question 1).
func (c *Config) chooseFormat(version *verpart.Version, ctx tmplctx.Context) (string, error) {
	var chosen string
	chosenSet := false
	chosenComplete := false

	for _, format := range c.serializers {
		_, err := c.serialize(version, format, ctx, true)
		if err == nil {
			count := len(tmplctx.FieldNames(format))
			if !chosenComplete || len(tmplctx.FieldNames(chosen)) > count {
				chosen = format
				chosenSet = true
				chosenComplete = true
			}
			continue
		}
		var incomplete *incompleteRepresentationError
		if asIncomplete(err, &incomplete) {
			if !chosenSet {
				chosen = format
				chosenSet = true
			}
			continue
		}
		return "", err
	}

	if !chosenSet {
		return "", fmt.Errorf("did not find suitable serialization format")
	}
	return chosen, nil
}

func asIncomplete(err error, target **incompleteRepresentationError) bool {
	if e, ok := err.(*incompleteRepresentationError); ok {
		*target = e
		return true
	}
	return false
}

// Serialize renders version using the template chosen by the rules of
// spec.md §4.D.
func (c *Config) Serialize(version *verpart.Version, ctx tmplctx.Context) (string, error) {
	format, err := c.chooseFormat(version, ctx)
	if err != nil {
		return "", err
	}
	return c.serialize(version, format, ctx, false)
}

// SerializeOrLiteral behaves like Serialize, but falls back to version's
// literal original string when version carries no part values to
// serialize — the case left by a current or --new-version string that did
// not match the configured parse regex (spec.md §4.C: a failed parse is
// not fatal, so the raw string is what templates and the rewriter use in
// its place, mirroring the original's behavior of echoing the unparsed
// version string back unchanged).
func (c *Config) SerializeOrLiteral(version *verpart.Version, ctx tmplctx.Context) (string, error) {
	s, err := c.Serialize(version, ctx)
	if err == nil {
		return s, nil
	}
	for _, name := range c.Order() {
		if version.Has(name) {
			return "", err
		}
	}
	if version.Original != "" {
		return version.Original, nil
	}
	return "", err
}
