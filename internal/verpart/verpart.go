// Package verpart implements the version value and the bump algebra: an
// ordered mapping from part-name to part-value, each carrying a reference to
// its own bump schema, plus the bump operation that advances one named part
// and resets its dependents.
package verpart

import (
	"github.com/indaco/vbump/internal/apperrors"
	"github.com/indaco/vbump/internal/partfn"
)

// PartValue is a single named component of a Version. It holds the raw
// parsed value (which may be empty) and a reference to the bump function
// that governs it.
type PartValue struct {
	raw  string
	Func partfn.Func
}

// NewPartValue wraps raw under fn. fn must not be nil.
func NewPartValue(raw string, fn partfn.Func) PartValue {
	return PartValue{raw: raw, Func: fn}
}

// Value returns the part's effective value: the raw parsed value, or the
// schema's optional value when raw is empty.
func (p PartValue) Value() string {
	if p.raw == "" {
		return p.Func.OptionalValue()
	}
	return p.raw
}

// IsOptional reports whether the part's effective value equals its
// schema's optional value.
func (p PartValue) IsOptional() bool {
	return p.Value() == p.Func.OptionalValue()
}

// IsIndependent reports whether the part is exempt from reset-on-bump.
func (p PartValue) IsIndependent() bool {
	return p.Func.Independent()
}

// Bump returns a PartValue holding the next value for this part.
func (p PartValue) Bump() (PartValue, error) {
	next, err := p.Func.Bump(p.Value())
	if err != nil {
		return PartValue{}, err
	}
	return PartValue{raw: next, Func: p.Func}, nil
}

// Null returns a PartValue reset to this part's first value.
func (p PartValue) Null() PartValue {
	return PartValue{raw: p.Func.FirstValue(), Func: p.Func}
}

// Version is an ordered mapping from part-name to PartValue, plus the
// literal string it was parsed from (used by the rewriter as a fallback
// search/replace target).
type Version struct {
	values   map[string]PartValue
	Original string
}

// NewVersion constructs a Version from a part-name to PartValue mapping and
// the literal string it was parsed from.
func NewVersion(values map[string]PartValue, original string) *Version {
	cp := make(map[string]PartValue, len(values))
	for k, v := range values {
		cp[k] = v
	}
	return &Version{values: cp, Original: original}
}

// Get returns the PartValue for name and whether it is present.
func (v *Version) Get(name string) (PartValue, bool) {
	pv, ok := v.values[name]
	return pv, ok
}

// Has reports whether name is present in the version.
func (v *Version) Has(name string) bool {
	_, ok := v.values[name]
	return ok
}

// Bump produces a new Version in which part is advanced to its next value
// and, walking ordering in order, every subsequent non-independent part
// present in the version is reset to its first value. Parts preceding part
// in ordering, and independent parts anywhere, are carried unchanged.
//
// It is a fatal UnknownPartError for part to be absent from every entry of
// ordering that is also present in the version.
func (v *Version) Bump(part string, ordering []string) (*Version, error) {
	bumped := false
	newValues := make(map[string]PartValue, len(v.values))

	for _, label := range ordering {
		pv, ok := v.values[label]
		if !ok {
			continue
		}
		switch {
		case label == part:
			next, err := pv.Bump()
			if err != nil {
				return nil, err
			}
			newValues[label] = next
			bumped = true
		case bumped && !pv.IsIndependent():
			newValues[label] = pv.Null()
		default:
			newValues[label] = pv
		}
	}

	if !bumped {
		return nil, &apperrors.UnknownPartError{Part: part}
	}

	return &Version{values: newValues}, nil
}
