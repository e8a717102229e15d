// Package partfn implements the per-part bump functions of the version
// schema: a Numeric function that increments the first digit run inside an
// arbitrary string, and an Enumerated function that cycles through a fixed
// ordered list of values.
package partfn

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/indaco/vbump/internal/apperrors"
)

// Func is a bump function: given the part's current string value, it
// returns the next value or an error.
type Func interface {
	// Bump returns the value that follows value.
	Bump(value string) (string, error)

	// FirstValue is the reset target used when an earlier-ordered part is
	// bumped.
	FirstValue() string

	// OptionalValue is the value that, when present, may be elided from a
	// shorter serialization template.
	OptionalValue() string

	// Independent reports whether this part is exempt from being reset as
	// a side effect of bumping another part.
	Independent() bool
}

// firstNumeric isolates the first maximal digit run in a string, along
// with its unchanged prefix and suffix.
var firstNumeric = regexp.MustCompile(`([^\d]*)(\d+)(.*)`)

// Numeric increments the first contiguous digit run inside its value,
// preserving any surrounding non-digit prefix/suffix (so "r3-001" becomes
// "r4-001").
type Numeric struct {
	firstValue    string
	optionalValue string
	independent   bool
}

// NewNumeric constructs a Numeric bump function. firstValue defaults to
// "0" when empty; it is a configuration error for a non-empty firstValue
// to contain no digit.
func NewNumeric(firstValue string, independent bool) (*Numeric, error) {
	if firstValue == "" {
		firstValue = "0"
	} else if !firstNumeric.MatchString(firstValue) {
		return nil, fmt.Errorf("the given first value %q does not contain any digit", firstValue)
	}
	return &Numeric{firstValue: firstValue, optionalValue: firstValue, independent: independent}, nil
}

func (n *Numeric) FirstValue() string    { return n.firstValue }
func (n *Numeric) OptionalValue() string { return n.optionalValue }
func (n *Numeric) Independent() bool     { return n.independent }

// Bump increments the first digit run in value.
func (n *Numeric) Bump(value string) (string, error) {
	m := firstNumeric.FindStringSubmatch(value)
	if m == nil {
		return "", fmt.Errorf("value %q contains no digit to bump", value)
	}
	prefix, numeric, suffix := m[1], m[2], m[3]
	num, err := strconv.Atoi(numeric)
	if err != nil {
		return "", fmt.Errorf("value %q has an unparsable numeric segment: %w", value, err)
	}
	return fmt.Sprintf("%s%d%s", prefix, num+1, suffix), nil
}

// Enumerated cycles through an ordered, non-empty list of string values.
// Bumping the last element fails with a terminal-value error.
type Enumerated struct {
	values        []string
	firstValue    string
	optionalValue string
	independent   bool
}

// NewEnumerated constructs an Enumerated bump function. firstValue and
// optionalValue default to the first list element when empty; both must be
// members of values.
func NewEnumerated(values []string, firstValue, optionalValue string, independent bool) (*Enumerated, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("version part values cannot be empty")
	}
	if optionalValue == "" {
		optionalValue = values[0]
	}
	if !contains(values, optionalValue) {
		return nil, fmt.Errorf("optional value %q must be included in values %v", optionalValue, values)
	}
	if firstValue == "" {
		firstValue = values[0]
	}
	if !contains(values, firstValue) {
		return nil, fmt.Errorf("first value %q must be included in values %v", firstValue, values)
	}
	return &Enumerated{
		values:        values,
		firstValue:    firstValue,
		optionalValue: optionalValue,
		independent:   independent,
	}, nil
}

func (e *Enumerated) FirstValue() string    { return e.firstValue }
func (e *Enumerated) OptionalValue() string { return e.optionalValue }
func (e *Enumerated) Independent() bool     { return e.independent }

// Bump returns the element following value in the configured list.
func (e *Enumerated) Bump(value string) (string, error) {
	idx := indexOf(e.values, value)
	if idx < 0 || idx+1 >= len(e.values) {
		return "", &apperrors.TerminalValueError{Values: e.values}
	}
	return e.values[idx+1], nil
}

func contains(values []string, v string) bool {
	return indexOf(values, v) >= 0
}

func indexOf(values []string, v string) int {
	for i, x := range values {
		if x == v {
			return i
		}
	}
	return -1
}
