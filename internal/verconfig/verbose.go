package verconfig

import "strings"

// stripVerbose rewrites a Python re.VERBOSE-style pattern into an ordinary
// regexp pattern: unescaped whitespace is dropped and an unescaped '#'
// starts a comment running to end of line, except inside a character class
// or immediately after a backslash. Go's regexp/syntax has no (?x) flag, so
// the translation happens before compilation (spec.md §3: "a compiled
// regex (verbose mode, supporting # comments and whitespace)").
func stripVerbose(pattern string) string {
	var out strings.Builder
	inClass := false
	escaped := false

	for i := 0; i < len(pattern); i++ {
		c := pattern[i]

		if escaped {
			out.WriteByte(c)
			escaped = false
			continue
		}

		switch c {
		case '\\':
			out.WriteByte(c)
			escaped = true
		case '[':
			inClass = true
			out.WriteByte(c)
		case ']':
			inClass = false
			out.WriteByte(c)
		case '#':
			if inClass {
				out.WriteByte(c)
				continue
			}
			for i < len(pattern) && pattern[i] != '\n' {
				i++
			}
		case ' ', '\t', '\n', '\r':
			if inClass {
				out.WriteByte(c)
			}
		default:
			out.WriteByte(c)
		}
	}

	return out.String()
}
