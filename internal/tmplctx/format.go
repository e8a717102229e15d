package tmplctx

import (
	"fmt"
	"strings"
	"time"

	"github.com/indaco/vbump/internal/apperrors"
	"github.com/indaco/vbump/internal/verpart"
)

// field is one parsed {name} or {name:spec} placeholder occurrence.
type field struct {
	name string
	spec string
}

// parseFields walks tmpl and returns every placeholder field in order,
// honoring "{{" and "}}" as escaped literal braces the way Python's
// str.Formatter does.
func parseFields(tmpl string) []field {
	var fields []field
	i := 0
	for i < len(tmpl) {
		switch tmpl[i] {
		case '{':
			if i+1 < len(tmpl) && tmpl[i+1] == '{' {
				i += 2
				continue
			}
			end := strings.IndexByte(tmpl[i:], '}')
			if end < 0 {
				i++
				continue
			}
			inner := tmpl[i+1 : i+end]
			i += end + 1
			name, spec, _ := strings.Cut(inner, ":")
			fields = append(fields, field{name: name, spec: spec})
		case '}':
			if i+1 < len(tmpl) && tmpl[i+1] == '}' {
				i += 2
				continue
			}
			i++
		default:
			i++
		}
	}
	return fields
}

// FieldNames returns the distinct placeholder names used in tmpl, in the
// order they first appear. Format specs (the part after ':') are ignored.
func FieldNames(tmpl string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, f := range parseFields(tmpl) {
		if !seen[f.name] {
			seen[f.name] = true
			names = append(names, f.name)
		}
	}
	return names
}

// Expand renders tmpl against ctx, Python str.format()-style: "{name}" and
// "{name:spec}" placeholders are replaced with the context value for name,
// formatted per spec when the value is a time.Time. "{{" and "}}" render
// as literal braces. A name absent from ctx is a fatal missing-value error.
func Expand(tmpl string, ctx Context) (string, error) {
	var out strings.Builder
	i := 0
	for i < len(tmpl) {
		switch tmpl[i] {
		case '{':
			if i+1 < len(tmpl) && tmpl[i+1] == '{' {
				out.WriteByte('{')
				i += 2
				continue
			}
			end := strings.IndexByte(tmpl[i:], '}')
			if end < 0 {
				out.WriteByte(tmpl[i])
				i++
				continue
			}
			inner := tmpl[i+1 : i+end]
			i += end + 1
			name, spec, _ := strings.Cut(inner, ":")
			rendered, err := renderField(name, spec, ctx)
			if err != nil {
				return "", err
			}
			out.WriteString(rendered)
		case '}':
			if i+1 < len(tmpl) && tmpl[i+1] == '}' {
				out.WriteByte('}')
				i += 2
				continue
			}
			out.WriteByte('}')
			i++
		default:
			out.WriteByte(tmpl[i])
			i++
		}
	}
	return out.String(), nil
}

func renderField(name, spec string, ctx Context) (string, error) {
	val, ok := ctx[name]
	if !ok {
		return "", &apperrors.MissingValueError{Key: name}
	}
	switch v := val.(type) {
	case verpart.PartValue:
		return v.Value(), nil
	case string:
		return v, nil
	case time.Time:
		return strftime(v, spec), nil
	case fmt.Stringer:
		return v.String(), nil
	default:
		return fmt.Sprintf("%v", v), nil
	}
}

// strftimeCodes maps the strftime-style directives this tool honors in
// "{now:%Y-%m-%d}"-style format specs to Go's reference-time layout tokens.
var strftimeCodes = map[byte]string{
	'Y': "2006",
	'y': "06",
	'm': "01",
	'd': "02",
	'H': "15",
	'M': "04",
	'S': "05",
	'b': "Jan",
	'B': "January",
	'a': "Mon",
	'A': "Monday",
	'Z': "MST",
	'p': "PM",
}

func strftime(t time.Time, spec string) string {
	if spec == "" {
		return t.Format("2006-01-02 15:04:05")
	}
	var layout strings.Builder
	for i := 0; i < len(spec); i++ {
		if spec[i] == '%' && i+1 < len(spec) {
			if spec[i+1] == '%' {
				layout.WriteByte('%')
				i++
				continue
			}
			if tok, ok := strftimeCodes[spec[i+1]]; ok {
				layout.WriteString(tok)
				i++
				continue
			}
		}
		layout.WriteByte(spec[i])
	}
	return t.Format(layout.String())
}
