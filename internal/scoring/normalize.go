package scoring

import (
	"fmt"
	"strings"
)

// Normalize is the single point of truth for answer comparison: every
// comparator routes through it, never comparing raw values directly.
// Values are stringified, lowercased, and trimmed; nil normalizes to "".
func Normalize(v any) string {
	if v == nil {
		return ""
	}
	var s string
	switch t := v.(type) {
	case string:
		s = t
	case fmt.Stringer:
		s = t.String()
	default:
		s = fmt.Sprintf("%v", t)
	}
	return strings.ToLower(strings.TrimSpace(s))
}

// normalizeMap canonicalizes a structured (key->value) answer; both keys
// and values go through Normalize.
func normalizeMap(m map[string]any) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[Normalize(k)] = Normalize(v)
	}
	return out
}

// asMap converts the loose shapes a structured answer arrives in.
func asMap(v any) (map[string]any, bool) {
	switch t := v.(type) {
	case map[string]any:
		return t, true
	case map[string]string:
		out := make(map[string]any, len(t))
		for k, s := range t {
			out[k] = s
		}
		return out, true
	default:
		return nil, false
	}
}

// asList converts a raw answer into a list of values; a scalar becomes a
// one-element list.
func asList(v any) []any {
	switch t := v.(type) {
	case []any:
		return t
	case []string:
		out := make([]any, len(t))
		for i, s := range t {
			out[i] = s
		}
		return out
	default:
		return []any{v}
	}
}
