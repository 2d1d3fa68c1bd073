package normalization

import (
	"encoding/json"
	"fmt"
	"strings"
)

// NormalizeGenres coerces whatever shape the genres field arrives in into an
// ordered list of genre strings. Catalog rows imported from third-party dumps
// carry genres as a native JSON array, as a JSON array re-encoded into a
// string, or as a bare scalar; none of these may fail.
//
// Policy:
//   - list: element-wise stringified, order kept
//   - string: JSON-decoded when it parses to a list, otherwise the whole
//     string is a single genre
//   - any other scalar: its textual form as a single genre
//   - nil: empty list
func NormalizeGenres(value interface{}) []string {
	switch v := value.(type) {
	case nil:
		return []string{}
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, stringify(item))
		}
		return out
	case string:
		return normalizeGenreString(v)
	case []byte:
		return normalizeGenreString(string(v))
	default:
		return []string{stringify(v)}
	}
}

func normalizeGenreString(s string) []string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return []string{}
	}
	var decoded []interface{}
	if err := json.Unmarshal([]byte(trimmed), &decoded); err == nil {
		out := make([]string, 0, len(decoded))
		for _, item := range decoded {
			out = append(out, stringify(item))
		}
		return out
	}
	return []string{s}
}

func stringify(v interface{}) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
