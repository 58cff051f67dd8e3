package lingua

import (
	"fmt"
	"maps"
	"strings"
)

// Resolve looks up a dot-segmented key in a translation tree and applies
// placeholder replacements. The walk descends one segment at a time and
// stops early when it hits a missing entry or a non-map value. When the key
// does not resolve to a string leaf, the key itself is returned unchanged:
// a deliberate silent-miss policy so that untranslated keys degrade to
// visible raw keys instead of errors.
//
// Placeholders use the :name convention:
//
//	Resolve(table, "messages.hello", lingua.M{"name": "World"})
//	// "Hello :name" -> "Hello World"
//
// Replacement is a global verbatim substring substitution with no escaping.
// Known limitation: placeholder names that are prefixes of one another
// (:name vs :name2) substitute in map iteration order, so overlapping names
// produce unspecified results.
func Resolve(table Table, key string, replacements ...M) string {
	if key == "" {
		return key
	}

	var current any = map[string]any(table)
	for segment := range strings.SplitSeq(key, ".") {
		node, ok := asMap(current)
		if !ok {
			return key
		}
		current, ok = node[segment]
		if !ok || current == nil {
			return key
		}
	}

	resolved, ok := current.(string)
	if !ok {
		return key
	}

	return replacePlaceholders(resolved, replacements...)
}

// asMap normalizes the map shapes that JSON and YAML decoding produce.
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Table:
		return m, true
	default:
		return nil, false
	}
}

func replacePlaceholders(template string, replacements ...M) string {
	if len(replacements) == 0 {
		return template
	}

	merged := make(M)
	for _, r := range replacements {
		maps.Copy(merged, r)
	}

	result := template
	for name, value := range merged {
		result = strings.ReplaceAll(result, ":"+name, fmt.Sprintf("%v", value))
	}
	return result
}
