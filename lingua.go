package lingua

// Table is a nested translation tree. Top-level keys are group names; values
// are either string leaves or further nested maps of arbitrary depth. Shapes
// are never validated against a schema; any JSON-serializable value is
// accepted, and non-string leaves simply never resolve.
type Table map[string]any

// M holds placeholder replacements for translation lookups.
type M map[string]any

// Direction is the text direction of a locale.
type Direction string

const (
	DirectionLTR Direction = "ltr"
	DirectionRTL Direction = "rtl"
)

// Snapshot is the initial translation payload delivered by the host
// application at startup (typically embedded in the page by the server).
// Direction and IsRTL are informational and are not validated against each
// other.
type Snapshot struct {
	Locale       string    `json:"locale" yaml:"locale"`
	Locales      []string  `json:"locales" yaml:"locales"`
	Direction    Direction `json:"direction" yaml:"direction"`
	IsRTL        bool      `json:"is_rtl" yaml:"is_rtl"`
	Translations Table     `json:"translations" yaml:"translations"`
}

// Groups returns the group names present in the snapshot's table.
func (s Snapshot) Groups() []string {
	groups := make([]string, 0, len(s.Translations))
	for name := range s.Translations {
		groups = append(groups, name)
	}
	return groups
}

// normalize fills in defaults that the host payload may omit.
func (s *Snapshot) normalize() {
	if s.Direction == "" {
		if s.IsRTL {
			s.Direction = DirectionRTL
		} else {
			s.Direction = DirectionLTR
		}
	}
	if s.Translations == nil {
		s.Translations = Table{}
	}
}

// GroupsResult is the payload of a batched translation-group fetch.
type GroupsResult struct {
	Locale       string           `json:"locale"`
	Translations map[string]Table `json:"translations"`
}

// GroupResult is the payload of a single translation-group fetch.
type GroupResult struct {
	Group        string `json:"group"`
	Locale       string `json:"locale"`
	Translations Table  `json:"translations"`
}

// GroupsList is the payload of an available-groups listing.
type GroupsList struct {
	Locale string   `json:"locale"`
	Groups []string `json:"groups"`
}

// copyTable returns a deep copy of a translation tree. Leaf values are
// shared; only the map structure is duplicated, which is enough to isolate
// the copy from later group replacements.
func copyTable(src Table) Table {
	dst := make(Table, len(src))
	for key, value := range src {
		dst[key] = copyValue(value)
	}
	return dst
}

func copyValue(v any) any {
	switch m := v.(type) {
	case Table:
		return map[string]any(copyTable(m))
	case map[string]any:
		return map[string]any(copyTable(m))
	default:
		return v
	}
}
