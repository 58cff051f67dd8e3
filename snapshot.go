package lingua

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseSnapshot decodes the JSON payload the host page embeds at startup.
// A missing direction is derived from is_rtl; is_rtl itself is taken as-is.
func ParseSnapshot(data []byte) (Snapshot, error) {
	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %s", ErrInvalidSnapshot, err)
	}
	if snapshot.Locale == "" {
		return Snapshot{}, fmt.Errorf("%w: missing locale", ErrInvalidSnapshot)
	}
	snapshot.normalize()
	return snapshot, nil
}

// ParseSnapshotYAML decodes a snapshot from YAML, for applications that ship
// their initial payload as a config file instead of a server-embedded blob.
func ParseSnapshotYAML(data []byte) (Snapshot, error) {
	var snapshot Snapshot
	if err := yaml.Unmarshal(data, &snapshot); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %s", ErrInvalidSnapshot, err)
	}
	if snapshot.Locale == "" {
		return Snapshot{}, fmt.Errorf("%w: missing locale", ErrInvalidSnapshot)
	}
	snapshot.normalize()
	return snapshot, nil
}

// SnapshotFromFS builds a snapshot for one locale from translation files in
// an fs.FS, typically an embed.FS shipped with the binary. The root must
// contain locale directories; every directory becomes an available locale.
// File convention: {locale}/{group}.json (or .yaml/.yml).
//
// Example structure:
//
//	en/messages.json
//	en/auth.yaml
//	de/messages.json
func SnapshotFromFS(fsys fs.FS, locale string) (Snapshot, error) {
	if locale == "" {
		return Snapshot{}, ErrEmptyLocale
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: %s", ErrInvalidFile, err)
	}

	var locales []string
	for _, entry := range entries {
		if entry.IsDir() {
			locales = append(locales, entry.Name())
		}
	}
	slices.Sort(locales)

	if !slices.Contains(locales, locale) {
		return Snapshot{}, fmt.Errorf("%w: no translations for locale %q", ErrInvalidSnapshot, locale)
	}

	table := Table{}
	files, err := fs.ReadDir(fsys, locale)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: %s", ErrInvalidFile, err)
	}

	for _, file := range files {
		if file.IsDir() {
			continue
		}

		name := file.Name()
		ext := strings.ToLower(path.Ext(name))

		var unmarshal func([]byte, any) error
		switch ext {
		case ".json":
			unmarshal = json.Unmarshal
		case ".yaml", ".yml":
			unmarshal = yaml.Unmarshal
		default:
			continue
		}

		data, err := fs.ReadFile(fsys, path.Join(locale, name))
		if err != nil {
			return Snapshot{}, fmt.Errorf("reading %q: %w", name, err)
		}

		var group map[string]any
		if err := unmarshal(data, &group); err != nil {
			return Snapshot{}, fmt.Errorf("%w: parsing %q: %s", ErrInvalidFile, name, err)
		}

		table[strings.TrimSuffix(name, path.Ext(name))] = group
	}

	snapshot := Snapshot{
		Locale:       locale,
		Locales:      locales,
		Translations: table,
	}
	snapshot.normalize()
	return snapshot, nil
}
