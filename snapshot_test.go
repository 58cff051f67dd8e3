package lingua_test

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"

	lingua "github.com/tooinfinity/lingua-go"
)

func TestParseSnapshot(t *testing.T) {
	t.Parallel()

	t.Run("decodes full payload", func(t *testing.T) {
		t.Parallel()
		payload := []byte(`{
			"locale": "ar",
			"locales": ["en", "ar"],
			"direction": "rtl",
			"is_rtl": true,
			"translations": {"messages": {"hello": "مرحبا"}}
		}`)

		snapshot, err := lingua.ParseSnapshot(payload)
		require.NoError(t, err)
		require.Equal(t, "ar", snapshot.Locale)
		require.Equal(t, []string{"en", "ar"}, snapshot.Locales)
		require.Equal(t, lingua.DirectionRTL, snapshot.Direction)
		require.True(t, snapshot.IsRTL)
		require.Equal(t, []string{"messages"}, snapshot.Groups())
	})

	t.Run("derives direction from is_rtl", func(t *testing.T) {
		t.Parallel()
		snapshot, err := lingua.ParseSnapshot([]byte(`{"locale": "ar", "is_rtl": true}`))
		require.NoError(t, err)
		require.Equal(t, lingua.DirectionRTL, snapshot.Direction)

		snapshot, err = lingua.ParseSnapshot([]byte(`{"locale": "en"}`))
		require.NoError(t, err)
		require.Equal(t, lingua.DirectionLTR, snapshot.Direction)
	})

	t.Run("keeps mismatched direction as-is", func(t *testing.T) {
		t.Parallel()
		snapshot, err := lingua.ParseSnapshot([]byte(`{"locale": "en", "direction": "rtl", "is_rtl": false}`))
		require.NoError(t, err)
		require.Equal(t, lingua.DirectionRTL, snapshot.Direction)
		require.False(t, snapshot.IsRTL)
	})

	t.Run("rejects missing locale", func(t *testing.T) {
		t.Parallel()
		_, err := lingua.ParseSnapshot([]byte(`{"translations": {}}`))
		require.ErrorIs(t, err, lingua.ErrInvalidSnapshot)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		t.Parallel()
		_, err := lingua.ParseSnapshot([]byte(`{`))
		require.ErrorIs(t, err, lingua.ErrInvalidSnapshot)
	})
}

func TestParseSnapshotYAML(t *testing.T) {
	t.Parallel()

	t.Run("decodes YAML payload", func(t *testing.T) {
		t.Parallel()
		payload := []byte(`
locale: de
locales: [en, de]
translations:
  messages:
    hello: Hallo :name
`)
		snapshot, err := lingua.ParseSnapshotYAML(payload)
		require.NoError(t, err)
		require.Equal(t, "de", snapshot.Locale)
		require.Equal(t, lingua.DirectionLTR, snapshot.Direction)
		require.Equal(t, "Hallo Welt", lingua.Resolve(snapshot.Translations, "messages.hello", lingua.M{"name": "Welt"}))
	})

	t.Run("rejects missing locale", func(t *testing.T) {
		t.Parallel()
		_, err := lingua.ParseSnapshotYAML([]byte(`locales: [en]`))
		require.ErrorIs(t, err, lingua.ErrInvalidSnapshot)
	})
}

func TestSnapshotFromFS(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"en/messages.json": {Data: []byte(`{"hello": "Hello :name"}`)},
		"en/auth.yaml":     {Data: []byte("failed: Invalid credentials\n")},
		"en/readme.txt":    {Data: []byte("ignored")},
		"de/messages.json": {Data: []byte(`{"hello": "Hallo :name"}`)},
	}

	t.Run("loads groups for a locale", func(t *testing.T) {
		t.Parallel()
		snapshot, err := lingua.SnapshotFromFS(fsys, "en")
		require.NoError(t, err)
		require.Equal(t, "en", snapshot.Locale)
		require.Equal(t, []string{"de", "en"}, snapshot.Locales)
		require.ElementsMatch(t, []string{"messages", "auth"}, snapshot.Groups())
		require.Equal(t, "Hello Ada", lingua.Resolve(snapshot.Translations, "messages.hello", lingua.M{"name": "Ada"}))
		require.Equal(t, "Invalid credentials", lingua.Resolve(snapshot.Translations, "auth.failed"))
	})

	t.Run("fails for unknown locale", func(t *testing.T) {
		t.Parallel()
		_, err := lingua.SnapshotFromFS(fsys, "fr")
		require.ErrorIs(t, err, lingua.ErrInvalidSnapshot)
	})

	t.Run("fails for empty locale", func(t *testing.T) {
		t.Parallel()
		_, err := lingua.SnapshotFromFS(fsys, "")
		require.ErrorIs(t, err, lingua.ErrEmptyLocale)
	})

	t.Run("fails on malformed translation file", func(t *testing.T) {
		t.Parallel()
		bad := fstest.MapFS{
			"en/messages.json": {Data: []byte(`{`)},
		}
		_, err := lingua.SnapshotFromFS(bad, "en")
		require.ErrorIs(t, err, lingua.ErrInvalidFile)
	})
}
