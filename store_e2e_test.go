package lingua_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	lingua "github.com/tooinfinity/lingua-go"
	"github.com/tooinfinity/lingua-go/client"
	"github.com/tooinfinity/lingua-go/linguatest"
)

// End-to-end coverage over the real wire protocol: store + client against an
// in-process Lingua server.
func TestStore_EndToEnd(t *testing.T) {
	t.Parallel()

	srv := linguatest.New(
		linguatest.WithGroup("en", "dashboard", lingua.Table{"title": "Dashboard"}),
		linguatest.WithGroup("en", "auth", lingua.Table{"greeting": "Hello :name"}),
		linguatest.WithGroup("fr", "dashboard", lingua.Table{"title": "Tableau de bord"}),
	)
	defer srv.Close()

	fetcher := client.New(client.WithBaseURL(srv.URL()))

	store, err := lingua.New(lingua.Snapshot{
		Locale:       "en",
		Locales:      []string{"en", "fr"},
		Translations: lingua.Table{"messages": map[string]any{"welcome": "Welcome"}},
	}, fetcher)
	require.NoError(t, err)

	ctx := context.Background()

	require.NoError(t, store.LoadGroups(ctx, "dashboard", "auth"))
	require.Equal(t, "Dashboard", store.T("dashboard.title"))
	require.Equal(t, "Hello Ada", store.T("auth.greeting", lingua.M{"name": "Ada"}))
	require.Equal(t, "Welcome", store.T("messages.welcome"))
	require.Equal(t, 1, srv.BatchRequests())

	// Second load is fully satisfied locally.
	require.NoError(t, store.LoadGroups(ctx, "dashboard"))
	require.Equal(t, 1, srv.BatchRequests())

	// Switch the locale on the server, then mirror it in the store.
	require.NoError(t, fetcher.SetLocale(ctx, "fr"))
	require.NoError(t, store.SetLocale("fr"))
	require.Equal(t, "dashboard.title", store.T("dashboard.title"))

	require.NoError(t, store.LoadGroups(ctx, "dashboard"))
	require.Equal(t, "Tableau de bord", store.T("dashboard.title"))
}
