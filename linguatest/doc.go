// Package linguatest provides an in-process Lingua server for tests.
//
// The server speaks the full wire protocol over httptest, serves fixture
// translation tables per locale, and records request counts so tests can
// assert that the store's deduplication actually prevented duplicate
// fetches:
//
//	srv := linguatest.New(
//		linguatest.WithGroup("en", "dashboard", lingua.Table{"title": "Dashboard"}),
//	)
//	defer srv.Close()
//
//	c := client.New(client.WithBaseURL(srv.URL()))
//	// ... exercise the store ...
//	require.Equal(t, 1, srv.GroupRequests("dashboard"))
//
// FailWith switches the server into an error mode for exercising retry
// paths, and LastHeader exposes the most recent request's headers for
// CSRF and protocol-marker assertions.
package linguatest
