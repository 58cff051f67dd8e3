// Package lingua is a Go client for Lingua translation servers: it binds
// translation lookups to a locally held table and lazily loads additional
// translation groups on demand.
//
// The host application delivers an initial snapshot (locale, available
// locales, text direction, and a first slice of the translation table); the
// store serves lookups from it and fetches further groups from the server
// only when a consumer declares it needs them.
//
// # Store
//
// Store is the heart of the package. It owns the merged translation table
// and the group-loading state, deduplicates concurrent requests for the
// same group, batches distinct groups into single requests, and resets to
// the initial snapshot when the active locale changes:
//
//	snapshot, err := lingua.ParseSnapshot(payload)
//	if err != nil { ... }
//
//	store, err := lingua.New(snapshot, client.New(
//		client.WithBaseURL("https://app.example.com"),
//	))
//	if err != nil { ... }
//
//	if err := store.LoadGroups(ctx, "dashboard", "auth"); err != nil { ... }
//
//	store.T("dashboard.title")
//	store.T("auth.greeting", lingua.M{"name": "Ada"})
//
// Concurrent LoadGroups calls for overlapping group sets are joined onto
// the in-flight fetch instead of duplicating it; a group is requested at
// most once until it settles. Failed groups stay unloaded so a later call
// retries them.
//
// # Lookups
//
// Resolve walks dot-segmented keys through the nested table and substitutes
// :name placeholders. A key that does not resolve to a string is returned
// unchanged, so missing translations degrade to visible raw keys, never
// errors.
//
// # Watches
//
// Watch is the declarative consumption surface: declare the groups a
// component needs and the store keeps them loaded, re-fetching after every
// locale change:
//
//	w := store.Watch(ctx, []string{"dashboard"},
//		lingua.WithOnError(func(err error) { log.Error("translations", "err", err) }),
//	)
//	defer w.Close()
//
// Load failures surface through w.Err and the callback; they never panic
// across the watch boundary.
//
// # Locale changes
//
// store.SetLocale resets the table and loaded set to the initial snapshot
// and detaches in-flight fetches: their results are discarded when they
// land, guarded by an internal generation counter, so a slow response for
// the previous locale can never corrupt the new one. Server-side locale
// switching is a separate concern; see client.SetLocale.
//
// # Subpackages
//
//   - client: HTTP fetch client for the Lingua wire protocol
//   - groupcache: optional Memory/Redis caches for fetched groups
//   - logger: slog-based logging helpers with locale context extraction
//   - linguatest: in-process Lingua server for tests
package lingua
