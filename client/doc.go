// Package client implements the HTTP side of the Lingua wire protocol:
// fetching translation groups, listing available groups, and switching the
// server-side locale.
//
// The client is a pure I/O wrapper. It holds no translation state and does
// no caching or request deduplication; pair it with lingua.Store for that.
//
// # Endpoints
//
//	GET  {base}/lingua/translations/{group}   -> {group, locale, translations}
//	POST {base}/lingua/translations           -> {locale, translations: {name: table}}
//	GET  {base}/lingua/groups                 -> {locale, groups: [...]}
//	POST {base}{locale endpoint}              -> locale change (default /lingua/locale)
//
// Every request carries Accept: application/json, an X-Requested-With
// same-origin marker, and a fresh X-Request-ID. Mutating requests add
// Content-Type: application/json and the anti-forgery token under both
// X-CSRF-TOKEN and X-XSRF-TOKEN.
//
// # Usage
//
//	c := client.New(
//		client.WithBaseURL("https://app.example.com"),
//		client.WithCSRFToken(token),
//	)
//
//	result, err := c.FetchGroups(ctx, []string{"dashboard", "auth"})
//	if err != nil {
//		var reqErr *client.RequestError
//		if errors.As(err, &reqErr) {
//			// reqErr.Status, reqErr.Message
//		}
//	}
//
// The anti-forgery token is resolved per request: an explicit WithCSRFToken
// value wins, then a WithCSRFProvider callback, then the configured cookie
// (default XSRF-TOKEN) from the HTTP client's jar. Read-style requests omit
// the token entirely.
package client
