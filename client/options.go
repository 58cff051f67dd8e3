package client

import (
	"maps"
	"net/http"
	"strings"
)

// Option configures the Client.
type Option func(*Client)

// WithBaseURL sets the URL prefix prepended to every request path,
// e.g. "https://app.example.com". A trailing slash is stripped.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithHTTPClient replaces the underlying HTTP client. Supply one with a
// cookie jar to enable cookie-based CSRF token sourcing, or with a timeout
// to bound fetches.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithLocaleEndpoint overrides the locale-change endpoint path.
// Default: /lingua/locale.
func WithLocaleEndpoint(endpoint string) Option {
	return func(c *Client) {
		if endpoint != "" {
			c.localeEndpoint = endpoint
		}
	}
}

// WithCSRFToken sets an explicit anti-forgery token. It takes precedence
// over the provider and the cookie.
func WithCSRFToken(token string) Option {
	return func(c *Client) {
		c.csrfToken = token
	}
}

// WithCSRFProvider sets a function consulted for the anti-forgery token on
// each mutating request, for applications that rotate tokens.
func WithCSRFProvider(fn func() string) Option {
	return func(c *Client) {
		c.csrfProvider = fn
	}
}

// WithCSRFCookie sets the cookie name the token is read from when neither an
// explicit token nor a provider is configured. The HTTP client needs a
// cookie jar for this to take effect. Default: XSRF-TOKEN.
func WithCSRFCookie(name string) Option {
	return func(c *Client) {
		c.csrfCookie = name
	}
}

// WithHeaders merges extra headers into every request.
func WithHeaders(headers map[string]string) Option {
	return func(c *Client) {
		if len(headers) == 0 {
			return
		}
		if c.headers == nil {
			c.headers = make(map[string]string, len(headers))
		}
		maps.Copy(c.headers, headers)
	}
}
