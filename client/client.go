package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	lingua "github.com/tooinfinity/lingua-go"
)

// Lingua wire protocol paths. The server defines these; they must be matched
// exactly for compatibility.
const (
	translationsPath      = "/lingua/translations"
	groupsPath            = "/lingua/groups"
	defaultLocaleEndpoint = "/lingua/locale"
)

// Request header names used by the protocol.
const (
	headerCSRFToken     = "X-CSRF-TOKEN"
	headerXSRFToken     = "X-XSRF-TOKEN"
	headerRequestedWith = "X-Requested-With"
	headerRequestID     = "X-Request-ID"
)

// defaultCSRFCookie is the cookie the anti-forgery token falls back to when
// no explicit token or provider is configured.
const defaultCSRFCookie = "XSRF-TOKEN"

// Client is a stateless fetch client for the Lingua wire protocol. It wraps
// request construction, anti-forgery token sourcing, and response decoding;
// it performs no caching or deduplication; that is the store's job.
//
// Client satisfies lingua.Fetcher and is safe for concurrent use.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	localeEndpoint string
	csrfToken      string
	csrfProvider   func() string
	csrfCookie     string
	headers        map[string]string
}

// New creates a Client. Without WithBaseURL the client issues same-origin
// style paths, which only work behind a proxy-aware http.Client; most
// callers set a base URL.
func New(opts ...Option) *Client {
	c := &Client{
		httpClient:     http.DefaultClient,
		localeEndpoint: defaultLocaleEndpoint,
		csrfCookie:     defaultCSRFCookie,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchGroup retrieves a single translation group.
func (c *Client) FetchGroup(ctx context.Context, group string) (lingua.GroupResult, error) {
	if group == "" {
		return lingua.GroupResult{}, lingua.ErrEmptyGroup
	}

	var result lingua.GroupResult
	err := c.get(ctx, translationsPath+"/"+url.PathEscape(group), &result)
	return result, err
}

// FetchGroups retrieves a batch of translation groups in a single request.
// Empty and duplicate names are dropped; when nothing remains, an empty
// result is returned without touching the network.
func (c *Client) FetchGroups(ctx context.Context, groups []string) (lingua.GroupsResult, error) {
	names := dedup(groups)
	if len(names) == 0 {
		return lingua.GroupsResult{Translations: map[string]lingua.Table{}}, nil
	}

	body := struct {
		Groups []string `json:"groups"`
	}{Groups: names}

	var result lingua.GroupsResult
	err := c.post(ctx, translationsPath, body, &result)
	if err != nil {
		return lingua.GroupsResult{}, err
	}
	if result.Translations == nil {
		result.Translations = map[string]lingua.Table{}
	}
	return result, nil
}

// AvailableGroups lists the translation groups the server can deliver for
// the active locale.
func (c *Client) AvailableGroups(ctx context.Context) (lingua.GroupsList, error) {
	var result lingua.GroupsList
	err := c.get(ctx, groupsPath, &result)
	return result, err
}

// SetLocale asks the server to switch the session's active locale. The
// endpoint defaults to /lingua/locale and is configurable via
// WithLocaleEndpoint.
func (c *Client) SetLocale(ctx context.Context, locale string) error {
	if locale == "" {
		return lingua.ErrEmptyLocale
	}

	body := struct {
		Locale string `json:"locale"`
	}{Locale: locale}

	return c.post(ctx, c.localeEndpoint, body, nil)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("lingua: building request: %w", err)
	}
	c.decorate(req, false)
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("lingua: encoding request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("lingua: building request: %w", err)
	}
	c.decorate(req, true)
	return c.do(req, out)
}

// decorate applies the protocol headers. Mutating requests carry the
// anti-forgery token under both the legacy and the cookie-based header name;
// reads omit it.
func (c *Client) decorate(req *http.Request, mutating bool) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set(headerRequestedWith, "XMLHttpRequest")
	req.Header.Set(headerRequestID, uuid.NewString())

	for name, value := range c.headers {
		req.Header.Set(name, value)
	}

	if !mutating {
		return
	}

	req.Header.Set("Content-Type", "application/json")
	if token := c.csrf(req.URL); token != "" {
		req.Header.Set(headerCSRFToken, token)
		req.Header.Set(headerXSRFToken, token)
	}
}

// csrf resolves the anti-forgery token: explicit token > provider > cookie.
func (c *Client) csrf(u *url.URL) string {
	if c.csrfToken != "" {
		return c.csrfToken
	}
	if c.csrfProvider != nil {
		if token := c.csrfProvider(); token != "" {
			return token
		}
	}
	if c.httpClient.Jar != nil && c.csrfCookie != "" {
		for _, cookie := range c.httpClient.Jar.Cookies(u) {
			if cookie.Name == c.csrfCookie {
				return cookie.Value
			}
		}
	}
	return ""
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("lingua: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newRequestError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("lingua: decoding response: %w", err)
	}
	return nil
}

func dedup(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

var _ lingua.Fetcher = (*Client)(nil)
