package linguatest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"slices"
	"sync"

	"github.com/go-chi/chi/v5"

	lingua "github.com/tooinfinity/lingua-go"
)

// Server is an in-process Lingua server backed by in-memory fixture data.
// It implements the full wire protocol and counts requests per group and per
// endpoint, so tests can assert on deduplication and batching behavior.
type Server struct {
	srv *httptest.Server

	mu          sync.Mutex
	locale      string
	data        map[string]map[string]lingua.Table // locale -> group -> table
	groupHits   map[string]int
	batchCalls  int
	singleCalls int
	failStatus  int
	failMessage string
	lastHeader  http.Header
}

// Option configures the test server.
type Option func(*Server)

// WithLocale sets the initial active locale. Default: "en".
func WithLocale(locale string) Option {
	return func(s *Server) {
		s.locale = locale
	}
}

// WithGroup registers fixture data for one group under a locale.
func WithGroup(locale, group string, table lingua.Table) Option {
	return func(s *Server) {
		if s.data[locale] == nil {
			s.data[locale] = make(map[string]lingua.Table)
		}
		s.data[locale][group] = table
	}
}

// New starts a test server. Callers must Close it.
func New(opts ...Option) *Server {
	s := &Server{
		locale:    "en",
		data:      make(map[string]map[string]lingua.Table),
		groupHits: make(map[string]int),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Get("/lingua/translations/{group}", s.handleGroup)
	r.Post("/lingua/translations", s.handleGroups)
	r.Get("/lingua/groups", s.handleList)
	r.Post("/lingua/locale", s.handleLocale)

	s.srv = httptest.NewServer(r)
	return s
}

// URL returns the server's base URL for client.WithBaseURL.
func (s *Server) URL() string {
	return s.srv.URL
}

// Close shuts the server down.
func (s *Server) Close() {
	s.srv.Close()
}

// FailWith makes every subsequent request fail with the given status and
// JSON message body. A zero status restores normal behavior.
func (s *Server) FailWith(status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failStatus = status
	s.failMessage = message
}

// GroupRequests reports how many times the named group was requested,
// counting both single and batched fetches.
func (s *Server) GroupRequests(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.groupHits[name]
}

// SingleRequests reports how many single-group fetch requests were received.
func (s *Server) SingleRequests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.singleCalls
}

// BatchRequests reports how many batched fetch requests were received.
func (s *Server) BatchRequests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.batchCalls
}

// Locale returns the server's active locale, reflecting locale changes
// received over the wire.
func (s *Server) Locale() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locale
}

// LastHeader returns the headers of the most recent request, for asserting
// protocol markers and CSRF tokens.
func (s *Server) LastHeader() http.Header {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastHeader
}

// fail consumes the configured failure, if any. Caller must hold the mutex.
func (s *Server) failing(w http.ResponseWriter) bool {
	if s.failStatus == 0 {
		return false
	}
	writeJSON(w, s.failStatus, map[string]string{"message": s.failMessage})
	return true
}

func (s *Server) handleGroup(w http.ResponseWriter, r *http.Request) {
	group := chi.URLParam(r, "group")

	s.mu.Lock()
	s.lastHeader = r.Header.Clone()
	s.singleCalls++
	s.groupHits[group]++
	if s.failing(w) {
		s.mu.Unlock()
		return
	}
	locale := s.locale
	table := s.data[locale][group]
	s.mu.Unlock()

	if table == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "group not found"})
		return
	}

	writeJSON(w, http.StatusOK, lingua.GroupResult{
		Group:        group,
		Locale:       locale,
		Translations: table,
	})
}

func (s *Server) handleGroups(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Groups []string `json:"groups"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid request body"})
		return
	}

	s.mu.Lock()
	s.lastHeader = r.Header.Clone()
	s.batchCalls++
	for _, name := range body.Groups {
		s.groupHits[name]++
	}
	if s.failing(w) {
		s.mu.Unlock()
		return
	}
	locale := s.locale
	translations := make(map[string]lingua.Table, len(body.Groups))
	for _, name := range body.Groups {
		if table, ok := s.data[locale][name]; ok {
			translations[name] = table
		}
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, lingua.GroupsResult{
		Locale:       locale,
		Translations: translations,
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.lastHeader = r.Header.Clone()
	if s.failing(w) {
		s.mu.Unlock()
		return
	}
	locale := s.locale
	groups := make([]string, 0, len(s.data[locale]))
	for name := range s.data[locale] {
		groups = append(groups, name)
	}
	s.mu.Unlock()

	slices.Sort(groups)
	writeJSON(w, http.StatusOK, lingua.GroupsList{Locale: locale, Groups: groups})
}

func (s *Server) handleLocale(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Locale string `json:"locale"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Locale == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid locale"})
		return
	}

	s.mu.Lock()
	s.lastHeader = r.Header.Clone()
	if s.failing(w) {
		s.mu.Unlock()
		return
	}
	s.locale = body.Locale
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]string{"locale": body.Locale})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
