// internal/upstream/upstreamtest/fake.go
//
// In-process stand-in for the backend API, for handler and app tests.
//
// Context
// -------
// Routes are keyed "METHOD /path".  Unknown routes answer 200 with no body.
// Every call is recorded with its decoded JSON body so tests can assert
// both what was sent and what was never sent.
package upstreamtest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanizio/todogate/internal/upstream"
)

// Server is a recording fake backend.
type Server struct {
	*httptest.Server

	mu     sync.Mutex
	calls  []string
	bodies map[string]map[string]any
	routes map[string]http.HandlerFunc
}

// New starts a fake and closes it when t ends.
func New(t testing.TB, routes map[string]http.HandlerFunc) *Server {
	t.Helper()
	s := &Server{
		bodies: map[string]map[string]any{},
		routes: map[string]http.HandlerFunc{},
	}
	for k, h := range routes {
		s.routes[k] = h
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

// API returns a client pointed at the fake.
func (s *Server) API(t testing.TB) *upstream.Client {
	t.Helper()
	c, err := upstream.NewWithHTTPClient(s.URL, s.Client())
	require.NoError(t, err)
	return c
}

// Handle sets or replaces one route.
func (s *Server) Handle(key string, h http.HandlerFunc) {
	s.mu.Lock()
	s.routes[key] = h
	s.mu.Unlock()
}

// Calls lists "METHOD /path" for every request so far.
func (s *Server) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

// Called reports whether key was requested at least once.
func (s *Server) Called(key string) bool {
	for _, c := range s.Calls() {
		if c == key {
			return true
		}
	}
	return false
}

// Body returns the last JSON body sent to key.
func (s *Server) Body(key string) map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bodies[key]
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + r.URL.Path
	var body map[string]any
	_ = json.NewDecoder(r.Body).Decode(&body)

	s.mu.Lock()
	s.calls = append(s.calls, key)
	s.bodies[key] = body
	h := s.routes[key]
	s.mu.Unlock()

	if h == nil {
		w.WriteHeader(http.StatusOK)
		return
	}
	h(w, r)
}

/* ---------- canned handlers ---------- */

// Status answers code with no body.
func Status(code int) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(code) }
}

// JSON answers 200 with v encoded.
func JSON(v any) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(v)
	}
}

// IssueSession answers a login with a sid cookie carrying value.
func IssueSession(value string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: upstream.SessionCookie, Value: value, Path: "/", HttpOnly: true})
		w.WriteHeader(http.StatusOK)
	}
}

// Accounts answers /api/me from a token table; unknown tokens get 401.
func Accounts(byToken map[string]upstream.Identity) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ck, err := r.Cookie(upstream.SessionCookie)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		id, ok := byToken[ck.Value]
		if !ok {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		JSON(id)(w, r)
	}
}

// Bool returns a pointer to b, for Identity.EmailVerified.
func Bool(b bool) *bool { return &b }
