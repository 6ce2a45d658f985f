package relay

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yanizio/todogate/internal/redirect"
	"github.com/yanizio/todogate/internal/session"
	"github.com/yanizio/todogate/internal/site"
	"github.com/yanizio/todogate/internal/upstream"
)

// fakeAPI records every call and answers from a route table.
type fakeAPI struct {
	mu     sync.Mutex
	calls  []string
	bodies map[string]map[string]string
	routes map[string]http.HandlerFunc
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	key := r.Method + " " + r.URL.Path
	var body map[string]string
	_ = json.NewDecoder(r.Body).Decode(&body)

	f.mu.Lock()
	f.calls = append(f.calls, key)
	if f.bodies == nil {
		f.bodies = map[string]map[string]string{}
	}
	f.bodies[key] = body
	h := f.routes[key]
	f.mu.Unlock()

	if h == nil {
		w.WriteHeader(http.StatusOK)
		return
	}
	h(w, r)
}

func (f *fakeAPI) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeAPI) Body(key string) map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bodies[key]
}

func newRelay(t *testing.T, kind site.Kind, routes map[string]http.HandlerFunc) (*Relay, *fakeAPI) {
	t.Helper()
	api := &fakeAPI{routes: routes}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	c, err := upstream.NewWithHTTPClient(srv.URL, srv.Client())
	require.NoError(t, err)
	p, err := site.For(kind, "")
	require.NoError(t, err)
	return New(c, p, redirect.New("localhost:3001")), api
}

func cookie(o Outcome, name string) *http.Cookie {
	for _, c := range o.Cookies {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func issueSid(value string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "sid", Value: value, Path: "/", HttpOnly: true})
		w.WriteHeader(http.StatusOK)
	}
}

func me(isAdmin bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ck, err := r.Cookie("sid"); err != nil || ck.Value == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": 1, "username": "u", "is_admin": isAdmin, "must_change_password": false,
		})
	}
}

func status(code int) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(code) }
}

func TestOutcomeTarget(t *testing.T) {
	assert.Equal(t, "/", to("/").Target())
	assert.Equal(t, "/account?err=pw_mismatch", PasswordMismatch().Target())
}

func TestRespondWrites303WithCookies(t *testing.T) {
	rl, _ := newRelay(t, site.Consumer, nil)
	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	req.Host = "todo.example.com"
	req.Header.Set("X-Forwarded-Proto", "https")
	rr := httptest.NewRecorder()

	rl.Respond(rr, req, Outcome{Path: "/account", Query: map[string][]string{"err": {"x"}}, Cookies: []*http.Cookie{session.Clear()}})

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "https://todo.example.com/account?err=x", rr.Header().Get("Location"))
	assert.Contains(t, rr.Header().Get("Set-Cookie"), "sid=;")
	assert.Zero(t, rr.Body.Len())
}

func TestParseID(t *testing.T) {
	for _, bad := range []string{"", "0", "-1", "1e3", "abc", "9999999999999999999999"} {
		_, ok := parseID(bad)
		assert.False(t, ok, bad)
	}
	id, ok := parseID("42")
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)
}
