// Package componenttest builds component Deps against a fake backend.
package componenttest

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/yanizio/todogate/internal/component"
	"github.com/yanizio/todogate/internal/gate"
	"github.com/yanizio/todogate/internal/redirect"
	"github.com/yanizio/todogate/internal/relay"
	"github.com/yanizio/todogate/internal/site"
	"github.com/yanizio/todogate/internal/upstream"
	"github.com/yanizio/todogate/internal/upstream/upstreamtest"
	"github.com/yanizio/todogate/internal/view"
)

// Host is the Host header Do sends; redirects resolve against it.
const Host = "site.test"

// NewDeps wires a site of kind against api.
func NewDeps(t testing.TB, kind site.Kind, api *upstreamtest.Server) *component.Deps {
	t.Helper()
	p, err := site.For(kind, "")
	require.NoError(t, err)
	c := api.API(t)
	rs := redirect.New("localhost")
	return &component.Deps{
		Site:     p,
		Client:   c,
		Gate:     gate.New(c, string(kind), p.Policy),
		Relay:    relay.New(c, p, rs),
		View:     view.New(p, view.Options{}),
		Resolver: rs,
		DocsPort: 8001,
	}
}

// Router mounts cs on a fresh chi router.
func Router(cs ...component.Component) http.Handler {
	var reg component.Registry
	for _, c := range cs {
		reg.Register(c)
	}
	r := chi.NewRouter()
	reg.Mount(r)
	return r
}

// Do serves one request with an optional sid.  body is url-encoded form
// data for POSTs.
func Do(h http.Handler, method, target, sid string, form string) *httptest.ResponseRecorder {
	var req *http.Request
	if form != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(form))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.Host = Host
	if sid != "" {
		req.AddCookie(&http.Cookie{Name: upstream.SessionCookie, Value: sid})
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

// SetCookie finds name among rr's Set-Cookie headers.
func SetCookie(rr *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Serve runs a prepared request.
func Serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}
