// internal/redirect/resolver.go
//
// Same-origin redirect targets.
//
// Context
// -------
// Both sites usually sit behind a proxy, so the browser-facing authority is
// in X-Forwarded-Host and the scheme in X-Forwarded-Proto.  Those headers are
// client-controlled when no proxy strips them.  The resolver therefore only
// picks an authority from the request (never a path), refuses anything that
// could smuggle a different origin, and forces every path through SafePath.
//
// Order
// -----
//	authority: first X-Forwarded-Host element → Host → Fallback
//	scheme:    X-Forwarded-Proto when http/https → "http"
package redirect

import (
	"net/http"
	"strings"
)

// Resolver is immutable after construction.
type Resolver struct {
	// Fallback is used when neither header yields a usable authority,
	// e.g. "localhost:3001".
	Fallback string
}

// New returns a Resolver with the given fallback authority.
func New(fallback string) *Resolver {
	return &Resolver{Fallback: fallback}
}

// Authority returns the host[:port] a redirect should point at.
func (rs *Resolver) Authority(r *http.Request) string {
	if xfh := r.Header.Get("X-Forwarded-Host"); xfh != "" {
		first, _, _ := strings.Cut(xfh, ",")
		if a := strings.TrimSpace(first); acceptable(a) {
			return a
		}
	}
	if acceptable(r.Host) {
		return r.Host
	}
	return rs.Fallback
}

// Scheme returns "https" only when the proxy says so.
func (rs *Resolver) Scheme(r *http.Request) string {
	switch p := strings.ToLower(strings.TrimSpace(r.Header.Get("X-Forwarded-Proto"))); p {
	case "http", "https":
		return p
	}
	return "http"
}

// Absolute joins scheme, authority, and a sanitised path.  path may carry a
// query string.
func (rs *Resolver) Absolute(r *http.Request, path string) string {
	return rs.Scheme(r) + "://" + rs.Authority(r) + SafePath(path)
}

// SafePath returns p when it is a local path, "/" otherwise.  "//x" and
// "/\x" are protocol-relative in browsers and count as foreign.
func SafePath(p string) string {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.HasPrefix(p, `/\`) {
		return "/"
	}
	if strings.ContainsAny(p, "\r\n") {
		return "/"
	}
	return p
}

// acceptable rejects empty authorities and any byte that would end the
// authority or introduce userinfo.
func acceptable(a string) bool {
	if a == "" {
		return false
	}
	for _, c := range a {
		switch {
		case c == '/', c == '\\', c == '@', c == '?', c == '#':
			return false
		case c <= ' ', c == 0x7f:
			return false
		}
	}
	return true
}
