// Package middleware holds small, composable HTTP wrappers.
package middleware

import (
	"net/http"
	"strings"

	"github.com/yanizio/todogate/internal/redirect"
)

// ForceHTTPS issues a 308 to the https version of the URL when the request
// arrived over plain http, the proxy did not report https, and the host is
// not a local development host.  The target authority comes from the
// resolver, so forwarded headers get the same vetting as every redirect.
func ForceHTTPS(rs *redirect.Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.TLS != nil || rs.Scheme(r) == "https" || isLocal(rs.Authority(r)) {
				next.ServeHTTP(w, r)
				return
			}
			target := "https://" + rs.Authority(r) + redirect.SafePath(r.URL.RequestURI())
			http.Redirect(w, r, target, http.StatusPermanentRedirect)
		})
	}
}

// isLocal reports whether authority names this machine.
func isLocal(authority string) bool {
	h := stripPort(authority)
	return h == "localhost" || h == "127.0.0.1" || h == "[::1]"
}

// stripPort removes the :port suffix from an authority when present.
func stripPort(h string) string {
	if strings.HasPrefix(h, "[") {
		if i := strings.IndexByte(h, ']'); i != -1 {
			return h[:i+1]
		}
		return h
	}
	if i := strings.IndexByte(h, ':'); i != -1 {
		return h[:i]
	}
	return h
}
