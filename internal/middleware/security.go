// internal/middleware/security.go
//
// Security-header middleware.
//
// Sets on every response, unless a handler already did:
//
//   • Content-Security-Policy   –  self-only, inline styles for the layout,
//                                  forms may only post back to this origin
//   • X-Frame-Options           –  click-jacking defence
//   • X-Content-Type-Options    –  MIME-sniffing defence
//   • Referrer-Policy           –  drops path and query from Referer
//   • Permissions-Policy        –  disables powerful features
//   • Cache-Control             –  pages carry per-user data
//
// HSTS is added only when hsts is true (ForceHTTPS deployments); both sites
// also run on plain http behind a local proxy.
//
// Notes
// -----
// • Headers must be in place before the handler writes its status line, so
//   they are set first and handlers may override them.

package middleware

import "net/http"

// Security returns a middleware that sets the headers above.
func Security(hsts bool) func(http.Handler) http.Handler {
	const (
		hstsVal = "max-age=63072000; includeSubDomains"
		csp     = "default-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' data:; " +
			"object-src 'none'; base-uri 'self'; form-action 'self'; frame-ancestors 'none'"
	)
	fixed := [][2]string{
		{"Content-Security-Policy", csp},
		{"X-Frame-Options", "DENY"},
		{"X-Content-Type-Options", "nosniff"},
		{"Referrer-Policy", "strict-origin-when-cross-origin"},
		{"Permissions-Policy", "geolocation=(), microphone=(), camera=()"},
		{"Cache-Control", "no-store"},
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			for _, kv := range fixed {
				h.Set(kv[0], kv[1])
			}
			if hsts {
				h.Set("Strict-Transport-Security", hstsVal)
			}
			next.ServeHTTP(w, r)
		})
	}
}
