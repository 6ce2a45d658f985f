// internal/requestinfo/middleware.go
//
// HTTP middleware that attaches *RequestInfo to each request.
//
/*
Context
--------
Runs first in both routers.  For every request it:

  1. Takes a sane inbound X-Request-Id or mints a UUID.
  2. Parses the User-Agent header.
  3. Extracts the client IP from X-Forwarded-For or X-Real-IP, falling
     back to `r.RemoteAddr`, and does an optional GeoLite2 lookup.
  4. Stores the value under an unexported context key and echoes the id
     on the response.

The client IP is for logs only.  Redirects never consult it.
*/
package requestinfo

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// HeaderRequestID is read from the client and forwarded upstream.
const HeaderRequestID = "X-Request-Id"

/*──────────────────────────── middleware ───────────────────────────────────*/

// Enrich wraps next, attaches *RequestInfo, and forwards.
func Enrich(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		info := &RequestInfo{
			ID:        requestID(r.Header.Get(HeaderRequestID)),
			UA:        parseUA(r.UserAgent()),
			Geo:       lookupGeo(clientIP(r)),
			Timestamp: time.Now().UTC(),
		}
		w.Header().Set(HeaderRequestID, info.ID)
		next.ServeHTTP(w, r.WithContext(WithInfo(r.Context(), info)))
	})
}

// requestID keeps a client-supplied id only when it is short and printable.
func requestID(in string) string {
	in = strings.TrimSpace(in)
	if in == "" || len(in) > 64 {
		return uuid.NewString()
	}
	for _, c := range in {
		if c < '!' || c > '~' {
			return uuid.NewString()
		}
	}
	return in
}

/*──────────────────────────── client IP helper ─────────────────────────────*/

// clientIP extracts the left-most parseable address from X-Forwarded-For or
// X-Real-IP, falling back to r.RemoteAddr ("ip:port").
func clientIP(r *http.Request) net.IP {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		for _, part := range strings.Split(xff, ",") {
			if ip := net.ParseIP(strings.TrimSpace(part)); ip != nil {
				return ip
			}
		}
	}
	if xrip := r.Header.Get("X-Real-Ip"); xrip != "" {
		if ip := net.ParseIP(strings.TrimSpace(xrip)); ip != nil {
			return ip
		}
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return net.ParseIP(host)
	}
	return nil
}
