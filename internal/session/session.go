// internal/session/session.go
//
// Session token cookie helpers.
//
// Context
//   The backend owns sessions.  This process never mints a token; it reads
//   the `sid` cookie from the browser, forwards it, passes through the one
//   the backend issues on login, and clears it on logout or revocation.
//
// Notes
//   • `sid` is HttpOnly and SameSite=Lax everywhere we write it.
//   • Clearing uses Max-Age=0 (MaxAge -1 in net/http terms).
//
//------------------------------------------------------------------------------

package session

import (
	"net/http"

	"github.com/yanizio/todogate/internal/upstream"
)

// TokenCookie is the session cookie name shared with the backend.
const TokenCookie = upstream.SessionCookie

// Token returns the browser's session token, or "" when absent.
func Token(r *http.Request) string {
	c, err := r.Cookie(TokenCookie)
	if err != nil {
		return ""
	}
	return c.Value
}

// Issue re-emits the cookie the backend set on login for the browser.  The
// backend's Domain is dropped so the cookie binds to this site's origin;
// the security flags are forced on.
func Issue(from *http.Cookie) *http.Cookie {
	return &http.Cookie{
		Name:     TokenCookie,
		Value:    from.Value,
		Path:     "/",
		MaxAge:   from.MaxAge,
		Expires:  from.Expires,
		Secure:   from.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// Clear returns a cookie that removes the session token.
func Clear() *http.Cookie {
	return &http.Cookie{
		Name:     TokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
