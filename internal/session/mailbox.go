package session

import (
	"net/http"
	"time"
)

// LoginError is the value carried by the error mailbox cookie.
type LoginError string

const (
	ErrLocked          LoginError = "locked"
	ErrInvalid         LoginError = "invalid"
	ErrNotFound        LoginError = "not_found"
	ErrUpstream        LoginError = "error"
	ErrAdminNotAllowed LoginError = "admin_not_allowed"
	ErrAdminRequired   LoginError = "admin_required"
)

// Default lifetimes.  admin_required is shorter on the console.
const (
	ErrorTTL      = 10 * time.Second
	ShortErrorTTL = 5 * time.Second
)

// Known reports whether e is one of the codes above.
func (e LoginError) Known() bool {
	switch e {
	case ErrLocked, ErrInvalid, ErrNotFound, ErrUpstream, ErrAdminNotAllowed, ErrAdminRequired:
		return true
	}
	return false
}

// Mailbox is a one-shot error slot held in a short-lived cookie.  A relay
// posts into it; the next page render reads it.  Expiry is by Max-Age, not
// by reading, so a reload inside the window shows the message again.
type Mailbox struct {
	Name string // "login_error" or "admin_login_error"
}

// Post returns the cookie that stores code for ttl.
func (m Mailbox) Post(code LoginError, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     m.Name,
		Value:    string(code),
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
		SameSite: http.SameSiteLaxMode,
	}
}

// Clear returns the cookie that empties the mailbox.
func (m Mailbox) Clear() *http.Cookie {
	return &http.Cookie{
		Name:     m.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		SameSite: http.SameSiteLaxMode,
	}
}

// Read returns the pending code, or "" when the cookie is missing or holds
// something we never write.
func (m Mailbox) Read(r *http.Request) LoginError {
	c, err := r.Cookie(m.Name)
	if err != nil {
		return ""
	}
	if e := LoginError(c.Value); e.Known() {
		return e
	}
	return ""
}
