// internal/site/site.go
//
// Site profiles.
//
// Context
// -------
// The consumer to-do site and the admin console run the same code with a
// different profile.  A profile fixes the authorization policy, the error
// mailbox cookie, where a successful login lands, and which code a denied
// login leaves behind.
package site

import (
	"fmt"
	"time"

	"github.com/yanizio/todogate/internal/gate"
	"github.com/yanizio/todogate/internal/session"
)

// Kind names a site.
type Kind string

const (
	Consumer Kind = "consumer"
	Admin    Kind = "admin"
)

// Profile is immutable after For returns it.
type Profile struct {
	Kind   Kind
	Title  string
	Policy gate.Policy

	// Mailbox holds login errors between the relay and the next render.
	Mailbox session.Mailbox

	// AfterLogin is the redirect path once identity is confirmed.
	AfterLogin string

	// Denied and DeniedTTL are posted when the confirmed identity has the
	// wrong role.  Unconfirmed is posted when the re-check itself fails.
	Denied      session.LoginError
	DeniedTTL   time.Duration
	Unconfirmed session.LoginError
}

// For returns the profile for kind.  title overrides the default heading
// when non-empty.
func For(kind Kind, title string) (*Profile, error) {
	var p Profile
	switch kind {
	case Consumer:
		p = Profile{
			Kind:        Consumer,
			Title:       "To-Do",
			Policy:      gate.ConsumerPolicy,
			Mailbox:     session.Mailbox{Name: "login_error"},
			AfterLogin:  "/",
			Denied:      session.ErrAdminNotAllowed,
			DeniedTTL:   session.ErrorTTL,
			Unconfirmed: session.ErrUpstream,
		}
	case Admin:
		p = Profile{
			Kind:        Admin,
			Title:       "Admin Console",
			Policy:      gate.AdminPolicy,
			Mailbox:     session.Mailbox{Name: "admin_login_error"},
			AfterLogin:  "/admin",
			Denied:      session.ErrAdminRequired,
			DeniedTTL:   session.ShortErrorTTL,
			Unconfirmed: session.ErrAdminRequired,
		}
	default:
		return nil, fmt.Errorf("site: unknown kind %q", kind)
	}
	if title != "" {
		p.Title = title
	}
	return &p, nil
}

// IsAdmin is a template convenience.
func (p *Profile) IsAdmin() bool { return p.Kind == Admin }
