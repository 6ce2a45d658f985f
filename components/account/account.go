// components/account/account.go
//
// Account pages: password change on both sites, email verification on the
// consumer site.
//
// Context
// -------
// The password page stays reachable while a change is required, and the
// verify page while verification is pending.  Both are closed to signed-in
// accounts of the wrong role.
//
//------------------------------------------------------------------------------

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yanizio/todogate/internal/component"
	"github.com/yanizio/todogate/internal/form"
	"github.com/yanizio/todogate/internal/gate"
	"github.com/yanizio/todogate/internal/relay"
	"github.com/yanizio/todogate/internal/session"
	"github.com/yanizio/todogate/internal/view"
)

var _ component.Component = (*Component)(nil)

type Component struct {
	deps *component.Deps
}

func New(d *component.Deps) *Component { return &Component{deps: d} }

func (c *Component) Name() string { return "account" }

// Routes registers the verify pair only where the policy asks for it.
func (c *Component) Routes(r chi.Router) {
	r.Get("/account", c.handleAccount)
	r.Post("/account/change-password", c.handleChangePassword)
	if c.deps.Site.Policy.RequireVerifiedEmail {
		r.Get("/account/verify", c.handleVerify)
		r.Post("/account/verify/submit", c.handleVerifySubmit)
	}
}

func (c *Component) handleAccount(w http.ResponseWriter, r *http.Request) {
	d := c.deps.Evaluate(r)
	switch d.State {
	case gate.Anonymous:
		c.deps.Render(w, r, view.PageNotice, component.SignInFirst("Account"))
	case gate.RoleMismatch:
		c.deps.Render(w, r, view.PageNotice, c.deps.Denied())
	default:
		c.deps.Render(w, r, view.PageAccount, view.Account{
			Username:   d.Username(),
			MustChange: d.State == gate.PasswordChangeRequired,
			Err:        r.URL.Query().Get("err"),
		})
	}
}

func (c *Component) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	var in relay.ChangePasswordInput
	err := form.HandleSubmit(w, r, &in)
	switch {
	case form.IsValidationError(err):
		c.deps.Relay.Respond(w, r, relay.PasswordMismatch())
		return
	case err != nil:
		c.deps.BadForm(w, r, "/account", err)
		return
	}
	c.deps.Relay.Respond(w, r, c.deps.Relay.ChangePassword(r.Context(), session.Token(r), in))
}

func (c *Component) handleVerify(w http.ResponseWriter, r *http.Request) {
	d := c.deps.Evaluate(r)
	switch d.State {
	case gate.Anonymous:
		c.deps.Render(w, r, view.PageNotice, component.SignInFirst("Verify"))
	case gate.RoleMismatch:
		c.deps.Render(w, r, view.PageNotice, c.deps.Denied())
	default:
		c.deps.Render(w, r, view.PageVerify, view.Verify{
			Username: d.Username(),
			Pending:  d.State == gate.VerificationRequired,
			Err:      r.URL.Query().Get("err"),
		})
	}
}

func (c *Component) handleVerifySubmit(w http.ResponseWriter, r *http.Request) {
	var in relay.VerifyInput
	if err := form.HandleSubmit(w, r, &in); err != nil {
		c.deps.BadForm(w, r, "/account/verify", err)
		return
	}
	c.deps.Relay.Respond(w, r, c.deps.Relay.VerifyEmail(r.Context(), session.Token(r), in))
}
