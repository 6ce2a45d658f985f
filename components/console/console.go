// components/console/console.go
//
// Admin console: signup review and account unlock.
//
// Context
// -------
// "/" is the admin sign-in and, once signed in, a 307 to /admin.  The two
// listings are fetched one after the other with the admin's token; a
// failure in either leaves that list empty and raises a banner.
//
//------------------------------------------------------------------------------

package console

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/yanizio/todogate/internal/component"
	"github.com/yanizio/todogate/internal/gate"
	"github.com/yanizio/todogate/internal/session"
	"github.com/yanizio/todogate/internal/view"
)

var _ component.Component = (*Component)(nil)

type Component struct {
	deps *component.Deps
}

func New(d *component.Deps) *Component { return &Component{deps: d} }

func (c *Component) Name() string { return "console" }

func (c *Component) Routes(r chi.Router) {
	r.Get("/", c.handleRoot)
	r.Route("/admin", func(r chi.Router) {
		r.Get("/", c.handleConsole)
		r.Post("/requests/{id}/approve", c.handleApprove)
		r.Post("/requests/{id}/reject", c.handleReject)
		r.Post("/users/{id}/unlock", c.handleUnlock)
	})
}

/*──────────────────────────── Pages ────────────────────────────────────────*/

func (c *Component) handleRoot(w http.ResponseWriter, r *http.Request) {
	d := c.deps.Evaluate(r)
	switch d.State {
	case gate.Anonymous:
		c.deps.SignIn(w, r)
	case gate.RoleMismatch:
		c.deps.Render(w, r, view.PageNotice, c.deps.Denied())
	case gate.PasswordChangeRequired:
		c.deps.Render(w, r, view.PagePasswordRequired, nil)
	default:
		http.Redirect(w, r, c.deps.Resolver.Absolute(r, "/admin"), http.StatusTemporaryRedirect)
	}
}

func (c *Component) handleConsole(w http.ResponseWriter, r *http.Request) {
	d := c.deps.Evaluate(r)
	switch d.State {
	case gate.Anonymous:
		c.deps.Render(w, r, view.PageNotice, component.SignInFirst("Admin"))
		return
	case gate.RoleMismatch:
		c.deps.Render(w, r, view.PageNotice, c.deps.Denied())
		return
	case gate.PasswordChangeRequired:
		c.deps.Render(w, r, view.PagePasswordRequired, nil)
		return
	}

	data := view.Console{Username: d.Username(), SentCode: r.URL.Query().Get("sent_code")}
	api := c.deps.Client.Bind(d.Token)

	reqs, err := api.SignupRequests(r.Context())
	if err != nil {
		zap.S().Warnw("signup requests unavailable", "err", err)
		data.LoadFailed = true
	}
	users, err := api.Users(r.Context())
	if err != nil {
		zap.S().Warnw("user list unavailable", "err", err)
		data.LoadFailed = true
	}
	data.Requests, data.Users = reqs, users
	c.deps.Render(w, r, view.PageConsole, data)
}

/*──────────────────────────── Actions ──────────────────────────────────────*/

func (c *Component) handleApprove(w http.ResponseWriter, r *http.Request) {
	o := c.deps.Relay.ApproveRequest(r.Context(), session.Token(r), chi.URLParam(r, "id"))
	c.deps.Relay.Respond(w, r, o)
}

func (c *Component) handleReject(w http.ResponseWriter, r *http.Request) {
	o := c.deps.Relay.RejectRequest(r.Context(), session.Token(r), chi.URLParam(r, "id"))
	c.deps.Relay.Respond(w, r, o)
}

func (c *Component) handleUnlock(w http.ResponseWriter, r *http.Request) {
	o := c.deps.Relay.UnlockUser(r.Context(), session.Token(r), chi.URLParam(r, "id"))
	c.deps.Relay.Respond(w, r, o)
}
