// components/auth/auth.go
//
// Sign-in, sign-out and theme actions.  Mounted on both sites.
//
//------------------------------------------------------------------------------

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yanizio/todogate/internal/component"
	"github.com/yanizio/todogate/internal/form"
	"github.com/yanizio/todogate/internal/relay"
	"github.com/yanizio/todogate/internal/session"
)

// Compile-time assertion: *Component satisfies component.Component.
var _ component.Component = (*Component)(nil)

// Component encapsulates the session actions.
type Component struct {
	deps *component.Deps
}

// New binds the component to a site.
func New(d *component.Deps) *Component { return &Component{deps: d} }

/*────────────────── component.Component methods ───────────────────────────*/

// Name returns the canonical component key.
func (c *Component) Name() string { return "auth" }

// Routes registers the POST-only session actions.
func (c *Component) Routes(r chi.Router) {
	r.Post("/login", c.handleLogin)
	r.Post("/logout", c.handleLogout)
	r.Post("/theme", c.handleTheme)
}

/*──────────────────────────── Handlers ─────────────────────────────────────*/

func (c *Component) handleLogin(w http.ResponseWriter, r *http.Request) {
	var in relay.LoginInput
	if err := form.HandleSubmit(w, r, &in); err != nil {
		c.deps.BadForm(w, r, "/", err)
		return
	}
	c.deps.Relay.Respond(w, r, c.deps.Relay.Login(r.Context(), in))
}

func (c *Component) handleLogout(w http.ResponseWriter, r *http.Request) {
	c.deps.Relay.Respond(w, r, c.deps.Relay.Logout(r.Context(), session.Token(r)))
}

func (c *Component) handleTheme(w http.ResponseWriter, r *http.Request) {
	var in relay.ThemeInput
	if err := form.HandleSubmit(w, r, &in); err != nil {
		c.deps.BadForm(w, r, "/", err)
		return
	}
	c.deps.Relay.Respond(w, r, c.deps.Relay.SetTheme(in))
}
