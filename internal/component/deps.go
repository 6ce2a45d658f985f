package component

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/yanizio/todogate/internal/gate"
	"github.com/yanizio/todogate/internal/redirect"
	"github.com/yanizio/todogate/internal/relay"
	"github.com/yanizio/todogate/internal/session"
	"github.com/yanizio/todogate/internal/site"
	"github.com/yanizio/todogate/internal/upstream"
	"github.com/yanizio/todogate/internal/view"
)

// Deps is what every component may use.  Built once per process.
type Deps struct {
	Site     *site.Profile
	Client   *upstream.Client
	Gate     *gate.Gate
	Relay    *relay.Relay
	View     *view.Renderer
	Resolver *redirect.Resolver
	DocsPort int
}

// Evaluate runs the gate for r's session token.
func (d *Deps) Evaluate(r *http.Request) gate.Decision {
	return d.Gate.Evaluate(r.Context(), session.Token(r))
}

// Render writes page with a 200, or a plain 500 when the template fails.
func (d *Deps) Render(w http.ResponseWriter, r *http.Request, page string, data any) {
	if err := d.View.Render(w, r, http.StatusOK, page, data); err != nil {
		zap.S().Errorw("render failed", "page", page, "err", err)
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}

// Denied is the notice for a signed-in account with the wrong role.
func (d *Deps) Denied() view.Notice {
	if d.Site.IsAdmin() {
		return view.Notice{
			Heading: d.Site.Title,
			Message: "Access denied.  This site is for admin users only.",
			Logout:  true,
		}
	}
	return view.Notice{
		Heading: "Access denied",
		Message: "Admin accounts must use the admin site.",
		Logout:  true,
	}
}

// SignInFirst is the notice for pages that need a session.
func SignInFirst(heading string) view.Notice {
	return view.Notice{Heading: heading, Message: "Please sign in first.", SignInAt: "/"}
}

// BadForm answers a body that could not be parsed at all.  No backend call
// is made; the browser is sent back to back.
func (d *Deps) BadForm(w http.ResponseWriter, r *http.Request, back string, err error) {
	zap.S().Infow("unreadable form", "path", r.URL.Path, "err", err)
	d.Relay.Respond(w, r, relay.Outcome{Path: back})
}

// SignIn renders the anonymous view with the pending mailbox error.  The
// mailbox is left alone; its Max-Age retires it.
func (d *Deps) SignIn(w http.ResponseWriter, r *http.Request) {
	d.Render(w, r, view.PageSignIn, view.SignIn{Error: d.Site.Mailbox.Read(r)})
}
