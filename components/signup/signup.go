// components/signup/signup.go
//
// Access-request page for the consumer site.  Anonymous visitors get the
// form; a signed-in browser is told so instead.

package signup

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yanizio/todogate/internal/component"
	"github.com/yanizio/todogate/internal/form"
	"github.com/yanizio/todogate/internal/relay"
	"github.com/yanizio/todogate/internal/view"
)

var _ component.Component = (*Component)(nil)

type Component struct {
	deps *component.Deps
}

func New(d *component.Deps) *Component { return &Component{deps: d} }

func (c *Component) Name() string { return "signup" }

func (c *Component) Routes(r chi.Router) {
	r.Get("/signup", c.handlePage)
	r.Post("/signup/submit", c.handleSubmit)
}

func (c *Component) handlePage(w http.ResponseWriter, r *http.Request) {
	d := c.deps.Evaluate(r)
	c.deps.Render(w, r, view.PageSignup, view.Signup{
		SignedIn: d.SignedIn(),
		Username: d.Username(),
		Err:      r.URL.Query().Get("err"),
	})
}

func (c *Component) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var in relay.SignupInput
	if err := form.HandleSubmit(w, r, &in); err != nil {
		c.deps.BadForm(w, r, "/signup", err)
		return
	}
	c.deps.Relay.Respond(w, r, c.deps.Relay.Signup(r.Context(), in))
}
