// components/todo/todo.go
//
// Consumer home and item actions.
//
// Context
// -------
// GET / is the only page whose content depends on every access state: the
// sign-in form, the role denial, the two "finish your account" views, or
// the filtered list.  Item actions relay straight to the backend, which
// enforces ownership.
//
//------------------------------------------------------------------------------

package todo

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

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

func (c *Component) Name() string { return "todo" }

func (c *Component) Routes(r chi.Router) {
	r.Get("/", c.handleHome)
	r.Post("/todos", c.handleCreate)
	r.Route("/todos/{id}", func(r chi.Router) {
		r.Post("/toggle", c.handleToggle)
		r.Post("/priority", c.handlePriority)
		r.Post("/delete", c.handleDelete)
	})
}

/*──────────────────────────── Page ─────────────────────────────────────────*/

func (c *Component) handleHome(w http.ResponseWriter, r *http.Request) {
	d := c.deps.Evaluate(r)
	switch d.State {
	case gate.Anonymous:
		c.deps.SignIn(w, r)
	case gate.RoleMismatch:
		c.deps.Render(w, r, view.PageNotice, c.deps.Denied())
	case gate.PasswordChangeRequired:
		c.deps.Render(w, r, view.PagePasswordRequired, nil)
	case gate.VerificationRequired:
		c.deps.Render(w, r, view.PageVerifyRequired, nil)
	default:
		c.renderList(w, r, d)
	}
}

func (c *Component) renderList(w http.ResponseWriter, r *http.Request, d gate.Decision) {
	f := ParseFilter(r.URL.Query())
	data := view.Todos{Username: d.Username(), Priority: f.Priority, Status: f.Status}

	items, err := c.deps.Client.Bind(d.Token).Todos(r.Context())
	if err != nil {
		zap.S().Warnw("todo list unavailable", "user", d.Username(), "err", err)
		data.LoadFailed = true
	} else {
		data.Items = f.Apply(items)
	}
	c.deps.Render(w, r, view.PageHome, data)
}

/*──────────────────────────── Actions ──────────────────────────────────────*/

func (c *Component) handleCreate(w http.ResponseWriter, r *http.Request) {
	var in relay.TodoInput
	if err := form.HandleSubmit(w, r, &in); err != nil {
		c.deps.BadForm(w, r, "/", err)
		return
	}
	c.deps.Relay.Respond(w, r, c.deps.Relay.CreateTodo(r.Context(), session.Token(r), in))
}

func (c *Component) handleToggle(w http.ResponseWriter, r *http.Request) {
	o := c.deps.Relay.ToggleTodo(r.Context(), session.Token(r), chi.URLParam(r, "id"))
	c.deps.Relay.Respond(w, r, o)
}

func (c *Component) handlePriority(w http.ResponseWriter, r *http.Request) {
	var in relay.PriorityInput
	if err := form.HandleSubmit(w, r, &in); err != nil {
		c.deps.BadForm(w, r, "/", err)
		return
	}
	o := c.deps.Relay.SetTodoPriority(r.Context(), session.Token(r), chi.URLParam(r, "id"), in)
	c.deps.Relay.Respond(w, r, o)
}

func (c *Component) handleDelete(w http.ResponseWriter, r *http.Request) {
	o := c.deps.Relay.DeleteTodo(r.Context(), session.Token(r), chi.URLParam(r, "id"))
	c.deps.Relay.Respond(w, r, o)
}
