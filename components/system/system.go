// components/system/system.go
//
// Liveness and the API docs shortcut.

package system

import (
	"encoding/json"
	"net"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/yanizio/todogate/internal/component"
	"github.com/yanizio/todogate/internal/site"
)

var _ component.Component = (*Component)(nil)

type Component struct {
	deps *component.Deps
}

func New(d *component.Deps) *Component { return &Component{deps: d} }

func (c *Component) Name() string { return "system" }

// Routes registers /healthz on both sites and /api-docs on the consumer
// site only.
func (c *Component) Routes(r chi.Router) {
	r.Get("/healthz", c.handleHealth)
	if c.deps.Site.Kind == site.Consumer {
		r.Get("/api-docs", c.handleDocs)
	}
}

// handleHealth never calls the backend.
func (c *Component) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
		"site":   string(c.deps.Site.Kind),
	})
}

// handleDocs points at the backend's docs port on the same host name.
func (c *Component) handleDocs(w http.ResponseWriter, r *http.Request) {
	host := c.deps.Resolver.Authority(r)
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	target := "http://" + net.JoinHostPort(host, strconv.Itoa(c.deps.DocsPort)) + "/docs"
	http.Redirect(w, r, target, http.StatusFound)
}
