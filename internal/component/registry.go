// internal/component/registry.go
//
// Component contract and per-site registry.
//
// Each concrete component lives under components/<name> and is built with
// the site's Deps.  The app bootstrap registers the components a site
// needs and mounts them all on one chi router.  Components attach their
// routes to that router directly, so two components may share "/" without
// chi's mount conflict.

package component

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Component contract.
//
// Routes registers page and action endpoints on r, e.g.:
//
//	func (c *Component) Routes(r chi.Router) {
//		r.Get("/account", c.handleAccount)
//		r.Post("/account/change-password", c.handleChangePassword)
//	}
type Component interface {
	Name() string
	Routes(r chi.Router)
}

// Registry is the ordered set of components for one site.  Not safe for
// concurrent registration; build it during boot.
type Registry struct {
	comps []Component
}

// Register appends c.  Names must be unique.
func (reg *Registry) Register(c Component) {
	for _, have := range reg.comps {
		if have.Name() == c.Name() {
			panic("component: duplicate registration of " + c.Name())
		}
	}
	reg.comps = append(reg.comps, c)
}

// All returns the registered components in registration order.
func (reg *Registry) All() []Component {
	return append([]Component(nil), reg.comps...)
}

// Mount attaches every component's routes to r.
func (reg *Registry) Mount(r chi.Router) {
	for _, c := range reg.comps {
		c.Routes(r)
		zap.S().Debugw("component mounted", "component", c.Name())
	}
}
