// internal/gate/gate.go
//
// Session gate.  One identity call per render, classified under the site
// policy.  Failures of any kind fail closed to Anonymous.
package gate

import (
	"context"

	"go.uber.org/zap"

	"github.com/yanizio/todogate/internal/metrics"
	"github.com/yanizio/todogate/internal/upstream"
)

// Decision is the gate's answer for one request.
type Decision struct {
	State    State
	Identity *upstream.Identity // nil when Anonymous
	Token    string
}

// Authorized reports whether the normal view may render.
func (d Decision) Authorized() bool { return d.State == Authorized }

// SignedIn reports whether the backend recognised the token at all.
func (d Decision) SignedIn() bool { return d.State != Anonymous }

// Username is a template convenience.
func (d Decision) Username() string {
	if d.Identity == nil {
		return ""
	}
	return d.Identity.Username
}

// Gate evaluates requests for one site.  Safe for concurrent use.
type Gate struct {
	client *upstream.Client
	site   string
	policy Policy
}

// New binds a gate to a client, a site label (for metrics and logs), and a
// policy.
func New(client *upstream.Client, site string, p Policy) *Gate {
	return &Gate{client: client, site: site, policy: p}
}

// Policy returns the policy the gate applies.
func (g *Gate) Policy() Policy { return g.policy }

// Evaluate fetches the identity for token and classifies it.  The result is
// never cached; every render asks again.
func (g *Gate) Evaluate(ctx context.Context, token string) Decision {
	id, err := g.client.Bind(token).Me(ctx)
	if err != nil {
		zap.S().Debugw("identity unavailable", "site", g.site, "status", upstream.StatusOf(err), "err", err)
		id = nil
	}
	st := Classify(id, g.policy)
	metrics.AccessStates.WithLabelValues(g.site, string(st)).Inc()
	return Decision{State: st, Identity: id, Token: token}
}
