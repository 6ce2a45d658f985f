// internal/relay/relay.go
//
// Action relay.
//
// Context
// -------
// Every form on both sites posts here.  A relay action forwards the input
// to the backend with the browser's token and returns an Outcome: where to
// send the browser and which cookies to write.  Respond turns an Outcome
// into a 303 with an absolute, same-origin Location.  Actions never render
// a body.
//
// Notes
// -----
//   - Actions are plain methods returning values so they can be tested
//     without a ResponseWriter.
//   - Best-effort calls (cleanup logout) log and move on.  Critical calls map
//     their failure to a named code in a cookie or query parameter.
package relay

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/yanizio/todogate/internal/redirect"
	"github.com/yanizio/todogate/internal/site"
	"github.com/yanizio/todogate/internal/upstream"
)

// Outcome is the result of one relay action.
type Outcome struct {
	Path    string
	Query   url.Values
	Cookies []*http.Cookie
}

// Target joins Path and Query.
func (o Outcome) Target() string {
	if len(o.Query) == 0 {
		return o.Path
	}
	return o.Path + "?" + o.Query.Encode()
}

// to is a shorthand for cookie-less outcomes.
func to(path string) Outcome { return Outcome{Path: path} }

// withErr adds ?err=code to path.
func withErr(path, code string) Outcome {
	return Outcome{Path: path, Query: url.Values{"err": {code}}}
}

// Relay is safe for concurrent use.
type Relay struct {
	client   *upstream.Client
	site     *site.Profile
	resolver *redirect.Resolver
}

// New builds a Relay for one site.
func New(client *upstream.Client, profile *site.Profile, rs *redirect.Resolver) *Relay {
	return &Relay{client: client, site: profile, resolver: rs}
}

// Site returns the profile the relay serves.
func (rl *Relay) Site() *site.Profile { return rl.site }

// Respond writes o's cookies and a 303 to its same-origin target.
func (rl *Relay) Respond(w http.ResponseWriter, r *http.Request, o Outcome) {
	for _, c := range o.Cookies {
		http.SetCookie(w, c)
	}
	w.Header().Set("Location", rl.resolver.Absolute(r, o.Target()))
	w.WriteHeader(http.StatusSeeOther)
}

// parseID accepts positive base-10 integers only.
func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
