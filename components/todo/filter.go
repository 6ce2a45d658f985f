package todo

import (
	"net/url"
	"strings"

	"github.com/yanizio/todogate/internal/upstream"
)

const all = "all"

// Filter narrows the home list.  Both fields are lower case; "all" means no
// constraint.
type Filter struct {
	Priority string
	Status   string // "all", "done" or "todo"
}

// ParseFilter reads ?priority= and ?status=.  Unknown statuses mean all.
func ParseFilter(q url.Values) Filter {
	f := Filter{
		Priority: strings.ToLower(strings.TrimSpace(q.Get("priority"))),
		Status:   strings.ToLower(strings.TrimSpace(q.Get("status"))),
	}
	if f.Priority == "" {
		f.Priority = all
	}
	if f.Status != "done" && f.Status != "todo" {
		f.Status = all
	}
	return f
}

// Apply returns the items that pass f, in their original order.
func (f Filter) Apply(items []upstream.Todo) []upstream.Todo {
	out := make([]upstream.Todo, 0, len(items))
	for _, t := range items {
		if f.Priority != all && strings.ToLower(t.Priority) != f.Priority {
			continue
		}
		if f.Status == "done" && !t.Done || f.Status == "todo" && t.Done {
			continue
		}
		out = append(out, t)
	}
	return out
}
