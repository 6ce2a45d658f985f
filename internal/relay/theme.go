package relay

import (
	"net/http"

	"github.com/yanizio/todogate/internal/redirect"
	"github.com/yanizio/todogate/internal/session"
)

// ThemeInput is the theme select form.  Next is the page to return to.
type ThemeInput struct {
	Theme string `form:"theme"`
	Next  string `form:"next"`
}

// SetTheme stores the preference and returns to a local page.  No backend
// call.
func (rl *Relay) SetTheme(in ThemeInput) Outcome {
	return Outcome{
		Path:    redirect.SafePath(in.Next),
		Cookies: []*http.Cookie{session.ParseTheme(in.Theme).Cookie()},
	}
}
