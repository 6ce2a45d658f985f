// internal/view/funcs.go
//
// Template helpers.
package view

import (
	"html/template"
	"strings"
	"time"
	_ "time/tzdata" // America/Los_Angeles must resolve in minimal containers

	"github.com/yanizio/todogate/internal/upstream"
)

// pacific is where timestamps are shown, whatever the server's zone.
var pacific = loadPacific()

func loadPacific() *time.Location {
	loc, err := time.LoadLocation("America/Los_Angeles")
	if err != nil {
		return time.UTC
	}
	return loc
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"pt":         formatPT,
		"lower":      strings.ToLower,
		"priorities": func() []string { return []string{upstream.PriorityHigh, upstream.PriorityMedium, upstream.PriorityLow} },
	}
}

// formatPT renders unix seconds as "2006-01-02 15:04" in Pacific time.
func formatPT(unix int64) string {
	return time.Unix(unix, 0).In(pacific).Format("2006-01-02 15:04")
}
