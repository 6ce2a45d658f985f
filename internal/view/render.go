// internal/view/render.go
//
// View engine: template lookup, override chain, func-map injection, and an
// LRU of parsed *template.Template* sets.
//
// Lookup precedence for a page (first hit wins):
//   1. <override>/<site>/<page>.html     on disk, optional
//   2. templates/<site>/<page>.html      embedded
//   3. templates/shared/<page>.html      embedded
//
// The layout follows the same idea: <override>/layout.html, then the
// embedded templates/layout.html.  A page file defines "title" and
// "content"; the layout defines "layout" and the shared partials.
//
// Rendering goes to a buffer first, so a failing template never leaves a
// half-written 200 behind.
//
// Style
// -----
// • Oxford commas, two spaces after periods.

package view

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"

	"golang.org/x/sync/singleflight"

	"github.com/yanizio/todogate/internal/cache"
	"github.com/yanizio/todogate/internal/session"
	"github.com/yanizio/todogate/internal/site"
)

//go:embed templates
var embedded embed.FS

// ErrNotFound means no layer holds the requested page.
var ErrNotFound = errors.New("view: template not found")

// Page is the root value every template receives.
type Page struct {
	Site  *site.Profile
	Theme session.Theme
	Path  string // request URI, used as the theme form's "next"
	Data  any
}

// Renderer is safe for concurrent use.
type Renderer struct {
	site     *site.Profile
	override string
	noCache  bool
	sets     *cache.LRU[string, *template.Template]
	sfg      singleflight.Group // one parse per key on a cold cache
}

// Options tune a Renderer.
type Options struct {
	// OverrideDir is searched before the embedded templates.  Empty disables
	// disk lookups.
	OverrideDir string
	// NoCache re-parses on every render; handy while editing overrides.
	NoCache bool
}

// New returns a Renderer for one site.
func New(p *site.Profile, o Options) *Renderer {
	return &Renderer{
		site:     p,
		override: o.OverrideDir,
		noCache:  o.NoCache,
		sets:     cache.New[string, *template.Template](64),
	}
}

// Render executes page with data and writes it with status.  A non-nil
// error means nothing was written.
func (rd *Renderer) Render(w http.ResponseWriter, r *http.Request, status int, page string, data any) error {
	t, err := rd.load(page)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	err = t.ExecuteTemplate(&buf, "layout", Page{
		Site:  rd.site,
		Theme: session.ThemeOf(r),
		Path:  r.URL.RequestURI(),
		Data:  data,
	})
	if err != nil {
		return fmt.Errorf("view: execute %s: %w", page, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w) // client gone; nothing left to report
	return nil
}

//
// internal: load
//

func (rd *Renderer) load(page string) (*template.Template, error) {
	if rd.noCache {
		return rd.parse(page)
	}
	key := string(rd.site.Kind) + "::" + page
	if t, ok := rd.sets.Get(key); ok {
		return t, nil
	}
	v, err, _ := rd.sfg.Do(key, func() (any, error) {
		// Re-check after the barrier.
		if t, ok := rd.sets.Get(key); ok {
			return t, nil
		}
		t, err := rd.parse(page)
		if err != nil {
			return nil, err
		}
		rd.sets.Add(key, t)
		return t, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*template.Template), nil
}

// parse builds the layout plus page set from the first layer that has each.
func (rd *Renderer) parse(page string) (*template.Template, error) {
	layout, err := rd.read("layout.html", "templates/layout.html")
	if err != nil {
		return nil, err
	}
	body, err := rd.read(
		filepath.Join(string(rd.site.Kind), page+".html"),
		"templates/"+string(rd.site.Kind)+"/"+page+".html",
		"templates/shared/"+page+".html",
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, page)
	}

	t, err := template.New("layout").Funcs(funcMap()).Parse(string(layout))
	if err != nil {
		return nil, fmt.Errorf("view: parse layout: %w", err)
	}
	if _, err := t.New(page).Parse(string(body)); err != nil {
		return nil, fmt.Errorf("view: parse %s: %w", page, err)
	}
	return t, nil
}

// read returns the first existing file: the override path (relative to the
// override dir), then each embedded path in order.
func (rd *Renderer) read(overridePath string, embeddedPaths ...string) ([]byte, error) {
	if rd.override != "" {
		b, err := os.ReadFile(filepath.Join(rd.override, overridePath))
		if err == nil {
			return b, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("view: read override: %w", err)
		}
	}
	for _, p := range embeddedPaths {
		b, err := embedded.ReadFile(p)
		if err == nil {
			return b, nil
		}
	}
	return nil, ErrNotFound
}
