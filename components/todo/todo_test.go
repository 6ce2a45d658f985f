package todo

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yanizio/todogate/internal/component/componenttest"
	"github.com/yanizio/todogate/internal/site"
	"github.com/yanizio/todogate/internal/upstream"
	"github.com/yanizio/todogate/internal/upstream/upstreamtest"
)

var items = []upstream.Todo{
	{ID: 1, Title: "buy milk", Done: false, Priority: "High", CreatedAt: 1700000000},
	{ID: 2, Title: "file taxes", Done: true, Priority: "High", CreatedAt: 1700000100},
	{ID: 3, Title: "water plants", Done: false, Priority: "Low", CreatedAt: 1700000200},
}

func setup(t *testing.T) (http.Handler, *upstreamtest.Server) {
	t.Helper()
	api := upstreamtest.New(t, map[string]http.HandlerFunc{
		"GET /api/me": upstreamtest.Accounts(map[string]upstream.Identity{
			"ann":     {ID: 1, Username: "ann", EmailVerified: upstreamtest.Bool(true)},
			"fresh":   {ID: 2, Username: "fresh", MustChangePassword: true},
			"pending": {ID: 3, Username: "pending", EmailVerified: upstreamtest.Bool(false)},
			"root":    {ID: 9, Username: "root", IsAdmin: true},
		}),
		"GET /api/todos": upstreamtest.JSON(items),
	})
	return componenttest.Router(New(componenttest.NewDeps(t, site.Consumer, api))), api
}

func TestParseFilter(t *testing.T) {
	f := ParseFilter(url.Values{"priority": {"HIGH"}, "status": {"Done"}})
	assert.Equal(t, Filter{Priority: "high", Status: "done"}, f)

	f = ParseFilter(url.Values{"status": {"weird"}})
	assert.Equal(t, Filter{Priority: "all", Status: "all"}, f)
}

func TestFilterApply(t *testing.T) {
	ids := func(ts []upstream.Todo) []int64 {
		var out []int64
		for _, t := range ts {
			out = append(out, t.ID)
		}
		return out
	}
	assert.Equal(t, []int64{1, 2, 3}, ids(Filter{Priority: "all", Status: "all"}.Apply(items)))
	assert.Equal(t, []int64{1, 2}, ids(Filter{Priority: "high", Status: "all"}.Apply(items)))
	assert.Equal(t, []int64{1}, ids(Filter{Priority: "high", Status: "todo"}.Apply(items)))
	assert.Equal(t, []int64{2}, ids(Filter{Priority: "all", Status: "done"}.Apply(items)))
}

func TestHomeByState(t *testing.T) {
	h, api := setup(t)

	rr := componenttest.Do(h, http.MethodGet, "/", "", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `action="/login"`)

	rr = componenttest.Do(h, http.MethodGet, "/", "root", "")
	assert.Contains(t, rr.Body.String(), "Admin accounts must use the admin site.")

	rr = componenttest.Do(h, http.MethodGet, "/", "fresh", "")
	assert.Contains(t, rr.Body.String(), "Password change required")

	rr = componenttest.Do(h, http.MethodGet, "/", "pending", "")
	assert.Contains(t, rr.Body.String(), "Verification required")

	for _, c := range api.Calls() {
		assert.NotEqual(t, "GET /api/todos", c, "list fetched for a non-authorized state")
	}
}

func TestHomeListsFilteredItems(t *testing.T) {
	h, _ := setup(t)

	rr := componenttest.Do(h, http.MethodGet, "/?priority=High&status=todo", "ann", "")

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "buy milk")
	assert.NotContains(t, body, "file taxes")
	assert.NotContains(t, body, "water plants")
	assert.Contains(t, body, "Signed in as <b>ann</b>")
}

func TestHomeShowsBannerWhenListFails(t *testing.T) {
	h, api := setup(t)
	api.Handle("GET /api/todos", upstreamtest.Status(http.StatusBadGateway))

	rr := componenttest.Do(h, http.MethodGet, "/", "ann", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Tasks could not be loaded.")
}

func TestSignInShowsMailbox(t *testing.T) {
	h, _ := setup(t)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Host = componenttest.Host
	req.AddCookie(&http.Cookie{Name: "login_error", Value: "locked"})
	rr := componenttest.Serve(h, req)

	assert.Contains(t, rr.Body.String(), "Account locked")
	assert.Nil(t, componenttest.SetCookie(rr, "login_error"), "mailbox expires by time, not by reading")
}

func TestItemActions(t *testing.T) {
	h, api := setup(t)

	rr := componenttest.Do(h, http.MethodPost, "/todos", "ann", "text=++call+mom++&priority=")
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, map[string]any{"title": "call mom", "priority": "Medium"}, api.Body("POST /api/todos"))

	componenttest.Do(h, http.MethodPost, "/todos/3/toggle", "ann", "")
	componenttest.Do(h, http.MethodPost, "/todos/3/priority", "ann", "priority=Low")
	componenttest.Do(h, http.MethodPost, "/todos/3/delete", "ann", "")
	assert.True(t, api.Called("POST /api/todos/3/toggle"))
	assert.Equal(t, map[string]any{"priority": "Low"}, api.Body("POST /api/todos/3/priority"))
	assert.True(t, api.Called("POST /api/todos/3/delete"))
}

func TestBlankTextAndBadIDsSkipBackend(t *testing.T) {
	h, api := setup(t)

	componenttest.Do(h, http.MethodPost, "/todos", "ann", "text=+++")
	rr := componenttest.Do(h, http.MethodPost, "/todos/abc/delete", "ann", "")
	componenttest.Do(h, http.MethodPost, "/todos/0/toggle", "ann", "")

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "http://site.test/", rr.Header().Get("Location"))
	for _, c := range api.Calls() {
		assert.False(t, strings.HasPrefix(c, "POST /api/todos"), c)
	}
}
