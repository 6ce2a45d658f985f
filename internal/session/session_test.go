package session

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClearEmitsMaxAgeZero(t *testing.T) {
	c := Clear()
	assert.Contains(t, c.String(), "Max-Age=0")
	assert.True(t, c.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
}

func TestIssueDropsDomainAndForcesFlags(t *testing.T) {
	c := Issue(&http.Cookie{Name: "sid", Value: "tok", Domain: "api", Path: "/api", MaxAge: 3600})
	assert.Equal(t, "tok", c.Value)
	assert.Empty(t, c.Domain)
	assert.Equal(t, "/", c.Path)
	assert.True(t, c.HttpOnly)
	assert.Equal(t, 3600, c.MaxAge)
}

func TestTokenReadsSid(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "", Token(r))
	r.AddCookie(&http.Cookie{Name: "sid", Value: "abc"})
	assert.Equal(t, "abc", Token(r))
}

func TestMailboxRoundTrip(t *testing.T) {
	mb := Mailbox{Name: "login_error"}
	posted := mb.Post(ErrLocked, ErrorTTL)
	assert.Equal(t, 10, posted.MaxAge)
	assert.False(t, posted.HttpOnly)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(posted)
	assert.Equal(t, ErrLocked, mb.Read(r))

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: "login_error", Value: "<script>"})
	assert.Equal(t, LoginError(""), mb.Read(r))

	assert.Contains(t, mb.Clear().String(), "Max-Age=0")
}

func TestTheme(t *testing.T) {
	assert.Equal(t, ThemeLight, ParseTheme("light"))
	assert.Equal(t, ThemeDark, ParseTheme("LIGHT"))
	assert.Equal(t, ThemeDark, ParseTheme(""))

	c := ThemeLight.Cookie()
	assert.False(t, c.HttpOnly)
	assert.Equal(t, 31536000, c.MaxAge)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, ThemeDark, ThemeOf(r))
	r.AddCookie(c)
	assert.Equal(t, ThemeLight, ThemeOf(r))
}
