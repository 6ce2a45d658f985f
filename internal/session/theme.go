package session

import (
	"net/http"
	"time"
)

// ThemeCookie stores the light/dark preference.  Scripts may read it.
const ThemeCookie = "theme"

// Theme is the colour scheme for the layout.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

const themeMaxAge = 365 * 24 * time.Hour

// ParseTheme maps anything but "light" to dark.
func ParseTheme(s string) Theme {
	if s == string(ThemeLight) {
		return ThemeLight
	}
	return ThemeDark
}

// ThemeOf reads the preference from r.
func ThemeOf(r *http.Request) Theme {
	c, err := r.Cookie(ThemeCookie)
	if err != nil {
		return ThemeDark
	}
	return ParseTheme(c.Value)
}

// Cookie returns the one-year preference cookie for t.
func (t Theme) Cookie() *http.Cookie {
	return &http.Cookie{
		Name:     ThemeCookie,
		Value:    string(t),
		Path:     "/",
		MaxAge:   int(themeMaxAge / time.Second),
		SameSite: http.SameSiteLaxMode,
	}
}
