// internal/server/timeouts.go
//
// HTTP server helper with explicit timeouts.
//
//   • ReadTimeout   – abort slow-loris headers
//   • WriteTimeout  – cap total response time; keep it above the upstream
//                     client timeout so a slow backend still gets a reply
//   • IdleTimeout   – close idle keep-alives
//
// Values come from config (`http.*_timeout`); zero falls back to the
// defaults below.

package server

import (
	"net/http"
	"time"
)

const (
	defaultRead  = 10 * time.Second
	defaultWrite = 15 * time.Second
	defaultIdle  = 60 * time.Second
)

// Timeouts groups the three server deadlines.
type Timeouts struct {
	Read  time.Duration
	Write time.Duration
	Idle  time.Duration
}

// New constructs an *http.Server for addr.
func New(addr string, handler http.Handler, t Timeouts) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       orDefault(t.Read, defaultRead),
		ReadHeaderTimeout: orDefault(t.Read, defaultRead),
		WriteTimeout:      orDefault(t.Write, defaultWrite),
		IdleTimeout:       orDefault(t.Idle, defaultIdle),
	}
}

func orDefault(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}
