// internal/app/app.go
//
// Process wiring for one site.
//
// Start-up
// --------
//
//  1. Load config for the site kind (defaults → YAML → env → Vault refs).
//
//  2. Start the daily rotating logger (tees to console when in a TTY).
//
//  3. Open the optional GeoLite2 database for request logs.
//
//  4. Build the handler:
//
//     • request info + request log  – ID, UA, geo, status, latency
//     • panic recovery              – chi middleware
//     • security headers            – CSP, frame, referrer, no-store
//     • optional HTTPS redirect     – 308, skipped for localhost
//     • /metrics                    – Prometheus
//     • components                  – per-site set, see components()
//
//  5. Serve until SIGINT/SIGTERM, then drain with a grace period.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/yanizio/todogate/components/account"
	"github.com/yanizio/todogate/components/auth"
	"github.com/yanizio/todogate/components/console"
	"github.com/yanizio/todogate/components/signup"
	"github.com/yanizio/todogate/components/system"
	"github.com/yanizio/todogate/components/todo"
	"github.com/yanizio/todogate/internal/component"
	"github.com/yanizio/todogate/internal/config"
	"github.com/yanizio/todogate/internal/gate"
	"github.com/yanizio/todogate/internal/logger"
	"github.com/yanizio/todogate/internal/middleware"
	"github.com/yanizio/todogate/internal/redirect"
	"github.com/yanizio/todogate/internal/relay"
	"github.com/yanizio/todogate/internal/requestinfo"
	"github.com/yanizio/todogate/internal/server"
	"github.com/yanizio/todogate/internal/site"
	"github.com/yanizio/todogate/internal/upstream"
	"github.com/yanizio/todogate/internal/view"
)

const shutdownGrace = 10 * time.Second

// NewHandler builds the complete handler for the site cfg describes.
func NewHandler(cfg *config.Config) (http.Handler, error) {
	profile, err := site.For(site.Kind(cfg.Site.Kind), cfg.Site.Title)
	if err != nil {
		return nil, err
	}
	client, err := upstream.New(cfg.Upstream.BaseURL, cfg.Upstream.Timeout)
	if err != nil {
		return nil, err
	}
	rs := redirect.New(cfg.HTTP.FallbackHost)

	deps := &component.Deps{
		Site:     profile,
		Client:   client,
		Gate:     gate.New(client, string(profile.Kind), profile.Policy),
		Relay:    relay.New(client, profile, rs),
		View:     view.New(profile, view.Options{OverrideDir: cfg.View.OverrideDir, NoCache: cfg.View.NoCache}),
		Resolver: rs,
		DocsPort: cfg.HTTP.DocsPort,
	}

	r := chi.NewRouter()
	r.Use(requestinfo.Enrich)
	r.Use(middleware.RequestLog)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Security(cfg.HTTP.ForceHTTPS))
	if cfg.HTTP.ForceHTTPS {
		r.Use(middleware.ForceHTTPS(rs))
	}
	r.Handle("/metrics", promhttp.Handler())

	reg := components(deps)
	reg.Mount(r)
	return r, nil
}

// components picks the set for the site.  Shared ones come first.
func components(d *component.Deps) *component.Registry {
	reg := &component.Registry{}
	reg.Register(auth.New(d))
	reg.Register(account.New(d))
	reg.Register(system.New(d))
	switch d.Site.Kind {
	case site.Consumer:
		reg.Register(todo.New(d))
		reg.Register(signup.New(d))
	case site.Admin:
		reg.Register(console.New(d))
	}
	return reg
}

// Run loads config for kind and serves until a shutdown signal.
func Run(kind site.Kind) error {
	cfg, err := config.Load(string(kind))
	if err != nil {
		return err
	}

	log, err := logger.New(logger.Options{
		Dir:   cfg.Log.Dir,
		Site:  cfg.Site.Kind,
		Level: cfg.Log.Level,
		Tee:   runningInTTY(),
	})
	if err != nil {
		return fmt.Errorf("start logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	if err := requestinfo.InitGeo(cfg.Geo.DBPath); err != nil {
		log.Warnw("geoip disabled", "path", cfg.Geo.DBPath, "err", err)
	}

	h, err := NewHandler(cfg)
	if err != nil {
		return err
	}
	srv := server.New(cfg.HTTP.ListenAddr, h, server.Timeouts{
		Read:  cfg.HTTP.ReadTimeout,
		Write: cfg.HTTP.WriteTimeout,
		Idle:  cfg.HTTP.IdleTimeout,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return serve(ctx, srv, log)
}

// serve runs srv until ctx ends, then shuts it down.
func serve(ctx context.Context, srv *http.Server, log *zap.SugaredLogger) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Infow("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Infow("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		return srv.Shutdown(sctx)
	})
	return g.Wait()
}

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
