// internal/config/model.go
//
// Typed configuration model.
//
// Context
// -------
// These structs define the tree that `loader.go` builds from its overlay
// layers (lowest precedence first):
//
//   • built-in defaults for the site kind    – see defaults(),
//   • `conf/global.yaml` then `conf/<kind>.yaml`, both optional,
//   • legacy `INTERNAL_API_BASE`            – maps to upstream.base_url,
//   • `TODOGATE_`-prefixed environment      – `__` separates levels.
//
// Any string value beginning with `vault:` is resolved through Vault before
// unmarshalling, so the model only ever holds plain strings.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`.  Durations accept "10s" style strings.
//   • `Paths` is filled at runtime; YAML must not try to set it.

package config

import "time"

//
// Site section
//

// Site picks the profile.  Kind is forced by the binary that loads it.
type Site struct {
	Kind  string `koanf:"kind"  validate:"required,oneof=consumer admin"`
	Title string `koanf:"title"`
}

//
// HTTP section
//

// HTTP holds web-server tunables.
type HTTP struct {
	ListenAddr   string        `koanf:"listen_addr"   validate:"required,hostname_port"`
	FallbackHost string        `koanf:"fallback_host" validate:"required"`
	ForceHTTPS   bool          `koanf:"force_https"`
	DocsPort     int           `koanf:"docs_port"     validate:"min=1,max=65535"`
	ReadTimeout  time.Duration `koanf:"read_timeout"  validate:"gte=0"`
	WriteTimeout time.Duration `koanf:"write_timeout" validate:"gte=0"`
	IdleTimeout  time.Duration `koanf:"idle_timeout"  validate:"gte=0"`
}

//
// Upstream section
//

// Upstream locates the backend API.
type Upstream struct {
	BaseURL string        `koanf:"base_url" validate:"required,url"`
	Timeout time.Duration `koanf:"timeout"  validate:"gt=0"`
}

// Geo enables GeoLite2 enrichment of request logs when DBPath is set.
type Geo struct {
	DBPath string `koanf:"db_path"`
}

// Log controls the zap sink.  An empty Dir means <root>/logs.
type Log struct {
	Level string `koanf:"level" validate:"oneof=debug info warn error"`
	Dir   string `koanf:"dir"`
}

// View points at optional on-disk template overrides.
type View struct {
	OverrideDir string `koanf:"override_dir"`
	NoCache     bool   `koanf:"no_cache"`
}

//
// Paths section (runtime only)
//

// Paths is resolved at runtime, never from YAML or env.
type Paths struct {
	Root string // TODOGATE_ROOT or discovered parent
}

//
// Root aggregate
//

// Config is immutable after Load returns it.
type Config struct {
	Site     Site     `koanf:"site"`
	HTTP     HTTP     `koanf:"http"`
	Upstream Upstream `koanf:"upstream"`
	Geo      Geo      `koanf:"geo"`
	Log      Log      `koanf:"log"`
	View     View     `koanf:"view"`
	Paths    Paths    `koanf:"-"`
}

// defaults returns the baseline for kind before any layer is applied.
func defaults(kind string) Config {
	port := "3001"
	if kind == "admin" {
		port = "3002"
	}
	return Config{
		Site: Site{Kind: kind},
		HTTP: HTTP{
			ListenAddr:   ":" + port,
			FallbackHost: "localhost:" + port,
			DocsPort:     8001,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Upstream: Upstream{
			BaseURL: "http://api:8000",
			Timeout: 10 * time.Second,
		},
		Log: Log{Level: "info"},
	}
}
