// internal/config/loader.go
//
// Configuration loader.
//
/*
Context
--------
`Load(kind)` builds one immutable `Config` for a site from these layers
(highest precedence last):

  1. Built-in defaults for the kind (ports 3001 and 3002).
  2. Optional `<root>/conf/.env`, loaded into the process environment.
  3. Optional `conf/global.yaml`, then optional `conf/<kind>.yaml`.
  4. Legacy `INTERNAL_API_BASE`, mapped to `upstream.base_url`.
  5. Environment variables prefixed `TODOGATE_`, where `__` maps to "."
     (e.g., `TODOGATE_HTTP__LISTEN_ADDR → http.listen_addr`).

Values beginning with `vault:` are then resolved through Vault, the tree is
unmarshalled over the defaults, validated, and cached in an
`atomic.Pointer` for lock-free reads.

Instrumentation
---------------
  • DEBUG spans: root discovery, each YAML read, Vault resolutions.
  • ERROR spans: YAML parse, env overlay, unmarshal, validation failures.
  • INFO  span:  final "config loaded" with key highlights.
  • Logs use `zap.S()`; before the file logger exists that is a no-op.
*/
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	koanf "github.com/knadh/koanf/v2"
	"go.uber.org/zap"

	"github.com/yanizio/todogate/internal/vault"
)

var current atomic.Pointer[Config]

// envPrefix marks override variables.
const envPrefix = "TODOGATE_"

// SecretResolver turns a `vault:` reference into its value.
type SecretResolver interface {
	Resolve(ctx context.Context, ref string) (string, error)
}

/*──────────────────────────── root discovery ───────────────────────────────*/

// rootDir resolves TODOGATE_ROOT or climbs directories until conf/global.yaml
// is found.  Falls back to the working directory.
func rootDir() string {
	if r := os.Getenv(envPrefix + "ROOT"); r != "" {
		return r
	}

	wd, _ := os.Getwd()
	dir := wd
	for {
		if _, err := os.Stat(filepath.Join(dir, "conf", "global.yaml")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	exe, _ := os.Executable()
	if filepath.Base(filepath.Dir(exe)) == "bin" {
		return filepath.Dir(filepath.Dir(exe))
	}
	return wd
}

/*─────────────────────────────── loader ───────────────────────────────────*/

// Load reads every layer for kind ("consumer" or "admin"), validates, and
// caches the result.  Vault is contacted only when a `vault:` value exists.
func Load(kind string) (*Config, error) {
	return load(kind, rootDir(), nil)
}

// load is Load with an explicit root and an optional resolver for tests.
func load(kind, root string, secrets SecretResolver) (*Config, error) {
	zap.S().Debugw("config root resolved", "root", root)

	// .env (optional, no error if missing)
	_ = godotenv.Load(filepath.Join(root, "conf", ".env"))

	k := koanf.New(".")

	for _, name := range []string{"global.yaml", kind + ".yaml"} {
		p := filepath.Join(root, "conf", name)
		if _, err := os.Stat(p); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := k.Load(file.Provider(p), yaml.Parser()); err != nil {
			zap.S().Errorw("config yaml load failed", "file", p, "err", err)
			return nil, fmt.Errorf("config: %s: %w", name, err)
		}
		zap.S().Debugw("config yaml loaded", "file", p)
	}

	// INTERNAL_API_BASE predates the TODOGATE_ names; keep honouring it.
	if err := k.Load(env.ProviderWithValue("INTERNAL_API_BASE", ".", func(key, val string) (string, any) {
		if key != "INTERNAL_API_BASE" || val == "" {
			return "", nil
		}
		return "upstream.base_url", val
	}), nil); err != nil {
		return nil, fmt.Errorf("config: legacy env: %w", err)
	}

	// TODOGATE_HTTP__LISTEN_ADDR → http.listen_addr
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.ReplaceAll(strings.TrimPrefix(s, envPrefix), "__", "."))
	}), nil); err != nil {
		zap.S().Errorw("config env overlay failed", "err", err)
		return nil, fmt.Errorf("config: env: %w", err)
	}

	if err := resolveSecrets(k, secrets); err != nil {
		return nil, err
	}

	cfg := defaults(kind)
	if err := k.Unmarshal("", &cfg); err != nil {
		zap.S().Errorw("config unmarshal failed", "err", err)
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	cfg.Site.Kind = kind
	cfg.Paths.Root = root
	if cfg.Log.Dir == "" {
		cfg.Log.Dir = filepath.Join(root, "logs")
	}
	if err := validateStruct(&cfg); err != nil {
		zap.S().Errorw("config validation failed", "err", err)
		return nil, err
	}

	current.Store(&cfg)
	zap.S().Infow("config loaded",
		"site", cfg.Site.Kind,
		"listen_addr", cfg.HTTP.ListenAddr,
		"upstream", cfg.Upstream.BaseURL,
		"force_https", cfg.HTTP.ForceHTTPS,
		"root", cfg.Paths.Root,
	)
	return &cfg, nil
}

// resolveSecrets replaces every `vault:` string in k.  A Vault client is
// created from the environment only when the first reference shows up.
func resolveSecrets(k *koanf.Koanf, secrets SecretResolver) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for key, val := range k.All() {
		s, ok := val.(string)
		if !ok || !strings.HasPrefix(s, vault.Prefix) {
			continue
		}
		if secrets == nil {
			cli, err := vault.New("", "")
			if err != nil {
				return fmt.Errorf("config: %s: %w", key, err)
			}
			secrets = cli
		}
		plain, err := secrets.Resolve(ctx, s)
		if err != nil {
			zap.S().Errorw("config vault lookup failed", "key", key, "err", err)
			return fmt.Errorf("config: %s: %w", key, err)
		}
		if err := k.Set(key, plain); err != nil {
			return fmt.Errorf("config: %s: %w", key, err)
		}
		zap.S().Debugw("config value resolved from vault", "key", key)
	}
	return nil
}

/*──────────────────────────── helpers ─────────────────────────────────────*/

// Get returns the last loaded Config, or nil before Load.
func Get() *Config { return current.Load() }
