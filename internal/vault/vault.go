// internal/vault/vault.go
//
// Vault KV-v2 lookups for configuration secrets.
//
// Context
// -------
//   - Config values may be written as `vault:<mount>/<path>#<key>`, e.g.
//     `vault:secret/todogate#api_base`.  The config loader hands each such
//     reference to Resolve before unmarshalling.
//   - One secret path is read once per Client even when several keys use it.
//   - Lookups happen at boot only, so there is no token renewal loop.
//
// Environment expectations
// ------------------------
// • VAULT_ADDR   – scheme and host of the Vault server.
// • VAULT_TOKEN  – token with read access to the referenced paths.
package vault

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	vault "github.com/hashicorp/vault/api"
)

// Prefix marks a config value as a Vault reference.
const Prefix = "vault:"

// ErrBadRef is returned for references that do not parse.
var ErrBadRef = errors.New("vault: malformed reference")

//
// SECTION 1.  Client
//

// Client is safe for concurrent use.  Zero value is invalid.
type Client struct {
	api *vault.Client

	mu      sync.Mutex
	secrets map[string]map[string]any // "<mount>/<path>" → data
}

// New builds a client from VAULT_* environment variables.  addr and token
// override them when non-empty.
func New(addr, token string) (*Client, error) {
	cfg := vault.DefaultConfig()
	if cfg.Error != nil {
		return nil, fmt.Errorf("vault env cfg: %w", cfg.Error)
	}
	if addr != "" {
		cfg.Address = addr
	}
	cfg.MaxRetries = 0

	api, err := vault.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("vault api: %w", err)
	}
	if token != "" {
		api.SetToken(token)
	}
	return &Client{api: api, secrets: make(map[string]map[string]any)}, nil
}

// Resolve returns the string stored at ref (with or without the Prefix).
func (c *Client) Resolve(ctx context.Context, ref string) (string, error) {
	path, key, err := ParseRef(ref)
	if err != nil {
		return "", err
	}
	return c.GetKV(ctx, path, key)
}

// GetKV fetches one key from a KV-v2 secret at "<mount>/<path>".
func (c *Client) GetKV(ctx context.Context, secretPath, key string) (string, error) {
	data, err := c.read(ctx, secretPath)
	if err != nil {
		return "", err
	}
	raw, ok := data[key]
	if !ok {
		return "", fmt.Errorf("vault: key %q not found in secret %q", key, secretPath)
	}
	sval, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("vault: value at %s#%s is not a string", secretPath, key)
	}
	return sval, nil
}

func (c *Client) read(ctx context.Context, secretPath string) (map[string]any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if data, ok := c.secrets[secretPath]; ok {
		return data, nil
	}
	mount, rel := splitMount(secretPath)
	if mount == "" || rel == "" {
		return nil, fmt.Errorf("%w: %q needs <mount>/<path>", ErrBadRef, secretPath)
	}
	sec, err := c.api.KVv2(mount).Get(ctx, rel)
	if err != nil {
		return nil, fmt.Errorf("vault get %s: %w", secretPath, err)
	}
	c.secrets[secretPath] = sec.Data
	return sec.Data, nil
}

//
// SECTION 2.  Helpers
//

// ParseRef splits "vault:<mount>/<path>#<key>" into path and key.
func ParseRef(ref string) (path, key string, err error) {
	ref = strings.TrimPrefix(strings.TrimSpace(ref), Prefix)
	path, key, ok := strings.Cut(ref, "#")
	if !ok || path == "" || key == "" {
		return "", "", fmt.Errorf("%w: %q", ErrBadRef, ref)
	}
	return path, key, nil
}

func splitMount(p string) (mount, rel string) {
	mount, rel, _ = strings.Cut(strings.Trim(p, "/"), "/")
	return mount, rel
}
