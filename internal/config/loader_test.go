package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSecrets map[string]string

func (f fakeSecrets) Resolve(_ context.Context, ref string) (string, error) {
	if v, ok := f[ref]; ok {
		return v, nil
	}
	return "", errors.New("no such secret")
}

func writeConf(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "conf"), 0o755))
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(root, "conf", name), []byte(body), 0o644))
	}
	return root
}

func TestDefaultsWithoutFiles(t *testing.T) {
	t.Setenv("INTERNAL_API_BASE", "")
	root := writeConf(t, nil)

	cfg, err := load("admin", root, nil)
	require.NoError(t, err)
	assert.Equal(t, "admin", cfg.Site.Kind)
	assert.Equal(t, ":3002", cfg.HTTP.ListenAddr)
	assert.Equal(t, "localhost:3002", cfg.HTTP.FallbackHost)
	assert.Equal(t, 8001, cfg.HTTP.DocsPort)
	assert.Equal(t, "http://api:8000", cfg.Upstream.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Upstream.Timeout)
	assert.Equal(t, filepath.Join(root, "logs"), cfg.Log.Dir)
	assert.Same(t, cfg, Get())
}

func TestLayersOverride(t *testing.T) {
	root := writeConf(t, map[string]string{
		"global.yaml":   "upstream:\n  base_url: http://yaml-api:8000\n  timeout: 3s\nlog:\n  level: debug\n",
		"consumer.yaml": "site:\n  title: Tasks\nhttp:\n  fallback_host: todo.local:3001\n",
	})
	t.Setenv("INTERNAL_API_BASE", "http://legacy-api:8000")
	t.Setenv("TODOGATE_HTTP__DOCS_PORT", "9000")
	t.Setenv("TODOGATE_HTTP__LISTEN_ADDR", "127.0.0.1:4001")

	cfg, err := load("consumer", root, nil)
	require.NoError(t, err)
	assert.Equal(t, "Tasks", cfg.Site.Title)
	assert.Equal(t, "todo.local:3001", cfg.HTTP.FallbackHost)
	assert.Equal(t, "http://legacy-api:8000", cfg.Upstream.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Upstream.Timeout)
	assert.Equal(t, 9000, cfg.HTTP.DocsPort)
	assert.Equal(t, "127.0.0.1:4001", cfg.HTTP.ListenAddr)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 15*time.Second, cfg.HTTP.WriteTimeout)
}

func TestPrefixedEnvBeatsLegacy(t *testing.T) {
	root := writeConf(t, nil)
	t.Setenv("INTERNAL_API_BASE", "http://legacy-api:8000")
	t.Setenv("TODOGATE_UPSTREAM__BASE_URL", "http://new-api:8000")

	cfg, err := load("consumer", root, nil)
	require.NoError(t, err)
	assert.Equal(t, "http://new-api:8000", cfg.Upstream.BaseURL)
}

func TestVaultReferencesResolved(t *testing.T) {
	t.Setenv("INTERNAL_API_BASE", "")
	root := writeConf(t, map[string]string{
		"global.yaml": "upstream:\n  base_url: vault:secret/todogate#api_base\n",
	})

	cfg, err := load("consumer", root, fakeSecrets{"vault:secret/todogate#api_base": "http://vaulted:8000"})
	require.NoError(t, err)
	assert.Equal(t, "http://vaulted:8000", cfg.Upstream.BaseURL)

	_, err = load("consumer", root, fakeSecrets{})
	assert.ErrorContains(t, err, "upstream.base_url")
}

func TestValidationNamesKeys(t *testing.T) {
	t.Setenv("INTERNAL_API_BASE", "")
	root := writeConf(t, map[string]string{
		"global.yaml": "upstream:\n  base_url: not a url\nlog:\n  level: loud\n",
	})

	_, err := load("consumer", root, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upstream.base_url")
	assert.Contains(t, err.Error(), "log.level")
}

func TestDotEnvLoaded(t *testing.T) {
	t.Setenv("INTERNAL_API_BASE", "")
	const key = "TODOGATE_SITE__TITLE"
	require.NoError(t, os.Unsetenv(key))
	t.Cleanup(func() { _ = os.Unsetenv(key) })

	root := writeConf(t, map[string]string{".env": key + "=From Dotenv\n"})
	cfg, err := load("consumer", root, nil)
	require.NoError(t, err)
	assert.Equal(t, "From Dotenv", cfg.Site.Title)
}
