package vault

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const kvBody = `{
  "request_id": "r1",
  "lease_id": "",
  "renewable": false,
  "lease_duration": 0,
  "data": {
    "data": {"api_base": "http://api.internal:8000", "port": 8001},
    "metadata": {
      "created_time": "2025-01-01T00:00:00.000000Z",
      "custom_metadata": null,
      "deletion_time": "",
      "destroyed": false,
      "version": 1
    }
  },
  "wrap_info": null,
  "warnings": null,
  "auth": null
}`

func fakeVault(t *testing.T) (*Client, *int32) {
	t.Helper()
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/secret/data/todogate" || r.Header.Get("X-Vault-Token") != "t0k" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		atomic.AddInt32(&hits, 1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(kvBody))
	}))
	t.Cleanup(srv.Close)

	c, err := New(srv.URL, "t0k")
	require.NoError(t, err)
	return c, &hits
}

func TestParseRef(t *testing.T) {
	p, k, err := ParseRef("vault:secret/todogate#api_base")
	require.NoError(t, err)
	assert.Equal(t, "secret/todogate", p)
	assert.Equal(t, "api_base", k)

	for _, bad := range []string{"vault:secret/todogate", "vault:#key", "vault:secret/x#"} {
		_, _, err := ParseRef(bad)
		assert.ErrorIs(t, err, ErrBadRef, bad)
	}
}

func TestResolveReadsOncePerPath(t *testing.T) {
	c, hits := fakeVault(t)

	v, err := c.Resolve(context.Background(), "vault:secret/todogate#api_base")
	require.NoError(t, err)
	assert.Equal(t, "http://api.internal:8000", v)

	_, err = c.Resolve(context.Background(), "vault:secret/todogate#api_base")
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(hits))
}

func TestResolveErrors(t *testing.T) {
	c, _ := fakeVault(t)

	_, err := c.Resolve(context.Background(), "vault:secret/todogate#missing")
	assert.Error(t, err)

	_, err = c.Resolve(context.Background(), "vault:secret/todogate#port")
	assert.ErrorContains(t, err, "not a string")

	_, err = c.Resolve(context.Background(), "vault:secret/other#x")
	assert.Error(t, err)

	_, err = c.Resolve(context.Background(), "vault:secret#x")
	assert.ErrorIs(t, err, ErrBadRef)
}
