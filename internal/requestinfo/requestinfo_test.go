package requestinfo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(req *http.Request) (*RequestInfo, *httptest.ResponseRecorder) {
	var got *RequestInfo
	h := Enrich(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = FromContext(r.Context())
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return got, rr
}

func TestEnrichKeepsSaneRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "abc-123")

	got, rr := serve(req)
	require.NotNil(t, got)
	assert.Equal(t, "abc-123", got.ID)
	assert.Equal(t, "abc-123", rr.Header().Get(HeaderRequestID))
}

func TestEnrichMintsIDForJunk(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "has space")

	got, _ := serve(req)
	require.NotNil(t, got)
	_, err := uuid.Parse(got.ID)
	assert.NoError(t, err)
}

func TestClientIPPrefersForwardedFor(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "junk, 203.0.113.9, 10.0.0.1")
	req.RemoteAddr = "192.0.2.1:5555"

	got, _ := serve(req)
	require.NotNil(t, got)
	assert.Equal(t, "203.0.113.9", got.Geo.IP.String())
}

func TestParseUA(t *testing.T) {
	ua := parseUA("Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36")
	assert.Equal(t, "Chrome", ua.Browser)
	assert.Equal(t, "Desktop", ua.Device)
	assert.False(t, ua.IsBot)
}

func TestIDOutsideRequest(t *testing.T) {
	assert.Equal(t, "", ID(context.Background()))
}
