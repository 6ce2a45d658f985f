package gate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yanizio/todogate/internal/upstream"
)

func ptr(b bool) *bool { return &b }

func TestClassifyPriority(t *testing.T) {
	cases := []struct {
		name   string
		id     *upstream.Identity
		policy Policy
		want   State
	}{
		{"nil is anonymous", nil, ConsumerPolicy, Anonymous},
		{"admin on consumer", &upstream.Identity{IsAdmin: true}, ConsumerPolicy, RoleMismatch},
		{"admin on consumer outranks everything", &upstream.Identity{IsAdmin: true, MustChangePassword: true, EmailVerified: ptr(false)}, ConsumerPolicy, RoleMismatch},
		{"user on admin", &upstream.Identity{IsAdmin: false}, AdminPolicy, RoleMismatch},
		{"password outranks verification", &upstream.Identity{MustChangePassword: true, EmailVerified: ptr(false)}, ConsumerPolicy, PasswordChangeRequired},
		{"explicit unverified", &upstream.Identity{EmailVerified: ptr(false)}, ConsumerPolicy, VerificationRequired},
		{"absent verification flag passes", &upstream.Identity{}, ConsumerPolicy, Authorized},
		{"verified consumer", &upstream.Identity{EmailVerified: ptr(true)}, ConsumerPolicy, Authorized},
		{"admin ignores verification", &upstream.Identity{IsAdmin: true, EmailVerified: ptr(false)}, AdminPolicy, Authorized},
		{"admin must change password", &upstream.Identity{IsAdmin: true, MustChangePassword: true}, AdminPolicy, PasswordChangeRequired},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.id, tc.policy))
		})
	}
}

func newGate(t *testing.T, p Policy, h http.HandlerFunc) *Gate {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := upstream.NewWithHTTPClient(srv.URL, srv.Client())
	require.NoError(t, err)
	return New(c, "test", p)
}

func TestEvaluateForwardsTokenAndClassifies(t *testing.T) {
	g := newGate(t, ConsumerPolicy, func(w http.ResponseWriter, r *http.Request) {
		ck, err := r.Cookie("sid")
		if err != nil || ck.Value != "tok" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"id":7,"username":"ann","is_admin":false,"must_change_password":false,"email_verified":true}`))
	})

	d := g.Evaluate(context.Background(), "tok")
	assert.Equal(t, Authorized, d.State)
	assert.True(t, d.Authorized())
	assert.Equal(t, "ann", d.Username())

	d = g.Evaluate(context.Background(), "")
	assert.Equal(t, Anonymous, d.State)
	assert.False(t, d.SignedIn())
	assert.Nil(t, d.Identity)
}

func TestEvaluateFailsClosed(t *testing.T) {
	g := newGate(t, AdminPolicy, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	})
	assert.Equal(t, Anonymous, g.Evaluate(context.Background(), "tok").State)

	g = newGate(t, AdminPolicy, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	assert.Equal(t, Anonymous, g.Evaluate(context.Background(), "tok").State)
}

func TestEvaluateUnreachableBackend(t *testing.T) {
	c, err := upstream.New("http://127.0.0.1:1", 0)
	require.NoError(t, err)
	g := New(c, "test", ConsumerPolicy)
	assert.Equal(t, Anonymous, g.Evaluate(context.Background(), "tok").State)
}
