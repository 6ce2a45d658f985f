// internal/relay/login.go
//
// Login as an explicit state machine.
//
//	submitted ──login ok──▶ token-issued ──role ok──▶ identity-confirmed
//	    │                        │
//	    └──login failed──▶ rejected   └──role wrong / re-check failed──▶ reverted
//
// The identity is always re-read with the new token.  The login answer's
// body is never trusted for the role.
package relay

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/yanizio/todogate/internal/metrics"
	"github.com/yanizio/todogate/internal/session"
	"github.com/yanizio/todogate/internal/upstream"
)

// LoginState is a node of the login flow.
type LoginState string

const (
	LoginSubmitted         LoginState = "submitted"
	LoginTokenIssued       LoginState = "token-issued"
	LoginIdentityConfirmed LoginState = "identity-confirmed"
	LoginReverted          LoginState = "reverted"
	LoginRejected          LoginState = "rejected"
)

// LoginInput is the sign-in form.
type LoginInput struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

// loginFlow carries one attempt through the machine.
type loginFlow struct {
	rl      *Relay
	state   LoginState
	issued  *http.Cookie
	outcome Outcome
}

// Login runs the flow and returns where the browser goes next.
func (rl *Relay) Login(ctx context.Context, in LoginInput) Outcome {
	f := rl.runLogin(ctx, in)
	metrics.LoginOutcomes.WithLabelValues(string(rl.site.Kind), string(f.state)).Inc()
	return f.outcome
}

func (rl *Relay) runLogin(ctx context.Context, in LoginInput) *loginFlow {
	f := &loginFlow{rl: rl, state: LoginSubmitted}

	res, err := rl.client.Login(ctx, in.Username, in.Password)
	if err != nil {
		f.reject(rejectCode(err))
		zap.S().Infow("login rejected", "site", rl.site.Kind, "status", upstream.StatusOf(err), "err", err)
		return f
	}
	f.state = LoginTokenIssued
	f.issued = res.Session

	id, err := rl.client.Bind(f.issued.Value).Me(ctx)
	switch {
	case err != nil:
		zap.S().Warnw("login identity re-check failed", "site", rl.site.Kind, "err", err)
		f.revert(ctx, rl.site.Unconfirmed)
	case id.IsAdmin != rl.site.Policy.RequireAdmin:
		zap.S().Infow("login role mismatch", "site", rl.site.Kind, "user", id.Username)
		f.revert(ctx, rl.site.Denied)
	default:
		f.confirm()
	}
	return f
}

// reject: the backend refused the credentials (or could not be reached).
func (f *loginFlow) reject(code session.LoginError) {
	f.state = LoginRejected
	f.outcome = Outcome{
		Path: "/",
		Cookies: []*http.Cookie{
			f.rl.site.Mailbox.Post(code, session.ErrorTTL),
			session.Clear(),
		},
	}
}

// revert undoes an issued token.  The logout is best effort.
func (f *loginFlow) revert(ctx context.Context, code session.LoginError) {
	if err := f.rl.client.Bind(f.issued.Value).Logout(ctx); err != nil {
		zap.S().Warnw("revert logout failed", "site", f.rl.site.Kind, "err", err)
	}
	ttl := session.ErrorTTL
	if code == f.rl.site.Denied {
		ttl = f.rl.site.DeniedTTL
	}
	f.state = LoginReverted
	f.outcome = Outcome{
		Path: "/",
		Cookies: []*http.Cookie{
			session.Clear(),
			f.rl.site.Mailbox.Post(code, ttl),
		},
	}
}

func (f *loginFlow) confirm() {
	f.state = LoginIdentityConfirmed
	f.outcome = Outcome{
		Path: f.rl.site.AfterLogin,
		Cookies: []*http.Cookie{
			session.Issue(f.issued),
			f.rl.site.Mailbox.Clear(),
		},
	}
}

// rejectCode maps a login failure to the mailbox code.
func rejectCode(err error) session.LoginError {
	if errors.Is(err, upstream.ErrNoSession) {
		return session.ErrUpstream
	}
	switch upstream.StatusOf(err) {
	case http.StatusLocked:
		return session.ErrLocked
	case http.StatusUnauthorized:
		return session.ErrInvalid
	case http.StatusNotFound:
		return session.ErrNotFound
	}
	return session.ErrUpstream
}
