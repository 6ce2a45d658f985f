package relay

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/yanizio/todogate/internal/session"
	"github.com/yanizio/todogate/internal/upstream"
)

// Query codes shown by the account pages.
const (
	ErrPasswordMismatch = "pw_mismatch"
	ErrPasswordRejected = "pw_rejected"
	ErrCodeRejected     = "code_rejected"
	ErrSignupRejected   = "rejected"
)

// ChangePasswordInput is the account form.  The rules are checked before
// anything leaves the process.
type ChangePasswordInput struct {
	Old     string `form:"old_password"`
	New     string `form:"new_password" validate:"required"`
	Confirm string `form:"new_password2" validate:"eqfield=New"`
}

// PasswordMismatch is the outcome for input that failed the local rules.
func PasswordMismatch() Outcome { return withErr("/account", ErrPasswordMismatch) }

// ChangePassword relays an already validated form.  Success ends the
// session because the backend revokes it.
func (rl *Relay) ChangePassword(ctx context.Context, token string, in ChangePasswordInput) Outcome {
	if in.New == "" || in.New != in.Confirm {
		return PasswordMismatch()
	}
	if err := rl.client.Bind(token).ChangePassword(ctx, in.Old, in.New); err != nil {
		zap.S().Infow("change password rejected", "site", rl.site.Kind, "status", upstream.StatusOf(err))
		return withErr("/account", ErrPasswordRejected)
	}
	return Outcome{Path: "/", Cookies: []*http.Cookie{session.Clear()}}
}

// VerifyInput is the email-code form.
type VerifyInput struct {
	Code string `form:"code,trim"`
}

// VerifyEmail submits the code an admin handed out.
func (rl *Relay) VerifyEmail(ctx context.Context, token string, in VerifyInput) Outcome {
	if err := rl.client.Bind(token).VerifyEmailCode(ctx, in.Code); err != nil {
		zap.S().Infow("verification rejected", "status", upstream.StatusOf(err))
		return withErr("/account/verify", ErrCodeRejected)
	}
	return to("/")
}

// SignupInput is the access-request form.
type SignupInput struct {
	Username string `form:"username"`
	Email    string `form:"email"`
	Password string `form:"password"`
}

// Signup files an access request.
func (rl *Relay) Signup(ctx context.Context, in SignupInput) Outcome {
	err := rl.client.Signup(ctx, upstream.SignupInput{
		Username: in.Username,
		Email:    in.Email,
		Password: in.Password,
	})
	if err != nil {
		zap.S().Infow("signup rejected", "status", upstream.StatusOf(err))
		return withErr("/signup", ErrSignupRejected)
	}
	return to("/")
}

// Logout forwards the token and clears it whatever the backend says.
func (rl *Relay) Logout(ctx context.Context, token string) Outcome {
	if err := rl.client.Bind(token).Logout(ctx); err != nil {
		zap.S().Debugw("logout call failed", "err", err)
	}
	return Outcome{Path: "/", Cookies: []*http.Cookie{session.Clear()}}
}
