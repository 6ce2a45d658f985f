// internal/gate/state.go
//
// Access states and the pure classifier.
//
// Context
// -------
// A page render needs exactly one answer to "what may this browser see".
// Classify derives it from the identity snapshot and the site's policy.
// Checks run in a fixed order and the first match wins, so a wrong-role
// account never reaches a later state however its other flags look.
package gate

import "github.com/yanizio/todogate/internal/upstream"

// State is the classified access level for one render.
type State string

const (
	Anonymous              State = "anonymous"
	RoleMismatch           State = "role-mismatch"
	PasswordChangeRequired State = "password-change-required"
	VerificationRequired   State = "verification-required"
	Authorized             State = "authorized"
)

// Policy is a site's authorization predicate.
type Policy struct {
	RequireAdmin         bool // admin console: true; consumer: false
	RequireVerifiedEmail bool // consumer only
}

var (
	ConsumerPolicy = Policy{RequireAdmin: false, RequireVerifiedEmail: true}
	AdminPolicy    = Policy{RequireAdmin: true, RequireVerifiedEmail: false}
)

// Classify maps an identity (nil when the backend did not confirm one) to a
// State under p.
func Classify(id *upstream.Identity, p Policy) State {
	switch {
	case id == nil:
		return Anonymous
	case id.IsAdmin != p.RequireAdmin:
		return RoleMismatch
	case id.MustChangePassword:
		return PasswordChangeRequired
	case p.RequireVerifiedEmail && id.EmailVerified != nil && !*id.EmailVerified:
		return VerificationRequired
	}
	return Authorized
}
