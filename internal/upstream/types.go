package upstream

import "time"

// Identity is the backend's answer to GET /api/me.  EmailVerified is a
// pointer because the field may be absent; only an explicit false matters.
type Identity struct {
	ID                 int64  `json:"id"`
	Username           string `json:"username"`
	IsAdmin            bool   `json:"is_admin"`
	MustChangePassword bool   `json:"must_change_password"`
	EmailVerified      *bool  `json:"email_verified,omitempty"`
}

// Todo is one item of GET /api/todos.  CreatedAt is unix seconds.
type Todo struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Done      bool   `json:"done"`
	Priority  string `json:"priority"`
	CreatedAt int64  `json:"created_at"`
}

// Created converts CreatedAt to a time.Time.
func (t Todo) Created() time.Time { return time.Unix(t.CreatedAt, 0) }

// SignupRequest is one pending access request.
type SignupRequest struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	Status    string `json:"status"`
	CreatedAt int64  `json:"created_at"`
}

// User is a managed account as listed for admins.
type User struct {
	ID               int64   `json:"id"`
	Username         string  `json:"username"`
	Email            *string `json:"email"`
	IsAdmin          bool    `json:"is_admin"`
	Locked           bool    `json:"locked"`
	FailedLoginCount int     `json:"failed_login_count"`
}

// SignupInput is the body of POST /api/signup.
type SignupInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Priority values understood by the backend.
const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"
)
