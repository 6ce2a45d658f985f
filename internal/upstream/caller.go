// internal/upstream/caller.go
//
// Session-bound calls.  One method per backend operation that needs the
// browser's `sid`.  Methods return typed values or an error; status errors
// are *StatusError so callers can branch with StatusOf.
package upstream

import (
	"context"
	"fmt"
	"net/http"
)

// Caller is a Client bound to one session token.  Cheap; make one per request.
type Caller struct {
	c     *Client
	token string
}

// Token returns the forwarded session token.
func (s *Caller) Token() string { return s.token }

// Me fetches the identity snapshot.  Anything but 200 is an error.
func (s *Caller) Me(ctx context.Context) (*Identity, error) {
	resp, err := s.c.do(ctx, "me", http.MethodGet, "/api/me", s.token, nil)
	if err != nil {
		return nil, err
	}
	defer drain(resp)
	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Op: "me", Code: resp.StatusCode}
	}
	var id Identity
	if err := decode("me", resp, &id); err != nil {
		return nil, err
	}
	return &id, nil
}

func (s *Caller) Logout(ctx context.Context) error {
	return s.post(ctx, "logout", "/api/logout", nil)
}

// ChangePassword sends the old and new password.
func (s *Caller) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	body := map[string]string{"old_password": oldPassword, "new_password": newPassword}
	return s.post(ctx, "change_password", "/api/change_password", body)
}

// VerifyEmailCode submits the code an admin handed out on approval.
func (s *Caller) VerifyEmailCode(ctx context.Context, code string) error {
	return s.post(ctx, "verify_email_code", "/api/verify_email_code", map[string]string{"code": code})
}

// Todos lists the caller's to-dos.
func (s *Caller) Todos(ctx context.Context) ([]Todo, error) {
	var out []Todo
	if err := s.getJSON(ctx, "todos", "/api/todos", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Caller) CreateTodo(ctx context.Context, title, priority string) error {
	body := map[string]string{"title": title, "priority": priority}
	return s.post(ctx, "todo_create", "/api/todos", body)
}

func (s *Caller) ToggleTodo(ctx context.Context, id int64) error {
	return s.post(ctx, "todo_toggle", fmt.Sprintf("/api/todos/%d/toggle", id), nil)
}

func (s *Caller) SetTodoPriority(ctx context.Context, id int64, priority string) error {
	return s.post(ctx, "todo_priority", fmt.Sprintf("/api/todos/%d/priority", id), map[string]string{"priority": priority})
}

func (s *Caller) DeleteTodo(ctx context.Context, id int64) error {
	return s.post(ctx, "todo_delete", fmt.Sprintf("/api/todos/%d/delete", id), nil)
}

// SignupRequests lists pending access requests (admin only).
func (s *Caller) SignupRequests(ctx context.Context) ([]SignupRequest, error) {
	var out []SignupRequest
	if err := s.getJSON(ctx, "signup_requests", "/api/admin/signup_requests?status=pending", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ApproveSignup approves request id and returns the verification code the
// backend generated, or "" when the answer carried none.
func (s *Caller) ApproveSignup(ctx context.Context, id int64) (string, error) {
	resp, err := s.c.do(ctx, "signup_approve", http.MethodPost, fmt.Sprintf("/api/admin/signup_requests/%d/approve", id), s.token, nil)
	if err != nil {
		return "", err
	}
	defer drain(resp)
	if err := expect2xx("signup_approve", resp); err != nil {
		return "", err
	}
	var body struct {
		VerificationCode string `json:"verification_code"`
	}
	// An empty or non-JSON body still means the approval went through.
	_ = decode("signup_approve", resp, &body)
	return body.VerificationCode, nil
}

func (s *Caller) RejectSignup(ctx context.Context, id int64) error {
	return s.post(ctx, "signup_reject", fmt.Sprintf("/api/admin/signup_requests/%d/reject", id), nil)
}

// Users lists managed accounts (admin only).
func (s *Caller) Users(ctx context.Context) ([]User, error) {
	var out []User
	if err := s.getJSON(ctx, "users", "/api/admin/users", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Caller) UnlockUser(ctx context.Context, id int64) error {
	return s.post(ctx, "user_unlock", fmt.Sprintf("/api/admin/users/%d/unlock", id), nil)
}

func (s *Caller) post(ctx context.Context, op, path string, body any) error {
	resp, err := s.c.do(ctx, op, http.MethodPost, path, s.token, body)
	if err != nil {
		return err
	}
	defer drain(resp)
	return expect2xx(op, resp)
}

func (s *Caller) getJSON(ctx context.Context, op, path string, dst any) error {
	resp, err := s.c.do(ctx, op, http.MethodGet, path, s.token, nil)
	if err != nil {
		return err
	}
	defer drain(resp)
	if err := expect2xx(op, resp); err != nil {
		return err
	}
	return decode(op, resp, dst)
}
