package view

import (
	"github.com/yanizio/todogate/internal/session"
	"github.com/yanizio/todogate/internal/upstream"
)

// Page names.  Each maps to templates/<site>/<name>.html or
// templates/shared/<name>.html.
const (
	PageSignIn           = "signin"
	PageNotice           = "notice"
	PagePasswordRequired = "password_required"
	PageVerifyRequired   = "verify_required"
	PageAccount          = "account"
	PageVerify           = "verify"
	PageSignup           = "signup"
	PageHome             = "home"
	PageConsole          = "console"
)

// SignIn is the anonymous view.  Error comes from the mailbox.
type SignIn struct {
	Error session.LoginError
}

// Notice is a heading plus one line, used for "sign in first" and denials.
type Notice struct {
	Heading  string
	Message  string
	SignInAt string // link target for "sign in", empty for none
	Logout   bool   // show a logout button
}

type Account struct {
	Username   string
	MustChange bool
	Err        string
}

type Verify struct {
	Username string
	Pending  bool
	Err      string
}

type Signup struct {
	SignedIn bool
	Username string
	Err      string
}

// Todos is the consumer home.  Priority and Status echo the active filter.
type Todos struct {
	Username   string
	Items      []upstream.Todo
	Priority   string
	Status     string
	LoadFailed bool
}

// Console is the admin page.
type Console struct {
	Username   string
	SentCode   string
	Requests   []upstream.SignupRequest
	Users      []upstream.User
	LoadFailed bool
}
