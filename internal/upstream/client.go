// internal/upstream/client.go
//
// Authenticated client for the external to-do API.
//
// Context
// -------
// Every page render and every form relay talks to the same backend.  The
// process builds one Client at boot and hands it to the gate, the relay, and
// the page components.  Per-request credentials are attached with Bind, which
// returns a Caller carrying the browser's session token.
//
// Notes
// -----
//   - Transport comes from go-cleanhttp (pooled, no shared default client).
//   - Only the `sid` cookie is forwarded.  The backend reads nothing else.
//   - No retries.  A failed call is reported once and the caller decides.
//   - The request id from requestinfo travels as X-Request-Id.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"go.uber.org/zap"

	"github.com/yanizio/todogate/internal/metrics"
	"github.com/yanizio/todogate/internal/requestinfo"
)

// SessionCookie is the cookie name the backend issues and reads.
const SessionCookie = "sid"

// maxBody caps how much of a response body is decoded.
const maxBody = 1 << 20

// Client is safe for concurrent use.  Zero value is invalid.
type Client struct {
	base string
	hc   *http.Client
}

// New returns a Client for baseURL (e.g. "http://api:8000") with a pooled
// transport and the given per-call timeout.
func New(baseURL string, timeout time.Duration) (*Client, error) {
	hc := cleanhttp.DefaultPooledClient()
	hc.Timeout = timeout
	return NewWithHTTPClient(baseURL, hc)
}

// NewWithHTTPClient lets tests and callers supply their own *http.Client.
// Redirects from the backend are never followed.
func NewWithHTTPClient(baseURL string, hc *http.Client) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("upstream: parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return nil, fmt.Errorf("upstream: base url %q must be absolute http(s)", baseURL)
	}
	cp := *hc
	cp.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	return &Client{base: strings.TrimRight(u.String(), "/"), hc: &cp}, nil
}

// BaseURL reports the configured backend address.
func (c *Client) BaseURL() string { return c.base }

// Bind returns a Caller that forwards token as the `sid` cookie.  An empty
// token is allowed; the backend then answers 401 where a session is needed.
func (c *Client) Bind(token string) *Caller {
	return &Caller{c: c, token: token}
}

// LoginResult carries the session cookie issued by a successful login.
type LoginResult struct {
	Session *http.Cookie
}

// Login posts credentials.  Non-200 answers come back as *StatusError;
// a 200 without a `sid` cookie returns ErrNoSession.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	body := map[string]string{"username": username, "password": password}
	resp, err := c.do(ctx, "login", http.MethodPost, "/api/login", "", body)
	if err != nil {
		return nil, err
	}
	defer drain(resp)

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Op: "login", Code: resp.StatusCode}
	}
	for _, ck := range resp.Cookies() {
		if ck.Name == SessionCookie && ck.Value != "" {
			return &LoginResult{Session: ck}, nil
		}
	}
	return nil, ErrNoSession
}

// Signup files an access request.  No session is involved.
func (c *Client) Signup(ctx context.Context, in SignupInput) error {
	resp, err := c.do(ctx, "signup", http.MethodPost, "/api/signup", "", in)
	if err != nil {
		return err
	}
	defer drain(resp)
	return expect2xx("signup", resp)
}

// do issues one request and records metrics.  The caller owns resp.Body.
func (c *Client) do(ctx context.Context, op, method, path, token string, body any) (*http.Response, error) {
	var rdr io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("upstream %s: encode body: %w", op, err)
		}
		rdr = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, rdr)
	if err != nil {
		return nil, fmt.Errorf("upstream %s: build request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	}
	if id := requestinfo.ID(ctx); id != "" {
		req.Header.Set("X-Request-Id", id)
	}

	start := time.Now()
	resp, err := c.hc.Do(req)
	metrics.UpstreamDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues(op, "error").Inc()
		zap.S().Debugw("upstream call failed", "op", op, "err", err)
		return nil, fmt.Errorf("upstream %s: %w", op, err)
	}
	metrics.UpstreamRequests.WithLabelValues(op, strconv.Itoa(resp.StatusCode)).Inc()
	return resp, nil
}

// drain discards what is left of the body so the connection can be reused.
func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBody))
	_ = resp.Body.Close()
}

func expect2xx(op string, resp *http.Response) error {
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Op: op, Code: resp.StatusCode}
	}
	return nil
}

func decode(op string, resp *http.Response, dst any) error {
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBody)).Decode(dst); err != nil {
		return fmt.Errorf("upstream %s: decode: %w", op, err)
	}
	return nil
}
