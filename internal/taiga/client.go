// Package taiga implements the authenticated client for the Taiga REST
// API: token lifecycle, connection pooling, error mapping, and a
// caching decorator driven by a per-endpoint policy table.
package taiga

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Doer abstracts request execution so the caching decorator can wrap
// the plain client transparently.
type Doer interface {
	Request(ctx context.Context, method, path string, query url.Values, body any) (json.RawMessage, error)
}

// ClientConfig tunes the Taiga client.
type ClientConfig struct {
	BaseURL          string
	Timeout          time.Duration
	AuthToken        string // pre-issued token, bypasses password auth
	RefreshThreshold time.Duration
}

// AuthInfo is the payload of a successful /auth call.
type AuthInfo struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	AuthToken string `json:"auth_token"`
	Refresh   string `json:"refresh"`
}

// Client is the authenticated Taiga API client. It consults the token
// source before each request, posts through the session pool, and maps
// upstream failures to kind-bearing errors.
type Client struct {
	baseURL string
	http    *http.Client
	pool    *Pool
	tokens  *TokenSource
	timeout time.Duration
}

// NewClient creates a client that sends requests through pool.
func NewClient(cfg ClientConfig, pool *Pool) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Transport: pool},
		pool:    pool,
		timeout: cfg.Timeout,
	}
	c.tokens = NewTokenSource(cfg.AuthToken, cfg.RefreshThreshold, c.refreshSession)
	return c
}

// Tokens exposes the token source for status reporting.
func (c *Client) Tokens() *TokenSource { return c.tokens }

// Pool exposes the session pool for stats reporting.
func (c *Client) Pool() *Pool { return c.pool }

// Request performs one REST call and returns the decoded JSON body.
// Auth endpoints are the only paths that skip the bearer token.
func (c *Client) Request(ctx context.Context, method, path string, query url.Values, body any) (json.RawMessage, error) {
	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return nil, err
	}

	if !isAuthPath(path) {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	raw, err := c.do(req)
	if err != nil {
		if KindOf(err) == KindUnauthenticated {
			c.tokens.Clear()
		}
		return nil, err
	}
	return raw, nil
}

// Login authenticates with username and password and installs the
// resulting session.
func (c *Client) Login(ctx context.Context, username, password string) (*AuthInfo, error) {
	raw, err := c.Request(ctx, http.MethodPost, "/auth", nil, map[string]string{
		"type":     "normal",
		"username": username,
		"password": password,
	})
	if err != nil {
		return nil, err
	}
	var info AuthInfo
	if err := json.Unmarshal(raw, &info); err != nil {
		return nil, &Error{Kind: KindInternal, Message: "malformed auth response", Err: err}
	}
	c.tokens.SetSession(Session{
		AccessToken:  info.AuthToken,
		RefreshToken: info.Refresh,
	})
	return &info, nil
}

// Logout drops the current session. In-flight requests holding the old
// token are allowed to complete.
func (c *Client) Logout() {
	c.tokens.Clear()
}

// refreshSession exchanges a refresh token for a new session via
// /auth/refresh.
func (c *Client) refreshSession(ctx context.Context, refreshToken string) (Session, error) {
	raw, err := c.Request(ctx, http.MethodPost, "/auth/refresh", nil, map[string]string{
		"refresh": refreshToken,
	})
	if err != nil {
		return Session{}, err
	}
	var resp struct {
		AuthToken string `json:"auth_token"`
		Refresh   string `json:"refresh"`
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return Session{}, &Error{Kind: KindInternal, Message: "malformed refresh response", Err: err}
	}
	sess := Session{AccessToken: resp.AuthToken, RefreshToken: resp.Refresh}
	// Preserve the refresh token if the response omits one.
	if sess.RefreshToken == "" {
		sess.RefreshToken = refreshToken
	}
	return sess, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, &Error{Kind: KindInternal, Message: "marshal request body", Err: err}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, &Error{Kind: KindInternal, Message: "build request", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// do executes the request with the per-request timeout and maps the
// response to either a JSON body or a kind-bearing error.
func (c *Client) do(req *http.Request) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(req.Context(), c.timeout)
	defer cancel()
	req = req.WithContext(ctx)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, mapTransportError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		return nil, mapTransportError(err)
	}

	if resp.StatusCode >= 400 {
		return nil, errorFromStatus(resp.StatusCode, data, resp.Header)
	}
	if resp.StatusCode == http.StatusNoContent || len(data) == 0 {
		return json.RawMessage(`null`), nil
	}
	return json.RawMessage(data), nil
}

// mapTransportError classifies connection-level failures: deadlines are
// timeouts, everything else on the wire is transient.
func mapTransportError(err error) *Error {
	var te *Error
	if errors.As(err, &te) {
		return te
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindTimeout, Message: "request deadline exceeded", Err: err}
	}
	if errors.Is(err, context.Canceled) {
		return &Error{Kind: KindTimeout, Message: "request cancelled", Err: err}
	}
	var ue *url.Error
	if errors.As(err, &ue) && ue.Timeout() {
		return &Error{Kind: KindTimeout, Message: "request timed out", Err: err}
	}
	return &Error{Kind: KindTransient, Message: fmt.Sprintf("transport failure: %v", rootCause(err)), Err: err}
}

func rootCause(err error) error {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err
		}
		err = next
	}
}

func isAuthPath(path string) bool {
	return path == "/auth" || path == "/auth/refresh" || path == "/auth/register"
}
