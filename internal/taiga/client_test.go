package taiga

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"
)

// newTestClient builds a client against a mock upstream.
func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	pool := NewPool(PoolConfig{})
	t.Cleanup(func() { pool.Close(context.Background(), time.Second) })

	c := NewClient(ClientConfig{BaseURL: srv.URL, Timeout: 5 * time.Second}, pool)
	return c, srv
}

// withSession installs a long-lived session so requests carry a token.
func withSession(c *Client) {
	c.tokens.SetSession(Session{
		AccessToken:  "test-token",
		RefreshToken: "test-refresh",
		ExpiresAt:    time.Now().Add(time.Hour),
	})
}

func TestClient_Request_BearerToken(t *testing.T) {
	var gotAuth string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]int{"id": 1})
	}))
	withSession(c)

	raw, err := c.Request(context.Background(), "GET", "/projects/1", nil, nil)
	if err != nil {
		t.Fatalf("Request: %v", err)
	}
	if gotAuth != "Bearer test-token" {
		t.Errorf("Authorization = %q; want Bearer test-token", gotAuth)
	}
	if string(raw) != "{\"id\":1}\n" && string(raw) != "{\"id\":1}" {
		t.Errorf("body = %q", raw)
	}
}

func TestClient_ErrorMapping(t *testing.T) {
	cases := []struct {
		status int
		want   Kind
	}{
		{http.StatusUnauthorized, KindUnauthenticated},
		{http.StatusForbidden, KindPermissionDenied},
		{http.StatusNotFound, KindNotFound},
		{http.StatusConflict, KindConflict},
		{http.StatusBadRequest, KindInvalidInput},
		{http.StatusUnprocessableEntity, KindInvalidInput},
		{http.StatusTooManyRequests, KindRateLimited},
		{http.StatusInternalServerError, KindTransient},
		{http.StatusBadGateway, KindTransient},
		{http.StatusServiceUnavailable, KindTransient},
	}
	for _, tc := range cases {
		c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(tc.status)
		}))
		withSession(c)

		_, err := c.Request(context.Background(), "GET", "/projects", nil, nil)
		if KindOf(err) != tc.want {
			t.Errorf("status %d: kind = %v; want %v", tc.status, KindOf(err), tc.want)
		}
	}
}

func TestClient_401ClearsToken(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	withSession(c)

	_, err := c.Request(context.Background(), "GET", "/projects", nil, nil)
	if KindOf(err) != KindUnauthenticated {
		t.Fatalf("kind = %v; want unauthenticated", KindOf(err))
	}
	if ok, _ := c.Tokens().Status(); ok {
		t.Fatal("token cache should be cleared after a 401")
	}
}

func TestClient_422FieldDetail(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]any{
			"_error_message": "validation failed",
			"subject":        []string{"This field is required."},
		})
	}))
	withSession(c)

	_, err := c.Request(context.Background(), "POST", "/userstories", nil, map[string]any{})
	var te *Error
	if !errors.As(err, &te) {
		t.Fatalf("err = %T; want *Error", err)
	}
	if te.Kind != KindInvalidInput {
		t.Errorf("kind = %v; want invalid_input", te.Kind)
	}
	if te.Detail == "" || te.Detail != "subject: This field is required." {
		t.Errorf("detail = %q; want field path", te.Detail)
	}
}

func TestClient_429RetryAfter(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Retry-After", "3")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	withSession(c)

	_, err := c.Request(context.Background(), "GET", "/projects", nil, nil)
	if KindOf(err) != KindRateLimited {
		t.Fatalf("kind = %v; want rate_limited", KindOf(err))
	}
	if got := RetryAfterOf(err); got != 3*time.Second {
		t.Errorf("RetryAfter = %v; want 3s", got)
	}
}

func TestClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(time.Second)
	}))
	defer srv.Close()

	pool := NewPool(PoolConfig{})
	defer pool.Close(context.Background(), time.Second)
	c := NewClient(ClientConfig{BaseURL: srv.URL, Timeout: 50 * time.Millisecond}, pool)
	withSession(c)

	_, err := c.Request(context.Background(), "GET", "/projects", nil, nil)
	if KindOf(err) != KindTimeout {
		t.Fatalf("kind = %v; want timeout", KindOf(err))
	}
}

func TestClient_TransportFailure(t *testing.T) {
	pool := NewPool(PoolConfig{})
	defer pool.Close(context.Background(), time.Second)
	// Port 0 never accepts.
	c := NewClient(ClientConfig{BaseURL: "http://127.0.0.1:0", Timeout: time.Second}, pool)
	withSession(c)

	_, err := c.Request(context.Background(), "GET", "/projects", nil, nil)
	if KindOf(err) != KindTransient {
		t.Fatalf("kind = %v; want transient", KindOf(err))
	}
}

func TestClient_Login(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth" {
			t.Errorf("path = %s; want /auth", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "" {
			t.Error("login must not carry a bearer token")
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["type"] != "normal" || body["username"] != "alice" {
			t.Errorf("login body = %v", body)
		}
		json.NewEncoder(w).Encode(AuthInfo{
			ID: 7, Username: "alice", AuthToken: "tok", Refresh: "ref",
		})
	}))

	info, err := c.Login(context.Background(), "alice", "s3cret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if info.ID != 7 || info.AuthToken != "tok" {
		t.Errorf("info = %+v", info)
	}
	if ok, _ := c.Tokens().Status(); !ok {
		t.Fatal("session should be installed after login")
	}
}

func TestClient_RefreshSession(t *testing.T) {
	var refreshCalls atomic.Int32
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/refresh":
			refreshCalls.Add(1)
			var body map[string]string
			json.NewDecoder(r.Body).Decode(&body)
			if body["refresh"] != "old-refresh" {
				t.Errorf("refresh body = %v", body)
			}
			json.NewEncoder(w).Encode(map[string]string{
				"auth_token": "new-access", "refresh": "new-refresh",
			})
		default:
			if r.Header.Get("Authorization") != "Bearer new-access" {
				t.Errorf("Authorization = %q after refresh", r.Header.Get("Authorization"))
			}
			w.Write([]byte(`[]`))
		}
	}))
	c.tokens.SetSession(Session{
		AccessToken:  "old-access",
		RefreshToken: "old-refresh",
		ExpiresAt:    time.Now().Add(30 * time.Second), // below threshold
	})

	if _, err := c.Request(context.Background(), "GET", "/projects", nil, nil); err != nil {
		t.Fatalf("Request: %v", err)
	}
	if n := refreshCalls.Load(); n != 1 {
		t.Fatalf("refresh calls = %d; want 1", n)
	}
}

func TestClient_QueryEncoding(t *testing.T) {
	var gotQuery url.Values
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`[]`))
	}))
	withSession(c)

	q := url.Values{"project": {"7"}, "status": {"3"}}
	if _, err := c.Request(context.Background(), "GET", "/userstories", q, nil); err != nil {
		t.Fatal(err)
	}
	if gotQuery.Get("project") != "7" || gotQuery.Get("status") != "3" {
		t.Errorf("query = %v", gotQuery)
	}
}

func TestClient_NoContent(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	withSession(c)

	raw, err := c.Request(context.Background(), "DELETE", "/projects/1", nil, nil)
	if err != nil {
		t.Fatalf("Request: %v", err)
	}
	if string(raw) != "null" {
		t.Errorf("body = %q; want null", raw)
	}
}
