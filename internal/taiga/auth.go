package taiga

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultRefreshThreshold is how long before expiry a proactive token
// refresh is triggered.
const DefaultRefreshThreshold = 5 * time.Minute

// fallbackSessionLifetime caps a session whose token carries no
// decodable exp claim.
const fallbackSessionLifetime = 8 * time.Hour

// Session holds the current auth tokens and their validity window.
type Session struct {
	AccessToken  string
	RefreshToken string
	IssuedAt     time.Time
	ExpiresAt    time.Time // zero means non-expiring
}

// RefreshFunc exchanges a refresh token for a new session.
type RefreshFunc func(ctx context.Context, refreshToken string) (Session, error)

// TokenSource is a single-entry, thread-safe holder for the current
// bearer token. Tokens within the refresh threshold of expiry are
// refreshed proactively; concurrent callers coalesce onto one refresh.
type TokenSource struct {
	mu        sync.Mutex
	sess      Session
	static    string // pre-issued token, never refreshed
	threshold time.Duration
	refresh   RefreshFunc
	group     singleflight.Group
}

// NewTokenSource creates a token source. A non-empty staticToken
// bypasses the refresh lifecycle entirely.
func NewTokenSource(staticToken string, threshold time.Duration, refresh RefreshFunc) *TokenSource {
	if threshold <= 0 {
		threshold = DefaultRefreshThreshold
	}
	return &TokenSource{
		static:    staticToken,
		threshold: threshold,
		refresh:   refresh,
	}
}

// SetSession installs a new session, e.g. after login. The expiry is
// taken from the session, or decoded from the JWT exp claim when unset;
// an opaque token gets a conservative fallback lifetime.
func (ts *TokenSource) SetSession(sess Session) {
	if sess.ExpiresAt.IsZero() && sess.AccessToken != "" {
		if exp, ok := jwtExpiry(sess.AccessToken); ok {
			sess.ExpiresAt = exp
		} else {
			sess.ExpiresAt = time.Now().Add(fallbackSessionLifetime)
		}
	}
	if sess.IssuedAt.IsZero() {
		sess.IssuedAt = time.Now()
	}
	ts.mu.Lock()
	ts.sess = sess
	ts.mu.Unlock()
}

// Clear drops the current session. Subsequent Token calls fail with
// an unauthenticated error until a new session is set.
func (ts *TokenSource) Clear() {
	ts.mu.Lock()
	ts.sess = Session{}
	ts.mu.Unlock()
}

// Status reports whether a token is held and when it expires. The
// expiry pointer is nil for static or non-expiring tokens.
func (ts *TokenSource) Status() (authenticated bool, expiresAt *time.Time) {
	if ts.static != "" {
		return true, nil
	}
	ts.mu.Lock()
	defer ts.mu.Unlock()
	if ts.sess.AccessToken == "" {
		return false, nil
	}
	if ts.sess.ExpiresAt.IsZero() {
		return true, nil
	}
	exp := ts.sess.ExpiresAt
	return true, &exp
}

// Token returns a valid bearer token, refreshing proactively when the
// remaining lifetime is below the threshold. If the refresh fails but
// the old token is still within its absolute validity, the old token is
// returned; an expired, unrefreshable token surfaces as unauthenticated.
func (ts *TokenSource) Token(ctx context.Context) (string, error) {
	if ts.static != "" {
		return ts.static, nil
	}

	ts.mu.Lock()
	sess := ts.sess
	ts.mu.Unlock()

	if sess.AccessToken == "" {
		return "", NewError(KindUnauthenticated, "not authenticated: call taiga_auth_login first")
	}
	if sess.ExpiresAt.IsZero() || time.Until(sess.ExpiresAt) > ts.threshold {
		return sess.AccessToken, nil
	}

	return ts.refreshToken(ctx, sess)
}

// refreshToken performs one coalesced refresh. All concurrent callers
// racing on the threshold share a single upstream refresh request.
func (ts *TokenSource) refreshToken(ctx context.Context, stale Session) (string, error) {
	v, err, _ := ts.group.Do("refresh", func() (any, error) {
		// Another caller may have completed the refresh already.
		ts.mu.Lock()
		cur := ts.sess
		ts.mu.Unlock()
		if cur.AccessToken != "" && !cur.ExpiresAt.IsZero() &&
			time.Until(cur.ExpiresAt) > ts.threshold {
			return cur.AccessToken, nil
		}

		if ts.refresh == nil || cur.RefreshToken == "" {
			return "", NewError(KindUnauthenticated, "no refresh token available")
		}

		next, err := ts.refresh(ctx, cur.RefreshToken)
		if err != nil {
			return "", err
		}
		ts.SetSession(next)
		return next.AccessToken, nil
	})
	if err != nil {
		// Fall back to the stale token while it is still valid.
		if time.Now().Before(stale.ExpiresAt) {
			return stale.AccessToken, nil
		}
		if KindOf(err) == KindUnauthenticated {
			return "", err
		}
		return "", &Error{Kind: KindUnauthenticated, Message: "token expired and refresh failed", Err: err}
	}
	return v.(string), nil
}

// jwtExpiry decodes the exp claim from a JWT access token. Taiga's auth
// responses carry no expires_in, so expiry is read from the token itself.
func jwtExpiry(token string) (time.Time, bool) {
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return time.Time{}, false
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return time.Time{}, false
	}
	var claims struct {
		Exp int64 `json:"exp"`
	}
	if err := json.Unmarshal(payload, &claims); err != nil || claims.Exp == 0 {
		return time.Time{}, false
	}
	return time.Unix(claims.Exp, 0), true
}
