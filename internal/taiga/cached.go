package taiga

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/taigaio/taiga-mcp/internal/cache"
)

// CachedClient wraps a Doer with the endpoint policy table: cacheable
// reads are served from the memory cache, successful writes invalidate
// every key scoped to the affected project and entity.
type CachedClient struct {
	inner   Doer
	cache   *cache.Cache[json.RawMessage]
	policy  *Policy
	enabled bool
}

// NewCachedClient creates the caching decorator. With enabled=false it
// degrades to a passthrough (writes still invalidate nothing because
// nothing is ever stored).
func NewCachedClient(inner Doer, policy *Policy, maxEntries int, defaultTTL time.Duration, enabled bool) *CachedClient {
	return &CachedClient{
		inner:   inner,
		cache:   cache.New[json.RawMessage](maxEntries, defaultTTL),
		policy:  policy,
		enabled: enabled,
	}
}

// Request implements Doer.
func (cc *CachedClient) Request(ctx context.Context, method, path string, query url.Values, body any) (json.RawMessage, error) {
	if method == http.MethodGet || method == http.MethodHead {
		ttl, cacheable := cc.policy.TTL(method, path)
		if !cacheable || !cc.enabled {
			return cc.inner.Request(ctx, method, path, query, body)
		}
		key := CacheKey(method, path, query)
		return cc.cache.GetOrLoadTTL(key, ttl, func() (json.RawMessage, error) {
			return cc.inner.Request(ctx, method, path, query, body)
		})
	}

	// Write: passthrough, then invalidate synchronously before
	// returning so later reads observe the miss.
	raw, err := cc.inner.Request(ctx, method, path, query, body)
	if err != nil {
		return nil, err
	}
	cc.invalidateForWrite(path, query, body, raw)
	return raw, nil
}

// Logout clears the session and drops identity-scoped cache entries.
func (cc *CachedClient) Logout(client *Client) {
	client.Logout()
	cc.cache.InvalidatePattern(identityPattern)
}

// Stats returns a snapshot of the cache counters.
func (cc *CachedClient) Stats() cache.Stats { return cc.cache.Stats() }

// ClearAll empties the cache and reports the number of removed entries.
func (cc *CachedClient) ClearAll() int { return cc.cache.Flush() }

// ClearProject removes every entry scoped to the given project.
func (cc *CachedClient) ClearProject(id int) int {
	return cc.cache.InvalidatePattern(projectPattern(strconv.Itoa(id)))
}

var identityPattern = regexp.MustCompile(`^GET /(users/me|memberships)(/|\?|$)`)

// projectPattern matches keys referencing a project either in the path
// (/projects/7/...) or as a query parameter (project=7).
func projectPattern(id string) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf(`(/projects/%s(/|\?|$)|[?&]project=%s(&|$))`, id, id))
}

// entityPattern matches keys referencing one entity by id, e.g.
// /userstories/123 or /userstories/123/....
func entityPattern(family, id string) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf(`/%s/%s(/|\?|$)`, regexp.QuoteMeta(family), id))
}

// invalidateForWrite drops every cache entry affected by a successful
// write: keys scoped to the write's project and keys referencing the
// written entity.
func (cc *CachedClient) invalidateForWrite(path string, query url.Values, body any, result json.RawMessage) {
	if family, id, ok := splitEntityPath(path); ok {
		cc.cache.InvalidatePattern(entityPattern(family, id))
		if family == "projects" {
			cc.cache.InvalidatePattern(projectPattern(id))
		}
	}
	if pid := writeProjectID(query, body, result); pid != "" {
		cc.cache.InvalidatePattern(projectPattern(pid))
	}
}

// splitEntityPath extracts the entity family and numeric id from a
// write path like /userstories/123 or /epics/5/related_userstories.
func splitEntityPath(path string) (family, id string, ok bool) {
	segs := strings.Split(strings.Trim(path, "/"), "/")
	for i := 0; i+1 < len(segs); i++ {
		if isDigits(segs[i+1]) {
			return segs[i], segs[i+1], true
		}
	}
	return "", "", false
}

// writeProjectID finds the project scope of a write: an explicit query
// parameter, a "project" field in the request body, or a "project"
// field in the upstream response (covers deletes and by-id updates).
func writeProjectID(query url.Values, body any, result json.RawMessage) string {
	if v := query.Get("project"); v != "" {
		return v
	}
	if m, ok := body.(map[string]any); ok {
		if v := numericField(m["project"]); v != "" {
			return v
		}
	}
	if len(result) > 0 {
		var resp struct {
			Project json.Number `json:"project"`
		}
		if err := json.Unmarshal(result, &resp); err == nil && resp.Project.String() != "" {
			return resp.Project.String()
		}
	}
	return ""
}

func numericField(v any) string {
	switch n := v.(type) {
	case float64:
		return strconv.FormatInt(int64(n), 10)
	case int:
		return strconv.Itoa(n)
	case json.Number:
		return n.String()
	case string:
		if isDigits(n) {
			return n
		}
	}
	return ""
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
