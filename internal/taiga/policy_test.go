package taiga

import (
	"net/url"
	"testing"
	"time"
)

func TestPolicy_TTL(t *testing.T) {
	p := NewPolicy(nil)

	cases := []struct {
		method, path string
		wantTTL      time.Duration
		cacheable    bool
	}{
		{"GET", "/userstories/filters_data", 30 * time.Minute, true},
		{"GET", "/issues/filters_data", 30 * time.Minute, true},
		{"GET", "/projects/7/modules", 30 * time.Minute, true},
		{"GET", "/projects/7/stats", 5 * time.Minute, true},
		{"GET", "/projects/7/issues_stats", 5 * time.Minute, true},
		{"GET", "/milestones/3/stats", 5 * time.Minute, true},
		{"GET", "/users/me", 10 * time.Minute, true},
		{"GET", "/memberships", 10 * time.Minute, true},
		// Fast-moving listings are never cached.
		{"GET", "/userstories", 0, false},
		{"GET", "/issues", 0, false},
		{"GET", "/projects", 0, false},
		{"GET", "/projects/7", 0, false},
		// Writes are never cacheable, whatever the path.
		{"POST", "/userstories/filters_data", 0, false},
		{"PATCH", "/projects/7/modules", 0, false},
	}
	for _, tc := range cases {
		ttl, ok := p.TTL(tc.method, tc.path)
		if ok != tc.cacheable || ttl != tc.wantTTL {
			t.Errorf("TTL(%s %s) = %v, %v; want %v, %v",
				tc.method, tc.path, ttl, ok, tc.wantTTL, tc.cacheable)
		}
	}
}

func TestPolicy_Overrides(t *testing.T) {
	p := NewPolicy(map[string]time.Duration{
		"filters_data": time.Minute,
		"unknown":      time.Hour, // ignored
	})

	ttl, ok := p.TTL("GET", "/userstories/filters_data")
	if !ok || ttl != time.Minute {
		t.Fatalf("TTL = %v, %v; want 1m, true", ttl, ok)
	}
	// Other families keep their defaults.
	ttl, _ = p.TTL("GET", "/users/me")
	if ttl != 10*time.Minute {
		t.Fatalf("users_me TTL = %v; want 10m", ttl)
	}
}

func TestCacheKey_Canonical(t *testing.T) {
	a := CacheKey("GET", "/userstories", url.Values{"project": {"7"}, "status": {"3"}})
	b := CacheKey("GET", "/userstories", url.Values{"status": {"3"}, "project": {"7"}})
	if a != b {
		t.Errorf("key order-sensitive: %q vs %q", a, b)
	}
	if a != "GET /userstories?project=7&status=3" {
		t.Errorf("key = %q", a)
	}
}

func TestCacheKey_DropsEmptyParams(t *testing.T) {
	a := CacheKey("GET", "/userstories", url.Values{"project": {"7"}, "milestone": {""}})
	b := CacheKey("GET", "/userstories", url.Values{"project": {"7"}})
	if a != b {
		t.Errorf("empty params should not affect the key: %q vs %q", a, b)
	}
}
