package taiga

import (
	"net/url"
	"regexp"
	"time"
)

// policyRule marks one endpoint family as cacheable with a TTL.
type policyRule struct {
	Family string
	Match  *regexp.Regexp // applied to the request path
	TTL    time.Duration
}

// Policy is the static endpoint policy table: which GET endpoints are
// cacheable and for how long. Listings of fast-moving entities (user
// stories, issues, tasks) are deliberately absent.
type Policy struct {
	rules []policyRule
}

// NewPolicy builds the policy table. overrides maps a family name to a
// replacement TTL (from the optional config overlay); unknown names are
// ignored.
func NewPolicy(overrides map[string]time.Duration) *Policy {
	rules := []policyRule{
		{"filters_data", regexp.MustCompile(`/filters_data$`), 30 * time.Minute},
		{"project_modules", regexp.MustCompile(`^/projects/\d+/modules$`), 30 * time.Minute},
		{"project_stats", regexp.MustCompile(`^/projects/\d+/(stats|issues_stats)$`), 5 * time.Minute},
		{"milestone_stats", regexp.MustCompile(`^/milestones/\d+/stats$`), 5 * time.Minute},
		{"users_me", regexp.MustCompile(`^/users/me$`), 10 * time.Minute},
		{"memberships", regexp.MustCompile(`^/memberships$`), 10 * time.Minute},
	}
	for i, r := range rules {
		if ttl, ok := overrides[r.Family]; ok && ttl > 0 {
			rules[i].TTL = ttl
		}
	}
	return &Policy{rules: rules}
}

// TTL returns the cache TTL for a request, and whether it is cacheable
// at all. Only GETs are ever cacheable.
func (p *Policy) TTL(method, path string) (time.Duration, bool) {
	if method != "GET" {
		return 0, false
	}
	for _, r := range p.rules {
		if r.Match.MatchString(path) {
			return r.TTL, true
		}
	}
	return 0, false
}

// CacheKey builds the canonical cache key for a request: method, path,
// and query parameters sorted bytewise with empty values dropped. The
// total ordering makes scope regexes over keys reliable.
func CacheKey(method, path string, query url.Values) string {
	canonical := url.Values{}
	for k, vs := range query {
		for _, v := range vs {
			if v != "" {
				canonical.Add(k, v)
			}
		}
	}
	// Encode sorts by key.
	return method + " " + path + "?" + canonical.Encode()
}
