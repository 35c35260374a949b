// Package cache provides a bounded in-memory store with LRU eviction,
// per-entry TTL expiry, and regex-based bulk invalidation.
package cache

import (
	"container/list"
	"regexp"
	"sync"
	"time"
)

// Cache is a string-keyed in-memory cache with LRU eviction, TTL expiry,
// and built-in singleflight for concurrent loads.
type Cache[V any] struct {
	mu         sync.Mutex
	items      map[string]*list.Element
	evictList  *list.List
	maxEntries int
	defaultTTL time.Duration
	stats      Stats

	// singleflight: in-progress loads keyed by cache key
	inflight map[string]*call[V]
}

type entry[V any] struct {
	key       string
	value     V
	createdAt time.Time
	expiresAt time.Time
}

type call[V any] struct {
	wg  sync.WaitGroup
	val V
	err error
}

// New creates a cache with the given max entries and default TTL.
func New[V any](maxEntries int, defaultTTL time.Duration) *Cache[V] {
	if maxEntries <= 0 {
		maxEntries = 1000
	}
	return &Cache[V]{
		items:      make(map[string]*list.Element),
		evictList:  list.New(),
		maxEntries: maxEntries,
		defaultTTL: defaultTTL,
		inflight:   make(map[string]*call[V]),
	}
}

// Get retrieves a value from the cache. Returns the value and true if
// found and not expired, or the zero value and false otherwise. Expired
// entries are removed on access.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		c.stats.Misses++
		var zero V
		return zero, false
	}

	e := el.Value.(*entry[V])
	if time.Now().After(e.expiresAt) {
		c.removeLocked(el)
		c.stats.Misses++
		var zero V
		return zero, false
	}

	c.evictList.MoveToFront(el)
	c.stats.Hits++
	return e.value, true
}

// GetWithAge retrieves a value and its age. Returns the value, the time
// since it was cached, and true if found and not expired.
func (c *Cache[V]) GetWithAge(key string) (V, time.Duration, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		c.stats.Misses++
		var zero V
		return zero, 0, false
	}

	e := el.Value.(*entry[V])
	now := time.Now()
	if now.After(e.expiresAt) {
		c.removeLocked(el)
		c.stats.Misses++
		var zero V
		return zero, 0, false
	}

	c.evictList.MoveToFront(el)
	c.stats.Hits++
	return e.value, now.Sub(e.createdAt), true
}

// Set stores a value in the cache with the default TTL.
func (c *Cache[V]) Set(key string, value V) {
	c.SetWithTTL(key, value, c.defaultTTL)
}

// SetWithTTL stores a value in the cache with a custom TTL. If the cache
// is at capacity the least-recently-accessed entry is evicted first.
func (c *Cache[V]) SetWithTTL(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	if el, ok := c.items[key]; ok {
		c.evictList.MoveToFront(el)
		e := el.Value.(*entry[V])
		e.value = value
		e.createdAt = now
		e.expiresAt = now.Add(ttl)
		return
	}

	e := &entry[V]{
		key:       key,
		value:     value,
		createdAt: now,
		expiresAt: now.Add(ttl),
	}
	el := c.evictList.PushFront(e)
	c.items[key] = el

	for c.evictList.Len() > c.maxEntries {
		c.evictOldestLocked()
	}
}

// GetOrLoad returns the cached value for key, or calls loadFn to populate it.
// Concurrent calls for the same key share a single load (singleflight).
func (c *Cache[V]) GetOrLoad(key string, loadFn func() (V, error)) (V, error) {
	return c.GetOrLoadTTL(key, c.defaultTTL, loadFn)
}

// GetOrLoadTTL is GetOrLoad with an explicit TTL for the stored value.
func (c *Cache[V]) GetOrLoadTTL(key string, ttl time.Duration, loadFn func() (V, error)) (V, error) {
	// Fast path: check cache.
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	// Singleflight: check if another goroutine is already loading.
	c.mu.Lock()
	if cl, ok := c.inflight[key]; ok {
		c.mu.Unlock()
		cl.wg.Wait()
		if cl.err != nil {
			return cl.val, cl.err
		}
		// The loading goroutine already cached the result; try to get it.
		if v, ok := c.Get(key); ok {
			return v, nil
		}
		return cl.val, nil
	}

	cl := &call[V]{}
	cl.wg.Add(1)
	c.inflight[key] = cl
	c.mu.Unlock()

	// Execute the load function outside the lock.
	cl.val, cl.err = loadFn()
	if cl.err == nil {
		c.SetWithTTL(key, cl.val, ttl)
	}
	cl.wg.Done()

	c.mu.Lock()
	delete(c.inflight, key)
	c.mu.Unlock()

	return cl.val, cl.err
}

// Invalidate removes a single key from the cache.
func (c *Cache[V]) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		c.removeLocked(el)
	}
}

// InvalidateFunc removes all entries for which predicate returns true
// and reports how many were removed.
func (c *Cache[V]) InvalidateFunc(predicate func(string) bool) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for key, el := range c.items {
		if predicate(key) {
			c.removeLocked(el)
			n++
		}
	}
	return n
}

// InvalidatePattern removes all entries whose key matches the regex and
// reports how many were removed.
func (c *Cache[V]) InvalidatePattern(re *regexp.Regexp) int {
	return c.InvalidateFunc(re.MatchString)
}

// Flush removes all entries and reports how many were removed.
func (c *Cache[V]) Flush() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := len(c.items)
	c.items = make(map[string]*list.Element)
	c.evictList.Init()
	return n
}

// Len returns the number of entries in the cache.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Stats returns a snapshot of cache statistics.
func (c *Cache[V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.stats
	s.Entries = len(c.items)
	if total := s.Hits + s.Misses; total > 0 {
		s.HitRate = float64(s.Hits) / float64(total)
	}
	return s
}

// ResetStats zeroes the hit/miss/eviction counters.
func (c *Cache[V]) ResetStats() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats = Stats{}
}

func (c *Cache[V]) removeLocked(el *list.Element) {
	e := el.Value.(*entry[V])
	delete(c.items, e.key)
	c.evictList.Remove(el)
}

func (c *Cache[V]) evictOldestLocked() {
	el := c.evictList.Back()
	if el == nil {
		return
	}
	c.removeLocked(el)
	c.stats.Evictions++
}
