package health

import (
	"sync"
	"time"
)

// ResultCache holds probe results keyed by entry identity for a bounded time.
// Results are never persisted: a newer probe of either tier overwrites an
// older one regardless of tier, and expired entries are removed lazily on
// read. It is safe for concurrent use by multiple goroutines.
type ResultCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	results map[string]Result
}

// NewResultCache creates an empty cache whose entries expire after ttl.
func NewResultCache(ttl time.Duration) *ResultCache {
	return &ResultCache{
		ttl:     ttl,
		now:     time.Now,
		results: make(map[string]Result),
	}
}

// Get returns the cached result for the identity. A result older than the
// expiry window is treated as absent and evicted.
func (c *ResultCache) Get(identity string) (Result, bool) {
	c.mu.RLock()
	result, ok := c.results[identity]
	c.mu.RUnlock()

	if !ok {
		return Result{}, false
	}

	if c.now().Sub(result.CheckedAt) > c.ttl {
		c.mu.Lock()
		// Re-check under the write lock in case a fresher probe landed.
		if current, ok := c.results[identity]; ok && c.now().Sub(current.CheckedAt) > c.ttl {
			delete(c.results, identity)
		}
		c.mu.Unlock()
		return Result{}, false
	}

	return result, true
}

// Put records a probe result for the identity, replacing any previous result
// of either tier.
func (c *ResultCache) Put(identity string, result Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results[identity] = result
}
