package pricing

import (
	"fmt"
	"sync"
	"time"

	"tokenworks/atlas/pkg/hardware"
)

// QuoteCache is a thread-safe TTL cache for live pricing quotes.
//
// Entries are keyed by (provider, hardware, region) and replaced whole
// on every Set; no entry is ever edited in place, so readers can never
// observe a partially updated quote. When the cache reaches max
// capacity it evicts the oldest entry.
//
// The clock is injectable so tests can drive expiry deterministically.
type QuoteCache struct {
	// entries maps cache keys to cached quotes
	entries map[string]cacheEntry

	// ttl is the time-to-live for entries (0 = never expire)
	ttl time.Duration

	// maxEntries bounds the cache size (0 = unlimited)
	maxEntries int

	// now is the clock, replaceable in tests
	now func() time.Time

	// mu protects concurrent access
	mu sync.RWMutex
}

type cacheEntry struct {
	quote    Quote
	storedAt time.Time
}

// NewQuoteCache creates a quote cache with the given TTL and size bound.
// A zero TTL disables expiry; a zero maxEntries means unlimited size.
func NewQuoteCache(ttl time.Duration, maxEntries int) *QuoteCache {
	return &QuoteCache{
		entries:    make(map[string]cacheEntry),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// SetClock replaces the cache's clock. For tests only; not safe to call
// concurrently with cache use.
func (c *QuoteCache) SetClock(now func() time.Time) {
	c.now = now
}

// Get returns the cached quote for the key if present and unexpired.
// The returned quote has its confidence downgraded to ConfidenceCached.
func (c *QuoteCache) Get(provider string, class hardware.Class, region string) (Quote, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[cacheKey(provider, class, region)]
	if !ok {
		return Quote{}, false
	}
	if c.ttl > 0 && c.now().Sub(entry.storedAt) >= c.ttl {
		return Quote{}, false
	}

	q := entry.quote
	q.Confidence = ConfidenceCached
	return q, true
}

// Set stores a quote, replacing any existing entry for the same key.
func (c *QuoteCache) Set(q Quote) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := cacheKey(q.Provider, q.Hardware, q.Region)
	if c.maxEntries > 0 && len(c.entries) >= c.maxEntries {
		if _, exists := c.entries[key]; !exists {
			c.evictOldest()
		}
	}

	c.entries[key] = cacheEntry{quote: q, storedAt: c.now()}
}

// Size returns the number of entries currently stored, including any
// that have expired but not yet been purged.
func (c *QuoteCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Purge removes expired entries and returns how many were dropped.
func (c *QuoteCache) Purge() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ttl == 0 {
		return 0
	}

	now := c.now()
	dropped := 0
	for key, entry := range c.entries {
		if now.Sub(entry.storedAt) >= c.ttl {
			delete(c.entries, key)
			dropped++
		}
	}
	return dropped
}

// Clear removes all entries.
func (c *QuoteCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}

// evictOldest removes the entry with the oldest store time.
// Must be called with the write lock held.
func (c *QuoteCache) evictOldest() {
	var oldestKey string
	var oldestTime time.Time

	for key, entry := range c.entries {
		if oldestKey == "" || entry.storedAt.Before(oldestTime) {
			oldestKey = key
			oldestTime = entry.storedAt
		}
	}
	if oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}

func cacheKey(provider string, class hardware.Class, region string) string {
	return fmt.Sprintf("%s:%s:%s", provider, class, region)
}
