package pricing

import (
	"sync"
	"time"
)

// tokenBucket implements token bucket rate limiting for provider
// lookups. Provider APIs publish hourly request quotas; the bucket
// allows bursts up to capacity while holding the average rate.
//
// Uses monotonic time to avoid clock skew issues.
type tokenBucket struct {
	capacity   int64     // maximum tokens in bucket
	tokens     int64     // current available tokens
	refillRate float64   // tokens added per second
	lastRefill time.Time // last time tokens were refilled
	mu         sync.Mutex
}

// newTokenBucket creates a bucket that starts full.
func newTokenBucket(capacity int64, refillRate float64) *tokenBucket {
	return &tokenBucket{
		capacity:   capacity,
		tokens:     capacity,
		refillRate: refillRate,
		lastRefill: time.Now(),
	}
}

// newHourlyBucket creates a bucket sized for a per-hour request quota.
func newHourlyBucket(requestsPerHour int64) *tokenBucket {
	return newTokenBucket(requestsPerHour, float64(requestsPerHour)/3600)
}

// take attempts to consume one token. Returns false when the bucket is
// empty, meaning the caller should skip the live lookup.
func (tb *tokenBucket) take() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.refillLocked()

	if tb.tokens >= 1 {
		tb.tokens--
		return true
	}
	return false
}

// timeUntilAvailable returns how long until a token will be available.
// Returns 0 if one is available now.
func (tb *tokenBucket) timeUntilAvailable() time.Duration {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	tb.refillLocked()

	if tb.tokens >= 1 {
		return 0
	}
	seconds := float64(1-tb.tokens) / tb.refillRate
	return time.Duration(seconds * float64(time.Second))
}

// refillLocked adds tokens based on elapsed time. Caller must hold mu.
func (tb *tokenBucket) refillLocked() {
	now := time.Now()
	elapsed := now.Sub(tb.lastRefill)

	tokensToAdd := int64(elapsed.Seconds() * tb.refillRate)
	if tokensToAdd > 0 {
		tb.tokens += tokensToAdd
		if tb.tokens > tb.capacity {
			tb.tokens = tb.capacity
		}
		tb.lastRefill = now
	}
}
