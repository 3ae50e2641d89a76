package ratelimiter

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// RateLimiter tracks two per-minute budgets: estimated tokens and
// request count. A generation call consumes from both.
type RateLimiter struct {
	tokensBucket   *TokenBucket
	requestsBucket *TokenBucket
}

// Ensure RateLimiter implements Limiter.
var _ Limiter = (*RateLimiter)(nil)

// New creates a rate limiter with per-minute token and request budgets.
// A budget of 0 disables that bucket.
func New(tokensPerMinute, requestsPerMinute int) *RateLimiter {
	return &RateLimiter{
		tokensBucket:   NewTokenBucket(tokensPerMinute, tokensPerMinute, time.Minute),
		requestsBucket: NewTokenBucket(requestsPerMinute, requestsPerMinute, time.Minute),
	}
}

// TryConsume atomically checks capacity and consumes if available.
func (rl *RateLimiter) TryConsume(numTokens int) bool {
	return rl.tokensBucket.TryConsume(numTokens) && rl.requestsBucket.TryConsume(1)
}

// TimeUntilAvailable returns how long until the specified tokens would be
// available. This does not modify state.
func (rl *RateLimiter) TimeUntilAvailable(tokens int) time.Duration {
	tokenWait := rl.tokensBucket.TimeUntilAvailable(tokens)
	requestWait := rl.requestsBucket.TimeUntilAvailable(1)
	if tokenWait > requestWait {
		return tokenWait
	}
	return requestWait
}

// WaitAndConsume waits until tokens are available (up to maxWait), then
// consumes them. If maxWait is 0, there is no limit on how long to wait.
// Returns an error if the context is cancelled or maxWait is exceeded.
func (rl *RateLimiter) WaitAndConsume(ctx context.Context, tokens int, maxWait time.Duration) error {
	waitDuration := rl.TimeUntilAvailable(tokens)

	if waitDuration > 0 {
		if maxWait > 0 && waitDuration > maxWait {
			return fmt.Errorf("rate limit wait time %v exceeds max wait %v", waitDuration, maxWait)
		}

		timer := time.NewTimer(waitDuration)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	if !rl.TryConsume(tokens) {
		// Shouldn't happen normally, but handle edge case
		return fmt.Errorf("failed to acquire tokens after waiting")
	}

	return nil
}

// TokenBucket implements a token bucket rate limit algorithm with a
// fixed refill interval. A zero capacity bucket never limits.
type TokenBucket struct {
	mu             sync.Mutex
	capacity       int
	remaining      int
	refillInterval time.Duration
	lastRefill     time.Time
}

// NewTokenBucket creates a new token bucket.
func NewTokenBucket(capacity int, initialTokens int, refillInterval time.Duration) *TokenBucket {
	return &TokenBucket{
		capacity:       capacity,
		remaining:      initialTokens,
		refillInterval: refillInterval,
		lastRefill:     time.Now(),
	}
}

// TryConsume tries to consume a specified number of tokens from the bucket.
func (tb *TokenBucket) TryConsume(tokens int) bool {
	if tb.capacity <= 0 {
		return true
	}

	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := time.Now()
	if now.Sub(tb.lastRefill) >= tb.refillInterval {
		tb.remaining = tb.capacity
		tb.lastRefill = now
	}
	if tokens <= tb.remaining {
		tb.remaining -= tokens
		return true
	}
	return false
}

// TimeUntilAvailable returns how long until tokens would be available
// (read-only), accounting for partial refill since the last consume.
func (tb *TokenBucket) TimeUntilAvailable(tokens int) time.Duration {
	if tb.capacity <= 0 {
		return 0
	}

	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(tb.lastRefill)

	effectiveRemaining := tb.remaining
	if elapsed >= tb.refillInterval {
		effectiveRemaining = tb.capacity
	} else if elapsed > 0 {
		replenished := int(float64(tb.capacity) * (float64(elapsed) / float64(tb.refillInterval)))
		effectiveRemaining = min(tb.capacity, tb.remaining+replenished)
	}

	if tokens <= effectiveRemaining {
		return 0
	}

	tokensNeeded := tokens - effectiveRemaining
	refillRate := float64(tb.capacity) / float64(tb.refillInterval)
	waitDuration := time.Duration(float64(tokensNeeded) / refillRate)

	// Small buffer so the caller does not wake up a hair too early.
	return waitDuration + (waitDuration / 10)
}
