package ratelimit

import (
	"sync"
	"time"
)

// TokenBucket is a refilling token bucket guarding one user action.
type TokenBucket struct {
	tokens     int
	maxTokens  int
	refillRate int
	refillTime time.Duration
	lastRefill time.Time
	mutex      sync.Mutex
}

// RateLimiter manages per-user, per-action token buckets.
type RateLimiter struct {
	buckets map[string]*TokenBucket
	mutex   sync.RWMutex
}

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		buckets: make(map[string]*TokenBucket),
	}
}

func NewTokenBucket(maxTokens, refillRate int, refillTime time.Duration) *TokenBucket {
	return &TokenBucket{
		tokens:     maxTokens,
		maxTokens:  maxTokens,
		refillRate: refillRate,
		refillTime: refillTime,
		lastRefill: time.Now(),
	}
}

// Allow consumes a token if one is available and reports the wait until
// the next token otherwise.
func (tb *TokenBucket) Allow() (bool, time.Duration) {
	tb.mutex.Lock()
	defer tb.mutex.Unlock()

	now := time.Now()

	elapsed := now.Sub(tb.lastRefill)
	tokensToAdd := int(elapsed/tb.refillTime) * tb.refillRate

	if tokensToAdd > 0 {
		tb.tokens += tokensToAdd
		if tb.tokens > tb.maxTokens {
			tb.tokens = tb.maxTokens
		}
		tb.lastRefill = now
	}

	if tb.tokens > 0 {
		tb.tokens--
		return true, 0
	}

	nextRefill := tb.lastRefill.Add(tb.refillTime)
	return false, nextRefill.Sub(now)
}

// Allow checks whether a user action may proceed. Catalog lookups proxy
// external APIs with their own quotas, so they get the tightest bucket.
func (rl *RateLimiter) Allow(userID, action string) (bool, time.Duration) {
	key := userID + ":" + action

	rl.mutex.RLock()
	bucket, exists := rl.buckets[key]
	rl.mutex.RUnlock()

	if !exists {
		rl.mutex.Lock()
		if bucket, exists = rl.buckets[key]; !exists {
			switch action {
			case "catalog_search":
				// 30 searches per minute (1 token per 2 seconds)
				bucket = NewTokenBucket(30, 1, 2*time.Second)
			case "item_write":
				// 60 writes per minute
				bucket = NewTokenBucket(60, 1, time.Second)
			default:
				// 20 actions per minute
				bucket = NewTokenBucket(20, 1, 3*time.Second)
			}
			rl.buckets[key] = bucket
		}
		rl.mutex.Unlock()
	}

	return bucket.Allow()
}

// Cleanup removes buckets that have been idle for over an hour.
func (rl *RateLimiter) Cleanup() {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	now := time.Now()
	for key, bucket := range rl.buckets {
		if now.Sub(bucket.lastRefill) > time.Hour {
			delete(rl.buckets, key)
		}
	}
}

func (rl *RateLimiter) StartCleanupRoutine() {
	go func() {
		ticker := time.NewTicker(30 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			rl.Cleanup()
		}
	}()
}
