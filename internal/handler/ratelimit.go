package handler

import (
	"net"
	"net/http"
	"sync"
	"time"
)

// TokenBucket is a simple in-memory per-key rate limiter using the token
// bucket algorithm. It is safe for concurrent use; stale buckets are
// pruned lazily during Allow.
type TokenBucket struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	rate     float64 // tokens added per second
	capacity float64 // maximum tokens
	pruned   time.Time
}

type bucket struct {
	tokens float64
	last   time.Time
}

// NewTokenBucket creates a rate limiter allowing up to capacity requests
// per key, refilling at rate tokens per second.
func NewTokenBucket(rate, capacity float64) *TokenBucket {
	return &TokenBucket{
		buckets:  make(map[string]*bucket),
		rate:     rate,
		capacity: capacity,
		pruned:   time.Now(),
	}
}

// Allow reports whether the given key may proceed, consuming one token.
func (tb *TokenBucket) Allow(key string) bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := time.Now()
	tb.prune(now)

	b, ok := tb.buckets[key]
	if !ok {
		b = &bucket{tokens: tb.capacity, last: now}
		tb.buckets[key] = b
	}

	elapsed := now.Sub(b.last).Seconds()
	b.tokens = min(b.tokens+elapsed*tb.rate, tb.capacity)
	b.last = now

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// prune drops buckets idle for over ten minutes, at most once every five
// minutes. Callers must hold mu.
func (tb *TokenBucket) prune(now time.Time) {
	if now.Sub(tb.pruned) < 5*time.Minute {
		return
	}
	tb.pruned = now
	cutoff := now.Add(-10 * time.Minute)
	for key, b := range tb.buckets {
		if b.last.Before(cutoff) {
			delete(tb.buckets, key)
		}
	}
}

// RateLimit guards a handler with the given limiter, keyed by client IP.
func RateLimit(tb *TokenBucket, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}
		if !tb.Allow(host) {
			writeError(w, http.StatusTooManyRequests, "too many requests")
			return
		}
		next(w, r)
	}
}
