package http

import (
	"sync"
	"time"
)

type visitor struct {
	tokens   float64
	last     time.Time
	lastSeen time.Time
}

// RateLimiter implements a token bucket limiter keyed by client identifier.
type RateLimiter struct {
	mu         sync.Mutex
	visitors   map[string]*visitor
	maxTokens  float64
	refillRate float64
	ttl        time.Duration
	now        func() time.Time
}

// NewRateLimiter constructs a rate limiter with the provided settings.
func NewRateLimiter(maxTokens int, refillPerSecond float64, ttl time.Duration) *RateLimiter {
	rl := &RateLimiter{
		visitors:   make(map[string]*visitor),
		maxTokens:  float64(maxTokens),
		refillRate: refillPerSecond,
		ttl:        ttl,
		now:        time.Now,
	}

	if ttl > 0 {
		ticker := time.NewTicker(ttl)
		go func() {
			for range ticker.C {
				rl.pruneStale()
			}
		}()
	}

	return rl
}

// Allow consumes a token for the provided key if possible.
func (rl *RateLimiter) Allow(key string) bool {
	if key == "" {
		key = "unknown"
	}

	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, ok := rl.visitors[key]
	if !ok {
		v = &visitor{
			tokens:   rl.maxTokens,
			last:     now,
			lastSeen: now,
		}
		rl.visitors[key] = v
	}

	elapsed := now.Sub(v.last).Seconds()
	if elapsed > 0 {
		v.tokens += elapsed * rl.refillRate
		if v.tokens > rl.maxTokens {
			v.tokens = rl.maxTokens
		}
		v.last = now
	}

	if v.tokens < 1 {
		v.lastSeen = now
		return false
	}

	v.tokens--
	v.lastSeen = now
	return true
}

func (rl *RateLimiter) pruneStale() {
	cutoff := rl.now().Add(-rl.ttl)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	for key, v := range rl.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(rl.visitors, key)
		}
	}
}
