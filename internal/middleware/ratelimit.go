package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// InMemoryRateLimiter limits requests per key (uid when authenticated, else
// IP) using sliding-window counters: the previous window's count is weighted
// by its remaining overlap instead of keeping per-request timestamps.
type InMemoryRateLimiter struct {
	mu     sync.Mutex
	keys   map[string]*windowCounter
	limit  int
	window time.Duration
	now    func() time.Time
}

type windowCounter struct {
	start time.Time
	curr  int
	prev  int
	seen  time.Time
}

func NewInMemoryRateLimiter(limit int, window time.Duration) *InMemoryRateLimiter {
	r := &InMemoryRateLimiter{
		keys:   make(map[string]*windowCounter),
		limit:  limit,
		window: window,
		now:    time.Now,
	}
	go r.cleanup()
	return r
}

func (r *InMemoryRateLimiter) Allow(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	wc, ok := r.keys[key]
	if !ok {
		wc = &windowCounter{start: now}
		r.keys[key] = wc
	}
	wc.seen = now

	elapsed := now.Sub(wc.start)
	switch {
	case elapsed >= 2*r.window:
		wc.start, wc.prev, wc.curr = now, 0, 0
		elapsed = 0
	case elapsed >= r.window:
		wc.start = wc.start.Add(r.window)
		wc.prev, wc.curr = wc.curr, 0
		elapsed -= r.window
	}

	weight := 1 - float64(elapsed)/float64(r.window)
	if float64(wc.prev)*weight+float64(wc.curr) >= float64(r.limit) {
		return false
	}
	wc.curr++
	return true
}

func (r *InMemoryRateLimiter) cleanup() {
	tick := time.NewTicker(time.Minute)
	for range tick.C {
		r.mu.Lock()
		cutoff := r.now().Add(-2 * r.window)
		for k, wc := range r.keys {
			if wc.seen.Before(cutoff) {
				delete(r.keys, k)
			}
		}
		r.mu.Unlock()
	}
}

// RateLimit limits by uid when the request is authenticated, falling back to
// client IP for unauthenticated routes.
func RateLimit(limiter *InMemoryRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := GetUID(c)
		if key == "" {
			key = c.ClientIP()
		}
		if !limiter.Allow(key) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"success": false, "msg": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
