// Package ratelimit throttles requests per client key.
package ratelimit

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter keeps one token bucket per key. Buckets idle for longer than
// idleTTL are dropped on the next Allow call.
type Limiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	idleTTL  time.Duration
	nowFunc  func() time.Time
}

// PerMinute returns a Limiter allowing n requests per minute per key, with a
// burst of n.
func PerMinute(n int) *Limiter {
	if n <= 0 {
		n = 5
	}
	return New(rate.Every(time.Minute/time.Duration(n)), n, 10*time.Minute)
}

func New(limit rate.Limit, burst int, idleTTL time.Duration) *Limiter {
	return &Limiter{
		visitors: map[string]*visitor{},
		limit:    limit,
		burst:    burst,
		idleTTL:  idleTTL,
		nowFunc:  time.Now,
	}
}

// Allow reports whether a request for key may proceed now.
func (l *Limiter) Allow(key string) bool {
	now := l.nowFunc()
	l.mu.Lock()
	defer l.mu.Unlock()

	for k, v := range l.visitors {
		if now.Sub(v.lastSeen) > l.idleTTL {
			delete(l.visitors, k)
		}
	}

	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[key] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

// Middleware rejects requests over the limit with 429, keyed by client IP.
func (l *Limiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":  "rate_limited",
				"detail": "too many requests, try again later",
			})
			return
		}
		c.Next()
	}
}
