package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"
)

// RateLimiter hands out one token bucket per client IP. Idle buckets are
// evicted after ten minutes.
type RateLimiter struct {
	limiters *gocache.Cache
	limit    rate.Limit
	burst    int
}

// NewRateLimiter allows perMinute requests per client with a burst of the
// same size.
func NewRateLimiter(perMinute int) *RateLimiter {
	burst := perMinute
	if burst <= 0 {
		burst = 1
	}
	return &RateLimiter{
		limiters: gocache.New(10*time.Minute, 5*time.Minute),
		limit:    rate.Every(time.Minute / time.Duration(max(perMinute, 1))),
		burst:    burst,
	}
}

// Allow reports whether the client may make another request now.
func (rl *RateLimiter) Allow(clientID string) bool {
	return rl.getLimiter(clientID).Allow()
}

func (rl *RateLimiter) getLimiter(clientID string) *rate.Limiter {
	if val, found := rl.limiters.Get(clientID); found {
		rl.limiters.SetDefault(clientID, val)
		return val.(*rate.Limiter)
	}

	limiter := rate.NewLimiter(rl.limit, rl.burst)
	// Add fails if another request created the bucket first
	if err := rl.limiters.Add(clientID, limiter, gocache.DefaultExpiration); err != nil {
		if val, found := rl.limiters.Get(clientID); found {
			return val.(*rate.Limiter)
		}
	}
	return limiter
}

// RateLimit rejects requests over the per-client budget with 429.
// perMinute <= 0 disables limiting.
func RateLimit(perMinute int) gin.HandlerFunc {
	if perMinute <= 0 {
		return func(c *gin.Context) { c.Next() }
	}

	limiter := NewRateLimiter(perMinute)
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many requests, please slow down",
			})
			return
		}
		c.Next()
	}
}
