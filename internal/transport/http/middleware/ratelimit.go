package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	resp "glimmr/internal/transport/http/response"
)

// RateLimit is a single global token bucket.
func RateLimit(rps rate.Limit, burst int) gin.HandlerFunc {
	lim := rate.NewLimiter(rps, burst)
	return func(c *gin.Context) {
		if lim.Allow() {
			c.Next()
			return
		}
		rateLimited.Inc()
		resp.Abort(c, resp.Error(resp.CodeTooManyRequests, ""))
	}
}

type ipBucket struct {
	lim  *rate.Limiter
	seen time.Time
}

// RateLimitPerIP allows max requests per window for each client IP, refilled
// continuously. Idle buckets are swept once per window.
func RateLimitPerIP(window time.Duration, max int) gin.HandlerFunc {
	every := rate.Every(window / time.Duration(max))
	var (
		mu        sync.Mutex
		buckets   = make(map[string]*ipBucket)
		lastSweep = time.Now()
	)
	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()

		mu.Lock()
		if now.Sub(lastSweep) > window {
			for k, b := range buckets {
				if now.Sub(b.seen) > window {
					delete(buckets, k)
				}
			}
			lastSweep = now
		}
		b, ok := buckets[ip]
		if !ok {
			b = &ipBucket{lim: rate.NewLimiter(every, max)}
			buckets[ip] = b
		}
		b.seen = now
		allowed := b.lim.AllowN(now, 1)
		mu.Unlock()

		if allowed {
			c.Next()
			return
		}
		rateLimited.Inc()
		resp.Abort(c, resp.Error(resp.CodeTooManyRequests, ""))
	}
}
