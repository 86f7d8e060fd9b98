package middleware

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// visitor tracks the limiter for a single client address.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimit limits each client address to maxRequests per window using a
// token bucket (full burst up front, refilled evenly across the window).
// Rejected requests receive a plain-text body, not the JSON envelope,
// matching what the public signup form expects.
func RateLimit(maxRequests int, window time.Duration, message string) gin.HandlerFunc {
	var (
		mu       sync.Mutex
		visitors = make(map[string]*visitor)
	)

	interval := window / time.Duration(maxRequests)

	// Stale entries are evicted on the fly; a visitor idle for a full
	// window has a refilled bucket anyway.
	cleanup := func(now time.Time) {
		for ip, v := range visitors {
			if now.Sub(v.lastSeen) > window {
				delete(visitors, ip)
			}
		}
	}

	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()

		mu.Lock()
		if len(visitors) > 1024 {
			cleanup(now)
		}
		v, ok := visitors[ip]
		if !ok {
			v = &visitor{limiter: rate.NewLimiter(rate.Every(interval), maxRequests)}
			visitors[ip] = v
		}
		v.lastSeen = now
		mu.Unlock()

		if !v.limiter.Allow() {
			slog.Warn("rate limit exceeded",
				"client_ip", ip,
				"path", c.Request.URL.Path,
			)
			c.String(http.StatusTooManyRequests, message)
			c.Abort()
			return
		}

		c.Next()
	}
}
