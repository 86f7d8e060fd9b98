package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

const DefaultTimeout = 30 * time.Second

// Timeout middleware sets a timeout context for request processing.
// Handlers and the datastore client observe cancellation through the
// request context; no goroutine is spawned.
func Timeout(timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)

		c.Next()

		// After handler completes, check if timeout occurred
		if ctx.Err() == context.DeadlineExceeded {
			requestID, _ := c.Get(RequestIDKey)

			slog.Warn("Request deadline exceeded",
				"request_id", requestID,
				"path", c.Request.URL.Path,
				"method", c.Request.Method,
				"timeout", timeout.String(),
				"status", c.Writer.Status(),
			)
		}
	}
}

// IsTimeout is a helper handlers can use to check for timeout
func IsTimeout(c *gin.Context) bool {
	return c.Request.Context().Err() == context.DeadlineExceeded
}
