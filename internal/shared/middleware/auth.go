package middleware

import (
	"errors"
	"log/slog"
	"strings"

	sharedContext "github.com/cufc/member-api/internal/shared/context"
	"github.com/cufc/member-api/internal/shared/handler"
	"github.com/cufc/member-api/internal/shared/token"

	"github.com/gin-gonic/gin"
)

const (
	AuthorizationHeader = "Authorization"
	BearerScheme        = "Bearer"
)

var (
	errMissingToken   = errors.New("authorization header missing")
	errMalformedToken = errors.New("authorization header is not a bearer token")
)

// Auth gates a route group behind bearer-token verification. A missing,
// malformed, expired or otherwise invalid token short-circuits the request
// with the 401 envelope before any handler runs. On success the token
// subject is stored in the context for handlers.
func Auth(verifier token.Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		clientIP := c.ClientIP()
		method := c.Request.Method
		path := c.Request.URL.Path

		// Step 1: extract the bearer token
		raw, err := extractToken(c)
		if err != nil {
			slog.Warn("bearer token extraction failed",
				"step", "extract_token",
				"error", err.Error(),
				"client_ip", clientIP,
				"method", method,
				"path", path,
			)
			handler.AbortUnauthorized(c)
			return
		}

		// Step 2: verify against the provider's key set
		claims, err := verifier.Verify(c.Request.Context(), raw)
		if err != nil {
			slog.Warn("bearer token verification failed",
				"step", "verify_token",
				"error", err.Error(),
				"client_ip", clientIP,
				"method", method,
				"path", path,
			)
			handler.AbortUnauthorized(c)
			return
		}

		c.Set(sharedContext.SubjectKey, claims.Subject)
		c.Next()
	}
}

func extractToken(c *gin.Context) (string, error) {
	authHeader := c.GetHeader(AuthorizationHeader)
	if authHeader == "" {
		return "", errMissingToken
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], BearerScheme) {
		return "", errMalformedToken
	}

	return parts[1], nil
}
