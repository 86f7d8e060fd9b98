package context

import (
	"github.com/cufc/member-api/internal/shared/handler"
	"github.com/cufc/member-api/internal/shared/logger"
	"github.com/gin-gonic/gin"
)

// Context keys for authenticated principal information
const (
	SubjectKey = "auth_subject"
)

// GetSubject returns the identity-provider subject of the verified token.
func GetSubject(c *gin.Context) (string, bool) {
	subject, exists := c.Get(SubjectKey)
	if !exists {
		return "", false
	}

	sub, ok := subject.(string)
	if !ok || sub == "" {
		return "", false
	}

	return sub, true
}

// RequireSubject retrieves the authenticated subject from the Gin context.
// If no subject is present, automatically sends the 401 envelope.
// Returns the subject and true if found, empty string and false if not found
// (error already sent). Use this in handlers to reduce boilerplate.
func RequireSubject(c *gin.Context) (string, bool) {
	sub, ok := GetSubject(c)
	if !ok {
		handler.AbortUnauthorized(c)
		logger.FromContext(c.Request.Context()).Error("no authenticated subject in request context")
		return "", false
	}
	return sub, true
}
