package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cufc/member-api/internal/shared/middleware"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

const throttleMessage = "Too many membership submissions from this IP, please try again later."

func newThrottledRouter(limit int) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.POST("/submit", middleware.RateLimit(limit, time.Hour, throttleMessage), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func doPost(router *gin.Engine, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/submit", nil)
	if remoteAddr != "" {
		req.RemoteAddr = remoteAddr
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRateLimit_RejectsBeyondBurst(t *testing.T) {
	// Given a route allowing five requests per hour per address
	router := newThrottledRouter(5)

	// When the full burst is consumed
	for i := 0; i < 5; i++ {
		rec := doPost(router, "")
		assert.Equal(t, http.StatusOK, rec.Code, "request %d should pass", i+1)
	}

	// Then the next request is rejected with the plain-text message
	rec := doPost(router, "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, throttleMessage, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
}

func TestRateLimit_TracksAddressesIndependently(t *testing.T) {
	// Given one address that has exhausted its budget
	router := newThrottledRouter(2)
	doPost(router, "203.0.113.7:1000")
	doPost(router, "203.0.113.7:1000")

	rec := doPost(router, "203.0.113.7:1000")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	// When a different address submits
	rec = doPost(router, "203.0.113.8:1000")

	// Then it is unaffected
	assert.Equal(t, http.StatusOK, rec.Code)
}
