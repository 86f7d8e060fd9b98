package meta

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/cufc/member-api/internal/config"
	"github.com/cufc/member-api/internal/shared/database"
	"github.com/gin-gonic/gin"
)

// Handler handles meta endpoints (health check and the public client config)
type Handler struct {
	cfg *config.Config
	db  *database.DB
}

// NewHandler creates a new meta handler
func NewHandler(cfg *config.Config, db *database.DB) *Handler {
	return &Handler{
		cfg: cfg,
		db:  db,
	}
}

// Health checks service and datastore health
func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "up"
	start := time.Now()

	if err := h.db.HealthCheck(ctx); err != nil {
		dbStatus = "down"
		slog.Error("health check failed", "error", err)

		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"service": gin.H{
				"name":        h.cfg.App.Name,
				"environment": h.cfg.App.Env,
			},
			"checks": gin.H{
				"datastore": gin.H{
					"status": dbStatus,
					"error":  err.Error(),
				},
			},
		})
		return
	}

	dbLatency := time.Since(start).Milliseconds()

	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"service": gin.H{
			"name":        h.cfg.App.Name,
			"environment": h.cfg.App.Env,
			"port":        h.cfg.App.Port,
		},
		"checks": gin.H{
			"datastore": gin.H{
				"status":     dbStatus,
				"latency_ms": dbLatency,
			},
		},
	})
}

// PublicConfig returns the whitelisted runtime settings the web client needs.
// Only non-secret values appear here; absent values fall back to documented
// defaults, so this endpoint never fails.
func (h *Handler) PublicConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"apiUrl":        h.cfg.Client.APIURL,
		"auth0Domain":   h.cfg.Auth.Domain,
		"auth0ClientId": h.cfg.Client.ClientID,
		"environment":   h.cfg.Environment(),
	})
}
