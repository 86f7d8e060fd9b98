package router

import (
	"time"

	"github.com/cufc/member-api/internal/config"
	"github.com/cufc/member-api/internal/member"
	"github.com/cufc/member-api/internal/meta"
	"github.com/cufc/member-api/internal/shared/database"
	"github.com/cufc/member-api/internal/shared/middleware"
	"github.com/cufc/member-api/internal/shared/token"
	"github.com/gin-gonic/gin"
)

// Create-route throttle: the public signup form may be submitted at most
// five times per address per hour. Rejections are plain text, not JSON.
const (
	createMemberLimit   = 5
	createMemberWindow  = time.Hour
	createMemberMessage = "Too many membership submissions from this IP, please try again later."
)

// Setup configures all application-specific routes using dependency injection
func Setup(router *gin.Engine, cfg *config.Config, db *database.DB, verifier token.Verifier) {
	// Meta handler (health check, public client config)
	metaHandler := meta.NewHandler(cfg, db)
	router.GET("/health", metaHandler.Health)

	// repository
	memberRepository := member.NewMemberRepository(db)

	// service
	memberService := member.NewMemberService(memberRepository)

	// handler
	memberHandler := member.NewMemberHandler(memberService)

	api := router.Group("/api")

	api.GET("/config", metaHandler.PublicConfig)

	members := api.Group("/members")
	{
		// Public signup: rate limiter, then declarative field validation
		// inside the handler binding, no token required.
		members.POST("", middleware.RateLimit(createMemberLimit, createMemberWindow, createMemberMessage), memberHandler.Create)

		// Everything else sits behind the token verification gate.
		authed := members.Group("")
		authed.Use(middleware.Auth(verifier))
		{
			authed.GET("/me", memberHandler.GetMyInfo)
			authed.PUT("/me", memberHandler.UpdateMyInfo)
			authed.GET("", memberHandler.List)
			authed.GET("/:id", memberHandler.GetByID)
			authed.PUT("/:id", memberHandler.UpdateByID)
			authed.DELETE("/:id", memberHandler.DeleteByID)
		}
	}
}
