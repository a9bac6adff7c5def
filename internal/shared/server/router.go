package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"writing-tutor-api/internal/feedback"
	"writing-tutor-api/internal/services/health"
	"writing-tutor-api/internal/shared/config"
	"writing-tutor-api/internal/shared/metrics"
	"writing-tutor-api/internal/shared/server/middleware"
	"writing-tutor-api/internal/shared/server/respond"
)

// RouterDeps contains handler dependencies for the HTTP router.
type RouterDeps struct {
	Config          config.Config
	FeedbackHandler *feedback.Handler
	Health          *health.Service
	Limiter         middleware.Limiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		ok, checks := deps.Health.Status(c.Request.Context())
		status := http.StatusOK
		if !ok {
			status = http.StatusServiceUnavailable
		}
		respond.JSON(c, status, gin.H{"ok": ok, "checks": checks})
	})

	if deps.FeedbackHandler != nil {
		limit := middleware.RateLimit(middleware.RateLimitConfig{
			Group:   "analyze",
			Rule:    middleware.PerMinute(deps.Config.RateLimitPerMinute),
			Limiter: deps.Limiter,
		})
		deps.FeedbackHandler.RegisterRoutes(api, limit)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
