package router

import (
	"github.com/gin-gonic/gin"

	"parsify/internal/config"
	"parsify/internal/handler"
	"parsify/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	docH *handler.DocumentHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	v1.POST("/parse", docH.Parse)
	v1.GET("/processors", docH.Processors)

	docs := v1.Group("/documents")
	docs.GET("", docH.List)
	docs.GET("/:id", docH.GetByID)
	docs.GET("/:id/export", docH.Export)
	docs.DELETE("/:id", docH.Delete)

	return r
}
