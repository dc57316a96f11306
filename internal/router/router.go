package router

import (
	"github.com/gin-gonic/gin"

	"docuparse/internal/config"
	"docuparse/internal/handler"
	"docuparse/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	fileH *handler.FileHandler,
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

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.Auth(&cfg.JWT))

	// File routes
	files := protected.Group("/files")
	files.POST("/upload", fileH.Upload)
	files.GET("", fileH.List)
	files.GET("/:id", fileH.GetByID)
	files.GET("/:id/download", fileH.GetDownloadURL)
	files.DELETE("/:id", fileH.Delete)

	// Document routes
	docs := protected.Group("/documents")
	docs.POST("", docH.Create)
	docs.GET("", docH.List)
	docs.GET("/:id", docH.GetByID)
	docs.GET("/:id/result", docH.GetResult)
	docs.GET("/:id/validation", docH.GetValidation)
	docs.GET("/:id/export", docH.Export)
	docs.DELETE("/:id", docH.Delete)

	return r
}
