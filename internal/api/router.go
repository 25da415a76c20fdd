package api

import (
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginswagger "github.com/swaggo/gin-swagger"

	"doctranslate/internal/auth"
	"doctranslate/internal/config"
	"doctranslate/internal/jobs"
	"doctranslate/internal/markup"
)

// SetupRouter builds the gin engine: health, swagger and login routes are
// open; translate/jobs routes require a bearer token minted by issuer via
// POST /api/v1/login.
func SetupRouter(cfg *config.Config, pipeline *markup.Pipeline, store *jobs.Store, issuer *auth.Issuer) *gin.Engine {
	if cfg.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	handler := NewHandler(pipeline, store, issuer, cfg.Auth)

	router.GET("/healthz", handler.HealthCheck)
	router.GET("/swagger/*any", ginswagger.WrapHandler(swaggerfiles.Handler))

	v1 := router.Group("/api/v1")
	v1.POST("/login", handler.Login)
	{
		protected := v1.Group("")
		protected.Use(issuer.Middleware())
		protected.POST("/translate", handler.Translate)
		protected.POST("/jobs", handler.CreateJob)
		protected.GET("/jobs/:id", handler.GetJob)
	}

	return router
}
