package app

import (
	"medblueprint_backend/docs"
	"medblueprint_backend/internal/config"
	"medblueprint_backend/internal/middleware"
	"medblueprint_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// Công khai: health, cấp phiên, danh mục cho form
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/session", c.session.Create)
		public.GET("/blueprints/meta", c.blueprint.Meta)
	}

	// Cần session token
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.POST("/blueprints/generate", c.blueprint.Generate)
		authGroup.GET("/blueprints/current", c.blueprint.Current)
		authGroup.GET("/blueprints", c.blueprint.List)
		authGroup.GET("/blueprints/:id", c.blueprint.Get)
	}
}
