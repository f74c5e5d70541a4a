package app

import (
	"careercoach_backend/docs"
	"careercoach_backend/internal/config"
	"careercoach_backend/internal/middleware"
	"careercoach_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
		public.GET("/courses", c.course.Search)
		public.POST("/contact", c.contact.Submit)
	}

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.POST("/analysis", c.analysis.Analyze)
		authGroup.POST("/analysis/resume", c.analysis.AnalyzeResume)

		authGroup.GET("/history", c.history.GetHistory)
		authGroup.PUT("/history", c.history.SaveHistory)
		authGroup.PATCH("/history/:title/skills/:skill", c.history.UpdateSkillProgress)
		authGroup.DELETE("/history/:title", c.history.DeleteEntry)
	}
}
