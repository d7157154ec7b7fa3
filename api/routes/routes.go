package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/feichai0017/file-extractor/api/handlers"
	"github.com/feichai0017/file-extractor/api/middleware"
)

// SetupRoutes 配置所有路由
func SetupRoutes(r *gin.Engine, h *handlers.Handlers) {
	r.Use(middleware.CORS())

	r.GET("/health", h.Document.HealthCheck)

	v1 := r.Group("/api/v1")

	docs := v1.Group("/documents")
	{
		docs.POST("/process", h.Document.ProcessDocument)
	}
}
