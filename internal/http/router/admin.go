package router

import (
	"github.com/gin-gonic/gin"

	"github.com/alex28786/the-reef/internal/http/handler"
	"github.com/alex28786/the-reef/internal/http/middleware"
)

// AdminRouter serves operator routes behind the admin API key.
func AdminRouter(rg *gin.RouterGroup, adminAPIKey string, prompts *handler.PromptHandler) {
	rg.Use(middleware.RequireAdminAPIKey(adminAPIKey))
	rg.GET("/prompts", prompts.List)
	rg.PUT("/prompts/:key", prompts.Update)
}
