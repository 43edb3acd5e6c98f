package router

import (
	"github.com/gin-gonic/gin"

	"github.com/alex28786/the-reef/internal/http/handler"
	"github.com/alex28786/the-reef/internal/http/middleware"
	"github.com/alex28786/the-reef/internal/service"
)

type RouterConfig struct {
	DashboardURL string
	IsProduction bool
	AdminAPIKey  string
}

func SetupRoutes(router *gin.Engine, services *service.Services, cfg RouterConfig) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	authHandler := handler.NewAuthHandler(services.Auth(), cfg.DashboardURL, cfg.IsProduction)
	AuthRouter(v1.Group("/auth"), authHandler, !cfg.IsProduction)

	reefHandler := handler.NewReefHandler(services.Reefs())
	v1.GET("/invites/validate", reefHandler.ValidateInvite)

	AdminRouter(v1.Group("/admin"), cfg.AdminAPIKey, handler.NewPromptHandler(services.Prompts()))

	authed := v1.Group("")
	authed.Use(middleware.RequireAuth(services.Auth()))
	{
		UserRouter(authed.Group("/users"), handler.NewUserHandler(services.Users()))
		ReefRouter(authed.Group("/reefs"), reefHandler)
		ThreadRouter(authed.Group("/threads"), handler.NewThreadHandler(services.Bridge()))
		RetroRouter(authed.Group("/retros"), handler.NewRetroHandler(services.Retro()))
		SubmissionRouter(authed.Group("/submissions"), handler.NewSubmissionHandler(services.Submissions()))
		AnalysisRouter(authed.Group("/analysis"), handler.NewAnalysisHandler(services.Enricher()))
	}
}
