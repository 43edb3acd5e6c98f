package router

import (
	"github.com/gin-gonic/gin"

	"github.com/alex28786/the-reef/internal/http/handler"
)

// ThreadRouter sets up Bridge thread routes.
func ThreadRouter(rg *gin.RouterGroup, h *handler.ThreadHandler) {
	rg.GET("", h.List)
	rg.POST("", h.Compose)
	rg.GET("/:id", h.Get)
	rg.POST("/:id/messages", h.Send)
	rg.POST("/:id/acknowledge", h.Acknowledge)
	rg.POST("/:id/resolve", h.Resolve)
}
