package router

import (
	"github.com/gin-gonic/gin"

	"github.com/alex28786/the-reef/internal/http/handler"
)

func RetroRouter(rg *gin.RouterGroup, h *handler.RetroHandler) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:id", h.Get)
	rg.POST("/:id/submissions", h.Submit)
	rg.PUT("/:id/submissions/mine", h.Revise)
	rg.POST("/:id/resolve", h.Resolve)
}
