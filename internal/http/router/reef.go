package router

import (
	"github.com/gin-gonic/gin"

	"github.com/alex28786/the-reef/internal/http/handler"
)

func ReefRouter(rg *gin.RouterGroup, h *handler.ReefHandler) {
	rg.POST("", h.Create)
	rg.POST("/invitations", h.Invite)
	rg.POST("/join", h.Join)
}
