package router

import (
	"github.com/gin-gonic/gin"

	"github.com/alex28786/the-reef/internal/http/handler"
)

func AuthRouter(rg *gin.RouterGroup, h *handler.AuthHandler, devLogin bool) {
	rg.GET("/login", h.Login)
	rg.GET("/callback", h.Callback)
	rg.POST("/logout", h.Logout)

	if devLogin {
		rg.POST("/dev-login", h.DevLogin)
	}
}
