package router

import (
	"github.com/gin-gonic/gin"

	"github.com/alex28786/the-reef/internal/http/handler"
)

func SubmissionRouter(rg *gin.RouterGroup, h *handler.SubmissionHandler) {
	rg.PUT("/:id/artifact", h.SaveArtifact)
}

// AnalysisRouter exposes the analysis wire contract.
func AnalysisRouter(rg *gin.RouterGroup, h *handler.AnalysisHandler) {
	rg.POST("/bridge", h.Bridge)
	rg.POST("/retro", h.Retro)
}
