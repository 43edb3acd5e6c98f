package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alex28786/the-reef/internal/analysis"
	"github.com/alex28786/the-reef/internal/model"
)

// AnalysisHandler serves the analysis wire contract, so clients can preview an
// analysis before a round is complete. Nothing is persisted.
type AnalysisHandler struct {
	enricher analysis.Enricher
}

func NewAnalysisHandler(enricher analysis.Enricher) *AnalysisHandler {
	return &AnalysisHandler{enricher: enricher}
}

func (h *AnalysisHandler) Bridge(c *gin.Context) {
	var req analysis.BridgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.enricher.Enrich(c.Request.Context(), req.Text, model.ContextKindBridge, analysis.Options{
		Mock: req.Mock,
		BridgePrompts: analysis.BridgePrompts{
			FourHorsemen: req.FourHorsemenPrompt,
			NVC:          req.NVCPrompt,
		},
	})
	if err != nil {
		h.writeAnalysisError(c, err)
		return
	}

	c.JSON(http.StatusOK, analysis.ToBridgeResponse(result.Enrichment.Bridge))
}

func (h *AnalysisHandler) Retro(c *gin.Context) {
	var req analysis.RetroRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := h.enricher.Enrich(c.Request.Context(), req.Narrative, model.ContextKindRetro, analysis.Options{
		Mock:        req.Mock,
		RetroPrompt: req.Prompt,
	})
	if err != nil {
		h.writeAnalysisError(c, err)
		return
	}

	c.JSON(http.StatusOK, result.Enrichment.Retro)
}

func (h *AnalysisHandler) writeAnalysisError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, analysis.ErrInvalidText):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, analysis.ErrNotConfigured):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "analysis service not configured"})
	default:
		slog.ErrorContext(c.Request.Context(), "analysis failed", "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "analysis failed"})
	}
}
