package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alex28786/the-reef/internal/analysis"
	"github.com/alex28786/the-reef/internal/http/dto"
)

// PromptAdmin is the operator view of the analysis prompt catalog.
type PromptAdmin interface {
	Entries(ctx context.Context) ([]analysis.PromptEntry, error)
	Override(ctx context.Context, key, text string) (*analysis.PromptEntry, error)
}

type PromptHandler struct {
	prompts PromptAdmin
}

func NewPromptHandler(prompts PromptAdmin) *PromptHandler {
	return &PromptHandler{prompts: prompts}
}

func (h *PromptHandler) List(c *gin.Context) {
	entries, err := h.prompts.Entries(c.Request.Context())
	if err != nil {
		writeError(c, err, "failed to list prompts")
		return
	}

	resp := make([]dto.PromptResponse, len(entries))
	for i, e := range entries {
		resp[i] = dto.ToPromptResponse(e)
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PromptHandler) Update(c *gin.Context) {
	var req dto.UpdatePromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	entry, err := h.prompts.Override(c.Request.Context(), c.Param("key"), req.Text)
	if err != nil {
		writeError(c, err, "failed to store prompt")
		return
	}
	c.JSON(http.StatusOK, dto.ToPromptResponse(*entry))
}
