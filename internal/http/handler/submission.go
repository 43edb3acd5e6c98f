package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alex28786/the-reef/internal/http/dto"
	"github.com/alex28786/the-reef/internal/service"
)

type SubmissionHandler struct {
	submissionService service.SubmissionService
}

func NewSubmissionHandler(submissionService service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissionService: submissionService}
}

// SaveArtifact stores the author's derived text once the round is revealed.
func (h *SubmissionHandler) SaveArtifact(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	submissionID, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.SaveArtifactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: artifact is required"})
		return
	}

	sub, err := h.submissionService.SaveArtifact(c.Request.Context(), user.ID, submissionID, req.Artifact)
	if err != nil {
		writeError(c, err, "failed to save artifact")
		return
	}

	c.JSON(http.StatusOK, dto.ToArtifactResponse(sub))
}
