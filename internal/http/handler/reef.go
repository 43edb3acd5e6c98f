package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alex28786/the-reef/internal/http/dto"
	"github.com/alex28786/the-reef/internal/service"
)

type ReefHandler struct {
	reefService service.ReefService
}

func NewReefHandler(reefService service.ReefService) *ReefHandler {
	return &ReefHandler{reefService: reefService}
}

func (h *ReefHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.CreateReefRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: name is required"})
		return
	}

	reef, err := h.reefService.Create(c.Request.Context(), user.ID, req.Name)
	if err != nil {
		writeError(c, err, "failed to create reef")
		return
	}

	c.JSON(http.StatusCreated, dto.ToReefResponse(reef))
}

func (h *ReefHandler) Invite(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: a valid email is required"})
		return
	}

	inv, inviteURL, err := h.reefService.Invite(c.Request.Context(), user.ID, req.Email)
	if err != nil {
		writeError(c, err, "failed to create invitation")
		return
	}

	c.JSON(http.StatusCreated, dto.ToInviteResponse(inv, inviteURL))
}

func (h *ReefHandler) Join(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.JoinReefRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: token is required"})
		return
	}

	reef, err := h.reefService.Join(c.Request.Context(), user.ID, req.Token)
	if err != nil {
		writeError(c, err, "failed to join reef")
		return
	}

	c.JSON(http.StatusOK, dto.ToReefResponse(reef))
}

// ValidateInvite checks an invitation token (public endpoint).
func (h *ReefHandler) ValidateInvite(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token is required"})
		return
	}

	inv, reef, err := h.reefService.ValidateInvite(c.Request.Context(), token)
	if err != nil {
		writeError(c, err, "failed to validate invitation")
		return
	}

	c.JSON(http.StatusOK, dto.ValidateInviteResponse{
		Email:     inv.Email,
		ReefName:  reef.Name,
		ExpiresAt: inv.ExpiresAt,
		Valid:     true,
	})
}
