package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alex28786/the-reef/internal/http/dto"
	"github.com/alex28786/the-reef/internal/service"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Me returns the caller with their reef and partner.
func (h *UserHandler) Me(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	profile, err := h.userService.Profile(c.Request.Context(), user.ID)
	if err != nil {
		writeError(c, err, "failed to load profile")
		return
	}

	c.JSON(http.StatusOK, dto.ToProfileResponse(profile))
}
