package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/alex28786/the-reef/internal/analysis"
	"github.com/alex28786/the-reef/internal/http/dto"
	"github.com/alex28786/the-reef/internal/http/middleware"
	"github.com/alex28786/the-reef/internal/model"
	"github.com/alex28786/the-reef/internal/service"
)

// writeError maps service errors to status codes. Anything unrecognized is
// logged and answered with fallback as the message.
func writeError(c *gin.Context, err error, fallback string) {
	status, code := errorStatus(err)
	if status == http.StatusInternalServerError {
		slog.ErrorContext(c.Request.Context(), fallback, "error", err)
		c.JSON(status, gin.H{"error": fallback})
		return
	}
	c.JSON(status, gin.H{"error": err.Error(), "code": code})
}

func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, analysis.ErrInvalidText):
		return http.StatusBadRequest, "invalid_input"
	case errors.Is(err, service.ErrNotParticipant):
		return http.StatusForbidden, "not_participant"
	case errors.Is(err, service.ErrNotAuthor):
		return http.StatusForbidden, "not_author"
	case errors.Is(err, service.ErrContextNotFound), errors.Is(err, service.ErrWrongKind):
		return http.StatusNotFound, "context_not_found"
	case errors.Is(err, service.ErrSubmissionNotFound):
		return http.StatusNotFound, "submission_not_found"
	case errors.Is(err, analysis.ErrUnknownPrompt):
		return http.StatusNotFound, "prompt_not_found"
	case errors.Is(err, service.ErrUserNotFound):
		return http.StatusNotFound, "user_not_found"
	case errors.Is(err, service.ErrNoReef):
		return http.StatusConflict, "no_reef"
	case errors.Is(err, service.ErrPartnerMissing):
		return http.StatusConflict, "partner_missing"
	case errors.Is(err, service.ErrAlreadySubmitted):
		return http.StatusConflict, "already_submitted"
	case errors.Is(err, service.ErrRoundClosed):
		return http.StatusConflict, "round_closed"
	case errors.Is(err, service.ErrAlreadyRevealed):
		return http.StatusConflict, "already_revealed"
	case errors.Is(err, service.ErrNotRevealed):
		return http.StatusConflict, "not_revealed"
	case errors.Is(err, service.ErrSubmissionLocked):
		return http.StatusConflict, "submission_locked"
	case errors.Is(err, service.ErrNoMessageToAcknowledge):
		return http.StatusConflict, "nothing_to_acknowledge"
	case errors.Is(err, service.ErrAlreadyInReef):
		return http.StatusConflict, "already_in_reef"
	case errors.Is(err, service.ErrReefFull):
		return http.StatusConflict, "reef_full"
	case errors.Is(err, service.ErrInviteInvalid):
		return http.StatusGone, "invite_invalid"
	case errors.Is(err, analysis.ErrNotConfigured), errors.Is(err, service.ErrAuthNotConfigured):
		return http.StatusServiceUnavailable, "not_configured"
	default:
		return http.StatusInternalServerError, ""
	}
}

// currentUser returns the caller set by RequireAuth.
func currentUser(c *gin.Context) (*model.User, bool) {
	user := middleware.GetUser(c.Request.Context())
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return nil, false
	}
	return user, true
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

func queryLimit(c *gin.Context) (int32, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || limit < 0 || limit > 200 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 0 and 200"})
		return 0, false
	}
	return int32(limit), true
}

// bindResolveRequest accepts an empty body as a non-mock resolve.
func bindResolveRequest(c *gin.Context) (service.ResolveOptions, bool) {
	var req dto.ResolveRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return service.ResolveOptions{}, false
		}
	}
	return service.ResolveOptions{Mock: req.Mock}, true
}

// writeResolve answers a resolve. A failed pass still carries the
// {status: "error", message} body.
func writeResolve(c *gin.Context, result service.ResolveResult, err error) {
	if err != nil {
		if result.Status != service.ResolveStatusError {
			writeError(c, err, "failed to resolve")
			return
		}
		slog.ErrorContext(c.Request.Context(), "resolve failed", "error", err)
		c.JSON(http.StatusInternalServerError, dto.ToResolveResponse(result))
		return
	}
	c.JSON(http.StatusOK, dto.ToResolveResponse(result))
}
