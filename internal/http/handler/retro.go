package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alex28786/the-reef/internal/http/dto"
	"github.com/alex28786/the-reef/internal/service"
)

type RetroHandler struct {
	retroService service.RetroService
}

func NewRetroHandler(retroService service.RetroService) *RetroHandler {
	return &RetroHandler{retroService: retroService}
}

func (h *RetroHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.CreateRetroRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: title and narrative are required"})
		return
	}

	var eventDate *time.Time
	if req.EventDate != nil && *req.EventDate != "" {
		date, err := time.Parse(dto.DateLayout, *req.EventDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "event_date must be YYYY-MM-DD"})
			return
		}
		eventDate = &date
	}

	view, err := h.retroService.Create(c.Request.Context(), user.ID, req.Title, eventDate, req.Narrative)
	if err != nil {
		writeError(c, err, "failed to create retro")
		return
	}

	c.JSON(http.StatusCreated, dto.ToRetroResponse(view))
}

func (h *RetroHandler) Submit(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	retroID, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.NarrativeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: narrative is required"})
		return
	}

	view, err := h.retroService.Submit(c.Request.Context(), user.ID, retroID, req.Narrative)
	if err != nil {
		writeError(c, err, "failed to submit narrative")
		return
	}

	c.JSON(http.StatusCreated, dto.ToRetroResponse(view))
}

func (h *RetroHandler) Revise(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	retroID, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.NarrativeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: narrative is required"})
		return
	}

	view, err := h.retroService.Revise(c.Request.Context(), user.ID, retroID, req.Narrative)
	if err != nil {
		writeError(c, err, "failed to revise narrative")
		return
	}

	c.JSON(http.StatusOK, dto.ToRetroResponse(view))
}

func (h *RetroHandler) Get(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	retroID, ok := pathID(c)
	if !ok {
		return
	}

	view, err := h.retroService.Get(c.Request.Context(), user.ID, retroID)
	if err != nil {
		writeError(c, err, "failed to get retro")
		return
	}

	c.JSON(http.StatusOK, dto.ToRetroResponse(view))
}

func (h *RetroHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	limit, ok := queryLimit(c)
	if !ok {
		return
	}

	retros, err := h.retroService.List(c.Request.Context(), user.ID, limit)
	if err != nil {
		writeError(c, err, "failed to list retros")
		return
	}

	c.JSON(http.StatusOK, dto.ToContextListResponse(retros))
}

func (h *RetroHandler) Resolve(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	retroID, ok := pathID(c)
	if !ok {
		return
	}
	opts, ok := bindResolveRequest(c)
	if !ok {
		return
	}

	result, err := h.retroService.Resolve(c.Request.Context(), user.ID, retroID, opts)
	writeResolve(c, result, err)
}
