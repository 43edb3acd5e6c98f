package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/alex28786/the-reef/internal/http/dto"
	"github.com/alex28786/the-reef/internal/service"
)

type ThreadHandler struct {
	bridgeService service.BridgeService
}

func NewThreadHandler(bridgeService service.BridgeService) *ThreadHandler {
	return &ThreadHandler{bridgeService: bridgeService}
}

// Compose opens a thread with its first message.
func (h *ThreadHandler) Compose(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.ComposeThreadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: body and emotion are required"})
		return
	}

	view, err := h.bridgeService.Compose(c.Request.Context(), user.ID, req.Title, service.MessageParams{
		Body:    req.Body,
		Emotion: req.Emotion,
	})
	if err != nil {
		writeError(c, err, "failed to compose message")
		return
	}

	c.JSON(http.StatusCreated, dto.ToThreadResponse(view))
}

// Send adds a response to the open round, or opens the next round on a revealed thread.
func (h *ThreadHandler) Send(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	threadID, ok := pathID(c)
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request: body is required"})
		return
	}

	view, err := h.bridgeService.Send(c.Request.Context(), user.ID, threadID, service.MessageParams{
		Body:    req.Body,
		Emotion: req.Emotion,
	})
	if err != nil {
		writeError(c, err, "failed to send message")
		return
	}

	c.JSON(http.StatusCreated, dto.ToThreadResponse(view))
}

func (h *ThreadHandler) Get(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	threadID, ok := pathID(c)
	if !ok {
		return
	}

	view, err := h.bridgeService.Get(c.Request.Context(), user.ID, threadID)
	if err != nil {
		writeError(c, err, "failed to get thread")
		return
	}

	c.JSON(http.StatusOK, dto.ToThreadResponse(view))
}

func (h *ThreadHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	limit, ok := queryLimit(c)
	if !ok {
		return
	}

	threads, err := h.bridgeService.List(c.Request.Context(), user.ID, limit)
	if err != nil {
		writeError(c, err, "failed to list threads")
		return
	}

	c.JSON(http.StatusOK, dto.ToContextListResponse(threads))
}

func (h *ThreadHandler) Acknowledge(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	threadID, ok := pathID(c)
	if !ok {
		return
	}

	view, err := h.bridgeService.Acknowledge(c.Request.Context(), user.ID, threadID)
	if err != nil {
		writeError(c, err, "failed to acknowledge message")
		return
	}

	c.JSON(http.StatusOK, dto.ToThreadResponse(view))
}

func (h *ThreadHandler) Resolve(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	threadID, ok := pathID(c)
	if !ok {
		return
	}
	opts, ok := bindResolveRequest(c)
	if !ok {
		return
	}

	result, err := h.bridgeService.Resolve(c.Request.Context(), user.ID, threadID, opts)
	writeResolve(c, result, err)
}
