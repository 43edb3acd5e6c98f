package dto

import (
	"time"

	"github.com/alex28786/the-reef/internal/analysis"
)

type UpdatePromptRequest struct {
	Text string `json:"text" binding:"required"`
}

type PromptResponse struct {
	Key        string     `json:"key"`
	Text       string     `json:"text"`
	Overridden bool       `json:"overridden"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}

func ToPromptResponse(e analysis.PromptEntry) PromptResponse {
	return PromptResponse{
		Key:        e.Key,
		Text:       e.Text,
		Overridden: e.Overridden,
		UpdatedAt:  e.UpdatedAt,
	}
}
