package model

import "time"

// SystemPrompt overrides a built-in analysis prompt by key.
type SystemPrompt struct {
	Key       string    `json:"key"`
	Text      string    `json:"prompt_text"`
	UpdatedAt time.Time `json:"updated_at"`
}
