package model

import "time"

// LLMEval records one enrichment run for later review of prompt quality.
type LLMEval struct {
	ID               int64     `json:"id"`
	ContextID        *int64    `json:"context_id,omitempty"`
	SubmissionID     *int64    `json:"submission_id,omitempty"`
	Stage            string    `json:"stage"`
	InputText        string    `json:"input_text"`
	OutputJSON       []byte    `json:"output_json"`
	Model            string    `json:"model"`
	Temperature      *float64  `json:"temperature,omitempty"`
	PromptVersion    *string   `json:"prompt_version,omitempty"`
	LatencyMs        *int      `json:"latency_ms,omitempty"`
	PromptTokens     *int      `json:"prompt_tokens,omitempty"`
	CompletionTokens *int      `json:"completion_tokens,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}
