package model

import "time"

// Submission is one participant's contribution to a round: a Bridge message or a Retro narrative.
type Submission struct {
	ID             int64       `json:"id"`
	ContextID      int64       `json:"context_id"`
	Round          int         `json:"round"`
	AuthorID       int64       `json:"author_id"`
	Body           string      `json:"body"`
	Emotion        *Emotion    `json:"emotion,omitempty"`
	Enrichment     *Enrichment `json:"enrichment,omitempty"`
	EnrichedAt     *time.Time  `json:"enriched_at,omitempty"`
	Artifact       *string     `json:"artifact,omitempty"`
	AcknowledgedAt *time.Time  `json:"acknowledged_at,omitempty"`
	SubmittedAt    time.Time   `json:"submitted_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

func (s *Submission) IsEnriched() bool {
	return s.Enrichment != nil
}

func (s *Submission) IsAcknowledged() bool {
	return s.AcknowledgedAt != nil
}
