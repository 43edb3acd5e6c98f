package model

import "time"

// ContextKind selects the feature a shared context belongs to.
type ContextKind string

const (
	ContextKindBridge ContextKind = "bridge"
	ContextKindRetro  ContextKind = "retro"
)

func (k ContextKind) Valid() bool {
	return k == ContextKindBridge || k == ContextKindRetro
}

// ContextStatus is the lifecycle of the current round.
//
//	pending   - fewer than two submissions
//	submitted - both submissions in, enrichment incomplete
//	revealed  - every submission of the round carries an enrichment
type ContextStatus string

const (
	ContextStatusPending   ContextStatus = "pending"
	ContextStatusSubmitted ContextStatus = "submitted"
	ContextStatusRevealed  ContextStatus = "revealed"
)

// SubmissionsPerRound is the number of submissions that completes a round.
const SubmissionsPerRound = 2

// SharedContext is a Bridge thread or a Retro owned jointly by the two reef members.
type SharedContext struct {
	ID        int64         `json:"id"`
	ReefID    int64         `json:"reef_id"`
	Kind      ContextKind   `json:"kind"`
	Title     string        `json:"title"`
	EventDate *time.Time    `json:"event_date,omitempty"`
	Status    ContextStatus `json:"status"`
	Round     int           `json:"round"`
	CreatedBy int64         `json:"created_by"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

func (c *SharedContext) IsRevealed() bool {
	return c.Status == ContextStatusRevealed
}
