package service

import (
	"time"

	"github.com/alex28786/the-reef/internal/model"
)

// SubmissionView is a submission as one viewer is allowed to see it.
// Hidden fields are nil.
type SubmissionView struct {
	ID             int64
	AuthorID       int64
	Mine           bool
	Round          int
	Body           *string
	Emotion        *model.Emotion
	Enrichment     *model.Enrichment
	Artifact       *string
	AcknowledgedAt *time.Time
	SubmittedAt    time.Time
}

// ThreadView is a Bridge thread across all of its rounds, oldest first.
type ThreadView struct {
	Context  *model.SharedContext
	Messages []SubmissionView
}

// RetroView is a Retro from one participant's side.
type RetroView struct {
	Context          *model.SharedContext
	Mine             *SubmissionView
	Partner          *SubmissionView
	PartnerSubmitted bool
}

func ownView(sub *model.Submission) SubmissionView {
	body := sub.Body
	return SubmissionView{
		ID:             sub.ID,
		AuthorID:       sub.AuthorID,
		Mine:           true,
		Round:          sub.Round,
		Body:           &body,
		Emotion:        sub.Emotion,
		Enrichment:     sub.Enrichment,
		Artifact:       sub.Artifact,
		AcknowledgedAt: sub.AcknowledgedAt,
		SubmittedAt:    sub.SubmittedAt,
	}
}

// roundRevealed reports whether the round a submission belongs to has been revealed.
// Earlier rounds of a thread were revealed before the thread moved on.
func roundRevealed(sc *model.SharedContext, sub *model.Submission) bool {
	return sub.Round < sc.Round || sc.IsRevealed()
}
