package dto

import (
	"time"

	"github.com/alex28786/the-reef/internal/model"
	"github.com/alex28786/the-reef/internal/service"
)

// DateLayout is the wire format of a retro's event date.
const DateLayout = "2006-01-02"

type ComposeThreadRequest struct {
	Title   string         `json:"title" binding:"max=255"`
	Body    string         `json:"body" binding:"required"`
	Emotion *model.Emotion `json:"emotion" binding:"required"`
}

type SendMessageRequest struct {
	Body    string         `json:"body" binding:"required"`
	Emotion *model.Emotion `json:"emotion,omitempty"`
}

type CreateRetroRequest struct {
	Title     string  `json:"title" binding:"required,max=255"`
	EventDate *string `json:"event_date,omitempty"`
	Narrative string  `json:"narrative" binding:"required"`
}

type NarrativeRequest struct {
	Narrative string `json:"narrative" binding:"required"`
}

type ResolveRequest struct {
	Mock bool `json:"mock"`
}

type ResolveResponse struct {
	Status  service.ResolveStatus `json:"status"`
	Message string                `json:"message,omitempty"`
	Context *ContextResponse      `json:"context,omitempty"`
}

type SaveArtifactRequest struct {
	Artifact string `json:"artifact" binding:"required,max=10000"`
}

type ContextResponse struct {
	ID        int64               `json:"id,string"`
	ReefID    int64               `json:"reef_id,string"`
	Kind      model.ContextKind   `json:"kind"`
	Title     string              `json:"title"`
	EventDate *string             `json:"event_date,omitempty"`
	Status    model.ContextStatus `json:"status"`
	Round     int                 `json:"round"`
	CreatedBy int64               `json:"created_by,string"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

type ContextListResponse struct {
	Contexts []ContextResponse `json:"contexts"`
}

// SubmissionResponse omits whatever the viewer may not see yet.
type SubmissionResponse struct {
	ID             int64             `json:"id,string"`
	AuthorID       int64             `json:"author_id,string"`
	Mine           bool              `json:"mine"`
	Round          int               `json:"round"`
	Body           *string           `json:"body,omitempty"`
	Emotion        *model.Emotion    `json:"emotion,omitempty"`
	Enrichment     *model.Enrichment `json:"enrichment,omitempty"`
	Artifact       *string           `json:"artifact,omitempty"`
	AcknowledgedAt *time.Time        `json:"acknowledged_at,omitempty"`
	SubmittedAt    time.Time         `json:"submitted_at"`
}

type ThreadResponse struct {
	Thread   ContextResponse      `json:"thread"`
	Messages []SubmissionResponse `json:"messages"`
}

type RetroResponse struct {
	Retro            ContextResponse     `json:"retro"`
	Mine             *SubmissionResponse `json:"mine,omitempty"`
	Partner          *SubmissionResponse `json:"partner,omitempty"`
	PartnerSubmitted bool                `json:"partner_submitted"`
}

type ArtifactResponse struct {
	SubmissionID int64   `json:"submission_id,string"`
	ContextID    int64   `json:"context_id,string"`
	Artifact     *string `json:"artifact"`
}

func ToContextResponse(sc *model.SharedContext) ContextResponse {
	resp := ContextResponse{
		ID:        sc.ID,
		ReefID:    sc.ReefID,
		Kind:      sc.Kind,
		Title:     sc.Title,
		Status:    sc.Status,
		Round:     sc.Round,
		CreatedBy: sc.CreatedBy,
		CreatedAt: sc.CreatedAt,
		UpdatedAt: sc.UpdatedAt,
	}
	if sc.EventDate != nil {
		date := sc.EventDate.Format(DateLayout)
		resp.EventDate = &date
	}
	return resp
}

func ToContextListResponse(contexts []model.SharedContext) ContextListResponse {
	resp := ContextListResponse{Contexts: make([]ContextResponse, len(contexts))}
	for i := range contexts {
		resp.Contexts[i] = ToContextResponse(&contexts[i])
	}
	return resp
}

func ToSubmissionResponse(v service.SubmissionView) SubmissionResponse {
	return SubmissionResponse{
		ID:             v.ID,
		AuthorID:       v.AuthorID,
		Mine:           v.Mine,
		Round:          v.Round,
		Body:           v.Body,
		Emotion:        v.Emotion,
		Enrichment:     v.Enrichment,
		Artifact:       v.Artifact,
		AcknowledgedAt: v.AcknowledgedAt,
		SubmittedAt:    v.SubmittedAt,
	}
}

func ToThreadResponse(v *service.ThreadView) ThreadResponse {
	resp := ThreadResponse{
		Thread:   ToContextResponse(v.Context),
		Messages: make([]SubmissionResponse, len(v.Messages)),
	}
	for i, msg := range v.Messages {
		resp.Messages[i] = ToSubmissionResponse(msg)
	}
	return resp
}

func ToRetroResponse(v *service.RetroView) RetroResponse {
	resp := RetroResponse{
		Retro:            ToContextResponse(v.Context),
		PartnerSubmitted: v.PartnerSubmitted,
	}
	if v.Mine != nil {
		mine := ToSubmissionResponse(*v.Mine)
		resp.Mine = &mine
	}
	if v.Partner != nil {
		partner := ToSubmissionResponse(*v.Partner)
		resp.Partner = &partner
	}
	return resp
}

func ToResolveResponse(r service.ResolveResult) ResolveResponse {
	resp := ResolveResponse{Status: r.Status, Message: r.Message}
	if r.Context != nil {
		sc := ToContextResponse(r.Context)
		resp.Context = &sc
	}
	return resp
}

func ToArtifactResponse(sub *model.Submission) ArtifactResponse {
	return ArtifactResponse{
		SubmissionID: sub.ID,
		ContextID:    sub.ContextID,
		Artifact:     sub.Artifact,
	}
}
