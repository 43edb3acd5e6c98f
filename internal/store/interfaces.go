package store

import (
	"context"
	"errors"

	"github.com/alex28786/the-reef/internal/model"
)

// ErrNotFound is returned when a requested entity does not exist,
// or when a conditional update matched no row.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert violates a uniqueness constraint.
var ErrDuplicate = errors.New("duplicate")

// UserStore defines the contract for user data access
type UserStore interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Upsert(ctx context.Context, user *model.User) error
	// JoinReef sets the user's reef only if they have none yet.
	JoinReef(ctx context.Context, userID, reefID int64, role string) (*model.User, error)
	ListByReef(ctx context.Context, reefID int64) ([]model.User, error)
	CountByReef(ctx context.Context, reefID int64) (int64, error)
}

// SessionStore defines the contract for session data access
type SessionStore interface {
	Create(ctx context.Context, session *model.Session) error
	GetValidByToken(ctx context.Context, token string) (*model.Session, error) // checks expiry
	DeleteByToken(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) error
}

// ReefStore defines the contract for reef data access
type ReefStore interface {
	Create(ctx context.Context, reef *model.Reef) error
	GetByID(ctx context.Context, id int64) (*model.Reef, error)
}

// ReefInvitationStore defines the contract for reef invitation data access
type ReefInvitationStore interface {
	Create(ctx context.Context, inv *model.ReefInvitation) error
	GetValidByToken(ctx context.Context, token string) (*model.ReefInvitation, error)
	// Accept marks a pending invitation accepted. ErrNotFound if it was no longer pending.
	Accept(ctx context.Context, id, userID int64) (*model.ReefInvitation, error)
	ExpireOld(ctx context.Context) error
}

// SharedContextStore defines the contract for Bridge thread and Retro data access
type SharedContextStore interface {
	Create(ctx context.Context, sc *model.SharedContext) error
	GetByID(ctx context.Context, id int64) (*model.SharedContext, error)
	ListByReef(ctx context.Context, reefID int64, kind model.ContextKind, limit int32) ([]model.SharedContext, error)
	// MarkSubmitted moves a pending round to submitted. False if the round was not pending.
	MarkSubmitted(ctx context.Context, id int64, round int) (bool, error)
	// MarkRevealed moves the round to revealed. False if already revealed or the round moved on.
	MarkRevealed(ctx context.Context, id int64, round int) (bool, *model.SharedContext, error)
	// AdvanceRound opens round+1 on a revealed context. ErrNotFound if the round was not revealed.
	AdvanceRound(ctx context.Context, id int64, round int) (*model.SharedContext, error)
}

// SubmissionStore defines the contract for submission data access
type SubmissionStore interface {
	// Create inserts a submission. ErrDuplicate if the author already submitted in this round.
	Create(ctx context.Context, sub *model.Submission) error
	GetByID(ctx context.Context, id int64) (*model.Submission, error)
	ListByContextRound(ctx context.Context, contextID int64, round int) ([]model.Submission, error)
	ListByContext(ctx context.Context, contextID int64) ([]model.Submission, error)
	// SetEnrichmentIfEmpty writes the enrichment only when none is stored.
	// Returns false when another writer got there first; the stored value is left untouched.
	SetEnrichmentIfEmpty(ctx context.Context, id int64, enrichment *model.Enrichment) (bool, *model.Submission, error)
	// Revise replaces the body of an unenriched submission owned by authorID.
	// It returns ErrNotFound once another author has submitted in the same round.
	Revise(ctx context.Context, id, authorID int64, body string) (*model.Submission, error)
	SetArtifact(ctx context.Context, id, authorID int64, artifact string) (*model.Submission, error)
	// Acknowledge stamps acknowledged_at once. False if it was already acknowledged.
	Acknowledge(ctx context.Context, id int64) (bool, *model.Submission, error)
}

// SystemPromptStore defines the contract for prompt override data access
type SystemPromptStore interface {
	Get(ctx context.Context, key string) (*model.SystemPrompt, error)
	Upsert(ctx context.Context, key, text string) (*model.SystemPrompt, error)
	List(ctx context.Context) ([]model.SystemPrompt, error)
}

// LLMEvalStore defines the contract for enrichment evaluation logs
type LLMEvalStore interface {
	Create(ctx context.Context, eval *model.LLMEval) (*model.LLMEval, error)
	ListBySubmission(ctx context.Context, submissionID int64) ([]model.LLMEval, error)
}
