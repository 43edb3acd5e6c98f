package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/alex28786/the-reef/internal/model"
	"github.com/alex28786/the-reef/internal/store"
)

// SubmissionService covers operations on a single submission regardless of kind.
type SubmissionService interface {
	// SaveArtifact stores derived text (a retro future-script or a bridge follow-up)
	// on the caller's own submission once its round is revealed.
	SaveArtifact(ctx context.Context, userID, submissionID int64, artifact string) (*model.Submission, error)
}

type submissionService struct {
	membership
	submissions store.SubmissionStore
}

func NewSubmissionService(users store.UserStore, contexts store.SharedContextStore, submissions store.SubmissionStore) SubmissionService {
	return &submissionService{
		membership:  membership{users: users, contexts: contexts},
		submissions: submissions,
	}
}

func (s *submissionService) SaveArtifact(ctx context.Context, userID, submissionID int64, artifact string) (*model.Submission, error) {
	artifact = strings.TrimSpace(artifact)
	if artifact == "" {
		return nil, fmt.Errorf("%w: artifact text is required", ErrInvalidInput)
	}

	sub, err := s.submissions.GetByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("getting submission: %w", err)
	}
	if sub.AuthorID != userID {
		return nil, ErrNotAuthor
	}

	sc, err := s.contexts.GetByID(ctx, sub.ContextID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrContextNotFound
		}
		return nil, fmt.Errorf("getting shared context: %w", err)
	}
	if !roundRevealed(sc, sub) {
		return nil, ErrNotRevealed
	}

	updated, err := s.submissions.SetArtifact(ctx, sub.ID, userID, artifact)
	if err != nil {
		return nil, fmt.Errorf("saving artifact: %w", err)
	}

	slog.InfoContext(ctx, "artifact saved", "submission_id", sub.ID, "context_id", sc.ID)
	return updated, nil
}
