package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/alex28786/the-reef/common/id"
	"github.com/alex28786/the-reef/common/logger"
	"github.com/alex28786/the-reef/internal/model"
	"github.com/alex28786/the-reef/internal/store"
)

// RetroService runs blind retrospectives: both partners write their story of
// one event, and neither sees the other's until both are in and analyzed.
type RetroService interface {
	Create(ctx context.Context, userID int64, title string, eventDate *time.Time, narrative string) (*RetroView, error)
	Submit(ctx context.Context, userID, retroID int64, narrative string) (*RetroView, error)
	// Revise replaces the caller's narrative while the partner has not submitted yet.
	Revise(ctx context.Context, userID, retroID int64, narrative string) (*RetroView, error)
	Get(ctx context.Context, userID, retroID int64) (*RetroView, error)
	List(ctx context.Context, userID int64, limit int32) ([]model.SharedContext, error)
	Resolve(ctx context.Context, userID, retroID int64, opts ResolveOptions) (ResolveResult, error)
}

const reviseLockTTL = 10 * time.Second

type retroService struct {
	membership
	submissions store.SubmissionStore
	txRunner    TxRunner
	resolver    Resolver
	locker      Locker
}

func NewRetroService(
	users store.UserStore,
	contexts store.SharedContextStore,
	submissions store.SubmissionStore,
	txRunner TxRunner,
	resolver Resolver,
	locker Locker,
) RetroService {
	return &retroService{
		membership:  membership{users: users, contexts: contexts},
		submissions: submissions,
		txRunner:    txRunner,
		resolver:    resolver,
		locker:      locker,
	}
}

func (s *retroService) Create(ctx context.Context, userID int64, title string, eventDate *time.Time, narrative string) (*RetroView, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	narrative, err := validateNarrative(narrative)
	if err != nil {
		return nil, err
	}

	_, reefID, err := s.reefOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	if _, err := s.partnerOf(ctx, userID, reefID); err != nil {
		return nil, err
	}

	retro := &model.SharedContext{
		ID:        id.New(),
		ReefID:    reefID,
		Kind:      model.ContextKindRetro,
		Title:     title,
		EventDate: eventDate,
		Status:    model.ContextStatusPending,
		Round:     1,
		CreatedBy: userID,
	}
	sub := &model.Submission{
		ID:        id.New(),
		ContextID: retro.ID,
		Round:     1,
		AuthorID:  userID,
		Body:      narrative,
	}

	err = s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		if err := sp.SharedContexts().Create(ctx, retro); err != nil {
			return fmt.Errorf("creating retro: %w", err)
		}
		if err := sp.Submissions().Create(ctx, sub); err != nil {
			return fmt.Errorf("creating narrative: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "retro started", "context_id", retro.ID, "submission_id", sub.ID)

	mine := ownView(sub)
	return &RetroView{Context: retro, Mine: &mine}, nil
}

func (s *retroService) Submit(ctx context.Context, userID, retroID int64, narrative string) (*RetroView, error) {
	narrative, err := validateNarrative(narrative)
	if err != nil {
		return nil, err
	}

	retro, err := s.context(ctx, userID, retroID, model.ContextKindRetro)
	if err != nil {
		return nil, err
	}
	if retro.IsRevealed() {
		return nil, ErrAlreadyRevealed
	}
	ctx = logger.WithLogFields(ctx, logger.LogFields{ContextID: logger.Ptr(retroID)})

	subs, err := s.submissions.ListByContextRound(ctx, retro.ID, retro.Round)
	if err != nil {
		return nil, fmt.Errorf("listing narratives: %w", err)
	}
	for _, sub := range subs {
		if sub.AuthorID == userID {
			return nil, ErrAlreadySubmitted
		}
	}
	if len(subs) >= model.SubmissionsPerRound {
		return nil, ErrRoundClosed
	}

	sub := &model.Submission{
		ID:        id.New(),
		ContextID: retro.ID,
		Round:     retro.Round,
		AuthorID:  userID,
		Body:      narrative,
	}
	if err := s.submissions.Create(ctx, sub); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, ErrAlreadySubmitted
		}
		return nil, fmt.Errorf("creating narrative: %w", err)
	}

	slog.InfoContext(ctx, "retro narrative submitted", "submission_id", sub.ID)
	return s.Get(ctx, userID, retroID)
}

func (s *retroService) Revise(ctx context.Context, userID, retroID int64, narrative string) (*RetroView, error) {
	narrative, err := validateNarrative(narrative)
	if err != nil {
		return nil, err
	}

	retro, err := s.context(ctx, userID, retroID, model.ContextKindRetro)
	if err != nil {
		return nil, err
	}
	if retro.IsRevealed() {
		return nil, ErrSubmissionLocked
	}

	mine, err := s.mine(ctx, userID, retro)
	if err != nil {
		return nil, err
	}

	// Under the enrichment lease the resolver cannot be reading this body.
	unlock, ok, err := s.locker.TryLock(ctx, EnrichLockKey(mine.ID), reviseLockTTL)
	if err != nil {
		return nil, fmt.Errorf("acquiring narrative lock: %w", err)
	}
	if !ok {
		return nil, ErrSubmissionLocked
	}
	defer unlock()

	subs, err := s.submissions.ListByContextRound(ctx, retro.ID, retro.Round)
	if err != nil {
		return nil, fmt.Errorf("listing narratives: %w", err)
	}
	if len(subs) >= model.SubmissionsPerRound {
		return nil, ErrSubmissionLocked
	}

	// The store refuses the update once the partner's narrative exists.
	if _, err := s.submissions.Revise(ctx, mine.ID, userID, narrative); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrSubmissionLocked
		}
		return nil, fmt.Errorf("revising narrative: %w", err)
	}

	slog.InfoContext(ctx, "retro narrative revised", "context_id", retroID, "submission_id", mine.ID)
	return s.Get(ctx, userID, retroID)
}

func (s *retroService) mine(ctx context.Context, userID int64, retro *model.SharedContext) (*model.Submission, error) {
	subs, err := s.submissions.ListByContextRound(ctx, retro.ID, retro.Round)
	if err != nil {
		return nil, fmt.Errorf("listing narratives: %w", err)
	}
	for i := range subs {
		if subs[i].AuthorID == userID {
			return &subs[i], nil
		}
	}
	return nil, ErrSubmissionNotFound
}

// Get returns the caller's side of the retro. Before the reveal the partner's
// narrative is reduced to a submitted flag.
func (s *retroService) Get(ctx context.Context, userID, retroID int64) (*RetroView, error) {
	retro, err := s.context(ctx, userID, retroID, model.ContextKindRetro)
	if err != nil {
		return nil, err
	}

	subs, err := s.submissions.ListByContextRound(ctx, retro.ID, retro.Round)
	if err != nil {
		return nil, fmt.Errorf("listing narratives: %w", err)
	}

	view := &RetroView{Context: retro}
	for i := range subs {
		sub := &subs[i]
		if sub.AuthorID == userID {
			mine := ownView(sub)
			view.Mine = &mine
			continue
		}

		view.PartnerSubmitted = true
		if retro.IsRevealed() {
			partner := ownView(sub)
			partner.Mine = false
			view.Partner = &partner
		}
	}
	return view, nil
}

func (s *retroService) List(ctx context.Context, userID int64, limit int32) ([]model.SharedContext, error) {
	_, reefID, err := s.reefOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	retros, err := s.contexts.ListByReef(ctx, reefID, model.ContextKindRetro, limit)
	if err != nil {
		return nil, fmt.Errorf("listing retros: %w", err)
	}
	return retros, nil
}

func (s *retroService) Resolve(ctx context.Context, userID, retroID int64, opts ResolveOptions) (ResolveResult, error) {
	if _, err := s.context(ctx, userID, retroID, model.ContextKindRetro); err != nil {
		return ResolveResult{}, err
	}
	return s.resolver.Resolve(ctx, retroID, opts)
}

func validateNarrative(narrative string) (string, error) {
	narrative = strings.TrimSpace(narrative)
	if narrative == "" {
		return "", fmt.Errorf("%w: narrative is required", ErrInvalidInput)
	}
	return narrative, nil
}
