package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/alex28786/the-reef/common/id"
	"github.com/alex28786/the-reef/common/logger"
	"github.com/alex28786/the-reef/internal/analysis"
	"github.com/alex28786/the-reef/internal/model"
	"github.com/alex28786/the-reef/internal/store"
)

const defaultListLimit = 50

// MessageParams is one Bridge message or response.
type MessageParams struct {
	Body string
	// Emotion is required for the message that opens a round and optional for a response.
	Emotion *model.Emotion
}

// BridgeService runs Bridge threads: one partner sends a message, the other
// acknowledges and responds, and the round is revealed once both are analyzed.
type BridgeService interface {
	Compose(ctx context.Context, userID int64, title string, msg MessageParams) (*ThreadView, error)
	Send(ctx context.Context, userID, threadID int64, msg MessageParams) (*ThreadView, error)
	Get(ctx context.Context, userID, threadID int64) (*ThreadView, error)
	List(ctx context.Context, userID int64, limit int32) ([]model.SharedContext, error)
	Acknowledge(ctx context.Context, userID, threadID int64) (*ThreadView, error)
	Resolve(ctx context.Context, userID, threadID int64, opts ResolveOptions) (ResolveResult, error)
}

type bridgeService struct {
	membership
	submissions store.SubmissionStore
	txRunner    TxRunner
	resolver    Resolver
}

func NewBridgeService(
	users store.UserStore,
	contexts store.SharedContextStore,
	submissions store.SubmissionStore,
	txRunner TxRunner,
	resolver Resolver,
) BridgeService {
	return &bridgeService{
		membership:  membership{users: users, contexts: contexts},
		submissions: submissions,
		txRunner:    txRunner,
		resolver:    resolver,
	}
}

func (s *bridgeService) Compose(ctx context.Context, userID int64, title string, msg MessageParams) (*ThreadView, error) {
	if err := validateMessage(msg, true); err != nil {
		return nil, err
	}

	_, reefID, err := s.reefOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	if _, err := s.partnerOf(ctx, userID, reefID); err != nil {
		return nil, err
	}

	thread := &model.SharedContext{
		ID:        id.New(),
		ReefID:    reefID,
		Kind:      model.ContextKindBridge,
		Title:     strings.TrimSpace(title),
		Status:    model.ContextStatusPending,
		Round:     1,
		CreatedBy: userID,
	}
	sub := &model.Submission{
		ID:        id.New(),
		ContextID: thread.ID,
		Round:     1,
		AuthorID:  userID,
		Body:      strings.TrimSpace(msg.Body),
		Emotion:   msg.Emotion,
	}

	err = s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		if err := sp.SharedContexts().Create(ctx, thread); err != nil {
			return fmt.Errorf("creating thread: %w", err)
		}
		if err := sp.Submissions().Create(ctx, sub); err != nil {
			return fmt.Errorf("creating message: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "bridge thread started",
		"context_id", thread.ID,
		"submission_id", sub.ID,
		"emotion", *msg.Emotion)

	return &ThreadView{Context: thread, Messages: []SubmissionView{ownView(sub)}}, nil
}

// Send adds the caller's submission to the thread. On a revealed thread it
// opens the next round; otherwise it answers the partner's open message.
func (s *bridgeService) Send(ctx context.Context, userID, threadID int64, msg MessageParams) (*ThreadView, error) {
	thread, err := s.context(ctx, userID, threadID, model.ContextKindBridge)
	if err != nil {
		return nil, err
	}
	ctx = logger.WithLogFields(ctx, logger.LogFields{ContextID: logger.Ptr(threadID)})

	if thread.IsRevealed() {
		if err := validateMessage(msg, true); err != nil {
			return nil, err
		}
		err := s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
			next, err := sp.SharedContexts().AdvanceRound(ctx, thread.ID, thread.Round)
			if err != nil {
				if errors.Is(err, store.ErrNotFound) {
					return ErrRoundClosed
				}
				return fmt.Errorf("advancing round: %w", err)
			}
			thread = next
			return s.createSubmission(ctx, sp.Submissions(), thread, userID, msg)
		})
		if err != nil {
			return nil, err
		}
		slog.InfoContext(ctx, "bridge thread reopened", "round", thread.Round)
		return s.Get(ctx, userID, threadID)
	}

	subs, err := s.submissions.ListByContextRound(ctx, thread.ID, thread.Round)
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}
	for _, sub := range subs {
		if sub.AuthorID == userID {
			return nil, ErrAlreadySubmitted
		}
	}
	if len(subs) >= model.SubmissionsPerRound {
		return nil, ErrRoundClosed
	}

	opensRound := len(subs) == 0
	if err := validateMessage(msg, opensRound); err != nil {
		return nil, err
	}

	if err := s.createSubmission(ctx, s.submissions, thread, userID, msg); err != nil {
		return nil, err
	}

	// Answering implies the message was read
	if !opensRound && !subs[0].IsAcknowledged() {
		if _, _, err := s.submissions.Acknowledge(ctx, subs[0].ID); err != nil {
			slog.WarnContext(ctx, "failed to acknowledge answered message", "error", err)
		}
	}

	return s.Get(ctx, userID, threadID)
}

func (s *bridgeService) createSubmission(ctx context.Context, subs store.SubmissionStore, thread *model.SharedContext, userID int64, msg MessageParams) error {
	sub := &model.Submission{
		ID:        id.New(),
		ContextID: thread.ID,
		Round:     thread.Round,
		AuthorID:  userID,
		Body:      strings.TrimSpace(msg.Body),
		Emotion:   msg.Emotion,
	}
	if err := subs.Create(ctx, sub); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return ErrAlreadySubmitted
		}
		return fmt.Errorf("creating message: %w", err)
	}
	slog.InfoContext(ctx, "bridge message sent", "submission_id", sub.ID, "round", sub.Round)
	return nil
}

func (s *bridgeService) Get(ctx context.Context, userID, threadID int64) (*ThreadView, error) {
	thread, err := s.context(ctx, userID, threadID, model.ContextKindBridge)
	if err != nil {
		return nil, err
	}

	subs, err := s.submissions.ListByContext(ctx, thread.ID)
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}

	return &ThreadView{Context: thread, Messages: bridgeViews(thread, subs, userID)}, nil
}

func (s *bridgeService) List(ctx context.Context, userID int64, limit int32) ([]model.SharedContext, error) {
	_, reefID, err := s.reefOf(ctx, userID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	threads, err := s.contexts.ListByReef(ctx, reefID, model.ContextKindBridge, limit)
	if err != nil {
		return nil, fmt.Errorf("listing threads: %w", err)
	}
	return threads, nil
}

// Acknowledge marks the partner's open message of the current round as read.
// Acknowledging twice is a no-op.
func (s *bridgeService) Acknowledge(ctx context.Context, userID, threadID int64) (*ThreadView, error) {
	thread, err := s.context(ctx, userID, threadID, model.ContextKindBridge)
	if err != nil {
		return nil, err
	}

	subs, err := s.submissions.ListByContextRound(ctx, thread.ID, thread.Round)
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}
	if len(subs) == 0 || subs[0].AuthorID == userID {
		return nil, ErrNoMessageToAcknowledge
	}

	acknowledged, _, err := s.submissions.Acknowledge(ctx, subs[0].ID)
	if err != nil {
		return nil, fmt.Errorf("acknowledging message: %w", err)
	}
	if acknowledged {
		slog.InfoContext(ctx, "bridge message acknowledged", "submission_id", subs[0].ID)
	}

	return s.Get(ctx, userID, threadID)
}

func (s *bridgeService) Resolve(ctx context.Context, userID, threadID int64, opts ResolveOptions) (ResolveResult, error) {
	if _, err := s.context(ctx, userID, threadID, model.ContextKindBridge); err != nil {
		return ResolveResult{}, err
	}
	return s.resolver.Resolve(ctx, threadID, opts)
}

// bridgeViews applies the thread visibility rules. The recipient sees a
// message's emotion at once and its text after acknowledging. A response is
// hidden from the original sender until the round is revealed. Enrichment is
// visible to its author, and to the partner once the round is revealed.
func bridgeViews(thread *model.SharedContext, subs []model.Submission, viewerID int64) []SubmissionView {
	views := make([]SubmissionView, 0, len(subs))
	openers := make(map[int]int64)

	for i := range subs {
		sub := &subs[i]
		if _, seen := openers[sub.Round]; !seen {
			openers[sub.Round] = sub.ID
		}

		if sub.AuthorID == viewerID {
			views = append(views, ownView(sub))
			continue
		}

		view := SubmissionView{
			ID:             sub.ID,
			AuthorID:       sub.AuthorID,
			Round:          sub.Round,
			Emotion:        sub.Emotion,
			AcknowledgedAt: sub.AcknowledgedAt,
			SubmittedAt:    sub.SubmittedAt,
		}
		revealed := roundRevealed(thread, sub)
		isOpener := openers[sub.Round] == sub.ID

		if (isOpener && sub.IsAcknowledged()) || revealed {
			body := sub.Body
			view.Body = &body
		}
		if revealed {
			view.Enrichment = sub.Enrichment
			view.Artifact = sub.Artifact
		}
		views = append(views, view)
	}
	return views
}

func validateMessage(msg MessageParams, opensRound bool) error {
	body := strings.TrimSpace(msg.Body)
	if len([]rune(body)) < analysis.MinBridgeTextLength {
		return fmt.Errorf("%w: message must be at least %d characters", ErrInvalidInput, analysis.MinBridgeTextLength)
	}
	if msg.Emotion != nil && !msg.Emotion.Valid() {
		return fmt.Errorf("%w: unknown emotion %q", ErrInvalidInput, *msg.Emotion)
	}
	if opensRound && msg.Emotion == nil {
		return fmt.Errorf("%w: emotion is required", ErrInvalidInput)
	}
	return nil
}
