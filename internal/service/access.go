package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/alex28786/the-reef/internal/model"
	"github.com/alex28786/the-reef/internal/store"
)

// membership resolves a caller's reef and authorizes access to shared contexts.
type membership struct {
	users    store.UserStore
	contexts store.SharedContextStore
}

// reefOf returns the caller and their reef id.
func (m membership) reefOf(ctx context.Context, userID int64) (*model.User, int64, error) {
	user, err := m.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, 0, ErrUserNotFound
		}
		return nil, 0, fmt.Errorf("getting user: %w", err)
	}
	if user.ReefID == nil {
		return nil, 0, ErrNoReef
	}
	return user, *user.ReefID, nil
}

// partnerOf returns the other member of the caller's reef.
func (m membership) partnerOf(ctx context.Context, userID, reefID int64) (*model.User, error) {
	members, err := m.users.ListByReef(ctx, reefID)
	if err != nil {
		return nil, fmt.Errorf("listing reef members: %w", err)
	}
	for i := range members {
		if members[i].ID != userID {
			return &members[i], nil
		}
	}
	return nil, ErrPartnerMissing
}

// context loads a shared context of the given kind that the caller may act on.
func (m membership) context(ctx context.Context, userID, contextID int64, kind model.ContextKind) (*model.SharedContext, error) {
	_, reefID, err := m.reefOf(ctx, userID)
	if err != nil {
		return nil, err
	}

	sc, err := m.contexts.GetByID(ctx, contextID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrContextNotFound
		}
		return nil, fmt.Errorf("getting shared context: %w", err)
	}
	if sc.ReefID != reefID {
		return nil, ErrNotParticipant
	}
	if sc.Kind != kind {
		return nil, ErrWrongKind
	}
	return sc, nil
}
