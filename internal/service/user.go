package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/alex28786/the-reef/internal/model"
	"github.com/alex28786/the-reef/internal/store"
)

// Profile is the signed-in user with their reef and partner, when they have them.
type Profile struct {
	User    *model.User
	Reef    *model.Reef
	Partner *model.User
}

type UserService interface {
	Profile(ctx context.Context, userID int64) (*Profile, error)
}

type userService struct {
	userStore store.UserStore
	reefStore store.ReefStore
}

func NewUserService(userStore store.UserStore, reefStore store.ReefStore) UserService {
	return &userService{
		userStore: userStore,
		reefStore: reefStore,
	}
}

func (s *userService) Profile(ctx context.Context, userID int64) (*Profile, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("getting user: %w", err)
	}

	profile := &Profile{User: user}
	if user.ReefID == nil {
		return profile, nil
	}

	reef, err := s.reefStore.GetByID(ctx, *user.ReefID)
	if err != nil {
		return nil, fmt.Errorf("getting reef: %w", err)
	}
	profile.Reef = reef

	members, err := s.userStore.ListByReef(ctx, reef.ID)
	if err != nil {
		return nil, fmt.Errorf("listing reef members: %w", err)
	}
	for i := range members {
		if members[i].ID != user.ID {
			profile.Partner = &members[i]
			break
		}
	}

	return profile, nil
}
