package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/alex28786/the-reef/common/id"
	"github.com/alex28786/the-reef/internal/model"
	"github.com/alex28786/the-reef/internal/store"
)

const (
	InviteTokenLength = 32
	InviteExpiryDays  = 7
)

const (
	RoleOwner   = "owner"
	RolePartner = "partner"
)

var (
	ErrAlreadyInReef = errors.New("user already belongs to a reef")
	ErrReefFull      = errors.New("reef already has two members")
	ErrInviteInvalid = errors.New("invitation is invalid or has expired")
)

// ReefService pairs two users into a reef through an invitation link.
type ReefService interface {
	Create(ctx context.Context, userID int64, name string) (*model.Reef, error)
	Invite(ctx context.Context, userID int64, email string) (*model.ReefInvitation, string, error)
	ValidateInvite(ctx context.Context, token string) (*model.ReefInvitation, *model.Reef, error)
	Join(ctx context.Context, userID int64, token string) (*model.Reef, error)
}

type reefService struct {
	users        store.UserStore
	reefs        store.ReefStore
	invitations  store.ReefInvitationStore
	txRunner     TxRunner
	dashboardURL string
}

func NewReefService(
	users store.UserStore,
	reefs store.ReefStore,
	invitations store.ReefInvitationStore,
	txRunner TxRunner,
	dashboardURL string,
) ReefService {
	return &reefService{
		users:        users,
		reefs:        reefs,
		invitations:  invitations,
		txRunner:     txRunner,
		dashboardURL: dashboardURL,
	}
}

func (s *reefService) Create(ctx context.Context, userID int64, name string) (*model.Reef, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: reef name is required", ErrInvalidInput)
	}

	reef := &model.Reef{ID: id.New(), Name: name}

	err := s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		if err := sp.Reefs().Create(ctx, reef); err != nil {
			return fmt.Errorf("creating reef: %w", err)
		}
		if _, err := sp.Users().JoinReef(ctx, userID, reef.ID, RoleOwner); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrAlreadyInReef
			}
			return fmt.Errorf("joining reef: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "reef created", "reef_id", reef.ID, "user_id", userID)
	return reef, nil
}

func (s *reefService) Invite(ctx context.Context, userID int64, email string) (*model.ReefInvitation, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, "", fmt.Errorf("%w: a valid email is required", ErrInvalidInput)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, "", fmt.Errorf("getting user: %w", err)
	}
	if user.ReefID == nil {
		return nil, "", ErrNoReef
	}

	members, err := s.users.CountByReef(ctx, *user.ReefID)
	if err != nil {
		return nil, "", fmt.Errorf("counting reef members: %w", err)
	}
	if members >= model.MaxReefMembers {
		return nil, "", ErrReefFull
	}

	token, err := generateSecureToken(InviteTokenLength)
	if err != nil {
		return nil, "", fmt.Errorf("generating token: %w", err)
	}

	inv := &model.ReefInvitation{
		ID:        id.New(),
		ReefID:    *user.ReefID,
		Email:     email,
		Token:     token,
		Status:    model.InvitationStatusPending,
		InvitedBy: userID,
		ExpiresAt: time.Now().Add(InviteExpiryDays * 24 * time.Hour),
	}
	if err := s.invitations.Create(ctx, inv); err != nil {
		return nil, "", fmt.Errorf("creating invitation: %w", err)
	}

	inviteURL := fmt.Sprintf("%s/invite?token=%s", s.dashboardURL, token)

	slog.InfoContext(ctx, "reef invitation created",
		"invitation_id", inv.ID,
		"reef_id", inv.ReefID,
		"expires_at", inv.ExpiresAt)

	return inv, inviteURL, nil
}

func (s *reefService) ValidateInvite(ctx context.Context, token string) (*model.ReefInvitation, *model.Reef, error) {
	inv, err := s.invitations.GetValidByToken(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, ErrInviteInvalid
		}
		return nil, nil, fmt.Errorf("getting invitation: %w", err)
	}

	reef, err := s.reefs.GetByID(ctx, inv.ReefID)
	if err != nil {
		return nil, nil, fmt.Errorf("getting reef: %w", err)
	}
	return inv, reef, nil
}

func (s *reefService) Join(ctx context.Context, userID int64, token string) (*model.Reef, error) {
	inv, reef, err := s.ValidateInvite(ctx, token)
	if err != nil {
		return nil, err
	}

	err = s.txRunner.WithTx(ctx, func(sp StoreProvider) error {
		members, err := sp.Users().CountByReef(ctx, reef.ID)
		if err != nil {
			return fmt.Errorf("counting reef members: %w", err)
		}
		if members >= model.MaxReefMembers {
			return ErrReefFull
		}

		if _, err := sp.ReefInvitations().Accept(ctx, inv.ID, userID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInviteInvalid
			}
			return fmt.Errorf("accepting invitation: %w", err)
		}

		if _, err := sp.Users().JoinReef(ctx, userID, reef.ID, RolePartner); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrAlreadyInReef
			}
			return fmt.Errorf("joining reef: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "user joined reef", "reef_id", reef.ID, "user_id", userID, "invitation_id", inv.ID)
	return reef, nil
}

func generateSecureToken(length int) (string, error) {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
