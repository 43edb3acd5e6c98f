package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/workos/workos-go/v6/pkg/usermanagement"

	"github.com/alex28786/the-reef/common/id"
	"github.com/alex28786/the-reef/core/config"
	"github.com/alex28786/the-reef/internal/model"
	"github.com/alex28786/the-reef/internal/store"
)

const (
	SessionDuration    = 7 * 24 * time.Hour
	SessionTokenLength = 32
)

var (
	ErrInvalidCode         = errors.New("invalid authorization code")
	ErrUserNotFound        = errors.New("user not found")
	ErrSessionExpired      = errors.New("session expired")
	ErrAuthNotConfigured   = errors.New("identity provider not configured")
	ErrDevLoginUnavailable = errors.New("dev login is disabled in production")
)

type AuthService interface {
	GetAuthorizationURL(state string) (string, error)
	HandleCallback(ctx context.Context, code string) (*model.User, *model.Session, error)
	// DevLogin signs in by email without the identity provider. Never available in production.
	DevLogin(ctx context.Context, email, name string) (*model.User, *model.Session, error)
	ValidateSession(ctx context.Context, token string) (*model.User, error)
	Logout(ctx context.Context, token string) error
}

type authService struct {
	userStore    store.UserStore
	sessionStore store.SessionStore
	cfg          config.WorkOSConfig
	production   bool
}

func NewAuthService(
	userStore store.UserStore,
	sessionStore store.SessionStore,
	cfg config.WorkOSConfig,
	production bool,
) AuthService {
	if cfg.Enabled() {
		usermanagement.SetAPIKey(cfg.APIKey)
	}
	return &authService{
		userStore:    userStore,
		sessionStore: sessionStore,
		cfg:          cfg,
		production:   production,
	}
}

func (s *authService) GetAuthorizationURL(state string) (string, error) {
	if !s.cfg.Enabled() {
		return "", ErrAuthNotConfigured
	}
	url, err := usermanagement.GetAuthorizationURL(usermanagement.GetAuthorizationURLOpts{
		ClientID:    s.cfg.ClientID,
		RedirectURI: s.cfg.RedirectURI,
		State:       state,
		Provider:    "authkit",
	})
	if err != nil {
		return "", fmt.Errorf("generating authorization URL: %w", err)
	}
	return url.String(), nil
}

func (s *authService) HandleCallback(ctx context.Context, code string) (*model.User, *model.Session, error) {
	if !s.cfg.Enabled() {
		return nil, nil, ErrAuthNotConfigured
	}

	authResponse, err := usermanagement.AuthenticateWithCode(ctx, usermanagement.AuthenticateWithCodeOpts{
		ClientID: s.cfg.ClientID,
		Code:     code,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to authenticate with code", "error", err)
		return nil, nil, ErrInvalidCode
	}

	workosUser := authResponse.User

	var avatarURL *string
	if workosUser.ProfilePictureURL != "" {
		avatarURL = &workosUser.ProfilePictureURL
	}

	user := &model.User{
		ID:        id.New(),
		Name:      buildUserName(workosUser),
		Email:     strings.ToLower(workosUser.Email),
		AvatarURL: avatarURL,
		WorkOSID:  &workosUser.ID,
	}

	return s.signIn(ctx, user)
}

func (s *authService) DevLogin(ctx context.Context, email, name string) (*model.User, *model.Session, error) {
	if s.production {
		return nil, nil, ErrDevLoginUnavailable
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, nil, fmt.Errorf("%w: a valid email is required", ErrInvalidInput)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = strings.SplitN(email, "@", 2)[0]
	}

	return s.signIn(ctx, &model.User{ID: id.New(), Name: name, Email: email})
}

func (s *authService) signIn(ctx context.Context, user *model.User) (*model.User, *model.Session, error) {
	if err := s.userStore.Upsert(ctx, user); err != nil {
		slog.ErrorContext(ctx, "failed to upsert user",
			"error", err,
			"email", user.Email,
		)
		return nil, nil, fmt.Errorf("upserting user: %w", err)
	}

	token, err := generateSecureToken(SessionTokenLength)
	if err != nil {
		return nil, nil, fmt.Errorf("generating session token: %w", err)
	}

	session := &model.Session{
		ID:        id.New(),
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: time.Now().Add(SessionDuration),
	}

	if err := s.sessionStore.Create(ctx, session); err != nil {
		slog.ErrorContext(ctx, "failed to create session",
			"error", err,
			"user_id", user.ID,
		)
		return nil, nil, fmt.Errorf("creating session: %w", err)
	}

	slog.InfoContext(ctx, "user authenticated",
		"user_id", user.ID,
		"session_id", session.ID,
	)

	return user, session, nil
}

func (s *authService) ValidateSession(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, ErrSessionExpired
	}

	session, err := s.sessionStore.GetValidByToken(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrSessionExpired
		}
		return nil, fmt.Errorf("getting session: %w", err)
	}

	user, err := s.userStore.GetByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("getting user: %w", err)
	}

	return user, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if err := s.sessionStore.DeleteByToken(ctx, token); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

func buildUserName(user usermanagement.User) string {
	if user.FirstName != "" && user.LastName != "" {
		return user.FirstName + " " + user.LastName
	}
	if user.FirstName != "" {
		return user.FirstName
	}
	if user.LastName != "" {
		return user.LastName
	}
	return user.Email
}
