package store

import (
	"context"

	"github.com/alex28786/the-reef/core/db/sqlc"
	"github.com/alex28786/the-reef/internal/model"
)

type userStore struct {
	queries *sqlc.Queries
}

func newUserStore(queries *sqlc.Queries) UserStore {
	return &userStore{queries: queries}
}

func (s *userStore) GetByID(ctx context.Context, id int64) (*model.User, error) {
	row, err := s.queries.GetUser(ctx, id)
	if err != nil {
		return nil, mapErr(err)
	}
	return toUserModel(row), nil
}

func (s *userStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	row, err := s.queries.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, mapErr(err)
	}
	return toUserModel(row), nil
}

// Upsert inserts or refreshes a user keyed by email. The stored row (with its
// original id and reef) is copied back into user.
func (s *userStore) Upsert(ctx context.Context, user *model.User) error {
	row, err := s.queries.UpsertUser(ctx, sqlc.UpsertUserParams{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		AvatarUrl: user.AvatarURL,
		WorkosID:  user.WorkOSID,
	})
	if err != nil {
		return mapErr(err)
	}
	*user = *toUserModel(row)
	return nil
}

func (s *userStore) JoinReef(ctx context.Context, userID, reefID int64, role string) (*model.User, error) {
	row, err := s.queries.JoinReef(ctx, sqlc.JoinReefParams{
		ID:     userID,
		ReefID: &reefID,
		Role:   &role,
	})
	if err != nil {
		return nil, mapErr(err)
	}
	return toUserModel(row), nil
}

func (s *userStore) ListByReef(ctx context.Context, reefID int64) ([]model.User, error) {
	rows, err := s.queries.ListReefMembers(ctx, &reefID)
	if err != nil {
		return nil, err
	}
	users := make([]model.User, len(rows))
	for i, row := range rows {
		users[i] = *toUserModel(row)
	}
	return users, nil
}

func (s *userStore) CountByReef(ctx context.Context, reefID int64) (int64, error) {
	return s.queries.CountReefMembers(ctx, &reefID)
}

func toUserModel(row sqlc.User) *model.User {
	return &model.User{
		ID:        row.ID,
		Name:      row.Name,
		Email:     row.Email,
		AvatarURL: row.AvatarUrl,
		WorkOSID:  row.WorkosID,
		ReefID:    row.ReefID,
		Role:      row.Role,
		CreatedAt: row.CreatedAt.Time,
		UpdatedAt: row.UpdatedAt.Time,
	}
}
