package store

import (
	"context"

	"github.com/alex28786/the-reef/core/db/sqlc"
	"github.com/alex28786/the-reef/internal/model"
)

type reefStore struct {
	queries *sqlc.Queries
}

func newReefStore(queries *sqlc.Queries) ReefStore {
	return &reefStore{queries: queries}
}

func (s *reefStore) Create(ctx context.Context, reef *model.Reef) error {
	row, err := s.queries.CreateReef(ctx, sqlc.CreateReefParams{
		ID:   reef.ID,
		Name: reef.Name,
	})
	if err != nil {
		return mapErr(err)
	}
	*reef = model.Reef{ID: row.ID, Name: row.Name, CreatedAt: row.CreatedAt.Time}
	return nil
}

func (s *reefStore) GetByID(ctx context.Context, id int64) (*model.Reef, error) {
	row, err := s.queries.GetReef(ctx, id)
	if err != nil {
		return nil, mapErr(err)
	}
	return &model.Reef{ID: row.ID, Name: row.Name, CreatedAt: row.CreatedAt.Time}, nil
}

type reefInvitationStore struct {
	queries *sqlc.Queries
}

func newReefInvitationStore(queries *sqlc.Queries) ReefInvitationStore {
	return &reefInvitationStore{queries: queries}
}

func (s *reefInvitationStore) Create(ctx context.Context, inv *model.ReefInvitation) error {
	row, err := s.queries.CreateReefInvitation(ctx, sqlc.CreateReefInvitationParams{
		ID:        inv.ID,
		ReefID:    inv.ReefID,
		Token:     inv.Token,
		Email:     inv.Email,
		Status:    string(inv.Status),
		InvitedBy: inv.InvitedBy,
		ExpiresAt: timestamptz(inv.ExpiresAt),
	})
	if err != nil {
		return mapErr(err)
	}
	*inv = *toReefInvitationModel(row)
	return nil
}

func (s *reefInvitationStore) GetValidByToken(ctx context.Context, token string) (*model.ReefInvitation, error) {
	row, err := s.queries.GetValidReefInvitationByToken(ctx, token)
	if err != nil {
		return nil, mapErr(err)
	}
	return toReefInvitationModel(row), nil
}

func (s *reefInvitationStore) Accept(ctx context.Context, id, userID int64) (*model.ReefInvitation, error) {
	row, err := s.queries.AcceptReefInvitation(ctx, sqlc.AcceptReefInvitationParams{
		ID:         id,
		AcceptedBy: &userID,
	})
	if err != nil {
		return nil, mapErr(err)
	}
	return toReefInvitationModel(row), nil
}

func (s *reefInvitationStore) ExpireOld(ctx context.Context) error {
	return s.queries.ExpireOldReefInvitations(ctx)
}

func toReefInvitationModel(row sqlc.ReefInvitation) *model.ReefInvitation {
	return &model.ReefInvitation{
		ID:         row.ID,
		ReefID:     row.ReefID,
		Email:      row.Email,
		Token:      row.Token,
		Status:     model.InvitationStatus(row.Status),
		InvitedBy:  row.InvitedBy,
		AcceptedBy: row.AcceptedBy,
		ExpiresAt:  row.ExpiresAt.Time,
		CreatedAt:  row.CreatedAt.Time,
		AcceptedAt: optionalTime(row.AcceptedAt),
	}
}
