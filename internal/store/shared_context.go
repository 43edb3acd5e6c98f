package store

import (
	"context"
	"errors"

	"github.com/alex28786/the-reef/core/db/sqlc"
	"github.com/alex28786/the-reef/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type sharedContextStore struct {
	queries *sqlc.Queries
}

func newSharedContextStore(queries *sqlc.Queries) SharedContextStore {
	return &sharedContextStore{queries: queries}
}

func (s *sharedContextStore) Create(ctx context.Context, sc *model.SharedContext) error {
	var eventDate pgtype.Date
	if sc.EventDate != nil {
		eventDate = pgtype.Date{Time: *sc.EventDate, Valid: true}
	}

	row, err := s.queries.CreateSharedContext(ctx, sqlc.CreateSharedContextParams{
		ID:        sc.ID,
		ReefID:    sc.ReefID,
		Kind:      string(sc.Kind),
		Title:     sc.Title,
		EventDate: eventDate,
		CreatedBy: sc.CreatedBy,
	})
	if err != nil {
		return mapErr(err)
	}
	*sc = *toSharedContextModel(row)
	return nil
}

func (s *sharedContextStore) GetByID(ctx context.Context, id int64) (*model.SharedContext, error) {
	row, err := s.queries.GetSharedContext(ctx, id)
	if err != nil {
		return nil, mapErr(err)
	}
	return toSharedContextModel(row), nil
}

func (s *sharedContextStore) ListByReef(ctx context.Context, reefID int64, kind model.ContextKind, limit int32) ([]model.SharedContext, error) {
	rows, err := s.queries.ListSharedContextsByReef(ctx, sqlc.ListSharedContextsByReefParams{
		ReefID: reefID,
		Kind:   string(kind),
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}
	result := make([]model.SharedContext, len(rows))
	for i, row := range rows {
		result[i] = *toSharedContextModel(row)
	}
	return result, nil
}

func (s *sharedContextStore) MarkSubmitted(ctx context.Context, id int64, round int) (bool, error) {
	rows, err := s.queries.MarkSharedContextSubmitted(ctx, sqlc.MarkSharedContextSubmittedParams{
		ID:    id,
		Round: int32(round),
	})
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (s *sharedContextStore) MarkRevealed(ctx context.Context, id int64, round int) (bool, *model.SharedContext, error) {
	row, err := s.queries.MarkSharedContextRevealed(ctx, sqlc.MarkSharedContextRevealedParams{
		ID:    id,
		Round: int32(round),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Already revealed, or the round moved on
			return false, nil, nil
		}
		return false, nil, err
	}
	return true, toSharedContextModel(row), nil
}

func (s *sharedContextStore) AdvanceRound(ctx context.Context, id int64, round int) (*model.SharedContext, error) {
	row, err := s.queries.AdvanceSharedContextRound(ctx, sqlc.AdvanceSharedContextRoundParams{
		ID:    id,
		Round: int32(round),
	})
	if err != nil {
		return nil, mapErr(err)
	}
	return toSharedContextModel(row), nil
}

func toSharedContextModel(row sqlc.SharedContext) *model.SharedContext {
	sc := &model.SharedContext{
		ID:        row.ID,
		ReefID:    row.ReefID,
		Kind:      model.ContextKind(row.Kind),
		Title:     row.Title,
		Status:    model.ContextStatus(row.Status),
		Round:     int(row.Round),
		CreatedBy: row.CreatedBy,
		CreatedAt: row.CreatedAt.Time,
		UpdatedAt: row.UpdatedAt.Time,
	}
	if row.EventDate.Valid {
		d := row.EventDate.Time
		sc.EventDate = &d
	}
	return sc
}
