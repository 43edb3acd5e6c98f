package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/alex28786/the-reef/core/db/sqlc"
	"github.com/alex28786/the-reef/internal/model"
	"github.com/jackc/pgx/v5"
)

type submissionStore struct {
	queries *sqlc.Queries
}

func newSubmissionStore(queries *sqlc.Queries) SubmissionStore {
	return &submissionStore{queries: queries}
}

func (s *submissionStore) Create(ctx context.Context, sub *model.Submission) error {
	var emotion *string
	if sub.Emotion != nil {
		e := string(*sub.Emotion)
		emotion = &e
	}

	row, err := s.queries.CreateSubmission(ctx, sqlc.CreateSubmissionParams{
		ID:        sub.ID,
		ContextID: sub.ContextID,
		Round:     int32(sub.Round),
		AuthorID:  sub.AuthorID,
		Body:      sub.Body,
		Emotion:   emotion,
	})
	if err != nil {
		return mapErr(err)
	}
	created, err := toSubmissionModel(row)
	if err != nil {
		return err
	}
	*sub = *created
	return nil
}

func (s *submissionStore) GetByID(ctx context.Context, id int64) (*model.Submission, error) {
	row, err := s.queries.GetSubmission(ctx, id)
	if err != nil {
		return nil, mapErr(err)
	}
	return toSubmissionModel(row)
}

func (s *submissionStore) ListByContextRound(ctx context.Context, contextID int64, round int) ([]model.Submission, error) {
	rows, err := s.queries.ListSubmissionsByContextRound(ctx, sqlc.ListSubmissionsByContextRoundParams{
		ContextID: contextID,
		Round:     int32(round),
	})
	if err != nil {
		return nil, err
	}
	return toSubmissionModels(rows)
}

func (s *submissionStore) ListByContext(ctx context.Context, contextID int64) ([]model.Submission, error) {
	rows, err := s.queries.ListSubmissionsByContext(ctx, contextID)
	if err != nil {
		return nil, err
	}
	return toSubmissionModels(rows)
}

func (s *submissionStore) SetEnrichmentIfEmpty(ctx context.Context, id int64, enrichment *model.Enrichment) (bool, *model.Submission, error) {
	payload, err := json.Marshal(enrichment)
	if err != nil {
		return false, nil, fmt.Errorf("marshal enrichment: %w", err)
	}

	row, err := s.queries.SetSubmissionEnrichment(ctx, sqlc.SetSubmissionEnrichmentParams{
		ID:         id,
		Enrichment: payload,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Already enriched by a concurrent resolver
			return false, nil, nil
		}
		return false, nil, err
	}
	sub, err := toSubmissionModel(row)
	if err != nil {
		return false, nil, err
	}
	return true, sub, nil
}

func (s *submissionStore) Revise(ctx context.Context, id, authorID int64, body string) (*model.Submission, error) {
	row, err := s.queries.ReviseSubmission(ctx, sqlc.ReviseSubmissionParams{
		ID:       id,
		AuthorID: authorID,
		Body:     body,
	})
	if err != nil {
		return nil, mapErr(err)
	}
	return toSubmissionModel(row)
}

func (s *submissionStore) SetArtifact(ctx context.Context, id, authorID int64, artifact string) (*model.Submission, error) {
	row, err := s.queries.SetSubmissionArtifact(ctx, sqlc.SetSubmissionArtifactParams{
		ID:       id,
		AuthorID: authorID,
		Artifact: &artifact,
	})
	if err != nil {
		return nil, mapErr(err)
	}
	return toSubmissionModel(row)
}

func (s *submissionStore) Acknowledge(ctx context.Context, id int64) (bool, *model.Submission, error) {
	row, err := s.queries.AcknowledgeSubmission(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil, nil
		}
		return false, nil, err
	}
	sub, err := toSubmissionModel(row)
	if err != nil {
		return false, nil, err
	}
	return true, sub, nil
}

func toSubmissionModel(row sqlc.Submission) (*model.Submission, error) {
	sub := &model.Submission{
		ID:             row.ID,
		ContextID:      row.ContextID,
		Round:          int(row.Round),
		AuthorID:       row.AuthorID,
		Body:           row.Body,
		Artifact:       row.Artifact,
		EnrichedAt:     optionalTime(row.EnrichedAt),
		AcknowledgedAt: optionalTime(row.AcknowledgedAt),
		SubmittedAt:    row.SubmittedAt.Time,
		UpdatedAt:      row.UpdatedAt.Time,
	}
	if row.Emotion != nil {
		e := model.Emotion(*row.Emotion)
		sub.Emotion = &e
	}
	if len(row.Enrichment) > 0 {
		var enrichment model.Enrichment
		if err := json.Unmarshal(row.Enrichment, &enrichment); err != nil {
			return nil, fmt.Errorf("unmarshal enrichment of submission %d: %w", row.ID, err)
		}
		sub.Enrichment = &enrichment
	}
	return sub, nil
}

func toSubmissionModels(rows []sqlc.Submission) ([]model.Submission, error) {
	result := make([]model.Submission, len(rows))
	for i, row := range rows {
		sub, err := toSubmissionModel(row)
		if err != nil {
			return nil, err
		}
		result[i] = *sub
	}
	return result, nil
}
