package store

import (
	"context"

	"github.com/alex28786/the-reef/core/db/sqlc"
	"github.com/alex28786/the-reef/internal/model"
)

type systemPromptStore struct {
	queries *sqlc.Queries
}

func newSystemPromptStore(queries *sqlc.Queries) SystemPromptStore {
	return &systemPromptStore{queries: queries}
}

func (s *systemPromptStore) Get(ctx context.Context, key string) (*model.SystemPrompt, error) {
	row, err := s.queries.GetSystemPrompt(ctx, key)
	if err != nil {
		return nil, mapErr(err)
	}
	return toSystemPromptModel(row), nil
}

func (s *systemPromptStore) Upsert(ctx context.Context, key, text string) (*model.SystemPrompt, error) {
	row, err := s.queries.UpsertSystemPrompt(ctx, sqlc.UpsertSystemPromptParams{
		Key:        key,
		PromptText: text,
	})
	if err != nil {
		return nil, err
	}
	return toSystemPromptModel(row), nil
}

func (s *systemPromptStore) List(ctx context.Context) ([]model.SystemPrompt, error) {
	rows, err := s.queries.ListSystemPrompts(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]model.SystemPrompt, len(rows))
	for i, row := range rows {
		result[i] = *toSystemPromptModel(row)
	}
	return result, nil
}

func toSystemPromptModel(row sqlc.SystemPrompt) *model.SystemPrompt {
	return &model.SystemPrompt{
		Key:       row.Key,
		Text:      row.PromptText,
		UpdatedAt: row.UpdatedAt.Time,
	}
}
