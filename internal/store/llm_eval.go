package store

import (
	"context"

	"github.com/alex28786/the-reef/core/db/sqlc"
	"github.com/alex28786/the-reef/internal/model"
)

type llmEvalStore struct {
	queries *sqlc.Queries
}

func newLLMEvalStore(queries *sqlc.Queries) LLMEvalStore {
	return &llmEvalStore{queries: queries}
}

func (s *llmEvalStore) Create(ctx context.Context, eval *model.LLMEval) (*model.LLMEval, error) {
	row, err := s.queries.InsertLLMEval(ctx, sqlc.InsertLLMEvalParams{
		ID:               eval.ID,
		ContextID:        eval.ContextID,
		SubmissionID:     eval.SubmissionID,
		Stage:            eval.Stage,
		InputText:        eval.InputText,
		OutputJson:       eval.OutputJSON,
		Model:            eval.Model,
		Temperature:      eval.Temperature,
		PromptVersion:    eval.PromptVersion,
		LatencyMs:        toInt32Ptr(eval.LatencyMs),
		PromptTokens:     toInt32Ptr(eval.PromptTokens),
		CompletionTokens: toInt32Ptr(eval.CompletionTokens),
	})
	if err != nil {
		return nil, err
	}
	return toLLMEvalModel(row), nil
}

func (s *llmEvalStore) ListBySubmission(ctx context.Context, submissionID int64) ([]model.LLMEval, error) {
	rows, err := s.queries.ListLLMEvalsBySubmission(ctx, &submissionID)
	if err != nil {
		return nil, err
	}
	models := make([]model.LLMEval, len(rows))
	for i, row := range rows {
		models[i] = *toLLMEvalModel(row)
	}
	return models, nil
}

func toLLMEvalModel(row sqlc.LlmEval) *model.LLMEval {
	return &model.LLMEval{
		ID:               row.ID,
		ContextID:        row.ContextID,
		SubmissionID:     row.SubmissionID,
		Stage:            row.Stage,
		InputText:        row.InputText,
		OutputJSON:       row.OutputJson,
		Model:            row.Model,
		Temperature:      row.Temperature,
		PromptVersion:    row.PromptVersion,
		LatencyMs:        toIntPtr(row.LatencyMs),
		PromptTokens:     toIntPtr(row.PromptTokens),
		CompletionTokens: toIntPtr(row.CompletionTokens),
		CreatedAt:        row.CreatedAt.Time,
	}
}

func toInt32Ptr(v *int) *int32 {
	if v == nil {
		return nil
	}
	i := int32(*v)
	return &i
}

func toIntPtr(v *int32) *int {
	if v == nil {
		return nil
	}
	i := int(*v)
	return &i
}
