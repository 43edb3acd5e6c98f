package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/alex28786/the-reef/internal/analysis"
	"github.com/alex28786/the-reef/internal/model"
)

const maxAnalysisBody = 1 << 20

// Preview is an immediate Bridge analysis for the composer.
type Preview struct {
	Analysis *model.BridgeAnalysis
	// Fallback is set when the service could not answer and the local heuristics were used.
	Fallback bool
}

// AnalyzeBridge posts the wire contract for a preview. Transport errors,
// non-2xx answers and malformed JSON fall back to the local heuristics; the
// preview is disposable. Invalid text is still the caller's error.
func (c *Client) AnalyzeBridge(ctx context.Context, text string, prompts analysis.BridgePrompts, mock bool) (*Preview, error) {
	if err := analysis.ValidateText(text, model.ContextKindBridge); err != nil {
		return nil, err
	}

	a, err := c.analyzeBridge(ctx, text, prompts, mock)
	if err != nil {
		slog.WarnContext(ctx, "bridge analysis unavailable, using local fallback", "error", err)
		return &Preview{Analysis: analysis.FallbackBridge(text), Fallback: true}, nil
	}
	return &Preview{Analysis: a}, nil
}

func (c *Client) analyzeBridge(ctx context.Context, text string, prompts analysis.BridgePrompts, mock bool) (*model.BridgeAnalysis, error) {
	resp, err := c.send(ctx, http.MethodPost, "/analysis/bridge", analysis.BridgeRequest{
		Text:               text,
		FourHorsemenPrompt: prompts.FourHorsemen,
		NVCPrompt:          prompts.NVC,
		Mock:               mock,
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, decodeAPIError(resp)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxAnalysisBody))
	if err != nil {
		return nil, fmt.Errorf("reading analysis: %w", err)
	}

	var envelope struct {
		Analysis        json.RawMessage `json:"analysis"`
		TransformedText any             `json:"transformedText"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decoding analysis: %w", err)
	}
	if len(envelope.Analysis) == 0 {
		return nil, fmt.Errorf("analysis response has no analysis object")
	}

	transformed, _ := envelope.TransformedText.(string)
	return analysis.NormalizeBridge(analysis.DecodeLoose(envelope.Analysis), transformed, text), nil
}
