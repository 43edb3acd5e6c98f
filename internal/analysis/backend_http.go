package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/alex28786/the-reef/internal/model"
)

const maxUpstreamBody = 1 << 20

type httpBackend struct {
	baseURL string
	client  *http.Client
}

// NewHTTPBackend calls an external analysis service speaking the Bridge/Retro
// wire contract at <baseURL>/analysis/bridge and <baseURL>/analysis/retro.
func NewHTTPBackend(baseURL string, client *http.Client) Backend {
	if client == nil {
		client = http.DefaultClient
	}
	return &httpBackend{baseURL: strings.TrimSuffix(baseURL, "/"), client: client}
}

func (b *httpBackend) Source() model.EnrichmentSource { return model.EnrichmentSourceHTTP }
func (b *httpBackend) Model() string                  { return b.baseURL }

func (b *httpBackend) AnalyzeBridge(ctx context.Context, text string, prompts BridgePrompts) (*model.BridgeAnalysis, Usage, error) {
	body, err := b.post(ctx, "/analysis/bridge", BridgeRequest{
		Text:               text,
		FourHorsemenPrompt: prompts.FourHorsemen,
		NVCPrompt:          prompts.NVC,
	})
	if err != nil {
		return nil, Usage{}, err
	}

	var envelope struct {
		Analysis        json.RawMessage `json:"analysis"`
		TransformedText any             `json:"transformedText"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		slog.WarnContext(ctx, "analysis service returned malformed JSON, normalizing to defaults",
			"error", err)
	}
	transformed, _ := envelope.TransformedText.(string)

	return NormalizeBridge(DecodeLoose(envelope.Analysis), transformed, text), Usage{}, nil
}

func (b *httpBackend) AnalyzeRetro(ctx context.Context, narrative, prompt string) (*model.RetroAnalysis, Usage, error) {
	body, err := b.post(ctx, "/analysis/retro", RetroRequest{
		Narrative: narrative,
		Prompt:    prompt,
	})
	if err != nil {
		return nil, Usage{}, err
	}
	return NormalizeRetro(DecodeLoose(body)), Usage{}, nil
}

func (b *httpBackend) post(ctx context.Context, path string, payload any) ([]byte, error) {
	reqBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal analysis request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+path, bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("build analysis request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling analysis service: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxUpstreamBody))
	if err != nil {
		return nil, fmt.Errorf("reading analysis response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return body, nil
}
