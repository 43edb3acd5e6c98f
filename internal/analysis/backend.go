package analysis

import (
	"context"
	"fmt"
	"net/http"

	"github.com/alex28786/the-reef/common/llm"
	"github.com/alex28786/the-reef/core/config"
	"github.com/alex28786/the-reef/internal/model"
)

// Backend computes a normalized analysis for one text.
type Backend interface {
	AnalyzeBridge(ctx context.Context, text string, prompts BridgePrompts) (*model.BridgeAnalysis, Usage, error)
	AnalyzeRetro(ctx context.Context, narrative, prompt string) (*model.RetroAnalysis, Usage, error)
	Source() model.EnrichmentSource
	Model() string
}

// NewBackend builds the backend selected by ANALYSIS_BACKEND. A missing LLM key
// does not fail startup; the backend rejects every call with ErrNotConfigured instead.
func NewBackend(ctx context.Context, cfg config.Config, httpClient *http.Client) (Backend, error) {
	switch cfg.Analysis.Backend {
	case config.AnalysisBackendHeuristic:
		return NewHeuristicBackend(), nil
	case config.AnalysisBackendHTTP:
		return NewHTTPBackend(cfg.Analysis.ServiceURL, httpClient), nil
	case config.AnalysisBackendLLM, "":
		if !cfg.LLM.Enabled() {
			return unconfiguredBackend{}, nil
		}
		client, err := llm.New(ctx, llm.Config{
			Provider: cfg.LLM.Provider,
			APIKey:   cfg.LLM.APIKey,
			BaseURL:  cfg.LLM.BaseURL,
			Model:    cfg.LLM.Model,
		})
		if err != nil {
			return nil, fmt.Errorf("creating llm client: %w", err)
		}
		return NewLLMBackend(client, cfg.LLM.MaxTokens), nil
	default:
		return nil, fmt.Errorf("unsupported analysis backend: %s", cfg.Analysis.Backend)
	}
}

type unconfiguredBackend struct{}

func (unconfiguredBackend) AnalyzeBridge(context.Context, string, BridgePrompts) (*model.BridgeAnalysis, Usage, error) {
	return nil, Usage{}, ErrNotConfigured
}

func (unconfiguredBackend) AnalyzeRetro(context.Context, string, string) (*model.RetroAnalysis, Usage, error) {
	return nil, Usage{}, ErrNotConfigured
}

func (unconfiguredBackend) Source() model.EnrichmentSource { return model.EnrichmentSourceLLM }
func (unconfiguredBackend) Model() string                  { return "" }

type heuristicBackend struct{}

// NewHeuristicBackend analyzes with the offline fallback rules only.
func NewHeuristicBackend() Backend {
	return heuristicBackend{}
}

func (heuristicBackend) AnalyzeBridge(_ context.Context, text string, _ BridgePrompts) (*model.BridgeAnalysis, Usage, error) {
	return FallbackBridge(text), Usage{}, nil
}

func (heuristicBackend) AnalyzeRetro(_ context.Context, narrative, _ string) (*model.RetroAnalysis, Usage, error) {
	return FallbackRetro(narrative), Usage{}, nil
}

func (heuristicBackend) Source() model.EnrichmentSource { return model.EnrichmentSourceHeuristic }
func (heuristicBackend) Model() string                  { return "heuristic-v1" }
