package analysis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/alex28786/the-reef/common/logger"
	"github.com/alex28786/the-reef/internal/model"
)

// Enricher computes the enrichment of one submission text.
type Enricher interface {
	Enrich(ctx context.Context, text string, kind model.ContextKind, opts Options) (*Result, error)
}

// Config tunes an enricher.
type Config struct {
	// AllowMock lets a request-level Mock flag take effect.
	AllowMock bool
	// Timeout bounds each backend call. Zero means 20s.
	Timeout time.Duration
}

const defaultTimeout = 20 * time.Second

type enricher struct {
	backend Backend
	prompts *PromptCatalog
	cfg     Config
	now     func() time.Time
}

// NewEnricher builds an Enricher over backend. prompts supplies the catalog
// used when a caller does not pass its own prompts.
func NewEnricher(backend Backend, prompts *PromptCatalog, cfg Config) Enricher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &enricher{backend: backend, prompts: prompts, cfg: cfg, now: time.Now}
}

// ValidateText applies the input boundary shared by every analysis path.
func ValidateText(text string, kind model.ContextKind) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return fmt.Errorf("%w: text is empty", ErrInvalidText)
	}
	if kind == model.ContextKindBridge && len([]rune(trimmed)) < MinBridgeTextLength {
		return fmt.Errorf("%w: text must be at least %d characters", ErrInvalidText, MinBridgeTextLength)
	}
	return nil
}

func (e *enricher) Enrich(ctx context.Context, text string, kind model.ContextKind, opts Options) (*Result, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedKind, kind)
	}
	if err := ValidateText(text, kind); err != nil {
		return nil, err
	}

	sc := logger.StartSpan(ctx, "analysis.enrich")
	defer sc.End()
	ctx = sc.Context()
	sc.Span().SetAttributes(attribute.String("kind", string(kind)))

	if opts.Mock {
		if e.cfg.AllowMock {
			return e.mockResult(text, kind), nil
		}
		slog.WarnContext(ctx, "mock analysis requested but not allowed, ignoring flag")
	}

	ctx, cancel := context.WithTimeout(ctx, e.cfg.Timeout)
	defer cancel()

	start := time.Now()
	result := &Result{
		Enrichment: &model.Enrichment{
			Version: model.EnrichmentVersion,
			Kind:    kind,
			Source:  e.backend.Source(),
			Model:   e.backend.Model(),
		},
	}

	var err error
	switch kind {
	case model.ContextKindBridge:
		prompts, version := e.bridgePrompts(ctx, opts.BridgePrompts)
		result.PromptVersion = version
		result.Enrichment.Bridge, result.Usage, err = e.backend.AnalyzeBridge(ctx, text, prompts)
	case model.ContextKindRetro:
		prompt, version := e.retroPrompt(ctx, opts.RetroPrompt)
		result.PromptVersion = version
		result.Enrichment.Retro, result.Usage, err = e.backend.AnalyzeRetro(ctx, text, prompt)
	}
	result.Latency = time.Since(start)

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("analysis timed out after %s: %w", e.cfg.Timeout, err)
		}
		sc.RecordError(err)
		return nil, fmt.Errorf("analyzing %s text: %w", kind, err)
	}

	result.Enrichment.EnrichedAt = e.now().UTC()
	if !result.Enrichment.Complete() {
		err := fmt.Errorf("analysis backend %s returned an incomplete %s result", e.backend.Source(), kind)
		sc.RecordError(err)
		return nil, err
	}

	slog.DebugContext(ctx, "submission text enriched",
		"source", result.Enrichment.Source,
		"prompt_version", result.PromptVersion,
		"latency_ms", result.Latency.Milliseconds())

	return result, nil
}

func (e *enricher) mockResult(text string, kind model.ContextKind) *Result {
	enrichment := &model.Enrichment{
		Version:    model.EnrichmentVersion,
		Kind:       kind,
		Source:     model.EnrichmentSourceMock,
		Model:      "mock",
		EnrichedAt: e.now().UTC(),
	}
	if kind == model.ContextKindBridge {
		enrichment.Bridge = MockBridge(text)
	} else {
		enrichment.Retro = MockRetro(text)
	}
	return &Result{Enrichment: enrichment, PromptVersion: "mock"}
}

func (e *enricher) bridgePrompts(ctx context.Context, requested BridgePrompts) (BridgePrompts, string) {
	if requested.FourHorsemen != "" && requested.NVC != "" {
		return requested, "request"
	}
	prompts, version := e.prompts.Bridge(ctx)
	if requested.FourHorsemen != "" {
		prompts.FourHorsemen = requested.FourHorsemen
	}
	if requested.NVC != "" {
		prompts.NVC = requested.NVC
	}
	return prompts, version
}

func (e *enricher) retroPrompt(ctx context.Context, requested string) (string, string) {
	if requested != "" {
		return requested, "request"
	}
	return e.prompts.Retro(ctx)
}
