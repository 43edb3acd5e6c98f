package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alex28786/the-reef/common/llm"
	"github.com/alex28786/the-reef/common/retry"
	"github.com/alex28786/the-reef/internal/model"
)

type bridgeSchemaDoc struct {
	HorsemenFlags    []string            `json:"horsemenFlags" jsonschema:"enum=criticism,enum=contempt,enum=defensiveness,enum=stonewalling" jsonschema_description:"Horsemen found in the text"`
	DetectedHorsemen []detectedSchemaDoc `json:"detectedHorsemen" jsonschema_description:"One entry per horseman found"`
	Sentiment        string              `json:"sentiment" jsonschema_description:"Single word describing the overall emotional tone"`
	Suggestions      []string            `json:"suggestions" jsonschema_description:"1-3 brief suggestions for improvement"`
}

type detectedSchemaDoc struct {
	Type   string `json:"type" jsonschema:"enum=criticism,enum=contempt,enum=defensiveness,enum=stonewalling"`
	Reason string `json:"reason" jsonschema_description:"Why this text counts as that horseman"`
	Quote  string `json:"quote" jsonschema_description:"The specific excerpt"`
}

type transformSchemaDoc struct {
	TransformedText string `json:"transformedText" jsonschema_description:"The rewritten message"`
}

type retroSchemaDoc struct {
	VideoFacts          []string `json:"videoFacts" jsonschema_description:"What a neutral camera would record"`
	Interpretations     []string `json:"interpretations" jsonschema_description:"Subjective readings and conclusions"`
	MindReads           []string `json:"mindReads" jsonschema_description:"Assumptions about the other person's intent"`
	EmotionalUndertones []string `json:"emotionalUndertones" jsonschema_description:"Emotional tone labels"`
}

var (
	bridgeSchema    = llm.GenerateSchema[bridgeSchemaDoc]()
	transformSchema = llm.GenerateSchema[transformSchemaDoc]()
	retroSchema     = llm.GenerateSchema[retroSchemaDoc]()
)

// llmRetry: 3 attempts, 500ms linear backoff, giving up early on errors the
// provider will not recover from. Malformed answers are not retried.
var llmRetry = retry.Policy{
	Attempts: 3,
	Delay:    retry.Linear(500 * time.Millisecond),
	Retryable: func(ctx context.Context, err error) bool {
		return !errors.Is(err, llm.ErrMalformedResponse) && llm.IsRetryable(ctx, err)
	},
}

type llmBackend struct {
	client    llm.Client
	maxTokens int
}

// NewLLMBackend analyzes through a structured-output LLM client.
func NewLLMBackend(client llm.Client, maxTokens int) Backend {
	return &llmBackend{client: client, maxTokens: maxTokens}
}

func (b *llmBackend) Source() model.EnrichmentSource { return model.EnrichmentSourceLLM }
func (b *llmBackend) Model() string                  { return b.client.Model() }

func (b *llmBackend) AnalyzeBridge(ctx context.Context, text string, prompts BridgePrompts) (*model.BridgeAnalysis, Usage, error) {
	var usage Usage

	var raw json.RawMessage
	resp, err := b.chat(ctx, "bridge analysis", llm.Request{
		SystemPrompt: prompts.FourHorsemen + "\n\nReturn ONLY valid JSON.",
		UserPrompt:   text,
		SchemaName:   "bridge_analysis",
		Schema:       bridgeSchema,
		MaxTokens:    b.tokens(500),
		Temperature:  llm.Temp(0.2),
	}, &raw)
	if err != nil {
		return nil, usage, err
	}
	usage.add(resp)

	var transformed transformSchemaDoc
	resp, err = b.chat(ctx, "bridge transform", llm.Request{
		SystemPrompt: prompts.NVC,
		UserPrompt:   text,
		SchemaName:   "bridge_transform",
		Schema:       transformSchema,
		MaxTokens:    b.tokens(500),
		Temperature:  llm.Temp(0.7),
	}, &transformed)
	if err != nil {
		return nil, usage, err
	}
	usage.add(resp)

	return NormalizeBridge(DecodeLoose(raw), transformed.TransformedText, text), usage, nil
}

func (b *llmBackend) AnalyzeRetro(ctx context.Context, narrative, prompt string) (*model.RetroAnalysis, Usage, error) {
	var usage Usage

	var raw json.RawMessage
	resp, err := b.chat(ctx, "retro clerk", llm.Request{
		SystemPrompt: prompt,
		UserPrompt:   narrative,
		SchemaName:   "retro_analysis",
		Schema:       retroSchema,
		MaxTokens:    b.tokens(1000),
		Temperature:  llm.Temp(0.2),
	}, &raw)
	if err != nil {
		return nil, usage, err
	}
	usage.add(resp)

	return NormalizeRetro(DecodeLoose(raw)), usage, nil
}

// chat runs one request with retries. A malformed answer is not an error: it
// leaves result empty so normalization produces safe defaults.
func (b *llmBackend) chat(ctx context.Context, name string, req llm.Request, result any) (*llm.Response, error) {
	resp, err := retry.Value(ctx, llmRetry, name, func(ctx context.Context) (*llm.Response, error) {
		return b.client.Chat(ctx, req, result)
	})
	if err != nil {
		if errors.Is(err, llm.ErrMalformedResponse) {
			slog.WarnContext(ctx, "llm returned malformed analysis, normalizing to defaults",
				"stage", name,
				"model", b.client.Model(),
				"error", err)
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return resp, nil
}

func (b *llmBackend) tokens(fallback int) int {
	if b.maxTokens > 0 {
		return b.maxTokens
	}
	return fallback
}

func (u *Usage) add(resp *llm.Response) {
	if resp == nil {
		return
	}
	u.PromptTokens += resp.PromptTokens
	u.CompletionTokens += resp.CompletionTokens
}
