// Package analysis turns a submission's raw text into a structured enrichment:
// destructive-pattern flags and a constructive rewrite for Bridge messages, and
// a fact / interpretation / mind-read split for Retro narratives.
package analysis

import (
	"errors"
	"fmt"
	"time"

	"github.com/alex28786/the-reef/internal/model"
)

var (
	// ErrInvalidText rejects empty input, and Bridge input shorter than MinBridgeTextLength.
	ErrInvalidText = errors.New("invalid text input")

	// ErrNotConfigured is returned when the selected backend has no credentials.
	// It is never papered over with the heuristic fallback on the server.
	ErrNotConfigured = errors.New("analysis service not configured")

	// ErrUnsupportedKind is returned for context kinds without an analysis schema.
	ErrUnsupportedKind = errors.New("unsupported analysis kind")
)

// MinBridgeTextLength is the shortest trimmed Bridge message that is analyzed.
const MinBridgeTextLength = 3

// UpstreamError is a non-2xx answer from the external analysis service.
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("analysis service returned %d: %s", e.StatusCode, e.Body)
}

// BridgePrompts are the two prompt dimensions of a Bridge analysis.
type BridgePrompts struct {
	FourHorsemen string
	NVC          string
}

// Options tune a single Enrich call.
type Options struct {
	// Mock asks for the canned response. Honored only when the enricher allows mocks.
	Mock bool

	// Prompt overrides supplied by a wire-contract caller. Empty fields use the catalog.
	BridgePrompts BridgePrompts
	RetroPrompt   string
}

// Usage is the token accounting reported by a backend.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
}

// Result is one enrichment plus what it cost to produce.
type Result struct {
	Enrichment    *model.Enrichment
	PromptVersion string
	Latency       time.Duration
	Usage         Usage
}

// BridgeRequest is the wire request of the Bridge analysis service.
type BridgeRequest struct {
	Text               string `json:"text"`
	FourHorsemenPrompt string `json:"fourHorsemenPrompt"`
	NVCPrompt          string `json:"nvcPrompt"`
	Mock               bool   `json:"mock"`
}

// BridgeWireAnalysis is the "analysis" object of a Bridge wire response.
type BridgeWireAnalysis struct {
	HorsemenFlags    []model.Horseman         `json:"horsemenFlags"`
	DetectedHorsemen []model.DetectedHorseman `json:"detectedHorsemen"`
	Sentiment        string                   `json:"sentiment"`
	Suggestions      []string                 `json:"suggestions"`
}

// BridgeResponse is the wire response of the Bridge analysis service.
type BridgeResponse struct {
	Analysis        BridgeWireAnalysis `json:"analysis"`
	TransformedText string             `json:"transformedText"`
}

// RetroRequest is the wire request of the Retro analysis service.
type RetroRequest struct {
	Narrative string `json:"narrative"`
	Prompt    string `json:"prompt"`
	Mock      bool   `json:"mock"`
}

// ToBridgeResponse splits a stored analysis into the wire shape.
func ToBridgeResponse(a *model.BridgeAnalysis) BridgeResponse {
	return BridgeResponse{
		Analysis: BridgeWireAnalysis{
			HorsemenFlags:    a.HorsemenFlags,
			DetectedHorsemen: a.DetectedHorsemen,
			Sentiment:        a.Sentiment,
			Suggestions:      a.Suggestions,
		},
		TransformedText: a.TransformedText,
	}
}
