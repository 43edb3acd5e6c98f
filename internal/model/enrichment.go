package model

import "time"

// EnrichmentVersion is bumped whenever the stored enrichment shape changes.
const EnrichmentVersion = 1

// EnrichmentSource records which path produced an enrichment.
type EnrichmentSource string

const (
	EnrichmentSourceLLM       EnrichmentSource = "llm"
	EnrichmentSourceHTTP      EnrichmentSource = "http"
	EnrichmentSourceHeuristic EnrichmentSource = "heuristic"
	EnrichmentSourceMock      EnrichmentSource = "mock"
)

// Enrichment is the structured result derived from a submission's text.
// Exactly one of Bridge or Retro is set, matching Kind.
type Enrichment struct {
	Version    int              `json:"version"`
	Kind       ContextKind      `json:"kind"`
	Source     EnrichmentSource `json:"source"`
	Model      string           `json:"model,omitempty"`
	EnrichedAt time.Time        `json:"enrichedAt"`
	Bridge     *BridgeAnalysis  `json:"bridge,omitempty"`
	Retro      *RetroAnalysis   `json:"retro,omitempty"`
}

// Horseman is one of the four destructive communication patterns.
type Horseman string

const (
	HorsemanCriticism     Horseman = "criticism"
	HorsemanContempt      Horseman = "contempt"
	HorsemanDefensiveness Horseman = "defensiveness"
	HorsemanStonewalling  Horseman = "stonewalling"
)

// Horsemen is the closed vocabulary of Bridge flags.
var Horsemen = []Horseman{
	HorsemanCriticism,
	HorsemanContempt,
	HorsemanDefensiveness,
	HorsemanStonewalling,
}

func (h Horseman) Valid() bool {
	for _, known := range Horsemen {
		if h == known {
			return true
		}
	}
	return false
}

// DetectedHorseman is a flag with the excerpt that triggered it.
type DetectedHorseman struct {
	Type   Horseman `json:"type"`
	Reason string   `json:"reason"`
	Quote  string   `json:"quote"`
}

// BridgeAnalysis is the enrichment of a Bridge message.
// HorsemenFlags and DetectedHorsemen always carry the same categories in the same order.
type BridgeAnalysis struct {
	HorsemenFlags    []Horseman         `json:"horsemenFlags"`
	DetectedHorsemen []DetectedHorseman `json:"detectedHorsemen"`
	Sentiment        string             `json:"sentiment"`
	Suggestions      []string           `json:"suggestions"`
	TransformedText  string             `json:"transformedText"`
}

// RetroAnalysis is the enrichment of a Retro narrative.
type RetroAnalysis struct {
	VideoFacts          []string `json:"videoFacts"`
	Interpretations     []string `json:"interpretations"`
	MindReads           []string `json:"mindReads"`
	EmotionalUndertones []string `json:"emotionalUndertones"`
	Patterns            []string `json:"patterns,omitempty"`
}

// Complete reports whether the enrichment is a fully populated result of its kind.
func (e *Enrichment) Complete() bool {
	if e == nil {
		return false
	}
	switch e.Kind {
	case ContextKindBridge:
		return e.Bridge != nil && e.Bridge.TransformedText != "" && len(e.Bridge.HorsemenFlags) == len(e.Bridge.DetectedHorsemen)
	case ContextKindRetro:
		return e.Retro != nil && len(e.Retro.VideoFacts) > 0 && len(e.Retro.Interpretations) > 0 && len(e.Retro.MindReads) > 0
	default:
		return false
	}
}
