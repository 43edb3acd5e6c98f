package analysis

import (
	"encoding/json"
	"strings"

	"github.com/alex28786/the-reef/internal/model"
)

const (
	defaultSentiment     = "neutral"
	defaultFlagReason    = "Flagged by analysis."
	fillerFact           = "Event occurred between the two parties"
	fillerInterpretation = "Narrator has feelings about the situation"
	fillerMindRead       = "Narrator may be assuming what the other person intended"
)

// DecodeLoose parses an upstream payload without a schema. Anything that is
// not valid JSON decodes to nil, which the normalizers treat as empty.
func DecodeLoose(raw []byte) any {
	if len(raw) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil
	}
	return v
}

// NormalizeBridge coerces an upstream Bridge analysis into the stored shape.
// Wrong-typed fields become empty defaults, flags outside the four horsemen are
// dropped, and HorsemenFlags is rebuilt from DetectedHorsemen so both carry the
// same categories in the same order. An empty rewrite falls back to the input text.
func NormalizeBridge(raw any, transformedText, text string) *model.BridgeAnalysis {
	out := &model.BridgeAnalysis{
		HorsemenFlags:    []model.Horseman{},
		DetectedHorsemen: []model.DetectedHorseman{},
		Sentiment:        defaultSentiment,
		Suggestions:      []string{},
		TransformedText:  strings.TrimSpace(transformedText),
	}
	if out.TransformedText == "" {
		out.TransformedText = strings.TrimSpace(text)
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return out
	}

	seen := make(map[model.Horseman]bool)
	if detected, ok := obj["detectedHorsemen"].([]any); ok {
		for _, item := range detected {
			entry, ok := item.(map[string]any)
			if !ok {
				continue
			}
			h, ok := toHorseman(entry["type"])
			if !ok || seen[h] {
				continue
			}
			seen[h] = true
			out.DetectedHorsemen = append(out.DetectedHorsemen, model.DetectedHorseman{
				Type:   h,
				Reason: stringOr(entry["reason"], defaultFlagReason),
				Quote:  stringOr(entry["quote"], ""),
			})
		}
	}

	// Flags reported without detail still count.
	if flags, ok := obj["horsemenFlags"].([]any); ok {
		for _, item := range flags {
			h, ok := toHorseman(item)
			if !ok || seen[h] {
				continue
			}
			seen[h] = true
			out.DetectedHorsemen = append(out.DetectedHorsemen, model.DetectedHorseman{
				Type:   h,
				Reason: defaultFlagReason,
			})
		}
	}

	for _, d := range out.DetectedHorsemen {
		out.HorsemenFlags = append(out.HorsemenFlags, d.Type)
	}

	if sentiment := stringOr(obj["sentiment"], ""); sentiment != "" {
		out.Sentiment = sentiment
	}
	out.Suggestions = stringList(obj["suggestions"])

	return out
}

// NormalizeRetro coerces an upstream Retro analysis into the stored shape.
// Facts, interpretations and mind-reads are never left empty.
func NormalizeRetro(raw any) *model.RetroAnalysis {
	out := &model.RetroAnalysis{}
	if obj, ok := raw.(map[string]any); ok {
		out.VideoFacts = stringList(obj["videoFacts"])
		out.Interpretations = stringList(obj["interpretations"])
		out.MindReads = stringList(obj["mindReads"])
		out.EmotionalUndertones = stringList(obj["emotionalUndertones"])
		if patterns := stringList(obj["patterns"]); len(patterns) > 0 {
			out.Patterns = patterns
		}
	}
	fillRetro(out)
	if out.EmotionalUndertones == nil {
		out.EmotionalUndertones = []string{}
	}
	return out
}

func fillRetro(a *model.RetroAnalysis) {
	if len(a.VideoFacts) == 0 {
		a.VideoFacts = []string{fillerFact}
	}
	if len(a.Interpretations) == 0 {
		a.Interpretations = []string{fillerInterpretation}
	}
	if len(a.MindReads) == 0 {
		a.MindReads = []string{fillerMindRead}
	}
}

func toHorseman(v any) (model.Horseman, bool) {
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	h := model.Horseman(strings.ToLower(strings.TrimSpace(s)))
	return h, h.Valid()
}

func stringOr(v any, fallback string) string {
	if s, ok := v.(string); ok {
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return fallback
}

func stringList(v any) []string {
	out := []string{}
	items, ok := v.([]any)
	if !ok {
		return out
	}
	for _, item := range items {
		if s, ok := item.(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}
