package analysis

import (
	"github.com/alex28786/the-reef/internal/model"
)

const mockQuoteLength = 20

// MockBridge is the canned Bridge response used by integration tests.
func MockBridge(text string) *model.BridgeAnalysis {
	quote := []rune(text)
	if len(quote) > mockQuoteLength {
		quote = quote[:mockQuoteLength]
	}
	return &model.BridgeAnalysis{
		HorsemenFlags: []model.Horseman{model.HorsemanCriticism},
		DetectedHorsemen: []model.DetectedHorseman{{
			Type:   model.HorsemanCriticism,
			Reason: `Mock Reason: Used "always/never"`,
			Quote:  string(quote),
		}},
		Sentiment:       "tense",
		Suggestions:     []string{`Try using "I feel" statements`},
		TransformedText: "[MOCK] I feel frustrated when I see " + text + " because I need support.",
	}
}

// MockRetro is the canned Retro response: the offline split of the narrative.
func MockRetro(narrative string) *model.RetroAnalysis {
	return FallbackRetro(narrative)
}
