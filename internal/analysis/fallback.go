package analysis

import (
	"regexp"
	"strings"

	"github.com/alex28786/the-reef/internal/model"
)

type horsemanRule struct {
	pattern  *regexp.Regexp
	horseman model.Horseman
	reason   string
}

// Checked in order; each rule contributes at most one flag.
var horsemanRules = []horsemanRule{
	{
		pattern:  regexp.MustCompile(`(?i)you always|you never`),
		horseman: model.HorsemanCriticism,
		reason:   `Using absolute terms like "always" or "never" attacks character instead of specific behavior.`,
	},
	{
		pattern:  regexp.MustCompile(`(?i)whatever|i'm done|forget it`),
		horseman: model.HorsemanStonewalling,
		reason:   "Withdrawing from the conversation helps no one.",
	},
	{
		pattern:  regexp.MustCompile(`(?i)but you|it's not my fault`),
		horseman: model.HorsemanDefensiveness,
		reason:   "Deflecting blame prevents understanding the core issue.",
	},
	{
		pattern:  regexp.MustCompile(`(?i)eye roll|pathetic|ridiculous`),
		horseman: model.HorsemanContempt,
		reason:   "Mockery and disrespect are the most destructive predictors of divorce.",
	},
}

var (
	leadingYou      = regexp.MustCompile(`^you `)
	absoluteWords   = regexp.MustCompile(`(?i)always|never`)
	sentenceSplit   = regexp.MustCompile(`[.!?]+`)
	mindReadPattern = regexp.MustCompile(`(?i)because.*(?:wanted|trying|meant)`)
	feelingPattern  = regexp.MustCompile(`(?i)(?:felt|seemed|appeared|think|believe|assume)`)
	actionPattern   = regexp.MustCompile(`(?i)(?:said|did|went|came|called|texted|at \d)`)
)

const (
	maxRetroSentences = 6
	maxVideoFacts     = 3
	maxInterpretation = 3
	maxMindReads      = 2
)

// FallbackBridge is the deterministic offline Bridge analysis.
func FallbackBridge(text string) *model.BridgeAnalysis {
	out := &model.BridgeAnalysis{
		HorsemenFlags:    []model.Horseman{},
		DetectedHorsemen: []model.DetectedHorseman{},
	}

	for _, rule := range horsemanRules {
		match := rule.pattern.FindString(text)
		if match == "" {
			continue
		}
		out.HorsemenFlags = append(out.HorsemenFlags, rule.horseman)
		out.DetectedHorsemen = append(out.DetectedHorsemen, model.DetectedHorseman{
			Type:   rule.horseman,
			Reason: rule.reason,
			Quote:  match,
		})
	}

	if len(out.HorsemenFlags) > 0 {
		out.Sentiment = "tense"
		out.Suggestions = []string{`Try using "I feel" statements`, "Focus on specific behaviors, not character"}
	} else {
		out.Sentiment = defaultSentiment
		out.Suggestions = []string{"Good job expressing yourself!"}
	}

	out.TransformedText = fallbackRewrite(text)
	return out
}

func fallbackRewrite(text string) string {
	observation := strings.ToLower(text)
	observation = leadingYou.ReplaceAllString(observation, "I notice that ")
	observation = absoluteWords.ReplaceAllString(observation, "sometimes")
	return "I'm feeling upset right now. When " + observation +
		", I feel hurt because I need to feel valued. Could we talk about this when we're both calm?"
}

// FallbackRetro is the deterministic offline Retro analysis. Each of facts,
// interpretations and mind-reads holds at least one entry.
func FallbackRetro(narrative string) *model.RetroAnalysis {
	var sentences []string
	for _, s := range sentenceSplit.Split(narrative, -1) {
		if s = strings.TrimSpace(s); s != "" {
			sentences = append(sentences, s)
		}
	}
	if len(sentences) > maxRetroSentences {
		sentences = sentences[:maxRetroSentences]
	}

	out := &model.RetroAnalysis{}
	for _, s := range sentences {
		switch {
		case mindReadPattern.MatchString(s):
			out.MindReads = append(out.MindReads, s)
		case feelingPattern.MatchString(s):
			out.Interpretations = append(out.Interpretations, s)
		case actionPattern.MatchString(s):
			out.VideoFacts = append(out.VideoFacts, s)
		default:
			// Unclassified sentences read as interpretation
			out.Interpretations = append(out.Interpretations, s)
		}
	}

	fillRetro(out)
	out.VideoFacts = capList(out.VideoFacts, maxVideoFacts)
	out.Interpretations = capList(out.Interpretations, maxInterpretation)
	out.MindReads = capList(out.MindReads, maxMindReads)
	out.EmotionalUndertones = []string{"Processing", "Seeking understanding"}
	return out
}

func capList(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
