package model

// Emotion is how the sender of a Bridge message feels.
type Emotion string

const (
	EmotionAngry        Emotion = "angry"
	EmotionFrustrated   Emotion = "frustrated"
	EmotionHurt         Emotion = "hurt"
	EmotionSad          Emotion = "sad"
	EmotionAnxious      Emotion = "anxious"
	EmotionConfused     Emotion = "confused"
	EmotionDisappointed Emotion = "disappointed"
	EmotionOverwhelmed  Emotion = "overwhelmed"
)

// Emotions lists the vocabulary in display order.
var Emotions = []Emotion{
	EmotionAngry,
	EmotionFrustrated,
	EmotionHurt,
	EmotionSad,
	EmotionAnxious,
	EmotionConfused,
	EmotionDisappointed,
	EmotionOverwhelmed,
}

func (e Emotion) Valid() bool {
	for _, known := range Emotions {
		if e == known {
			return true
		}
	}
	return false
}
