package flow

type BridgeState int

const (
	BridgeEmotion BridgeState = iota
	BridgeInput
	BridgeTransform
	BridgeDelivery
)

func (s BridgeState) String() string {
	switch s {
	case BridgeEmotion:
		return "emotion"
	case BridgeInput:
		return "input"
	case BridgeTransform:
		return "transform"
	case BridgeDelivery:
		return "delivery"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further event is accepted.
func (s BridgeState) Terminal() bool {
	return s == BridgeDelivery
}

type BridgeEvent int

const (
	EmotionChosen BridgeEvent = iota
	TextSubmitted
	RewriteAccepted
	BridgeBack
)

func (e BridgeEvent) String() string {
	switch e {
	case EmotionChosen:
		return "emotion_chosen"
	case TextSubmitted:
		return "text_submitted"
	case RewriteAccepted:
		return "rewrite_accepted"
	case BridgeBack:
		return "back"
	default:
		return "unknown"
	}
}

// NextBridge moves the composer one step. Back only returns to the
// immediately preceding step and is refused once the message is delivered.
func NextBridge(s BridgeState, e BridgeEvent) (BridgeState, error) {
	switch s {
	case BridgeEmotion:
		if e == EmotionChosen {
			return BridgeInput, nil
		}
	case BridgeInput:
		switch e {
		case TextSubmitted:
			return BridgeTransform, nil
		case BridgeBack:
			return BridgeEmotion, nil
		}
	case BridgeTransform:
		switch e {
		case RewriteAccepted:
			return BridgeDelivery, nil
		case BridgeBack:
			return BridgeInput, nil
		}
	case BridgeDelivery:
	}
	return s, &TransitionError{From: s.String(), Event: e.String()}
}
