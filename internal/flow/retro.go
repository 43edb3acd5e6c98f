package flow

type RetroState int

const (
	RetroWrite RetroState = iota
	RetroWaiting
	RetroRevealed
)

func (s RetroState) String() string {
	switch s {
	case RetroWrite:
		return "write"
	case RetroWaiting:
		return "waiting"
	case RetroRevealed:
		return "revealed"
	default:
		return "unknown"
	}
}

func (s RetroState) Terminal() bool {
	return s == RetroRevealed
}

type RetroEvent int

const (
	Submitted RetroEvent = iota
	Revealed
	RetroBack
)

func (e RetroEvent) String() string {
	switch e {
	case Submitted:
		return "submitted"
	case Revealed:
		return "revealed"
	case RetroBack:
		return "back"
	default:
		return "unknown"
	}
}

// NextRetro moves the retro flow one step. Going back from waiting means
// revising the narrative before the partner submits.
func NextRetro(s RetroState, e RetroEvent) (RetroState, error) {
	switch s {
	case RetroWrite:
		if e == Submitted {
			return RetroWaiting, nil
		}
	case RetroWaiting:
		switch e {
		case Revealed:
			return RetroRevealed, nil
		case RetroBack:
			return RetroWrite, nil
		}
	case RetroRevealed:
	}
	return s, &TransitionError{From: s.String(), Event: e.String()}
}
