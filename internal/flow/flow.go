// Package flow holds the client-side step machines for composing a bridge
// message and for writing a retro. Transitions are pure; callers keep the
// current state and feed events in.
package flow

import "fmt"

// TransitionError is returned when an event is not valid in the current state.
type TransitionError struct {
	From  string
	Event string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("flow: %s is not allowed from %s", e.Event, e.From)
}
