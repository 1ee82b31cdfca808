package domain

// NavigationState is the mutable snapshot owned by a navigation engine.
type NavigationState struct {
	// CurrentIndex is always a valid registry index.
	CurrentIndex int `json:"current_index"`

	// SuppressTransitionEffect is true only after a history replay, so that the
	// entry animation is not played for browser-driven changes.
	SuppressTransitionEffect bool `json:"suppress_transition_effect"`

	// Animate mirrors the cosmetic entry-animation flag: false right after a
	// user-driven commit, true once the short settle delay has elapsed.
	Animate bool `json:"animate"`
}

// NewNavigationState returns the state a freshly mounted wizard starts in.
func NewNavigationState() NavigationState {
	return NavigationState{CurrentIndex: 0, Animate: true}
}

// HistoryState is the payload pushed to (and popped from) platform history.
type HistoryState struct {
	Step int `json:"step"`
}

// PopEvent is delivered when the platform moves through its history.
// State is nil when the entry carries no payload (e.g. initial load).
type PopEvent struct {
	State *HistoryState `json:"state"`
}

// TargetIndex returns the popped step, defaulting to 0 when no state is present.
func (e PopEvent) TargetIndex() int {
	if e.State == nil {
		return 0
	}
	return e.State.Step
}
