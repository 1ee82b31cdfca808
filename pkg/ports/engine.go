package ports

import (
	"context"

	"github.com/cardio-onc/qtwizard/pkg/domain"
)

// Navigator is the surface a render collaborator drives.
// Every method reports whether a transition committed; a false return is a
// designed no-op, never an error.
type Navigator interface {
	HandleOptionClick(ctx context.Context, label string) bool
	ChooseOption(ctx context.Context, n int) bool
	HandleNext(ctx context.Context) bool
	HandleBack(ctx context.Context) bool

	// Current returns the active step index.
	Current() int
	// Step returns the active step.
	Step() domain.Step
	// State returns a snapshot of the navigation state.
	State() domain.NavigationState
}

// Replayer accepts history-driven jumps.
type Replayer interface {
	Replay(ctx context.Context, target int) bool
	Len() int
}
