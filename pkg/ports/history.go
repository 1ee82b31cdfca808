package ports

import (
	"context"

	"github.com/cardio-onc/qtwizard/pkg/domain"
)

// HistoryPlatform abstracts a platform navigation stack such as browser history.
type HistoryPlatform interface {
	// PushState appends a new entry carrying state after the current one.
	PushState(state domain.HistoryState)

	// Subscribe registers fn for pop notifications (native back/forward).
	// The returned func releases the subscription and is safe to call twice.
	Subscribe(fn func(domain.PopEvent)) (unsubscribe func())
}

// TransitionRecorder is notified of each committed user-driven transition.
// History replays are never recorded.
type TransitionRecorder interface {
	RecordTransition(ctx context.Context, index int)
}

// RecorderFunc adapts a plain func to TransitionRecorder.
type RecorderFunc func(ctx context.Context, index int)

// RecordTransition calls f.
func (f RecorderFunc) RecordTransition(ctx context.Context, index int) {
	f(ctx, index)
}
