// Package history keeps a platform navigation stack in sync with the engine.
package history

import (
	"context"
	"log/slog"
	"sync"

	"github.com/cardio-onc/qtwizard/internal/logging"
	"github.com/cardio-onc/qtwizard/pkg/domain"
	"github.com/cardio-onc/qtwizard/pkg/ports"
)

// Bridge is the only component touching platform history.
//
// Committed user-driven transitions are pushed as {step: index}; pop
// notifications are bounds-checked and replayed into the attached engine,
// which never pushes on replay.
type Bridge struct {
	platform ports.HistoryPlatform
	logger   *slog.Logger

	mu          sync.Mutex
	target      ports.Replayer
	unsubscribe func()
	closed      bool
}

// Option configures the Bridge.
type Option func(*Bridge)

// WithLogger configures a logger for the Bridge.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bridge) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewBridge creates a detached bridge over platform.
func NewBridge(platform ports.HistoryPlatform, opts ...Option) *Bridge {
	b := &Bridge{
		platform: platform,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Attach subscribes to pop notifications and routes them to target.
// The subscription lives until Close.
func (b *Bridge) Attach(target ports.Replayer) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return domain.ErrClosed
	}
	if b.target != nil {
		return domain.ErrAlreadyAttached
	}

	b.target = target
	b.unsubscribe = b.platform.Subscribe(b.onPop)
	return nil
}

// RecordTransition pushes a history entry for a committed transition.
func (b *Bridge) RecordTransition(ctx context.Context, index int) {
	b.mu.Lock()
	closed := b.closed
	b.mu.Unlock()
	if closed {
		return
	}

	b.platform.PushState(domain.HistoryState{Step: index})
	b.logger.Debug("history entry pushed", "step", index)
}

// Close releases the pop subscription. It is idempotent.
func (b *Bridge) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	unsubscribe := b.unsubscribe
	b.unsubscribe = nil
	b.target = nil
	b.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
}

func (b *Bridge) onPop(ev domain.PopEvent) {
	b.mu.Lock()
	target := b.target
	closed := b.closed
	b.mu.Unlock()
	if closed || target == nil {
		return
	}

	step := ev.TargetIndex()
	if step < 0 || step >= target.Len() {
		b.logger.Debug("ignoring out of range history entry", "step", step, "len", target.Len())
		return
	}
	target.Replay(context.Background(), step)
}

var _ ports.TransitionRecorder = (*Bridge)(nil)
