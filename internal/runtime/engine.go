package runtime

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cardio-onc/qtwizard/internal/logging"
	"github.com/cardio-onc/qtwizard/pkg/domain"
	"github.com/cardio-onc/qtwizard/pkg/ports"
	"github.com/cardio-onc/qtwizard/pkg/registry"
)

// DefaultAnimationDelay is the settle delay of the cosmetic entry animation.
const DefaultAnimationDelay = 10 * time.Millisecond

// Engine is the step navigation engine.
// It exclusively owns one NavigationState; all mutations go through the
// option/next/back/replay entry points.
type Engine struct {
	mu    sync.Mutex
	state domain.NavigationState

	registry *registry.Registry
	recorder ports.TransitionRecorder
	hooks    domain.LifecycleHooks
	logger   *slog.Logger

	animator       *Animator
	animationDelay time.Duration
	startIndex     int
	closed         bool
}

// EngineOption defines a functional option for configuring the Engine.
type EngineOption func(*Engine)

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithRecorder registers the sink for committed user-driven transitions.
func WithRecorder(r ports.TransitionRecorder) EngineOption {
	return func(e *Engine) {
		e.recorder = r
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithStartIndex starts the engine at index instead of 0.
// Stateless adapters use it to rebuild an engine from a client-held index.
func WithStartIndex(index int) EngineOption {
	return func(e *Engine) {
		e.startIndex = index
	}
}

// WithAnimationDelay overrides DefaultAnimationDelay.
// A zero delay settles the animation flag synchronously.
func WithAnimationDelay(d time.Duration) EngineOption {
	return func(e *Engine) {
		e.animationDelay = d
	}
}

// NewEngine creates an engine positioned at step 0 of reg.
func NewEngine(reg *registry.Registry, opts ...EngineOption) *Engine {
	e := &Engine{
		registry:       reg,
		logger:         logging.NewNop(),
		animationDelay: DefaultAnimationDelay,
		state:          domain.NewNavigationState(),
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.startIndex != 0 {
		if reg.InRange(e.startIndex) {
			e.state.CurrentIndex = e.startIndex
		} else {
			// Precondition violation: clamp instead of exposing an invalid index.
			e.logger.Warn("start index out of range, clamping to 0",
				"index", e.startIndex,
				"len", reg.Len(),
			)
		}
	}

	e.animator = NewAnimator(e.animationDelay, e.settle)
	return e
}

// Registry returns the registry the engine navigates.
func (e *Engine) Registry() *registry.Registry {
	return e.registry
}

// Len returns the number of steps.
func (e *Engine) Len() int {
	return e.registry.Len()
}

// Current returns the active step index.
func (e *Engine) Current() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.CurrentIndex
}

// Step returns the active step.
func (e *Engine) Step() domain.Step {
	return e.registry.MustGet(e.Current())
}

// State returns a snapshot of the navigation state.
func (e *Engine) State() domain.NavigationState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Close tears the engine down. A pending animation settle is cancelled and
// every later operation is a no-op.
func (e *Engine) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	e.closed = true
	e.mu.Unlock()

	e.animator.Stop()
}

// settle is the animation timer callback.
func (e *Engine) settle() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.state.Animate = true
}

func (e *Engine) emit(ctx context.Context, hook func(context.Context, *domain.TransitionEvent), ev *domain.TransitionEvent) {
	if hook == nil {
		return
	}
	ev.Timestamp = time.Now()
	hook(ctx, ev)
}
