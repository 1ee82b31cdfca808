package qtwizard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cardio-onc/qtwizard/internal/content"
	"github.com/cardio-onc/qtwizard/internal/logging"
	"github.com/cardio-onc/qtwizard/internal/runtime"
	"github.com/cardio-onc/qtwizard/pkg/adapters/memory"
	"github.com/cardio-onc/qtwizard/pkg/domain"
	"github.com/cardio-onc/qtwizard/pkg/history"
	"github.com/cardio-onc/qtwizard/pkg/ports"
	"github.com/cardio-onc/qtwizard/pkg/registry"
)

// Version is the release of the wizard.
const Version = "0.3.0"

// Wizard is the high-level entry point.
// It wires a registry, a navigation engine and a history bridge over one
// history platform.
type Wizard struct {
	engine   *runtime.Engine
	bridge   *history.Bridge
	platform ports.HistoryPlatform
	registry *registry.Registry
	title    string

	hooks          domain.LifecycleHooks
	logger         *slog.Logger
	animationDelay time.Duration
	hasDelay       bool
}

// Option defines a functional option for configuring the Wizard.
type Option func(*Wizard)

// WithRegistry replaces the compiled-in QTcF content.
func WithRegistry(reg *registry.Registry) Option {
	return func(w *Wizard) {
		w.registry = reg
	}
}

// WithTitle sets the display title.
func WithTitle(title string) Option {
	return func(w *Wizard) {
		w.title = title
	}
}

// WithHistory replaces the in-memory history platform.
func WithHistory(p ports.HistoryPlatform) Option {
	return func(w *Wizard) {
		w.platform = p
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Wizard) {
		w.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(w *Wizard) {
		w.hooks = hooks
	}
}

// WithAnimationDelay overrides the entry animation settle delay.
func WithAnimationDelay(d time.Duration) Option {
	return func(w *Wizard) {
		w.animationDelay = d
		w.hasDelay = true
	}
}

// New assembles a wizard positioned at step 0.
func New(opts ...Option) (*Wizard, error) {
	w := &Wizard{}
	for _, opt := range opts {
		opt(w)
	}

	if w.logger == nil {
		w.logger = logging.NewNop()
	}
	if w.registry == nil {
		doc, err := content.QTcF()
		if err != nil {
			return nil, fmt.Errorf("failed to load built-in content: %w", err)
		}
		w.registry = doc.Registry
		if w.title == "" {
			w.title = doc.Title
		}
	}
	if w.platform == nil {
		w.platform = memory.NewHistory()
	}

	w.bridge = history.NewBridge(w.platform, history.WithLogger(w.logger))

	engineOpts := []runtime.EngineOption{
		runtime.WithLogger(w.logger),
		runtime.WithRecorder(w.bridge),
		runtime.WithLifecycleHooks(w.hooks),
	}
	if w.hasDelay {
		engineOpts = append(engineOpts, runtime.WithAnimationDelay(w.animationDelay))
	}
	w.engine = runtime.NewEngine(w.registry, engineOpts...)

	if err := w.bridge.Attach(w.engine); err != nil {
		w.engine.Close()
		return nil, fmt.Errorf("failed to attach history: %w", err)
	}
	return w, nil
}

// HandleOptionClick resolves a clicked option label. See runtime.Engine.
func (w *Wizard) HandleOptionClick(ctx context.Context, label string) bool {
	return w.engine.HandleOptionClick(ctx, label)
}

// ChooseOption clicks the n-th clickable option of the current step.
func (w *Wizard) ChooseOption(ctx context.Context, n int) bool {
	return w.engine.ChooseOption(ctx, n)
}

// Next advances one step.
func (w *Wizard) Next(ctx context.Context) bool {
	return w.engine.HandleNext(ctx)
}

// Back goes back one step. This is the in-page control, not history.
func (w *Wizard) Back(ctx context.Context) bool {
	return w.engine.HandleBack(ctx)
}

// HandleNext is Next under the ports.Navigator name.
func (w *Wizard) HandleNext(ctx context.Context) bool { return w.Next(ctx) }

// HandleBack is Back under the ports.Navigator name.
func (w *Wizard) HandleBack(ctx context.Context) bool { return w.Back(ctx) }

// HistoryBack moves the platform one entry back, when it supports traversal.
func (w *Wizard) HistoryBack() bool {
	t, ok := w.platform.(traverser)
	return ok && t.Back()
}

// HistoryForward moves the platform one entry forward, when it supports traversal.
func (w *Wizard) HistoryForward() bool {
	t, ok := w.platform.(traverser)
	return ok && t.Forward()
}

type traverser interface {
	Back() bool
	Forward() bool
}

// Current returns the active step index.
func (w *Wizard) Current() int { return w.engine.Current() }

// Step returns the active step.
func (w *Wizard) Step() domain.Step { return w.engine.Step() }

// State returns a snapshot of the navigation state.
func (w *Wizard) State() domain.NavigationState { return w.engine.State() }

// Registry returns the step registry.
func (w *Wizard) Registry() *registry.Registry { return w.registry }

// History returns the history platform.
func (w *Wizard) History() ports.HistoryPlatform { return w.platform }

// Title returns the display title, empty for custom registries without WithTitle.
func (w *Wizard) Title() string { return w.title }

// Close releases the history subscription and stops the engine.
func (w *Wizard) Close() {
	w.bridge.Close()
	w.engine.Close()
}

var _ ports.Navigator = (*Wizard)(nil)
