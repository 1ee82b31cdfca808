package observability

import (
	"context"
	"log/slog"

	"github.com/cardio-onc/qtwizard/pkg/domain"
)

// LoggingHooks returns hooks that write an audit record per navigation request.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	audit := func(msg string) func(context.Context, *domain.TransitionEvent) {
		return func(ctx context.Context, e *domain.TransitionEvent) {
			attrs := []any{"kind", e.Kind, "from", e.From, "to", e.To}
			if e.Label != "" {
				attrs = append(attrs, "label", e.Label)
			}
			if e.Reason != "" {
				attrs = append(attrs, "reason", e.Reason)
			}
			logger.InfoContext(ctx, msg, attrs...)
		}
	}
	return domain.LifecycleHooks{
		OnTransition: audit("step_transition"),
		OnReplay:     audit("step_replay"),
		OnBlocked:    audit("step_blocked"),
	}
}

// Combine fans every event out to each hook set in order.
func Combine(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	fan := func(pick func(domain.LifecycleHooks) func(context.Context, *domain.TransitionEvent)) func(context.Context, *domain.TransitionEvent) {
		var fns []func(context.Context, *domain.TransitionEvent)
		for _, s := range sets {
			if fn := pick(s); fn != nil {
				fns = append(fns, fn)
			}
		}
		if len(fns) == 0 {
			return nil
		}
		return func(ctx context.Context, e *domain.TransitionEvent) {
			for _, fn := range fns {
				fn(ctx, e)
			}
		}
	}
	return domain.LifecycleHooks{
		OnTransition: fan(func(h domain.LifecycleHooks) func(context.Context, *domain.TransitionEvent) { return h.OnTransition }),
		OnBlocked:    fan(func(h domain.LifecycleHooks) func(context.Context, *domain.TransitionEvent) { return h.OnBlocked }),
		OnReplay:     fan(func(h domain.LifecycleHooks) func(context.Context, *domain.TransitionEvent) { return h.OnReplay }),
	}
}
