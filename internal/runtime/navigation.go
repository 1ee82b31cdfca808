package runtime

import (
	"context"

	"github.com/cardio-onc/qtwizard/pkg/domain"
	"github.com/cardio-onc/qtwizard/pkg/registry"
)

// HandleOptionClick resolves a clicked option label into a transition.
//
// A trailing directive in the label names the candidate; otherwise the current
// step's DefaultNext does. The move commits only when the candidate is set, in
// range, and the current step is not terminal. A terminal source step blocks
// even a valid directive.
// TODO: confirm with content owners whether the terminal guard should apply to
// explicit directives; terminal steps currently carry no clickable options.
func (e *Engine) HandleOptionClick(ctx context.Context, label string) bool {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return e.blocked(ctx, domain.TransitionOption, -1, -1, label, domain.BlockClosed)
	}

	from := e.state.CurrentIndex
	step := e.registry.MustGet(from)
	candidate := resolveCandidate(step, label)

	e.logger.Debug("processing option",
		"label", label,
		"step", from,
		"candidate", candidate.String(),
	)

	var reason domain.BlockReason
	to, ok := candidate.Index()
	if !ok {
		to = -1
	}
	switch {
	case step.IsTerminal():
		reason = domain.BlockTerminal
	case !ok:
		reason = domain.BlockNoDestination
	case !e.registry.InRange(to):
		reason = domain.BlockOutOfRange
	}
	if reason != "" {
		e.mu.Unlock()
		return e.blocked(ctx, domain.TransitionOption, from, to, label, reason)
	}

	e.commitLocked(to)
	e.mu.Unlock()

	e.recorded(ctx, domain.TransitionOption, from, to, label)
	return true
}

// ChooseOption clicks the n-th clickable option of the current step.
// Rich options and options without a directive phrase are not counted.
func (e *Engine) ChooseOption(ctx context.Context, n int) bool {
	opts := e.Step().ClickableOptions()
	if n < 0 || n >= len(opts) {
		e.logger.Debug("option not available", "option", n, "clickable", len(opts))
		return false
	}
	return e.HandleOptionClick(ctx, opts[n].Clickable)
}

// HandleNext advances one step. Only the last step blocks it; DefaultNext and
// terminal markers are ignored.
func (e *Engine) HandleNext(ctx context.Context) bool {
	return e.step(ctx, domain.TransitionNext, 1)
}

// HandleBack goes back one step. Only the first step blocks it.
func (e *Engine) HandleBack(ctx context.Context) bool {
	return e.step(ctx, domain.TransitionBack, -1)
}

// Replay jumps to target on behalf of platform history.
// Nothing is recorded and the entry animation is suppressed.
func (e *Engine) Replay(ctx context.Context, target int) bool {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return e.blocked(ctx, domain.TransitionReplay, -1, target, "", domain.BlockClosed)
	}

	from := e.state.CurrentIndex
	if !e.registry.InRange(target) {
		e.mu.Unlock()
		return e.blocked(ctx, domain.TransitionReplay, from, target, "", domain.BlockOutOfRange)
	}

	e.state.CurrentIndex = target
	e.state.SuppressTransitionEffect = true
	e.state.Animate = true
	e.animator.Cancel()
	e.mu.Unlock()

	e.logger.Debug("replayed history entry", "from", from, "to", target)
	e.emit(ctx, e.hooks.OnReplay, &domain.TransitionEvent{
		Kind:      domain.TransitionReplay,
		From:      from,
		To:        target,
		Committed: true,
	})
	return true
}

func (e *Engine) step(ctx context.Context, kind domain.TransitionKind, delta int) bool {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return e.blocked(ctx, kind, -1, -1, "", domain.BlockClosed)
	}

	from := e.state.CurrentIndex
	to := from + delta
	if !e.registry.InRange(to) {
		e.mu.Unlock()
		return e.blocked(ctx, kind, from, to, "", domain.BlockOutOfRange)
	}

	e.commitLocked(to)
	e.mu.Unlock()

	e.recorded(ctx, kind, from, to, "")
	return true
}

// commitLocked applies a user-driven transition. Caller holds e.mu.
func (e *Engine) commitLocked(to int) {
	e.state.CurrentIndex = to
	e.state.SuppressTransitionEffect = false
	if e.animationDelay <= 0 {
		e.state.Animate = true
		return
	}
	e.state.Animate = false
	e.animator.Restart()
}

func (e *Engine) recorded(ctx context.Context, kind domain.TransitionKind, from, to int, label string) {
	e.logger.Debug("navigating to step", "kind", kind, "from", from, "to", to)

	if e.recorder != nil {
		e.recorder.RecordTransition(ctx, to)
	}

	e.emit(ctx, e.hooks.OnTransition, &domain.TransitionEvent{
		Kind:      kind,
		From:      from,
		To:        to,
		Label:     label,
		Committed: true,
	})
}

func (e *Engine) blocked(ctx context.Context, kind domain.TransitionKind, from, to int, label string, reason domain.BlockReason) bool {
	e.logger.Debug("navigation blocked or invalid",
		"kind", kind,
		"from", from,
		"to", to,
		"reason", reason,
	)

	e.emit(ctx, e.hooks.OnBlocked, &domain.TransitionEvent{
		Kind:   kind,
		From:   from,
		To:     to,
		Label:  label,
		Reason: reason,
	})
	return false
}

// resolveCandidate returns the destination a label resolves to on step.
// Labels belonging to the step use their compiled destination; foreign labels
// are parsed on the spot.
func resolveCandidate(step domain.Step, label string) domain.Destination {
	dest, found := compiledDestination(step, label)
	if !found {
		if n, ok := registry.ParseDirective(label); ok {
			dest = domain.To(n)
		}
	}
	if dest.IsSet() {
		return dest
	}
	return step.DefaultNext
}

func compiledDestination(step domain.Step, label string) (domain.Destination, bool) {
	for _, c := range step.Choices() {
		for _, o := range c.Options {
			p, ok := o.(domain.PlainOption)
			if !ok {
				continue
			}
			if label == p.Clickable || label == p.Label {
				return p.Destination, true
			}
		}
	}
	return domain.Absent(), false
}
