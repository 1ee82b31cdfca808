package runtime

import (
	"sync"
	"time"
)

// Animator retriggers the cosmetic entry animation after a committed step
// change. It carries no correctness semantics: a settle that fires after Stop,
// or that was superseded by a newer Restart or a Cancel, does nothing.
type Animator struct {
	mu       sync.Mutex
	delay    time.Duration
	onSettle func()
	timer    *time.Timer
	gen      uint64
	stopped  bool
}

// NewAnimator returns an animator calling onSettle delay after each Restart.
func NewAnimator(delay time.Duration, onSettle func()) *Animator {
	return &Animator{delay: delay, onSettle: onSettle}
}

// Restart schedules a settle, replacing any pending one.
func (a *Animator) Restart() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.stopped {
		return
	}
	a.cancelLocked()

	gen := a.gen
	a.timer = time.AfterFunc(a.delay, func() {
		a.fire(gen)
	})
}

// Cancel drops a pending settle without stopping the animator.
func (a *Animator) Cancel() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cancelLocked()
}

// Stop cancels any pending settle; later Restarts are ignored.
func (a *Animator) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stopped = true
	a.cancelLocked()
}

// Pending reports whether a settle is scheduled.
func (a *Animator) Pending() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.timer != nil
}

func (a *Animator) cancelLocked() {
	a.gen++
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
}

func (a *Animator) fire(gen uint64) {
	a.mu.Lock()
	if a.stopped || gen != a.gen {
		a.mu.Unlock()
		return
	}
	a.timer = nil
	a.mu.Unlock()

	if a.onSettle != nil {
		a.onSettle()
	}
}
