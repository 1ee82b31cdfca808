// Package memory provides an in-process emulation of a browser session history.
package memory

import (
	"sync"

	"github.com/cardio-onc/qtwizard/pkg/domain"
)

// History implements ports.HistoryPlatform in memory.
// It starts with a single state-less entry, like a freshly loaded page.
// Safe for concurrent use; subscribers are notified outside the lock.
type History struct {
	mu      sync.Mutex
	entries []*domain.HistoryState
	cursor  int
	subs    map[uint64]func(domain.PopEvent)
	nextID  uint64
}

// NewHistory creates a history positioned on its initial entry.
func NewHistory() *History {
	return &History{
		entries: []*domain.HistoryState{nil},
		subs:    make(map[uint64]func(domain.PopEvent)),
	}
}

// PushState drops any forward entries and appends state after the cursor.
// Like the browser primitive, it does not notify subscribers.
func (h *History) PushState(state domain.HistoryState) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = append(h.entries[:h.cursor+1], &state)
	h.cursor++
}

// Subscribe registers fn for pop notifications.
func (h *History) Subscribe(fn func(domain.PopEvent)) func() {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++
	h.subs[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subs, id)
		})
	}
}

// Back moves one entry back. It returns false at the first entry.
func (h *History) Back() bool {
	return h.Go(-1)
}

// Forward moves one entry forward. It returns false at the last entry.
func (h *History) Forward() bool {
	return h.Go(1)
}

// Go moves the cursor by delta and notifies subscribers with the new entry.
// A move outside the stack, or a zero delta, does nothing.
func (h *History) Go(delta int) bool {
	h.mu.Lock()
	target := h.cursor + delta
	if delta == 0 || target < 0 || target >= len(h.entries) {
		h.mu.Unlock()
		return false
	}
	h.cursor = target

	ev := domain.PopEvent{}
	if s := h.entries[target]; s != nil {
		cp := *s
		ev.State = &cp
	}
	subs := make([]func(domain.PopEvent), 0, len(h.subs))
	for _, fn := range h.subs {
		subs = append(subs, fn)
	}
	h.mu.Unlock()

	for _, fn := range subs {
		fn(ev)
	}
	return true
}

// Len returns the number of entries, including the initial one.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Index returns the cursor position.
func (h *History) Index() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cursor
}

// Entries returns a copy of the stack; the initial entry is nil.
func (h *History) Entries() []*domain.HistoryState {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]*domain.HistoryState, len(h.entries))
	for i, s := range h.entries {
		if s != nil {
			cp := *s
			out[i] = &cp
		}
	}
	return out
}

// Subscribers returns the number of live subscriptions.
func (h *History) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
