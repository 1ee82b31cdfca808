package domain

import (
	"context"
	"time"
)

// TransitionKind identifies the entry point that produced a transition.
type TransitionKind string

const (
	TransitionOption TransitionKind = "option"
	TransitionNext   TransitionKind = "next"
	TransitionBack   TransitionKind = "back"
	TransitionReplay TransitionKind = "replay"
)

// BlockReason explains why a transition did not commit.
type BlockReason string

const (
	BlockNoDestination BlockReason = "no_destination"
	BlockOutOfRange    BlockReason = "out_of_range"
	BlockTerminal      BlockReason = "terminal"
	BlockClosed        BlockReason = "closed"
)

// TransitionEvent describes one resolved (or rejected) navigation request.
type TransitionEvent struct {
	Timestamp time.Time      `json:"timestamp"`
	Kind      TransitionKind `json:"kind"`
	From      int            `json:"from"`
	To        int            `json:"to"`
	Label     string         `json:"label,omitempty"`
	Committed bool           `json:"committed"`
	Reason    BlockReason    `json:"reason,omitempty"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	// OnTransition fires after a user-driven transition commits.
	OnTransition func(context.Context, *TransitionEvent)
	// OnBlocked fires when a request resolves to a no-op.
	OnBlocked func(context.Context, *TransitionEvent)
	// OnReplay fires after a history replay commits.
	OnReplay func(context.Context, *TransitionEvent)
}
