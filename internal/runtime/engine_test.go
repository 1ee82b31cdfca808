package runtime

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/cardio-onc/qtwizard/internal/content"
	"github.com/cardio-onc/qtwizard/pkg/domain"
	"github.com/cardio-onc/qtwizard/pkg/dsl"
	"github.com/cardio-onc/qtwizard/pkg/ports"
	"github.com/cardio-onc/qtwizard/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pushLog struct {
	mu     sync.Mutex
	pushes []int
}

func (p *pushLog) RecordTransition(_ context.Context, index int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pushes = append(p.pushes, index)
}

func (p *pushLog) all() []int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]int(nil), p.pushes...)
}

func qtcf(t *testing.T) *registry.Registry {
	t.Helper()
	doc, err := content.QTcF()
	require.NoError(t, err)
	return doc.Registry
}

func newTestEngine(t *testing.T, opts ...EngineOption) (*Engine, *pushLog) {
	t.Helper()
	log := &pushLog{}
	opts = append([]EngineOption{WithRecorder(log), WithAnimationDelay(0)}, opts...)
	e := NewEngine(qtcf(t), opts...)
	t.Cleanup(e.Close)
	return e, log
}

func TestEngine_InitialState(t *testing.T) {
	e, log := newTestEngine(t)

	assert.Equal(t, 0, e.Current())
	assert.Equal(t, "Start: Obtain baseline 12-lead ECG", e.Step().Title)
	assert.Equal(t, domain.NavigationState{CurrentIndex: 0, Animate: true}, e.State())
	assert.Empty(t, log.all())
}

func TestEngine_LinearStepping(t *testing.T) {
	ctx := context.Background()
	e, log := newTestEngine(t)
	n := e.Len()

	assert.False(t, e.HandleBack(ctx), "back is a no-op on the first step")
	assert.Equal(t, 0, e.Current())

	for i := 1; i < n; i++ {
		require.True(t, e.HandleNext(ctx))
		assert.Equal(t, i, e.Current())
	}

	// Terminal steps 6 and 7 did not stop linear stepping.
	assert.False(t, e.HandleNext(ctx), "next is a no-op on the last step")
	assert.Equal(t, n-1, e.Current())

	require.True(t, e.HandleBack(ctx))
	assert.Equal(t, n-2, e.Current())

	assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 7}, log.all())
}

func TestEngine_DirectiveResolution(t *testing.T) {
	ctx := context.Background()

	t.Run("proceed to", func(t *testing.T) {
		e, log := newTestEngine(t, WithStartIndex(3))
		require.True(t, e.HandleOptionClick(ctx, "Proceed to Step 6"))
		assert.Equal(t, 6, e.Current())
		assert.Equal(t, []int{6}, log.all())
	})

	t.Run("full label", func(t *testing.T) {
		e, _ := newTestEngine(t, WithStartIndex(2))
		require.True(t, e.HandleOptionClick(ctx,
			"QTcF is longer than normal (or longer than desired for clinical trials): Proceed to Step 3"))
		assert.Equal(t, 3, e.Current())
	})

	t.Run("foreign label is parsed", func(t *testing.T) {
		e, _ := newTestEngine(t, WithStartIndex(3))
		require.True(t, e.HandleOptionClick(ctx, "Anything: Proceed to Step 5"))
		assert.Equal(t, 5, e.Current())
	})

	t.Run("choose option by position", func(t *testing.T) {
		e, _ := newTestEngine(t, WithStartIndex(3))
		require.True(t, e.ChooseOption(ctx, 1)) // ">120 msec: Proceed to Step 4"
		assert.Equal(t, 4, e.Current())

		// Step 4 only offers a hyperlink.
		assert.False(t, e.ChooseOption(ctx, 0))
		assert.Equal(t, 4, e.Current())
	})
}

func TestEngine_DefaultNextFallback(t *testing.T) {
	ctx := context.Background()
	b := dsl.New()
	b.Step("s0").Next(1)
	for i := 1; i < 7; i++ {
		b.Step("filler")
	}
	b.Step("s7").Terminal()
	reg, err := b.Build()
	require.NoError(t, err)

	// Step 0 -> candidate from DefaultNext.
	e := NewEngine(reg, WithAnimationDelay(0))
	defer e.Close()
	require.True(t, e.HandleOptionClick(ctx, "no directive here"))
	assert.Equal(t, 1, e.Current())

	b2 := dsl.New()
	b2.Step("s0").Next(7).Choice("", dsl.Option("Info: nothing to do"))
	for i := 1; i < 8; i++ {
		b2.Step("filler")
	}
	reg2, err := b2.Build()
	require.NoError(t, err)

	e2 := NewEngine(reg2, WithAnimationDelay(0))
	defer e2.Close()
	require.True(t, e2.HandleOptionClick(ctx, "nothing to do"))
	assert.Equal(t, 7, e2.Current())
}

func TestEngine_AuthoredLabelResolvesLikeParsed(t *testing.T) {
	ctx := context.Background()
	build := func(t *testing.T) *registry.Registry {
		t.Helper()
		b := dsl.New()
		b.Step("s0").Next(1).Choice("",
			dsl.Option("Proceed to Step 5"),
			dsl.Option("a: b: Proceed to Step 4"),
		)
		for i := 1; i < 6; i++ {
			b.Step("filler")
		}
		reg, err := b.Build()
		require.NoError(t, err)
		return reg
	}

	tests := []struct {
		label string
		want  int
	}{
		{label: "Proceed to Step 5", want: 5},
		{label: "a: b: Proceed to Step 4", want: 4},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			e := NewEngine(build(t), WithAnimationDelay(0))
			defer e.Close()

			require.True(t, e.HandleOptionClick(ctx, tt.label))
			assert.Equal(t, tt.want, e.Current())
		})
	}
}

func TestEngine_NoDestination(t *testing.T) {
	ctx := context.Background()
	// Step 2 has no DefaultNext: an option without directive goes nowhere.
	e, log := newTestEngine(t, WithStartIndex(2))

	assert.False(t, e.HandleOptionClick(ctx, "malformed option"))
	assert.Equal(t, 2, e.Current())
	assert.Empty(t, log.all())
}

func TestEngine_TerminalGuard(t *testing.T) {
	ctx := context.Background()

	for _, idx := range []int{6, 7, 8} {
		e, log := newTestEngine(t, WithStartIndex(idx))

		assert.False(t, e.HandleOptionClick(ctx, "Proceed to Step 2"), "step %d blocks directives", idx)
		assert.False(t, e.HandleOptionClick(ctx, "plain"), "step %d blocks fallback", idx)
		assert.Equal(t, idx, e.Current())
		assert.Empty(t, log.all())
	}

	// Linear stepping still works as an escape hatch.
	e, _ := newTestEngine(t, WithStartIndex(6))
	assert.True(t, e.HandleNext(ctx))
	assert.Equal(t, 7, e.Current())
}

func TestEngine_OutOfRangeDirective(t *testing.T) {
	ctx := context.Background()
	e, log := newTestEngine(t, WithStartIndex(3))

	assert.False(t, e.HandleOptionClick(ctx, "Way out: Proceed to Step 99"))
	assert.Equal(t, 3, e.Current())
	assert.Empty(t, log.all())
}

func TestEngine_RoundTripScenario(t *testing.T) {
	ctx := context.Background()
	e, log := newTestEngine(t)

	require.True(t, e.HandleNext(ctx))
	assert.Equal(t, 1, e.Current())

	require.True(t, e.HandleNext(ctx))
	assert.Equal(t, 2, e.Current())

	require.True(t, e.HandleOptionClick(ctx,
		"QTcF <470 msec in males or <480 msec in females: Proceed with cancer therapy then Step 8"))
	assert.Equal(t, 8, e.Current())

	assert.Equal(t, []int{1, 2, 8}, log.all())
}

func TestEngine_Replay(t *testing.T) {
	ctx := context.Background()
	e, log := newTestEngine(t)

	require.True(t, e.Replay(ctx, 5))
	assert.Equal(t, 5, e.Current())
	assert.True(t, e.State().SuppressTransitionEffect)
	assert.True(t, e.State().Animate)
	assert.Empty(t, log.all(), "replay never records")

	assert.False(t, e.Replay(ctx, -1))
	assert.False(t, e.Replay(ctx, 9))
	assert.Equal(t, 5, e.Current())

	// A user-driven commit clears the suppression flag.
	require.True(t, e.HandleBack(ctx))
	assert.False(t, e.State().SuppressTransitionEffect)
	assert.Equal(t, []int{4}, log.all())
}

func TestEngine_StartIndexClamped(t *testing.T) {
	e, _ := newTestEngine(t, WithStartIndex(42))
	assert.Equal(t, 0, e.Current())
}

func TestEngine_Hooks(t *testing.T) {
	ctx := context.Background()
	var committed, blocked, replayed []*domain.TransitionEvent

	e, _ := newTestEngine(t, WithLifecycleHooks(domain.LifecycleHooks{
		OnTransition: func(_ context.Context, ev *domain.TransitionEvent) { committed = append(committed, ev) },
		OnBlocked:    func(_ context.Context, ev *domain.TransitionEvent) { blocked = append(blocked, ev) },
		OnReplay:     func(_ context.Context, ev *domain.TransitionEvent) { replayed = append(replayed, ev) },
	}))

	e.HandleNext(ctx)
	e.Replay(ctx, 2)
	e.HandleOptionClick(ctx, "nothing")
	e.Replay(ctx, 8)
	e.HandleOptionClick(ctx, "Proceed to Step 1")

	require.Len(t, committed, 1)
	assert.Equal(t, domain.TransitionNext, committed[0].Kind)
	assert.Equal(t, 0, committed[0].From)
	assert.Equal(t, 1, committed[0].To)
	assert.False(t, committed[0].Timestamp.IsZero())

	require.Len(t, blocked, 2)
	assert.Equal(t, domain.BlockNoDestination, blocked[0].Reason)
	assert.Equal(t, domain.BlockTerminal, blocked[1].Reason)

	require.Len(t, replayed, 2)
	assert.Equal(t, 2, replayed[0].To)
	assert.Equal(t, 8, replayed[1].To)
}

func TestEngine_ClosedIsNoop(t *testing.T) {
	ctx := context.Background()
	e, log := newTestEngine(t)
	e.Close()
	e.Close()

	assert.False(t, e.HandleNext(ctx))
	assert.False(t, e.HandleBack(ctx))
	assert.False(t, e.HandleOptionClick(ctx, "Proceed to Step 3"))
	assert.False(t, e.Replay(ctx, 3))
	assert.Equal(t, 0, e.Current())
	assert.Empty(t, log.all())
}

func TestEngine_BoundsInvariant(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEngine(t)
	rng := rand.New(rand.NewSource(7))
	labels := []string{
		"Proceed to Step 3",
		"then Step 8",
		"Proceed to Step 99",
		"Proceed to Step -1",
		"garbage",
		"",
	}

	for i := 0; i < 2000; i++ {
		switch rng.Intn(5) {
		case 0:
			e.HandleNext(ctx)
		case 1:
			e.HandleBack(ctx)
		case 2:
			e.HandleOptionClick(ctx, labels[rng.Intn(len(labels))])
		case 3:
			e.ChooseOption(ctx, rng.Intn(3))
		case 4:
			e.Replay(ctx, rng.Intn(14)-2)
		}
		cur := e.Current()
		require.GreaterOrEqual(t, cur, 0)
		require.Less(t, cur, e.Len())
	}
}

func TestEngine_EntryAnimation(t *testing.T) {
	ctx := context.Background()
	e := NewEngine(qtcf(t), WithAnimationDelay(5*time.Millisecond))
	defer e.Close()

	require.True(t, e.HandleNext(ctx))
	assert.False(t, e.State().Animate, "animation restarts after a user commit")

	assert.Eventually(t, func() bool { return e.State().Animate },
		time.Second, time.Millisecond, "animation settles after the delay")

	require.True(t, e.HandleNext(ctx))
	require.True(t, e.Replay(ctx, 0))
	assert.True(t, e.State().Animate, "replay does not animate")
}

func TestEngine_CommitAfterReplayAnimates(t *testing.T) {
	ctx := context.Background()
	e := NewEngine(qtcf(t), WithAnimationDelay(time.Millisecond))
	defer e.Close()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			e.Replay(ctx, 1)
		}()
		go func() {
			defer wg.Done()
			e.HandleNext(ctx)
		}()
		wg.Wait()
	}

	// Whatever the interleaving, the last operation leaves either a settled
	// replay or a pending settle that fires.
	require.True(t, e.HandleNext(ctx) || e.HandleBack(ctx))
	assert.Eventually(t, func() bool { return e.State().Animate },
		time.Second, time.Millisecond)
	assert.False(t, e.animator.Pending())
}

func TestEngine_CloseCancelsAnimation(t *testing.T) {
	ctx := context.Background()
	e := NewEngine(qtcf(t), WithAnimationDelay(time.Hour))

	require.True(t, e.HandleNext(ctx))
	assert.True(t, e.animator.Pending())

	e.Close()
	assert.False(t, e.animator.Pending())
	assert.False(t, e.State().Animate)
}

var _ ports.Navigator = (*Engine)(nil)
var _ ports.Replayer = (*Engine)(nil)
