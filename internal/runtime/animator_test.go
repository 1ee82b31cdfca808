package runtime

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAnimator_RestartSupersedes(t *testing.T) {
	var fired atomic.Int32
	a := NewAnimator(20*time.Millisecond, func() { fired.Add(1) })
	defer a.Stop()

	a.Restart()
	a.Restart()
	a.Restart()

	assert.Eventually(t, func() bool { return fired.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load(), "superseded settles never fire")
	assert.False(t, a.Pending())
}

func TestAnimator_StopPreventsSettle(t *testing.T) {
	var fired atomic.Int32
	a := NewAnimator(10*time.Millisecond, func() { fired.Add(1) })

	a.Restart()
	a.Stop()
	a.Restart()

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())
	assert.False(t, a.Pending())
}

func TestAnimator_Cancel(t *testing.T) {
	var fired atomic.Int32
	a := NewAnimator(10*time.Millisecond, func() { fired.Add(1) })
	defer a.Stop()

	a.Restart()
	a.Cancel()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())

	a.Restart()
	assert.Eventually(t, func() bool { return fired.Load() == 1 }, time.Second, time.Millisecond)
}
