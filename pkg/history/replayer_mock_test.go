package history_test

import (
	"context"
	"testing"

	"github.com/cardio-onc/qtwizard/pkg/adapters/memory"
	"github.com/cardio-onc/qtwizard/pkg/domain"
	"github.com/cardio-onc/qtwizard/pkg/history"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockReplayer struct {
	mock.Mock
}

func (m *mockReplayer) Replay(ctx context.Context, target int) bool {
	return m.Called(ctx, target).Bool(0)
}

func (m *mockReplayer) Len() int {
	return m.Called().Int(0)
}

func TestBridge_ReplaysPoppedStep(t *testing.T) {
	platform := memory.NewHistory()
	bridge := history.NewBridge(platform)
	defer bridge.Close()

	target := new(mockReplayer)
	target.On("Len").Return(9)
	target.On("Replay", mock.Anything, 4).Return(true).Once()
	target.On("Replay", mock.Anything, 0).Return(true).Once()
	require.NoError(t, bridge.Attach(target))

	ctx := context.Background()
	bridge.RecordTransition(ctx, 4)
	bridge.RecordTransition(ctx, 9)

	require.True(t, platform.Back())
	require.True(t, platform.Back(), "state-less entry maps to step 0")
	require.True(t, platform.Go(2), "step 9 is out of range")

	platform.PushState(domain.HistoryState{Step: -3})
	require.True(t, platform.Back())
	require.True(t, platform.Forward(), "negative step is out of range")

	target.AssertExpectations(t)
	target.AssertNumberOfCalls(t, "Replay", 2)
}
