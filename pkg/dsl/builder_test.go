package dsl

import (
	"testing"

	"github.com/cardio-onc/qtwizard/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_SimpleTree(t *testing.T) {
	b := New()

	start := b.Step("Start").Next(1)
	b.Step("Decide").
		Choice("Pick:",
			Option("Short: Proceed to Step 2"),
			Link("Calculator", "https://example.org/calc"),
		)
	b.Step("End").Text("Done.").Terminal()

	assert.Equal(t, 0, start.Index())
	assert.Equal(t, 3, b.Len())

	reg, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, 3, reg.Len())

	first := reg.MustGet(0)
	idx, ok := first.DefaultNext.Index()
	require.True(t, ok)
	assert.Equal(t, 1, idx)

	decide := reg.MustGet(1)
	assert.True(t, decide.DefaultNext.IsAbsent())
	choices := decide.Choices()
	require.Len(t, choices, 1)
	assert.Equal(t, "Pick:", choices[0].Text)

	plain := choices[0].Options[0].(domain.PlainOption)
	idx, ok = plain.Destination.Index()
	require.True(t, ok)
	assert.Equal(t, 2, idx)

	rich := choices[0].Options[1].(domain.RichOption)
	assert.Equal(t, "https://example.org/calc", rich.Href)

	end := reg.MustGet(2)
	assert.True(t, end.IsTerminal())
	require.Len(t, end.SubPoints, 1)
	assert.Equal(t, domain.TextPoint{Text: "Done."}, end.SubPoints[0])
}

func TestBuilder_Strict(t *testing.T) {
	b := New().Strict()
	b.Step("Only").Next(4)

	_, err := b.Build()
	assert.Error(t, err)

	loose := New()
	loose.Step("Only").Next(4)
	_, err = loose.Build()
	assert.NoError(t, err)
}

func TestBuilder_Empty(t *testing.T) {
	_, err := New().Build()
	assert.Error(t, err)
}
