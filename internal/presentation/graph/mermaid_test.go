package graph_test

import (
	"strings"
	"testing"

	"github.com/cardio-onc/qtwizard/internal/content"
	"github.com/cardio-onc/qtwizard/internal/presentation/graph"
	"github.com/cardio-onc/qtwizard/pkg/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateMermaid(t *testing.T) {
	b := dsl.New()
	b.Step("Begin").Next(1)
	b.Step(`Ask "why"`).Choice("Pick:",
		dsl.Option("Yes: Proceed to Step 2"),
		dsl.Option("Far: Proceed to Step 9"),
		dsl.Option("Plain text"),
	)
	b.Step("Read").Choice("", dsl.Link("Docs", "https://example.com")).Terminal()
	reg, err := b.Build()
	require.NoError(t, err)

	got := graph.GenerateMermaid(reg, nil)

	tests := []struct {
		name string
		want string
	}{
		{"Entry Shape", `step0(("Begin"))`},
		{"Decision Shape And Escaping", `step1{"Ask 'why'"}`},
		{"Reference Shape", `step2[["Read"]]`},
		{"Default Edge", "step0 --> step1"},
		{"Directive Edge", `step1 -- "Yes" --> step2`},
		{"Terminal Class", "class step2 terminal;"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, got, tt.want)
		})
	}

	assert.NotContains(t, got, "step9", "out of range directives are not drawn")
	assert.NotContains(t, got, "Overlay Styles")
}

func TestGenerateMermaid_Overlay(t *testing.T) {
	reg := content.MustQTcF().Registry
	got := graph.GenerateMermaid(reg, &graph.GraphOverlay{
		VisitedSteps: []int{0, 1, 1, 2, 42},
		CurrentStep:  2,
		HasCurrent:   true,
	})

	assert.Equal(t, 1, strings.Count(got, "class step1 visited;"))
	assert.NotContains(t, got, "step42")
	assert.Contains(t, got, "class step2 current;")
	assert.Contains(t, got, `step2 -- "QTcF &lt;470 msec in males or &lt;480 msec in females" --> step8`)
	assert.Contains(t, got, "class step6,step7,step8 terminal;")
}
