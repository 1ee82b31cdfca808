package dsl

import (
	"fmt"

	"github.com/cardio-onc/qtwizard/pkg/domain"
	"github.com/cardio-onc/qtwizard/pkg/registry"
)

// Builder manages the decision tree construction.
type Builder struct {
	steps  []*StepBuilder
	strict bool
}

// New creates a new tree builder.
func New() *Builder {
	return &Builder{}
}

// Strict makes Build reject dangling step pointers.
func (b *Builder) Strict() *Builder {
	b.strict = true
	return b
}

// Step appends a new step; its index is its declaration position.
func (b *Builder) Step(title string) *StepBuilder {
	sb := newStepBuilder(len(b.steps), title)
	b.steps = append(b.steps, sb)
	return sb
}

// Len returns the number of declared steps.
func (b *Builder) Len() int {
	return len(b.steps)
}

// Build compiles the declared steps into a Registry.
func (b *Builder) Build() (*registry.Registry, error) {
	var (
		reg *registry.Registry
		err error
	)

	steps := make([]domain.Step, 0, len(b.steps))
	for _, sb := range b.steps {
		steps = append(steps, sb.Build())
	}

	if b.strict {
		reg, err = registry.NewStrict(steps...)
	} else {
		reg, err = registry.New(steps...)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to build registry: %w", err)
	}

	return reg, nil
}
