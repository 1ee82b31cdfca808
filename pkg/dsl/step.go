package dsl

import "github.com/cardio-onc/qtwizard/pkg/domain"

// StepBuilder provides a fluent API for configuring a step.
type StepBuilder struct {
	step domain.Step
}

func newStepBuilder(index int, title string) *StepBuilder {
	return &StepBuilder{step: domain.Step{Index: index, Title: title}}
}

// Index returns the registry index this step will occupy.
func (s *StepBuilder) Index() int {
	return s.step.Index
}

// Text appends plain display lines.
func (s *StepBuilder) Text(lines ...string) *StepBuilder {
	for _, l := range lines {
		s.step.SubPoints = append(s.step.SubPoints, domain.TextPoint{Text: l})
	}
	return s
}

// Choice appends a group of options with an optional lead-in text.
func (s *StepBuilder) Choice(text string, options ...domain.Option) *StepBuilder {
	s.step.SubPoints = append(s.step.SubPoints, domain.Choice{
		Text:    text,
		Options: options,
	})
	return s
}

// Next sets the default forward pointer used when an option carries no directive.
func (s *StepBuilder) Next(index int) *StepBuilder {
	s.step.DefaultNext = domain.To(index)
	return s
}

// Terminal marks the step as terminal: option clicks on it never navigate.
func (s *StepBuilder) Terminal() *StepBuilder {
	s.step.DefaultNext = domain.None()
	return s
}

// Build returns the underlying domain.Step.
// Options are compiled by the registry, not here.
func (s *StepBuilder) Build() domain.Step {
	return s.step
}

// Option returns a plain text option. A trailing "Proceed to Step N" or
// "then Step N" in the text after ": " becomes its destination.
func Option(label string) domain.Option {
	return domain.PlainOption{Label: label}
}

// Link returns a rich hyperlink option; it is rendered but never clickable.
func Link(text, href string) domain.Option {
	return domain.RichOption{Kind: domain.RichLink, Text: text, Href: href}
}
