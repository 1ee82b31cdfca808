// Package dto holds the wire shapes adapters use to expose steps.
package dto

import (
	"github.com/cardio-onc/qtwizard/pkg/domain"
	"github.com/cardio-onc/qtwizard/pkg/registry"
)

// Step is the JSON view of a domain.Step.
type Step struct {
	Index       int     `json:"index"`
	Title       string  `json:"title"`
	Terminal    bool    `json:"terminal"`
	DefaultNext *int    `json:"default_next,omitempty"`
	Points      []Point `json:"points"`
	// Options lists the clickable options in ChooseOption order.
	Options []Option `json:"options"`
}

// Point is a TextPoint ("text") or a Choice ("choice").
type Point struct {
	Type    string   `json:"type"`
	Text    string   `json:"text,omitempty"`
	Options []Option `json:"options,omitempty"`
}

// Option is a plain or link option.
type Option struct {
	Kind        string `json:"kind"`
	Label       string `json:"label"`
	Prefix      string `json:"prefix,omitempty"`
	Clickable   string `json:"clickable,omitempty"`
	Destination *int   `json:"destination,omitempty"`
	Href        string `json:"href,omitempty"`
}

// FromStep maps a compiled step into its view.
func FromStep(s domain.Step) Step {
	out := Step{
		Index:    s.Index,
		Title:    s.Title,
		Terminal: s.IsTerminal(),
		Points:   make([]Point, 0, len(s.SubPoints)),
		Options:  []Option{},
	}
	if i, ok := s.DefaultNext.Index(); ok {
		out.DefaultNext = &i
	}

	for _, sp := range s.SubPoints {
		switch v := sp.(type) {
		case domain.TextPoint:
			out.Points = append(out.Points, Point{Type: "text", Text: v.Text})
		case domain.Choice:
			p := Point{Type: "choice", Text: v.Text}
			for _, o := range v.Options {
				p.Options = append(p.Options, fromOption(o))
			}
			out.Points = append(out.Points, p)
		}
	}

	for _, o := range s.ClickableOptions() {
		out.Options = append(out.Options, fromOption(o))
	}
	return out
}

// FromRegistry maps every step of reg.
func FromRegistry(reg *registry.Registry) []Step {
	steps := reg.Steps()
	out := make([]Step, len(steps))
	for i, s := range steps {
		out[i] = FromStep(s)
	}
	return out
}

func fromOption(o domain.Option) Option {
	switch v := o.(type) {
	case domain.PlainOption:
		opt := Option{
			Kind:      "plain",
			Label:     v.Label,
			Prefix:    v.Prefix,
			Clickable: v.Clickable,
		}
		if i, ok := v.Destination.Index(); ok {
			opt.Destination = &i
		}
		return opt
	case domain.RichOption:
		return Option{Kind: string(v.Kind), Label: v.Text, Href: v.Href}
	}
	return Option{Kind: "unknown"}
}
