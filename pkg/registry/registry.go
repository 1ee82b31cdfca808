package registry

import (
	"fmt"

	"github.com/cardio-onc/qtwizard/pkg/domain"
)

// Registry is the ordered, immutable sequence of steps of a decision tree.
// It is safe for concurrent reads; there is no mutation API.
type Registry struct {
	steps []domain.Step
}

// New builds a registry from steps in index order.
//
// Each step's Index must match its position. Plain options are compiled once
// here: labels are split into prefix and clickable text and trailing directives
// are parsed into Destination. Dangling pointers are tolerated (they resolve to
// no-ops at navigation time); use Validate or NewStrict to reject them.
func New(steps ...domain.Step) (*Registry, error) {
	if len(steps) == 0 {
		return nil, fmt.Errorf("registry requires at least one step")
	}

	compiled := make([]domain.Step, len(steps))
	for i, s := range steps {
		if s.Index != i {
			return nil, &ValidationError{
				Key:    fmt.Sprintf("steps[%d].index", i),
				Reason: fmt.Sprintf("must match position %d", i),
				Value:  s.Index,
			}
		}
		compiled[i] = compileStep(s)
	}

	return &Registry{steps: compiled}, nil
}

// NewStrict is New followed by Validate.
func NewStrict(steps ...domain.Step) (*Registry, error) {
	r, err := New(steps...)
	if err != nil {
		return nil, err
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Len returns the number of steps.
func (r *Registry) Len() int {
	return len(r.steps)
}

// Get returns the step at index or an *OutOfRangeError.
func (r *Registry) Get(index int) (domain.Step, error) {
	if !r.InRange(index) {
		return domain.Step{}, &OutOfRangeError{Index: index, Len: len(r.steps)}
	}
	return r.steps[index], nil
}

// MustGet is Get for callers that already hold a valid index.
// It panics on a precondition violation.
func (r *Registry) MustGet(index int) domain.Step {
	s, err := r.Get(index)
	if err != nil {
		panic(err)
	}
	return s
}

// InRange reports whether index addresses a step.
func (r *Registry) InRange(index int) bool {
	return index >= 0 && index < len(r.steps)
}

// Steps returns a copy of the step list.
func (r *Registry) Steps() []domain.Step {
	out := make([]domain.Step, len(r.steps))
	copy(out, r.steps)
	return out
}

func compileStep(s domain.Step) domain.Step {
	out := s
	out.SubPoints = make([]domain.SubPoint, 0, len(s.SubPoints))
	for _, sp := range s.SubPoints {
		switch v := sp.(type) {
		case domain.Choice:
			c := domain.Choice{Text: v.Text, Options: make([]domain.Option, 0, len(v.Options))}
			for _, o := range v.Options {
				c.Options = append(c.Options, compileOption(o))
			}
			out.SubPoints = append(out.SubPoints, c)
		case nil:
			// skip
		default:
			out.SubPoints = append(out.SubPoints, v)
		}
	}
	return out
}

func compileOption(o domain.Option) domain.Option {
	plain, ok := o.(domain.PlainOption)
	if !ok {
		return o
	}
	return CompileLabel(plain.Label)
}

// CompileLabel turns an authored option label into a PlainOption.
// Clickability follows the clickable text; the destination comes from a
// directive trailing the whole label, so a label matched verbatim resolves
// the same way a label parsed on the spot does.
func CompileLabel(label string) domain.PlainOption {
	prefix, clickable := SplitLabel(label)
	opt := domain.PlainOption{
		Label:     label,
		Prefix:    prefix,
		Clickable: clickable,
		Directive: HasDirectivePhrase(clickable),
	}
	if n, ok := ParseDirective(label); ok {
		opt.Destination = domain.To(n)
	}
	return opt
}
