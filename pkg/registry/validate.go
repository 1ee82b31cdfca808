package registry

import (
	"fmt"

	"github.com/cardio-onc/qtwizard/pkg/domain"
)

// Validate checks that every DefaultNext and every directive destination is
// either unset, the terminal marker, or a valid step index.
// It returns an *AggregateError listing all failures.
func (r *Registry) Validate() error {
	var errs []error

	for _, s := range r.steps {
		if idx, ok := s.DefaultNext.Index(); ok && !r.InRange(idx) {
			errs = append(errs, &ValidationError{
				Key:    fmt.Sprintf("steps[%d].default_next", s.Index),
				Reason: fmt.Sprintf("points outside [0, %d)", r.Len()),
				Value:  idx,
			})
		}

		for ci, c := range s.Choices() {
			for oi, o := range c.Options {
				plain, ok := o.(domain.PlainOption)
				if !ok {
					continue
				}
				if idx, ok := plain.Destination.Index(); ok && !r.InRange(idx) {
					errs = append(errs, &ValidationError{
						Key:    fmt.Sprintf("steps[%d].choices[%d].options[%d]", s.Index, ci, oi),
						Reason: fmt.Sprintf("directive points outside [0, %d)", r.Len()),
						Value:  idx,
					})
				}
			}
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}
