package validator

import (
	"fmt"
	"strings"

	"github.com/cardio-onc/qtwizard/pkg/registry"
)

// Report is the outcome of ValidateRegistry.
type Report struct {
	// Errors are broken pointers (dead links, out of range directives).
	Errors []error
	// Unreachable lists steps no decision path from step 0 leads to.
	// The linear next control still reaches them, so they are warnings.
	Unreachable []int
}

// OK reports whether no errors were found.
func (r Report) OK() bool {
	return len(r.Errors) == 0
}

func (r Report) String() string {
	var sb strings.Builder
	for _, err := range r.Errors {
		fmt.Fprintf(&sb, "error: %v\n", err)
	}
	for _, i := range r.Unreachable {
		fmt.Fprintf(&sb, "warning: step %d is not reachable through options or default next\n", i)
	}
	return sb.String()
}

// ValidateRegistry checks pointers and crawls decision edges starting from step 0.
// Decision edges are DefaultNext and option directives; linear next is ignored.
func ValidateRegistry(reg *registry.Registry) Report {
	var report Report
	report.Errors = registry.ValidationErrors(reg.Validate())

	visited := make(map[int]bool)
	queue := []int{0}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if visited[current] || !reg.InRange(current) {
			continue
		}
		visited[current] = true

		step := reg.MustGet(current)
		var targets []int
		if to, ok := step.DefaultNext.Index(); ok {
			targets = append(targets, to)
		}
		for _, opt := range step.ClickableOptions() {
			if to, ok := opt.Destination.Index(); ok {
				targets = append(targets, to)
			}
		}
		for _, to := range targets {
			if !visited[to] {
				queue = append(queue, to)
			}
		}
	}

	for i := 0; i < reg.Len(); i++ {
		if !visited[i] {
			report.Unreachable = append(report.Unreachable, i)
		}
	}
	return report
}
