/*
Package dsl provides a fluent builder for constructing decision trees in Go.

Steps are indexed by declaration order, so the builder keeps registry indices and
the authored "Step N" directives in lockstep without hand-numbering.

Example usage:

	package main

	import (
		"github.com/cardio-onc/qtwizard/pkg/dsl"
	)

	func main() {
		b := dsl.New()

		b.Step("Start: Obtain baseline 12-lead ECG").Next(1)

		b.Step("Step 1: Assess QRS duration").
			Choice("Assess QRS duration:",
				dsl.Option("<120 msec: Proceed to Step 2"),
				dsl.Option(">120 msec: Proceed to Step 2"),
			)

		b.Step("Step 2: Monitor").
			Text("Monitor QTcF periodically.").
			Terminal()

		reg, err := b.Build()
		// ... pass reg to qtwizard.New(qtwizard.WithRegistry(reg))
	}
*/
package dsl
