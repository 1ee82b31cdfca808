/*
Package runner implements the interactive terminal loop for the wizard.

It acts as the bridge between a wizard session and a line-oriented terminal.
The runner renders the current step, reads one command per line through a
TextHandler, and dispatches it to the session.

# Commands

  - <n>: choose the n-th numbered option of the current step.
  - n, next: go to the following step.
  - b, back: go to the previous step.
  - <, >: move through session history.
  - q, quit: leave the wizard (EOF does the same).

# Usage

	r := runner.NewRunner(wizard,
		runner.WithInputHandler(runner.NewTextHandler(os.Stdin, os.Stdout)),
	)

	if err := r.Run(ctx); err != nil {
		log.Fatal(err)
	}
*/
package runner
