/*
Package qtwizard is a guided clinical checklist for QTcF assessment in cardio-oncology.

A clinician walks a fixed decision tree one step at a time. Steps may offer
options whose text ends in a directive such as "Proceed to Step 6"; choosing
one jumps straight to that step. Every committed move is pushed onto platform
history, and native back/forward replays the recorded step without pushing again.

# Architecture

  - Step Registry (pkg/registry): the ordered, immutable step list.
  - Navigation Engine (internal/runtime): owns the current index and resolves
    option clicks, next/back and history replays.
  - History Bridge (pkg/history): pushes committed transitions and replays pops.

# Usage

	w, err := qtwizard.New()
	if err != nil {
		log.Fatal(err)
	}
	defer w.Close()

	ctx := context.Background()
	w.Next(ctx)                                   // step 1
	w.Next(ctx)                                   // step 2
	w.HandleOptionClick(ctx, "Proceed to Step 3") // step 3
	w.HistoryBack()                               // step 2, replayed
*/
package qtwizard
