/*
Package domain contains the core domain models of the QTcF wizard.

It defines the immutable decision tree content (Steps and their Options) and the
small mutable snapshot owned by the navigation engine. This package is kept pure and
free of I/O, rendering or history mechanics.

# Key Entities

  - Step: One node of the guided checklist, identified by its registry index.
  - SubPoint: Either a plain display line or a Choice carrying Options.
  - Option: A PlainOption (clickable, may encode a Destination) or a RichOption (rendered only).
  - Destination: An optional step index that may also mark a terminal step ("none").
  - NavigationState: The current step index plus cosmetic transition flags.
*/
package domain
