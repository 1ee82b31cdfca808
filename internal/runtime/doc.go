// Package runtime implements the navigation engine: it owns the current step
// index and resolves option clicks, linear next/back stepping and history replays.
package runtime
