package domain

import "errors"

// ErrOutOfRange is returned when a step index falls outside the registry.
var ErrOutOfRange = errors.New("step index out of range")

// ErrAlreadyAttached is returned when a history bridge is attached twice.
var ErrAlreadyAttached = errors.New("history bridge already attached")

// ErrClosed is returned when an operation targets a torn down component.
var ErrClosed = errors.New("component closed")
