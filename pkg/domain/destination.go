package domain

import (
	"fmt"
	"strconv"
)

type destinationKind uint8

const (
	destinationAbsent destinationKind = iota
	destinationNone
	destinationIndex
)

// Destination is an optional forward pointer to a step.
//
// The zero value is Absent: no pointer was authored. None marks a terminal step
// that has no implicit forward path and blocks option navigation.
type Destination struct {
	kind  destinationKind
	index int
}

// Absent returns a Destination carrying no pointer.
func Absent() Destination { return Destination{} }

// None returns the terminal marker.
func None() Destination { return Destination{kind: destinationNone} }

// To returns a Destination pointing at the given step index.
func To(index int) Destination { return Destination{kind: destinationIndex, index: index} }

// IsSet reports whether the destination points at a step index.
func (d Destination) IsSet() bool { return d.kind == destinationIndex }

// IsNone reports whether the destination is the terminal marker.
func (d Destination) IsNone() bool { return d.kind == destinationNone }

// IsAbsent reports whether no pointer was authored.
func (d Destination) IsAbsent() bool { return d.kind == destinationAbsent }

// Index returns the target index and whether one is set.
func (d Destination) Index() (int, bool) {
	return d.index, d.kind == destinationIndex
}

func (d Destination) String() string {
	switch d.kind {
	case destinationNone:
		return "none"
	case destinationIndex:
		return strconv.Itoa(d.index)
	default:
		return "absent"
	}
}

// MarshalText encodes the destination as "none", "" (absent) or the decimal index.
func (d Destination) MarshalText() ([]byte, error) {
	if d.kind == destinationAbsent {
		return []byte{}, nil
	}
	return []byte(d.String()), nil
}

// UnmarshalText is the inverse of MarshalText.
func (d *Destination) UnmarshalText(text []byte) error {
	parsed, err := ParseDestination(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseDestination parses "none"/"null" as the terminal marker, "" as absent
// and anything else as a decimal step index.
func ParseDestination(s string) (Destination, error) {
	switch s {
	case "":
		return Absent(), nil
	case "none", "null":
		return None(), nil
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return Destination{}, fmt.Errorf("invalid destination %q: %w", s, err)
	}
	return To(i), nil
}
