package cipher

import (
	"fmt"
	"strings"
)

// Direction selects which way the spiral turns. It is fixed for a whole
// traversal.
type Direction int

const (
	// Clockwise reads down the right edge first.
	Clockwise Direction = iota
	// CounterClockwise reads right-to-left along the top edge first.
	CounterClockwise
)

// ParseDirection maps the textual tokens "c"/"C" and "cc"/"CC" to a
// Direction. Surrounding whitespace is ignored; mixed case such as "cC" is
// rejected.
func ParseDirection(token string) (Direction, error) {
	switch strings.TrimSpace(token) {
	case "c", "C":
		return Clockwise, nil
	case "cc", "CC":
		return CounterClockwise, nil
	default:
		return Clockwise, fmt.Errorf("%w: %q", ErrUnknownDirection, strings.TrimSpace(token))
	}
}

// String returns a human readable name.
func (d Direction) String() string {
	switch d {
	case Clockwise:
		return "clockwise"
	case CounterClockwise:
		return "counter-clockwise"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// Token returns the short form accepted by ParseDirection.
func (d Direction) Token() string {
	if d == CounterClockwise {
		return "cc"
	}
	return "c"
}

// Opposite returns the other direction.
func (d Direction) Opposite() Direction {
	if d == CounterClockwise {
		return Clockwise
	}
	return CounterClockwise
}
