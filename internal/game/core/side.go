package core

import "fmt"

// Side identifies one of the two competing players
type Side int

const (
	SideA Side = iota
	SideB
)

// NumSides is the number of sides in a match
const NumSides = 2

// Sides lists every side in turn order
var Sides = [NumSides]Side{SideA, SideB}

// String returns the string representation of a Side
func (s Side) String() string {
	switch s {
	case SideA:
		return "A"
	case SideB:
		return "B"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// Opponent returns the other side
func (s Side) Opponent() Side {
	if s == SideA {
		return SideB
	}
	return SideA
}

// IsValid reports whether s is SideA or SideB
func (s Side) IsValid() bool {
	return s == SideA || s == SideB
}

// ParseSide converts a string such as "A", "b" or "side_b" to a Side
func ParseSide(str string) (Side, error) {
	switch str {
	case "A", "a", "side_a", "SideA":
		return SideA, nil
	case "B", "b", "side_b", "SideB":
		return SideB, nil
	default:
		return SideA, fmt.Errorf("unknown side %q", str)
	}
}
