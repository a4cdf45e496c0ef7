package refcycle

import (
	"strings"
	"unicode"
)

// Axis names one coordinate of a cell reference.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

// String returns the axis name as it is written inside formulas.
func (a Axis) String() string {
	if a == AxisY {
		return "Y"
	}
	return "X"
}

func (a Axis) coord(anchor Anchor) int {
	if a == AxisY {
		return anchor.Y
	}
	return anchor.X
}

// Classification tells how a reference component addresses its axis.
type Classification int

const (
	Complex Classification = iota
	Absolute
	Relative
)

func (c Classification) String() string {
	switch c {
	case Absolute:
		return "absolute"
	case Relative:
		return "relative"
	default:
		return "complex"
	}
}

// Anchor is the cell the formula belongs to. Relative components are
// expressed as offsets from it.
type Anchor struct {
	X, Y int
}

// Component is one axis expression inside a reference. Text is trimmed of
// surrounding white space and Offset is the byte offset of its first byte in the
// formula.
type Component struct {
	Axis   Axis
	Text   string
	Offset int
}

func newComponent(axis Axis, raw string, offset int) *Component {
	lead := len(raw) - len(strings.TrimLeftFunc(raw, unicode.IsSpace))
	return &Component{
		Axis:   axis,
		Text:   strings.TrimSpace(raw),
		Offset: offset + lead,
	}
}

// End returns the offset just past the component text.
func (c *Component) End() int { return c.Offset + len(c.Text) }

// Reference is a located S[...] expression.
//
// First and Second are the pair of components the cycle works on: X and Y
// for a plain reference, or the two halves of a range when the cursor sits
// on the ranged axis. A nil component is unresolved and takes no part in
// the cycle.
type Reference struct {
	Start int // offset of S
	Open  int // offset of [
	Close int // offset of ]

	First  *Component
	Second *Component

	// Inside is set when the reference was found around the cursor rather
	// than by scanning the text from the start.
	Inside bool
}
