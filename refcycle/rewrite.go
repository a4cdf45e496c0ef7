package refcycle

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

var errNoAxis = errors.New("axis name not found")

// ToRelative turns an absolute coordinate into an offset from the anchor:
// "7" on axis X with anchor X 4 becomes "X + 3". A zero or negative offset
// is written with a minus sign, so "4" becomes "X - 0".
func ToRelative(axis Axis, literal string, anchor Anchor) (string, error) {
	v, err := strconv.Atoi(strings.TrimSpace(literal))
	if err != nil {
		return "", err
	}
	diff := v - axis.coord(anchor)
	if diff > 0 {
		return axis.String() + " + " + strconv.Itoa(diff), nil
	}
	return axis.String() + " - " + strconv.Itoa(-diff), nil
}

// ToAbsolute resolves a relative component against the anchor: "X + 3" on
// axis X with anchor X 4 becomes "7".
func ToAbsolute(axis Axis, relative string, anchor Anchor) (string, error) {
	v, err := evalAtOrigin(axis, strings.TrimSpace(relative))
	if err != nil {
		return "", err
	}
	return formatCoord(v + float64(axis.coord(anchor))), nil
}

func formatCoord(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1<<53 {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
