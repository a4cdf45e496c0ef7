package refcycle

import (
	"strconv"
	"strings"
)

// Classify decides how text addresses the given axis. A bare integer is
// Absolute. Text that evaluates once the first occurrence of the axis name
// is replaced by 0 is Relative. Anything else, the empty string included,
// is Complex.
func Classify(axis Axis, text string) Classification {
	text = strings.TrimSpace(text)
	if text == "" {
		return Complex
	}
	if _, err := strconv.Atoi(text); err == nil {
		return Absolute
	}
	if _, err := evalAtOrigin(axis, text); err == nil {
		return Relative
	}
	return Complex
}

// evalAtOrigin evaluates text with the first occurrence of the axis name
// replaced by 0.
func evalAtOrigin(axis Axis, text string) (float64, error) {
	name := axis.String()
	if !strings.Contains(text, name) {
		return 0, errNoAxis
	}
	return Eval(strings.Replace(text, name, "0", 1))
}

func classifyComponent(c *Component) Classification {
	if c == nil {
		return Complex
	}
	return Classify(c.Axis, c.Text)
}
