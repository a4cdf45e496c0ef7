package refcycle

import "strings"

// separators may precede the S of a reference; anything else makes the S
// part of a longer identifier.
const separators = " \t+-*/%<>&|^~=!()[]{}@,:.`;"

func isSeparator(b byte) bool { return strings.IndexByte(separators, b) >= 0 }

func isBlank(b byte) bool { return b == ' ' || b == '\t' }

// refStart reports whether the byte at i is an S that can open a reference.
func refStart(text string, i int) bool {
	return text[i] == 'S' && (i == 0 || isSeparator(text[i-1]))
}

// Locate finds the reference the cycle should act on. A reference enclosing
// the cursor wins; otherwise the first reference in text outside string
// literals is used.
func Locate(text string, cursor int) (*Reference, bool) {
	cursor = clamp(cursor, 0, len(text))
	if ref, ok := locateInside(text, cursor); ok {
		return ref, true
	}
	return locateFirst(text)
}

func locateInside(text string, cursor int) (*Reference, bool) {
	for open := cursor - 1; open > 0; open-- {
		if text[open] != '[' {
			continue
		}

		s := open - 1
		for s > 0 && isBlank(text[s]) {
			s--
		}
		if !refStart(text, s) {
			continue
		}

		// the closing bracket is the first one after [, nested brackets
		// are not taken into account here
		rel := strings.IndexByte(text[open+1:], ']')
		if rel < 0 {
			continue
		}
		closeAt := open + 1 + rel
		if cursor > closeAt {
			continue
		}

		ref := &Reference{Start: s, Open: open, Close: closeAt, Inside: true}
		ref.splitAround(text[open+1:closeAt], open+1, cursor)
		return ref, true
	}
	return nil, false
}

func locateFirst(text string) (*Reference, bool) {
	dquotes, squotes := 0, 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '"':
			dquotes++
			continue
		case '\'':
			squotes++
			continue
		}

		if !refStart(text, i) {
			continue
		}
		if dquotes%2 == 1 || squotes%2 == 1 {
			// S sits inside a string literal
			continue
		}

		open := i + 1
		for open < len(text) && isBlank(text[open]) {
			open++
		}
		if open >= len(text) || text[open] != '[' {
			continue
		}

		rel := findClosing(text[open+1:])
		if rel < 0 || text[open+1+rel] != ']' {
			continue
		}
		closeAt := open + 1 + rel

		x, y, yBase := splitAxes(text[open+1:closeAt], open+1)
		return &Reference{
			Start:  i,
			Open:   open,
			Close:  closeAt,
			First:  newComponent(AxisX, x, open+1),
			Second: newComponent(AxisY, y, yBase),
		}, true
	}
	return nil, false
}

// splitAxes splits a reference body on its first top-level comma. yBase is
// the offset of the Y part in the formula.
func splitAxes(body string, base int) (x, y string, yBase int) {
	x = FindPosition(body)
	if len(x) == len(body) {
		return x, "", base + len(body)
	}
	yBase = base + len(x) + 1
	return x, FindPosition(body[len(x)+1:]), yBase
}

// splitAround fills the components of a reference found around the cursor.
// When an axis holds a range and the cursor is on that axis, the two ends
// of the range become the pair; when the cursor is on the other axis only
// that axis takes part.
func (r *Reference) splitAround(body string, base, cursor int) {
	x, y, yBase := splitAxes(body, base)
	xColon, yColon := FindColon(x, y)

	switch {
	case xColon < 0 && yColon < 0:
		r.First = newComponent(AxisX, x, base)
		r.Second = newComponent(AxisY, y, yBase)

	case cursor <= base+len(x):
		if xColon < 0 {
			r.First = newComponent(AxisX, x, base)
			return
		}
		r.First = newComponent(AxisX, x[:xColon], base)
		r.Second = newComponent(AxisX, x[xColon+1:], base+xColon+1)

	default:
		if yColon < 0 {
			r.Second = newComponent(AxisY, y, yBase)
			return
		}
		r.First = newComponent(AxisY, y[:yColon], yBase)
		r.Second = newComponent(AxisY, y[yColon+1:], yBase+yColon+1)
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
