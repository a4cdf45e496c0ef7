package refcycle

// depthScanner walks a string byte by byte, keeping the bracket depth and
// the quote mark that is currently open. All delimiters it cares about are
// ASCII, so walking bytes is safe on UTF-8 input.
type depthScanner struct {
	s      string
	i      int
	depth  int
	quote  byte
	escape bool
}

func newDepthScanner(s string) *depthScanner { return &depthScanner{s: s} }
func (d *depthScanner) eof() bool           { return d.i >= len(d.s) }

// step consumes one byte. top reports whether the byte was seen outside any
// quote with no bracket open before it.
func (d *depthScanner) step() (ch byte, top bool) {
	ch = d.s[d.i]
	d.i++

	if d.quote != 0 {
		switch {
		case d.escape:
			d.escape = false
		case ch == '\\':
			d.escape = true
		case ch == d.quote:
			d.quote = 0
		}
		return ch, false
	}

	top = d.depth == 0
	switch ch {
	case '\'', '"':
		d.quote = ch
	case '(', '[', '{':
		d.depth++
	case ')', ']', '}':
		// a stray closer drives depth below zero and nothing after it is
		// top level any more
		d.depth--
	}
	return ch, top
}

func indexTopLevel(text string, target byte) int {
	d := newDepthScanner(text)
	for !d.eof() {
		at := d.i
		if ch, top := d.step(); top && ch == target {
			return at
		}
	}
	return -1
}

// FindPosition returns text up to, not including, its first top-level comma.
// Commas inside brackets or quotes do not count. Without such a comma the
// whole text is returned.
func FindPosition(text string) string {
	if i := indexTopLevel(text, ','); i >= 0 {
		return text[:i]
	}
	return text
}

// FindColon returns the offset of the first top-level colon in first and in
// second, each computed independently, or -1 where there is none.
func FindColon(first, second string) (int, int) {
	return indexTopLevel(first, ':'), indexTopLevel(second, ':')
}

// findClosing returns the offset of the bracket that closes a construct
// opened just before text, or -1 when text never closes it.
func findClosing(text string) int {
	d := newDepthScanner(text)
	for !d.eof() {
		at := d.i
		ch, top := d.step()
		if top && (ch == ')' || ch == ']' || ch == '}') {
			return at
		}
	}
	return -1
}
