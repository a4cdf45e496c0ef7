// Package refcycle toggles cell references in formula text between absolute
// and relative form.
//
// A reference is written S[x, y]. Each axis is either a literal coordinate
// (absolute), an expression of the axis name such as X + 2 (relative), or
// anything else (complex). Cycle rewrites the reference under the cursor,
// or the first one in the formula, through the states
//
//	absolute,absolute -> relative,relative -> relative,absolute -> absolute,relative
//
// and back, using the anchor cell as the origin of relative coordinates.
package refcycle

import "errors"

var (
	ErrNoReference     = errors.New("refcycle: no reference found")
	ErrNothingToToggle = errors.New("refcycle: nothing to toggle")
)

// Result is the rewritten formula and where the cursor goes.
type Result struct {
	Text   string
	Cursor int
}

type action int

const (
	keep action = iota
	makeRelative
	makeAbsolute
)

type pairState struct {
	first, second Classification
}

// transitions maps the classification of the component pair to what is done
// to each component. A pair missing from the table has nothing to toggle.
var transitions = map[pairState][2]action{
	{Absolute, Absolute}: {makeRelative, makeRelative},
	{Relative, Relative}: {keep, makeAbsolute},
	{Relative, Absolute}: {makeAbsolute, makeRelative},
	{Absolute, Relative}: {keep, makeAbsolute},

	{Absolute, Complex}: {makeRelative, keep},
	{Complex, Absolute}: {keep, makeRelative},
	{Relative, Complex}: {makeAbsolute, keep},
	{Complex, Relative}: {keep, makeAbsolute},
}

// Cycle moves the located reference one step through the cycle. On
// ErrNoReference and ErrNothingToToggle the returned Result holds text and
// cursor unchanged.
func Cycle(text string, cursor int, anchor Anchor) (Result, error) {
	unchanged := Result{Text: text, Cursor: cursor}

	ref, ok := Locate(text, cursor)
	if !ok {
		return unchanged, ErrNoReference
	}

	acts, ok := transitions[pairState{classifyComponent(ref.First), classifyComponent(ref.Second)}]
	if !ok {
		return unchanged, ErrNothingToToggle
	}

	// Second always lies after First, so it is spliced first.
	out := rewrite(text, ref.Second, acts[1], anchor)
	out = rewrite(out, ref.First, acts[0], anchor)

	res := Result{Text: out}
	if ref.Inside {
		res.Cursor = ref.Open + 1
	}
	return res, nil
}

// rewrite replaces the component text in formula. A component that cannot
// be converted is left as it is.
func rewrite(formula string, c *Component, act action, anchor Anchor) string {
	if c == nil || act == keep {
		return formula
	}

	var (
		repl string
		err  error
	)
	switch act {
	case makeRelative:
		repl, err = ToRelative(c.Axis, c.Text, anchor)
	case makeAbsolute:
		repl, err = ToAbsolute(c.Axis, c.Text, anchor)
	}
	if err != nil {
		return formula
	}
	return formula[:c.Offset] + repl + formula[c.End():]
}

// Report describes the reference Cycle would act on.
type Report struct {
	Reference *Reference
	First     Classification
	Second    Classification
}

// Inspect locates and classifies the reference without rewriting it.
func Inspect(text string, cursor int) (Report, error) {
	ref, ok := Locate(text, cursor)
	if !ok {
		return Report{}, ErrNoReference
	}
	return Report{
		Reference: ref,
		First:     classifyComponent(ref.First),
		Second:    classifyComponent(ref.Second),
	}, nil
}
