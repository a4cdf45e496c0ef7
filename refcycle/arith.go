package refcycle

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/expr-lang/expr"
)

/*
Eval
----
Evaluates the arithmetic that may be left in a component once the axis name
has been replaced by 0. Only literals and operators are accepted; a name of
any kind is a syntax error, so nothing in the formula text can reach a
function or a variable.

Grammar, lowest precedence first; comparisons chain as in a < b < c:

	compare := bitor (("<" | ">" | "<=" | ">=" | "==" | "!=") bitor)*
	bitor   := bitxor ("|" bitxor)*
	bitxor  := bitand ("^" bitand)*
	bitand  := shift ("&" shift)*
	shift   := sum (("<<" | ">>") sum)*
	sum     := term (("+" | "-") term)*
	term    := unary (("*" | "/" | "%") unary)*
	unary   := ("+" | "-" | "~") unary | power
	power   := atom ("**" unary)?
	atom    := number | "(" compare ")"

The checked tree is printed back as an expr program: & | ^ ~ go through
expr's bit* builtins, comparison chains become 1/0 ternaries and every
other operator calls one of the functions in ops.go. Integer / and % floor
(7 / 2 is 3), a float operand makes them true float operations, and an
integer overflow fails. expr then compiles and runs the program with no
environment. Results too large to be held exactly in a float64 are
rejected.
*/

var (
	errNotFinite = errors.New("result is not a finite number")
	errTooLarge  = errors.New("result is too large for a coordinate")
)

// Eval evaluates a restricted arithmetic expression.
func Eval(src string) (v float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			v, err = 0, fmt.Errorf("eval %q: %v", src, r)
		}
	}()

	program, err := translate(src)
	if err != nil {
		return 0, err
	}

	prog, err := expr.Compile(program, exprOptions...)
	if err != nil {
		return 0, fmt.Errorf("compile: %w", err)
	}
	out, err := expr.Run(prog, nil)
	if err != nil {
		return 0, fmt.Errorf("run: %w", err)
	}

	switch out := out.(type) {
	case int:
		v = float64(out)
	case float64:
		v = out
	default:
		return 0, fmt.Errorf("run: unexpected result %T", out)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errNotFinite
	}
	if math.Abs(v) >= maxExact {
		return 0, errTooLarge
	}
	return v, nil
}

// translate checks src against the grammar and returns the equivalent expr
// program.
func translate(src string) (string, error) {
	toks, err := tokenize(src)
	if err != nil {
		return "", err
	}
	p := &parser{toks: toks}
	n, err := p.parseCompare()
	if err != nil {
		return "", err
	}
	if t := p.peek(); t.kind != tokEOF {
		return "", fmt.Errorf("unexpected %q at %d", t.text, t.pos)
	}

	var b strings.Builder
	n.emit(&b)
	return b.String(), nil
}

type tokKind int

const (
	tokEOF tokKind = iota
	tokNum
	tokOp
	tokLParen
	tokRParen
)

type token struct {
	kind tokKind
	text string
	pos  int
}

type lexer struct {
	r []rune
	n int
	i int
}

func newLexer(s string) *lexer { rr := []rune(s); return &lexer{r: rr, n: len(rr)} }
func (l *lexer) eof() bool      { return l.i >= l.n }
func (l *lexer) cur() rune {
	if l.eof() {
		return 0
	}
	return l.r[l.i]
}
func (l *lexer) peekAt(j int) rune {
	if j >= l.n {
		return 0
	}
	return l.r[j]
}
func (l *lexer) skipSpaces() {
	for !l.eof() && unicode.IsSpace(l.r[l.i]) {
		l.i++
	}
}

// scanNumber reads 12, 1.5, .5, 1., 2e10 or 2.5E-3.
func (l *lexer) scanNumber() (string, bool) {
	start := l.i
	digits := 0
	for !l.eof() && isDigit(l.cur()) {
		l.i++
		digits++
	}
	if l.cur() == '.' {
		l.i++
		for !l.eof() && isDigit(l.cur()) {
			l.i++
			digits++
		}
	}
	if digits == 0 {
		l.i = start
		return "", false
	}
	if c := l.cur(); c == 'e' || c == 'E' {
		j := l.i + 1
		if s := l.peekAt(j); s == '+' || s == '-' {
			j++
		}
		if !isDigit(l.peekAt(j)) {
			return "", false
		}
		l.i = j
		for !l.eof() && isDigit(l.cur()) {
			l.i++
		}
	}
	return string(l.r[start:l.i]), true
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

var twoCharOps = []string{"**", "<<", ">>", "<=", ">=", "==", "!="}

func tokenize(s string) ([]token, error) {
	l := newLexer(s)
	var out []token

	for {
		l.skipSpaces()
		if l.eof() {
			out = append(out, token{kind: tokEOF, pos: l.i})
			return out, nil
		}

		pos := l.i
		r := l.cur()
		switch {
		case isDigit(r) || r == '.':
			lit, ok := l.scanNumber()
			if !ok {
				return nil, fmt.Errorf("malformed number at %d", pos)
			}
			out = append(out, token{kind: tokNum, text: lit, pos: pos})
			continue
		case r == '(':
			l.i++
			out = append(out, token{kind: tokLParen, text: "(", pos: pos})
			continue
		case r == ')':
			l.i++
			out = append(out, token{kind: tokRParen, text: ")", pos: pos})
			continue
		case r == '_' || unicode.IsLetter(r):
			return nil, fmt.Errorf("names are not allowed (at %d)", pos)
		}

		pair := string([]rune{r, l.peekAt(l.i + 1)})
		matched := false
		for _, op := range twoCharOps {
			if pair == op {
				out = append(out, token{kind: tokOp, text: op, pos: pos})
				l.i += 2
				matched = true
				break
			}
		}
		if matched {
			continue
		}
		if strings.ContainsRune("+-*/%&|^~<>", r) {
			out = append(out, token{kind: tokOp, text: string(r), pos: pos})
			l.i++
			continue
		}
		return nil, fmt.Errorf("unexpected %q at %d", r, pos)
	}
}

type node interface {
	emit(b *strings.Builder)
}

type numNode struct{ lit string }

type unaryNode struct {
	op string
	x  node
}

type binaryNode struct {
	op   string
	l, r node
}

// compareNode holds a comparison chain a < b <= c.
type compareNode struct {
	ops []string
	xs  []node
}

var bitBuiltins = map[string]string{
	"&": "bitand",
	"|": "bitor",
	"^": "bitxor",
}

func (n numNode) emit(b *strings.Builder) { b.WriteString(n.lit) }

func (n unaryNode) emit(b *strings.Builder) {
	switch n.op {
	case "~":
		b.WriteString("bitnot(")
		n.x.emit(b)
		b.WriteString(")")
	case "-":
		b.WriteString("negate(")
		n.x.emit(b)
		b.WriteString(")")
	default:
		b.WriteString("(")
		n.x.emit(b)
		b.WriteString(")")
	}
}

func (n binaryNode) emit(b *strings.Builder) {
	fn, ok := bitBuiltins[n.op]
	if !ok {
		fn = arithFuncs[n.op]
	}
	b.WriteString(fn)
	b.WriteString("(")
	n.l.emit(b)
	b.WriteString(", ")
	n.r.emit(b)
	b.WriteString(")")
}

func (n compareNode) emit(b *strings.Builder) {
	b.WriteString("((")
	for i, op := range n.ops {
		if i > 0 {
			b.WriteString(" && ")
		}
		b.WriteString("(")
		n.xs[i].emit(b)
		b.WriteString(" ")
		b.WriteString(op)
		b.WriteString(" ")
		n.xs[i+1].emit(b)
		b.WriteString(")")
	}
	b.WriteString(") ? 1 : 0)")
}

type parser struct {
	toks []token
	i    int
}

func (p *parser) peek() token { return p.toks[p.i] }
func (p *parser) next() token {
	t := p.toks[p.i]
	if t.kind != tokEOF {
		p.i++
	}
	return t
}

// acceptOp consumes the next token when it is one of ops.
func (p *parser) acceptOp(ops ...string) (string, bool) {
	t := p.peek()
	if t.kind != tokOp {
		return "", false
	}
	for _, op := range ops {
		if t.text == op {
			p.i++
			return op, true
		}
	}
	return "", false
}

func (p *parser) parseCompare() (node, error) {
	first, err := p.parseBitOr()
	if err != nil {
		return nil, err
	}
	cmp := compareNode{xs: []node{first}}
	for {
		op, ok := p.acceptOp("<", ">", "<=", ">=", "==", "!=")
		if !ok {
			break
		}
		x, err := p.parseBitOr()
		if err != nil {
			return nil, err
		}
		cmp.ops = append(cmp.ops, op)
		cmp.xs = append(cmp.xs, x)
	}
	if len(cmp.ops) == 0 {
		return first, nil
	}
	return cmp, nil
}

// binaryLevel parses a left-associative chain of ops over operands read by
// sub.
func (p *parser) binaryLevel(sub func() (node, error), ops ...string) (node, error) {
	l, err := sub()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.acceptOp(ops...)
		if !ok {
			return l, nil
		}
		r, err := sub()
		if err != nil {
			return nil, err
		}
		l = binaryNode{op: op, l: l, r: r}
	}
}

func (p *parser) parseBitOr() (node, error)  { return p.binaryLevel(p.parseBitXor, "|") }
func (p *parser) parseBitXor() (node, error) { return p.binaryLevel(p.parseBitAnd, "^") }
func (p *parser) parseBitAnd() (node, error) { return p.binaryLevel(p.parseShift, "&") }
func (p *parser) parseShift() (node, error)  { return p.binaryLevel(p.parseSum, "<<", ">>") }
func (p *parser) parseSum() (node, error)    { return p.binaryLevel(p.parseTerm, "+", "-") }
func (p *parser) parseTerm() (node, error)   { return p.binaryLevel(p.parseUnary, "*", "/", "%") }

func (p *parser) parseUnary() (node, error) {
	if op, ok := p.acceptOp("+", "-", "~"); ok {
		x, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return unaryNode{op: op, x: x}, nil
	}
	return p.parsePower()
}

func (p *parser) parsePower() (node, error) {
	base, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	if _, ok := p.acceptOp("**"); !ok {
		return base, nil
	}
	exp, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	return binaryNode{op: "**", l: base, r: exp}, nil
}

func (p *parser) parseAtom() (node, error) {
	t := p.next()
	switch t.kind {
	case tokNum:
		lit, err := normalizeNumber(t.text)
		if err != nil {
			return nil, fmt.Errorf("number %q at %d: %w", t.text, t.pos, err)
		}
		return numNode{lit: lit}, nil
	case tokLParen:
		n, err := p.parseCompare()
		if err != nil {
			return nil, err
		}
		if c := p.next(); c.kind != tokRParen {
			return nil, fmt.Errorf("missing ) at %d", c.pos)
		}
		return n, nil
	case tokEOF:
		return nil, fmt.Errorf("unexpected end of expression")
	default:
		return nil, fmt.Errorf("unexpected %q at %d", t.text, t.pos)
	}
}

// normalizeNumber rewrites a literal into a form expr reads the same way:
// integers without leading zeros, floats always with a decimal point.
func normalizeNumber(lit string) (string, error) {
	if !strings.ContainsAny(lit, ".eE") {
		v, err := strconv.ParseInt(lit, 10, 64)
		if err != nil {
			return "", err
		}
		return strconv.FormatInt(v, 10), nil
	}
	v, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return "", err
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s, nil
}
