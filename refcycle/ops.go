package refcycle

import (
	"errors"
	"fmt"
	"math"

	"github.com/expr-lang/expr"
)

// Arithmetic runs through these functions instead of expr's operators so
// that integer operands keep integer semantics: / and % floor, and an
// overflow is an error instead of a wrapped value. A float operand on either
// side makes the operation a float64 one.

var (
	errDivByZero = errors.New("division by zero")
	errOverflow  = errors.New("integer overflow")
)

// maxExact bounds the magnitude of a result that still converts to float64
// without losing digits.
const maxExact = 1 << 53

var arithFuncs = map[string]string{
	"+":  "plus",
	"-":  "minus",
	"*":  "times",
	"/":  "divide",
	"%":  "modulo",
	"**": "power",
	"<<": "lshift",
	">>": "rshift",
}

var exprOptions = []expr.Option{
	expr.Function("plus", binaryOp(addInt, func(a, b float64) (float64, error) { return a + b, nil })),
	expr.Function("minus", binaryOp(subInt, func(a, b float64) (float64, error) { return a - b, nil })),
	expr.Function("times", binaryOp(mulInt, func(a, b float64) (float64, error) { return a * b, nil })),
	expr.Function("divide", binaryOp(floorDivInt, divFloat)),
	expr.Function("modulo", binaryOp(floorModInt, modFloat)),
	expr.Function("power", binaryOp(powInt, powFloat)),
	expr.Function("lshift", intOnly(shlInt)),
	expr.Function("rshift", intOnly(shrInt)),
	expr.Function("negate", negate),
}

type intFunc func(a, b int) (any, error)
type floatFunc func(a, b float64) (float64, error)

func binaryOp(onInt intFunc, onFloat floatFunc) func(params ...any) (any, error) {
	return func(params ...any) (any, error) {
		if len(params) != 2 {
			return nil, fmt.Errorf("want 2 operands, got %d", len(params))
		}
		a, aInt := params[0].(int)
		b, bInt := params[1].(int)
		if aInt && bInt {
			return onInt(a, b)
		}
		x, err := toFloat(params[0])
		if err != nil {
			return nil, err
		}
		y, err := toFloat(params[1])
		if err != nil {
			return nil, err
		}
		return onFloat(x, y)
	}
}

func intOnly(fn intFunc) func(params ...any) (any, error) {
	return func(params ...any) (any, error) {
		if len(params) != 2 {
			return nil, fmt.Errorf("want 2 operands, got %d", len(params))
		}
		a, aInt := params[0].(int)
		b, bInt := params[1].(int)
		if !aInt || !bInt {
			return nil, fmt.Errorf("unsupported operand types %T and %T", params[0], params[1])
		}
		return fn(a, b)
	}
}

func toFloat(v any) (float64, error) {
	switch v := v.(type) {
	case int:
		return float64(v), nil
	case float64:
		return v, nil
	}
	return 0, fmt.Errorf("unsupported operand %T", v)
}

func negate(params ...any) (any, error) {
	if len(params) != 1 {
		return nil, fmt.Errorf("want 1 operand, got %d", len(params))
	}
	switch v := params[0].(type) {
	case int:
		if v == math.MinInt {
			return nil, errOverflow
		}
		return -v, nil
	case float64:
		return -v, nil
	}
	return nil, fmt.Errorf("unsupported operand %T", params[0])
}

func addInt(a, b int) (any, error) {
	c := a + b
	if (c > a) != (b > 0) {
		return nil, errOverflow
	}
	return c, nil
}

func subInt(a, b int) (any, error) {
	c := a - b
	if (c < a) != (b > 0) {
		return nil, errOverflow
	}
	return c, nil
}

func mulInt(a, b int) (any, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	c := a * b
	if c/b != a || (a == -1 && b == math.MinInt) || (b == -1 && a == math.MinInt) {
		return nil, errOverflow
	}
	return c, nil
}

// floorDivInt rounds toward negative infinity: 7/2 is 3, -7/2 is -4.
func floorDivInt(a, b int) (any, error) {
	if b == 0 {
		return nil, errDivByZero
	}
	if a == math.MinInt && b == -1 {
		return nil, errOverflow
	}
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q, nil
}

// floorModInt takes the sign of the divisor: -7 % 3 is 2.
func floorModInt(a, b int) (any, error) {
	if b == 0 {
		return nil, errDivByZero
	}
	if b == -1 {
		return 0, nil
	}
	m := a % b
	if m != 0 && ((m < 0) != (b < 0)) {
		m += b
	}
	return m, nil
}

func divFloat(a, b float64) (float64, error) {
	if b == 0 {
		return 0, errDivByZero
	}
	return a / b, nil
}

func modFloat(a, b float64) (float64, error) {
	if b == 0 {
		return 0, errDivByZero
	}
	m := math.Mod(a, b)
	if m != 0 && ((m < 0) != (b < 0)) {
		m += b
	}
	return m, nil
}

// powInt stays integral for a non-negative exponent; a negative one gives a
// float, so 2 ** -1 is 0.5.
func powInt(a, b int) (any, error) {
	if b < 0 {
		if a == 0 {
			return nil, errDivByZero
		}
		return math.Pow(float64(a), float64(b)), nil
	}
	switch a {
	case 0, 1:
		if b == 0 {
			return 1, nil
		}
		return a, nil
	case -1:
		if b%2 == 0 {
			return 1, nil
		}
		return -1, nil
	}
	r := 1
	for i := 0; i < b; i++ {
		next, err := mulInt(r, a)
		if err != nil {
			return nil, err
		}
		r = next.(int)
	}
	return r, nil
}

func powFloat(a, b float64) (float64, error) {
	if a == 0 && b < 0 {
		return 0, errDivByZero
	}
	return math.Pow(a, b), nil
}

func shlInt(a, b int) (any, error) {
	if b < 0 {
		return nil, fmt.Errorf("negative shift count %d", b)
	}
	if a == 0 {
		return 0, nil
	}
	if b >= 63 || (a<<b)>>b != a {
		return nil, errOverflow
	}
	return a << b, nil
}

func shrInt(a, b int) (any, error) {
	if b < 0 {
		return nil, fmt.Errorf("negative shift count %d", b)
	}
	if b >= 63 {
		if a < 0 {
			return -1, nil
		}
		return 0, nil
	}
	return a >> b, nil
}
