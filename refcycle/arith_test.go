package refcycle

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEval(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"42", 42},
		{" 1 + 2 * 3 ", 7},
		{"(1 + 2) * 3", 9},
		{"0+1", 1},
		{"0 - 2", -2},
		{"-2**2", -4},
		{"2**-1", 0.5},
		{"2 ** 3 ** 2", 512},
		{"7 / 2", 3},
		{"-7 / 2", -4},
		{"7 / -2", -4},
		{"7.0 / 2", 3.5},
		{"7 / 2.", 3.5},
		{"(7 / 2) & 1", 1},
		{"7 % 2.5", 2},
		{"-7.5 % 2", 0.5},
		{"7.5 % -2", -0.5},
		{"2 ** 52", 1 << 52},
		{"-9007199254740991", -(1<<53 - 1)},
		{"7 % 3", 1},
		{"-7 % 3", 2},
		{"7 % -3", -2},
		{"6 & 3", 2},
		{"6 | 3", 7},
		{"6 ^ 3", 5},
		{"~0", -1},
		{"1 << 4", 16},
		{"256 >> 4", 16},
		{"1 + 2 & 3", 3},
		{"1 < 2", 1},
		{"3 < 2", 0},
		{"1 < 2 < 3", 1},
		{"1 < 3 < 2", 0},
		{"2 == 2", 1},
		{"2 != 2", 0},
		{".5 + 1.", 1.5},
		{"2e3", 2000},
		{"1.5E-1 * 10", 1.5},
		{"007", 7},
		{"--3", 3},
		{"+(4)", 4},
	}

	for _, tc := range tests {
		got, err := Eval(tc.in)
		require.NoError(t, err, "input %q", tc.in)
		require.InDelta(t, tc.want, got, 1e-9, "input %q", tc.in)
	}
}

func TestEval_Rejects(t *testing.T) {
	bad := []string{
		"",
		"   ",
		"x",
		"X + 1",
		"abs(1)",
		"__import__('os')",
		"1 +",
		"(1",
		"1)",
		"1 2",
		"1 $ 2",
		"'1'",
		"1 / 0",
		"1 % 0",
		"1e",
		".",
		"true",
		"1 / 0.0",
		"2.5 % 0",
		"0 ** -1",
		"9223372036854775807 + 1",
		"-9223372036854775807 - 2",
		"4611686018427387904 * 2",
		"2 ** 64",
		"1 << 63",
		"1 << -1",
		"9007199254740992",
		"2 ** 53",
		"1.5 << 1",
		"1.5 & 1",
		"1e400",
	}
	for _, s := range bad {
		_, err := Eval(s)
		require.Error(t, err, "input %q", s)
	}
}

func TestTranslate_NoNamesReachExpr(t *testing.T) {
	program, err := translate("~(1 | 2) + 3 % 2 < 4")
	require.NoError(t, err)
	require.Equal(t, "(((plus(bitnot(bitor(1, 2)), modulo(3, 2)) < 4)) ? 1 : 0)", program)
}

func BenchmarkEval(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = Eval("(0 + 3) * 2 - 1")
	}
}
