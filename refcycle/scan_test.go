package refcycle

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFindPosition(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1, 2", "1"},
		{"X + 1, Y", "X + 1"},
		{"f(a, b), c", "f(a, b)"},
		{"[1, 2], {3, 4}", "[1, 2]"},
		{"'a,b', c", "'a,b'"},
		{`"a\",b", c`, `"a\",b"`},
		{"abc", "abc"},
		{"", ""},
		{"[1, 2", "[1, 2"},
		{"'open, quote", "'open, quote"},
		{"), 1", "), 1"},
	}

	for _, tc := range tests {
		require.Equal(t, tc.want, FindPosition(tc.in), "input %q", tc.in)
	}
}

func TestFindColon(t *testing.T) {
	tests := []struct {
		first, second string
		x, y          int
	}{
		{"(a:b)", "c", -1, -1},
		{"1:3", " 2", 1, -1},
		{"'x:y'", "a:b", -1, 1},
		{"{1:2}:3", "", 5, -1},
		{"[a:b", "", -1, -1},
		{"", "", -1, -1},
	}

	for _, tc := range tests {
		x, y := FindColon(tc.first, tc.second)
		require.Equal(t, tc.x, x, "first %q", tc.first)
		require.Equal(t, tc.y, y, "second %q", tc.second)
	}
}

func TestFindClosing(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"1, 2] + 3", 4},
		{"f(1)] x", 4},
		{"']'], 3", 3},
		{"1, [2", -1},
		{"", -1},
	}

	for _, tc := range tests {
		require.Equal(t, tc.want, findClosing(tc.in), "input %q", tc.in)
	}
}

func FuzzFindPosition(f *testing.F) {
	seeds := []string{
		"", ",", "1, 2", "f(a, b), c", "'a,b', c", `"\"", 1`, "[[,]", ")),(", "S[X+1, Y-2]",
	}
	for _, s := range seeds {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, s string) {
		got := FindPosition(s)
		if indexTopLevel(got, ',') >= 0 {
			t.Fatalf("FindPosition(%q) = %q keeps a top-level comma", s, got)
		}
		if len(got) > len(s) || s[:len(got)] != got {
			t.Fatalf("FindPosition(%q) = %q is not a prefix", s, got)
		}
	})
}
