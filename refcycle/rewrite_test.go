package refcycle

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToRelative(t *testing.T) {
	tests := []struct {
		axis    Axis
		literal string
		anchor  Anchor
		want    string
	}{
		{AxisX, "7", Anchor{X: 4}, "X + 3"},
		{AxisX, "4", Anchor{X: 4}, "X - 0"},
		{AxisX, "1", Anchor{X: 4}, "X - 3"},
		{AxisY, "10", Anchor{X: 99, Y: 4}, "Y + 6"},
		{AxisY, " -2 ", Anchor{Y: 1}, "Y - 3"},
		{AxisX, "3", Anchor{}, "X + 3"},
	}

	for _, tc := range tests {
		got, err := ToRelative(tc.axis, tc.literal, tc.anchor)
		require.NoError(t, err)
		require.Equal(t, tc.want, got)
	}

	_, err := ToRelative(AxisX, "X + 1", Anchor{})
	require.Error(t, err)
}

func TestToAbsolute(t *testing.T) {
	tests := []struct {
		axis     Axis
		relative string
		anchor   Anchor
		want     string
	}{
		{AxisX, "X + 3", Anchor{X: 4}, "7"},
		{AxisY, "Y-2", Anchor{X: 5, Y: 5}, "3"},
		{AxisX, "X - 0", Anchor{X: 9}, "9"},
		{AxisX, "X/2", Anchor{X: 1}, "1"},
		{AxisX, "X + 0.5", Anchor{X: 1}, "1.5"},
		{AxisY, "2*Y + 1", Anchor{Y: 10}, "11"},
		{AxisX, "X + 7/2", Anchor{}, "3"},
		{AxisX, "X - 7/2", Anchor{X: 10}, "7"},
		{AxisY, "Y + 7.0/2", Anchor{}, "3.5"},
	}

	for _, tc := range tests {
		got, err := ToAbsolute(tc.axis, tc.relative, tc.anchor)
		require.NoError(t, err)
		require.Equal(t, tc.want, got)
	}

	_, err := ToAbsolute(AxisX, "foo", Anchor{})
	require.Error(t, err)
	_, err = ToAbsolute(AxisY, "X + 1", Anchor{})
	require.Error(t, err)
	_, err = ToAbsolute(AxisX, "X + 9223372036854775807 + 1", Anchor{})
	require.Error(t, err)
	_, err = ToAbsolute(AxisX, "X + 2**60", Anchor{})
	require.Error(t, err)
}

func TestRelativeAbsoluteRoundTrip(t *testing.T) {
	anchors := []Anchor{{0, 0}, {5, 5}, {-3, 12}, {100, 1}}
	for _, a := range anchors {
		for n := -20; n <= 20; n++ {
			lit := strconv.Itoa(n)
			for _, axis := range []Axis{AxisX, AxisY} {
				rel, err := ToRelative(axis, lit, a)
				require.NoError(t, err)
				require.Equal(t, Relative, Classify(axis, rel))

				back, err := ToAbsolute(axis, rel, a)
				require.NoError(t, err)
				require.Equal(t, lit, back, "axis %s anchor %+v via %q", axis, a, rel)
			}
		}
	}
}
