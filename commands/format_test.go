package commands

import (
	"testing"

	"github.com/maxBezel/formulabot/refcycle"
	"github.com/stretchr/testify/require"
)

func TestRuneByteOffsets(t *testing.T) {
	s := "aé€b"
	require.Equal(t, 0, runeToByte(s, -1))
	require.Equal(t, 1, runeToByte(s, 1))
	require.Equal(t, 3, runeToByte(s, 2))
	require.Equal(t, 6, runeToByte(s, 3))
	require.Equal(t, len(s), runeToByte(s, 10))

	for n := 0; n <= 4; n++ {
		require.Equal(t, n, byteToRune(s, runeToByte(s, n)))
	}
}

func TestParseAnchorPrefix(t *testing.T) {
	def := refcycle.Anchor{X: 1, Y: 1}

	a, f := parseAnchorPrefix("4 5 =S[1, 2]", def)
	require.Equal(t, refcycle.Anchor{X: 4, Y: 5}, a)
	require.Equal(t, "=S[1, 2]", f)

	a, f = parseAnchorPrefix("4 + S[1, 2]", def)
	require.Equal(t, def, a)
	require.Equal(t, "4 + S[1, 2]", f)

	a, f = parseAnchorPrefix("4 5", def)
	require.Equal(t, def, a)
	require.Equal(t, "4 5", f)
}
