package command

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAppendGuard(t *testing.T) {
	var g AppendGuard

	require.False(t, g.Seen(""), "empty guard holds nothing, not the empty string.")
	require.False(t, g.Seen("X"))

	g.Remember("X")
	require.True(t, g.Seen("X"))
	require.False(t, g.Seen("Y"))

	g.Remember("Y")
	require.True(t, g.Seen("Y"))
	require.False(t, g.Seen("X"), "single slot keeps only the latest content.")

	long := strings.Repeat("content ", 1<<16)
	g.Remember(long)
	require.True(t, g.Seen(long))
	require.False(t, g.Seen(long+" "))
}
