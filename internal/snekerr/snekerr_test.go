package snekerr_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/snek-lang/snek/internal/snekerr"
)

// TestFormatWithTraceIsInnermostFirst checks spec §6.4: "Stack traces are
// printed innermost-first, one frame per line." Frames are recorded
// outermost-first (push order), so the innermost (most recently pushed,
// last in the slice) frame must be the first one printed.
func TestFormatWithTraceIsInnermostFirst(t *testing.T) {
	err := snekerr.New(snekerr.Runtime, snekerr.Position{File: "f", Line: 3, Column: 1}, "boom")
	err.WithStack([]snekerr.Frame{
		{FunctionName: "outer", Position: snekerr.Position{File: "f", Line: 1, Column: 1}},
		{FunctionName: "inner", Position: snekerr.Position{File: "f", Line: 2, Column: 1}},
	})

	lines := strings.Split(err.FormatWithTrace(), "\n")
	require.Len(t, lines, 3)
	require.Contains(t, lines[1], "inner")
	require.Contains(t, lines[2], "outer")
}
