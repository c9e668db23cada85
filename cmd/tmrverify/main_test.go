package main

import (
	"io"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// captureStdout runs fn with os.Stdout redirected to a pipe and returns
// everything written to it. The CLI writes through cmd.OutOrStdout(),
// which falls back to os.Stdout when no writer is explicitly bound.
func captureStdout(t *testing.T, fn func() int) (string, int) {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)

	saved := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = saved }()

	code := fn()
	require.NoError(t, w.Close())

	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out), code
}

func TestRunListsCatalogueWithNoProgramFlag(t *testing.T) {
	out, code := captureStdout(t, func() int { return run(nil) })
	require.Equal(t, 0, code)
	require.Contains(t, out, "coarse-queue")
	require.Contains(t, out, "treiber-stack-hp")
}

func TestRunUnknownProgramIsAToolError(t *testing.T) {
	_, code := captureStdout(t, func() int { return run([]string{"--program", "no-such-program"}) })
	require.Equal(t, 1, code)
}

func TestRunCoarseQueueMatchesSuccessExpectation(t *testing.T) {
	out, code := captureStdout(t, func() int {
		return run([]string{"--program", "coarse-queue", "--success", "--log-level", "error"})
	})
	require.Equal(t, 0, code)
	require.True(t, strings.Contains(out, "CORRECT"))
	require.Contains(t, out, "semantics: GC")
	require.Contains(t, out, "encoding size=")
}

func TestRunCoarseQueueFailsMismatchedExpectation(t *testing.T) {
	_, code := captureStdout(t, func() int {
		return run([]string{"--program", "coarse-queue", "--fail", "--log-level", "error"})
	})
	require.Equal(t, 1, code)
}

func TestRunPrintsProgramBeforeVerdict(t *testing.T) {
	out, code := captureStdout(t, func() int {
		return run([]string{"--program", "coarse-queue", "--print-id", "--log-level", "error"})
	})
	require.Equal(t, 0, code)
	require.Contains(t, out, "function enq:")
	require.Contains(t, out, "malloc(")
}
