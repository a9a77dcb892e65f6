package smithy

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w
	fn()
	w.Close()
	os.Stdout = old
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}

func TestDebugSuppressedWhenNotVerbose(t *testing.T) {
	Verbose = false
	out := captureStdout(t, func() { Debug("hello") })
	require.Empty(t, out)
}

func TestDebugPrintsWhenVerbose(t *testing.T) {
	Verbose = true
	defer func() { Verbose = false }()
	out := captureStdout(t, func() { Debug("hello", "world") })
	require.Contains(t, out, "hello")
	require.Contains(t, out, "world")
}
