//go:build linux || darwin

package opencl

import (
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

// TestSuppressDriverLoggingHack checks that fn is called and that os.Stderr is restored.
// The suppression itself can only be checked manually.
func TestSuppressDriverLoggingHack(t *testing.T) {
	stderr := os.Stderr
	var called bool
	SuppressDriverLoggingHack(func() {
		called = true
		require.NotEqual(t, stderr, os.Stderr)
		_, _ = unix.Write(2, []byte("SuppressDriverLoggingHack: this should not be printed\n"))
		_, err := fmt.Fprintln(os.Stderr, "SuppressDriverLoggingHack: printed to the duplicated stderr")
		require.NoError(t, err)
	})
	require.True(t, called)
	require.Equal(t, stderr, os.Stderr)
	_, err := fmt.Fprintln(os.Stderr, "SuppressDriverLoggingHack: printed after restore")
	require.NoError(t, err)
}
