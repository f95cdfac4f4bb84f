package main

import (
	"testing"

	"github.com/gomlx/goopencl/opencl"
	"github.com/stretchr/testify/require"
)

// TestCollectPlatforms requires an OpenCL library installed, and it is skipped otherwise.
func TestCollectPlatforms(t *testing.T) {
	lib, err := opencl.DefaultLibrary()
	if err != nil {
		t.Skipf("OpenCL library not available: %v", err)
	}
	r := &report{}
	r.collectPlatforms(lib)
	require.Equal(t, lib.String(), r.Library)
	require.Len(t, r.Platforms, int(lib.GetPlatformCount()))
	for _, info := range r.Platforms {
		require.NotZero(t, info.ID)
	}
}
