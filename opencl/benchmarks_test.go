package opencl

import (
	"testing"

	"github.com/janpfeifer/must"
)

// BenchmarkLibrary_ReadPlatformIDs measures the overhead of the wrapper, using a fake native API.
func BenchmarkLibrary_ReadPlatformIDs(b *testing.B) {
	lib := newFakeLibrary(b, &fakeAPI{platforms: []PlatformID{0x1000, 0x2000, 0x3000}})
	handles := make([]PlatformID, 3)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = must.M1(lib.ReadPlatformIDs(handles))
	}
}

// BenchmarkLibrary_CGO measures the platform enumeration of the installed OpenCL library.
func BenchmarkLibrary_CGO(b *testing.B) {
	lib := getLibrary(b)
	handles := make([]PlatformID, must.M1(lib.PlatformCount()))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = must.M1(lib.ReadPlatformIDs(handles))
	}
}
