package opencl

// Common initialization and testing tools for all test files.

import (
	"flag"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"
	"k8s.io/klog/v2"
)

var flagLibrary = flag.String("library", DefaultLibraryName, "OpenCL library name or full path")

func init() {
	klog.InitFlags(nil)
}

type errTester[T any] struct {
	value T
	err   error
}

// capture is a shortcut to test that there is no error and return the value.
func capture[T any](value T, err error) errTester[T] {
	return errTester[T]{value, err}
}

func (e errTester[T]) Test(t *testing.T) T {
	require.NoError(t, e.err)
	return e.value
}

// getLibrary loads the OpenCL library given by --library, or skips the test if it is not installed.
func getLibrary(t testing.TB) *Library {
	lib, err := GetLibrary(*flagLibrary)
	if err != nil {
		t.Skipf("OpenCL library %q not available: %v", *flagLibrary, err)
	}
	return lib
}

// fakeAPI implements nativeAPI in Go, following the OpenCL semantics of clGetPlatformIDs and clGetPlatformInfo.
type fakeAPI struct {
	platforms []PlatformID
	info      map[PlatformID]map[PlatformInfoParam]string

	// failure, if set, is returned by every call.
	failure Status

	// noICD makes clGetPlatformIDs behave like the ICD loader without any vendor driver installed.
	noICD bool

	// numCalls counts the calls to the native API.
	numCalls int
}

func (f *fakeAPI) GetPlatformIDs(numEntries uint32, platforms *PlatformID, numPlatforms *uint32) Status {
	f.numCalls++
	if f.failure != Success {
		return f.failure
	}
	if (numEntries == 0 && platforms != nil) || (platforms == nil && numPlatforms == nil) {
		return InvalidValue
	}
	if f.noICD {
		return PlatformNotFoundKHR
	}
	if platforms != nil {
		copy(unsafe.Slice(platforms, numEntries), f.platforms)
	}
	if numPlatforms != nil {
		*numPlatforms = uint32(len(f.platforms))
	}
	return Success
}

func (f *fakeAPI) GetPlatformInfo(platform PlatformID, param PlatformInfoParam, valueSize uintptr, value unsafe.Pointer, valueSizeRet *uintptr) Status {
	f.numCalls++
	if f.failure != Success {
		return f.failure
	}
	params, found := f.info[platform]
	if !found {
		return InvalidPlatform
	}
	str, found := params[param]
	if !found {
		return InvalidValue
	}
	data := append([]byte(str), 0)
	if valueSizeRet != nil {
		*valueSizeRet = uintptr(len(data))
	}
	if value != nil {
		if valueSize < uintptr(len(data)) {
			return InvalidValue
		}
		copy(unsafe.Slice((*byte)(value), valueSize), data)
	}
	return Success
}

// newFakeLibrary returns a Library backed by the fake API.
func newFakeLibrary(t testing.TB, api *fakeAPI) *Library {
	return newLibrary(t.Name(), "_fake_", api, nil)
}

// registerFakeLibrary adds a fake library to the cache of loaded libraries, under the test name, and
// removes it at the end of the test.
func registerFakeLibrary(t testing.TB, api *fakeAPI) *Library {
	lib := newFakeLibrary(t, api)
	muLibraries.Lock()
	loadedLibraries[lib.Name()] = lib
	muLibraries.Unlock()
	t.Cleanup(func() {
		muLibraries.Lock()
		delete(loadedLibraries, lib.Name())
		muLibraries.Unlock()
	})
	return lib
}
