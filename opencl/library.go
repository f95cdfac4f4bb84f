package opencl

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/pkg/errors"
)

// Library represents a loaded OpenCL library -- usually the ICD loader libOpenCL, which dispatches
// calls to the installed vendor drivers.
//
// Loaded libraries are singletons and cached (GetLibrary will return a pointer to the same library if
// called with the same name or path).
//
// Libraries are searched in the OPENCL_LIBRARY_PATH directory -- or directories, if it is a ":" separated list.
type Library struct {
	name, path string
	api        nativeAPI
	dllHandle  dllHandleWrapper

	// muNative serializes the calls to the native library: thread-safety of the platform enumeration
	// is left to the drivers, so we don't rely on it.
	muNative sync.Mutex
}

// newLibrary creates a new library from its nativeAPI.
// Internal: use GetLibrary instead.
func newLibrary(name, libPath string, api nativeAPI, dllHandle dllHandleWrapper) *Library {
	return &Library{
		name:      name,
		path:      libPath,
		api:       api,
		dllHandle: dllHandle,
	}
}

// RegisterPreloadedLibrary can be used to register an OpenCL library that has been linked (dynamically or
// statically) with the binary -- as opposed to the usual loading with `dlopen` after the program has started.
//
// It takes as input the name to be associated with the library and unsafe pointers (uintptr) to the
// C functions clGetPlatformIDs and clGetPlatformInfo.
//
// See sub-package `static` for an example of usage.
func RegisterPreloadedLibrary(name string, getPlatformIDs, getPlatformInfo uintptr) error {
	muLibraries.Lock()
	defer muLibraries.Unlock()
	if _, found := loadedLibraries[name]; found {
		return errors.Errorf("an OpenCL library named %q is already loaded", name)
	}
	api, err := newCAPI(unsafe.Pointer(getPlatformIDs), unsafe.Pointer(getPlatformInfo))
	if err != nil {
		return errors.WithMessagef(err, "registering preloaded OpenCL library %q", name)
	}
	loadedLibraries[name] = newLibrary(name, "_preloaded_", api, nil)
	return nil
}

// GetLibrary returns the OpenCL library with the given name -- typically "OpenCL" (DefaultLibraryName) for the
// ICD loader. But one can also give the full path to the `.so` (or `.dylib`) file.
//
// Loaded libraries are singletons and cached (GetLibrary will return a pointer to the same library if
// called with the same name or path).
func GetLibrary(name string) (*Library, error) {
	return loadNamedLibrary(name)
}

// DefaultLibrary returns the library used by the package level functions: the one named by the environment
// variable GOOPENCL_LIBRARY, or DefaultLibraryName if it is not set.
func DefaultLibrary() (*Library, error) {
	return loadNamedLibrary(defaultLibraryName())
}

// Name returns the name of the library.
func (l *Library) Name() string {
	return l.name
}

// Path returns the path from where the library was loaded.
func (l *Library) Path() string {
	return l.path
}

// String implements fmt.Stringer.
func (l *Library) String() string {
	if l.path == l.name {
		return fmt.Sprintf("OpenCL library (%s)", l.path)
	}
	return fmt.Sprintf("OpenCL %q library (%s)", l.name, l.path)
}
