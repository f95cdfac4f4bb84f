/*
 *	Copyright 2024 Jan Pfeifer
 *
 *	Licensed under the Apache License, Version 2.0 (the "License");
 *	you may not use this file except in compliance with the License.
 *	You may obtain a copy of the License at
 *
 *	http://www.apache.org/licenses/LICENSE-2.0
 *
 *	Unless required by applicable law or agreed to in writing, software
 *	distributed under the License is distributed on an "AS IS" BASIS,
 *	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *	See the License for the specific language governing permissions and
 *	limitations under the License.
 */

package opencl

import (
	"os"
	"path"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"sync"
	"unsafe"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// This file holds common definitions for the different implementations of dynamiclib (linux, darwin).

const (
	// LibraryPathsEnv is the name of the environment variable that define the search paths for the OpenCL library.
	LibraryPathsEnv = "OPENCL_LIBRARY_PATH"

	// DefaultLibraryEnv is the name of the environment variable that overrides the name (or absolute path)
	// of the library used by the package level functions GetPlatformCount and GetPlatformIDs.
	DefaultLibraryEnv = "GOOPENCL_LIBRARY"

	// DefaultLibraryName is the canonical name of the OpenCL ICD loader library.
	DefaultLibraryName = "OpenCL"
)

var (
	// librarySearchPaths is set during initialization by the per-architecture implementations (dynamiclib_<arch>.go files).
	//
	// Libraries are searched in the OPENCL_LIBRARY_PATH directory -- or directories, if it is a ":" separated list.
	// If it is not set it will search in the standard libraries directories of the system (in linux in
	// LD_LIBRARY_PATH and /etc/ld.so.conf file).
	librarySearchPaths []string

	// loadedLibraries caches the libraries already loaded. Protected by muLibraries.
	loadedLibraries = make(map[string]*Library)
	muLibraries     sync.Mutex
)

// dllHandleWrapper encapsulates a handle to a dynamically loaded library, and should provide a minimal interface
// to resolve the OpenCL functions and to close the library.
//
// It is created with loadLibrary (architecture specific), and one must be able to close it.
type dllHandleWrapper interface {
	// GetSymbolPointer returns the C pointer to the given symbol.
	GetSymbolPointer(symbol string) (unsafe.Pointer, error)

	// Close handle, after which the functions resolved from it are no longer valid.
	Close() error
}

func init() {
	libPaths, found := os.LookupEnv(LibraryPathsEnv)
	if !found {
		librarySearchPaths = osDefaultLibraryPaths()
	} else {
		librarySearchPaths = slices.DeleteFunc(strings.Split(libPaths, ":"), func(p string) bool {
			return p == "" // Remove empty paths.
		})
	}
}

// defaultLibraryName returns the name of the library used by the package level functions.
func defaultLibraryName() string {
	if name := os.Getenv(DefaultLibraryEnv); name != "" {
		return name
	}
	return DefaultLibraryName
}

// loadNamedLibrary by loading the corresponding dynamic library.
// It returns an error if it doesn't find it.
//
// It uses a mutex to serialize (make it safe) calls from different goroutines.
func loadNamedLibrary(name string) (*Library, error) {
	muLibraries.Lock()
	defer muLibraries.Unlock()

	// Search previously loaded library: match by name or by path (if the name given is an absolute path).
	if lib, found := loadedLibraries[name]; found {
		return lib, nil
	}
	if path.IsAbs(name) {
		for _, lib := range loadedLibraries {
			if lib.Path() == name {
				return lib, nil
			}
		}
	}

	// Search path to library -- except if name is an absolute path.
	libPath := name
	if !path.IsAbs(libPath) {
		var found bool
		libPath, found = searchLibrary(name)
		if !found {
			return nil, errors.Errorf("OpenCL library %q not found in paths %v: set %s to an specific path(s) to search, "+
				"or install an OpenCL ICD loader (e.g. ocl-icd-libopencl1)",
				name, librarySearchPaths, LibraryPathsEnv)
		}
	}
	klog.V(1).Infof("attempting to load OpenCL library from %s", libPath)

	handle, err := loadLibrary(libPath)
	if err != nil {
		return nil, errors.WithMessagef(err, "failed to load OpenCL library for name %q", name)
	}
	api, err := resolveAPI(handle)
	if err != nil {
		if err2 := handle.Close(); err2 != nil {
			klog.Warningf("Failed to close dynamic library %q: %v", libPath, err2)
		}
		return nil, errors.WithMessagef(err, "library %q loaded for name %q is not an OpenCL library", libPath, name)
	}
	lib := newLibrary(name, libPath, api, handle)
	loadedLibraries[name] = lib
	return lib, nil
}

// resolveAPI resolves the OpenCL functions used by this package from the library handle.
func resolveAPI(handle dllHandleWrapper) (*cAPI, error) {
	getPlatformIDs, err := handle.GetSymbolPointer(GetPlatformIDsFunctionName)
	if err != nil {
		return nil, err
	}
	getPlatformInfo, err := handle.GetSymbolPointer(GetPlatformInfoFunctionName)
	if err != nil {
		return nil, err
	}
	return newCAPI(getPlatformIDs, getPlatformInfo)
}

var (
	// Patterns to extract the name from the library path.
	reLibraryName = []*regexp.Regexp{
		regexp.MustCompile(`^(?:.*/)?lib(\w+)\.(?:so(?:\.\d+)*|dylib)$`),
		regexp.MustCompile(`^(?:.*/)?(\w+)\.framework/\w+$`),
	}

	// libraryPatterns are the glob patterns searched in each of the search paths.
	libraryPatterns = []string{"libOpenCL.so", "libOpenCL.so.*", "libOpenCL.dylib", "OpenCL.framework/OpenCL"}
)

// pathToLibraryName returns the name of the library if it's a matching library path, otherwise returns "".
func pathToLibraryName(libPath string) string {
	for _, re := range reLibraryName {
		if subMatches := re.FindStringSubmatch(libPath); len(subMatches) > 1 {
			return subMatches[1]
		}
	}
	return ""
}

// AvailableLibraries searches for OpenCL libraries in the standard directories and returns a map from their name
// to their paths.
//
// Libraries are searched in the OPENCL_LIBRARY_PATH directory -- or directories, if it is a ":" separated list.
// If it is not set it will search in the standard libraries directories of the system (in linux in LD_LIBRARY_PATH
// and /etc/ld.so.conf file, in Darwin also in DYLD_LIBRARY_PATH and the system framework) in that order.
//
// If there are libraries with the same name in different directories, it respects the order of the
// directories given by OPENCL_LIBRARY_PATH or by the system.
func AvailableLibraries() (librariesPaths map[string]string) {
	muLibraries.Lock()
	defer muLibraries.Unlock()
	return searchLibraries("")
}

func searchLibrary(searchName string) (path string, found bool) {
	path, found = searchLibraries(searchName)[searchName]
	return
}

// searchLibraries must be called with muLibraries locked.
func searchLibraries(searchName string) (librariesPaths map[string]string) {
	librariesPaths = make(map[string]string)

	// Include libraries already (pre-)loaded.
	for name, lib := range loadedLibraries {
		if searchName != "" && searchName != name {
			continue
		}
		librariesPaths[name] = lib.Path()
	}

	var candidates []string
	for _, libPath := range librarySearchPaths {
		for _, pattern := range libraryPatterns {
			matches, err := filepath.Glob(path.Join(libPath, pattern))
			if err != nil {
				continue
			}
			candidates = append(candidates, matches...)
		}
	}
	// Libraries the system dynamic loader knows how to find, even without a file in the search paths.
	candidates = append(candidates, osSystemLibraries()...)

	for _, candidate := range candidates {
		name := pathToLibraryName(candidate)
		if name == "" {
			continue
		}
		if searchName != "" && searchName != name {
			continue
		}
		if _, found := librariesPaths[name]; found {
			// We already have a library with that name.
			continue
		}
		if err := checkLibrary(candidate); err != nil {
			continue
		}
		librariesPaths[name] = candidate
	}
	return
}

// checkLibrary tries to dlopen the library and verify that the OpenCL functions are exported.
//
// The handle returned by dlopen is properly closed.
func checkLibrary(libPath string) (err error) {
	if klog.V(1).Enabled() {
		defer func() {
			klog.Infof("Check %q: %v\n", libPath, err)
		}()
	}

	var handle dllHandleWrapper
	handle, err = loadLibrary(libPath)
	if err != nil {
		return errors.WithMessagef(err, "failed to load OpenCL library %q", libPath)
	}
	defer func() {
		err2 := handle.Close()
		if err2 != nil {
			klog.Warningf("Failed to close dynamic library %q: %v", libPath, err2)
		}
	}()
	_, err = resolveAPI(handle)
	return
}
