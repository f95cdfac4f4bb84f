//go:build linux || darwin

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

// This file handles loading of dynamic libraries with dlopen, for linux and darwin.
//
// Modified version of https://github.com/coreos/pkg/blob/main/dlopen/dlopen.go, licenced with Apache 2.0 license
// https://github.com/coreos/pkg/blob/main/LICENSE

// #cgo linux LDFLAGS: -ldl
/*
#include <stdlib.h>
#include <dlfcn.h>
*/
import "C"
import (
	"os"
	"path"
	"slices"
	"unsafe"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// loadLibrary tries to dlopen the library and returns a handle to it.
//
// Paths that are not absolute, or that are listed by osSystemLibraries, are passed as is to dlopen, which will
// search them in the system's default locations.
func loadLibrary(libPath string) (handleWrapper dllHandleWrapper, err error) {
	if path.IsAbs(libPath) && !slices.Contains(osSystemLibraries(), libPath) {
		info, err := os.Stat(libPath)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to stat %q", libPath)
		}
		if info.IsDir() {
			return nil, errors.Errorf("library path %q is a directory!?", libPath)
		}
	}

	nameC := C.CString(libPath)
	klog.V(2).Infof("trying to load library %s\n", libPath)
	handle := C.dlopen(nameC, C.RTLD_LAZY|C.RTLD_LOCAL)
	cFree(nameC)
	if handle == nil {
		msg := C.GoString(C.dlerror())
		err = errors.Errorf("failed to dynamically load OpenCL library from %q: %q -- check with `ldd %s` in case there are missing required libraries.", libPath, msg, libPath)
		klog.V(1).Infof("%v", err)
		return
	}

	klog.V(1).Infof("loaded library %s\n", libPath)
	handleWrapper = &dlHandle{
		Handle: handle,
		Name:   libPath,
	}
	return
}

// dlHandle represents an open handle to a library (.so or .dylib)
type dlHandle struct {
	Handle unsafe.Pointer
	Name   string
}

// GetSymbolPointer takes a symbol name and returns a pointer to the symbol.
func (l *dlHandle) GetSymbolPointer(symbol string) (unsafe.Pointer, error) {
	sym := C.CString(symbol)
	defer C.free(unsafe.Pointer(sym))

	C.dlerror()
	p := C.dlsym(l.Handle, sym)
	e := C.dlerror()
	if e != nil {
		return nil, errors.Errorf("error resolving symbol %q: %v", symbol, errors.New(C.GoString(e)))
	}
	if p == nil {
		return nil, errors.Errorf("symbol %q resolved to nil in %q", symbol, l.Name)
	}
	return p, nil
}

// Close closes a dlHandle.
func (l *dlHandle) Close() error {
	C.dlerror()
	C.dlclose(l.Handle)
	e := C.dlerror()
	if e != nil {
		return errors.Errorf("error closing %v: %v", l.Name, errors.New(C.GoString(e)))
	}
	return nil
}
