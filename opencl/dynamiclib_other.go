//go:build !linux && !darwin

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
	"runtime"

	"github.com/pkg/errors"
)

func osDefaultLibraryPaths() []string { return nil }

func osSystemLibraries() []string { return nil }

// loadLibrary is not supported in this OS: the package level functions will always report 0 platforms.
func loadLibrary(libPath string) (dllHandleWrapper, error) {
	return nil, errors.Errorf("loading OpenCL library %q: dynamic loading not supported in %s", libPath, runtime.GOOS)
}
