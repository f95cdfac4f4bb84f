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

// This file handles the search paths of dynamic libraries for darwin.

import (
	"os"
	"path"
	"strings"
)

// openCLFramework is the system OpenCL library. Since macOS 11 it lives in the dyld shared cache,
// and there is no file in the framework directory.
const openCLFramework = "/System/Library/Frameworks/OpenCL.framework/OpenCL"

// osDefaultLibraryPaths is called during initialization to set the default search paths.
// It includes "/usr/local/lib" and the contents of DYLD_LIBRARY_PATH and LD_LIBRARY_PATH.
func osDefaultLibraryPaths() []string {
	var paths []string
	for _, varName := range []string{"DYLD_LIBRARY_PATH", "LD_LIBRARY_PATH"} {
		for _, ldPath := range strings.Split(os.Getenv(varName), string(os.PathListSeparator)) {
			if ldPath == "" || !path.IsAbs(ldPath) {
				// No empty or relative paths.
				continue
			}
			paths = append(paths, ldPath)
		}
	}
	paths = append(paths, "/usr/local/lib")
	return paths
}

// osSystemLibraries returns the OpenCL framework, which dlopen resolves from the shared cache.
func osSystemLibraries() []string {
	return []string{openCLFramework}
}
