// Package static links the OpenCL library (the ICD loader) with the binary at build time, and registers it
// with the name "OpenCL".
//
// To use it simply import with:
//
//	import _ "github.com/gomlx/goopencl/opencl/static"
//
// And calls to opencl.GetLibrary("OpenCL") (and the package level functions) will use the linked one,
// instead of searching and loading it with dlopen.
//
// The binary will then require the OpenCL library to be installed to start.
package static

// #cgo linux LDFLAGS: -lOpenCL
// #cgo darwin LDFLAGS: -framework OpenCL
/*
#include <stdint.h>
#include <stddef.h>

typedef int32_t cl_int;
typedef uint32_t cl_uint;
typedef struct _cl_platform_id *cl_platform_id;

extern cl_int clGetPlatformIDs(cl_uint num_entries, cl_platform_id *platforms, cl_uint *num_platforms);
extern cl_int clGetPlatformInfo(cl_platform_id platform, cl_uint param_name, size_t param_value_size,
                                void *param_value, size_t *param_value_size_ret);

static uintptr_t addressOfGetPlatformIDs(void) { return (uintptr_t)&clGetPlatformIDs; }
static uintptr_t addressOfGetPlatformInfo(void) { return (uintptr_t)&clGetPlatformInfo; }
*/
import "C"
import (
	"github.com/gomlx/goopencl/opencl"
	"k8s.io/klog/v2"
)

func init() {
	err := opencl.RegisterPreloadedLibrary(opencl.DefaultLibraryName,
		uintptr(C.addressOfGetPlatformIDs()), uintptr(C.addressOfGetPlatformInfo()))
	if err != nil {
		klog.Fatalf("Failed to register statically linked OpenCL library (github.com/gomlx/goopencl/opencl/static): %+v", err)
	}
}
