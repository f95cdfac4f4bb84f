package opencl

/*
#include "opencl_api.h"
*/
import "C"
import (
	"unsafe"

	"github.com/pkg/errors"
)

// Names of the OpenCL functions resolved from the library.
const (
	GetPlatformIDsFunctionName  = "clGetPlatformIDs"
	GetPlatformInfoFunctionName = "clGetPlatformInfo"
)

// nativeAPI is the subset of the OpenCL C API used by this package.
//
// Arguments follow the C signatures: pointers must stay valid (and pinned, if Go allocated) for the duration
// of the call.
type nativeAPI interface {
	GetPlatformIDs(numEntries uint32, platforms *PlatformID, numPlatforms *uint32) Status
	GetPlatformInfo(platform PlatformID, param PlatformInfoParam, valueSize uintptr, value unsafe.Pointer, valueSizeRet *uintptr) Status
}

// cAPI calls the OpenCL functions through the function pointers resolved from the library.
type cAPI struct {
	getPlatformIDs, getPlatformInfo unsafe.Pointer
}

// newCAPI returns the nativeAPI for the given C function pointers.
func newCAPI(getPlatformIDs, getPlatformInfo unsafe.Pointer) (*cAPI, error) {
	if getPlatformIDs == nil {
		return nil, errors.Errorf("nil pointer to %s", GetPlatformIDsFunctionName)
	}
	if getPlatformInfo == nil {
		return nil, errors.Errorf("nil pointer to %s", GetPlatformInfoFunctionName)
	}
	return &cAPI{getPlatformIDs: getPlatformIDs, getPlatformInfo: getPlatformInfo}, nil
}

// GetPlatformIDs calls C.clGetPlatformIDs.
func (a *cAPI) GetPlatformIDs(numEntries uint32, platforms *PlatformID, numPlatforms *uint32) Status {
	return Status(C.call_clGetPlatformIDs(a.getPlatformIDs, C.cl_uint(numEntries),
		(*C.uintptr_t)(unsafe.Pointer(platforms)), (*C.cl_uint)(unsafe.Pointer(numPlatforms))))
}

// GetPlatformInfo calls C.clGetPlatformInfo.
func (a *cAPI) GetPlatformInfo(platform PlatformID, param PlatformInfoParam, valueSize uintptr, value unsafe.Pointer, valueSizeRet *uintptr) Status {
	return Status(C.call_clGetPlatformInfo(a.getPlatformInfo, C.uintptr_t(platform), C.cl_platform_info(param),
		C.size_t(valueSize), value, (*C.size_t)(unsafe.Pointer(valueSizeRet))))
}
