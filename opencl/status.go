package opencl

import "fmt"

// Status is the error code (cl_int) returned by OpenCL API calls.
type Status int32

// Status codes defined by OpenCL (cl.h) and the ICD loader extension (cl_khr_icd).
const (
	Success                    Status = 0
	DeviceNotFound             Status = -1
	DeviceNotAvailable         Status = -2
	CompilerNotAvailable       Status = -3
	MemObjectAllocationFailure Status = -4
	OutOfResources             Status = -5
	OutOfHostMemory            Status = -6
	ProfilingInfoNotAvailable  Status = -7
	MemCopyOverlap             Status = -8
	ImageFormatMismatch        Status = -9
	ImageFormatNotSupported    Status = -10
	BuildProgramFailure        Status = -11
	MapFailure                 Status = -12
	InvalidValue               Status = -30
	InvalidDeviceType          Status = -31
	InvalidPlatform            Status = -32
	InvalidDevice              Status = -33
	InvalidContext             Status = -34
	InvalidOperation           Status = -59

	// PlatformNotFoundKHR is returned by the ICD loader when no vendor driver (ICD) is installed.
	PlatformNotFoundKHR Status = -1001
)

var statusNames = map[Status]string{
	Success:                    "CL_SUCCESS",
	DeviceNotFound:             "CL_DEVICE_NOT_FOUND",
	DeviceNotAvailable:         "CL_DEVICE_NOT_AVAILABLE",
	CompilerNotAvailable:       "CL_COMPILER_NOT_AVAILABLE",
	MemObjectAllocationFailure: "CL_MEM_OBJECT_ALLOCATION_FAILURE",
	OutOfResources:             "CL_OUT_OF_RESOURCES",
	OutOfHostMemory:            "CL_OUT_OF_HOST_MEMORY",
	ProfilingInfoNotAvailable:  "CL_PROFILING_INFO_NOT_AVAILABLE",
	MemCopyOverlap:             "CL_MEM_COPY_OVERLAP",
	ImageFormatMismatch:        "CL_IMAGE_FORMAT_MISMATCH",
	ImageFormatNotSupported:    "CL_IMAGE_FORMAT_NOT_SUPPORTED",
	BuildProgramFailure:        "CL_BUILD_PROGRAM_FAILURE",
	MapFailure:                 "CL_MAP_FAILURE",
	InvalidValue:               "CL_INVALID_VALUE",
	InvalidDeviceType:          "CL_INVALID_DEVICE_TYPE",
	InvalidPlatform:            "CL_INVALID_PLATFORM",
	InvalidDevice:              "CL_INVALID_DEVICE",
	InvalidContext:             "CL_INVALID_CONTEXT",
	InvalidOperation:           "CL_INVALID_OPERATION",
	PlatformNotFoundKHR:        "CL_PLATFORM_NOT_FOUND_KHR",
}

// String implements fmt.Stringer. Unknown codes are printed as numbers.
func (s Status) String() string {
	if name, found := statusNames[s]; found {
		return name
	}
	return fmt.Sprintf("CL_STATUS(%d)", int32(s))
}
