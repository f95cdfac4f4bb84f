package opencl

import (
	"fmt"

	"github.com/pkg/errors"
)

// NativeError is returned when an OpenCL call returns a status other than Success.
type NativeError struct {
	// Op is the name of the OpenCL function that failed, e.g. "clGetPlatformIDs".
	Op string

	// Status returned by the call.
	Status Status
}

// Error implements the error interface.
func (e *NativeError) Error() string {
	return fmt.Sprintf("OpenCL error in %s: %s (%d)", e.Op, e.Status, int32(e.Status))
}

// toError converts the status returned by the OpenCL function op to a Go error, with a stack trace
// (see github.com/pkg/errors package).
// It returns nil if status is Success.
func toError(op string, status Status) error {
	if status == Success {
		return nil
	}
	return errors.WithStack(&NativeError{Op: op, Status: status})
}

// StatusOf returns the Status carried by err, or Success if err doesn't wrap a NativeError.
func StatusOf(err error) Status {
	var nativeErr *NativeError
	if errors.As(err, &nativeErr) {
		return nativeErr.Status
	}
	return Success
}

// IsPlatformNotFound returns whether err reports that the ICD loader found no OpenCL platform installed.
// This is the expected outcome on machines without OpenCL drivers.
func IsPlatformNotFound(err error) bool {
	return StatusOf(err) == PlatformNotFoundKHR
}
