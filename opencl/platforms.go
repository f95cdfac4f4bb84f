package opencl

import (
	"math"
	"runtime"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// PlatformID is an opaque handle (cl_platform_id) to an OpenCL platform: one installation of a vendor driver
// stack. It is owned by the OpenCL library that returned it, and it is only meaningful to it.
//
// It has the same size as a native pointer.
type PlatformID uintptr

// maxPlatformEntries is the largest number of entries (cl_uint) that can be requested in one call.
var maxPlatformEntries uint64 = math.MaxUint32

// PlatformCount returns the number of OpenCL platforms available.
//
// If the ICD loader reports no platform installed (PlatformNotFoundKHR), it returns 0 and no error.
func (l *Library) PlatformCount() (int, error) {
	l.muNative.Lock()
	defer l.muNative.Unlock()

	var numPlatforms uint32
	err := toError(GetPlatformIDsFunctionName, l.api.GetPlatformIDs(0, nil, &numPlatforms))
	if err != nil {
		if IsPlatformNotFound(err) {
			klog.V(1).Infof("%s: no OpenCL platforms installed", l)
			return 0, nil
		}
		return 0, errors.WithMessagef(err, "failed to count platforms of %s", l)
	}
	return int(numPlatforms), nil
}

// ReadPlatformIDs writes up to len(handles) platform handles into handles, and returns how many were written.
//
// The order of the platforms is defined by the OpenCL library, and is not guaranteed to be stable.
// The caller is responsible for sizing handles, typically with PlatformCount. If handles is empty, it
// returns 0 without calling the native library.
//
// If the ICD loader reports no platform installed (PlatformNotFoundKHR), it returns 0 and no error.
// On error, the contents of handles are unspecified.
func (l *Library) ReadPlatformIDs(handles []PlatformID) (int, error) {
	capacity := len(handles)
	if capacity == 0 {
		return 0, nil
	}
	if uint64(capacity) > maxPlatformEntries {
		capacity = int(maxPlatformEntries)
	}

	// Makes sure handles are not moved around by the GC while the native library writes into them.
	var pinner runtime.Pinner
	defer pinner.Unpin()
	pinner.Pin(&handles[0])

	l.muNative.Lock()
	defer l.muNative.Unlock()

	var numPlatforms uint32
	err := toError(GetPlatformIDsFunctionName, l.api.GetPlatformIDs(uint32(capacity), &handles[0], &numPlatforms))
	if err != nil {
		if IsPlatformNotFound(err) {
			klog.V(1).Infof("%s: no OpenCL platforms installed", l)
			return 0, nil
		}
		return 0, errors.WithMessagef(err, "failed to read %d platform ids from %s", capacity, l)
	}
	// numPlatforms is the number of platforms available, which can be larger than what was written.
	return min(int(numPlatforms), capacity), nil
}

// GetPlatformCount returns the number of OpenCL platforms available.
//
// It never fails: if the native call fails, the error is logged and it returns 0.
// So 0 means either no platforms are available or the query failed.
func (l *Library) GetPlatformCount() int32 {
	count, err := l.PlatformCount()
	if err != nil {
		klog.Warningf("Querying OpenCL platform count: %v", err)
		return 0
	}
	if count == 0 {
		logNoPlatformsHints(l)
	}
	return int32(min(count, math.MaxInt32))
}

// GetPlatformIDs writes up to len(handles) platform handles into handles, and returns how many were written.
// See ReadPlatformIDs.
//
// It never fails: if the native call fails, the error is logged and it returns 0.
// So 0 means either no platforms are available or the query failed.
func (l *Library) GetPlatformIDs(handles []PlatformID) int32 {
	count, err := l.ReadPlatformIDs(handles)
	if err != nil {
		klog.Warningf("Querying OpenCL platform ids: %v", err)
		return 0
	}
	return int32(min(count, math.MaxInt32))
}

// GetPlatformCount returns the number of platforms available in the default OpenCL library (see DefaultLibrary).
//
// It never fails: if the library can't be loaded or the native call fails, the error is logged and it returns 0.
func GetPlatformCount() int32 {
	lib, err := DefaultLibrary()
	if err != nil {
		klog.V(1).Infof("OpenCL not available: %v", err)
		return 0
	}
	return lib.GetPlatformCount()
}

// GetPlatformIDs writes up to len(handles) platform handles of the default OpenCL library (see DefaultLibrary)
// into handles, and returns how many were written.
//
// It never fails: if the library can't be loaded or the native call fails, the error is logged and it returns 0.
func GetPlatformIDs(handles []PlatformID) int32 {
	if len(handles) == 0 {
		return 0
	}
	lib, err := DefaultLibrary()
	if err != nil {
		klog.V(1).Infof("OpenCL not available: %v", err)
		return 0
	}
	return lib.GetPlatformIDs(handles)
}
