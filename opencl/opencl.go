// Package opencl implements a Go wrapper for OpenCL platform discovery.
//
// The OpenCL library (usually the ICD loader libOpenCL) is loaded dynamically with dlopen, so programs
// using this package run on machines without OpenCL installed: there, querying platforms simply returns 0.
//
// The two entry points GetPlatformCount and GetPlatformIDs follow a "soft error" policy: failures are logged
// (see klog flags) and reported as a zero count. Use Library.PlatformCount and Library.ReadPlatformIDs to get
// the error instead.
//
// Example:
//
//	n := opencl.GetPlatformCount()
//	ids := make([]opencl.PlatformID, n)
//	ids = ids[:opencl.GetPlatformIDs(ids)]
package opencl
