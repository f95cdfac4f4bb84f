package opencl

// ICD is an Installable Client Driver registered with the OpenCL ICD loader: each one is a vendor driver
// library that provides one or more platforms.
type ICD struct {
	// File where the ICD is registered, e.g. "/etc/OpenCL/vendors/pocl.icd".
	File string

	// Library is the driver library named in the file: either an absolute path or a name resolved by dlopen.
	Library string
}

// ChecksEnv is the name of the environment variable that disables the diagnostics logged when no platforms
// are found, if set to "0", "false" or "no".
const ChecksEnv = "GOOPENCL_CHECKS"
