//go:build !linux && !darwin

package opencl

// SuppressDriverLoggingHack is not supported in this OS: it simply calls fn.
func SuppressDriverLoggingHack(fn func()) {
	fn()
}
