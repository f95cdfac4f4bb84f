//go:build linux || darwin

package opencl

import (
	"os"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
	"k8s.io/klog/v2"
)

// SuppressDriverLoggingHack prevents logging of OpenCL vendor drivers, some of which write directly to the file
// descriptor (fd) 2 while being enumerated. It duplicates fd 2, reassigns the new fd to Go's os.Stderr, and
// redirects fd 2 to /dev/null while fn is executed. At the end the change is reverted.
//
// It's an overkill, because this may prevent valid logging in some truly exceptional situations.
//
// Since file descriptors are a global resource, this function is not reentrant, and you should
// make sure no two goroutines are calling this at the same time.
func SuppressDriverLoggingHack(fn func()) {
	restore, err := suppressLogging()
	if err != nil {
		klog.Errorf("Failed to temporarily suppress drivers logging: %+v", err)
	} else {
		defer restore()
	}
	fn()
}

func suppressLogging() (restore func(), err error) {
	newFd, err := unix.Dup(2)
	if err != nil {
		return nil, errors.Wrap(err, "failed to duplicate (unix.Dup) file descriptor 2 (stderr)")
	}
	devNull, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	if err != nil {
		_ = unix.Close(newFd)
		return nil, errors.Wrapf(err, "failed to open %s", os.DevNull)
	}
	defer func() { _ = devNull.Close() }()
	if err = unix.Dup2(int(devNull.Fd()), 2); err != nil {
		_ = unix.Close(newFd)
		return nil, errors.Wrapf(err, "failed to redirect file descriptor 2 (stderr) to %s", os.DevNull)
	}

	oldStderr := os.Stderr
	newStderr := os.NewFile(uintptr(newFd), "stderr")
	os.Stderr = newStderr
	restore = func() {
		if err := unix.Dup2(newFd, 2); err != nil {
			klog.Errorf("Failed unix.Dup2 while reverting suppression of logging: %v", err)
			// Keep using newStderr, since fd 2 is still redirected.
			return
		}
		os.Stderr = oldStderr
		_ = newStderr.Close()
	}
	return restore, nil
}
