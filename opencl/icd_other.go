//go:build !linux

package opencl

// InstalledICDs is only implemented for linux: elsewhere vendor drivers are registered by other means
// (e.g. the Windows registry), and it returns nil.
func InstalledICDs() []ICD { return nil }

func logNoPlatformsHints(l *Library) {}
