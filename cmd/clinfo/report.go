package main

import (
	"github.com/gomlx/goopencl/opencl"
)

// report holds everything clinfo prints.
type report struct {
	// Libraries found, by name.
	Libraries map[string]string

	// Library used to query the platforms, empty if none could be loaded.
	Library string

	ICDs      []opencl.ICD
	Platforms []opencl.PlatformInfo

	// Errors found while collecting the report.
	Errors []string
}

// collectPlatforms queries the platforms of lib and their information.
func (r *report) collectPlatforms(lib *opencl.Library) {
	r.Library = lib.String()
	handles := make([]opencl.PlatformID, lib.GetPlatformCount())
	handles = handles[:lib.GetPlatformIDs(handles)]
	for _, id := range handles {
		info, err := lib.Platform(id).Describe()
		if err != nil {
			r.Errors = append(r.Errors, err.Error())
		}
		r.Platforms = append(r.Platforms, info)
	}
}
