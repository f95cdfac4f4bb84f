// clinfo lists the OpenCL libraries, the vendor drivers (ICDs) and the platforms available in the system.
//
// Usage:
//
//	clinfo [-library=<name or path>] [-format=text|json|prototext] [-quiet_drivers] [-v=1]
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gomlx/goopencl/opencl"
	"k8s.io/klog/v2"
)

var (
	flagLibrary = flag.String("library", "",
		fmt.Sprintf("OpenCL library name or absolute path. If empty it uses $%s, or %q if it is not set.",
			opencl.DefaultLibraryEnv, opencl.DefaultLibraryName))
	flagFormat       = flag.String("format", "text", "Output format: text, json or prototext.")
	flagQuietDrivers = flag.Bool("quiet_drivers", false,
		"Suppress the logging some OpenCL drivers write directly to stderr while the platforms are queried.")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	r := &report{
		Libraries: opencl.AvailableLibraries(),
		ICDs:      opencl.InstalledICDs(),
	}
	var lib *opencl.Library
	var err error
	if *flagLibrary == "" {
		lib, err = opencl.DefaultLibrary()
	} else {
		lib, err = opencl.GetLibrary(*flagLibrary)
	}
	if err != nil {
		klog.V(1).Infof("Failed to load OpenCL library: %+v", err)
		r.Errors = append(r.Errors, err.Error())
	} else if *flagQuietDrivers {
		opencl.SuppressDriverLoggingHack(func() { r.collectPlatforms(lib) })
	} else {
		r.collectPlatforms(lib)
	}

	if err := writeReport(os.Stdout, *flagFormat, r); err != nil {
		klog.Fatalf("Failed to write report: %+v", err)
	}
}
