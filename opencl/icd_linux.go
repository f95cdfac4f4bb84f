//go:build linux

package opencl

import (
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"k8s.io/klog/v2"
)

// This file includes the diagnostics of the OpenCL installation, logged when no platforms are found.

const (
	// ICDVendorsEnv is the environment variable used by the ICD loaders to override the directory with the
	// ICD files.
	ICDVendorsEnv = "OCL_ICD_VENDORS"

	// DefaultICDVendorsDir is where vendor drivers register their ICD files.
	DefaultICDVendorsDir = "/etc/OpenCL/vendors"
)

func icdVendors() string {
	if vendors := os.Getenv(ICDVendorsEnv); vendors != "" {
		return vendors
	}
	return DefaultICDVendorsDir
}

// icdFiles returns the ICD files the ICD loader reads: OCL_ICD_VENDORS may point to a directory or to a single file.
func icdFiles() []string {
	vendors := icdVendors()
	if strings.HasSuffix(vendors, ".icd") {
		return []string{vendors}
	}
	files, err := filepath.Glob(path.Join(vendors, "*.icd"))
	if err != nil {
		klog.Errorf("Failed to list ICD files in %q: %v", vendors, err)
		return nil
	}
	return files
}

// InstalledICDs returns the vendor drivers registered with the ICD loader.
func InstalledICDs() []ICD {
	var icds []ICD
	for _, file := range icdFiles() {
		contents, err := os.ReadFile(file)
		if err != nil {
			klog.V(1).Infof("Failed to read ICD file %q: %v", file, err)
			continue
		}
		library := strings.TrimSpace(string(contents))
		if library == "" {
			continue
		}
		icds = append(icds, ICD{File: file, Library: library})
	}
	return icds
}

// gpuDeviceNodes are the device files created by the GPU kernel drivers.
var gpuDeviceNodes = []string{"/dev/dri/renderD*", "/dev/nvidia[0-9]*", "/dev/kfd"}

// hasGPUDeviceNodes tries to guess if there is an actual GPU installed (as opposed to only the drivers installed,
// but no actual hardware), by checking for the presence of the device files.
func hasGPUDeviceNodes() bool {
	return slices.ContainsFunc(gpuDeviceNodes, func(pattern string) bool {
		matches, err := filepath.Glob(pattern)
		return err == nil && len(matches) > 0
	})
}

var onceNoPlatformsHints sync.Once

// logNoPlatformsHints logs, once, the likely reasons for an OpenCL library to report no platforms.
//
// To disable this check set GOOPENCL_CHECKS=no or GOOPENCL_CHECKS=0.
func logNoPlatformsHints(l *Library) {
	if !checksEnabled() {
		return
	}
	onceNoPlatformsHints.Do(func() {
		icds := InstalledICDs()
		if len(icds) == 0 {
			klog.Warningf("%s reports no OpenCL platforms, and no ICD files (*.icd) were found in %q (set by %s): "+
				"install a vendor OpenCL driver, e.g. pocl-opencl-icd (CPU), intel-opencl-icd, mesa-opencl-icd or "+
				"the one distributed with the Nvidia drivers. "+
				"To disable this warning, set the environment variable `export %s=0`.",
				l, icdVendors(), ICDVendorsEnv, ChecksEnv)
			return
		}
		for _, icd := range icds {
			if !path.IsAbs(icd.Library) {
				continue
			}
			if _, err := os.Stat(icd.Library); err != nil {
				klog.Warningf("ICD file %q points to driver library %q, which is not accessible: %v",
					icd.File, icd.Library, err)
			}
		}
		if !hasGPUDeviceNodes() {
			klog.Warningf("%s reports no OpenCL platforms with %d ICD(s) installed, and no GPU device files (%s) "+
				"were found: the drivers may not find any hardware, or the current user may lack permissions to "+
				"access it (check the video and render groups).",
				l, len(icds), strings.Join(gpuDeviceNodes, ", "))
		}
	})
}

// checksEnabled reports whether diagnostics are enabled by ChecksEnv.
func checksEnabled() bool {
	checks := strings.ToUpper(os.Getenv(ChecksEnv))
	return checks != "0" && checks != "FALSE" && checks != "NO"
}
