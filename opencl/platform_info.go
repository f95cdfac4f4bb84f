package opencl

import (
	"fmt"
	"runtime"
	"strings"
	"unsafe"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"k8s.io/klog/v2"
)

// PlatformInfoParam (cl_platform_info) selects the information queried with clGetPlatformInfo.
type PlatformInfoParam uint32

const (
	PlatformProfile    PlatformInfoParam = 0x0900
	PlatformVersion    PlatformInfoParam = 0x0901
	PlatformName       PlatformInfoParam = 0x0902
	PlatformVendor     PlatformInfoParam = 0x0903
	PlatformExtensions PlatformInfoParam = 0x0904

	// PlatformICDSuffixKHR is only available for platforms dispatched by the ICD loader (cl_khr_icd).
	PlatformICDSuffixKHR PlatformInfoParam = 0x0920
)

var platformInfoParamNames = map[PlatformInfoParam]string{
	PlatformProfile:      "CL_PLATFORM_PROFILE",
	PlatformVersion:      "CL_PLATFORM_VERSION",
	PlatformName:         "CL_PLATFORM_NAME",
	PlatformVendor:       "CL_PLATFORM_VENDOR",
	PlatformExtensions:   "CL_PLATFORM_EXTENSIONS",
	PlatformICDSuffixKHR: "CL_PLATFORM_ICD_SUFFIX_KHR",
}

// String implements fmt.Stringer.
func (p PlatformInfoParam) String() string {
	if name, found := platformInfoParamNames[p]; found {
		return name
	}
	return fmt.Sprintf("CL_PLATFORM_INFO(0x%04x)", uint32(p))
}

// Platform is a lightweight reference to an OpenCL platform of a Library -- it doesn't own the underlying object.
type Platform struct {
	library *Library
	id      PlatformID
}

// Platform returns a reference to the platform with the given id, as returned by ReadPlatformIDs.
func (l *Library) Platform(id PlatformID) *Platform {
	return &Platform{library: l, id: id}
}

// Platforms returns all the platforms available in the library.
func (l *Library) Platforms() ([]*Platform, error) {
	count, err := l.PlatformCount()
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}
	ids := make([]PlatformID, count)
	count, err = l.ReadPlatformIDs(ids)
	if err != nil {
		return nil, err
	}
	platforms := make([]*Platform, count)
	for ii, id := range ids[:count] {
		platforms[ii] = l.Platform(id)
	}
	return platforms, nil
}

// ID returns the opaque handle of the platform.
func (p *Platform) ID() PlatformID {
	return p.id
}

// Library returns the library owning the platform.
func (p *Platform) Library() *Library {
	return p.library
}

// String implements fmt.Stringer.
func (p *Platform) String() string {
	return fmt.Sprintf("OpenCL platform 0x%x", uintptr(p.id))
}

// InfoString queries a string parameter of the platform.
func (p *Platform) InfoString(param PlatformInfoParam) (string, error) {
	l := p.library
	l.muNative.Lock()
	defer l.muNative.Unlock()

	var size uintptr
	err := toError(GetPlatformInfoFunctionName, l.api.GetPlatformInfo(p.id, param, 0, nil, &size))
	if err != nil {
		return "", errors.WithMessagef(err, "failed to query size of %s for %s", param, p)
	}
	if size == 0 {
		return "", nil
	}

	buf := make([]byte, size)
	var pinner runtime.Pinner
	defer pinner.Unpin()
	pinner.Pin(&buf[0])
	err = toError(GetPlatformInfoFunctionName, l.api.GetPlatformInfo(p.id, param, size, unsafe.Pointer(&buf[0]), nil))
	if err != nil {
		return "", errors.WithMessagef(err, "failed to query %s for %s", param, p)
	}
	// Strings are returned null-terminated.
	return strings.TrimRight(string(buf), "\x00"), nil
}

// Name of the platform, e.g. "NVIDIA CUDA" or "Portable Computing Language".
func (p *Platform) Name() (string, error) {
	return p.InfoString(PlatformName)
}

// Vendor of the platform.
func (p *Platform) Vendor() (string, error) {
	return p.InfoString(PlatformVendor)
}

// Version of OpenCL supported by the platform, in the form "OpenCL<space><major.minor><space><vendor info>".
func (p *Platform) Version() (string, error) {
	return p.InfoString(PlatformVersion)
}

// Profile is either "FULL_PROFILE" or "EMBEDDED_PROFILE".
func (p *Platform) Profile() (string, error) {
	return p.InfoString(PlatformProfile)
}

// Extensions supported by the platform.
func (p *Platform) Extensions() ([]string, error) {
	extensions, err := p.InfoString(PlatformExtensions)
	if err != nil {
		return nil, err
	}
	return strings.Fields(extensions), nil
}

// ICDSuffix is the function name suffix used by the vendor driver, e.g. "NV" or "POCL".
// Only available for platforms supporting the cl_khr_icd extension.
func (p *Platform) ICDSuffix() (string, error) {
	return p.InfoString(PlatformICDSuffixKHR)
}

// PlatformInfo holds the information of one platform.
type PlatformInfo struct {
	ID                             PlatformID
	Name, Vendor, Version, Profile string
	Extensions                     []string
	ICDSuffix                      string
}

// Describe queries all the information of the platform.
//
// It returns the information it managed to collect, along with the combined errors of the fields it failed to query.
// The ICD suffix is optional, and failing to query it is not an error.
func (p *Platform) Describe() (info PlatformInfo, err error) {
	info.ID = p.id
	for _, field := range []struct {
		param PlatformInfoParam
		value *string
	}{
		{PlatformName, &info.Name},
		{PlatformVendor, &info.Vendor},
		{PlatformVersion, &info.Version},
		{PlatformProfile, &info.Profile},
	} {
		value, fieldErr := p.InfoString(field.param)
		if fieldErr != nil {
			err = multierr.Append(err, fieldErr)
			continue
		}
		*field.value = value
	}
	extensions, fieldErr := p.Extensions()
	if fieldErr != nil {
		err = multierr.Append(err, fieldErr)
	}
	info.Extensions = extensions

	suffix, suffixErr := p.ICDSuffix()
	if suffixErr != nil {
		klog.V(2).Infof("%s has no ICD suffix: %v", p, suffixErr)
	}
	info.ICDSuffix = suffix
	return
}
