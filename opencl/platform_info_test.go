package opencl

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func newInfoFakeAPI() *fakeAPI {
	return &fakeAPI{
		platforms: []PlatformID{0x1000, 0x2000},
		info: map[PlatformID]map[PlatformInfoParam]string{
			0x1000: {
				PlatformName:         "Portable Computing Language",
				PlatformVendor:       "The pocl project",
				PlatformVersion:      "OpenCL 3.0 PoCL 5.0",
				PlatformProfile:      "FULL_PROFILE",
				PlatformExtensions:   "cl_khr_icd cl_khr_fp64  cl_pocl_content_size",
				PlatformICDSuffixKHR: "POCL",
			},
			0x2000: {
				PlatformName:       "Broken Platform",
				PlatformProfile:    "EMBEDDED_PROFILE",
				PlatformExtensions: "",
			},
		},
	}
}

func TestLibrary_Platforms(t *testing.T) {
	lib := newFakeLibrary(t, newInfoFakeAPI())
	platforms := capture(lib.Platforms()).Test(t)
	require.Len(t, platforms, 2)
	require.Equal(t, PlatformID(0x1000), platforms[0].ID())
	require.Equal(t, PlatformID(0x2000), platforms[1].ID())
	require.Same(t, lib, platforms[0].Library())

	empty := newFakeLibrary(t, &fakeAPI{noICD: true})
	require.Empty(t, capture(empty.Platforms()).Test(t))

	failing := newFakeLibrary(t, &fakeAPI{failure: OutOfResources})
	_, err := failing.Platforms()
	require.Equal(t, OutOfResources, StatusOf(err))
}

func TestPlatform_Describe(t *testing.T) {
	lib := newFakeLibrary(t, newInfoFakeAPI())

	info := capture(lib.Platform(0x1000).Describe()).Test(t)
	want := PlatformInfo{
		ID:         0x1000,
		Name:       "Portable Computing Language",
		Vendor:     "The pocl project",
		Version:    "OpenCL 3.0 PoCL 5.0",
		Profile:    "FULL_PROFILE",
		Extensions: []string{"cl_khr_icd", "cl_khr_fp64", "cl_pocl_content_size"},
		ICDSuffix:  "POCL",
	}
	if diff := cmp.Diff(want, info); diff != "" {
		t.Errorf("Describe() mismatch (-want +got):\n%s", diff)
	}

	// Missing vendor and version are reported, but the remaining fields are still collected.
	info, err := lib.Platform(0x2000).Describe()
	require.Error(t, err)
	fmt.Printf("Received expected error: %v\n", err)
	require.ErrorContains(t, err, PlatformVendor.String())
	require.ErrorContains(t, err, PlatformVersion.String())
	require.NotContains(t, err.Error(), PlatformICDSuffixKHR.String())
	want = PlatformInfo{
		ID:         0x2000,
		Name:       "Broken Platform",
		Profile:    "EMBEDDED_PROFILE",
		Extensions: []string{},
	}
	if diff := cmp.Diff(want, info); diff != "" {
		t.Errorf("Describe() mismatch (-want +got):\n%s", diff)
	}
}

func TestPlatform_InfoString(t *testing.T) {
	lib := newFakeLibrary(t, newInfoFakeAPI())
	platform := lib.Platform(0x1000)
	require.Equal(t, "Portable Computing Language", capture(platform.Name()).Test(t))
	require.Equal(t, "POCL", capture(platform.ICDSuffix()).Test(t))

	_, err := lib.Platform(0x9999).Name()
	require.Equal(t, InvalidPlatform, StatusOf(err))
	require.ErrorContains(t, err, GetPlatformInfoFunctionName)

	require.Equal(t, "CL_PLATFORM_NAME", PlatformName.String())
	require.Equal(t, "CL_PLATFORM_INFO(0x0999)", PlatformInfoParam(0x0999).String())
}

// TestPlatform_DescribeInstalled requires an OpenCL library installed, and it is skipped otherwise.
func TestPlatform_DescribeInstalled(t *testing.T) {
	lib := getLibrary(t)
	platforms := capture(lib.Platforms()).Test(t)
	fmt.Printf("%s: %d platform(s)\n", lib, len(platforms))
	for _, platform := range platforms {
		info := capture(platform.Describe()).Test(t)
		require.NotEmpty(t, info.Name)
		require.Contains(t, []string{"FULL_PROFILE", "EMBEDDED_PROFILE"}, info.Profile)
		fmt.Printf("\t%s: %q (%s), %s\n", platform, info.Name, info.Vendor, info.Version)
	}
}
