package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/gomlx/goopencl/opencl"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func newTestReport() *report {
	return &report{
		Libraries: map[string]string{"OpenCL": "/usr/lib/x86_64-linux-gnu/libOpenCL.so.1"},
		Library:   `OpenCL "OpenCL" library (/usr/lib/x86_64-linux-gnu/libOpenCL.so.1)`,
		ICDs:      []opencl.ICD{{File: "/etc/OpenCL/vendors/pocl.icd", Library: "libpocl.so.2"}},
		Platforms: []opencl.PlatformInfo{{
			ID:         0x7f00dead,
			Name:       "Portable Computing Language",
			Vendor:     "The pocl project",
			Version:    "OpenCL 3.0 PoCL 5.0",
			Profile:    "FULL_PROFILE",
			Extensions: []string{"cl_khr_icd", "cl_khr_fp64"},
			ICDSuffix:  "POCL",
		}},
		Errors: []string{"failed to query CL_PLATFORM_VENDOR"},
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeReport(&buf, "text", newTestReport()))
	out := buf.String()
	fmt.Println(out)
	for _, want := range []string{
		"OpenCL: /usr/lib/x86_64-linux-gnu/libOpenCL.so.1",
		"/etc/OpenCL/vendors/pocl.icd: libpocl.so.2",
		"Platforms of OpenCL \"OpenCL\" library (/usr/lib/x86_64-linux-gnu/libOpenCL.so.1): 1",
		"0x7f00dead",
		"Portable Computing Language",
		"FULL_PROFILE",
		"Error: failed to query CL_PLATFORM_VENDOR",
	} {
		require.Contains(t, out, want)
	}

	buf.Reset()
	require.NoError(t, writeReport(&buf, "text", &report{}))
	require.Contains(t, buf.String(), "(none found)")
	require.NotContains(t, buf.String(), "Platforms of")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeReport(&buf, "json", newTestReport()))
	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	want := map[string]any{
		"library":   `OpenCL "OpenCL" library (/usr/lib/x86_64-linux-gnu/libOpenCL.so.1)`,
		"libraries": map[string]any{"OpenCL": "/usr/lib/x86_64-linux-gnu/libOpenCL.so.1"},
		"icds": []any{
			map[string]any{"file": "/etc/OpenCL/vendors/pocl.icd", "library": "libpocl.so.2"},
		},
		"platforms": []any{
			map[string]any{
				"id":         "0x7f00dead",
				"name":       "Portable Computing Language",
				"vendor":     "The pocl project",
				"version":    "OpenCL 3.0 PoCL 5.0",
				"profile":    "FULL_PROFILE",
				"icd_suffix": "POCL",
				"extensions": []any{"cl_khr_icd", "cl_khr_fp64"},
			},
		},
		"errors": []any{"failed to query CL_PLATFORM_VENDOR"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("json report mismatch (-want +got):\n%s", diff)
	}
}

func TestWritePrototext(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeReport(&buf, "prototext", newTestReport()))
	require.Contains(t, buf.String(), `"Portable Computing Language"`)
	require.Contains(t, buf.String(), `"platforms"`)
}

func TestWriteUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := writeReport(&buf, "yaml", newTestReport())
	require.ErrorContains(t, err, `unknown format "yaml"`)
	require.Zero(t, buf.Len())
}
