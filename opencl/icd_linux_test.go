package opencl

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInstalledICDs(t *testing.T) {
	dir := t.TempDir()
	for name, contents := range map[string]string{
		"a.icd":     "/opt/a/libOpenCL_a.so\n",
		"b.icd":     "libb_icd.so",
		"empty.icd": "  \n",
		"other.txt": "/opt/other/libother.so",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(contents), 0o644))
	}

	t.Setenv(ICDVendorsEnv, dir)
	require.Equal(t, []ICD{
		{File: filepath.Join(dir, "a.icd"), Library: "/opt/a/libOpenCL_a.so"},
		{File: filepath.Join(dir, "b.icd"), Library: "libb_icd.so"},
	}, InstalledICDs())

	// OCL_ICD_VENDORS can also point to a single file.
	t.Setenv(ICDVendorsEnv, filepath.Join(dir, "b.icd"))
	require.Equal(t, []ICD{{File: filepath.Join(dir, "b.icd"), Library: "libb_icd.so"}}, InstalledICDs())

	t.Setenv(ICDVendorsEnv, filepath.Join(dir, "missing"))
	require.Empty(t, InstalledICDs())
}

func TestChecksEnabled(t *testing.T) {
	for value, want := range map[string]bool{"": true, "1": true, "yes": true, "0": false, "no": false, "False": false} {
		t.Setenv(ChecksEnv, value)
		require.Equalf(t, want, checksEnabled(), "%s=%q", ChecksEnv, value)
	}
}
