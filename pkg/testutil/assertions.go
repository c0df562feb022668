package testutil

import (
	"os"
	"testing"

	"github.com/arthur-debert/dotprofile/pkg/types"
)

// FileExists reports whether path exists and is not a directory.
func FileExists(fsys types.FS, path string) bool {
	info, err := fsys.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// AssertFileContent checks that a file exists and has the expected content.
func AssertFileContent(t *testing.T, fsys types.FS, path, expected string) {
	t.Helper()

	data, err := fsys.ReadFile(path)
	if err != nil {
		t.Fatalf("File %s does not exist: %v", path, err)
	}
	if string(data) != expected {
		t.Errorf("File %s content mismatch\nExpected: %q\nActual: %q", path, expected, string(data))
	}
}

// AssertNoFile checks that a file does not exist.
func AssertNoFile(t *testing.T, fsys types.FS, path string) {
	t.Helper()

	if _, err := fsys.Lstat(path); !os.IsNotExist(err) {
		t.Errorf("File %s exists but should not", path)
	}
}

// SkipOnWindows skips the test if running on Windows.
func SkipOnWindows(t *testing.T) {
	t.Helper()

	if os.PathSeparator == '\\' {
		t.Skip("Test not supported on Windows")
	}
}
