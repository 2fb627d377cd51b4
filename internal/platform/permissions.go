package platform

import (
	"fmt"
	"os"
	"runtime"
)

// SupportsPermissions reports whether the OS enforces Unix permission bits.
func SupportsPermissions() bool {
	return runtime.GOOS != "windows"
}

// Chmod sets permission bits. It is a no-op where they are not enforced.
func Chmod(path string, mode os.FileMode) error {
	if !SupportsPermissions() {
		return nil
	}
	return os.Chmod(path, mode)
}

// CheckPerm compares the permission bits of path with want. It reports ok
// where permissions are not enforced.
func CheckPerm(path string, want os.FileMode) (got os.FileMode, ok bool, err error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, false, fmt.Errorf("inspecting %s: %w", path, err)
	}
	got = info.Mode().Perm()
	if !SupportsPermissions() {
		return got, true, nil
	}
	return got, got == want, nil
}
