// Package filex holds small filesystem helpers for the client's data
// directory.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// AppDirName is the directory name used under the user's config dir.
const AppDirName = "juridik"

// DefaultDataDir returns <user config dir>/juridik, or ./.juridik when the
// platform does not define a user config directory.
func DefaultDataDir() string {
	if base, err := os.UserConfigDir(); err == nil && base != "" {
		return filepath.Join(base, AppDirName)
	}
	return "." + AppDirName
}

// EnsurePrivateDir creates dir (and parents) with owner-only permissions and
// returns its absolute path. An existing directory is left as is.
func EnsurePrivateDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("abs %s: %w", dir, err)
	}

	if err := os.MkdirAll(abs, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", abs, err)
	}

	return abs, nil
}

// IsPrivateDir reports whether dir exists, is a directory, and grants no
// permissions to group or others. On Windows only existence is checked.
func IsPrivateDir(dir string) bool {
	fi, err := os.Stat(dir)
	if err != nil || !fi.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return fi.Mode().Perm()&0o077 == 0
}
