package platform

import (
	"os"
	"path/filepath"
	"strings"
)

// DevDirName is the directory under os.TempDir() used as the dev sandbox.
const DevDirName = "notebook-dev"

// IsDevRun reports whether the process runs via `go run` or `go test`.
// Both build the binary in a temporary directory; test binaries end in .test.
func IsDevRun() bool {
	exe, err := os.Executable()
	if err != nil {
		return false
	}

	if strings.HasPrefix(strings.ToLower(exe), strings.ToLower(os.TempDir())) {
		return true
	}
	return strings.HasSuffix(exe, ".test") || strings.HasSuffix(exe, ".test.exe")
}

// ResolveDataPath applies the dev sandbox rules to userPath.
// With sandbox false the path is used as is ("." when empty). Otherwise paths
// already inside the temp directory are trusted, and anything else is re-rooted
// under os.TempDir()/notebook-dev/<base name>.
func ResolveDataPath(userPath string, sandbox bool) string {
	if !sandbox {
		if userPath == "" {
			return "."
		}
		return userPath
	}

	tempRoot := os.TempDir()
	if userPath != "" {
		clean := filepath.Clean(userPath)
		if rel, err := filepath.Rel(tempRoot, clean); err == nil && filepath.IsAbs(clean) && !strings.HasPrefix(rel, "..") {
			return clean
		}
	}

	sub := filepath.Base(filepath.Clean(userPath))
	if userPath == "" || sub == "." || sub == string(os.PathSeparator) || sub == ".." {
		sub = "default"
	}
	return filepath.Join(tempRoot, DevDirName, sub)
}
