package platform

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/aretw0/notebook/pkg/adapters/fs"
)

// ErrRootNotFound is returned by FindRoot when no notebook marker is found.
var ErrRootNotFound = errors.New("root not found")

// FindRoot looks upwards from startDir for a notebook data directory.
// Markers are the system directory (.notebook), a .git directory or a notes.json file.
// It returns the absolute path of the first directory holding one of them.
func FindRoot(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for dir := abs; ; {
		if hasFile(dir, fs.DefaultSystemDir) || hasFile(dir, ".git") || hasFile(dir, fs.DefaultFile) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrRootNotFound
		}
		dir = parent
	}
}

func hasFile(dir, name string) bool {
	_, err := os.Stat(filepath.Join(dir, name))
	return err == nil
}
