// Package lockfile provides an advisory lock shared between processes through
// a lock file created with O_EXCL.
package lockfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const pollInterval = 10 * time.Millisecond

type Lock struct {
	path string
}

func New(path string) *Lock {
	return &Lock{path: path}
}

// Path returns the location of the lock file.
func (l *Lock) Path() string {
	return l.path
}

// Acquire blocks until the lock file could be created or ctx is done.
// A lock file left by a crashed process must be removed by hand.
func (l *Lock) Acquire(ctx context.Context) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		f, err := os.OpenFile(l.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
		if err == nil {
			fmt.Fprintf(f, "%d\n", os.Getpid())
			f.Close()
			return func() {
				os.Remove(l.path)
			}, nil
		}

		if !os.IsExist(err) {
			return nil, fmt.Errorf("failed to acquire lock: %w", err)
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("waiting for lock %s: %w", l.path, ctx.Err())
		case <-ticker.C:
		}
	}
}

// Held reports whether the lock file currently exists.
func (l *Lock) Held() bool {
	_, err := os.Stat(l.path)
	return err == nil
}
