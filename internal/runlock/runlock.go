// Package runlock serializes machine-mutating runs through a file lock.
// Two concurrent installs could interleave package-manager invocations,
// so only one run may hold the lock at a time.
package runlock

import (
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/outfitterhq/outfitter/internal/errors"
)

const lockFileName = "outfitter.lock"

// Lock is a held run lock. Release it when the run finishes.
type Lock struct {
	fl *flock.Flock
}

// DefaultPath returns the lock file location, preferring the user cache
// directory with a fallback to the system temp directory.
func DefaultPath() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "outfitter", lockFileName)
	}
	return filepath.Join(os.TempDir(), lockFileName)
}

// Acquire takes the lock at path without blocking. A lock held by
// another run is an environment error naming the path, so the user can
// find the competing process.
func Acquire(path string) (*Lock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.Wrap(err, "creating lock directory")
	}

	fl := flock.New(path)
	locked, err := fl.TryLock()
	if err != nil {
		return nil, errors.Wrap(err, "acquiring run lock")
	}
	if !locked {
		return nil, errors.Environmentf("another outfitter run holds the lock at %s", path)
	}
	return &Lock{fl: fl}, nil
}

// Release frees the lock. Safe to call on a nil lock.
func (l *Lock) Release() error {
	if l == nil || l.fl == nil {
		return nil
	}
	return l.fl.Unlock()
}

// Path returns the lock file path.
func (l *Lock) Path() string {
	if l == nil || l.fl == nil {
		return ""
	}
	return l.fl.Path()
}
