package snapshot

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
)

// FilePair names the current and previous file of one record type.
type FilePair struct {
	Current  string
	Previous string
}

// Rollover promotes the current-generation file to become the previous
// generation for the next run. The copy is written to a temp file in
// the destination directory and renamed into place, so a reader never
// observes a half-written baseline.
func Rollover(currentPath, previousPath string) error {
	src, err := os.Open(currentPath)
	if err != nil {
		return fmt.Errorf("rollover: open current: %w", err)
	}
	defer src.Close()

	dir := filepath.Dir(previousPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("rollover: create baseline dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(previousPath)+".tmp-*")
	if err != nil {
		return fmt.Errorf("rollover: create temp: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("rollover: copy: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rollover: close temp: %w", err)
	}

	if err := os.Rename(tmpName, previousPath); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rollover: rename: %w", err)
	}
	return nil
}

// RunLock is a filesystem mutex held for the duration of one run.
// Snapshot files and the baseline rollover are shared across scheduled
// runs, so overlapping runs must be excluded.
type RunLock struct {
	path string
}

// AcquireRunLock creates the lock file exclusively. It fails if another
// run already holds the lock.
func AcquireRunLock(path string) (*RunLock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create lock dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return nil, fmt.Errorf("another run holds the lock at %s", path)
		}
		return nil, fmt.Errorf("acquire run lock: %w", err)
	}
	_, _ = f.WriteString(strconv.Itoa(os.Getpid()) + "\n")
	if err := f.Close(); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("write run lock: %w", err)
	}
	return &RunLock{path: path}, nil
}

// Release removes the lock file.
func (l *RunLock) Release() error {
	return os.Remove(l.path)
}
