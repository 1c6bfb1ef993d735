package cfgfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"go.uber.org/zap"

	"github.com/muurk/spnavcfg/internal/logging"
)

type lockMode int

const (
	lockShared lockMode = iota
	lockExclusive
)

func (m lockMode) String() string {
	if m == lockExclusive {
		return "exclusive"
	}
	return "shared"
}

// lockedFile is an open config file holding a whole-file advisory lock.
// Close releases the lock before closing the descriptor.
type lockedFile struct {
	*os.File
	path string
}

// openLocked opens path and blocks until it holds a lock of the given mode.
//
// Save replaces the file by rename, so a caller that blocked on the old
// file would otherwise read stale data. After the lock is granted the
// descriptor is compared against what the path names now; on mismatch the
// file is reopened and locked again.
func openLocked(path string, flag int, mode lockMode) (*lockedFile, error) {
	for {
		f, err := os.OpenFile(path, flag, defaultFileMode)
		if err != nil {
			return nil, err
		}

		if err := lockFile(f, mode, path); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("failed to acquire %s lock: %w", mode, err)
		}

		current, err := sameFile(f, path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			_ = unlockFile(f)
			_ = f.Close()
			return nil, err
		}
		if current {
			return &lockedFile{File: f, path: path}, nil
		}

		logging.Debug("Config file was replaced while waiting for lock, retrying",
			zap.String("path", path),
			zap.String("mode", mode.String()),
		)
		_ = unlockFile(f)
		_ = f.Close()
	}
}

// Close releases the lock and closes the file.
func (lf *lockedFile) Close() error {
	unlockErr := unlockFile(lf.File)
	closeErr := lf.File.Close()
	if closeErr != nil {
		return closeErr
	}
	return unlockErr
}

// sameFile reports whether f is still the file that path refers to.
func sameFile(f *os.File, path string) (bool, error) {
	held, err := f.Stat()
	if err != nil {
		return false, err
	}
	named, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	return os.SameFile(held, named), nil
}
