//go:build unix

package cfgfile

import (
	"io"
	"os"

	"golang.org/x/sys/unix"

	"github.com/muurk/spnavcfg/internal/logging"
)

func flockFor(mode lockMode) unix.Flock_t {
	lk := unix.Flock_t{
		Type:   unix.F_RDLCK,
		Whence: io.SeekStart,
		Start:  0,
		Len:    0, // whole file, including data appended later
	}
	if mode == lockExclusive {
		lk.Type = unix.F_WRLCK
	}
	return lk
}

// fcntlLock issues a record-lock command, retrying when interrupted by a signal.
func fcntlLock(fd uintptr, cmd int, lk *unix.Flock_t) error {
	for {
		err := unix.FcntlFlock(fd, cmd, lk)
		if err != unix.EINTR {
			return err
		}
	}
}

// lockFile blocks until f holds a whole-file lock of the given mode.
// An immediate attempt is made first so that contention can be logged.
func lockFile(f *os.File, mode lockMode, path string) error {
	lk := flockFor(mode)
	fd := f.Fd()

	err := fcntlLock(fd, setLockCmd, &lk)
	if err == nil {
		return nil
	}
	if err != unix.EAGAIN && err != unix.EACCES {
		return err
	}

	logging.LogLockWait(path, mode.String())
	lk = flockFor(mode)
	return fcntlLock(fd, setLockWaitCmd, &lk)
}

func unlockFile(f *os.File) error {
	lk := unix.Flock_t{
		Type:   unix.F_UNLCK,
		Whence: io.SeekStart,
	}
	return fcntlLock(f.Fd(), setLockCmd, &lk)
}

const lockingSupported = true
