//go:build unix && !linux

package cfgfile

import "golang.org/x/sys/unix"

// Classic POSIX record locks are per process: two descriptors opened by the
// same process never block each other, and closing any of them drops the
// process's locks on the file. Cross-process exclusion still holds.
const (
	setLockCmd     = unix.F_SETLK
	setLockWaitCmd = unix.F_SETLKW
)
