//go:build linux

package cfgfile

import "golang.org/x/sys/unix"

// Open file description locks conflict with classic POSIX record locks held
// by the daemon, and also between descriptors of the same process, so
// goroutines serialize the same way separate processes do.
const (
	setLockCmd     = unix.F_OFD_SETLK
	setLockWaitCmd = unix.F_OFD_SETLKW
)
