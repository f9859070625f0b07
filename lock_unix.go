//go:build unix

package shelf

import (
	"os"

	"golang.org/x/sys/unix"
)

func lockFile(f *os.File, mode LockMode) error {
	how := unix.LOCK_SH
	if mode == LockExclusive {
		how = unix.LOCK_EX
	}
	// Blocking: no LOCK_NB.
	return unix.Flock(int(f.Fd()), how)
}

func unlockFile(f *os.File) error {
	return unix.Flock(int(f.Fd()), unix.LOCK_UN)
}
