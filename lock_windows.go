//go:build windows

package shelf

import (
	"os"

	"golang.org/x/sys/windows"
)

// Lock the whole addressable range; the library file is never that large
// but LockFileEx needs an explicit length.
const lockLow, lockHigh = 0xFFFFFFFF, 0xFFFFFFFF

func lockFile(f *os.File, mode LockMode) error {
	var flags uint32
	if mode == LockExclusive {
		flags |= windows.LOCKFILE_EXCLUSIVE_LOCK
	}
	ol := new(windows.Overlapped)
	return windows.LockFileEx(windows.Handle(f.Fd()), flags, 0, lockLow, lockHigh, ol)
}

func unlockFile(f *os.File) error {
	ol := new(windows.Overlapped)
	return windows.UnlockFileEx(windows.Handle(f.Fd()), 0, lockLow, lockHigh, ol)
}
