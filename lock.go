// OS-level advisory locks on the library file.
//
// Locks are taken only for the duration of a single load or in-place save:
// shared while reading, exclusive while truncating and rewriting. They keep
// a second shelf process from reading a half-written file. Write-then-rename
// saves do not need them because the rename is atomic.
package shelf

import "os"

// LockMode selects shared (read) or exclusive (write) locking.
type LockMode int

const (
	LockShared LockMode = iota
	LockExclusive
)

// withLock runs fn while holding a lock of the given mode on f. The lock
// is released before withLock returns, even if fn fails.
func withLock(f *os.File, mode LockMode, fn func() error) error {
	if err := lockFile(f, mode); err != nil {
		return err
	}
	err := fn()
	if uerr := unlockFile(f); err == nil {
		err = uerr
	}
	return err
}
