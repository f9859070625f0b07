//go:build !unix && !windows

package shelf

import "os"

// No advisory locking on this platform.
func lockFile(*os.File, LockMode) error { return nil }

func unlockFile(*os.File) error { return nil }
