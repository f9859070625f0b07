//go:build unix

package shelf

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestExclusiveLockBlocks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.json")
	os.WriteFile(path, []byte("[]"), 0644)

	// flock is per open file description, so two opens conflict even
	// within one process.
	f1, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f1.Close()
	f2, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f2.Close()

	if err := lockFile(f1, LockExclusive); err != nil {
		t.Fatalf("lock f1: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		done <- withLock(f2, LockShared, func() error { return nil })
	}()

	select {
	case <-done:
		t.Fatal("shared lock acquired while exclusive lock held")
	case <-time.After(100 * time.Millisecond):
	}

	if err := unlockFile(f1); err != nil {
		t.Fatalf("unlock f1: %v", err)
	}

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("withLock: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("shared lock not acquired after release")
	}
}

func TestSharedLocksCoexist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.json")
	os.WriteFile(path, []byte("[]"), 0644)

	f1, _ := os.Open(path)
	defer f1.Close()
	f2, _ := os.Open(path)
	defer f2.Close()

	err := withLock(f1, LockShared, func() error {
		return withLock(f2, LockShared, func() error { return nil })
	})
	if err != nil {
		t.Errorf("nested shared locks: %v", err)
	}
}
