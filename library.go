// Library lifecycle and persistence.
//
// A Library binds a Store to the file it was loaded from. The file is read
// once by Open and rewritten in full by every Save; no handle to it is kept
// between the two. The containing directory is opened as an os.Root so all
// file operations (including the temporary and backup files) stay inside it.
//
// Save replaces the file by writing <name>.tmp and renaming it over the
// original, so a crash mid-save leaves the previous version intact. A
// leftover .tmp from such a crash is removed on the next Open.
// Config.InPlace restores plain truncate-and-rewrite, guarded by an
// exclusive lock.
package shelf

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
)

// Config holds library options. The zero value is usable.
type Config struct {
	HashAlgorithm int         // 1=xxHash3, 2=FNV1a, 3=Blake2b (default and fallback xxHash3)
	Indent        bool        // Pretty-print the file
	InPlace       bool        // Truncate and rewrite instead of write-then-rename
	SyncWrites    bool        // Call fsync before the new file becomes visible
	Backup        bool        // Keep a compressed copy of the previous file
	Logger        *log.Logger // Warnings; nil discards
}

// Library is an open collection file.
type Library struct {
	root   *os.Root
	name   string
	path   string
	config Config
	store  *Store
	sum    string // fingerprint of the file as last read or written
	closed bool
}

// Open loads the library file at path. A missing file yields an empty
// collection; the file is created by the first Save. Content that cannot
// be decoded is reported as ErrCorruptFile.
func Open(path string, config Config) (*Library, error) {
	lib, err := attach(path, config)
	if err != nil {
		return nil, err
	}

	// Crash detection
	tmp := lib.name + ".tmp"
	if _, err := lib.root.Stat(tmp); err == nil {
		lib.config.Logger.Printf("removing %s left by an interrupted save", filepath.Join(filepath.Dir(path), tmp))
		if err := lib.root.Remove(tmp); err != nil {
			lib.root.Close()
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
	}

	data, err := read(lib.root, lib.name)
	if err != nil {
		lib.root.Close()
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if data != nil {
		store, err := Decode(data)
		if err != nil {
			lib.root.Close()
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		lib.store = store
	}
	lib.sum = fingerprint(data, lib.config.HashAlgorithm)

	return lib, nil
}

// attach opens the directory holding path and applies config defaults
// without touching the library file itself.
func attach(path string, config Config) (*Library, error) {
	// Unknown algorithms would fingerprint everything as "" and hide
	// external changes.
	if config.HashAlgorithm < AlgXXHash3 || config.HashAlgorithm > AlgBlake2b {
		config.HashAlgorithm = AlgXXHash3
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard, "", 0)
	}

	dir, name := filepath.Split(path)
	if name == "" {
		return nil, &os.PathError{Op: "open", Path: path, Err: os.ErrInvalid}
	}
	if dir == "" {
		dir = "."
	}

	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, err
	}

	return &Library{
		root:   root,
		name:   name,
		path:   path,
		config: config,
		store:  &Store{},
	}, nil
}

// Close releases the directory handle. It does not save.
func (l *Library) Close() error {
	if l.closed {
		return nil
	}
	l.closed = true
	return l.root.Close()
}

// Store returns the in-memory collection. Changes to it are persisted by
// the next Save.
func (l *Library) Store() *Store {
	return l.store
}

// Path returns the library file path as given to Open.
func (l *Library) Path() string {
	return l.path
}

// Save rewrites the library file from the current Store. Every failure is
// reported as ErrWrite; the on-disk file is left as it was unless InPlace
// is set.
func (l *Library) Save() error {
	if l.closed {
		return ErrClosed
	}

	data, err := Encode(l.store, l.config.Indent)
	if err != nil {
		return fmt.Errorf("%w: encode: %w", ErrWrite, err)
	}

	prev, err := read(l.root, l.name)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	if fingerprint(prev, l.config.HashAlgorithm) != l.sum {
		l.config.Logger.Printf("%s changed on disk since it was last read; overwriting", l.path)
	}

	if l.config.Backup && prev != nil {
		if err := l.backup(prev); err != nil {
			return fmt.Errorf("%w: backup: %w", ErrWrite, err)
		}
	}

	if l.config.InPlace {
		err = l.overwrite(data)
	} else {
		err = l.replace(data)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}

	l.sum = fingerprint(data, l.config.HashAlgorithm)
	return nil
}

// replace writes data to <name>.tmp and renames it over the library file.
// The temporary file is removed on any failure.
func (l *Library) replace(data []byte) error {
	tmp := l.name + ".tmp"
	f, err := l.root.Create(tmp)
	if err != nil {
		return err
	}

	fail := func(err error) error {
		f.Close()
		l.root.Remove(tmp)
		return err
	}

	if _, err := f.Write(data); err != nil {
		return fail(err)
	}
	if l.config.SyncWrites {
		if err := f.Sync(); err != nil {
			return fail(err)
		}
	}
	if err := f.Close(); err != nil {
		l.root.Remove(tmp)
		return err
	}
	if err := l.root.Rename(tmp, l.name); err != nil {
		l.root.Remove(tmp)
		return err
	}
	return nil
}

// overwrite truncates and rewrites the library file under an exclusive
// lock.
func (l *Library) overwrite(data []byte) error {
	f, err := l.root.OpenFile(l.name, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return err
	}

	err = withLock(f, LockExclusive, func() error {
		if err := f.Truncate(0); err != nil {
			return err
		}
		if _, err := f.WriteAt(data, 0); err != nil {
			return err
		}
		if l.config.SyncWrites {
			return f.Sync()
		}
		return nil
	})
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

// backup stores a compressed copy of prev next to the library file.
func (l *Library) backup(prev []byte) error {
	f, err := l.root.OpenFile(l.name+BackupSuffix, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	if _, err := f.Write(compress(prev)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// read returns the full contents of name under a shared lock, or nil
// without error if the file does not exist.
func read(root *os.Root, name string) ([]byte, error) {
	f, err := root.Open(name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var data []byte
	err = withLock(f, LockShared, func() error {
		var rerr error
		data, rerr = io.ReadAll(f)
		return rerr
	})
	if err != nil {
		return nil, err
	}
	if data == nil {
		data = []byte{}
	}
	return data, nil
}

// Load reads the library file at path with the default Config.
func Load(path string) (*Store, error) {
	lib, err := Open(path, Config{})
	if err != nil {
		return nil, err
	}
	defer lib.Close()
	return lib.Store(), nil
}

// Save writes s to path with the default Config, replacing any existing
// file regardless of its content.
func Save(s *Store, path string) error {
	lib, err := attach(path, Config{})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	defer lib.Close()
	lib.store = s
	return lib.Save()
}
