// Package shelf manages a personal book collection persisted to a single
// JSON file. The collection is held in memory as an ordered Store and is
// rewritten to disk in full after every change.
//
// Books are addressed by position. Positions are not stable: deleting a
// book shifts every later book down by one.
package shelf

import "errors"

// Sentinel errors for programmatic handling. ErrCorruptFile and ErrWrite
// are fatal to an interactive session; the rest are recoverable input
// conditions.
var (
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrInvalidIndex    = errors.New("invalid index")
	ErrInvalidPages    = errors.New("invalid page count")
	ErrCorruptFile     = errors.New("corrupt library file")
	ErrWrite           = errors.New("write library file")
	ErrDecompress      = errors.New("decompression failed")
	ErrClosed          = errors.New("library is closed")
)
