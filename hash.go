// Content fingerprints for the library file.
//
// The Library remembers a 16 hex character hash of the bytes it last read
// or wrote. Before the next save it hashes the file again; a mismatch means
// something outside the session changed the file. Three algorithms are
// supported, selectable via Config.HashAlgorithm.
package shelf

import (
	"fmt"
	"hash/fnv"

	"github.com/zeebo/xxh3"
	"golang.org/x/crypto/blake2b"
)

// Hash algorithm constants.
const (
	AlgXXHash3 = 1 // Default, fastest
	AlgFNV1a   = 2
	AlgBlake2b = 3
)

// fingerprint hashes data with the given algorithm. A nil slice (no file)
// fingerprints as the empty string so that "absent" never equals any
// real content, including an empty file.
func fingerprint(data []byte, alg int) string {
	if data == nil {
		return ""
	}
	switch alg {
	case AlgXXHash3:
		return fmt.Sprintf("%016x", xxh3.Hash(data))
	case AlgFNV1a:
		h := fnv.New64a()
		h.Write(data)
		return fmt.Sprintf("%016x", h.Sum64())
	case AlgBlake2b:
		h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
		h.Write(data)
		return fmt.Sprintf("%016x", h.Sum(nil))
	default:
		return ""
	}
}
