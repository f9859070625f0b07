// Compressed backups of the previous library file.
//
// With Config.Backup set, Save copies the bytes it is about to replace into
// <name>.bak as a single zstd frame. Only the most recent previous version
// is kept.
package shelf

import (
	"fmt"
	"os"

	"github.com/klauspost/compress/zstd"
)

// Shared encoder/decoder; both are safe for concurrent use and expensive
// to construct.
var (
	zstdEncoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	zstdDecoder, _ = zstd.NewReader(nil)
)

// BackupSuffix is appended to the library filename for the backup file.
const BackupSuffix = ".bak"

func compress(data []byte) []byte {
	return zstdEncoder.EncodeAll(data, nil)
}

func decompress(data []byte) ([]byte, error) {
	out, err := zstdDecoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: zstd: %w", ErrDecompress, err)
	}
	return out, nil
}

// LoadBackup reads the backup written alongside the library file at path
// and decodes it into a Store.
func LoadBackup(path string) (*Store, error) {
	raw, err := os.ReadFile(path + BackupSuffix)
	if err != nil {
		return nil, err
	}
	data, err := decompress(raw)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}
