package compress

import (
	"fmt"
	"strings"

	"github.com/arloliu/bfast/errs"
	"github.com/arloliu/bfast/format"
)

// Compressor compresses a payload. The decoder never compresses; producers and
// test fixtures do.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
}

// Decompressor inflates a payload produced by the matching Compressor.
//
// The returned slice is newly allocated and owned by the caller; the input is
// not modified. Implementations are safe for concurrent use.
type Decompressor interface {
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions.
type Codec interface {
	Compressor
	Decompressor
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves a built-in Codec for the specified compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: %s", errs.ErrUnknownCodec, compressionType)
}

// Decode inflates a named payload according to its name suffix.
//
// Parameters:
//   - name: Payload name, possibly ending in .zst, .s2 or .lz4
//   - data: Stored payload bytes
//
// Returns:
//   - []byte: Inflated payload (data itself when the name has no codec suffix)
//   - string: Name with the codec suffix removed
//   - error: Decompression error naming the payload
func Decode(name string, data []byte) ([]byte, string, error) {
	ct := format.CompressionFromName(name)
	base := strings.TrimSuffix(name, ct.Extension())

	codec, err := GetCodec(ct)
	if err != nil {
		return nil, base, err
	}

	out, err := codec.Decompress(data)
	if err != nil {
		return nil, base, fmt.Errorf("decompress %q (%s): %w", name, ct, err)
	}

	return out, base, nil
}
