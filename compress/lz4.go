package compress

import (
	"errors"
	"sync"

	"github.com/pierrec/lz4/v4"

	"github.com/arloliu/bfast/internal/pool"
)

// maxLZ4Output bounds the inflated size of one .lz4 payload.
const maxLZ4Output = 256 * 1024 * 1024

var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Compressor handles .lz4 payloads in the LZ4 block format.
// Blocks carry no decompressed size, so Decompress grows its output buffer on demand.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress compresses data into a single LZ4 block.
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	dst := make([]byte, lz4.CompressBlockBound(len(data)))

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst)
	if err != nil {
		return nil, err
	}

	return dst[:n], nil
}

// Decompress inflates one LZ4 block, starting from four times the input size and
// doubling until the block fits or maxLZ4Output is reached. Attempts run in a
// pooled scratch buffer; only the final result is copied out.
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	scratch := pool.GetScratch()
	defer pool.PutScratch(scratch)

	for size := len(data) * 4; ; size *= 2 {
		size = min(size, maxLZ4Output)
		scratch.Resize(size)
		n, err := lz4.UncompressBlock(data, scratch.B)
		if err == nil {
			return scratch.Clone(n), nil
		}
		if !errors.Is(err, lz4.ErrInvalidSourceShortBuffer) || size == maxLZ4Output {
			return nil, err
		}
	}
}
