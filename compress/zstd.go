package compress

// ZstdCompressor handles .zst payloads in the Zstandard frame format.
// The implementation is selected at build time, see zstd_pure.go and zstd_cgo.go.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
