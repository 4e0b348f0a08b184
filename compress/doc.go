// Package compress provides the codecs used for compressed payloads inside a BFAST container.
//
// BFAST itself stores raw bytes. Producers that compress a payload mark it by name
// suffix, and consumers inflate it on access:
//
//	brick.png      -> stored as is
//	brick.png.zst  -> Zstandard
//	brick.png.s2   -> S2
//	brick.png.lz4  -> LZ4 block
//
// Decode inflates a named payload and reports the name with the suffix removed:
//
//	data, base, err := compress.Decode("textures/brick.png.zst", payload)
//	// base == "textures/brick.png"
//
// Zstandard uses github.com/klauspost/compress/zstd by default. Building with
// cgo and the gozstd tag switches to github.com/valyala/gozstd.
package compress
