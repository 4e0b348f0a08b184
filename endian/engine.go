// Package endian provides the byte order engine used to decode BFAST containers.
//
// BFAST stores every integer and float little-endian, so decoders use
// GetLittleEndianEngine. The engine is also a binary.AppendByteOrder, which
// the test fixture builders rely on:
//
//	engine := endian.GetLittleEndianEngine()
//	magic := engine.Uint64(data[0:8])
//	buf = engine.AppendUint64(buf, magic)
//
// # Thread Safety
//
// All functions in this package are safe for concurrent use.
// The returned EndianEngine instances are immutable and stateless.
package endian

import (
	"encoding/binary"
	"math"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// Float32 decodes an IEEE 754 single from the first four bytes of b.
func Float32(engine EndianEngine, b []byte) float32 {
	return math.Float32frombits(engine.Uint32(b))
}

// Float64 decodes an IEEE 754 double from the first eight bytes of b.
func Float64(engine EndianEngine, b []byte) float64 {
	return math.Float64frombits(engine.Uint64(b))
}
