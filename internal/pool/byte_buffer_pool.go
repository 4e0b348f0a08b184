// Package pool provides reusable scratch buffers for codecs that must guess
// their output size.
package pool

import "sync"

const (
	ScratchDefaultSize  = 1024 * 64        // 64KiB
	ScratchMaxThreshold = 1024 * 1024 * 16 // 16MiB
)

// ByteBuffer is a growable scratch buffer. Its contents are only valid until
// the buffer is returned to its pool.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified capacity.
func NewByteBuffer(capacity int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, capacity),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset empties the buffer but keeps the allocated memory.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// Resize sets the length of the buffer to n, reallocating when n exceeds the
// capacity. Existing contents are not preserved across a reallocation.
// Panics if n is negative.
func (bb *ByteBuffer) Resize(n int) {
	if n < 0 {
		panic("Resize: negative length")
	}
	if n > cap(bb.B) {
		bb.B = make([]byte, n)
		return
	}
	bb.B = bb.B[:n]
}

// Clone returns a copy of the first n bytes, detached from the buffer.
func (bb *ByteBuffer) Clone(n int) []byte {
	out := make([]byte, n)
	copy(out, bb.B[:n])

	return out
}

// ByteBufferPool is a pool of ByteBuffers backed by sync.Pool.
//
// Buffers that grew beyond maxThreshold are dropped on Put instead of being
// retained.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a new ByteBufferPool with buffers of the specified default size.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var scratchPool = NewByteBufferPool(ScratchDefaultSize, ScratchMaxThreshold)

// GetScratch retrieves a ByteBuffer from the default scratch pool.
func GetScratch() *ByteBuffer {
	return scratchPool.Get()
}

// PutScratch returns a ByteBuffer to the default scratch pool.
func PutScratch(bb *ByteBuffer) {
	scratchPool.Put(bb)
}
