// Package hash wraps xxHash64 for content fingerprints.
package hash

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// Digest accumulates length-prefixed fields into an xxHash64, so that the
// field sequence ("ab", "c") hashes differently from ("a", "bc").
type Digest struct {
	d       *xxhash.Digest
	scratch [8]byte
}

// New returns an empty Digest.
func New() *Digest {
	return &Digest{d: xxhash.New()}
}

// WriteUint64 appends a fixed-width value.
func (d *Digest) WriteUint64(v uint64) {
	binary.LittleEndian.PutUint64(d.scratch[:], v)
	_, _ = d.d.Write(d.scratch[:])
}

// WriteString appends a length-prefixed string.
func (d *Digest) WriteString(s string) {
	d.WriteUint64(uint64(len(s)))
	_, _ = d.d.WriteString(s)
}

// WriteBytes appends a length-prefixed byte slice.
func (d *Digest) WriteBytes(b []byte) {
	d.WriteUint64(uint64(len(b)))
	_, _ = d.d.Write(b)
}

// Sum64 returns the current hash.
func (d *Digest) Sum64() uint64 {
	return d.d.Sum64()
}
