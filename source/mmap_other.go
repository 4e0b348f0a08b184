//go:build !unix

package source

import (
	"os"

	"github.com/arloliu/bfast/errs"
)

// Mmap falls back to reading the whole file into memory on platforms
// without unix.Mmap.
type Mmap struct {
	data   []byte
	closed bool
}

var (
	_ ByteSource = (*Mmap)(nil)
	_ Slicer     = (*Mmap)(nil)
)

// OpenMmap reads path into memory.
func OpenMmap(path string) (*Mmap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return &Mmap{data: data}, nil
}

// Size returns the file length.
func (m *Mmap) Size() int64 {
	return int64(len(m.data))
}

// ReadAt implements io.ReaderAt.
func (m *Mmap) ReadAt(p []byte, off int64) (int, error) {
	if m.closed {
		return 0, errs.ErrSourceClosed
	}
	b, err := sliceBounds(m.data, off, int64(len(p)))
	if err != nil {
		return 0, err
	}

	return copy(p, b), nil
}

// Slice returns a view into the file contents.
func (m *Mmap) Slice(off, length int64) ([]byte, error) {
	if m.closed {
		return nil, errs.ErrSourceClosed
	}

	return sliceBounds(m.data, off, length)
}

// Close releases the file contents.
func (m *Mmap) Close() error {
	m.data = nil
	m.closed = true

	return nil
}
