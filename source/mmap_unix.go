//go:build unix

package source

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/arloliu/bfast/errs"
)

// Mmap is a read-only memory-mapped file. It implements Slicer, so buffers
// decoded from it alias the mapping instead of being copied.
type Mmap struct {
	data []byte
	fd   int
}

var (
	_ ByteSource = (*Mmap)(nil)
	_ Slicer     = (*Mmap)(nil)
)

// OpenMmap maps path read-only. The mapping is released by Close; slices
// handed out by the decoder are invalid afterwards.
func OpenMmap(path string) (*Mmap, error) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	var stat unix.Stat_t
	if err := unix.Fstat(fd, &stat); err != nil {
		_ = unix.Close(fd)
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	m := &Mmap{fd: fd}
	if stat.Size == 0 {
		// mmap rejects zero-length mappings.
		return m, nil
	}

	data, err := unix.Mmap(fd, 0, int(stat.Size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		_ = unix.Close(fd)
		return nil, fmt.Errorf("mmap %s: %w", path, err)
	}
	m.data = data

	return m, nil
}

// Size returns the mapped length.
func (m *Mmap) Size() int64 {
	return int64(len(m.data))
}

// ReadAt implements io.ReaderAt by copying from the mapping.
func (m *Mmap) ReadAt(p []byte, off int64) (int, error) {
	if m.fd < 0 {
		return 0, errs.ErrSourceClosed
	}
	b, err := sliceBounds(m.data, off, int64(len(p)))
	if err != nil {
		return 0, err
	}

	return copy(p, b), nil
}

// Slice returns a view into the mapping.
func (m *Mmap) Slice(off, length int64) ([]byte, error) {
	if m.fd < 0 {
		return nil, errs.ErrSourceClosed
	}

	return sliceBounds(m.data, off, length)
}

// Close unmaps the file and closes its descriptor.
func (m *Mmap) Close() error {
	if m.fd < 0 {
		return nil
	}

	var firstErr error
	if m.data != nil {
		if err := unix.Munmap(m.data); err != nil {
			firstErr = fmt.Errorf("munmap: %w", err)
		}
		m.data = nil
	}
	if err := unix.Close(m.fd); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("close: %w", err)
	}
	m.fd = -1

	return firstErr
}
