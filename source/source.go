// Package source provides the random-access byte sources a BFAST container is decoded from.
//
// A ByteSource is an io.ReaderAt with a known Size. Sources that already hold the
// whole container in memory (NewBytes, OpenMmap) also implement Slicer, which lets
// the decoder hand out buffer slices without copying. Cursor adds the seek/readExact
// contract the container decoder consumes.
package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/arloliu/bfast/errs"
)

// ByteSource is a random-access, length-aware byte source.
type ByteSource interface {
	io.ReaderAt
	Size() int64
}

// Slicer is implemented by sources that can return a view of their bytes without copying.
// The returned slice must not be modified and stays valid until the source is closed.
type Slicer interface {
	Slice(off, length int64) ([]byte, error)
}

// Bytes is an in-memory ByteSource.
type Bytes struct {
	data []byte
}

var (
	_ ByteSource = (*Bytes)(nil)
	_ Slicer     = (*Bytes)(nil)
)

// NewBytes wraps data as a ByteSource. The slice is not copied.
func NewBytes(data []byte) *Bytes {
	return &Bytes{data: data}
}

// Size returns the length of the wrapped slice.
func (b *Bytes) Size() int64 {
	return int64(len(b.data))
}

// ReadAt implements io.ReaderAt.
func (b *Bytes) ReadAt(p []byte, off int64) (int, error) {
	return bytes.NewReader(b.data).ReadAt(p, off)
}

// Slice returns data[off:off+length].
func (b *Bytes) Slice(off, length int64) ([]byte, error) {
	return sliceBounds(b.data, off, length)
}

func sliceBounds(data []byte, off, length int64) ([]byte, error) {
	if off < 0 || length < 0 || off > int64(len(data)) || length > int64(len(data))-off {
		return nil, &errs.IOError{Op: "read", Offset: off, Length: length, Err: errs.ErrShortRead}
	}

	return data[off : off+length : off+length], nil
}

// File is a ByteSource backed by an open file.
type File struct {
	f    *os.File
	size int64
}

var _ ByteSource = (*File)(nil)

// OpenFile opens path for random-access reading.
func OpenFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	return &File{f: f, size: info.Size()}, nil
}

// Size returns the file size captured at open time.
func (f *File) Size() int64 {
	return f.size
}

// ReadAt implements io.ReaderAt.
func (f *File) ReadAt(p []byte, off int64) (int, error) {
	if f.f == nil {
		return 0, errs.ErrSourceClosed
	}

	return f.f.ReadAt(p, off)
}

// Close closes the underlying file.
func (f *File) Close() error {
	if f.f == nil {
		return nil
	}
	err := f.f.Close()
	f.f = nil

	return err
}

// Cursor reads a ByteSource sequentially from a movable offset.
//
// Note: Cursor is NOT thread-safe.
type Cursor struct {
	src    ByteSource
	slicer Slicer
	off    int64
}

// NewCursor returns a cursor positioned at offset 0.
func NewCursor(src ByteSource) *Cursor {
	c := &Cursor{src: src}
	if s, ok := src.(Slicer); ok {
		c.slicer = s
	}

	return c
}

// Len returns the length of the underlying source.
func (c *Cursor) Len() int64 {
	return c.src.Size()
}

// Offset returns the current cursor position.
func (c *Cursor) Offset() int64 {
	return c.off
}

// Seek moves the cursor to an absolute offset. Seeking to Len is allowed.
func (c *Cursor) Seek(off int64) error {
	if off < 0 || off > c.src.Size() {
		return &errs.IOError{Op: "seek", Offset: off, Err: errs.ErrSeekOutOfRange}
	}
	c.off = off

	return nil
}

// ReadExact reads exactly n bytes and advances the cursor.
// When the source is a Slicer the result aliases the source.
func (c *Cursor) ReadExact(n int64) ([]byte, error) {
	if n < 0 || n > c.src.Size()-c.off {
		return nil, &errs.IOError{Op: "read", Offset: c.off, Length: n, Err: errs.ErrShortRead}
	}

	if c.slicer != nil {
		b, err := c.slicer.Slice(c.off, n)
		if err != nil {
			return nil, err
		}
		c.off += n

		return b, nil
	}

	b := make([]byte, n)
	read, err := c.src.ReadAt(b, c.off)
	if int64(read) < n {
		if err == nil || errors.Is(err, io.EOF) {
			err = errs.ErrShortRead
		}

		return nil, &errs.IOError{Op: "read", Offset: c.off, Length: n, Err: err}
	}
	c.off += n

	return b, nil
}
