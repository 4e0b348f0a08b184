package source

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/arloliu/bfast/errs"
	"github.com/stretchr/testify/require"
)

func TestCursor(t *testing.T) {
	data := []byte("0123456789")

	t.Run("ReadExact", func(t *testing.T) {
		c := NewCursor(NewBytes(data))
		require.Equal(t, int64(10), c.Len())

		b, err := c.ReadExact(4)
		require.NoError(t, err)
		require.Equal(t, []byte("0123"), b)
		require.Equal(t, int64(4), c.Offset())

		b, err = c.ReadExact(6)
		require.NoError(t, err)
		require.Equal(t, []byte("456789"), b)
	})

	t.Run("ShortRead", func(t *testing.T) {
		c := NewCursor(NewBytes(data))
		require.NoError(t, c.Seek(8))

		_, err := c.ReadExact(3)
		require.ErrorIs(t, err, errs.ErrIO)
		require.ErrorIs(t, err, errs.ErrShortRead)
		require.Equal(t, int64(8), c.Offset())
	})

	t.Run("SeekPastEnd", func(t *testing.T) {
		c := NewCursor(NewBytes(data))
		require.NoError(t, c.Seek(10))

		err := c.Seek(11)
		require.ErrorIs(t, err, errs.ErrSeekOutOfRange)

		var ioErr *errs.IOError
		require.ErrorAs(t, err, &ioErr)
		require.Equal(t, "seek", ioErr.Op)
		require.Equal(t, int64(11), ioErr.Offset)
	})

	t.Run("NonSlicerCopies", func(t *testing.T) {
		// bytes.Reader is a ReaderAt but not a Slicer.
		c := NewCursor(readerSource{bytes.NewReader(data)})

		b, err := c.ReadExact(3)
		require.NoError(t, err)
		require.Equal(t, []byte("012"), b)

		require.NoError(t, c.Seek(9))
		_, err = c.ReadExact(2)
		require.ErrorIs(t, err, errs.ErrShortRead)
	})
}

type readerSource struct {
	*bytes.Reader
}

func TestBytesSliceAliases(t *testing.T) {
	data := []byte("abcdef")
	src := NewBytes(data)

	b, err := src.Slice(2, 3)
	require.NoError(t, err)
	require.Equal(t, []byte("cde"), b)
	require.Equal(t, 3, cap(b))

	data[2] = 'X'
	require.Equal(t, byte('X'), b[0])

	_, err = src.Slice(4, 3)
	require.ErrorIs(t, err, errs.ErrShortRead)
}

func TestFileAndMmap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")
	require.NoError(t, os.WriteFile(path, []byte("hello bfast"), 0o600))

	t.Run("File", func(t *testing.T) {
		f, err := OpenFile(path)
		require.NoError(t, err)
		require.Equal(t, int64(11), f.Size())

		c := NewCursor(f)
		require.NoError(t, c.Seek(6))
		b, err := c.ReadExact(5)
		require.NoError(t, err)
		require.Equal(t, []byte("bfast"), b)

		require.NoError(t, f.Close())
		require.NoError(t, f.Close())
		_, err = f.ReadAt(make([]byte, 1), 0)
		require.ErrorIs(t, err, errs.ErrSourceClosed)
	})

	t.Run("Mmap", func(t *testing.T) {
		m, err := OpenMmap(path)
		require.NoError(t, err)
		require.Equal(t, int64(11), m.Size())

		b, err := m.Slice(0, 5)
		require.NoError(t, err)
		require.Equal(t, []byte("hello"), b)

		p := make([]byte, 5)
		n, err := m.ReadAt(p, 6)
		require.NoError(t, err)
		require.Equal(t, 5, n)
		require.Equal(t, []byte("bfast"), p)

		require.NoError(t, m.Close())
		_, err = m.Slice(0, 1)
		require.ErrorIs(t, err, errs.ErrSourceClosed)
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := OpenFile(filepath.Join(t.TempDir(), "missing"))
		require.Error(t, err)
		_, err = OpenMmap(filepath.Join(t.TempDir(), "missing"))
		require.Error(t, err)
	})
}

func TestHTTP(t *testing.T) {
	content := []byte("0123456789abcdef")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.ServeContent(w, r, "c.vim", time.Time{}, bytes.NewReader(content))
	}))
	defer srv.Close()

	s, err := OpenHTTP(srv.URL, WithHTTPHeader("X-Test", "1"))
	require.NoError(t, err)
	require.Equal(t, int64(len(content)), s.Size())

	c := NewCursor(s)
	require.NoError(t, c.Seek(10))
	b, err := c.ReadExact(6)
	require.NoError(t, err)
	require.Equal(t, []byte("abcdef"), b)

	p := make([]byte, 4)
	n, err := s.ReadAt(p, 14)
	require.Equal(t, 2, n)
	require.Error(t, err)

	t.Run("Cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		s, err := OpenHTTP(srv.URL, WithContext(ctx))
		require.NoError(t, err)
		cancel()

		_, err = s.ReadAt(make([]byte, 2), 0)
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("RangeUnsupported", func(t *testing.T) {
		plain := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write(content)
		}))
		defer plain.Close()

		_, err := OpenHTTP(plain.URL)
		require.Error(t, err)
	})
}

func TestParseContentRange(t *testing.T) {
	size, err := parseContentRange("bytes 0-0/1234")
	require.NoError(t, err)
	require.Equal(t, int64(1234), size)

	_, err = parseContentRange("bytes 0-0/*")
	require.Error(t, err)
	_, err = parseContentRange("garbage")
	require.Error(t, err)
}
