package container

import (
	"fmt"
	"io"
	"iter"

	"github.com/arloliu/bfast/errs"
	"github.com/arloliu/bfast/section"
	"github.com/arloliu/bfast/source"
)

// NamedBuffer is one named payload of a container.
type NamedBuffer struct {
	// Name is the buffer name decoded from buffer 0.
	Name string
	// Position is the 0-based position among named buffers (range Position+1).
	Position int
	// Range is the absolute byte span of the payload in the source.
	Range section.Range
	// Bytes is the payload. It aliases the source when the source is a source.Slicer.
	Bytes []byte
}

// Len returns the payload length.
func (b NamedBuffer) Len() int {
	return len(b.Bytes)
}

type step uint8

const (
	stepNew step = iota
	stepHeader
	stepRanges
	stepNames
	stepFailed
)

// Reader decodes a container one step at a time.
//
// Note: The Reader is NOT thread-safe and NOT restartable. Steps must run in
// order; once a step fails the Reader keeps returning that error.
type Reader struct {
	cur    *source.Cursor
	cfg    Config
	step   step
	err    error
	header section.Header
	ranges []section.Range
	names  []string
	next   int
}

// NewReader creates a Reader over src.
//
// Returns:
//   - *Reader: Reader positioned before the header
//   - error: Option validation error
func NewReader(src source.ByteSource, opts ...Option) (*Reader, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	return NewReaderWithConfig(src, cfg), nil
}

// NewReaderWithConfig is NewReader with an already-built Config.
func NewReaderWithConfig(src source.ByteSource, cfg Config) *Reader {
	return &Reader{cur: source.NewCursor(src), cfg: cfg}
}

// Header returns the parsed header. Valid after ReadHeader.
func (r *Reader) Header() section.Header {
	return r.header
}

// Ranges returns the range table. Valid after ReadRanges.
func (r *Reader) Ranges() []section.Range {
	return r.ranges
}

// Names returns the decoded buffer names. Valid after ReadNames.
func (r *Reader) Names() []string {
	return r.names
}

// Err returns the error that failed the Reader, if any.
func (r *Reader) Err() error {
	return r.err
}

func (r *Reader) expect(want step) error {
	if r.step == stepFailed {
		return r.err
	}
	if r.step != want {
		return fmt.Errorf("container: step out of order (at %d, want %d)", r.step, want)
	}

	return nil
}

func (r *Reader) fail(err error) error {
	r.step = stepFailed
	r.err = err

	return err
}

// ReadHeader reads and validates the 32-byte header.
func (r *Reader) ReadHeader() error {
	if err := r.expect(stepNew); err != nil {
		return err
	}

	if err := r.cur.Seek(0); err != nil {
		return r.fail(err)
	}
	data, err := r.cur.ReadExact(section.HeaderSize)
	if err != nil {
		return r.fail(err)
	}

	header, err := section.ParseHeader(data)
	if err != nil {
		return r.fail(err)
	}
	if err := header.Validate(r.cur.Len(), r.cfg.Layout); err != nil {
		return r.fail(err)
	}

	r.header = header
	r.step = stepHeader
	r.cfg.Logger.Debug("bfast header read",
		"data_start", header.DataStart, "data_end", header.DataEnd, "num_arrays", header.NumArrays)

	return nil
}

// ReadRanges reads the range table that follows the header.
func (r *Reader) ReadRanges() error {
	if err := r.expect(stepHeader); err != nil {
		return err
	}

	data, err := r.cur.ReadExact(r.header.RangeTableSize())
	if err != nil {
		return r.fail(err)
	}
	ranges, err := section.ParseRangeTable(data, int(r.header.NumArrays)) //nolint: gosec
	if err != nil {
		return r.fail(err)
	}

	r.ranges = ranges
	r.step = stepRanges

	return nil
}

// ReadNames checks range placement and decodes buffer 0 into names.
//
// Range 0 must begin at DataStart. Every later range must start at or after the
// end of the previous one, and all ranges must end at or before DataEnd.
func (r *Reader) ReadNames() error {
	if err := r.expect(stepRanges); err != nil {
		return err
	}

	if err := r.checkPlacement(); err != nil {
		return r.fail(err)
	}

	first := r.ranges[0]
	if err := r.cur.Seek(int64(first.Begin)); err != nil { //nolint: gosec
		return r.fail(err)
	}
	data, err := r.cur.ReadExact(int64(first.Len())) //nolint: gosec
	if err != nil {
		return r.fail(err)
	}

	names, err := SplitNames(data)
	if err != nil {
		return r.fail(err)
	}
	if expected := len(r.ranges) - 1; len(names) != expected {
		return r.fail(&errs.NameCountMismatchError{Expected: expected, Actual: len(names)})
	}

	r.names = names
	r.step = stepNames
	r.cfg.Logger.Debug("bfast names read", "buffers", len(names))

	return nil
}

func (r *Reader) checkPlacement() error {
	first := r.ranges[0]
	if first.Begin != r.header.DataStart {
		return &errs.MisalignedDataError{DataStart: r.header.DataStart, FirstBegin: first.Begin}
	}

	var prevEnd uint64
	for i, rg := range r.ranges {
		if i > 0 && rg.Begin < prevEnd {
			return &errs.InvalidRangeError{Index: i, Begin: rg.Begin, End: rg.End,
				Detail: fmt.Sprintf("overlaps previous range ending at %d", prevEnd)}
		}
		if rg.End > r.header.DataEnd {
			return &errs.InvalidRangeError{Index: i, Begin: rg.Begin, End: rg.End,
				Detail: fmt.Sprintf("ends past data end %d", r.header.DataEnd)}
		}
		prevEnd = rg.End
	}

	return nil
}

// Open runs ReadHeader, ReadRanges and ReadNames.
func (r *Reader) Open() error {
	if err := r.ReadHeader(); err != nil {
		return err
	}
	if err := r.ReadRanges(); err != nil {
		return err
	}

	return r.ReadNames()
}

// Next returns the next named buffer, or io.EOF after the last one.
func (r *Reader) Next() (NamedBuffer, error) {
	if err := r.expect(stepNames); err != nil {
		return NamedBuffer{}, err
	}
	if r.next >= len(r.names) {
		return NamedBuffer{}, io.EOF
	}

	i := r.next
	rg := r.ranges[i+1]
	if err := r.cur.Seek(int64(rg.Begin)); err != nil { //nolint: gosec
		return NamedBuffer{}, r.fail(err)
	}
	data, err := r.cur.ReadExact(int64(rg.Len())) //nolint: gosec
	if err != nil {
		return NamedBuffer{}, r.fail(err)
	}
	r.next++

	return NamedBuffer{Name: r.names[i], Position: i, Range: rg, Bytes: data}, nil
}

// All yields the remaining named buffers. Iteration stops after the first error,
// which is yielded with a zero NamedBuffer.
func (r *Reader) All() iter.Seq2[NamedBuffer, error] {
	return func(yield func(NamedBuffer, error) bool) {
		for {
			nb, err := r.Next()
			if err == io.EOF {
				return
			}
			if !yield(nb, err) || err != nil {
				return
			}
		}
	}
}
