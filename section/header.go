package section

import (
	"fmt"

	"github.com/arloliu/bfast/endian"
	"github.com/arloliu/bfast/errs"
)

// Header is the fixed 32-byte preamble of a BFAST container.
type Header struct {
	// Magic identifies the format and must equal Magic.
	Magic uint64 // byte offset 0-7
	// DataStart is the absolute offset of buffer 0.
	DataStart uint64 // byte offset 8-15
	// DataEnd is the absolute offset one past the last buffer byte.
	DataEnd uint64 // byte offset 16-23
	// NumArrays is the number of buffers, including the name buffer.
	NumArrays uint64 // byte offset 24-31
}

// Parse parses the header from a byte slice and checks the magic number.
//
// Parameters:
//   - data: Byte slice containing the header (must be exactly 32 bytes)
//
// Returns:
//   - error: *errs.IOError wrapping ErrShortRead on a size mismatch, *errs.BadMagicError
//     when the magic is wrong
func (h *Header) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return &errs.IOError{Op: "read", Length: HeaderSize, Err: errs.ErrShortRead}
	}

	engine := endian.GetLittleEndianEngine()

	h.Magic = engine.Uint64(data[0:8])
	if h.Magic != Magic {
		return &errs.BadMagicError{Got: h.Magic}
	}

	h.DataStart = engine.Uint64(data[8:16])
	h.DataEnd = engine.Uint64(data[16:24])
	h.NumArrays = engine.Uint64(data[24:32])

	return nil
}

// Validate checks the layout rules in order and returns the first violation.
//
//  1. DataStart is aligned (64 bytes strict, 8 bytes lenient).
//  2. DataStart clears the range table (64 + 16*NumArrays strict, 32 + 16*NumArrays lenient).
//  3. DataStart <= DataEnd <= sourceLen.
//  4. NumArrays >= 1.
//
// Parameters:
//   - sourceLen: Total length of the byte source
//   - policy: Layout rules to enforce
//
// Returns:
//   - error: *errs.InvalidLayoutError naming the violated rule, or nil
func (h Header) Validate(sourceLen int64, policy LayoutPolicy) error {
	if align := policy.alignment(); h.DataStart%align != 0 {
		return &errs.InvalidLayoutError{
			Reason: errs.LayoutUnaligned,
			Detail: fmt.Sprintf("data start %d is not a multiple of %d", h.DataStart, align),
		}
	}

	reserved := policy.reserved()
	if h.DataStart < reserved || (h.DataStart-reserved)/RangeEntrySize < h.NumArrays {
		return &errs.InvalidLayoutError{
			Reason: errs.LayoutOverlapsRanges,
			Detail: fmt.Sprintf("data start %d < %d + %d*%d", h.DataStart, reserved, RangeEntrySize, h.NumArrays),
		}
	}

	if h.DataEnd < h.DataStart || sourceLen < 0 || h.DataEnd > uint64(sourceLen) {
		return &errs.InvalidLayoutError{
			Reason: errs.LayoutDataOutOfBounds,
			Detail: fmt.Sprintf("data [%d, %d) in source of %d bytes", h.DataStart, h.DataEnd, sourceLen),
		}
	}

	if h.NumArrays < 1 {
		return &errs.InvalidLayoutError{Reason: errs.LayoutNoBuffers}
	}

	return nil
}

// RangeTableSize returns the byte length of the range table.
// Only meaningful after Validate succeeded.
func (h Header) RangeTableSize() int64 {
	return int64(h.NumArrays) * RangeEntrySize //nolint: gosec
}

// Bytes serializes the header into a 32-byte slice.
func (h Header) Bytes() []byte {
	engine := endian.GetLittleEndianEngine()

	b := make([]byte, 0, HeaderSize)
	b = engine.AppendUint64(b, h.Magic)
	b = engine.AppendUint64(b, h.DataStart)
	b = engine.AppendUint64(b, h.DataEnd)
	b = engine.AppendUint64(b, h.NumArrays)

	return b
}

// ParseHeader parses a Header from the first 32 bytes of data.
//
// Parameters:
//   - data: Byte slice containing the header (must be at least 32 bytes)
//
// Returns:
//   - Header: Parsed header struct
//   - error: Short read or bad magic errors
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, &errs.IOError{Op: "read", Length: HeaderSize, Err: errs.ErrShortRead}
	}

	h := Header{}
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return Header{}, err
	}

	return h, nil
}
