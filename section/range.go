package section

import (
	"github.com/arloliu/bfast/endian"
	"github.com/arloliu/bfast/errs"
)

// Range is one range table entry: the absolute byte span [Begin, End) of a buffer.
type Range struct {
	Begin uint64 // byte offset 0-7
	End   uint64 // byte offset 8-15
}

// Len returns the number of bytes spanned by the range.
func (r Range) Len() uint64 {
	return r.End - r.Begin
}

// Bytes serializes the range into a 16-byte slice.
func (r Range) Bytes() []byte {
	engine := endian.GetLittleEndianEngine()

	b := make([]byte, 0, RangeEntrySize)
	b = engine.AppendUint64(b, r.Begin)
	b = engine.AppendUint64(b, r.End)

	return b
}

// ParseRangeTable parses count consecutive range entries.
//
// Each entry must satisfy Begin <= End. Ordering across entries is not checked here.
//
// Parameters:
//   - data: Byte slice holding the range table (must be at least count*16 bytes)
//   - count: Number of entries to parse
//
// Returns:
//   - []Range: Parsed entries in table order
//   - error: Short read error, or *errs.InvalidRangeError for the first inverted entry
func ParseRangeTable(data []byte, count int) ([]Range, error) {
	if count < 0 || len(data) < count*RangeEntrySize {
		return nil, &errs.IOError{Op: "read", Offset: RangeOffset, Length: int64(count) * RangeEntrySize, Err: errs.ErrShortRead}
	}

	engine := endian.GetLittleEndianEngine()
	ranges := make([]Range, count)
	for i := range ranges {
		off := i * RangeEntrySize
		r := Range{
			Begin: engine.Uint64(data[off : off+8]),
			End:   engine.Uint64(data[off+8 : off+16]),
		}
		if r.Begin > r.End {
			return nil, &errs.InvalidRangeError{Index: i, Begin: r.Begin, End: r.End, Detail: "begin after end"}
		}
		ranges[i] = r
	}

	return ranges, nil
}
