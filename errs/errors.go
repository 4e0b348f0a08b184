// Package errs defines the error taxonomy of the bfast decoder.
//
// Every failure kind has a sentinel error usable with errors.Is. Kinds that
// carry a location (table, record, field, range index) are reported as typed
// errors whose Unwrap returns the sentinel, so errors.As recovers the location:
//
//	var dangling *errs.DanglingRelationError
//	if errors.As(err, &dangling) {
//	    fmt.Println(dangling.Table, dangling.EntityIndex, dangling.Field, dangling.RawValue)
//	}
package errs

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the decoder.
var (
	// ErrIO is returned when the byte source fails a read or seek.
	ErrIO = errors.New("bfast: i/o error")
	// ErrShortRead is returned when the byte source has fewer bytes than requested.
	ErrShortRead = errors.New("bfast: short read")
	// ErrSeekOutOfRange is returned when a seek targets an offset past the source length.
	ErrSeekOutOfRange = errors.New("bfast: seek out of range")
	// ErrSourceClosed is returned when reading from a closed byte source.
	ErrSourceClosed = errors.New("bfast: source closed")

	// ErrBadMagic is returned when the first eight bytes are not the BFAST magic.
	ErrBadMagic = errors.New("bfast: bad magic number")
	// ErrInvalidLayout is returned when the header fields violate the layout rules.
	ErrInvalidLayout = errors.New("bfast: invalid layout")
	// ErrInvalidRange is returned when a range table entry is malformed.
	ErrInvalidRange = errors.New("bfast: invalid range")
	// ErrMisalignedData is returned when range 0 does not begin at the data start.
	ErrMisalignedData = errors.New("bfast: misaligned data")
	// ErrNameCountMismatch is returned when the name buffer does not hold numArrays-1 names.
	ErrNameCountMismatch = errors.New("bfast: name count mismatch")
	// ErrInvalidName is returned when the name buffer is not valid UTF-8.
	ErrInvalidName = errors.New("bfast: invalid buffer name")

	// ErrTruncatedRecord is returned when a table column ends inside a record.
	ErrTruncatedRecord = errors.New("bfast: truncated record")
	// ErrInvalidField is returned when a field cannot be decoded per its declared type.
	ErrInvalidField = errors.New("bfast: invalid field")
	// ErrDanglingRelation is returned when a relation index does not reference an entity.
	ErrDanglingRelation = errors.New("bfast: dangling relation")
	// ErrInvalidMetadata is returned when the header buffer is not key=value text.
	ErrInvalidMetadata = errors.New("bfast: invalid metadata")

	// ErrUnknownCodec is returned when a payload names an unsupported compression.
	ErrUnknownCodec = errors.New("bfast: unknown codec")
	// ErrDecoderUsed is returned when a decoder is asked to decode a second time.
	ErrDecoderUsed = errors.New("bfast: decoder already used")
	// ErrNotFound is returned when a named buffer or asset does not exist.
	ErrNotFound = errors.New("bfast: not found")
)

// IOError reports a failed read or seek on the byte source.
type IOError struct {
	Op     string // "read" or "seek"
	Offset int64
	Length int64
	Err    error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s: %s %d bytes at offset %d: %v", ErrIO, e.Op, e.Length, e.Offset, e.Err)
}

// Unwrap reports both ErrIO and the underlying cause.
func (e *IOError) Unwrap() []error {
	return []error{ErrIO, e.Err}
}

// BadMagicError reports the magic value that was found instead of the expected one.
type BadMagicError struct {
	Got uint64
}

func (e *BadMagicError) Error() string {
	return fmt.Sprintf("%s: 0x%016x", ErrBadMagic, e.Got)
}

func (e *BadMagicError) Unwrap() error { return ErrBadMagic }

// LayoutReason identifies which header layout rule was violated.
type LayoutReason uint8

const (
	LayoutUnaligned       LayoutReason = iota + 1 // dataStart is not aligned
	LayoutOverlapsRanges                          // dataStart falls inside the header or range table
	LayoutDataOutOfBounds                         // dataEnd < dataStart or dataEnd > source length
	LayoutNoBuffers                               // numArrays is zero
)

func (r LayoutReason) String() string {
	switch r {
	case LayoutUnaligned:
		return "data start misaligned"
	case LayoutOverlapsRanges:
		return "data start overlaps range table"
	case LayoutDataOutOfBounds:
		return "data end out of bounds"
	case LayoutNoBuffers:
		return "no buffers"
	default:
		return "unknown"
	}
}

// InvalidLayoutError reports the first violated header layout rule.
type InvalidLayoutError struct {
	Reason LayoutReason
	Detail string
}

func (e *InvalidLayoutError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %s", ErrInvalidLayout, e.Reason)
	}

	return fmt.Sprintf("%s: %s: %s", ErrInvalidLayout, e.Reason, e.Detail)
}

func (e *InvalidLayoutError) Unwrap() error { return ErrInvalidLayout }

// InvalidRangeError reports a malformed range table entry.
type InvalidRangeError struct {
	Index  int
	Begin  uint64
	End    uint64
	Detail string
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("%s: range %d [%d, %d): %s", ErrInvalidRange, e.Index, e.Begin, e.End, e.Detail)
}

func (e *InvalidRangeError) Unwrap() error { return ErrInvalidRange }

// MisalignedDataError reports a range 0 that does not begin at dataStart.
type MisalignedDataError struct {
	DataStart  uint64
	FirstBegin uint64
}

func (e *MisalignedDataError) Error() string {
	return fmt.Sprintf("%s: data start %d, range 0 begins at %d", ErrMisalignedData, e.DataStart, e.FirstBegin)
}

func (e *MisalignedDataError) Unwrap() error { return ErrMisalignedData }

// NameCountMismatchError reports a name buffer holding the wrong number of names.
type NameCountMismatchError struct {
	Expected int
	Actual   int
}

func (e *NameCountMismatchError) Error() string {
	return fmt.Sprintf("%s: expected %d names, got %d", ErrNameCountMismatch, e.Expected, e.Actual)
}

func (e *NameCountMismatchError) Unwrap() error { return ErrNameCountMismatch }

// TruncatedRecordError reports the first record of a table that cannot be fully read.
type TruncatedRecordError struct {
	Table  string
	Index  int
	Column string
}

func (e *TruncatedRecordError) Error() string {
	return fmt.Sprintf("%s: table %q record %d column %q", ErrTruncatedRecord, e.Table, e.Index, e.Column)
}

func (e *TruncatedRecordError) Unwrap() error { return ErrTruncatedRecord }

// InvalidFieldError reports a field that does not match its declared type.
type InvalidFieldError struct {
	Table  string
	Index  int // -1 when the whole column is rejected
	Field  string
	Detail string
}

func (e *InvalidFieldError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s: table %q field %q: %s", ErrInvalidField, e.Table, e.Field, e.Detail)
	}

	return fmt.Sprintf("%s: table %q record %d field %q: %s", ErrInvalidField, e.Table, e.Index, e.Field, e.Detail)
}

func (e *InvalidFieldError) Unwrap() error { return ErrInvalidField }

// DanglingRelationError reports a relation that does not reference an entity.
type DanglingRelationError struct {
	Table       string
	EntityIndex int
	Field       string
	Target      string
	RawValue    int64
	TargetLen   int
}

func (e *DanglingRelationError) Error() string {
	return fmt.Sprintf("%s: %s[%d].%s = %d, target %s has %d entities",
		ErrDanglingRelation, e.Table, e.EntityIndex, e.Field, e.RawValue, e.Target, e.TargetLen)
}

func (e *DanglingRelationError) Unwrap() error { return ErrDanglingRelation }
