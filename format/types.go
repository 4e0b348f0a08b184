package format

import (
	"strings"
)

type (
	ColumnType      uint8
	CompressionType uint8
)

const (
	ColumnByte   ColumnType = 0x1 // ColumnByte is an 8-bit unsigned column, also used for booleans.
	ColumnInt    ColumnType = 0x2 // ColumnInt is a 32-bit signed column.
	ColumnLong   ColumnType = 0x3 // ColumnLong is a 64-bit signed column.
	ColumnFloat  ColumnType = 0x4 // ColumnFloat is a 32-bit IEEE 754 column.
	ColumnDouble ColumnType = 0x5 // ColumnDouble is a 64-bit IEEE 754 column.
	ColumnString ColumnType = 0x6 // ColumnString holds int32 indices into the string pool.
	ColumnIndex  ColumnType = 0x7 // ColumnIndex holds int32 relation indices into another table.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

var columnPrefixes = map[string]ColumnType{
	"byte":   ColumnByte,
	"int":    ColumnInt,
	"long":   ColumnLong,
	"float":  ColumnFloat,
	"double": ColumnDouble,
	"string": ColumnString,
	"index":  ColumnIndex,
}

func (c ColumnType) String() string {
	switch c {
	case ColumnByte:
		return "byte"
	case ColumnInt:
		return "int"
	case ColumnLong:
		return "long"
	case ColumnFloat:
		return "float"
	case ColumnDouble:
		return "double"
	case ColumnString:
		return "string"
	case ColumnIndex:
		return "index"
	default:
		return "unknown"
	}
}

// Width returns the on-disk size of one value in bytes, or 0 for an unknown type.
func (c ColumnType) Width() int {
	switch c {
	case ColumnByte:
		return 1
	case ColumnInt, ColumnFloat, ColumnString, ColumnIndex:
		return 4
	case ColumnLong, ColumnDouble:
		return 8
	default:
		return 0
	}
}

// ColumnName is a parsed column buffer name.
//
//	"int:Id"                 -> {Type: ColumnInt, Field: "Id"}
//	"index:Vim.Level:Level"  -> {Type: ColumnIndex, Target: "Vim.Level", Field: "Level"}
type ColumnName struct {
	Type   ColumnType
	Target string
	Field  string
}

// String returns the on-disk buffer name.
func (n ColumnName) String() string {
	if n.Type == ColumnIndex {
		return n.Type.String() + ":" + n.Target + ":" + n.Field
	}

	return n.Type.String() + ":" + n.Field
}

// ParseColumnName splits a column buffer name into its type, target and field.
// It reports false when the prefix is unknown or a part is empty.
func ParseColumnName(name string) (ColumnName, bool) {
	prefix, rest, ok := strings.Cut(name, ":")
	if !ok || rest == "" {
		return ColumnName{}, false
	}

	typ, ok := columnPrefixes[prefix]
	if !ok {
		return ColumnName{}, false
	}

	if typ != ColumnIndex {
		return ColumnName{Type: typ, Field: rest}, true
	}

	// The target table name itself contains dots but never a colon.
	target, field, ok := strings.Cut(rest, ":")
	if !ok || target == "" || field == "" {
		return ColumnName{}, false
	}

	return ColumnName{Type: typ, Target: target, Field: field}, true
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// Extension returns the file-name suffix that marks a payload compressed with c.
func (c CompressionType) Extension() string {
	switch c {
	case CompressionZstd:
		return ".zst"
	case CompressionS2:
		return ".s2"
	case CompressionLZ4:
		return ".lz4"
	default:
		return ""
	}
}

// CompressionFromName infers the compression of a named payload from its suffix.
// Names without a known suffix are CompressionNone.
func CompressionFromName(name string) CompressionType {
	for _, c := range []CompressionType{CompressionZstd, CompressionS2, CompressionLZ4} {
		if strings.HasSuffix(name, c.Extension()) {
			return c
		}
	}

	return CompressionNone
}
