// Package testutil builds BFAST and VIM fixtures in memory for tests.
package testutil

import (
	"math"
	"sort"
	"strings"

	"github.com/arloliu/bfast/endian"
	"github.com/arloliu/bfast/section"
)

// Buffer is a named payload to pack into a container.
type Buffer struct {
	Name string
	Data []byte
}

func align(n, to uint64) uint64 {
	return (n + to - 1) / to * to
}

// BuildContainer packs buffers into a strict-layout container: data start aligned to
// 64 and clear of 64+16*numArrays, each buffer starting on a 64-byte boundary.
func BuildContainer(buffers ...Buffer) []byte {
	n := uint64(len(buffers)) + 1
	dataStart := align(section.StrictReserved+section.RangeEntrySize*n, section.StrictAlignment)

	var names strings.Builder
	for _, b := range buffers {
		names.WriteString(b.Name)
		names.WriteByte(0)
	}

	payloads := make([][]byte, 0, n)
	payloads = append(payloads, []byte(names.String()))
	for _, b := range buffers {
		payloads = append(payloads, b.Data)
	}

	ranges := make([]section.Range, 0, n)
	cursor := dataStart
	for i, p := range payloads {
		if i > 0 {
			cursor = align(cursor, section.StrictAlignment)
		}
		ranges = append(ranges, section.Range{Begin: cursor, End: cursor + uint64(len(p))})
		cursor += uint64(len(p))
	}

	header := section.Header{Magic: section.Magic, DataStart: dataStart, DataEnd: cursor, NumArrays: n}

	return Assemble(header, ranges, payloads)
}

// Assemble lays out an arbitrary, possibly invalid, container: header at 0, range
// table at 32, payloads[i] written at ranges[i].Begin. The file ends at the larger of
// header.DataEnd and the last payload byte.
func Assemble(header section.Header, ranges []section.Range, payloads [][]byte) []byte {
	size := uint64(section.HeaderSize + section.RangeEntrySize*len(ranges))
	size = max(size, header.DataEnd)
	for i, p := range payloads {
		if i < len(ranges) {
			size = max(size, ranges[i].Begin+uint64(len(p)))
		}
	}

	out := make([]byte, size)
	copy(out, header.Bytes())
	for i, r := range ranges {
		copy(out[section.HeaderSize+i*section.RangeEntrySize:], r.Bytes())
	}
	for i, p := range payloads {
		if i < len(ranges) {
			copy(out[ranges[i].Begin:], p)
		}
	}

	return out
}

var engine = endian.GetLittleEndianEngine()

// Ints encodes int32 values.
func Ints(vals ...int32) []byte {
	b := make([]byte, 0, 4*len(vals))
	for _, v := range vals {
		b = engine.AppendUint32(b, uint32(v)) //nolint: gosec
	}

	return b
}

// Longs encodes int64 values.
func Longs(vals ...int64) []byte {
	b := make([]byte, 0, 8*len(vals))
	for _, v := range vals {
		b = engine.AppendUint64(b, uint64(v)) //nolint: gosec
	}

	return b
}

// Floats encodes float32 values.
func Floats(vals ...float32) []byte {
	b := make([]byte, 0, 4*len(vals))
	for _, v := range vals {
		b = engine.AppendUint32(b, math.Float32bits(v))
	}

	return b
}

// Doubles encodes float64 values.
func Doubles(vals ...float64) []byte {
	b := make([]byte, 0, 8*len(vals))
	for _, v := range vals {
		b = engine.AppendUint64(b, math.Float64bits(v))
	}

	return b
}

// Table is one entity table: a name and its column buffers.
type Table struct {
	Name    string
	Columns []Buffer
}

// IntColumn returns an "int:" column.
func IntColumn(field string, vals ...int32) Buffer {
	return Buffer{Name: "int:" + field, Data: Ints(vals...)}
}

// LongColumn returns a "long:" column.
func LongColumn(field string, vals ...int64) Buffer {
	return Buffer{Name: "long:" + field, Data: Longs(vals...)}
}

// ByteColumn returns a "byte:" column.
func ByteColumn(field string, vals ...byte) Buffer {
	return Buffer{Name: "byte:" + field, Data: append([]byte(nil), vals...)}
}

// FloatColumn returns a "float:" column.
func FloatColumn(field string, vals ...float32) Buffer {
	return Buffer{Name: "float:" + field, Data: Floats(vals...)}
}

// DoubleColumn returns a "double:" column.
func DoubleColumn(field string, vals ...float64) Buffer {
	return Buffer{Name: "double:" + field, Data: Doubles(vals...)}
}

// StringColumn returns a "string:" column of string pool indices.
func StringColumn(field string, indices ...int32) Buffer {
	return Buffer{Name: "string:" + field, Data: Ints(indices...)}
}

// IndexColumn returns an "index:" relation column.
func IndexColumn(target, field string, indices ...int32) Buffer {
	return Buffer{Name: "index:" + target + ":" + field, Data: Ints(indices...)}
}

// StringPool interns strings and hands out their pool indices.
type StringPool struct {
	strs  []string
	index map[string]int32
}

// NewStringPool returns an empty pool.
func NewStringPool() *StringPool {
	return &StringPool{index: make(map[string]int32)}
}

// Index interns s and returns its position.
func (p *StringPool) Index(s string) int32 {
	if i, ok := p.index[s]; ok {
		return i
	}
	i := int32(len(p.strs)) //nolint: gosec
	p.strs = append(p.strs, s)
	p.index[s] = i

	return i
}

// Indices interns each string in order.
func (p *StringPool) Indices(strs ...string) []int32 {
	out := make([]int32, len(strs))
	for i, s := range strs {
		out[i] = p.Index(s)
	}

	return out
}

// Strings returns the interned strings in position order.
func (p *StringPool) Strings() []string {
	return p.strs
}

// VIM describes a VIM document fixture.
type VIM struct {
	Header  map[string]string
	Strings []string
	Tables  []Table
	Assets  []Buffer
	Extra   []Buffer
}

// Bytes encodes the fixture: header, assets, entities, strings, then Extra.
func (v VIM) Bytes() []byte {
	var buffers []Buffer

	if v.Header != nil {
		keys := make([]string, 0, len(v.Header))
		for k := range v.Header {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		var sb strings.Builder
		for _, k := range keys {
			sb.WriteString(k + "=" + v.Header[k] + "\n")
		}
		buffers = append(buffers, Buffer{Name: "header", Data: []byte(sb.String())})
	}

	if v.Assets != nil {
		buffers = append(buffers, Buffer{Name: "assets", Data: BuildContainer(v.Assets...)})
	}

	tables := make([]Buffer, 0, len(v.Tables))
	for _, t := range v.Tables {
		tables = append(tables, Buffer{Name: t.Name, Data: BuildContainer(t.Columns...)})
	}
	buffers = append(buffers, Buffer{Name: "entities", Data: BuildContainer(tables...)})

	var pool strings.Builder
	for _, s := range v.Strings {
		pool.WriteString(s)
		pool.WriteByte(0)
	}
	buffers = append(buffers, Buffer{Name: "strings", Data: []byte(pool.String())})
	buffers = append(buffers, v.Extra...)

	return BuildContainer(buffers...)
}
