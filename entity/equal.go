package entity

import (
	"bytes"

	"github.com/arloliu/bfast/format"
	"github.com/arloliu/bfast/internal/hash"
)

// volatile reports whether a column is excluded from content comparison.
func (t *Table) volatile(c Column) bool {
	return t.kind.IsVolatile(c.Name.Field)
}

// cell returns the comparable content of column c at row i. String indices
// resolve to the pooled string so that two documents with differently ordered
// pools still compare equal.
func (t *Table) cell(c Column, i int) []byte {
	if c.Name.Type == format.ColumnString {
		idx := c.int32At(i)
		if idx < 0 {
			return nil
		}

		return []byte(t.strings[idx])
	}

	return c.value(i)
}

// ContentEqual reports whether two entities hold the same content: same table
// name, same non-volatile columns with equal values. Strings compare by value,
// relations by raw index.
func ContentEqual(a, b Entity) bool {
	if !a.Valid() || !b.Valid() {
		return false
	}

	return rowEqual(a.table, a.index, b.table, b.index)
}

func rowEqual(ta *Table, ia int, tb *Table, ib int) bool {
	if ta.name != tb.name {
		return false
	}

	ca, cb := contentColumns(ta), contentColumns(tb)
	if len(ca) != len(cb) {
		return false
	}
	for k := range ca {
		x, y := ca[k], cb[k]
		if x.Name != y.Name {
			return false
		}
		if !bytes.Equal(ta.cell(x, ia), tb.cell(y, ib)) {
			return false
		}
	}

	return true
}

// contentColumns returns the non-volatile columns ordered by field name.
func contentColumns(t *Table) []Column {
	out := make([]Column, 0, len(t.sorted))
	for _, idx := range t.sorted {
		c := t.columns[idx]
		if !t.volatile(c) {
			out = append(out, c)
		}
	}

	return out
}

// TablesContentEqual reports whether two tables hold the same entities in the
// same order under ContentEqual.
func TablesContentEqual(a, b *Table) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.name != b.name || a.rows != b.rows {
		return false
	}

	for i := range a.rows {
		if !rowEqual(a, i, b, i) {
			return false
		}
	}

	return true
}

// Fingerprint hashes the entity's content. Entities that are ContentEqual have
// equal fingerprints.
func (e Entity) Fingerprint() uint64 {
	if !e.Valid() {
		return 0
	}

	d := hash.New()
	e.table.writeRow(d, contentColumns(e.table), e.index)

	return d.Sum64()
}

// Fingerprint hashes the table name and every entity's content in order.
func (t *Table) Fingerprint() uint64 {
	d := hash.New()
	d.WriteString(t.name)
	d.WriteUint64(uint64(t.rows)) //nolint: gosec

	cols := contentColumns(t)
	for i := range t.rows {
		t.writeRow(d, cols, i)
	}

	return d.Sum64()
}

func (t *Table) writeRow(d *hash.Digest, cols []Column, i int) {
	d.WriteString(t.name)
	for _, c := range cols {
		d.WriteString(c.Name.String())
		d.WriteBytes(t.cell(c, i))
	}
}
