package entity

import (
	"fmt"
	"iter"
	"sort"

	"github.com/arloliu/bfast/container"
	"github.com/arloliu/bfast/endian"
	"github.com/arloliu/bfast/errs"
	"github.com/arloliu/bfast/format"
)

var engine = endian.GetLittleEndianEngine()

// Column is one decoded column buffer of a table.
type Column struct {
	Name  format.ColumnName
	Bytes []byte
}

// Len returns the number of values in the column.
func (c Column) Len() int {
	w := c.Name.Type.Width()
	if w == 0 {
		return 0
	}

	return len(c.Bytes) / w
}

func (c Column) int32At(i int) int32 {
	return int32(engine.Uint32(c.Bytes[4*i:])) //nolint: gosec
}

func (c Column) int64At(i int) int64 {
	return int64(engine.Uint64(c.Bytes[8*i:])) //nolint: gosec
}

func (c Column) float32At(i int) float32 {
	return endian.Float32(engine, c.Bytes[4*i:])
}

func (c Column) float64At(i int) float64 {
	return endian.Float64(engine, c.Bytes[8*i:])
}

// value returns the raw bytes of row i.
func (c Column) value(i int) []byte {
	w := c.Name.Type.Width()
	return c.Bytes[w*i : w*(i+1)]
}

// RelationColumn describes one relation field of a table.
type RelationColumn struct {
	Field    string
	Target   string
	Optional bool
	// Present is false when a declared relation has no column; every row then
	// reads as the -1 sentinel.
	Present bool
	column  int
}

// Owner looks up sibling tables for relation dereference.
type Owner interface {
	Table(name string) (*Table, bool)
}

// Table is an immutable columnar entity table.
//
// Note: A Table is safe for concurrent reads once built. SetOwner must be called
// before the table is shared.
type Table struct {
	name      string
	kind      *Kind
	columns   []Column
	byField   map[string]int
	sorted    []int // column indices ordered by field name
	relations []RelationColumn
	rows      int
	strings   []string
	owner     Owner
}

// NewTable builds a table from its column buffers.
//
// Parameters:
//   - name: Table name, e.g. "Vim.Element"
//   - buffers: Column buffers of the nested table container
//   - strings: Document string pool that string columns index into
//   - kind: Declared kind, or nil to decode generically with every relation optional
//
// Returns:
//   - *Table: The decoded table
//   - error: TruncatedRecordError or InvalidFieldError
func NewTable(name string, buffers []container.NamedBuffer, strings []string, kind *Kind) (*Table, error) {
	t := &Table{
		name:    name,
		kind:    kind,
		columns: make([]Column, 0, len(buffers)),
		byField: make(map[string]int, len(buffers)),
		strings: strings,
	}

	for _, nb := range buffers {
		col, ok := format.ParseColumnName(nb.Name)
		if !ok {
			return nil, &errs.InvalidFieldError{Table: name, Index: -1, Field: nb.Name, Detail: "unrecognized column name"}
		}
		if _, dup := t.byField[col.Field]; dup {
			return nil, &errs.InvalidFieldError{Table: name, Index: -1, Field: col.Field, Detail: "duplicate column"}
		}
		if rem := len(nb.Bytes) % col.Type.Width(); rem != 0 {
			return nil, &errs.TruncatedRecordError{Table: name, Index: len(nb.Bytes) / col.Type.Width(), Column: nb.Name}
		}

		t.byField[col.Field] = len(t.columns)
		t.columns = append(t.columns, Column{Name: col, Bytes: nb.Bytes})
	}

	if err := t.checkRows(); err != nil {
		return nil, err
	}
	if err := t.checkKind(); err != nil {
		return nil, err
	}
	if err := t.checkValues(); err != nil {
		return nil, err
	}
	t.buildRelations()

	t.sorted = make([]int, len(t.columns))
	for i := range t.sorted {
		t.sorted[i] = i
	}
	sort.Slice(t.sorted, func(a, b int) bool {
		return t.columns[t.sorted[a]].Name.Field < t.columns[t.sorted[b]].Name.Field
	})

	return t, nil
}

func (t *Table) checkRows() error {
	if len(t.columns) == 0 {
		return nil
	}

	shortest, longest := 0, 0
	for i, c := range t.columns {
		if c.Len() < t.columns[shortest].Len() {
			shortest = i
		}
		if c.Len() > t.columns[longest].Len() {
			longest = i
		}
	}

	short := t.columns[shortest]
	if short.Len() != t.columns[longest].Len() {
		return &errs.TruncatedRecordError{Table: t.name, Index: short.Len(), Column: short.Name.String()}
	}
	t.rows = short.Len()

	return nil
}

func (t *Table) checkKind() error {
	if t.kind == nil {
		return nil
	}

	for _, c := range t.columns {
		field := c.Name.Field
		rel, isRel := t.kind.LookupRelation(field)
		want, _, isField := t.kind.lookupColumn(field)

		switch {
		case c.Name.Type == format.ColumnIndex && isRel && rel.Target != c.Name.Target:
			return &errs.InvalidFieldError{Table: t.name, Index: -1, Field: field,
				Detail: fmt.Sprintf("relation targets %s, declared %s", c.Name.Target, rel.Target)}
		case c.Name.Type == format.ColumnIndex && isField:
			return &errs.InvalidFieldError{Table: t.name, Index: -1, Field: field,
				Detail: fmt.Sprintf("declared as %s field, stored as relation", want)}
		case c.Name.Type != format.ColumnIndex && isRel:
			return &errs.InvalidFieldError{Table: t.name, Index: -1, Field: field,
				Detail: fmt.Sprintf("declared as relation, stored as %s", c.Name.Type)}
		case isField && want != c.Name.Type:
			return &errs.InvalidFieldError{Table: t.name, Index: -1, Field: field,
				Detail: fmt.Sprintf("declared as %s, stored as %s", want, c.Name.Type)}
		}
	}

	return nil
}

func (t *Table) checkValues() error {
	for _, c := range t.columns {
		switch c.Name.Type {
		case format.ColumnString:
			for i := range t.rows {
				if v := c.int32At(i); v < -1 || int(v) >= len(t.strings) {
					return &errs.InvalidFieldError{Table: t.name, Index: i, Field: c.Name.Field,
						Detail: fmt.Sprintf("string index %d outside pool of %d", v, len(t.strings))}
				}
			}
		case format.ColumnByte:
			if t.kind == nil {
				continue
			}
			if _, f, ok := t.kind.lookupColumn(c.Name.Field); !ok || f.Type != TypeBool {
				continue
			}
			for i, b := range c.Bytes {
				if b > 1 {
					return &errs.InvalidFieldError{Table: t.name, Index: i, Field: c.Name.Field,
						Detail: fmt.Sprintf("bool value %d", b)}
				}
			}
		}
	}

	return nil
}

func (t *Table) buildRelations() {
	declared := make(map[string]bool)
	if t.kind != nil {
		for _, r := range t.kind.Relations() {
			rc := RelationColumn{Field: r.Name, Target: r.Target, Optional: r.Optional, column: -1}
			if idx, ok := t.byField[r.Name]; ok {
				rc.Present = true
				rc.column = idx
			}
			t.relations = append(t.relations, rc)
			declared[r.Name] = true
		}
	}

	for i, c := range t.columns {
		if c.Name.Type != format.ColumnIndex || declared[c.Name.Field] {
			continue
		}
		t.relations = append(t.relations, RelationColumn{
			Field: c.Name.Field, Target: c.Name.Target, Optional: true, Present: true, column: i,
		})
	}
}

// SetOwner attaches the document that relation dereference looks tables up in.
func (t *Table) SetOwner(owner Owner) {
	t.owner = owner
}

// Name returns the table name.
func (t *Table) Name() string { return t.name }

// Len returns the number of entities.
func (t *Table) Len() int { return t.rows }

// Kind returns the declared kind, or nil for a generically decoded table.
func (t *Table) Kind() *Kind { return t.kind }

// Columns returns the columns in container order.
func (t *Table) Columns() []Column { return t.columns }

// Column returns the column storing the named field.
func (t *Table) Column(field string) (Column, bool) {
	idx, ok := t.byField[field]
	if !ok {
		return Column{}, false
	}

	return t.columns[idx], true
}

// Relations returns the relation fields: declared ones first, in declaration
// order, then undeclared index columns.
func (t *Table) Relations() []RelationColumn { return t.relations }

// LookupRelation returns the relation field named field.
func (t *Table) LookupRelation(field string) (RelationColumn, bool) {
	for _, rc := range t.relations {
		if rc.Field == field {
			return rc, true
		}
	}

	return RelationColumn{}, false
}

// Strings returns the string pool the table's string columns index into.
func (t *Table) Strings() []string { return t.strings }

// Get returns the entity at index i.
func (t *Table) Get(i int) (Entity, bool) {
	if i < 0 || i >= t.rows {
		return Entity{}, false
	}

	return Entity{table: t, index: i}, true
}

// All yields every entity in index order.
func (t *Table) All() iter.Seq2[int, Entity] {
	return func(yield func(int, Entity) bool) {
		for i := range t.rows {
			if !yield(i, Entity{table: t, index: i}) {
				return
			}
		}
	}
}

func (t *Table) typed(field string, typ format.ColumnType) (Column, bool) {
	idx, ok := t.byField[field]
	if !ok || t.columns[idx].Name.Type != typ {
		return Column{}, false
	}

	return t.columns[idx], true
}

func (t *Table) relationValue(rc RelationColumn, i int) int32 {
	if !rc.Present {
		return -1
	}

	return t.columns[rc.column].int32At(i)
}
