package entity

import (
	"github.com/arloliu/bfast/format"
)

// Vector3 is a single-precision 3D vector.
type Vector3 struct{ X, Y, Z float32 }

// DVector2 is a double-precision 2D vector.
type DVector2 struct{ X, Y float64 }

// DVector3 is a double-precision 3D vector.
type DVector3 struct{ X, Y, Z float64 }

// AABox is a single-precision axis-aligned box.
type AABox struct{ Min, Max Vector3 }

// DAABox2D is a double-precision axis-aligned rectangle.
type DAABox2D struct{ Min, Max DVector2 }

// Entity is a lightweight handle to one row of a Table.
//
// The zero Entity is invalid. Getters report false when the field is absent or
// stored with a different column type.
type Entity struct {
	table *Table
	index int
}

// Valid reports whether e refers to a row.
func (e Entity) Valid() bool { return e.table != nil }

// Index returns the row index.
func (e Entity) Index() int { return e.index }

// Table returns the owning table.
func (e Entity) Table() *Table { return e.table }

func (e Entity) column(field string, typ format.ColumnType) (Column, bool) {
	if e.table == nil {
		return Column{}, false
	}

	return e.table.typed(field, typ)
}

// String returns a string field. The null index -1 reads as "".
func (e Entity) String(field string) (string, bool) {
	c, ok := e.column(field, format.ColumnString)
	if !ok {
		return "", false
	}
	idx := c.int32At(e.index)
	if idx < 0 {
		return "", true
	}

	return e.table.strings[idx], true
}

// Int returns an int field.
func (e Entity) Int(field string) (int32, bool) {
	c, ok := e.column(field, format.ColumnInt)
	if !ok {
		return 0, false
	}

	return c.int32At(e.index), true
}

// Long returns a long field.
func (e Entity) Long(field string) (int64, bool) {
	c, ok := e.column(field, format.ColumnLong)
	if !ok {
		return 0, false
	}

	return c.int64At(e.index), true
}

// Byte returns a byte field.
func (e Entity) Byte(field string) (byte, bool) {
	c, ok := e.column(field, format.ColumnByte)
	if !ok {
		return 0, false
	}

	return c.Bytes[e.index], true
}

// Bool returns a boolean field stored as a byte.
func (e Entity) Bool(field string) (bool, bool) {
	b, ok := e.Byte(field)
	return b != 0, ok
}

// Float returns a float field.
func (e Entity) Float(field string) (float32, bool) {
	c, ok := e.column(field, format.ColumnFloat)
	if !ok {
		return 0, false
	}

	return c.float32At(e.index), true
}

// Double returns a double field.
func (e Entity) Double(field string) (float64, bool) {
	c, ok := e.column(field, format.ColumnDouble)
	if !ok {
		return 0, false
	}

	return c.float64At(e.index), true
}

func (e Entity) floats(field string, suffixes []string) ([]float32, bool) {
	out := make([]float32, len(suffixes))
	for i, s := range suffixes {
		v, ok := e.Float(field + s)
		if !ok {
			return nil, false
		}
		out[i] = v
	}

	return out, true
}

func (e Entity) doubles(field string, suffixes []string) ([]float64, bool) {
	out := make([]float64, len(suffixes))
	for i, s := range suffixes {
		v, ok := e.Double(field + s)
		if !ok {
			return nil, false
		}
		out[i] = v
	}

	return out, true
}

// Vector3 returns a Vector3 field from its .X, .Y and .Z columns.
func (e Entity) Vector3(field string) (Vector3, bool) {
	v, ok := e.floats(field, xyz)
	if !ok {
		return Vector3{}, false
	}

	return Vector3{v[0], v[1], v[2]}, true
}

// DVector2 returns a DVector2 field.
func (e Entity) DVector2(field string) (DVector2, bool) {
	v, ok := e.doubles(field, xy)
	if !ok {
		return DVector2{}, false
	}

	return DVector2{v[0], v[1]}, true
}

// DVector3 returns a DVector3 field.
func (e Entity) DVector3(field string) (DVector3, bool) {
	v, ok := e.doubles(field, xyz)
	if !ok {
		return DVector3{}, false
	}

	return DVector3{v[0], v[1], v[2]}, true
}

// AABox returns an AABox field from its Min and Max sub-columns.
func (e Entity) AABox(field string) (AABox, bool) {
	v, ok := e.floats(field, minMaxXYZ)
	if !ok {
		return AABox{}, false
	}

	return AABox{Min: Vector3{v[0], v[1], v[2]}, Max: Vector3{v[3], v[4], v[5]}}, true
}

// DAABox2D returns a DAABox2D field.
func (e Entity) DAABox2D(field string) (DAABox2D, bool) {
	v, ok := e.doubles(field, minMaxXY)
	if !ok {
		return DAABox2D{}, false
	}

	return DAABox2D{Min: DVector2{v[0], v[1]}, Max: DVector2{v[2], v[3]}}, true
}

// RelationIndex returns the raw index stored in a relation field, -1 meaning
// no reference. A declared relation without a column reads as -1.
func (e Entity) RelationIndex(field string) (int32, bool) {
	if e.table == nil {
		return 0, false
	}
	rc, ok := e.table.LookupRelation(field)
	if !ok {
		return 0, false
	}

	return e.table.relationValue(rc, e.index), true
}

// Relation follows a relation field to the referenced entity. It reports false
// for the sentinel, an out-of-range index, or a table with no owner. Use a
// relation.Resolver to tell those cases apart.
func (e Entity) Relation(field string) (Entity, bool) {
	if e.table == nil || e.table.owner == nil {
		return Entity{}, false
	}
	rc, ok := e.table.LookupRelation(field)
	if !ok {
		return Entity{}, false
	}
	target, ok := e.table.owner.Table(rc.Target)
	if !ok {
		return Entity{}, false
	}

	return target.Get(int(e.table.relationValue(rc, e.index)))
}

// Element follows the Element relation.
func (e Entity) Element() (Entity, bool) {
	return e.Relation(ElementField)
}
