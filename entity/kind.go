package entity

import (
	"github.com/arloliu/bfast/format"
)

const (
	// ElementTable is the table every element-bearing kind relates to.
	ElementTable = "Vim.Element"
	// ElementField is the relation field linking an entity to its element.
	ElementField = "Element"
)

// FieldType is the declared type of a scalar or composite entity field.
type FieldType uint8

const (
	TypeByte FieldType = iota + 1
	TypeBool
	TypeInt
	TypeLong
	TypeFloat
	TypeDouble
	TypeString
	TypeVector3  // float X, Y, Z
	TypeDVector2 // double X, Y
	TypeDVector3 // double X, Y, Z
	TypeAABox    // float Min.{X,Y,Z}, Max.{X,Y,Z}
	TypeDAABox2D // double Min.{X,Y}, Max.{X,Y}
)

func (t FieldType) String() string {
	switch t {
	case TypeByte:
		return "byte"
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeLong:
		return "long"
	case TypeFloat:
		return "float"
	case TypeDouble:
		return "double"
	case TypeString:
		return "string"
	case TypeVector3:
		return "Vector3"
	case TypeDVector2:
		return "DVector2"
	case TypeDVector3:
		return "DVector3"
	case TypeAABox:
		return "AABox"
	case TypeDAABox2D:
		return "DAABox2D"
	default:
		return "unknown"
	}
}

var (
	xyz       = []string{".X", ".Y", ".Z"}
	xy        = []string{".X", ".Y"}
	minMaxXYZ = []string{".Min.X", ".Min.Y", ".Min.Z", ".Max.X", ".Max.Y", ".Max.Z"}
	minMaxXY  = []string{".Min.X", ".Min.Y", ".Max.X", ".Max.Y"}
)

// Columns returns the on-disk columns a field of this type occupies.
func (t FieldType) Columns(field string) []format.ColumnName {
	expand := func(typ format.ColumnType, suffixes []string) []format.ColumnName {
		cols := make([]format.ColumnName, len(suffixes))
		for i, s := range suffixes {
			cols[i] = format.ColumnName{Type: typ, Field: field + s}
		}

		return cols
	}

	switch t {
	case TypeByte, TypeBool:
		return []format.ColumnName{{Type: format.ColumnByte, Field: field}}
	case TypeInt:
		return []format.ColumnName{{Type: format.ColumnInt, Field: field}}
	case TypeLong:
		return []format.ColumnName{{Type: format.ColumnLong, Field: field}}
	case TypeFloat:
		return []format.ColumnName{{Type: format.ColumnFloat, Field: field}}
	case TypeDouble:
		return []format.ColumnName{{Type: format.ColumnDouble, Field: field}}
	case TypeString:
		return []format.ColumnName{{Type: format.ColumnString, Field: field}}
	case TypeVector3:
		return expand(format.ColumnFloat, xyz)
	case TypeDVector2:
		return expand(format.ColumnDouble, xy)
	case TypeDVector3:
		return expand(format.ColumnDouble, xyz)
	case TypeAABox:
		return expand(format.ColumnFloat, minMaxXYZ)
	case TypeDAABox2D:
		return expand(format.ColumnDouble, minMaxXY)
	default:
		return nil
	}
}

// Field is a declared scalar or composite field.
type Field struct {
	Name     string
	Type     FieldType
	Volatile bool // excluded from content equality and fingerprints
}

// RelationField is a declared relation to another table.
type RelationField struct {
	Name     string
	Target   string
	Optional bool // the -1 sentinel is legal
}

// ElementMode says whether a kind is attached to a Vim.Element.
type ElementMode uint8

const (
	ElementNone     ElementMode = iota // no Element relation
	ElementRequired                    // Element relation must reference an element
	ElementOptional                    // Element relation may hold the sentinel
)

type columnDecl struct {
	typ   format.ColumnType
	field int // index into Kind.fields
}

// Kind declares the shape of one entity table.
//
// Kinds are built once, usually at package init, and are read-only afterwards:
//
//	level := entity.NewKind("Vim.Level").
//	    WithElement(entity.ElementRequired).
//	    Field("Elevation", entity.TypeDouble)
type Kind struct {
	name      string
	element   ElementMode
	fields    []Field
	relations []RelationField
	columns   map[string]columnDecl // by column field name, e.g. "Location.X"
}

// NewKind starts a kind declaration for the named table.
func NewKind(tableName string) *Kind {
	return &Kind{name: tableName, columns: make(map[string]columnDecl)}
}

// WithElement attaches the Element relation to Vim.Element.
func (k *Kind) WithElement(mode ElementMode) *Kind {
	k.element = mode
	if mode == ElementNone {
		return k
	}

	return k.addRelation(ElementField, ElementTable, mode == ElementOptional)
}

// Field declares a field.
func (k *Kind) Field(name string, typ FieldType) *Kind {
	return k.addField(Field{Name: name, Type: typ})
}

// Volatile declares a field excluded from content equality, such as an identifier
// the producer regenerates on every export.
func (k *Kind) Volatile(name string, typ FieldType) *Kind {
	return k.addField(Field{Name: name, Type: typ, Volatile: true})
}

// Relation declares a required relation.
func (k *Kind) Relation(name, target string) *Kind {
	return k.addRelation(name, target, false)
}

// OptionalRelation declares a relation that may hold the -1 sentinel.
func (k *Kind) OptionalRelation(name, target string) *Kind {
	return k.addRelation(name, target, true)
}

func (k *Kind) addField(f Field) *Kind {
	k.fields = append(k.fields, f)
	for _, col := range f.Type.Columns(f.Name) {
		k.columns[col.Field] = columnDecl{typ: col.Type, field: len(k.fields) - 1}
	}

	return k
}

func (k *Kind) addRelation(name, target string, optional bool) *Kind {
	for i, r := range k.relations {
		if r.Name == name {
			k.relations[i] = RelationField{Name: name, Target: target, Optional: optional}
			return k
		}
	}
	k.relations = append(k.relations, RelationField{Name: name, Target: target, Optional: optional})

	return k
}

// Name returns the table name.
func (k *Kind) Name() string { return k.name }

// Element returns the element requirement.
func (k *Kind) Element() ElementMode { return k.element }

// Fields returns the declared fields in declaration order.
func (k *Kind) Fields() []Field { return k.fields }

// Relations returns the declared relations in declaration order, Element included.
func (k *Kind) Relations() []RelationField { return k.relations }

// LookupRelation returns the declared relation named name.
func (k *Kind) LookupRelation(name string) (RelationField, bool) {
	for _, r := range k.relations {
		if r.Name == name {
			return r, true
		}
	}

	return RelationField{}, false
}

// lookupColumn returns the expected column type and owning field of a column field name.
func (k *Kind) lookupColumn(columnField string) (format.ColumnType, Field, bool) {
	decl, ok := k.columns[columnField]
	if !ok {
		return 0, Field{}, false
	}

	return decl.typ, k.fields[decl.field], true
}

// IsVolatile reports whether a column field belongs to a volatile field.
func (k *Kind) IsVolatile(columnField string) bool {
	if k == nil {
		return false
	}
	_, f, ok := k.lookupColumn(columnField)

	return ok && f.Volatile
}

// Schema is a registry of kinds by table name.
type Schema struct {
	kinds map[string]*Kind
	order []*Kind
}

// NewSchema registers kinds. A later kind replaces an earlier one of the same name.
func NewSchema(kinds ...*Kind) *Schema {
	s := &Schema{kinds: make(map[string]*Kind, len(kinds))}
	for _, k := range kinds {
		if _, dup := s.kinds[k.name]; !dup {
			s.order = append(s.order, k)
		} else {
			for i, prev := range s.order {
				if prev.name == k.name {
					s.order[i] = k
				}
			}
		}
		s.kinds[k.name] = k
	}

	return s
}

// Lookup returns the kind for a table name. A nil schema has no kinds.
func (s *Schema) Lookup(tableName string) (*Kind, bool) {
	if s == nil {
		return nil, false
	}
	k, ok := s.kinds[tableName]

	return k, ok
}

// Kinds returns the registered kinds in registration order.
func (s *Schema) Kinds() []*Kind {
	if s == nil {
		return nil
	}

	return s.order
}
