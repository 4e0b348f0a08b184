// Package entity builds typed, columnar entity tables from the column buffers of
// a nested table container.
//
// A table container holds one buffer per column, named "<type>:<field>" or
// "index:<target>:<field>" for relations. NewTable checks the columns against an
// optional Kind, then exposes rows as Entity handles:
//
//	t, err := entity.NewTable("Vim.Level", buffers, pool, levelKind)
//	e, _ := t.Get(0)
//	name, ok := e.String("Name")
//	elem, ok := e.Element()
//
// Relations are stored as int32 row indices into the target table, -1 meaning no
// reference. Content equality ignores fields declared Volatile.
package entity
