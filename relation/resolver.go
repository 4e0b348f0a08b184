// Package relation validates and follows the int32 index relations between
// entity tables.
//
// A relation value is a row index into the target table. -1 means no reference
// and is legal only for optional relations. Validate checks every relation of
// every table once; Resolve follows a single one; Referrers answers the reverse
// question from a lazily built index.
package relation

import (
	"fmt"
	"sync"

	"github.com/arloliu/bfast/entity"
	"github.com/arloliu/bfast/errs"
)

// Reference is one relation value pointing at an entity.
type Reference struct {
	// Source is the referring entity.
	Source entity.Entity
	// Field is the relation field of Source.
	Field string
}

// Resolver checks and dereferences relations across a fixed set of tables.
//
// Note: A Resolver is safe for concurrent use. The reverse index is built on
// the first call to Referrers or ReferrersVia.
type Resolver struct {
	tables []*entity.Table
	byName map[string]*entity.Table

	reverseOnce sync.Once
	reverse     map[string][][]Reference // target table -> row -> references
}

// NewResolver creates a Resolver over tables. When two tables share a name the
// later one is used as a relation target.
func NewResolver(tables []*entity.Table) *Resolver {
	r := &Resolver{
		tables: tables,
		byName: make(map[string]*entity.Table, len(tables)),
	}
	for _, t := range tables {
		r.byName[t.Name()] = t
	}

	return r
}

// Table returns the table named name. It satisfies entity.Owner.
func (r *Resolver) Table(name string) (*entity.Table, bool) {
	t, ok := r.byName[name]
	return t, ok
}

// Tables returns the tables in the order given to NewResolver.
func (r *Resolver) Tables() []*entity.Table {
	return r.tables
}

// check returns the target entity for a raw relation value. A nil error with
// ok false means a legal sentinel.
func (r *Resolver) check(src *entity.Table, row int, rc entity.RelationColumn, raw int32) (entity.Entity, bool, error) {
	if raw == -1 && rc.Optional {
		return entity.Entity{}, false, nil
	}

	target, found := r.byName[rc.Target]
	targetLen := 0
	if found {
		targetLen = target.Len()
		if e, ok := target.Get(int(raw)); ok {
			return e, true, nil
		}
	}

	return entity.Entity{}, false, &errs.DanglingRelationError{
		Table:       src.Name(),
		EntityIndex: row,
		Field:       rc.Field,
		Target:      rc.Target,
		RawValue:    int64(raw),
		TargetLen:   targetLen,
	}
}

// Validate checks every relation value. It returns the first violation in
// table order, then entity index, then relation field order.
//
// Returns:
//   - error: nil, or a *errs.DanglingRelationError
func (r *Resolver) Validate() error {
	for _, t := range r.tables {
		rels := t.Relations()
		if len(rels) == 0 {
			continue
		}

		for i, e := range t.All() {
			for _, rc := range rels {
				raw, _ := e.RelationIndex(rc.Field)
				if _, _, err := r.check(t, i, rc, raw); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

// Resolve follows the relation field of e.
//
// Returns:
//   - entity.Entity: The referenced entity when ok is true
//   - bool: false for a legal -1 on an optional relation
//   - error: ErrNotFound for an unknown field, *errs.DanglingRelationError for an
//     invalid value
func (r *Resolver) Resolve(e entity.Entity, field string) (entity.Entity, bool, error) {
	if !e.Valid() {
		return entity.Entity{}, false, fmt.Errorf("%w: invalid entity", errs.ErrNotFound)
	}

	t := e.Table()
	rc, ok := t.LookupRelation(field)
	if !ok {
		return entity.Entity{}, false, fmt.Errorf("%w: relation %s.%s", errs.ErrNotFound, t.Name(), field)
	}
	raw, _ := e.RelationIndex(field)

	return r.check(t, e.Index(), rc, raw)
}

func (r *Resolver) buildReverse() {
	r.reverse = make(map[string][][]Reference)
	for _, t := range r.tables {
		for _, rc := range t.Relations() {
			target, ok := r.byName[rc.Target]
			if !ok || !rc.Present {
				continue
			}

			rows := r.reverse[rc.Target]
			if rows == nil {
				rows = make([][]Reference, target.Len())
				r.reverse[rc.Target] = rows
			}
			for _, e := range t.All() {
				raw, _ := e.RelationIndex(rc.Field)
				if raw < 0 || int(raw) >= len(rows) {
					continue
				}
				rows[raw] = append(rows[raw], Reference{Source: e, Field: rc.Field})
			}
		}
	}
}

// Referrers returns every relation value that points at target, grouped by
// source table order, then relation field, then source entity index.
func (r *Resolver) Referrers(target entity.Entity) []Reference {
	if !target.Valid() {
		return nil
	}
	r.reverseOnce.Do(r.buildReverse)

	if r.byName[target.Table().Name()] != target.Table() {
		return nil
	}
	rows := r.reverse[target.Table().Name()]
	if target.Index() >= len(rows) {
		return nil
	}

	return rows[target.Index()]
}

// ReferrersVia returns the entities of table whose field points at target.
func (r *Resolver) ReferrersVia(target entity.Entity, table, field string) []entity.Entity {
	var out []entity.Entity
	for _, ref := range r.Referrers(target) {
		if ref.Field == field && ref.Source.Table().Name() == table {
			out = append(out, ref.Source)
		}
	}

	return out
}
