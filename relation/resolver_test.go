package relation

import (
	"sync"
	"testing"

	"github.com/arloliu/bfast/container"
	"github.com/arloliu/bfast/entity"
	"github.com/arloliu/bfast/errs"
	"github.com/arloliu/bfast/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	viewKind = entity.NewKind("Vim.View").
			WithElement(entity.ElementRequired).
			OptionalRelation("Camera", "Vim.Camera")
	elementInViewKind = entity.NewKind("Vim.ElementInView").
				Relation("Element", "Vim.Element").
				Relation("View", "Vim.View")
)

func table(t *testing.T, name string, kind *entity.Kind, cols ...testutil.Buffer) *entity.Table {
	t.Helper()

	nbs := make([]container.NamedBuffer, len(cols))
	for i, c := range cols {
		nbs[i] = container.NamedBuffer{Name: c.Name, Position: i, Bytes: c.Data}
	}
	tbl, err := entity.NewTable(name, nbs, nil, kind)
	require.NoError(t, err)

	return tbl
}

func elements(t *testing.T, n int) *entity.Table {
	ids := make([]int32, n)
	for i := range ids {
		ids[i] = int32(i * 10) //nolint: gosec
	}

	return table(t, entity.ElementTable, nil, testutil.IntColumn("Id", ids...))
}

func newResolver(tables ...*entity.Table) *Resolver {
	r := NewResolver(tables)
	for _, t := range tables {
		t.SetOwner(r)
	}

	return r
}

func TestValidate(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		r := newResolver(
			elements(t, 3),
			table(t, "Vim.View", viewKind,
				testutil.IndexColumn(entity.ElementTable, entity.ElementField, 0, 2),
				testutil.IndexColumn("Vim.Camera", "Camera", -1, -1)),
		)
		require.NoError(t, r.Validate())
	})

	t.Run("ScenarioC", func(t *testing.T) {
		r := newResolver(
			elements(t, 10),
			table(t, "Vim.View", viewKind,
				testutil.IndexColumn(entity.ElementTable, entity.ElementField, 1, 999)),
		)

		err := r.Validate()
		require.ErrorIs(t, err, errs.ErrDanglingRelation)
		var dangling *errs.DanglingRelationError
		require.ErrorAs(t, err, &dangling)
		require.Equal(t, "Vim.View", dangling.Table)
		require.Equal(t, 1, dangling.EntityIndex)
		require.Equal(t, entity.ElementField, dangling.Field)
		require.Equal(t, int64(999), dangling.RawValue)
		require.Equal(t, 10, dangling.TargetLen)
	})

	t.Run("RequiredSentinel", func(t *testing.T) {
		r := newResolver(
			elements(t, 1),
			table(t, "Vim.View", viewKind,
				testutil.IndexColumn(entity.ElementTable, entity.ElementField, -1)),
		)
		var dangling *errs.DanglingRelationError
		require.ErrorAs(t, r.Validate(), &dangling)
		require.Equal(t, int64(-1), dangling.RawValue)
	})

	t.Run("RequiredColumnAbsent", func(t *testing.T) {
		r := newResolver(
			elements(t, 1),
			table(t, "Vim.View", viewKind, testutil.IntColumn("Id", 7)),
		)
		var dangling *errs.DanglingRelationError
		require.ErrorAs(t, r.Validate(), &dangling)
		require.Equal(t, 0, dangling.EntityIndex)
		require.Equal(t, int64(-1), dangling.RawValue)
	})

	t.Run("MissingTargetTable", func(t *testing.T) {
		r := newResolver(
			elements(t, 1),
			table(t, "Vim.View", viewKind,
				testutil.IndexColumn(entity.ElementTable, entity.ElementField, 0),
				testutil.IndexColumn("Vim.Camera", "Camera", 0)),
		)
		var dangling *errs.DanglingRelationError
		require.ErrorAs(t, r.Validate(), &dangling)
		require.Equal(t, "Camera", dangling.Field)
		require.Zero(t, dangling.TargetLen)
	})

	t.Run("OptionalBelowSentinel", func(t *testing.T) {
		r := newResolver(
			elements(t, 1),
			table(t, "Custom.Thing", nil, testutil.IndexColumn(entity.ElementTable, "Owner", -2)),
		)
		require.ErrorIs(t, r.Validate(), errs.ErrDanglingRelation)
	})

	t.Run("FirstViolationOrder", func(t *testing.T) {
		r := newResolver(
			elements(t, 2),
			table(t, "Vim.ElementInView", elementInViewKind,
				testutil.IndexColumn(entity.ElementTable, "Element", 0, 5),
				testutil.IndexColumn("Vim.View", "View", 9, 9)),
			table(t, "Vim.View", viewKind,
				testutil.IndexColumn(entity.ElementTable, entity.ElementField, 0)),
		)

		var dangling *errs.DanglingRelationError
		require.ErrorAs(t, r.Validate(), &dangling)
		require.Equal(t, "Vim.ElementInView", dangling.Table)
		require.Equal(t, 0, dangling.EntityIndex)
		require.Equal(t, "View", dangling.Field)
	})
}

func TestResolve(t *testing.T) {
	elems := elements(t, 3)
	views := table(t, "Vim.View", viewKind,
		testutil.IndexColumn(entity.ElementTable, entity.ElementField, 2, 0, 42),
		testutil.IndexColumn("Vim.Camera", "Camera", -1, -1, -1))
	r := newResolver(elems, views)

	v0, _ := views.Get(0)
	e, ok, err := r.Resolve(v0, entity.ElementField)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 2, e.Index())
	require.Same(t, elems, e.Table())

	_, ok, err = r.Resolve(v0, "Camera")
	require.NoError(t, err)
	require.False(t, ok)

	v2, _ := views.Get(2)
	_, ok, err = r.Resolve(v2, entity.ElementField)
	require.False(t, ok)
	require.ErrorIs(t, err, errs.ErrDanglingRelation)

	_, _, err = r.Resolve(v0, "Nope")
	require.ErrorIs(t, err, errs.ErrNotFound)
	_, _, err = r.Resolve(entity.Entity{}, entity.ElementField)
	require.ErrorIs(t, err, errs.ErrNotFound)

	got, ok := r.Table("Vim.View")
	require.True(t, ok)
	require.Same(t, views, got)
	require.Len(t, r.Tables(), 2)
}

func TestReferrers(t *testing.T) {
	elems := elements(t, 3)
	views := table(t, "Vim.View", viewKind,
		testutil.IndexColumn(entity.ElementTable, entity.ElementField, 0, 1))
	inView := table(t, "Vim.ElementInView", elementInViewKind,
		testutil.IndexColumn(entity.ElementTable, "Element", 2, 2, 1),
		testutil.IndexColumn("Vim.View", "View", 0, 1, 1))
	r := newResolver(elems, views, inView)
	require.NoError(t, r.Validate())

	e2, _ := elems.Get(2)
	v1, _ := views.Get(1)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Len(t, r.Referrers(e2), 2)
		}()
	}
	wg.Wait()

	refs := r.Referrers(v1)
	require.Len(t, refs, 2)
	for _, ref := range refs {
		require.Equal(t, "View", ref.Field)
		require.Equal(t, "Vim.ElementInView", ref.Source.Table().Name())
	}

	e1, _ := elems.Get(1)
	refs = r.Referrers(e1)
	require.Len(t, refs, 2)
	require.Equal(t, "Vim.View", refs[0].Source.Table().Name())
	require.Equal(t, 1, refs[0].Source.Index())
	require.Equal(t, "Vim.ElementInView", refs[1].Source.Table().Name())

	via := r.ReferrersVia(e2, "Vim.ElementInView", "Element")
	require.Len(t, via, 2)
	require.Equal(t, 0, via[0].Index())
	require.Equal(t, 1, via[1].Index())
	require.Empty(t, r.ReferrersVia(e2, "Vim.View", entity.ElementField))

	e0, _ := elems.Get(0)
	require.Len(t, r.Referrers(e0), 1)
	require.Nil(t, r.Referrers(entity.Entity{}))

	foreign := elements(t, 3)
	f0, _ := foreign.Get(0)
	require.Nil(t, r.Referrers(f0))
}
