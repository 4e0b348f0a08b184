package document

import (
	"fmt"
	"io"
	"maps"
	"sync"

	"github.com/arloliu/bfast/compress"
	"github.com/arloliu/bfast/container"
	"github.com/arloliu/bfast/entity"
	"github.com/arloliu/bfast/errs"
	"github.com/arloliu/bfast/format"
	"github.com/arloliu/bfast/relation"
	"github.com/arloliu/bfast/section"
)

// Document is a fully decoded and validated container.
//
// A Document is read-only and safe for concurrent use. Buffers alias the source
// when it supports slicing, so they are only valid until Close.
type Document struct {
	header   section.Header
	ranges   []section.Range
	names    []string
	index    *container.NameIndex
	metadata map[string]string
	strings  []string
	assets   *container.NameIndex
	tables   []*entity.Table
	resolver *relation.Resolver

	closer    io.Closer
	closeOnce sync.Once
	closeErr  error
}

// Header returns the container header.
func (d *Document) Header() section.Header { return d.header }

// Ranges returns the range table, name buffer first.
func (d *Document) Ranges() []section.Range { return d.ranges }

// Names returns the buffer names in container order.
func (d *Document) Names() []string { return d.names }

// Buffer returns the named buffer the duplicate policy resolves name to.
func (d *Document) Buffer(name string) (container.NamedBuffer, bool) {
	return d.index.Lookup(name)
}

// BufferAt returns the i-th named buffer regardless of duplicates.
func (d *Document) BufferAt(i int) (container.NamedBuffer, bool) {
	return d.index.At(i)
}

// Buffers returns every named buffer in container order.
func (d *Document) Buffers() []container.NamedBuffer {
	return d.index.Buffers()
}

// Table returns the entity table named name.
func (d *Document) Table(name string) (*entity.Table, bool) {
	return d.resolver.Table(name)
}

// Tables returns the entity tables in container order.
func (d *Document) Tables() []*entity.Table {
	return d.tables
}

// Strings returns the string pool.
func (d *Document) Strings() []string {
	return d.strings
}

// Metadata returns a copy of the header key=value pairs. It is empty when the
// document has no header buffer.
func (d *Document) Metadata() map[string]string {
	if d.metadata == nil {
		return map[string]string{}
	}

	return maps.Clone(d.metadata)
}

// Assets returns the asset buffers in container order.
func (d *Document) Assets() []container.NamedBuffer {
	if d.assets == nil {
		return nil
	}

	return d.assets.Buffers()
}

// Asset returns the stored asset buffer. name may include a compression suffix,
// e.g. "textures/brick.png.zst".
func (d *Document) Asset(name string) (container.NamedBuffer, bool) {
	if d.assets == nil {
		return container.NamedBuffer{}, false
	}

	return d.assets.Lookup(name)
}

// AssetContent returns the inflated content of an asset. An exact name match is
// tried first, then name with each compression suffix.
//
// Returns:
//   - []byte: The asset content, inflated when stored compressed
//   - error: ErrNotFound, ErrUnknownCodec or a codec error
func (d *Document) AssetContent(name string) ([]byte, error) {
	nb, ok := d.Asset(name)
	if !ok {
		for _, c := range []format.CompressionType{format.CompressionZstd, format.CompressionS2, format.CompressionLZ4} {
			if nb, ok = d.Asset(name + c.Extension()); ok {
				break
			}
		}
	}
	if !ok {
		return nil, fmt.Errorf("%w: asset %q", errs.ErrNotFound, name)
	}

	data, _, err := compress.Decode(nb.Name, nb.Bytes)
	if err != nil {
		return nil, fmt.Errorf("asset %q: %w", nb.Name, err)
	}

	return data, nil
}

// Resolve follows a relation field of e. See relation.Resolver.Resolve.
func (d *Document) Resolve(e entity.Entity, field string) (entity.Entity, bool, error) {
	return d.resolver.Resolve(e, field)
}

// Referrers returns the relation values across all tables that point at target.
func (d *Document) Referrers(target entity.Entity) []relation.Reference {
	return d.resolver.Referrers(target)
}

// ReferrersVia returns the entities of table whose field points at target.
func (d *Document) ReferrersVia(target entity.Entity, table, field string) []entity.Entity {
	return d.resolver.ReferrersVia(target, table, field)
}

// ContentEqual reports whether two documents hold the same entity tables with
// content-equal entities, ignoring volatile fields and table order.
func (d *Document) ContentEqual(other *Document) bool {
	if other == nil || len(d.tables) != len(other.tables) {
		return false
	}

	for _, t := range d.tables {
		o, ok := other.Table(t.Name())
		if !ok || !entity.TablesContentEqual(t, o) {
			return false
		}
	}

	return true
}

// Close releases the source when it implements io.Closer. It is safe to call
// more than once.
func (d *Document) Close() error {
	d.closeOnce.Do(func() {
		if d.closer != nil {
			d.closeErr = d.closer.Close()
		}
	})

	return d.closeErr
}
