package document

import (
	"fmt"
	"io"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/arloliu/bfast/container"
	"github.com/arloliu/bfast/entity"
	"github.com/arloliu/bfast/errs"
	"github.com/arloliu/bfast/relation"
	"github.com/arloliu/bfast/source"
)

// Buffer names with a fixed meaning in a VIM document.
const (
	HeaderBuffer   = "header"
	StringsBuffer  = "strings"
	EntitiesBuffer = "entities"
	AssetsBuffer   = "assets"
)

// Decoder runs the document state machine over one source.
//
// Note: The Decoder is NOT reusable. Decode runs once; later calls return
// ErrDecoderUsed. Stage and Err are safe to call from other goroutines.
type Decoder struct {
	src source.ByteSource
	cfg Config

	mu    sync.Mutex
	stage Stage
	err   error
	used  bool
}

// NewDecoder creates a Decoder over src.
//
// Returns:
//   - *Decoder: Decoder in StageUnopened
//   - error: Option validation error
func NewDecoder(src source.ByteSource, opts ...Option) (*Decoder, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	return &Decoder{src: src, cfg: cfg}, nil
}

// Decode decodes src into a Document, or fails with a *DecodeError. No partial
// Document is returned on failure.
func Decode(src source.ByteSource, opts ...Option) (*Document, error) {
	d, err := NewDecoder(src, opts...)
	if err != nil {
		return nil, err
	}

	return d.Decode()
}

// DecodeBytes decodes an in-memory document; buffers alias data.
func DecodeBytes(data []byte, opts ...Option) (*Document, error) {
	return Decode(source.NewBytes(data), opts...)
}

// Stage returns the last stage reached.
func (d *Decoder) Stage() Stage {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.stage
}

// Err returns the error that failed the decoder, if any.
func (d *Decoder) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.err
}

func (d *Decoder) advance(next Stage, attrs ...any) {
	d.mu.Lock()
	d.stage = next
	d.mu.Unlock()

	d.cfg.Logger.Debug("bfast document stage", append([]any{"stage", next.String()}, attrs...)...)
}

func (d *Decoder) fail(target Stage, err error) error {
	derr := &DecodeError{Stage: target, Err: err}

	d.mu.Lock()
	d.stage = StageFailed
	d.err = derr
	d.mu.Unlock()

	d.cfg.Logger.Debug("bfast document failed", "stage", target.String(), "error", err)

	return derr
}

// Decode runs every stage.
//
// Returns:
//   - *Document: Read-only document, safe for concurrent use
//   - error: *DecodeError naming the stage that failed, or ErrDecoderUsed
func (d *Decoder) Decode() (*Document, error) {
	d.mu.Lock()
	if d.used {
		d.mu.Unlock()
		return nil, errs.ErrDecoderUsed
	}
	d.used = true
	d.mu.Unlock()

	return d.run()
}

func (d *Decoder) run() (*Document, error) {
	ccfg := d.cfg.Container
	r := container.NewReaderWithConfig(d.src, ccfg)

	if err := r.ReadHeader(); err != nil {
		return nil, d.fail(StageHeaderRead, err)
	}
	d.advance(StageHeaderRead, "data_start", r.Header().DataStart, "data_end", r.Header().DataEnd)

	if err := r.ReadRanges(); err != nil {
		return nil, d.fail(StageRangesRead, err)
	}
	d.advance(StageRangesRead, "ranges", len(r.Ranges()))

	if err := r.ReadNames(); err != nil {
		return nil, d.fail(StageBuffersIndexed, err)
	}
	buffers, err := r.Collect()
	if err != nil {
		return nil, d.fail(StageBuffersIndexed, err)
	}
	doc := &Document{
		header: r.Header(),
		ranges: r.Ranges(),
		names:  r.Names(),
		index:  container.NewNameIndex(buffers, ccfg.Duplicates, ccfg.Logger),
	}
	d.advance(StageBuffersIndexed, "buffers", len(buffers))

	if err := d.buildTables(doc); err != nil {
		return nil, d.fail(StageTablesBuilt, err)
	}
	d.advance(StageTablesBuilt, "tables", len(doc.tables), "strings", len(doc.strings))

	doc.resolver = relation.NewResolver(doc.tables)
	for _, t := range doc.tables {
		t.SetOwner(doc)
	}
	if err := doc.resolver.Validate(); err != nil {
		return nil, d.fail(StageRelationsResolved, err)
	}
	if c, ok := d.src.(io.Closer); ok {
		doc.closer = c
	}
	d.advance(StageRelationsResolved)

	return doc, nil
}

func (d *Decoder) nested(name string, data []byte) (*container.Container, error) {
	c, err := container.DecodeWithConfig(source.NewBytes(data), d.cfg.Container)
	if err != nil {
		return nil, fmt.Errorf("%s buffer: %w", name, err)
	}

	return c, nil
}

func (d *Decoder) buildTables(doc *Document) error {
	if nb, ok := doc.index.Lookup(HeaderBuffer); ok {
		meta, err := ParseMetadata(nb.Bytes)
		if err != nil {
			return err
		}
		doc.metadata = meta
	}

	if nb, ok := doc.index.Lookup(StringsBuffer); ok {
		strs, err := container.SplitStrings(nb.Bytes)
		if err != nil {
			return fmt.Errorf("%s buffer: %w", StringsBuffer, err)
		}
		doc.strings = strs
	}

	if nb, ok := doc.index.Lookup(AssetsBuffer); ok {
		assets, err := d.nested(AssetsBuffer, nb.Bytes)
		if err != nil {
			return err
		}
		doc.assets = assets.Index
	}

	nb, ok := doc.index.Lookup(EntitiesBuffer)
	if !ok {
		return nil
	}
	entities, err := d.nested(EntitiesBuffer, nb.Bytes)
	if err != nil {
		return err
	}

	// Only the buffer each table name resolves to is built.
	var tableBuffers []container.NamedBuffer
	for _, tb := range entities.Index.Buffers() {
		if winner, _ := entities.Index.Lookup(tb.Name); winner.Position == tb.Position {
			tableBuffers = append(tableBuffers, tb)
		}
	}

	tables, err := d.buildAll(tableBuffers, doc.strings)
	if err != nil {
		return err
	}
	doc.tables = tables

	return nil
}

// buildAll builds tables with at most Concurrency in flight. When several
// tables fail, the error of the lowest-positioned one is returned.
func (d *Decoder) buildAll(buffers []container.NamedBuffer, strings []string) ([]*entity.Table, error) {
	tables := make([]*entity.Table, len(buffers))
	failures := make([]error, len(buffers))

	var g errgroup.Group
	g.SetLimit(d.cfg.Concurrency)
	for i, tb := range buffers {
		g.Go(func() error {
			tables[i], failures[i] = d.buildTable(tb, strings)
			return nil
		})
	}
	_ = g.Wait()

	for _, err := range failures {
		if err != nil {
			return nil, err
		}
	}

	return tables, nil
}

func (d *Decoder) buildTable(tb container.NamedBuffer, strings []string) (*entity.Table, error) {
	c, err := d.nested("table "+tb.Name, tb.Bytes)
	if err != nil {
		return nil, err
	}

	kind, _ := d.cfg.Schema.Lookup(tb.Name)
	t, err := entity.NewTable(tb.Name, c.Index.Buffers(), strings, kind)
	if err != nil {
		return nil, err
	}
	d.cfg.Logger.Debug("bfast table built", "table", tb.Name, "rows", t.Len(), "columns", len(t.Columns()))

	return t, nil
}
