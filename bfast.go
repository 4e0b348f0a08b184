// Package bfast decodes BFAST containers and the VIM object model stored in them.
//
// A BFAST container packs named byte buffers behind a 32-byte header and a
// range table. A VIM document is a container whose "entities" buffer holds typed
// entity tables cross-referenced by integer relations.
//
// # Basic Usage
//
// Decoding a file:
//
//	doc, err := bfast.Open("model.vim")
//	if err != nil {
//	    return err
//	}
//	defer doc.Close()
//
//	levels, _ := doc.Table(objectmodel.Level)
//	for i, level := range levels.All() {
//	    elevation, _ := level.Double("Elevation")
//	    element, _ := level.Element()
//	    name, _ := element.String("Name")
//	    fmt.Println(i, name, elevation)
//	}
//
// Decoding bytes already in memory, with a lenient header layout:
//
//	doc, err := bfast.DecodeBytes(data, bfast.WithLayoutPolicy(section.LayoutLenient))
//
// Failures are *document.DecodeError values wrapping the errs taxonomy:
//
//	var dangling *errs.DanglingRelationError
//	if errors.As(err, &dangling) { ... }
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the document
// package. Lower layers are usable on their own: container for the buffer layer,
// entity and relation for tables, objectmodel for the VIM schema.
package bfast

import (
	"github.com/arloliu/bfast/container"
	"github.com/arloliu/bfast/document"
	"github.com/arloliu/bfast/entity"
	"github.com/arloliu/bfast/section"
	"github.com/arloliu/bfast/source"
)

// Document is a decoded container. See document.Document.
type Document = document.Document

// Option configures decoding. See the document package options.
type Option = document.Option

// WithLayoutPolicy selects strict or lenient header layout rules.
func WithLayoutPolicy(policy section.LayoutPolicy) Option {
	return document.WithLayoutPolicy(policy)
}

// WithDuplicatePolicy selects which buffer a duplicated name resolves to.
func WithDuplicatePolicy(policy container.DuplicatePolicy) Option {
	return document.WithDuplicatePolicy(policy)
}

// WithSchema replaces the VIM object model schema.
func WithSchema(schema *entity.Schema) Option {
	return document.WithSchema(schema)
}

// Decode decodes a document from any byte source.
func Decode(src source.ByteSource, opts ...Option) (*Document, error) {
	return document.Decode(src, opts...)
}

// DecodeBytes decodes an in-memory document. Buffers alias data.
func DecodeBytes(data []byte, opts ...Option) (*Document, error) {
	return document.DecodeBytes(data, opts...)
}

// Open memory-maps path and decodes it. Buffers alias the mapping, so they are
// valid until the document is closed.
func Open(path string, opts ...Option) (*Document, error) {
	m, err := source.OpenMmap(path)
	if err != nil {
		return nil, err
	}

	doc, err := document.Decode(m, opts...)
	if err != nil {
		_ = m.Close()
		return nil, err
	}

	return doc, nil
}

// OpenURL decodes a document served over HTTP. The server must support range
// requests; each buffer is fetched with one request.
func OpenURL(url string, opts ...Option) (*Document, error) {
	src, err := source.OpenHTTP(url)
	if err != nil {
		return nil, err
	}

	return document.Decode(src, opts...)
}
