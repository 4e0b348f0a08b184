package container

import (
	"github.com/arloliu/bfast/section"
	"github.com/arloliu/bfast/source"
)

// Container is a fully decoded BFAST container.
type Container struct {
	Header section.Header
	Ranges []section.Range
	Names  []string
	Index  *NameIndex
}

// Decode reads every step of src and indexes its buffers.
//
// Returns:
//   - *Container: Decoded container, never partial
//   - error: The first I/O or format error
func Decode(src source.ByteSource, opts ...Option) (*Container, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}

	return DecodeWithConfig(src, cfg)
}

// DecodeWithConfig is Decode with an already-built Config.
func DecodeWithConfig(src source.ByteSource, cfg Config) (*Container, error) {
	r := NewReaderWithConfig(src, cfg)
	if err := r.Open(); err != nil {
		return nil, err
	}

	buffers, err := r.Collect()
	if err != nil {
		return nil, err
	}

	return &Container{
		Header: r.Header(),
		Ranges: r.Ranges(),
		Names:  r.Names(),
		Index:  NewNameIndex(buffers, cfg.Duplicates, cfg.Logger),
	}, nil
}

// DecodeBytes decodes an in-memory container; buffers alias data.
func DecodeBytes(data []byte, opts ...Option) (*Container, error) {
	return Decode(source.NewBytes(data), opts...)
}

// Collect drains the remaining named buffers.
func (r *Reader) Collect() ([]NamedBuffer, error) {
	buffers := make([]NamedBuffer, 0, len(r.names)-r.next)
	for nb, err := range r.All() {
		if err != nil {
			return nil, err
		}
		buffers = append(buffers, nb)
	}

	return buffers, nil
}

// Buffer resolves name through the index.
func (c *Container) Buffer(name string) (NamedBuffer, bool) {
	return c.Index.Lookup(name)
}
