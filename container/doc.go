// Package container decodes the buffer layer of a BFAST container.
//
// Decoding runs in one-way steps on a Reader:
//
//	r := container.NewReader(src)
//	r.ReadHeader()  // magic + layout validation
//	r.ReadRanges()  // range table
//	r.ReadNames()   // buffer 0, split on NUL
//	for nb, err := range r.All() { ... } // named buffers 1..N-1, lazily
//
// Decode runs every step and collects the buffers into a Container with a
// NameIndex. The i-th name pairs with range i+1; range 0 is the name buffer.
package container
