// Package document decodes a BFAST container into a validated Document.
//
// Decoding runs a one-way state machine:
//
//	Unopened -> HeaderRead -> RangesRead -> BuffersIndexed -> TablesBuilt -> RelationsResolved
//
// Any failure moves the Decoder to Failed and returns a *DecodeError carrying the
// stage and the triggering error; no partial Document is exposed. Tables are
// built in parallel before the relation barrier, after which the Document is
// read-only.
//
// A container carrying the VIM buffers is interpreted as:
//
//	header    key=value metadata lines
//	strings   NUL-separated string pool
//	entities  nested container of tables, each a nested container of columns
//	assets    nested container of asset files, optionally compressed
//
// Every buffer, interpreted or not, stays reachable through Buffer and BufferAt.
package document
