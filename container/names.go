package container

import (
	"bytes"
	"unicode/utf8"

	"github.com/arloliu/bfast/errs"
)

// SplitNames decodes the name buffer: UTF-8 text split on NUL with empty
// segments dropped.
//
// Returns:
//   - []string: Names in buffer order
//   - error: ErrInvalidName if the buffer is not valid UTF-8
func SplitNames(data []byte) ([]string, error) {
	if !utf8.Valid(data) {
		return nil, errs.ErrInvalidName
	}

	names := make([]string, 0, bytes.Count(data, []byte{0})+1)
	for seg := range bytes.SplitSeq(data, []byte{0}) {
		if len(seg) == 0 {
			continue
		}
		names = append(names, string(seg))
	}

	return names, nil
}

// SplitStrings decodes a string pool of NUL-terminated strings. Unlike SplitNames,
// empty strings are kept since callers address the pool by position. A missing
// terminator on the last string is tolerated.
func SplitStrings(data []byte) ([]string, error) {
	if !utf8.Valid(data) {
		return nil, errs.ErrInvalidName
	}
	if len(data) == 0 {
		return []string{}, nil
	}

	data = bytes.TrimSuffix(data, []byte{0})
	strs := make([]string, 0, bytes.Count(data, []byte{0})+1)
	for seg := range bytes.SplitSeq(data, []byte{0}) {
		strs = append(strs, string(seg))
	}

	return strs, nil
}
