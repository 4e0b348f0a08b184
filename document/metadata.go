package document

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/arloliu/bfast/errs"
)

// ParseMetadata decodes the header buffer: UTF-8 text with one key=value pair
// per line. Blank lines are skipped, a trailing CR is dropped, and a later
// duplicate key replaces an earlier one.
func ParseMetadata(data []byte) (map[string]string, error) {
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: not valid UTF-8", errs.ErrInvalidMetadata)
	}

	meta := make(map[string]string)
	line := 0
	for raw := range bytes.SplitSeq(data, []byte{'\n'}) {
		line++
		text := strings.TrimSuffix(string(raw), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}

		key, value, ok := strings.Cut(text, "=")
		if !ok {
			return nil, fmt.Errorf("%w: line %d has no '='", errs.ErrInvalidMetadata, line)
		}
		meta[key] = value
	}

	return meta, nil
}
