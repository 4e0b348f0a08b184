package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID(t *testing.T) {
	tests := []struct {
		name string
		data string
		id   uint64
	}{
		{"empty string", "", 0xef46db3751d8e999},
		{"short string", "test", 0x4fdcca5ddb678139},
		{"long string", "this is a longer test string to hash", 0x69275f7f7ee59dbd},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.id, ID(tt.data))
		})
	}
}

func TestDigest(t *testing.T) {
	sum := func(parts ...string) uint64 {
		d := New()
		for _, p := range parts {
			d.WriteString(p)
		}

		return d.Sum64()
	}

	require.Equal(t, sum("Vim.Level", "Name"), sum("Vim.Level", "Name"))
	require.NotEqual(t, sum("ab", "c"), sum("a", "bc"))
	require.NotEqual(t, sum("a"), sum("a", ""))

	a, b := New(), New()
	a.WriteBytes([]byte{1, 2})
	b.WriteString("\x01\x02")
	require.Equal(t, a.Sum64(), b.Sum64())

	c := New()
	c.WriteUint64(7)
	require.NotEqual(t, New().Sum64(), c.Sum64())
}
