package document

import (
	"testing"

	"github.com/arloliu/bfast/errs"
	"github.com/stretchr/testify/require"
)

func TestParseMetadata(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    map[string]string
		wantErr bool
	}{
		{"Empty", "", map[string]string{}, false},
		{"Lines", "vim=1.0.0\nid=abc\r\n\nschema=4.1.0\n", map[string]string{"vim": "1.0.0", "id": "abc", "schema": "4.1.0"}, false},
		{"ValueWithEquals", "generator=a=b", map[string]string{"generator": "a=b"}, false},
		{"EmptyValue", "revision=", map[string]string{"revision": ""}, false},
		{"LaterKeyWins", "id=1\nid=2", map[string]string{"id": "2"}, false},
		{"MissingEquals", "vim=1\nbroken\n", nil, true},
		{"InvalidUTF8", "vim=\xff", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMetadata([]byte(tt.data))
			if tt.wantErr {
				require.ErrorIs(t, err, errs.ErrInvalidMetadata)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}
