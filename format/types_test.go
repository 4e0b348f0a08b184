package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseColumnName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want ColumnName
		ok   bool
	}{
		{"Int", "int:Id", ColumnName{Type: ColumnInt, Field: "Id"}, true},
		{"NestedField", "float:Location.X", ColumnName{Type: ColumnFloat, Field: "Location.X"}, true},
		{"Index", "index:Vim.Level:Level", ColumnName{Type: ColumnIndex, Target: "Vim.Level", Field: "Level"}, true},
		{"IndexMissingField", "index:Vim.Level", ColumnName{}, false},
		{"UnknownPrefix", "short:Id", ColumnName{}, false},
		{"NoPrefix", "Id", ColumnName{}, false},
		{"EmptyField", "int:", ColumnName{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseColumnName(tt.in)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.want, got)
			if ok {
				require.Equal(t, tt.in, got.String())
			}
		})
	}
}

func TestColumnTypeWidth(t *testing.T) {
	require.Equal(t, 1, ColumnByte.Width())
	require.Equal(t, 4, ColumnInt.Width())
	require.Equal(t, 8, ColumnLong.Width())
	require.Equal(t, 4, ColumnFloat.Width())
	require.Equal(t, 8, ColumnDouble.Width())
	require.Equal(t, 4, ColumnString.Width())
	require.Equal(t, 4, ColumnIndex.Width())
	require.Equal(t, 0, ColumnType(0).Width())
	require.Equal(t, "unknown", ColumnType(0).String())
}

func TestCompressionFromName(t *testing.T) {
	require.Equal(t, CompressionZstd, CompressionFromName("textures/brick.png.zst"))
	require.Equal(t, CompressionS2, CompressionFromName("a.s2"))
	require.Equal(t, CompressionLZ4, CompressionFromName("a.lz4"))
	require.Equal(t, CompressionNone, CompressionFromName("a.png"))
	require.Equal(t, "Zstd", CompressionZstd.String())
	require.Equal(t, "", CompressionNone.Extension())
}
