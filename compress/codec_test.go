package compress

import (
	"bytes"
	"testing"

	"github.com/arloliu/bfast/errs"
	"github.com/arloliu/bfast/format"
	"github.com/stretchr/testify/require"
)

func texture() []byte {
	return bytes.Repeat([]byte("brick-texel-0123456789"), 512)
}

func TestCodecsRoundTrip(t *testing.T) {
	for _, ct := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)

			packed, err := codec.Compress(texture())
			require.NoError(t, err)

			out, err := codec.Decompress(packed)
			require.NoError(t, err)
			require.Equal(t, texture(), out)
		})
	}
}

func TestEmptyInput(t *testing.T) {
	for _, codec := range []Codec{NewZstdCompressor(), NewS2Compressor(), NewLZ4Compressor()} {
		out, err := codec.Decompress(nil)
		require.NoError(t, err)
		require.Empty(t, out)
	}
}

func TestGetCodecUnknown(t *testing.T) {
	_, err := GetCodec(format.CompressionType(0x7f))
	require.ErrorIs(t, err, errs.ErrUnknownCodec)
}

func TestDecode(t *testing.T) {
	t.Run("Zstd", func(t *testing.T) {
		packed, err := NewZstdCompressor().Compress(texture())
		require.NoError(t, err)

		out, base, err := Decode("textures/brick.png.zst", packed)
		require.NoError(t, err)
		require.Equal(t, "textures/brick.png", base)
		require.Equal(t, texture(), out)
	})

	t.Run("LZ4HighRatio", func(t *testing.T) {
		// Compresses far below a quarter of its size, forcing buffer growth.
		raw := bytes.Repeat([]byte{0}, 1<<16)
		packed, err := NewLZ4Compressor().Compress(raw)
		require.NoError(t, err)

		out, base, err := Decode("zeros.lz4", packed)
		require.NoError(t, err)
		require.Equal(t, "zeros", base)
		require.Equal(t, raw, out)
	})

	t.Run("Plain", func(t *testing.T) {
		out, base, err := Decode("brick.png", []byte("raw"))
		require.NoError(t, err)
		require.Equal(t, "brick.png", base)
		require.Equal(t, []byte("raw"), out)
	})

	t.Run("Corrupt", func(t *testing.T) {
		_, _, err := Decode("brick.png.zst", []byte("not zstd"))
		require.Error(t, err)

		_, _, err = Decode("brick.png.s2", []byte{0xff, 0xff, 0xff})
		require.Error(t, err)
	})
}

func TestLZ4DecompressDetached(t *testing.T) {
	codec := NewLZ4Compressor()
	first, err := codec.Compress(texture())
	require.NoError(t, err)
	second, err := codec.Compress(bytes.Repeat([]byte{0xAB}, 40000))
	require.NoError(t, err)

	a, err := codec.Decompress(first)
	require.NoError(t, err)
	b, err := codec.Decompress(second)
	require.NoError(t, err)

	require.Equal(t, texture(), a, "earlier output must survive reuse of the scratch buffer")
	require.Len(t, b, 40000)
}
