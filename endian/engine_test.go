package endian

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetLittleEndianEngine(t *testing.T) {
	engine := GetLittleEndianEngine()
	require.Equal(t, binary.LittleEndian, engine)

	buf := engine.AppendUint64(nil, 0xBFA5)
	require.Equal(t, []byte{0xA5, 0xBF, 0, 0, 0, 0, 0, 0}, buf)
	require.Equal(t, uint64(0xBFA5), engine.Uint64(buf))
}

func TestFloatDecoding(t *testing.T) {
	engine := GetLittleEndianEngine()

	b32 := engine.AppendUint32(nil, math.Float32bits(1.5))
	require.InDelta(t, float32(1.5), Float32(engine, b32), 0)

	b64 := engine.AppendUint64(nil, math.Float64bits(-273.15))
	require.InDelta(t, -273.15, Float64(engine, b64), 0)
}
