package section

import (
	"testing"

	"github.com/arloliu/bfast/errs"
	"github.com/stretchr/testify/require"
)

func TestHeader_Parse(t *testing.T) {
	t.Run("Valid header", func(t *testing.T) {
		original := Header{Magic: Magic, DataStart: 128, DataEnd: 4096, NumArrays: 3}

		parsed, err := ParseHeader(original.Bytes())
		require.NoError(t, err)
		require.Equal(t, original, parsed)
	})

	t.Run("Invalid size", func(t *testing.T) {
		h := &Header{}
		err := h.Parse([]byte{1, 2, 3})
		require.ErrorIs(t, err, errs.ErrShortRead)

		_, err = ParseHeader(make([]byte, HeaderSize-1))
		require.ErrorIs(t, err, errs.ErrIO)
	})

	t.Run("Bad magic", func(t *testing.T) {
		data := Header{Magic: 0xA5BF, DataStart: 128}.Bytes()

		_, err := ParseHeader(data)
		require.ErrorIs(t, err, errs.ErrBadMagic)

		var magicErr *errs.BadMagicError
		require.ErrorAs(t, err, &magicErr)
		require.Equal(t, uint64(0xA5BF), magicErr.Got)
	})
}

func TestHeader_Validate(t *testing.T) {
	tests := []struct {
		name    string
		header  Header
		srcLen  int64
		policy  LayoutPolicy
		reason  errs.LayoutReason
		wantErr bool
	}{
		{"StrictValid", Header{DataStart: 128, DataEnd: 200, NumArrays: 4}, 200, LayoutStrict, 0, false},
		{"StrictUnaligned", Header{DataStart: 65, DataEnd: 200, NumArrays: 1}, 200, LayoutStrict, errs.LayoutUnaligned, true},
		{"StrictOverlap", Header{DataStart: 128, DataEnd: 200, NumArrays: 5}, 200, LayoutStrict, errs.LayoutOverlapsRanges, true},
		{"StrictBelowReserved", Header{DataStart: 0, DataEnd: 0, NumArrays: 0}, 0, LayoutStrict, errs.LayoutOverlapsRanges, true},
		{"EndBeforeStart", Header{DataStart: 128, DataEnd: 100, NumArrays: 1}, 200, LayoutStrict, errs.LayoutDataOutOfBounds, true},
		{"EndPastSource", Header{DataStart: 128, DataEnd: 300, NumArrays: 1}, 200, LayoutStrict, errs.LayoutDataOutOfBounds, true},
		{"NoBuffers", Header{DataStart: 128, DataEnd: 128, NumArrays: 0}, 200, LayoutStrict, errs.LayoutNoBuffers, true},
		{"LenientScenarioA", Header{DataStart: 80, DataEnd: 200, NumArrays: 2}, 200, LayoutLenient, 0, false},
		{"StrictScenarioA", Header{DataStart: 80, DataEnd: 200, NumArrays: 2}, 200, LayoutStrict, errs.LayoutUnaligned, true},
		{"LenientUnaligned", Header{DataStart: 65, DataEnd: 200, NumArrays: 1}, 200, LayoutLenient, errs.LayoutUnaligned, true},
		{"LenientOverlap", Header{DataStart: 64, DataEnd: 200, NumArrays: 3}, 200, LayoutLenient, errs.LayoutOverlapsRanges, true},
		{"HugeArrayCount", Header{DataStart: 128, DataEnd: 200, NumArrays: 1 << 62}, 200, LayoutStrict, errs.LayoutOverlapsRanges, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.header.Validate(tt.srcLen, tt.policy)
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, errs.ErrInvalidLayout)
			var layoutErr *errs.InvalidLayoutError
			require.ErrorAs(t, err, &layoutErr)
			require.Equal(t, tt.reason, layoutErr.Reason)
		})
	}
}

func TestParseRangeTable(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		data := append(Range{Begin: 80, End: 96}.Bytes(), Range{Begin: 96, End: 200}.Bytes()...)

		ranges, err := ParseRangeTable(data, 2)
		require.NoError(t, err)
		require.Equal(t, []Range{{80, 96}, {96, 200}}, ranges)
		require.Equal(t, uint64(104), ranges[1].Len())
	})

	t.Run("Inverted", func(t *testing.T) {
		data := append(Range{Begin: 80, End: 96}.Bytes(), Range{Begin: 200, End: 96}.Bytes()...)

		_, err := ParseRangeTable(data, 2)
		require.ErrorIs(t, err, errs.ErrInvalidRange)
		var rangeErr *errs.InvalidRangeError
		require.ErrorAs(t, err, &rangeErr)
		require.Equal(t, 1, rangeErr.Index)
	})

	t.Run("Short", func(t *testing.T) {
		_, err := ParseRangeTable(make([]byte, 20), 2)
		require.ErrorIs(t, err, errs.ErrShortRead)
	})

	t.Run("Empty", func(t *testing.T) {
		ranges, err := ParseRangeTable(nil, 0)
		require.NoError(t, err)
		require.Empty(t, ranges)
	})
}
