package section

const (
	// Magic is the BFAST magic number, stored little-endian at offset 0.
	Magic uint64 = 0xBFA5

	HeaderSize     = 32 // fixed header size in bytes
	RangeEntrySize = 16 // fixed range table entry size in bytes
	RangeOffset    = HeaderSize

	// StrictAlignment is the data start alignment required by LayoutStrict.
	StrictAlignment = 64
	// StrictReserved is the byte count LayoutStrict reserves ahead of the range table
	// when checking that the data region clears it.
	StrictReserved = 64

	// LenientAlignment is the data start alignment required by LayoutLenient.
	LenientAlignment = 8
)

// LayoutPolicy selects the header layout rules enforced by Header.Validate.
type LayoutPolicy uint8

const (
	// LayoutStrict requires DataStart % 64 == 0 and DataStart >= 64 + 16*NumArrays.
	LayoutStrict LayoutPolicy = iota
	// LayoutLenient requires DataStart % 8 == 0 and DataStart >= 32 + 16*NumArrays,
	// the physical extent of the header and range table.
	LayoutLenient
)

func (p LayoutPolicy) String() string {
	switch p {
	case LayoutStrict:
		return "strict"
	case LayoutLenient:
		return "lenient"
	default:
		return "unknown"
	}
}

func (p LayoutPolicy) alignment() uint64 {
	if p == LayoutLenient {
		return LenientAlignment
	}

	return StrictAlignment
}

func (p LayoutPolicy) reserved() uint64 {
	if p == LayoutLenient {
		return HeaderSize
	}

	return StrictReserved
}
