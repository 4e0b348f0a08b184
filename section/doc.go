// Package section defines the fixed binary structures at the start of a BFAST container.
//
// A container is a 32-byte header, a range table of one 16-byte entry per buffer,
// and the data region holding the buffers themselves:
//
//	┌─────────────────────────────────────────────────────────┐
//	│ Header (32 bytes, fixed)                                │
//	│  - Magic (8 bytes): 0xBFA5                              │
//	│  - DataStart (8 bytes): first byte of buffer 0          │
//	│  - DataEnd (8 bytes): one past the last buffer byte     │
//	│  - NumArrays (8 bytes): buffer count, name buffer incl. │
//	├─────────────────────────────────────────────────────────┤
//	│ Range table (NumArrays × 16 bytes)                      │
//	│  - Begin, End (8 bytes each), absolute file offsets     │
//	├─────────────────────────────────────────────────────────┤
//	│ Padding up to DataStart                                 │
//	├─────────────────────────────────────────────────────────┤
//	│ Buffer 0: NUL-terminated buffer names                   │
//	│ Buffer 1..N-1: named payloads                           │
//	└─────────────────────────────────────────────────────────┘
//
// # Header Format
//
//	Bytes  | Field     | Type   | Description
//	-------|-----------|--------|-----------------------------------------
//	0-7    | Magic     | uint64 | Must equal Magic
//	8-15   | DataStart | uint64 | Aligned start of the data region
//	16-23  | DataEnd   | uint64 | End of the data region (<= file length)
//	24-31  | NumArrays | uint64 | Number of buffers, >= 1
//
// All integers are little-endian. Header.Validate checks the layout rules in a
// fixed order and reports the first violation as an *errs.InvalidLayoutError.
//
// # Range Entry Format
//
//	Bytes  | Field | Type   | Description
//	-------|-------|--------|-----------------------------------------
//	0-7    | Begin | uint64 | Absolute offset of the first byte
//	8-15   | End   | uint64 | Absolute offset one past the last byte
package section
