package container

import "log/slog"

// DuplicatePolicy decides which buffer a duplicated name resolves to.
type DuplicatePolicy uint8

const (
	// LastWins resolves a duplicated name to the last buffer carrying it.
	LastWins DuplicatePolicy = iota
	// FirstWins resolves a duplicated name to the first buffer carrying it.
	FirstWins
)

func (p DuplicatePolicy) String() string {
	switch p {
	case LastWins:
		return "last-wins"
	case FirstWins:
		return "first-wins"
	default:
		return "unknown"
	}
}

// NameIndex maps buffer names to buffers. Every buffer stays reachable by
// position even when its name is shadowed by a duplicate.
type NameIndex struct {
	buffers []NamedBuffer
	byName  map[string]int
	policy  DuplicatePolicy
}

// NewNameIndex indexes buffers, which must be in position order.
func NewNameIndex(buffers []NamedBuffer, policy DuplicatePolicy, logger *slog.Logger) *NameIndex {
	idx := &NameIndex{
		buffers: buffers,
		byName:  make(map[string]int, len(buffers)),
		policy:  policy,
	}

	for i, nb := range buffers {
		prev, dup := idx.byName[nb.Name]
		if dup {
			if logger != nil {
				logger.Warn("bfast duplicate buffer name",
					"name", nb.Name, "first", prev, "second", i, "policy", policy.String())
			}
			if policy == FirstWins {
				continue
			}
		}
		idx.byName[nb.Name] = i
	}

	return idx
}

// Lookup returns the buffer the name resolves to under the index policy.
func (x *NameIndex) Lookup(name string) (NamedBuffer, bool) {
	i, ok := x.byName[name]
	if !ok {
		return NamedBuffer{}, false
	}

	return x.buffers[i], true
}

// At returns the buffer at position i.
func (x *NameIndex) At(i int) (NamedBuffer, bool) {
	if i < 0 || i >= len(x.buffers) {
		return NamedBuffer{}, false
	}

	return x.buffers[i], true
}

// Len returns the number of buffers, duplicates included.
func (x *NameIndex) Len() int {
	return len(x.buffers)
}

// Buffers returns all buffers in position order.
func (x *NameIndex) Buffers() []NamedBuffer {
	return x.buffers
}

// Policy returns the duplicate policy the index was built with.
func (x *NameIndex) Policy() DuplicatePolicy {
	return x.policy
}
