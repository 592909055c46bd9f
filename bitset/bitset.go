// Package bitset provides a fixed-capacity bit set used for membership
// tracking during route enumeration.
package bitset

import "fmt"

// BitSet is a fixed-capacity set of bit flags backed by 64-bit words.
type BitSet []uint64

// NewBitSet returns a BitSet able to hold n bits, all unset.
func NewBitSet(n uint64) BitSet {
	return make(BitSet, (n+63)/64)
}

// IsSet reports whether the bit at index is set.
func (b BitSet) IsSet(index uint64) bool {
	return b[index/64]&(uint64(1)<<(index%64)) != 0
}

// Set sets the bit at index.
func (b BitSet) Set(index uint64) {
	b[index/64] |= uint64(1) << (index % 64)
}

// Unset clears the bit at index.
func (b BitSet) Unset(index uint64) {
	b[index/64] &^= uint64(1) << (index % 64)
}

// Clear unsets every bit.
func (b BitSet) Clear() {
	for i := range b {
		b[i] = 0
	}
}

// SetFrom overwrites b with the contents of o. Both sets must have the same
// capacity.
func (b BitSet) SetFrom(o BitSet) {
	if len(b) != len(o) {
		panic(fmt.Sprintf("bitsets must be same size: got %d vs %d", len(b), len(o)))
	}
	copy(b, o)
}
