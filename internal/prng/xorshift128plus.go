/*
NAME
  xorshift128plus.go

DESCRIPTION
  xorshift128plus.go implements the XorShift128+ generator seeded by two
  SplitMix64 outputs derived from a 32-bit user seed. A zero state is
  replaced by (0,1).

AUTHOR
  PXF contributors

LICENSE
  Copyright (C) 2026 the PXF contributors. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the PXF contributors.
*/

package prng

// Rng is a XorShift128+ generator with the byte/word extraction methods
// the codec's deterministic components depend on.
type Rng struct {
	s0, s1 uint64
}

// NewRng seeds a XorShift128+ generator from a 32-bit user seed, via two
// SplitMix64 outputs. A resulting all-zero state (which would stall
// XorShift128+) is replaced by (0,1).
func NewRng(seed uint32) *Rng {
	sm := NewSplitMix64(uint64(seed))
	s0 := sm.Next()
	s1 := sm.Next()
	if s0 == 0 && s1 == 0 {
		s0, s1 = 0, 1
	}
	return &Rng{s0: s0, s1: s1}
}

// Next64 returns the next 64-bit XorShift128+ output.
func (r *Rng) Next64() uint64 {
	x := r.s0
	y := r.s1
	r.s0 = y
	x ^= x << 23
	x ^= x >> 17
	x ^= y ^ (y >> 26)
	r.s1 = x
	return x + y
}

// Next32 returns the high 32 bits of the next XorShift128+ output.
func (r *Rng) Next32() uint32 {
	return uint32(r.Next64() >> 32)
}

// NextByte returns the high 8 bits of the next XorShift128+ output.
func (r *Rng) NextByte() byte {
	return byte(r.Next64() >> 56)
}

// NextU32Mod returns r.Next32() mod n for n > 0.
func (r *Rng) NextU32Mod(n uint32) uint32 {
	if n == 0 {
		return 0
	}
	return r.Next32() % n
}
