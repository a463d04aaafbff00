/*
NAME
  splitmix64.go

DESCRIPTION
  splitmix64.go implements the SplitMix64 generator used solely to seed
  XorShift128+ from a 32-bit user seed.

AUTHOR
  PXF contributors

LICENSE
  Copyright (C) 2026 the PXF contributors. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the PXF contributors.
*/

// Package prng provides the deterministic primitives shared across the
// codec: the XorShift128+ generator (seeded by SplitMix64), CRC32C
// (Castagnoli), MurmurHash3 x64 128-bit, and the Fisher-Yates shuffle
// used for the binary permutation.
package prng

// SplitMix64 is a minimal stateful SplitMix64 generator.
type SplitMix64 struct {
	state uint64
}

// NewSplitMix64 returns a SplitMix64 seeded with seed.
func NewSplitMix64(seed uint64) *SplitMix64 {
	return &SplitMix64{state: seed}
}

// Next returns the next 64-bit SplitMix64 output.
func (s *SplitMix64) Next() uint64 {
	s.state += 0x9E3779B97F4A7C15
	z := s.state
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}
