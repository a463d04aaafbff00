/*
NAME
  fisheryates.go

DESCRIPTION
  fisheryates.go implements the Fisher-Yates shuffle used to generate
  the binary-row permutation over 9920 2-bit-pair indices.

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

// BinaryPermutationSize is the number of 2-bit pairs permuted per
// binary row (2480 bytes * 4 pairs/byte).
const BinaryPermutationSize = 9920

// FisherYatesPermutation returns a permutation of [0, n) generated by
// the Fisher-Yates shuffle seeded with seed: starting from the identity
// permutation, for i = n-1 downto 1, j = rng.Next32() mod (i+1), swap
// perm[i] and perm[j].
func FisherYatesPermutation(n int, seed uint32) []int {
	r := NewRng(seed)
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	for i := n - 1; i >= 1; i-- {
		j := int(r.NextU32Mod(uint32(i + 1)))
		perm[i], perm[j] = perm[j], perm[i]
	}
	return perm
}

// InvertPermutation returns the inverse of perm, such that
// inverse[perm[i]] == i.
func InvertPermutation(perm []int) []int {
	inv := make([]int, len(perm))
	for i, p := range perm {
		inv[p] = i
	}
	return inv
}
