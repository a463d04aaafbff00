/*
NAME
  whiten.go

DESCRIPTION
  whiten.go implements the paired-byte XOR whitening stream used to
  scramble the header, row metadata, and must stay bit-compatible
  between encoder and decoder: byte ^ nextByte() ^ nextByte().

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

// XorWhiten XORs each byte of data in place against a two-byte-per-position
// stream drawn from a XorShift128+ generator seeded with seed: for every
// output byte position, two NextByte() draws are consumed and XORed
// together with the corresponding input byte. This exact paired-byte
// consumption must be preserved to stay bit-compatible with the
// reference codec.
func XorWhiten(data []byte, seed uint32) []byte {
	r := NewRng(seed)
	out := make([]byte, len(data))
	for i, b := range data {
		out[i] = b ^ r.NextByte() ^ r.NextByte()
	}
	return out
}
