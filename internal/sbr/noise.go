/*
NAME
  noise.go

DESCRIPTION
  noise.go implements the deterministic synthetic noise generator used
  to fill the noise component of each replicated high-frequency bin.

AUTHOR
  PXF contributors

LICENSE
  Copyright (C) 2026 the PXF contributors. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the PXF contributors.
*/

package sbr

import "math"

// sqrt3 normalizes the 3-round hash output so the resulting noise
// sequence has unit power.
var sqrt3 = math.Sqrt(3)

// noiseSample returns a deterministic pseudo-random value for
// (seed, binIndex), via a 3-round multiply-xor hash: a uniform value in
// [-1,1) scaled by sqrt(3), so the result lies in [-sqrt3, sqrt3) and
// the overall noise sequence has unit power.
func noiseSample(seed uint64, binIndex int) float64 {
	h := seed ^ uint64(binIndex)*0x9E3779B97F4A7C15
	for i := 0; i < 3; i++ {
		h ^= h >> 33
		h *= 0xFF51AFD7ED558CCD
		h ^= h >> 33
		h *= 0xC4CEB9FE1A85EC53
		h ^= h >> 33
	}
	// Map the top 53 bits to [-1,1).
	u := float64(h>>11) / float64(uint64(1)<<53)
	v := 2*u - 1
	return v * sqrt3
}

// Seed derives the SBR noise seed from three MDCT magnitudes measured
// near the replication junction, when no externally provided seed is
// used.
func Seed(mag0, mag1, mag2 float64) uint64 {
	bits := func(f float64) uint64 {
		return math.Float64bits(f)
	}
	h := bits(mag0) ^ (bits(mag1) * 0x9E3779B97F4A7C15) ^ (bits(mag2) * 0xC2B2AE3D27D4EB4F)
	h ^= h >> 33
	h *= 0xFF51AFD7ED558CCD
	h ^= h >> 33
	return h
}

// StereoSalt XORs the components the decoder combines to decorrelate
// mid/side SBR noise: the stream salt, the chunk index, the local
// block index within the image, and a channel mode tag (0 mid, 1
// side).
func StereoSalt(salt uint32, chunkIndex, localBlockIndex uint32, channelMode int) uint64 {
	return uint64(salt) ^ uint64(chunkIndex)<<32 ^ uint64(localBlockIndex) ^ uint64(channelMode)<<48
}
