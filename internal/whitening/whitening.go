/*
NAME
  whitening.go

DESCRIPTION
  whitening.go implements the per-sample-rate, per-bin MDCT spectral
  whitening profile used to flatten stored bins 0..95. The reference
  table is anchored at 32 kHz; other sample rates interpolate the
  table or fall back to a fitted power-law tail.

AUTHOR
  PXF contributors

LICENSE
  Copyright (C) 2026 the PXF contributors. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the PXF contributors.
*/

// Package whitening provides the MDCT spectral whitening profile
// applied to stored bins 0..95 of every audio block.
package whitening

import "math"

// NumBins is the number of stored MDCT bins the whitening profile
// covers; bins 96..127 are reconstructed by SBR and are never
// whitened.
const NumBins = 96

// ReferenceSampleRate is the sample rate the fixed table was measured
// (here, derived) at.
const ReferenceSampleRate = 32000

// Power-law tail fit parameters used above bin 95 of the reference
// table, and to generate the reference table itself in the absence of
// a measured corpus.
const (
	tailA = 8.432e7
	tailP = 2.1414
)

// Floor is the minimum average magnitude used in both directions of
// whitening, to avoid division blowups on near-silent bins.
const Floor = 1e-12

// refHzPerBin is the bin spacing at the reference sample rate:
// SR / (2 * blockSize), with blockSize = 128.
const refHzPerBin = float64(ReferenceSampleRate) / 256.0

// referenceTable holds the 96 reference mean-magnitude values, indexed
// by bin.
var referenceTable [NumBins]float64

func init() {
	for k := 0; k < NumBins; k++ {
		f := (float64(k) + 0.5) * refHzPerBin
		referenceTable[k] = tailA * math.Pow(f, -tailP)
	}
}

// binCenterHz returns the center frequency of bin k at sampleRate.
func binCenterHz(k int, sampleRate int) float64 {
	return (float64(k) + 0.5) * float64(sampleRate) / 256.0
}

// Average returns the whitening reference average magnitude for bin k
// (0..95) at the given audio sample rate, interpolating the reference
// table where the bin's reference-scaled position falls inside it, and
// using the fitted power-law tail otherwise.
func Average(sampleRate int, k int) float64 {
	fk := binCenterHz(k, sampleRate)
	p := fk/refHzPerBin - 0.5

	var avg float64
	switch {
	case p < 0:
		avg = referenceTable[0]
	case p > float64(NumBins-1):
		avg = tailA * math.Pow(fk, -tailP)
	default:
		lo := int(math.Floor(p))
		hi := lo + 1
		if hi > NumBins-1 {
			avg = referenceTable[lo]
		} else {
			frac := p - float64(lo)
			avg = referenceTable[lo]*(1-frac) + referenceTable[hi]*frac
		}
	}
	if avg < Floor {
		return Floor
	}
	return avg
}

// Whiten multiplies each of the first NumBins entries of bins by
// 1/max(Average(sampleRate,k), Floor), the encoder-side operation.
func Whiten(bins []float64, sampleRate int) {
	for k := 0; k < NumBins && k < len(bins); k++ {
		bins[k] *= 1.0 / Average(sampleRate, k)
	}
}

// Unwhiten reverses Whiten, multiplying by Average(sampleRate,k), the
// decoder-side operation.
func Unwhiten(bins []float64, sampleRate int) {
	for k := 0; k < NumBins && k < len(bins); k++ {
		bins[k] *= Average(sampleRate, k)
	}
}
