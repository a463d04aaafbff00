/*
NAME
  mdct.go

DESCRIPTION
  mdct.go implements the fixed 256-sample/128-bin Modified Discrete
  Cosine Transform pair used by the audio row pipeline, plus a
  generic-size variant for non-standard block sizes.

AUTHOR
  PXF contributors

LICENSE
  Copyright (C) 2026 the PXF contributors. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the PXF contributors.
*/

package numerics

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/mat"
)

// mdctBasisOnce/mdctBasis cache the fixed 128x256 forward MDCT basis
// matrix so repeated per-row calls don't recompute 32768 cosines.
var mdctBasisOnce sync.Once
var mdctBasis *mat.Dense  // 128 x 256
var imdctBasis *mat.Dense // 256 x 128

func buildFixedBasis() {
	mdctBasis = mat.NewDense(BlockSize, WindowSize, nil)
	for k := 0; k < BlockSize; k++ {
		for n := 0; n < WindowSize; n++ {
			v := math.Cos(math.Pi * (float64(k) + 0.5) * (float64(n) + 128.5) / float64(BlockSize))
			mdctBasis.Set(k, n, v)
		}
	}
	imdctBasis = mat.NewDense(WindowSize, BlockSize, nil)
	scale := 2.0 / float64(BlockSize)
	for n := 0; n < WindowSize; n++ {
		for k := 0; k < BlockSize; k++ {
			v := scale * math.Cos(math.Pi*(float64(k)+0.5)*(float64(n)+128.5)/float64(BlockSize))
			imdctBasis.Set(n, k, v)
		}
	}
}

// Forward computes the 128-bin MDCT of a 256-sample windowed frame.
func Forward(frame []float64) []float64 {
	mdctBasisOnce.Do(buildFixedBasis)
	x := mat.NewVecDense(WindowSize, frame)
	y := mat.NewVecDense(BlockSize, nil)
	y.MulVec(mdctBasis, x)
	out := make([]float64, BlockSize)
	for i := range out {
		out[i] = y.AtVec(i)
	}
	return out
}

// Inverse computes the 256-sample IMDCT of 128 coefficients.
func Inverse(bins []float64) []float64 {
	mdctBasisOnce.Do(buildFixedBasis)
	x := mat.NewVecDense(BlockSize, bins)
	y := mat.NewVecDense(WindowSize, nil)
	y.MulVec(imdctBasis, x)
	out := make([]float64, WindowSize)
	for i := range out {
		out[i] = y.AtVec(i)
	}
	return out
}

// GenericForward computes an MDCT for an arbitrary even window size n
// (n/2 coefficients) with phase offset n/4+1/2. This is not Forward's
// formula: at n=256 the offset is 64.5, where Forward uses 128.5, so the
// two give different coefficients. Used by hosts that need non-standard block sizes; the fixed 256/128
// codec path always uses Forward/Inverse above.
func GenericForward(frame []float64) []float64 {
	n := len(frame)
	half := n / 2
	out := make([]float64, half)
	for k := 0; k < half; k++ {
		var sum float64
		for i := 0; i < n; i++ {
			sum += frame[i] * math.Cos(math.Pi*(float64(k)+0.5)*(float64(i)+float64(half)/2+0.5)/float64(half))
		}
		out[k] = sum
	}
	return out
}

// GenericInverse is the transpose of GenericForward with scale 2/half.
func GenericInverse(bins []float64) []float64 {
	half := len(bins)
	n := half * 2
	scale := 2.0 / float64(half)
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		var sum float64
		for k := 0; k < half; k++ {
			sum += bins[k] * math.Cos(math.Pi*(float64(k)+0.5)*(float64(i)+float64(half)/2+0.5)/float64(half))
		}
		out[i] = scale * sum
	}
	return out
}
