/*
NAME
  dct.go

DESCRIPTION
  dct.go implements the separable, orthonormally-scaled 2D type-II DCT
  (and its inverse, the type-III DCT) for the fixed 8x8 luma and 4x4
  chroma block sizes used by the audio row pipeline.

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

var dctBasisCache sync.Map // int -> *mat.Dense

// dctBasis returns the NxN orthonormal type-II DCT basis matrix C such
// that Y = C*X*C^T is the forward 2D DCT and X = C^T*Y*C is the inverse.
func dctBasis(n int) *mat.Dense {
	if v, ok := dctBasisCache.Load(n); ok {
		return v.(*mat.Dense)
	}
	c := mat.NewDense(n, n, nil)
	for u := 0; u < n; u++ {
		alpha := math.Sqrt(2.0 / float64(n))
		if u == 0 {
			alpha = math.Sqrt(1.0 / float64(n))
		}
		for x := 0; x < n; x++ {
			c.Set(u, x, alpha*math.Cos(math.Pi*(2*float64(x)+1)*float64(u)/(2*float64(n))))
		}
	}
	dctBasisCache.Store(n, c)
	return c
}

// toDense copies a flat row-major n*n slice into a *mat.Dense.
func toDense(n int, flat []float64) *mat.Dense {
	return mat.NewDense(n, n, append([]float64(nil), flat...))
}

// fromDense flattens a *mat.Dense into row-major order.
func fromDense(m *mat.Dense) []float64 {
	r, c := m.Dims()
	out := make([]float64, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out[i*c+j] = m.At(i, j)
		}
	}
	return out
}

// DCT2D performs the forward separable 2D type-II DCT of an n x n block
// given as a flat row-major slice of length n*n (n is 8 or 4 in the
// codec, but any size is supported).
func DCT2D(n int, block []float64) []float64 {
	c := dctBasis(n)
	x := toDense(n, block)
	var tmp, out mat.Dense
	tmp.Mul(c, x)
	out.Mul(&tmp, c.T())
	return fromDense(&out)
}

// IDCT2D performs the inverse separable 2D DCT (type-III), the exact
// transpose of DCT2D since the basis is orthonormal.
func IDCT2D(n int, coeffs []float64) []float64 {
	c := dctBasis(n)
	y := toDense(n, coeffs)
	var tmp, out mat.Dense
	tmp.Mul(c.T(), y)
	out.Mul(&tmp, c)
	return fromDense(&out)
}
