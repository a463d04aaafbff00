/*
NAME
  window.go

DESCRIPTION
  window.go implements the sine analysis/synthesis window used by the
  fixed-size 256-sample MDCT.

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
)

// WindowSize is the fixed MDCT window length in samples.
const WindowSize = 256

// BlockSize is the fixed number of MDCT coefficients per block (half the
// window size).
const BlockSize = 128

// SilenceThreshold is the magnitude below which a sample or coefficient
// is treated as silence.
const SilenceThreshold = 1e-9

var sineWindowOnce sync.Once
var sineWindowTable [WindowSize]float64

// SineWindow returns the fixed 256-sample sine analysis window,
// w[n] = sin(pi*(n+0.5)/256), computed once and cached.
func SineWindow() [WindowSize]float64 {
	sineWindowOnce.Do(func() {
		for n := 0; n < WindowSize; n++ {
			sineWindowTable[n] = math.Sin(math.Pi * (float64(n) + 0.5) / float64(WindowSize))
		}
	})
	return sineWindowTable
}

// ApplyWindow multiplies each of the 256 samples in frame by the sine
// window in place.
func ApplyWindow(frame []float64) {
	w := SineWindow()
	for i := range frame {
		frame[i] *= w[i]
	}
}

// ClampDivisor returns d if its magnitude is at least SilenceThreshold,
// otherwise a signed value of magnitude SilenceThreshold, to keep
// reciprocal/division operations in the numeric kernels stable.
func ClampDivisor(d float64) float64 {
	if math.Abs(d) >= SilenceThreshold {
		return d
	}
	if d < 0 {
		return -SilenceThreshold
	}
	return SilenceThreshold
}
