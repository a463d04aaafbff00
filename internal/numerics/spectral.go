/*
NAME
  spectral.go

DESCRIPTION
  spectral.go provides an independent FFT-based magnitude spectrum, a
  cross-check of the MDCT kernel's bin ordering and energy that does
  not depend on the MDCT implementation itself. No test or other code
  in this repository calls it.

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
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

// FFTMagnitude returns the one-sided magnitude spectrum of frame after
// applying a Hann analysis window, for use as an independent check
// against the MDCT bin magnitudes.
func FFTMagnitude(frame []float64) []float64 {
	win := window.Hann(len(frame))
	windowed := make([]float64, len(frame))
	for i := range frame {
		windowed[i] = frame[i] * win[i]
	}
	spectrum := fft.FFTReal(windowed)
	out := make([]float64, len(spectrum)/2+1)
	for i := range out {
		out[i] = cmplx.Abs(spectrum[i])
	}
	return out
}
