/*
NAME
  halffloat_test.go

DESCRIPTION
  halffloat_test.go checks binary16 roundtrip fidelity across every
  normalized code point, plus subnormal and NaN behavior.

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
	"testing"
)

func TestHalfRoundtripNormalized(t *testing.T) {
	for code := 0x0400; code <= 0x7bff; code++ {
		h := Half(code)
		f := HalfToFloat(h)
		got := FloatToHalf(f)
		if got != h {
			t.Fatalf("code 0x%04x: HalfToFloat->FloatToHalf gave 0x%04x (float %v)", code, got, f)
		}
	}
}

func TestHalfRoundtripNegativeNormalized(t *testing.T) {
	for code := 0x8400; code <= 0xfbff; code++ {
		h := Half(code)
		f := HalfToFloat(h)
		got := FloatToHalf(f)
		if got != h {
			t.Fatalf("code 0x%04x: HalfToFloat->FloatToHalf gave 0x%04x (float %v)", code, got, f)
		}
	}
}

func TestHalfSubnormalRoundtrip(t *testing.T) {
	for code := 0x0001; code <= 0x03ff; code++ {
		h := Half(code)
		f := HalfToFloat(h)
		got := FloatToHalf(f)
		if got != h {
			t.Fatalf("subnormal code 0x%04x: roundtrip gave 0x%04x (float %v)", code, got, f)
		}
	}
}

func TestHalfZero(t *testing.T) {
	if FloatToHalf(0) != Half(0) {
		t.Fatalf("+0 did not map to 0x0000")
	}
	if FloatToHalf(float32(math.Copysign(0, -1))) != Half(0x8000) {
		t.Fatalf("-0 did not map to 0x8000")
	}
}

func TestHalfInfinity(t *testing.T) {
	if h := FloatToHalf(float32(math.Inf(1))); h != 0x7c00 {
		t.Fatalf("+Inf -> 0x%04x, want 0x7c00", h)
	}
	if h := FloatToHalf(float32(math.Inf(-1))); h != 0xfc00 {
		t.Fatalf("-Inf -> 0x%04x, want 0xfc00", h)
	}
	if f := HalfToFloat(0x7c00); !math.IsInf(float64(f), 1) {
		t.Fatalf("0x7c00 did not decode to +Inf, got %v", f)
	}
}

func TestHalfNaNSurvives(t *testing.T) {
	f := HalfToFloat(0x7e00)
	if !math.IsNaN(float64(f)) {
		t.Fatalf("0x7e00 did not decode to NaN, got %v", f)
	}
	got := FloatToHalf(f)
	if got&0x7c00 != 0x7c00 || got&0x3ff == 0 {
		t.Fatalf("NaN roundtrip lost its exponent/payload: 0x%04x", got)
	}
}

func TestHalfOverflowSaturates(t *testing.T) {
	if h := FloatToHalf(1e9); h != 0x7c00 {
		t.Fatalf("large finite float did not saturate to +Inf: 0x%04x", h)
	}
	if h := FloatToHalf(-1e9); h != 0xfc00 {
		t.Fatalf("large negative finite float did not saturate to -Inf: 0x%04x", h)
	}
}

func TestHalfMaxFinite(t *testing.T) {
	h := Half(0x7bff) // 65504, the largest finite binary16.
	if f := HalfToFloat(h); f != 65504 {
		t.Fatalf("0x7bff decoded to %v, want 65504", f)
	}
	if got := FloatToHalf(65504); got != h {
		t.Fatalf("65504 encoded to 0x%04x, want 0x7bff", got)
	}
}
