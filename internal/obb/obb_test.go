/*
NAME
  obb_test.go

AUTHOR
  PXF contributors

LICENSE
  Copyright (C) 2026 the PXF contributors. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the PXF contributors.
*/

package obb

import (
	"math"
	"testing"
)

func l1(a, b Point) float64 {
	return math.Abs(a[0]-b[0]) + math.Abs(a[1]-b[1]) + math.Abs(a[2]-b[2])
}

func TestRoundtripGrid(t *testing.T) {
	const step = 0.05
	const tolerance = 4e-4
	var worst float64
	for y := -1.0; y <= 1.0; y += step {
		for cb := -1.0; cb <= 1.0; cb += step {
			for cr := -1.0; cr <= 1.0; cr += step {
				p := Point{y, cb, cr}
				rgb := EncodePoint(p, AudioMuLaw)
				back := DecodeRGB(rgb, AudioMuLaw)
				if d := l1(p, back); d > worst {
					worst = d
				}
			}
		}
	}
	if worst > tolerance {
		t.Fatalf("worst-case roundtrip L1 error %.6g exceeds tolerance %.6g", worst, tolerance)
	}
}

func TestRoundtripBinaryMode(t *testing.T) {
	const tolerance = 4e-4
	for _, p := range []Point{{1, 1, 1}, {-1, -1, -1}, {0, 0, 0}, {0.3, -0.7, 0.9}} {
		rgb := EncodePoint(p, BinaryMuLaw)
		back := DecodeRGB(rgb, BinaryMuLaw)
		if d := l1(p, back); d > tolerance {
			t.Fatalf("binary mode roundtrip error %.6g for %v exceeds tolerance", d, p)
		}
	}
}

func TestRGBInRange(t *testing.T) {
	for _, p := range []Point{{1, 1, 1}, {-1, -1, -1}, {0, 0, 0}} {
		rgb := EncodePoint(p, AudioMuLaw)
		for _, c := range rgb {
			if c > 255 {
				t.Fatalf("channel out of range: %v", rgb)
			}
		}
	}
}
