/*
NAME
  obb.go

DESCRIPTION
  obb.go implements the fixed Oriented Bounding Box color map: the
  affine-plus-rotation mapping between an audio/binary point in
  [-1,1]^3 and an 8-bit RGB pixel.

AUTHOR
  PXF contributors

LICENSE
  Copyright (C) 2026 the PXF contributors. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the PXF contributors.
*/

// Package obb implements the oriented-bounding-box point-to-RGB color
// map shared by the audio and binary row pipelines.
package obb

import "math"

// Center is the OBB center in YCbCr space.
var Center = [3]float64{127.426429853651, 128, 128}

// Extents are the OBB half-extents along each axis (Y, Cb, Cr).
var Extents = [3]float64{41.159043640701, 61.527423138263, 48.637958664678}

// Rotation angle constants: the rotation leaves the Y axis fixed and
// rotates the Cb/Cr plane by an angle theta just over 90 degrees
// (cos theta slightly negative, sin theta almost 1).
const (
	rotCos = -0.000087098752
	rotSin = 0.999999996207
)

// Mu-law parameters per axis (Y, Cb, Cr). A value of 0 disables
// mu-law companding for that axis (used in binary mode).
type MuLaw [3]float64

// AudioMuLaw are the mu-law parameters used for audio points.
var AudioMuLaw = MuLaw{6, 2, 3}

// BinaryMuLaw disables mu-law companding entirely, for binary mode.
var BinaryMuLaw = MuLaw{0, 0, 0}

// Point is a point in the OBB's unnormalized (y, cb, cr) input space,
// each nominally in [-1, 1].
type Point [3]float64

// RGB is an 8-bit pixel color.
type RGB [3]uint8

func muLawCompand(x, mu float64) float64 {
	if mu <= 0 {
		return x
	}
	sign := 1.0
	if x < 0 {
		sign = -1.0
	}
	return sign * math.Log1p(mu*math.Abs(x)) / math.Log1p(mu)
}

func muLawExpand(y, mu float64) float64 {
	if mu <= 0 {
		return y
	}
	sign := 1.0
	if y < 0 {
		sign = -1.0
	}
	return sign * math.Expm1(math.Abs(y)*math.Log1p(mu)) / mu
}

// rotate applies the fixed Y/Cb-Cr plane rotation to a (y, cb, cr)
// vector (X/luma axis fixed).
func rotate(v [3]float64) [3]float64 {
	return [3]float64{
		v[0],
		rotCos*v[1] - rotSin*v[2],
		rotSin*v[1] + rotCos*v[2],
	}
}

// rotateInverse applies the transpose (inverse) rotation.
func rotateInverse(v [3]float64) [3]float64 {
	return [3]float64{
		v[0],
		rotCos*v[1] + rotSin*v[2],
		-rotSin*v[1] + rotCos*v[2],
	}
}

func clampRound(x float64) uint8 {
	r := math.Round(x)
	if r < 0 {
		return 0
	}
	if r > 255 {
		return 255
	}
	return uint8(r)
}

// EncodePoint maps a point in [-1,1]^3 to an RGB pixel using the given
// mu-law parameters (AudioMuLaw or BinaryMuLaw).
func EncodePoint(p Point, mu MuLaw) RGB {
	companded := [3]float64{
		muLawCompand(p[0], mu[0]),
		muLawCompand(p[1], mu[1]),
		muLawCompand(p[2], mu[2]),
	}
	scaled := [3]float64{
		companded[0] * Extents[0],
		companded[1] * Extents[1],
		companded[2] * Extents[2],
	}
	rotated := rotate(scaled)
	ycbcr := [3]float64{
		rotated[0] + Center[0],
		rotated[1] + Center[1],
		rotated[2] + Center[2],
	}
	return ycbcrToRGB(ycbcr)
}

// DecodeRGB maps an RGB pixel back to the nearest point in [-1,1]^3
// using the given mu-law parameters.
func DecodeRGB(c RGB, mu MuLaw) Point {
	ycbcr := rgbToYCbCr(c)
	centered := [3]float64{
		ycbcr[0] - Center[0],
		ycbcr[1] - Center[1],
		ycbcr[2] - Center[2],
	}
	unrotated := rotateInverse(centered)
	unscaled := [3]float64{
		unrotated[0] / Extents[0],
		unrotated[1] / Extents[1],
		unrotated[2] / Extents[2],
	}
	return Point{
		muLawExpand(unscaled[0], mu[0]),
		muLawExpand(unscaled[1], mu[1]),
		muLawExpand(unscaled[2], mu[2]),
	}
}

// ycbcrToRGB converts a (Y, Cb, Cr) triple (Y in [0,255], Cb/Cr offset
// by 128) to RGB using the BT.601 matrix, rounding and clamping to
// [0,255].
func ycbcrToRGB(ycbcr [3]float64) RGB {
	y, cb, cr := ycbcr[0], ycbcr[1]-128, ycbcr[2]-128
	r := y + 1.402*cr
	g := y - 0.344136*cb - 0.714136*cr
	b := y + 1.772*cb
	return RGB{clampRound(r), clampRound(g), clampRound(b)}
}

// rgbToYCbCr converts an RGB pixel to (Y, Cb, Cr) using the BT.601
// matrix.
func rgbToYCbCr(c RGB) [3]float64 {
	r, g, b := float64(c[0]), float64(c[1]), float64(c[2])
	y := 0.299*r + 0.587*g + 0.114*b
	cb := -0.168736*r - 0.331264*g + 0.5*b + 128
	cr := 0.5*r - 0.418688*g - 0.081312*b + 128
	return [3]float64{y, cb, cr}
}
