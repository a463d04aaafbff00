/*
NAME
  audiorow.go

DESCRIPTION
  audiorow.go implements the per-row audio encode and decode pipeline
  (MDCT, SBR, whitening, band-factor and scale quantization, DCT,
  OBB color mapping).

AUTHOR
  PXF contributors

LICENSE
  Copyright (C) 2026 the PXF contributors. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the PXF contributors.
*/

package pxf

import (
	"image/color"
	"math"

	"github.com/ausocean/pxf/internal/numerics"
	"github.com/ausocean/pxf/internal/obb"
	"github.com/ausocean/pxf/internal/sbr"
	"github.com/ausocean/pxf/internal/whitening"
)

// HopSize is the MDCT hop (samples advanced per block).
const HopSize = numerics.BlockSize

// WindowSize is the MDCT analysis window length.
const WindowSize = numerics.WindowSize

// subgroupBlocks and quadrantBlocks split a 124-block data row into two
// 62-block subgroups, and each subgroup into two 31-block quadrants.
const (
	subgroupBlocks = 62
	quadrantBlocks = 31
)

// maxScaleHalf is the largest finite binary16 value, the mandatory cap
// on row scale factors.
const maxScaleHalf = 65504

// bandFactorLogBase is used to quantize band-factor reciprocals over
// [0,2] with a log1p-scaled step.
var bandFactorLogBase = math.Log1p(2.0)

func logEncodeBandFactor(x float64) byte {
	if x < 0 {
		x = 0
	}
	if x > 2 {
		x = 2
	}
	t := math.Log1p(x) / bandFactorLogBase
	v := int(math.Round(t * 255))
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	return byte(v)
}

func logDecodeBandFactor(b byte) float64 {
	t := float64(b) / 255
	return math.Expm1(t * bandFactorLogBase)
}

// blockSpatial holds one block's three reconstructed DCT-domain
// spatial arrays, row-major.
type blockSpatial struct {
	y  [64]float64
	cb [16]float64
	cr [16]float64
}

// forwardRowSpectra runs sine-windowed MDCT forward transforms over
// samples (length DataBlocksPerRow*HopSize+HopSize, block i's window
// is samples[i*HopSize : i*HopSize+WindowSize]).
func forwardRowSpectra(samples []float64) [][128]float64 {
	bins := make([][128]float64, DataBlocksPerRow)
	for i := 0; i < DataBlocksPerRow; i++ {
		frame := append([]float64(nil), samples[i*HopSize:i*HopSize+WindowSize]...)
		numerics.ApplyWindow(frame)
		copy(bins[i][:], numerics.Forward(frame))
	}
	return bins
}

// EncodeAudioRow transforms samples (one row's worth of PCM, followed by
// the first HopSize samples of the next row) into row metadata and writes
// the resulting pixels into img's data row at blockRowIndex.
func EncodeAudioRow(img Image, blockRowIndex, localRowIndex int, samples []float64, sampleRate int) error {
	bins := forwardRowSpectra(samples)

	blockSlices := make([][]float64, DataBlocksPerRow)
	for i := range bins {
		blockSlices[i] = bins[i][:]
	}
	sbrWords := sbr.Analyze(blockSlices)

	for i := range bins {
		whitening.Whiten(bins[i][:whitening.NumBins], sampleRate)
	}

	var bandFactorsA, bandFactorsB [4]byte
	applyBandFactors(bins, &bandFactorsA, &bandFactorsB)

	spatial := make([]blockSpatial, DataBlocksPerRow)
	for i := range bins {
		spatial[i] = spatialFromBins(bins[i])
	}

	scaleYA, scaleYB, scaleCAX, scaleCAY, scaleCBX, scaleCBY := computeRowScales(spatial)

	for i := range spatial {
		half, quad := blockLocation(i)
		yScale := scaleYA
		if half == 1 {
			yScale = scaleYB
		}
		cScale := chromaScaleFor(half, quad, scaleCAX, scaleCAY, scaleCBX, scaleCBY)
		writeAudioBlockPixels(img, blockRowIndex, i, spatial[i], yScale, cScale)
	}

	meta := AudioRowMeta{
		SBRWords:     sbrWords,
		ScaleYA:      numerics.FloatToHalf(float32(scaleYA)),
		ScaleYB:      numerics.FloatToHalf(float32(scaleYB)),
		ScaleCAX:     numerics.FloatToHalf(float32(scaleCAX)),
		ScaleCAY:     numerics.FloatToHalf(float32(scaleCAY)),
		ScaleCBX:     numerics.FloatToHalf(float32(scaleCBX)),
		ScaleCBY:     numerics.FloatToHalf(float32(scaleCBY)),
		BandFactorsA: bandFactorsA,
		BandFactorsB: bandFactorsB,
	}
	return WriteAudioRowMeta(img, blockRowIndex, localRowIndex, meta)
}

// blockLocation returns the subgroup half (0=A,1=B) and quadrant
// (0=X,1=Y) of data-row block index i.
func blockLocation(i int) (half, quadrant int) {
	half = i / subgroupBlocks
	local := i % subgroupBlocks
	if local >= quadrantBlocks {
		quadrant = 1
	}
	return half, quadrant
}

// applyBandFactors computes, per subgroup and per 16-bin band over
// bins[0:64), a quantized reciprocal scale and multiplies it in.
func applyBandFactors(bins [][128]float64, bandFactorsA, bandFactorsB *[4]byte) {
	for half := 0; half < 2; half++ {
		lo, hi := half*subgroupBlocks, (half+1)*subgroupBlocks
		var factors [4]byte
		var scales [4]float64
		for b := 0; b < 4; b++ {
			maxAbs := 0.0
			for i := lo; i < hi; i++ {
				for k := b * 16; k < (b+1)*16; k++ {
					if v := math.Abs(bins[i][k]); v > maxAbs {
						maxAbs = v
					}
				}
			}
			recip := 2.0
			if maxAbs > 1e-9 {
				recip = 1.0 / maxAbs
			}
			factors[b] = logEncodeBandFactor(recip)
			scales[b] = logDecodeBandFactor(factors[b])
		}
		for i := lo; i < hi; i++ {
			for k := 0; k < 64; k++ {
				bins[i][k] *= scales[k/16]
			}
		}
		if half == 0 {
			*bandFactorsA = factors
		} else {
			*bandFactorsB = factors
		}
	}
}

// spatialFromBins maps one block's stored MDCT bins into its 8x8 luma
// and 4x4 chroma spatial-domain arrays.
func spatialFromBins(bins [128]float64) blockSpatial {
	lumaGrid := numerics.ScanToGrid(numerics.Zigzag8x8, bins[0:64])
	var cbScan, crScan [16]float64
	for j := 0; j < 16; j++ {
		cbScan[j] = bins[64+2*j]
		crScan[j] = bins[64+2*j+1]
	}
	cbGrid := numerics.ScanToGrid(numerics.Zigzag4x4, cbScan[:])
	crGrid := numerics.ScanToGrid(numerics.Zigzag4x4, crScan[:])

	var out blockSpatial
	copy(out.y[:], numerics.IDCT2D(8, lumaGrid))
	copy(out.cb[:], numerics.IDCT2D(4, cbGrid))
	copy(out.cr[:], numerics.IDCT2D(4, crGrid))
	return out
}

// binsFromSpatial is the inverse of spatialFromBins, used by decode.
func binsFromSpatial(s blockSpatial) [128]float64 {
	lumaGrid := numerics.DCT2D(8, s.y[:])
	cbGrid := numerics.DCT2D(4, s.cb[:])
	crGrid := numerics.DCT2D(4, s.cr[:])

	lumaScan := numerics.GridToScan(numerics.Zigzag8x8, lumaGrid)
	cbScan := numerics.GridToScan(numerics.Zigzag4x4, cbGrid)
	crScan := numerics.GridToScan(numerics.Zigzag4x4, crGrid)

	var bins [128]float64
	copy(bins[0:64], lumaScan)
	for j := 0; j < 16; j++ {
		bins[64+2*j] = cbScan[j]
		bins[64+2*j+1] = crScan[j]
	}
	return bins
}

// computeRowScales derives the six row-wide quantized scale factors.
func computeRowScales(spatial []blockSpatial) (scaleYA, scaleYB, scaleCAX, scaleCAY, scaleCBX, scaleCBY float64) {
	var yMax [2]float64
	var cMax [2][2]float64 // [half][quadrant]
	for i, s := range spatial {
		half, quad := blockLocation(i)
		for _, v := range s.y {
			if a := math.Abs(v); a > yMax[half] {
				yMax[half] = a
			}
		}
		for _, v := range s.cb {
			if a := math.Abs(v); a > cMax[half][quad] {
				cMax[half][quad] = a
			}
		}
		for _, v := range s.cr {
			if a := math.Abs(v); a > cMax[half][quad] {
				cMax[half][quad] = a
			}
		}
	}
	scaleOf := func(m float64) float64 {
		if m <= 1e-9 {
			return maxScaleHalf
		}
		s := 1.0 / m
		if s > maxScaleHalf {
			return maxScaleHalf
		}
		return s
	}
	scaleYA, scaleYB = scaleOf(yMax[0]), scaleOf(yMax[1])
	scaleCAX, scaleCAY = scaleOf(cMax[0][0]), scaleOf(cMax[0][1])
	scaleCBX, scaleCBY = scaleOf(cMax[1][0]), scaleOf(cMax[1][1])
	return
}

func chromaScaleFor(half, quad int, cax, cay, cbx, cby float64) float64 {
	if half == 0 {
		if quad == 0 {
			return cax
		}
		return cay
	}
	if quad == 0 {
		return cbx
	}
	return cby
}

// upsampleChroma4to8 nearest-neighbor upsamples a 4x4 grid to 8x8.
func upsampleChroma4to8(src [16]float64) [64]float64 {
	var out [64]float64
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			out[r*8+c] = src[(r/2)*4+(c/2)]
		}
	}
	return out
}

// downsampleChroma8to4 averages each 2x2 cell of an 8x8 grid to 4x4.
func downsampleChroma8to4(src [64]float64) [16]float64 {
	var out [16]float64
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			sum := src[(2*r)*8+2*c] + src[(2*r)*8+2*c+1] + src[(2*r+1)*8+2*c] + src[(2*r+1)*8+2*c+1]
			out[r*4+c] = sum / 4
		}
	}
	return out
}

// writeAudioBlockPixels scales, upsamples, OBB-encodes, and writes one
// block's spatial data into the image.
func writeAudioBlockPixels(img Image, blockRowIndex, col int, s blockSpatial, yScale, cScale float64) {
	cbUp := upsampleChroma4to8(s.cb)
	crUp := upsampleChroma4to8(s.cr)
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			idx := r*8 + c
			p := obb.Point{s.y[idx] * yScale, cbUp[idx] * cScale, crUp[idx] * cScale}
			rgb := obb.EncodePoint(p, obb.AudioMuLaw)
			img.RGBA.SetRGBA(col*8+c, blockRowIndex*8+r, color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255})
		}
	}
}

// DecodeAudioRow reverses EncodeAudioRow: it reads the data row's
// pixels and metadata, overlap-adds the 124 IMDCT frames using tailIn
// as the carried-over second half of the previous block (zero for the
// very first block of a stream), and returns 124*HopSize reconstructed
// samples, the row metadata, and the new tail to carry into the next
// row's first block. seedFor supplies the per-block SBR noise seed.
func DecodeAudioRow(img Image, blockRowIndex, localRowIndex int, sampleRate int, seedFor func(blockIndex int) uint64, tailIn [HopSize]float64) ([]float64, AudioRowMeta, [HopSize]float64) {
	meta, _ := ReadAudioRowMeta(img, blockRowIndex, localRowIndex)

	yScaleA := float64(numerics.HalfToFloat(meta.ScaleYA))
	yScaleB := float64(numerics.HalfToFloat(meta.ScaleYB))
	cScaleAX := float64(numerics.HalfToFloat(meta.ScaleCAX))
	cScaleAY := float64(numerics.HalfToFloat(meta.ScaleCAY))
	cScaleBX := float64(numerics.HalfToFloat(meta.ScaleCBX))
	cScaleBY := float64(numerics.HalfToFloat(meta.ScaleCBY))

	raw := make([]blockSpatial, DataBlocksPerRow)
	for i := 0; i < DataBlocksPerRow; i++ {
		raw[i] = readAudioBlockPixels(img, blockRowIndex, i)
	}

	// Chroma-attenuation compensation: measure the observed chroma
	// maximum within each half/quadrant and fold it into the divisor.
	var observedCMax [2][2]float64
	for i, s := range raw {
		half, quad := blockLocation(i)
		for _, v := range s.cb {
			if a := math.Abs(v); a > observedCMax[half][quad] {
				observedCMax[half][quad] = a
			}
		}
		for _, v := range s.cr {
			if a := math.Abs(v); a > observedCMax[half][quad] {
				observedCMax[half][quad] = a
			}
		}
	}
	compensate := func(scale, observed float64) float64 {
		if observed <= 1e-9 {
			return scale
		}
		return scale * observed
	}
	cScaleAX = compensate(cScaleAX, observedCMax[0][0])
	cScaleAY = compensate(cScaleAY, observedCMax[0][1])
	cScaleBX = compensate(cScaleBX, observedCMax[1][0])
	cScaleBY = compensate(cScaleBY, observedCMax[1][1])

	bins := make([][128]float64, DataBlocksPerRow)
	for i, s := range raw {
		half, quad := blockLocation(i)
		yScale := yScaleA
		if half == 1 {
			yScale = yScaleB
		}
		cScale := chromaScaleFor(half, quad, cScaleAX, cScaleAY, cScaleBX, cScaleBY)
		if yScale < 1e-9 {
			yScale = 1e-9
		}
		if cScale < 1e-9 {
			cScale = 1e-9
		}
		var unscaled blockSpatial
		for j := range s.y {
			unscaled.y[j] = s.y[j] / yScale
		}
		for j := range s.cb {
			unscaled.cb[j] = s.cb[j] / cScale
			unscaled.cr[j] = s.cr[j] / cScale
		}
		b := binsFromSpatial(unscaled)
		bandA := [4]float64{
			logDecodeBandFactor(meta.BandFactorsA[0]), logDecodeBandFactor(meta.BandFactorsA[1]),
			logDecodeBandFactor(meta.BandFactorsA[2]), logDecodeBandFactor(meta.BandFactorsA[3]),
		}
		bandB := [4]float64{
			logDecodeBandFactor(meta.BandFactorsB[0]), logDecodeBandFactor(meta.BandFactorsB[1]),
			logDecodeBandFactor(meta.BandFactorsB[2]), logDecodeBandFactor(meta.BandFactorsB[3]),
		}
		band := bandA
		if half == 1 {
			band = bandB
		}
		for k := 0; k < 64; k++ {
			f := band[k/16]
			if f > 1e-9 {
				b[k] /= f
			}
		}
		bins[i] = b
	}

	for i := range bins {
		whitening.Unwhiten(bins[i][:whitening.NumBins], sampleRate)
	}
	for i := range bins {
		sbr.Synthesize(bins[i][:], meta.SBRWords, i, seedFor(i))
	}

	samples := make([]float64, DataBlocksPerRow*HopSize)
	tail := tailIn
	for i := range bins {
		frame := numerics.Inverse(bins[i][:])
		for j := 0; j < HopSize; j++ {
			samples[i*HopSize+j] = tail[j] + frame[j]
		}
		copy(tail[:], frame[HopSize:])
	}
	return samples, meta, tail
}

// readAudioBlockPixels inverts writeAudioBlockPixels's OBB encoding
// and chroma upsampling for one block.
func readAudioBlockPixels(img Image, blockRowIndex, col int) blockSpatial {
	var yFull, cbFull, crFull [64]float64
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			rgba := img.RGBA.RGBAAt(col*8+c, blockRowIndex*8+r)
			point := obb.DecodeRGB(obb.RGB{rgba.R, rgba.G, rgba.B}, obb.AudioMuLaw)
			idx := r*8 + c
			yFull[idx] = point[0]
			cbFull[idx] = point[1]
			crFull[idx] = point[2]
		}
	}
	var out blockSpatial
	copy(out.y[:], yFull[:])
	out.cb = downsampleChroma8to4(cbFull)
	out.cr = downsampleChroma8to4(crFull)
	return out
}
