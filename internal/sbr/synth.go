/*
NAME
  synth.go

DESCRIPTION
  synth.go reconstructs MDCT bins 96..127 from bins 0..95 and a
  subgroup's control word.

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

// SubgroupBlocks is the number of data-row blocks one subgroup word
// covers.
const SubgroupBlocks = 62

// silenceThreshold below which a source or target region is treated
// as silent.
const silenceThreshold = 1e-9

// controlX holds the 5 control-point bin positions used to interpolate
// the per-bin gain curve.
var controlX = [5]float64{95.5, 99.5, 107.5, 115.5, 123.5}

// SourceBin returns the MDCT bin index the patch mode maps target
// offset j (0..31, where j = k-96) onto.
func SourceBin(patchMode, j int) int {
	switch patchMode {
	case PatchAdjacent:
		return 64 + j
	case PatchLower:
		return 48 + j
	case PatchBass:
		return 32 + j
	case PatchMirror:
		if j%2 == 0 {
			return 64 + (30 - j)
		}
		return 64 + (32 - j)
	default:
		return 64 + j
	}
}

// meanAbs returns the mean absolute value of bins[lo:hi].
func meanAbs(bins []float64, lo, hi int) float64 {
	if hi <= lo {
		return 0
	}
	sum := 0.0
	for i := lo; i < hi; i++ {
		sum += math.Abs(bins[i])
	}
	return sum / float64(hi-lo)
}

// junctionGainDB derives the gain applied at the replication boundary,
// measured against the decoded low band when the patch allows it.
func junctionGainDB(bins []float64, p Params, bandGain0 float64) float64 {
	if p.PatchMode == PatchMirror {
		return bandGain0
	}
	targetEnergy := meanAbs(bins, 88, 96)
	if targetEnergy < silenceThreshold {
		return bandGain0
	}
	srcSum := 0.0
	for j := 0; j < 8; j++ {
		srcSum += math.Abs(bins[SourceBin(p.PatchMode, j)])
	}
	srcEnergy := srcSum / 8
	if srcEnergy < silenceThreshold {
		return bandGain0
	}
	ratio := 20 * math.Log10(targetEnergy/srcEnergy)
	lo, hi := bandGain0-6, bandGain0+6
	if ratio < lo {
		return lo
	}
	if ratio > hi {
		return hi
	}
	return ratio
}

// interpolateGainDB piecewise-linearly interpolates the control-point
// gain curve at bin position x.
func interpolateGainDB(y [5]float64, x float64) float64 {
	if x <= controlX[0] {
		return y[0]
	}
	if x >= controlX[4] {
		return y[4]
	}
	for i := 0; i < 4; i++ {
		if x >= controlX[i] && x <= controlX[i+1] {
			frac := (x - controlX[i]) / (controlX[i+1] - controlX[i])
			return y[i]*(1-frac) + y[i+1]*frac
		}
	}
	return y[4]
}

// temporalShapeFactor returns the per-block envelope multiplier for
// transient code (0 flat, 1 attack, 2 decay, 3 impulse) at position
// blockInSubgroup (0..61).
func temporalShapeFactor(code int, blockInSubgroup int) float64 {
	t := float64(blockInSubgroup) / float64(SubgroupBlocks-1)
	switch code {
	case 1: // attack
		return 0.3 + 0.7*t
	case 2: // decay
		return 1.0 - 0.7*t
	case 3: // impulse
		d := t - 0.5
		return 0.3 + 0.7*math.Exp(-20*d*d)
	default: // flat
		return 1.0
	}
}

// harmonicShape applies cubic shaping to v, normalized against peak.
func harmonicShape(v, peak float64) float64 {
	if peak < silenceThreshold {
		return v
	}
	n := v / peak
	return n * n * n * peak
}

// Synthesize fills bins[96:128] from bins[0:96] (already decoded and
// un-whitened) using the subgroup control words for the data row,
// where blockInDataRow is the block's position (0..123) within its
// 124-block data row, and seed is the per-block SBR noise seed.
func Synthesize(bins []float64, words [2]uint32, blockInDataRow int, seed uint64) {
	subgroupIdx := blockInDataRow / SubgroupBlocks
	if subgroupIdx > 1 {
		subgroupIdx = 1
	}
	blockInSubgroup := blockInDataRow % SubgroupBlocks

	p := DecodeWord(words[subgroupIdx])
	hf := p.hfGainDB(blockInSubgroup)

	var bandGain [4]float64
	for b := 0; b < 4; b++ {
		bandGain[b] = hf + p.bandEnvelopeDB(b)
	}
	junction := junctionGainDB(bins, p, bandGain[0])

	y := [5]float64{junction, bandGain[0], bandGain[1], bandGain[2], bandGain[3]}

	noiseRatio := p.noiseRatio(blockInSubgroup)
	toneRatio := 1 - noiseRatio
	tonalityRatio := p.tonalityRatio()
	wTonal := math.Sqrt(tonalityRatio * toneRatio)
	wNoisy := math.Sqrt((1-tonalityRatio)*toneRatio + noiseRatio)

	noiseScale := meanAbs(bins, 88, 96)
	if noiseScale < silenceThreshold {
		noiseScale = silenceThreshold
	}

	transientCode := p.transientCode(blockInSubgroup)
	shape := temporalShapeFactor(transientCode, blockInSubgroup)

	for j := 0; j < TargetEnd-TargetStart; j++ {
		k := TargetStart + j
		b := j / BandSize
		srcBin := SourceBin(p.PatchMode, j)
		srcVal := bins[srcBin]

		tonal := srcVal
		switch p.ProcessingMode {
		case ProcTransient:
			if math.Abs(srcVal) < silenceThreshold {
				tonal = 0
			}
		case ProcHarmonic:
			peak := meanAbs(bins, srcBin-srcBin%8, srcBin-srcBin%8+8) * 3
			tonal = harmonicShape(srcVal, peak)
		}

		noise := noiseSample(seed, k) * noiseScale
		combined := wTonal*tonal + wNoisy*noise

		if p.ProcessingMode == ProcInverse && j%2 == 1 {
			combined = -combined
		}

		gainDB := interpolateGainDB(y, float64(k)+0.5)
		bins[k] = combined * math.Pow(10, gainDB/20) * shape
	}
}
