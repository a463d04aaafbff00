/*
NAME
  analysis.go

DESCRIPTION
  analysis.go is the encoder-side counterpart of synth.go: given a
  subgroup's original (pre-whitening) MDCT bins it derives the control
  word that lets the decoder reconstruct bins 96..127.

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

// temporalSwitchGainDB is the hfGain-difference threshold between a
// subgroup's two halves above which temporal mode is used.
const temporalSwitchGainDB = 4.0

// temporalSwitchEnergyFrac is the fractional energy-variation
// threshold between a subgroup's two halves above which temporal mode
// is used.
const temporalSwitchEnergyFrac = 0.5

// halfAnalysis holds the per-half measurements used both to decide
// normal vs. temporal mode and to populate the resulting Params.
type halfAnalysis struct {
	hfGainDB     float64
	bandRatioDB  [4]float64
	energy       float64
	tonality     float64
	noiseFloor   float64
}

// analyzeHalf measures a run of blocks (one 31-block half of a
// subgroup, or a whole 62-block subgroup) given the
// per-block bin slices (each length >= TargetEnd) and the chosen patch
// mode.
func analyzeHalf(blocks [][]float64, patchMode int) halfAnalysis {
	var targetBand, srcBand [4]float64
	var totalTarget, totalSrc, energy float64
	var geoSum, arithSum float64
	var count int

	for _, bins := range blocks {
		for b := 0; b < NumBands; b++ {
			var tSum, sSum float64
			for i := 0; i < BandSize; i++ {
				j := b*BandSize + i
				k := TargetStart + j
				tSum += math.Abs(bins[k])
				sSum += math.Abs(bins[SourceBin(patchMode, j)])
				energy += bins[k] * bins[k]
				mag := math.Abs(bins[k])
				if mag < 1e-12 {
					mag = 1e-12
				}
				geoSum += math.Log(mag)
				arithSum += mag
				count++
			}
			targetBand[b] += tSum
			srcBand[b] += sSum
		}
		totalTarget += sumAbsRange(bins, TargetStart, TargetEnd)
		totalSrc += sumAbsSourceRange(bins, patchMode)
	}

	var h halfAnalysis
	ratio := totalTarget / math.Max(totalSrc, silenceThreshold)
	h.hfGainDB = clampDB(20*math.Log10(math.Max(ratio, 1e-12)), -48, 15)
	for b := 0; b < 4; b++ {
		r := targetBand[b] / math.Max(srcBand[b], silenceThreshold)
		h.bandRatioDB[b] = 20*math.Log10(math.Max(r, 1e-12)) - h.hfGainDB
	}
	h.energy = energy

	geoMean := math.Exp(geoSum / float64(count))
	arithMean := arithSum / float64(count)
	flatness := geoMean / math.Max(arithMean, 1e-12) // near 1: noise-like, near 0: tonal/peaky.
	h.tonality = 1 - flatness
	h.noiseFloor = flatness
	return h
}

func sumAbsRange(bins []float64, lo, hi int) float64 {
	s := 0.0
	for i := lo; i < hi; i++ {
		s += math.Abs(bins[i])
	}
	return s
}

func sumAbsSourceRange(bins []float64, patchMode int) float64 {
	s := 0.0
	for j := 0; j < TargetEnd-TargetStart; j++ {
		s += math.Abs(bins[SourceBin(patchMode, j)])
	}
	return s
}

func clampDB(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// bestPatchMode picks the patch mode minimizing weighted target/source
// band energy error over all blocks of the subgroup.
func bestPatchMode(blocks [][]float64) int {
	best, bestErr := PatchAdjacent, math.Inf(1)
	for mode := PatchAdjacent; mode <= PatchMirror; mode++ {
		errSum := 0.0
		for _, bins := range blocks {
			for j := 0; j < TargetEnd-TargetStart; j++ {
				k := TargetStart + j
				d := math.Abs(bins[k]) - math.Abs(bins[SourceBin(mode, j)])
				errSum += d * d
			}
		}
		if errSum < bestErr {
			bestErr = errSum
			best = mode
		}
	}
	return best
}

// transientShapeOf derives a transient code from the per-block
// magnitude trend: it compares the average over the first half of the
// blocks with the average over the second half, and returns 1 (attack)
// or 2 (decay) when one exceeds the other by more than edgeRatio, else
// 0 (flat). Code 3 (impulse) is never returned, because rise and fall
// cannot both be positive.
func transientShapeOf(blocks [][]float64) int {
	if len(blocks) < 2 {
		return 0
	}
	energies := make([]float64, len(blocks))
	for i, bins := range blocks {
		energies[i] = sumAbsRange(bins, TargetStart, TargetEnd)
	}
	half := len(energies) / 2
	var firstSum, secondSum float64
	for i := 0; i < half; i++ {
		firstSum += energies[i]
	}
	for i := half; i < len(energies); i++ {
		secondSum += energies[i]
	}
	firstAvg := firstSum / math.Max(float64(half), 1)
	secondAvg := secondSum / math.Max(float64(len(energies)-half), 1)

	rise := secondAvg - firstAvg
	fall := firstAvg - secondAvg
	const edgeRatio = 1.5
	riseDominant := rise > 0 && firstAvg > 0 && secondAvg/math.Max(firstAvg, 1e-12) > edgeRatio
	fallDominant := fall > 0 && secondAvg > 0 && firstAvg/math.Max(secondAvg, 1e-12) > edgeRatio

	switch {
	case riseDominant && fallDominant:
		return 3 // impulse
	case riseDominant:
		return 1 // attack
	case fallDominant:
		return 2 // decay
	default:
		return 0 // flat
	}
}

// Analyze derives the control words for a data row's two 62-block
// subgroups, given the original (pre-whitening) bins of every block
// (each bins slice must have length >= TargetEnd). blocks must have
// exactly 124 entries, one per data-row block.
func Analyze(blocks [][]float64) [2]uint32 {
	var words [2]uint32
	for sg := 0; sg < 2; sg++ {
		sub := blocks[sg*SubgroupBlocks : (sg+1)*SubgroupBlocks]
		patchMode := bestPatchMode(sub)

		firstHalf := sub[:SubgroupBlocks/2]
		secondHalf := sub[SubgroupBlocks/2:]
		a := analyzeHalf(firstHalf, patchMode)
		b := analyzeHalf(secondHalf, patchMode)

		gainDiff := math.Abs(a.hfGainDB - b.hfGainDB)
		maxEnergy := math.Max(a.energy, b.energy)
		var fracVar float64
		if maxEnergy > silenceThreshold {
			fracVar = math.Abs(a.energy-b.energy) / maxEnergy
		}
		temporal := gainDiff > temporalSwitchGainDB || fracVar > temporalSwitchEnergyFrac

		whole := analyzeHalf(sub, patchMode)
		transient := transientShapeOf(sub)

		var p Params
		p.PatchMode = patchMode
		p.ProcessingMode = ProcNormal // always mode 0 at the analyzer, per design note (2).
		p.Temporal = temporal

		if !temporal {
			p.GainIndex = clampIndex(int(math.Round(whole.hfGainDB))+48, 0, 63)
			for bb := 0; bb < 4; bb++ {
				p.BandEnvelope[bb] = clampIndex(int(math.Round((whole.bandRatioDB[bb]+6)/2)), 0, 7)
			}
			p.NoiseFloor = clampIndex(int(math.Round(whole.noiseFloor*15)), 0, 15)
			p.Tonality = clampIndex(int(math.Round(whole.tonality*7)), 0, 7)
			p.TransientShape = transient
		} else {
			p.Tonality = clampIndex(int(math.Round(whole.tonality*3)), 0, 3)
			for bb := 0; bb < 4; bb++ {
				p.BandEnvelope[bb] = clampIndex(int(math.Round((whole.bandRatioDB[bb]+4.5)/3)), 0, 3)
			}
			p.HFGainAIdx = clampIndex(int(math.Round((a.hfGainDB+48)/2)), 0, 31)
			p.HFGainBIdx = clampIndex(int(math.Round((b.hfGainDB+48)/2)), 0, 31)
			p.NoiseAIdx = clampIndex(int(math.Round(a.noiseFloor*3)), 0, 3)
			p.NoiseBIdx = clampIndex(int(math.Round(b.noiseFloor*3)), 0, 3)
			if transientShapeOf(firstHalf) != 0 {
				p.TransientAIdx = 1
			}
			if transientShapeOf(secondHalf) != 0 {
				p.TransientBIdx = 1
			}
		}
		words[sg] = p.EncodeWord()
	}
	return words
}

func clampIndex(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
