/*
NAME
  sbr_test.go

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

import (
	"math"
	"testing"
)

func TestWordRoundtripNormal(t *testing.T) {
	p := Params{
		GainIndex:      40,
		BandEnvelope:   [4]int{1, 2, 3, 4},
		NoiseFloor:     9,
		Tonality:       5,
		PatchMode:      PatchLower,
		ProcessingMode: ProcHarmonic,
		TransientShape: 2,
	}
	got := DecodeWord(p.EncodeWord())
	if got.GainIndex != p.GainIndex || got.NoiseFloor != p.NoiseFloor || got.Tonality != p.Tonality ||
		got.PatchMode != p.PatchMode || got.ProcessingMode != p.ProcessingMode || got.TransientShape != p.TransientShape ||
		got.BandEnvelope != p.BandEnvelope {
		t.Fatalf("normal word roundtrip mismatch: got %+v, want %+v", got, p)
	}
	if got.Temporal {
		t.Fatal("flag bit incorrectly set for normal mode")
	}
}

func TestWordRoundtripTemporal(t *testing.T) {
	p := Params{
		Temporal:       true,
		PatchMode:      PatchBass,
		ProcessingMode: ProcInverse,
		Tonality:       2,
		BandEnvelope:   [4]int{0, 1, 2, 3},
		HFGainAIdx:     10,
		HFGainBIdx:     20,
		NoiseAIdx:      1,
		NoiseBIdx:      3,
		TransientAIdx:  1,
		TransientBIdx:  0,
	}
	got := DecodeWord(p.EncodeWord())
	if !got.Temporal {
		t.Fatal("flag bit not set for temporal mode")
	}
	if got.PatchMode != p.PatchMode || got.ProcessingMode != p.ProcessingMode || got.Tonality != p.Tonality ||
		got.BandEnvelope != p.BandEnvelope || got.HFGainAIdx != p.HFGainAIdx || got.HFGainBIdx != p.HFGainBIdx ||
		got.NoiseAIdx != p.NoiseAIdx || got.NoiseBIdx != p.NoiseBIdx ||
		got.TransientAIdx != p.TransientAIdx || got.TransientBIdx != p.TransientBIdx {
		t.Fatalf("temporal word roundtrip mismatch: got %+v, want %+v", got, p)
	}
}

func TestSourceBinMirrorParity(t *testing.T) {
	for j := 0; j < 32; j++ {
		src := SourceBin(PatchMirror, j)
		if (src % 2) != (j % 2) {
			t.Errorf("mirror patch broke parity at j=%d: src=%d", j, src)
		}
	}
}

func makeSyntheticBins(amp float64, bias int) []float64 {
	bins := make([]float64, TargetEnd)
	for i := range bins {
		bins[i] = amp * math.Sin(float64(i+bias)*0.37)
	}
	return bins
}

func TestAnalyzeSynthesizeRoundShape(t *testing.T) {
	blocks := make([][]float64, 124)
	for i := range blocks {
		blocks[i] = makeSyntheticBins(0.2, i)
	}
	words := Analyze(blocks)

	for bi := 0; bi < 124; bi++ {
		bins := append([]float64(nil), blocks[bi][:TargetStart]...)
		bins = append(bins, make([]float64, TargetEnd-TargetStart)...)
		Synthesize(bins, words, bi, Seed(1, 2, 3))
		for k := TargetStart; k < TargetEnd; k++ {
			if math.IsNaN(bins[k]) || math.IsInf(bins[k], 0) {
				t.Fatalf("block %d bin %d produced non-finite value", bi, k)
			}
		}
	}
}

func TestNoiseSampleDeterministic(t *testing.T) {
	a := noiseSample(42, 7)
	b := noiseSample(42, 7)
	if a != b {
		t.Fatal("noiseSample not deterministic for identical inputs")
	}
	c := noiseSample(42, 8)
	if a == c {
		t.Fatal("noiseSample collided across adjacent bin indices")
	}
}

func TestStereoSaltDiffersByChannel(t *testing.T) {
	m := StereoSalt(1, 2, 3, 0)
	s := StereoSalt(1, 2, 3, 1)
	if m == s {
		t.Fatal("mid/side channel salts collided")
	}
}
