/*
NAME
  params.go

DESCRIPTION
  params.go packs and unpacks the two 32-bit subgroup control words
  carried in audio row metadata.

AUTHOR
  PXF contributors

LICENSE
  Copyright (C) 2026 the PXF contributors. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the PXF contributors.
*/

// Package sbr implements Spectral Band Replication analysis and
// synthesis for the high-frequency MDCT bins (96..127) that are never
// stored directly.
package sbr

import "github.com/ausocean/utils/logging"

// Log is the package logger, set by the embedding application.
var Log logging.Logger

// Target bin range reconstructed by SBR.
const (
	TargetStart = 96
	TargetEnd   = 128 // exclusive
	NumBands    = 4
	BandSize    = 8
)

// Processing modes.
const (
	ProcNormal = iota
	ProcTransient
	ProcHarmonic
	ProcInverse
)

// Patch (source-bin) selection modes.
const (
	PatchAdjacent = iota
	PatchLower
	PatchBass
	PatchMirror
)

// Params holds the decoded fields of one subgroup control word,
// covering either the normal or the temporal bit layout.
type Params struct {
	Temporal       bool
	PatchMode      int
	ProcessingMode int
	TransientShape int // normal mode only: 0 flat, 1 attack, 2 decay, 3 impulse

	// Normal-mode fields.
	GainIndex    int     // 0..63, gain = GainIndex-48 dB
	BandEnvelope [4]int  // raw index per band, in both layouts

	// Temporal-mode fields (Tonality is used by both layouts).
	Tonality      int
	HFGainAIdx    int
	HFGainBIdx    int
	NoiseAIdx     int
	NoiseBIdx     int
	TransientAIdx int
	TransientBIdx int

	// NoiseFloor is the normal-mode 4-bit noise floor index (0..15).
	NoiseFloor int
}

// DecodeWord unpacks a 32-bit subgroup control word into Params.
func DecodeWord(w uint32) Params {
	if w&1 == 0 {
		return decodeNormal(w)
	}
	return decodeTemporal(w)
}

func decodeNormal(w uint32) Params {
	var p Params
	p.GainIndex = int((w >> 26) & 0x3F)
	for b := 0; b < 4; b++ {
		shift := 14 + (3 - b) * 3
		p.BandEnvelope[b] = int((w >> uint(shift)) & 0x7)
	}
	p.NoiseFloor = int((w >> 10) & 0xF)
	p.Tonality = int((w >> 7) & 0x7)
	p.PatchMode = int((w >> 5) & 0x3)
	p.ProcessingMode = int((w >> 3) & 0x3)
	p.TransientShape = int((w >> 1) & 0x3)
	return p
}

func decodeTemporal(w uint32) Params {
	var p Params
	p.Temporal = true
	p.PatchMode = int((w >> 30) & 0x3)
	p.ProcessingMode = int((w >> 28) & 0x3)
	p.Tonality = int((w >> 26) & 0x3)
	for b := 0; b < 4; b++ {
		shift := 18 + (3 - b) * 2
		p.BandEnvelope[b] = int((w >> uint(shift)) & 0x3)
	}
	p.HFGainAIdx = int((w >> 13) & 0x1F)
	p.NoiseAIdx = int((w >> 11) & 0x3)
	p.TransientAIdx = int((w >> 10) & 0x1)
	p.HFGainBIdx = int((w >> 5) & 0x1F)
	p.NoiseBIdx = int((w >> 3) & 0x3)
	p.TransientBIdx = int((w >> 2) & 0x1)
	return p
}

// EncodeWord packs p into a 32-bit subgroup control word.
func (p Params) EncodeWord() uint32 {
	if p.Temporal {
		return p.encodeTemporal()
	}
	return p.encodeNormal()
}

func (p Params) encodeNormal() uint32 {
	var w uint32
	w |= (uint32(p.GainIndex) & 0x3F) << 26
	for b := 0; b < 4; b++ {
		shift := 14 + (3 - b) * 3
		w |= (uint32(p.BandEnvelope[b]) & 0x7) << uint(shift)
	}
	w |= (uint32(p.NoiseFloor) & 0xF) << 10
	w |= (uint32(p.Tonality) & 0x7) << 7
	w |= (uint32(p.PatchMode) & 0x3) << 5
	w |= (uint32(p.ProcessingMode) & 0x3) << 3
	w |= (uint32(p.TransientShape) & 0x3) << 1
	return w // flag bit 0 = 0
}

func (p Params) encodeTemporal() uint32 {
	var w uint32
	w |= (uint32(p.PatchMode) & 0x3) << 30
	w |= (uint32(p.ProcessingMode) & 0x3) << 28
	w |= (uint32(p.Tonality) & 0x3) << 26
	for b := 0; b < 4; b++ {
		shift := 18 + (3 - b) * 2
		w |= (uint32(p.BandEnvelope[b]) & 0x3) << uint(shift)
	}
	w |= (uint32(p.HFGainAIdx) & 0x1F) << 13
	w |= (uint32(p.NoiseAIdx) & 0x3) << 11
	w |= (uint32(p.TransientAIdx) & 0x1) << 10
	w |= (uint32(p.HFGainBIdx) & 0x1F) << 5
	w |= (uint32(p.NoiseBIdx) & 0x3) << 3
	w |= (uint32(p.TransientBIdx) & 0x1) << 2
	w |= 1 // flag bit 0 = 1
	return w
}

// maxTonality returns the tonality index's maximum value for the
// mode p is in: 7 for normal (3 bits), 3 for temporal (2 bits).
func (p Params) maxTonality() int {
	if p.Temporal {
		return 3
	}
	return 7
}

// hfGainDB returns the effective overall gain in dB for a block at
// position blockInSubgroup (0..61) within the 62-block subgroup.
func (p Params) hfGainDB(blockInSubgroup int) float64 {
	if !p.Temporal {
		return float64(p.GainIndex) - 48
	}
	if blockInSubgroup < 31 {
		return float64(p.HFGainAIdx)*2 - 48
	}
	return float64(p.HFGainBIdx)*2 - 48
}

// bandEnvelopeDB returns the per-band envelope offset in dB for band b
// (0..3).
func (p Params) bandEnvelopeDB(b int) float64 {
	if p.Temporal {
		return float64(p.BandEnvelope[b])*3 - 4.5
	}
	return float64(p.BandEnvelope[b])*2 - 6
}

// noiseRatio returns the noiseFloor/15 ratio for a block at
// blockInSubgroup, from the temporal A/B or normal noise floor fields.
func (p Params) noiseRatio(blockInSubgroup int) float64 {
	if !p.Temporal {
		return float64(p.NoiseFloor) / 15
	}
	idx := p.NoiseAIdx
	if blockInSubgroup >= 31 {
		idx = p.NoiseBIdx
	}
	// Temporal noise is carried in 2 bits; scale onto the same 0..15
	// range used by noiseRatio so both modes share one formula.
	return float64(idx) * 5 / 15
}

// tonalityRatio returns tonality normalized to [0,1].
func (p Params) tonalityRatio() float64 {
	return float64(p.Tonality) / float64(p.maxTonality())
}

// transientCode returns a 0..3 transient shape code for the block at
// blockInSubgroup: the normal mode's 2-bit field directly, or the
// temporal mode's 1-bit A/B field widened to {0: flat, 3: impulse}.
func (p Params) transientCode(blockInSubgroup int) int {
	if !p.Temporal {
		return p.TransientShape
	}
	bit := p.TransientAIdx
	if blockInSubgroup >= 31 {
		bit = p.TransientBIdx
	}
	if bit == 0 {
		return 0
	}
	return 3
}
