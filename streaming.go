/*
NAME
  streaming.go

DESCRIPTION
  streaming.go implements StreamingAudioDecoder, a row-at-a-time audio
  decode handle that carries the MDCT overlap-add tail across row and
  image boundaries and caches per-row metadata.

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

import "github.com/ausocean/pxf/internal/numerics"

// RowStats is the per-row-block diagnostic snapshot returned by
// StreamingAudioDecoder.GetStatsAtBlock.
type RowStats struct {
	LumaScale   float64
	ChromaScale float64
	BandFactors [4]float64
	SBRWords    *[2]uint32
}

// rowMetaKey identifies one data row's metadata within a channel's
// image sequence.
type rowMetaKey struct {
	imageIndex int
	blockRow   int
}

// StreamingAudioDecoder decodes one assembled audio payload (mono, or
// stereo mid/side reconstructed to left/right) a row at a time.
type StreamingAudioDecoder struct {
	mids, sides        []parsedImage
	sampleRate         int
	totalSamples        int
	posRow             int // next 0-based global row index to decode
	overlapL, overlapR [HopSize]float64
	metaCache          map[rowMetaKey]AudioRowMeta
}

// newStreamingAudioDecoder builds a decoder over mids (or a full mono
// image sequence, with sides nil). When sides is non-nil but shorter
// than mids, the missing side chunks fall back to silence; when sides
// is empty entirely, the decoder duplicates mid into both channels.
func newStreamingAudioDecoder(mids, sides []parsedImage, sampleRate int) *StreamingAudioDecoder {
	total := 0
	for _, p := range mids {
		total += int(p.header.TotalOrBytes)
	}
	return &StreamingAudioDecoder{
		mids:         mids,
		sides:        sides,
		sampleRate:   sampleRate,
		totalSamples: total,
		metaCache:    make(map[rowMetaKey]AudioRowMeta),
	}
}

// rowRowsPerImage returns the number of data rows in image p.
func rowRowsPerImage(p parsedImage) int {
	n := p.img.BlockRows() - FirstDataRow
	if n < 0 {
		n = 0
	}
	return n
}

// locateRow maps a 0-based global row index within images to the
// image and its local row index, reporting ok=false past the end.
func locateRow(images []parsedImage, globalRow int) (parsedImage, int, bool) {
	for _, p := range images {
		n := rowRowsPerImage(p)
		if globalRow < n {
			return p, globalRow, true
		}
		globalRow -= n
	}
	return parsedImage{}, 0, false
}

// totalRows is the number of data rows across every image in images.
func totalRows(images []parsedImage) int {
	n := 0
	for _, p := range images {
		n += rowRowsPerImage(p)
	}
	return n
}

// decodeRow decodes one global row of one channel's image sequence,
// caching its metadata, and returns its samples trimmed to the
// image's remaining valid sample count.
func (d *StreamingAudioDecoder) decodeRow(images []parsedImage, globalRow int, tail [HopSize]float64, channelSalt uint64) ([]float64, [HopSize]float64, bool) {
	p, localRow, ok := locateRow(images, globalRow)
	if !ok {
		return nil, tail, false
	}
	blockRow := FirstDataRow + localRow
	seedFor := func(blockIndex int) uint64 {
		return sbrSeed(p.header.Salt, p.header.ImageIndex, localRow, blockIndex, channelSalt)
	}
	samples, meta, newTail := DecodeAudioRow(p.img, blockRow, localRow, p.header.SampleRate, seedFor, tail)
	d.metaCache[rowMetaKey{p.header.ImageIndex, blockRow}] = meta

	remaining := int(p.header.TotalOrBytes) - localRow*audioRowCapacity
	if remaining < 0 {
		remaining = 0
	}
	if remaining < len(samples) {
		samples = samples[:remaining]
	}
	return samples, newTail, true
}

// Seek repositions the decoder to sampleIndex (rounded down to a row
// boundary), resetting the overlap-add tails and decoding the
// preceding row, if any, to re-prime them.
func (d *StreamingAudioDecoder) Seek(sampleIndex int) {
	if sampleIndex < 0 {
		sampleIndex = 0
	}
	row := sampleIndex / audioRowCapacity
	d.overlapL, d.overlapR = [HopSize]float64{}, [HopSize]float64{}
	if row > 0 {
		_, d.overlapL, _ = d.decodeRow(d.mids, row-1, [HopSize]float64{}, uint64(ChannelStereoMid))
		if d.sides != nil {
			_, d.overlapR, _ = d.decodeRow(d.sides, row-1, [HopSize]float64{}, uint64(ChannelStereoSide))
		}
	}
	d.posRow = row
}

// DecodeChunk decodes approximately seconds worth of audio starting
// at the decoder's current position, advancing it, and returns one
// channel buffer for mono input or two (left, right) for stereo.
func (d *StreamingAudioDecoder) DecodeChunk(seconds float64) [][]float32 {
	if d.sampleRate <= 0 {
		return nil
	}
	wantRows := int(seconds*float64(d.sampleRate)/float64(audioRowCapacity)) + 1
	return d.decodeRows(wantRows)
}

// DecodeAll decodes every remaining row and returns the full channel
// set.
func (d *StreamingAudioDecoder) DecodeAll() [][]float32 {
	return d.decodeRows(totalRows(d.mids) - d.posRow)
}

func (d *StreamingAudioDecoder) decodeRows(n int) [][]float32 {
	if n < 0 {
		n = 0
	}
	stereo := d.sides != nil
	var left, right []float64
	for i := 0; i < n; i++ {
		mSamples, newTailL, ok := d.decodeRow(d.mids, d.posRow, d.overlapL, uint64(ChannelStereoMid))
		if !ok {
			break
		}
		d.overlapL = newTailL
		left = append(left, mSamples...)

		if stereo {
			sSamples, newTailR, sok := d.decodeRow(d.sides, d.posRow, d.overlapR, uint64(ChannelStereoSide))
			if !sok {
				sSamples = make([]float64, len(mSamples))
			}
			d.overlapR = newTailR
			right = append(right, sSamples...)
		}
		d.posRow++
	}

	if !stereo {
		return [][]float32{toFloat32(left)}
	}
	n2 := len(left)
	if len(right) < n2 {
		n2 = len(right)
	}
	lOut := make([]float32, n2)
	rOut := make([]float32, n2)
	for i := 0; i < n2; i++ {
		lOut[i] = float32(left[i] + right[i])
		rOut[i] = float32(left[i] - right[i])
	}
	return [][]float32{lOut, rOut}
}

// GetStatsAtBlock returns the diagnostic snapshot for the data row
// containing globalBlockIndex (0-based across the mid/mono channel's
// image sequence), or nil past the end.
func (d *StreamingAudioDecoder) GetStatsAtBlock(globalBlockIndex int) *RowStats {
	globalRow := globalBlockIndex / DataBlocksPerRow
	p, localRow, ok := locateRow(d.mids, globalRow)
	if !ok {
		return nil
	}
	blockRow := FirstDataRow + localRow
	key := rowMetaKey{p.header.ImageIndex, blockRow}
	meta, cached := d.metaCache[key]
	if !cached {
		meta, _ = ReadAudioRowMeta(p.img, blockRow, localRow)
		d.metaCache[key] = meta
	}

	blockInRow := globalBlockIndex % DataBlocksPerRow
	half, quad := blockLocation(blockInRow)
	lumaScale := float64(numerics.HalfToFloat(meta.ScaleYA))
	if half == 1 {
		lumaScale = float64(numerics.HalfToFloat(meta.ScaleYB))
	}
	chromaScale := chromaScaleFor(half, quad,
		float64(numerics.HalfToFloat(meta.ScaleCAX)), float64(numerics.HalfToFloat(meta.ScaleCAY)),
		float64(numerics.HalfToFloat(meta.ScaleCBX)), float64(numerics.HalfToFloat(meta.ScaleCBY)))

	bandBytes := meta.BandFactorsA
	if half == 1 {
		bandBytes = meta.BandFactorsB
	}
	var bands [4]float64
	for i, b := range bandBytes {
		bands[i] = logDecodeBandFactor(b)
	}

	var sbrWords *[2]uint32
	if meta.SBRWords != [2]uint32{} {
		words := meta.SBRWords
		sbrWords = &words
	}

	return &RowStats{
		LumaScale:   lumaScale,
		ChromaScale: chromaScale,
		BandFactors: bands,
		SBRWords:    sbrWords,
	}
}
