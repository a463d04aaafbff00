/*
NAME
  encode.go

DESCRIPTION
  encode.go implements the top-level Encoder: audio and binary input
  validation, chunking into one or more images, and per-image header,
  text, and data row assembly.

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
	"fmt"

	"github.com/ausocean/pxf/internal/bitpack"
	"github.com/ausocean/pxf/internal/prng"
)

// progressRowInterval is how often, in data rows, the Progress callback
// fires during a single image's row loop.
const progressRowInterval = 5

// audioRowCapacity is the number of PCM samples one audio data row
// carries: DataBlocksPerRow blocks of HopSize samples each.
const audioRowCapacity = DataBlocksPerRow * HopSize

// maxDataRows returns the number of audio/binary data rows available
// in an image capped at maxHeight pixels tall.
func maxDataRows(maxHeight int) int {
	rows := maxHeight/bitpack.BlockSize - FirstDataRow
	if rows < 0 {
		rows = 0
	}
	return rows
}

// audioImageCapacity returns the number of PCM samples one image holds,
// aligned down to a hop boundary.
func audioImageCapacity(maxHeight int) int {
	n := maxDataRows(maxHeight) * audioRowCapacity
	return (n / HopSize) * HopSize
}

// binaryImageCapacity returns the number of plaintext bytes one image
// holds.
func binaryImageCapacity(maxHeight int) int {
	return maxDataRows(maxHeight) * BinaryChunkSize
}

// Encode encodes either audio or binary input, per opts, into one or
// more named images.
func Encode(audio *AudioInput, binary *BinaryInput, opts EncodeOptions) ([]Image, error) {
	if audio == nil && binary == nil {
		return nil, ErrNoData
	}
	if audio != nil && binary != nil {
		return nil, ErrMixedAudioBinary
	}
	keys, err := validateMetadata(opts.Metadata)
	if err != nil {
		return nil, err
	}
	maxHeight := opts.normalizedMaxHeight()

	salt := newSalt()
	if audio != nil {
		return encodeAudio(*audio, maxHeight, keys, opts, salt)
	}
	return encodeBinary(*binary, maxHeight, keys, opts, salt)
}

// newSalt derives a fresh 4-byte group salt from the PRNG, seeded by a
// package-level LCG counter that advances on every call rather than by
// wall-clock time, so repeated calls within a process still diverge
// (each new process repeats the same salt sequence).
var saltCounter uint32 = 0xA5A5A5A5

func newSalt() [4]byte {
	saltCounter = saltCounter*1664525 + 1013904223
	rng := prng.NewRng(saltCounter)
	var s [4]byte
	s[0], s[1], s[2], s[3] = rng.NextByte(), rng.NextByte(), rng.NextByte(), rng.NextByte()
	return s
}

// encodeAudio dispatches to mono or stereo mid/side chunking.
func encodeAudio(in AudioInput, maxHeight int, keys []string, opts EncodeOptions, salt [4]byte) ([]Image, error) {
	capacity := audioImageCapacity(maxHeight)
	if capacity <= 0 {
		capacity = HopSize
	}

	switch len(in.Channels) {
	case 1:
		samples := toFloat64(in.Channels[0])
		chunks := chunkSamples(samples, capacity)
		return buildAudioImages(chunks, ChannelMono, in.SampleRate, keys, opts, salt, 1, len(chunks))
	case 2:
		left, right := toFloat64(in.Channels[0]), toFloat64(in.Channels[1])
		n := len(left)
		if len(right) < n {
			n = len(right)
		}
		mid := make([]float64, n)
		side := make([]float64, n)
		for i := 0; i < n; i++ {
			mid[i] = (left[i] + right[i]) / 2
			side[i] = (left[i] - right[i]) / 2
		}
		midChunks := chunkSamples(mid, capacity)
		sideChunks := chunkSamples(side, capacity)
		numChunks := len(midChunks)
		if len(sideChunks) > numChunks {
			numChunks = len(sideChunks)
		}
		totalImages := 2 * numChunks

		images := make([]Image, 0, totalImages)
		for i := 0; i < numChunks; i++ {
			mc := chunkAt(midChunks, i)
			midImgs, err := buildAudioImages([][]float64{mc}, ChannelStereoMid, in.SampleRate, keys, opts, salt, 2*i+1, totalImages)
			if err != nil {
				return nil, err
			}
			sc := chunkAt(sideChunks, i)
			sideImgs, err := buildAudioImages([][]float64{sc}, ChannelStereoSide, in.SampleRate, keys, opts, salt, 2*i+2, totalImages)
			if err != nil {
				return nil, err
			}
			images = append(images, midImgs...)
			images = append(images, sideImgs...)
		}
		return images, nil
	default:
		return nil, ErrNoData
	}
}

// chunkAt returns chunks[i], or an empty slice if i is out of range.
func chunkAt(chunks [][]float64, i int) []float64 {
	if i < len(chunks) {
		return chunks[i]
	}
	return nil
}

// toFloat64 widens a float32 sample buffer.
func toFloat64(in []float32) []float64 {
	out := make([]float64, len(in))
	for i, v := range in {
		out[i] = float64(v)
	}
	return out
}

// chunkSamples splits samples into capacity-sized chunks. The final
// chunk may be shorter; callers zero-pad it to a full row of blocks
// when writing.
func chunkSamples(samples []float64, capacity int) [][]float64 {
	if len(samples) == 0 {
		return [][]float64{{}}
	}
	var chunks [][]float64
	for off := 0; off < len(samples); off += capacity {
		end := off + capacity
		if end > len(samples) {
			end = len(samples)
		}
		chunks = append(chunks, samples[off:end])
	}
	return chunks
}

// buildAudioImages renders one Image per chunk, assigning sequential
// 1-based image indices starting at startIndex.
func buildAudioImages(chunks [][]float64, channelMode, sampleRate int, keys []string, opts EncodeOptions, salt [4]byte, startIndex, totalImages int) ([]Image, error) {
	images := make([]Image, len(chunks))
	for ci, chunk := range chunks {
		dataRows := (len(chunk) + audioRowCapacity - 1) / audioRowCapacity
		if dataRows == 0 {
			dataRows = 1
		}
		blockRows := FirstDataRow + dataRows
		img := NewImage(imageName(opts, channelMode, startIndex+ci, totalImages), blockRows)

		h := Header{
			Version:      FormatVersion,
			SampleRate:   sampleRate,
			TotalOrBytes: uint32(len(chunk)),
			ChannelMode:  channelMode,
			Salt:         salt,
			ImageIndex:   startIndex + ci,
			TotalImages:  totalImages,
		}
		if err := writeHeaderAndText(img, h, keys, opts); err != nil {
			return nil, err
		}

		padded := make([]float64, dataRows*audioRowCapacity+HopSize)
		copy(padded, chunk)
		for r := 0; r < dataRows; r++ {
			blockRow := FirstDataRow + r
			row := padded[r*audioRowCapacity : r*audioRowCapacity+audioRowCapacity+HopSize]
			if err := EncodeAudioRow(img, blockRow, r, row, sampleRate); err != nil {
				return nil, err
			}
			reportProgress(opts, r, dataRows)
		}
		images[ci] = img
	}
	return images, nil
}

// encodeBinary chunks the payload and renders one Image per chunk.
func encodeBinary(in BinaryInput, maxHeight int, keys []string, opts EncodeOptions, salt [4]byte) ([]Image, error) {
	capacity := binaryImageCapacity(maxHeight)
	if capacity <= 0 {
		capacity = BinaryChunkSize
	}
	payload := in.Bytes
	if len(payload) == 0 {
		payload = []byte{}
	}

	var chunks [][]byte
	for off := 0; off < len(payload) || len(chunks) == 0; off += capacity {
		end := off + capacity
		if end > len(payload) {
			end = len(payload)
		}
		chunks = append(chunks, payload[off:end])
		if off+capacity >= len(payload) {
			break
		}
	}
	totalImages := len(chunks)

	images := make([]Image, totalImages)
	for ci, chunk := range chunks {
		dataRows := (len(chunk) + BinaryChunkSize - 1) / BinaryChunkSize
		if dataRows == 0 {
			dataRows = 1
		}
		blockRows := FirstDataRow + dataRows
		img := NewImage(imageName(opts, ChannelBinary, ci+1, totalImages), blockRows)

		h := Header{
			Version:      FormatVersion,
			SampleRate:   0,
			TotalOrBytes: uint32(len(chunk)),
			ChannelMode:  ChannelBinary,
			Salt:         salt,
			ImageIndex:   ci + 1,
			TotalImages:  totalImages,
		}
		if err := writeHeaderAndText(img, h, keys, opts); err != nil {
			return nil, err
		}

		padded := make([]byte, dataRows*BinaryChunkSize)
		copy(padded, chunk)
		for r := 0; r < dataRows; r++ {
			blockRow := FirstDataRow + r
			rowBytes := padded[r*BinaryChunkSize : (r+1)*BinaryChunkSize]
			if err := EncodeBinaryRow(img, blockRow, r, rowBytes); err != nil {
				return nil, err
			}
			reportProgress(opts, r, dataRows)
		}
		images[ci] = img
	}
	return images, nil
}

// writeHeaderAndText builds the header plaintext, computes its
// checksums, and writes both row 0 and row 1.
func writeHeaderAndText(img Image, h Header, keys []string, opts EncodeOptions) error {
	plaintext := BuildHeaderPlaintext(h, keys, opts.Metadata)
	if err := WriteHeaderRow(img, plaintext); err != nil {
		return err
	}
	checksum := HeaderChecksums(plaintext)
	status := fmt.Sprintf("PXF %d/%d", h.ImageIndex, h.TotalImages)
	return WriteTextRow(img, status, checksum)
}

// imageName derives an image's name from the "fn" metadata value (or
// "pxf_{imageIndex}" when none is set), the image index, and the image
// count; channelMode does not affect the name. A single-image encoding keeps the base name unchanged; a
// multi-image encoding appends "_{imageIndex}_{totalImages}" (e.g. a
// stereo pair named "take" becomes "take_1_2" and "take_2_2").
func imageName(opts EncodeOptions, channelMode, imageIndex, totalImages int) string {
	base := fmt.Sprintf("pxf_%d", imageIndex)
	if name, ok := opts.Metadata["fn"]; ok && name != "" {
		base = name
	}
	if totalImages <= 1 {
		return base
	}
	return fmt.Sprintf("%s_%d_%d", base, imageIndex, totalImages)
}

// reportProgress invokes opts.Progress at progressRowInterval row
// boundaries and always on the final row.
func reportProgress(opts EncodeOptions, row, totalRows int) {
	if opts.Progress == nil {
		return
	}
	if row%progressRowInterval != 0 && row != totalRows-1 {
		return
	}
	percent := 100
	if totalRows > 0 {
		percent = ((row + 1) * 100) / totalRows
	}
	opts.Progress(percent)
}
