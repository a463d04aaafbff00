/*
NAME
  decode.go

DESCRIPTION
  decode.go implements the top-level Decoder: per-image header
  parsing, salt-based group assembly, stereo validation, and dispatch
  to the audio or binary row decode path.

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
	"sort"

	"github.com/ausocean/utils/logging"
)

// Log is the package logger, set by the embedding application. It
// receives non-fatal warnings: a discarded minority salt group, or a
// chosen group whose image count does not match its own header's
// TotalImages.
var Log logging.Logger

func warn(format string, args ...interface{}) {
	if Log != nil {
		Log.Warning(format, args...)
	}
}

// AudioResult is the decoder's audio-mode output.
type AudioResult struct {
	Channels         [][]float32
	SampleRate       int
	Metadata         map[string]string
	Salt             [4]byte
	SourceImageIndex int
	Decoder          *StreamingAudioDecoder
}

// BinaryResult is the decoder's binary-mode output.
type BinaryResult struct {
	Bytes         []byte
	Metadata      map[string]string
	ValidChecksum bool
}

// parsedImage holds one source image's validated header alongside the
// image itself.
type parsedImage struct {
	img      Image
	header   Header
	metadata map[string]string
}

// parseSource reads and validates one source image's header row,
// returning an error if its wire checksum or LDPC decode fails, or if
// its version or width are unsupported.
func parseSource(img Image) (parsedImage, error) {
	if img.Width() != ImageWidth {
		return parsedImage{}, ErrInvalidImageWidth
	}
	plaintext, _, err := ReadHeaderRow(img)
	if err != nil {
		return parsedImage{}, ErrHeaderChecksumInvalid
	}
	if HeaderChecksums(plaintext) != ReadChecksum(img) {
		return parsedImage{}, ErrHeaderChecksumInvalid
	}
	h, metaLen := parseFixed(plaintext)
	if h.Version != FormatVersion {
		return parsedImage{}, ErrUnsupportedVersion
	}
	metaEnd := HeaderFixedSize + int(metaLen)
	if metaEnd > len(plaintext) {
		return parsedImage{}, ErrHeaderChecksumInvalid
	}
	meta, _, err := parseMetadata(plaintext[HeaderFixedSize:metaEnd])
	if err != nil {
		return parsedImage{}, err
	}
	return parsedImage{img: img, header: h, metadata: meta}, nil
}

// isAudioMode reports whether mode is one of the three audio channel
// modes (as opposed to ChannelBinary).
func isAudioMode(mode int) bool {
	return mode == ChannelMono || mode == ChannelStereoMid || mode == ChannelStereoSide
}

// Decode parses sources, assembles the largest salt group, and
// dispatches to the audio or binary decode path. Exactly one of the
// two returned results is non-nil on success.
func Decode(sources []Image) (*AudioResult, *BinaryResult, error) {
	if len(sources) == 0 {
		return nil, nil, ErrNoSources
	}

	parsed := make([]parsedImage, len(sources))
	sawAudio, sawBinary := false, false
	for i, src := range sources {
		p, err := parseSource(src)
		if err != nil {
			return nil, nil, err
		}
		parsed[i] = p
		if isAudioMode(p.header.ChannelMode) {
			sawAudio = true
		} else {
			sawBinary = true
		}
	}
	if sawAudio && sawBinary {
		return nil, nil, ErrMixedAudioBinary
	}

	groups := make(map[[4]byte][]parsedImage)
	var saltOrder [][4]byte
	for _, p := range parsed {
		if _, ok := groups[p.header.Salt]; !ok {
			saltOrder = append(saltOrder, p.header.Salt)
		}
		groups[p.header.Salt] = append(groups[p.header.Salt], p)
	}

	chosenSalt := saltOrder[0]
	for _, s := range saltOrder[1:] {
		if len(groups[s]) > len(groups[chosenSalt]) || (len(groups[s]) == len(groups[chosenSalt]) && bytesLess(s, chosenSalt)) {
			chosenSalt = s
		}
	}
	for _, s := range saltOrder {
		if s != chosenSalt {
			warn("pxf: discarding %d image(s) with non-majority salt", len(groups[s]))
		}
	}

	chosen := groups[chosenSalt]
	sort.Slice(chosen, func(i, j int) bool { return chosen[i].header.ImageIndex < chosen[j].header.ImageIndex })
	if len(chosen) != chosen[0].header.TotalImages {
		warn("pxf: chosen group has %d image(s), header declares %d", len(chosen), chosen[0].header.TotalImages)
	}

	if chosen[0].header.ChannelMode == ChannelBinary {
		result, err := decodeBinaryGroup(chosen)
		return nil, result, err
	}
	result, err := decodeAudioGroup(chosen)
	return result, nil, err
}

// bytesLess provides a deterministic tie-break ordering over 4-byte
// salts when two groups have equal size.
func bytesLess(a, b [4]byte) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// decodeBinaryGroup concatenates the decoded chunks of every image in
// the group, in image-index order.
func decodeBinaryGroup(group []parsedImage) (*BinaryResult, error) {
	var out []byte
	validChecksum := true
	for _, p := range group {
		dataRows := p.img.BlockRows() - FirstDataRow
		remaining := int(p.header.TotalOrBytes)
		for r := 0; r < dataRows; r++ {
			chunk, ok := DecodeBinaryRow(p.img, FirstDataRow+r, r)
			if !ok {
				validChecksum = false
			}
			n := len(chunk)
			if n > remaining {
				n = remaining
			}
			out = append(out, chunk[:n]...)
			remaining -= n
		}
	}
	return &BinaryResult{
		Bytes:         out,
		Metadata:      group[0].metadata,
		ValidChecksum: validChecksum,
	}, nil
}

// decodeAudioGroup assembles one audio channel set (mono, or stereo
// mid/side reconstructed to left/right) from the group.
func decodeAudioGroup(group []parsedImage) (*AudioResult, error) {
	mode := group[0].header.ChannelMode
	if mode == ChannelMono {
		samples := decodeImagesSequence(group, uint64(ChannelMono))
		return &AudioResult{
			Channels:         [][]float32{toFloat32(samples)},
			SampleRate:       group[0].header.SampleRate,
			Metadata:         group[0].metadata,
			Salt:             group[0].header.Salt,
			SourceImageIndex: group[0].header.ImageIndex,
			Decoder:          newStreamingAudioDecoder(group, nil, group[0].header.SampleRate),
		}, nil
	}

	var mids, sides []parsedImage
	for _, p := range group {
		switch p.header.ChannelMode {
		case ChannelStereoMid:
			mids = append(mids, p)
		case ChannelStereoSide:
			sides = append(sides, p)
		default:
			return nil, ErrMixedAudioBinary
		}
	}
	if len(mids) == 0 {
		return nil, ErrSideOnly
	}
	totalImages := group[0].header.TotalImages
	if totalImages%2 != 0 {
		return nil, ErrStereoMidSideMismatch
	}
	sideByPairIndex := make(map[int]parsedImage, len(sides))
	for _, s := range sides {
		if s.header.ImageIndex%2 != 0 {
			return nil, ErrStereoMidSideMismatch
		}
		sideByPairIndex[s.header.ImageIndex-1] = s
	}
	for _, m := range mids {
		if m.header.ImageIndex%2 != 1 {
			return nil, ErrStereoMidSideMismatch
		}
		if s, ok := sideByPairIndex[m.header.ImageIndex]; ok {
			if s.header.Salt != m.header.Salt || s.header.TotalOrBytes != m.header.TotalOrBytes {
				return nil, ErrStereoMidSideMismatch
			}
		}
	}

	midSamples := decodeImagesSequence(mids, uint64(ChannelStereoMid))
	var left, right []float32
	if len(sides) == 0 {
		mf := toFloat32(midSamples)
		left, right = mf, append([]float32(nil), mf...)
	} else {
		sideSamples := decodeImagesSequence(sides, uint64(ChannelStereoSide))
		// Any mid sample past the end of the decoded side sequence (a
		// mid image whose side partner is missing) is treated as
		// side=0, which reduces to duplicated mid on both channels.
		n := len(midSamples)
		if len(sideSamples) < n {
			padded := make([]float64, n)
			copy(padded, sideSamples)
			sideSamples = padded
		}
		left = make([]float32, n)
		right = make([]float32, n)
		for i := 0; i < n; i++ {
			left[i] = float32(midSamples[i] + sideSamples[i])
			right[i] = float32(midSamples[i] - sideSamples[i])
		}
	}

	if sides == nil {
		// A non-nil sides slice keeps the streaming decoder in stereo
		// mode, so it also duplicates mid when no side image exists.
		sides = []parsedImage{}
	}

	return &AudioResult{
		Channels:         [][]float32{left, right},
		SampleRate:       group[0].header.SampleRate,
		Metadata:         group[0].metadata,
		Salt:             group[0].header.Salt,
		SourceImageIndex: mids[0].header.ImageIndex,
		Decoder:          newStreamingAudioDecoder(mids, sides, group[0].header.SampleRate),
	}, nil
}

// toFloat32 narrows a float64 sample buffer.
func toFloat32(in []float64) []float32 {
	out := make([]float32, len(in))
	for i, v := range in {
		out[i] = float32(v)
	}
	return out
}

// decodeImagesSequence decodes every data row of every image in
// images (already sorted by image index), carrying the MDCT overlap
// tail from row to row and image to image, and returns the
// concatenated, trimmed-to-TotalOrBytes sample sequence.
func decodeImagesSequence(images []parsedImage, channelSalt uint64) []float64 {
	var out []float64
	var tail [HopSize]float64
	for _, p := range images {
		sampleRate := p.header.SampleRate
		dataRows := p.img.BlockRows() - FirstDataRow
		remaining := int(p.header.TotalOrBytes)
		for r := 0; r < dataRows; r++ {
			blockRow := FirstDataRow + r
			seedFor := func(blockIndex int) uint64 {
				return sbrSeed(p.header.Salt, p.header.ImageIndex, r, blockIndex, channelSalt)
			}
			var samples []float64
			samples, _, tail = DecodeAudioRow(p.img, blockRow, r, sampleRate, seedFor, tail)
			n := len(samples)
			if n > remaining {
				n = remaining
			}
			out = append(out, samples[:n]...)
			remaining -= n
		}
	}
	return out
}

// sbrSeed derives the deterministic SBR noise seed for one block: a
// mix of the group salt, image index, row, and block index, XORed
// with channelSalt so stereo mid and side channels get decorrelated
// noise.
func sbrSeed(salt [4]byte, imageIndex, rowIndex, blockIndex int, channelSalt uint64) uint64 {
	s := uint64(salt[0])<<24 | uint64(salt[1])<<16 | uint64(salt[2])<<8 | uint64(salt[3])
	s ^= uint64(imageIndex) << 40
	s ^= uint64(rowIndex) << 20
	s ^= uint64(blockIndex)
	return s ^ channelSalt
}
