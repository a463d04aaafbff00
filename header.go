/*
NAME
  header.go

DESCRIPTION
  header.go defines the 21-byte fixed header, its variable metadata
  section, and the LDPC-protected, whitened row-0 wire encoding.

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
	"encoding/binary"

	"github.com/ausocean/pxf/internal/bitpack"
	"github.com/ausocean/pxf/internal/ldpc"
	"github.com/ausocean/pxf/internal/prng"
)

// FormatVersion is the only format version this codec understands.
const FormatVersion = 300

// Channel modes.
const (
	ChannelMono = iota
	ChannelStereoMid
	ChannelStereoSide
	ChannelBinary
)

// Fixed seeds for the header whitening mask, per-row metadata
// whitening, and the binary payload's Fisher-Yates permutation.
const (
	HeaderXorMaskSeed    = 0xE5B4D3BD
	RowMetaXorSeedBase   = 0xC4396125
	BinaryPermutationSeed = 0xBF4D0153
)

// HeaderFixedSize is the size, in bytes, of the fixed header fields.
const HeaderFixedSize = 21

// HeaderPlaintextSize is the total size, in bytes, of the header
// plaintext (fixed fields + metadata + zero padding) before LDPC
// encoding: exactly ldpc.HeaderK/8.
const HeaderPlaintextSize = ldpc.HeaderK / 8

// Header is the decoded fixed-size portion of row 0.
type Header struct {
	Version       int
	SampleRate    int    // Hz; 0 for binary payloads.
	TotalOrBytes  uint32 // total audio samples, or binary chunk byte count.
	ChannelMode   int
	Salt          [4]byte
	ImageIndex    int // 1-based.
	TotalImages   int
}

// serializeFixed writes h's 21 fixed bytes.
func (h Header) serializeFixed(metadataLen uint16) [HeaderFixedSize]byte {
	var b [HeaderFixedSize]byte
	binary.LittleEndian.PutUint16(b[0:2], uint16(h.Version))
	binary.LittleEndian.PutUint32(b[2:6], uint32(h.SampleRate))
	binary.LittleEndian.PutUint32(b[6:10], h.TotalOrBytes)
	binary.BigEndian.PutUint16(b[10:12], metadataLen)
	b[12] = byte(h.ChannelMode)
	copy(b[13:17], h.Salt[:])
	binary.LittleEndian.PutUint16(b[17:19], uint16(h.ImageIndex))
	binary.LittleEndian.PutUint16(b[19:21], uint16(h.TotalImages))
	return b
}

// parseFixed reads h's 21 fixed bytes, returning the metadata length.
func parseFixed(b []byte) (Header, uint16) {
	var h Header
	h.Version = int(binary.LittleEndian.Uint16(b[0:2]))
	h.SampleRate = int(binary.LittleEndian.Uint32(b[2:6]))
	h.TotalOrBytes = binary.LittleEndian.Uint32(b[6:10])
	metadataLen := binary.BigEndian.Uint16(b[10:12])
	h.ChannelMode = int(b[12])
	copy(h.Salt[:], b[13:17])
	h.ImageIndex = int(binary.LittleEndian.Uint16(b[17:19]))
	h.TotalImages = int(binary.LittleEndian.Uint16(b[19:21]))
	return h, metadataLen
}

// serializeMetadata writes the variable metadata section: a count
// byte, then per entry a 2-byte (keyLen:4, valueLen:12) big-endian
// header followed by the raw key and value bytes. keys must already
// be validated and sorted.
func serializeMetadata(keys []string, meta map[string]string) []byte {
	out := []byte{byte(len(keys))}
	for _, k := range keys {
		v := meta[k]
		var hdr [2]byte
		packed := uint16(len(k)&0xF)<<12 | uint16(len(v)&0xFFF)
		binary.BigEndian.PutUint16(hdr[:], packed)
		out = append(out, hdr[:]...)
		out = append(out, k...)
		out = append(out, v...)
	}
	return out
}

// parseMetadata reads the variable metadata section from b, returning
// the map and the number of bytes consumed.
func parseMetadata(b []byte) (map[string]string, int, error) {
	if len(b) < 1 {
		return nil, 0, ErrHeaderChecksumInvalid
	}
	count := int(b[0])
	meta := make(map[string]string, count)
	pos := 1
	for i := 0; i < count; i++ {
		if pos+2 > len(b) {
			return nil, 0, ErrHeaderChecksumInvalid
		}
		packed := binary.BigEndian.Uint16(b[pos : pos+2])
		keyLen := int(packed >> 12)
		valLen := int(packed & 0xFFF)
		pos += 2
		if pos+keyLen+valLen > len(b) {
			return nil, 0, ErrHeaderChecksumInvalid
		}
		key := string(b[pos : pos+keyLen])
		pos += keyLen
		val := string(b[pos : pos+valLen])
		pos += valLen
		meta[key] = val
	}
	return meta, pos, nil
}

// BuildHeaderPlaintext serializes h and meta into the fixed
// HeaderPlaintextSize-byte buffer LDPC-encoded into row 0.
func BuildHeaderPlaintext(h Header, keys []string, meta map[string]string) []byte {
	metaBytes := serializeMetadata(keys, meta)
	fixed := h.serializeFixed(uint16(len(metaBytes)))

	plaintext := make([]byte, HeaderPlaintextSize)
	copy(plaintext, fixed[:])
	copy(plaintext[HeaderFixedSize:], metaBytes)
	return plaintext
}

// HeaderChecksums computes the two 128-bit MurmurHash3 checksums over
// the fixed region [0,21) and the padded region [21,768), concatenated
// into 32 bytes.
func HeaderChecksums(plaintext []byte) [32]byte {
	var out [32]byte
	fixedSum := prng.Murmur3_128(plaintext[:HeaderFixedSize])
	restSum := prng.Murmur3_128(plaintext[HeaderFixedSize:HeaderPlaintextSize])
	copy(out[0:16], fixedSum[:])
	copy(out[16:32], restSum[:])
	return out
}

// WriteHeaderRow LDPC-encodes, whitens, and writes plaintext (exactly
// HeaderPlaintextSize bytes) into row 0 of img.
func WriteHeaderRow(img Image, plaintext []byte) error {
	bits := bitpack.BytesToBools(plaintext, len(plaintext)*8)
	codeword, err := ldpc.HeaderGraph().Encode(bits)
	if err != nil {
		return err
	}
	codewordBytes := bitpack.BoolsToBytes(codeword)
	whitened := prng.XorWhiten(codewordBytes, HeaderXorMaskSeed)
	return bitpack.WriteBlocks(img.RGBA, HeaderBlockRow, 0, whitened)
}

// ReadHeaderRow reads, un-whitens, and LDPC-decodes row 0 of img,
// returning the HeaderPlaintextSize-byte plaintext.
func ReadHeaderRow(img Image) ([]byte, ldpc.Result, error) {
	whitened := bitpack.ReadBlocks(img.RGBA, HeaderBlockRow, 0, BlocksPerRow)
	codewordBytes := prng.XorWhiten(whitened, HeaderXorMaskSeed)
	bits := bitpack.BytesToBools(codewordBytes, len(codewordBytes)*8)

	llr := make([]float64, len(bits))
	for i, b := range bits {
		if b {
			llr[i] = -10
		} else {
			llr[i] = 10
		}
	}
	result, err := ldpc.HeaderGraph().Decode(llr)
	if err != nil {
		return nil, result, err
	}
	return bitpack.BoolsToBytes(result.Data), result, nil
}
