/*
NAME
  rowmeta.go

DESCRIPTION
  rowmeta.go serializes, LDPC-protects, and writes the per-row
  metadata carried in each data row's 4 metadata blocks.

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
	"github.com/ausocean/pxf/internal/numerics"
	"github.com/ausocean/pxf/internal/prng"
)

// AudioRowMetaSize is the plaintext size, in bytes, of one audio row's
// metadata: 8 SBR + 12 half-float scales + 8 band-factor bytes.
const AudioRowMetaSize = 28

// AudioRowMeta is the decoded per-row side information for one audio
// data row.
type AudioRowMeta struct {
	SBRWords     [2]uint32
	ScaleYA      numerics.Half
	ScaleYB      numerics.Half
	ScaleCAX     numerics.Half
	ScaleCAY     numerics.Half
	ScaleCBX     numerics.Half
	ScaleCBY     numerics.Half
	BandFactorsA [4]byte
	BandFactorsB [4]byte
}

// neutralAudioRowMeta is used when row-metadata LDPC decoding fails or
// yields non-finite fields: unit scales, unit band factors, no SBR.
func neutralAudioRowMeta() AudioRowMeta {
	unitScale := numerics.FloatToHalf(1.0)
	unitBand := logEncodeBandFactor(1.0)
	var m AudioRowMeta
	m.ScaleYA, m.ScaleYB = unitScale, unitScale
	m.ScaleCAX, m.ScaleCAY, m.ScaleCBX, m.ScaleCBY = unitScale, unitScale, unitScale, unitScale
	for i := 0; i < 4; i++ {
		m.BandFactorsA[i] = unitBand
		m.BandFactorsB[i] = unitBand
	}
	return m
}

// serialize writes m into a 28-byte plaintext buffer.
func (m AudioRowMeta) serialize() []byte {
	b := make([]byte, AudioRowMetaSize)
	binary.BigEndian.PutUint32(b[0:4], m.SBRWords[0])
	binary.BigEndian.PutUint32(b[4:8], m.SBRWords[1])
	binary.LittleEndian.PutUint16(b[8:10], uint16(m.ScaleYA))
	binary.LittleEndian.PutUint16(b[10:12], uint16(m.ScaleYB))
	binary.LittleEndian.PutUint16(b[12:14], uint16(m.ScaleCAX))
	binary.LittleEndian.PutUint16(b[14:16], uint16(m.ScaleCAY))
	binary.LittleEndian.PutUint16(b[16:18], uint16(m.ScaleCBX))
	binary.LittleEndian.PutUint16(b[18:20], uint16(m.ScaleCBY))
	copy(b[20:24], m.BandFactorsA[:])
	copy(b[24:28], m.BandFactorsB[:])
	return b
}

// parseAudioRowMeta reads a 28-byte plaintext buffer into an
// AudioRowMeta.
func parseAudioRowMeta(b []byte) AudioRowMeta {
	var m AudioRowMeta
	m.SBRWords[0] = binary.BigEndian.Uint32(b[0:4])
	m.SBRWords[1] = binary.BigEndian.Uint32(b[4:8])
	m.ScaleYA = numerics.Half(binary.LittleEndian.Uint16(b[8:10]))
	m.ScaleYB = numerics.Half(binary.LittleEndian.Uint16(b[10:12]))
	m.ScaleCAX = numerics.Half(binary.LittleEndian.Uint16(b[12:14]))
	m.ScaleCAY = numerics.Half(binary.LittleEndian.Uint16(b[14:16]))
	m.ScaleCBX = numerics.Half(binary.LittleEndian.Uint16(b[16:18]))
	m.ScaleCBY = numerics.Half(binary.LittleEndian.Uint16(b[18:20]))
	copy(m.BandFactorsA[:], b[20:24])
	copy(m.BandFactorsB[:], b[24:28])
	return m
}

// rowMetaBlockCol is the column, within a data row, of the first
// metadata block.
const rowMetaBlockCol = DataBlocksPerRow

// WriteAudioRowMeta LDPC-encodes, whitens, and writes m into the 4
// metadata blocks of the data row at blockRowIndex, using
// localRowIndex (the 0-based index among the image's audio data rows)
// to derive the whitening seed.
func WriteAudioRowMeta(img Image, blockRowIndex, localRowIndex int, m AudioRowMeta) error {
	bits := bitpack.BytesToBools(m.serialize(), AudioRowMetaSize*8)
	codeword, err := ldpc.RowMetaGraph().Encode(bits)
	if err != nil {
		return err
	}
	codewordBytes := bitpack.BoolsToBytes(codeword)
	whitened := prng.XorWhiten(codewordBytes, uint32(RowMetaXorSeedBase+localRowIndex))
	return bitpack.WriteBlocks(img.RGBA, blockRowIndex, rowMetaBlockCol, whitened)
}

// ReadAudioRowMeta reads, un-whitens, and LDPC-decodes the metadata of
// the data row at blockRowIndex, falling back to neutral defaults if
// the decode does not converge.
func ReadAudioRowMeta(img Image, blockRowIndex, localRowIndex int) (AudioRowMeta, bool) {
	whitened := bitpack.ReadBlocks(img.RGBA, blockRowIndex, rowMetaBlockCol, MetaBlocksPerRow)
	codewordBytes := prng.XorWhiten(whitened, uint32(RowMetaXorSeedBase+localRowIndex))
	bits := bitpack.BytesToBools(codewordBytes, len(codewordBytes)*8)

	llr := make([]float64, len(bits))
	for i, b := range bits {
		if b {
			llr[i] = -10
		} else {
			llr[i] = 10
		}
	}
	result, err := ldpc.RowMetaGraph().Decode(llr)
	if err != nil || !result.Corrected {
		return neutralAudioRowMeta(), false
	}
	m := parseAudioRowMeta(bitpack.BoolsToBytes(result.Data))
	if !m.isFinite() {
		return neutralAudioRowMeta(), false
	}
	return m, true
}

// isFinite reports whether every half-float scale in m decodes to a
// finite value.
func (m AudioRowMeta) isFinite() bool {
	for _, h := range []numerics.Half{m.ScaleYA, m.ScaleYB, m.ScaleCAX, m.ScaleCAY, m.ScaleCBX, m.ScaleCBY} {
		f := float64(numerics.HalfToFloat(h))
		if f != f || f > 1e300 || f < -1e300 { // NaN or effectively infinite
			return false
		}
	}
	return true
}

// WriteBinaryRowMeta writes the 28 LDPC parity bytes and 4-byte
// big-endian CRC32C directly (no whitening, no additional LDPC layer)
// into the data row's metadata blocks.
func WriteBinaryRowMeta(img Image, blockRowIndex int, parity [28]byte, crc uint32) error {
	var b [32]byte
	copy(b[:28], parity[:])
	binary.BigEndian.PutUint32(b[28:32], crc)
	return bitpack.WriteBlocks(img.RGBA, blockRowIndex, rowMetaBlockCol, b[:])
}

// ReadBinaryRowMeta reads back the 28 parity bytes and CRC32C written
// by WriteBinaryRowMeta.
func ReadBinaryRowMeta(img Image, blockRowIndex int) (parity [28]byte, crc uint32) {
	b := bitpack.ReadBlocks(img.RGBA, blockRowIndex, rowMetaBlockCol, MetaBlocksPerRow)
	copy(parity[:], b[:28])
	crc = binary.BigEndian.Uint32(b[28:32])
	return parity, crc
}
