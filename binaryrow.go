/*
NAME
  binaryrow.go

DESCRIPTION
  binaryrow.go implements the per-row binary payload encode and decode
  pipeline: LDPC protection, CRC32C, Fisher-Yates permutation, and
  Gray-coded OBB pixel mapping.

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

	"github.com/ausocean/pxf/internal/bitpack"
	"github.com/ausocean/pxf/internal/ldpc"
	"github.com/ausocean/pxf/internal/obb"
	"github.com/ausocean/pxf/internal/prng"
)

// BinaryChunkSize is the plaintext size, in bytes, of one binary data
// row before LDPC encoding: ldpc.BinaryK/8.
const BinaryChunkSize = ldpc.BinaryK / 8 // 2480

// binaryBlockBytes is the number of permuted-stream bytes written into
// one 8x8 pixel block: BinaryChunkSize / DataBlocksPerRow.
const binaryBlockBytes = BinaryChunkSize / DataBlocksPerRow // 20

// grayToSymbol maps a raw 2-bit Gray code (bit1<<1|bit0) to its Y-axis
// symbol value, per the map 00->-1.0, 01->-1/3, 11->+1/3, 10->+1.0.
var grayToSymbol = [4]float64{-1.0, -1.0 / 3, 1.0, 1.0 / 3}

// chromaToSymbol maps a raw 1-bit chroma code to its Cb/Cr symbol
// value.
var chromaToSymbol = [2]float64{-1.0, 1.0}

// Laplacian LLR scales, expressed in OBB point-space by dividing the
// pixel-domain sigma (12 luma, 40 chroma) by the corresponding axis
// extent, since mu-law is disabled (identity companding) for binary
// mode and the Y axis is unrotated.
var (
	lumaLLRScale = 12.0 / obb.Extents[0]
	cbLLRScale   = 40.0 / obb.Extents[1]
	crLLRScale   = 40.0 / obb.Extents[2]
)

func clampLLR(x float64) float64 {
	if x > 20 {
		return 20
	}
	if x < -20 {
		return -20
	}
	return x
}

// oneBitLLR returns the LLR of a 1-bit symbol observed at x with
// candidate values c0 (bit=0) and c1 (bit=1) under a Laplacian noise
// model of the given scale.
func oneBitLLR(x, c0, c1, scale float64) float64 {
	return clampLLR((math.Abs(x-c1) - math.Abs(x-c0)) / scale)
}

// twoBitLLR returns the marginalized MSB and LSB LLRs of a Gray-coded
// 2-bit symbol observed at x.
func twoBitLLR(x float64, scale float64) (msb, lsb float64) {
	like := func(c float64) float64 { return math.Exp(-math.Abs(x-c) / scale) }
	l0, l1, l2, l3 := like(grayToSymbol[0]), like(grayToSymbol[1]), like(grayToSymbol[2]), like(grayToSymbol[3])
	const eps = 1e-300
	msb = clampLLR(math.Log((l0 + l1 + eps) / (l2 + l3 + eps)))
	lsb = clampLLR(math.Log((l0 + l2 + eps) / (l1 + l3 + eps)))
	return msb, lsb
}

// pairGet/pairSet read and write a 2-bit pair (MSB-first within each
// byte) at pair index i of a byte buffer.
func pairGet(data []byte, i int) byte {
	byteIdx, shift := i/4, 6-2*(i%4)
	return (data[byteIdx] >> uint(shift)) & 0x3
}

func pairSet(data []byte, i int, v byte) {
	byteIdx, shift := i/4, 6-2*(i%4)
	data[byteIdx] &^= 0x3 << uint(shift)
	data[byteIdx] |= (v & 0x3) << uint(shift)
}

// permutePairs returns a copy of src with its 2-bit pairs rearranged
// so that pair i of the result is pair perm[i] of src.
func permutePairs(src []byte, perm []int) []byte {
	dst := make([]byte, len(src))
	for i, p := range perm {
		pairSet(dst, i, pairGet(src, p))
	}
	return dst
}

// unpermutePairLLRs reverses permutePairs at the LLR level: llrs holds
// two floats (MSB, LSB) per pair in permuted order; the result holds
// the same pairs restored to their original order.
func unpermutePairLLRs(llrs []float64, perm []int) []float64 {
	inv := prng.InvertPermutation(perm)
	out := make([]float64, len(llrs))
	for j := range perm {
		src := inv[j] * 2
		out[j*2] = llrs[src]
		out[j*2+1] = llrs[src+1]
	}
	return out
}

// writeBinaryBlockPixels Gray-encodes one 20-byte permuted-stream group
// into an 8x8 pixel block: bytes[0:16] give 64 2-bit Y symbols,
// bytes[16:18] give 16 1-bit Cb symbols, bytes[18:20] give 16 1-bit Cr
// symbols (4:2:0 subsampled).
func writeBinaryBlockPixels(img Image, blockRowIndex, col int, group []byte) {
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			idx := r*8 + c
			yCode := (group[idx/4] >> uint(6-2*(idx%4))) & 0x3
			chromaIdx := (r/2)*4 + c/2
			cbByte, crByte := group[16+chromaIdx/8], group[18+chromaIdx/8]
			cbBit := (cbByte >> uint(7-chromaIdx%8)) & 1
			crBit := (crByte >> uint(7-chromaIdx%8)) & 1

			p := obb.Point{grayToSymbol[yCode], chromaToSymbol[cbBit], chromaToSymbol[crBit]}
			rgb := obb.EncodePoint(p, obb.BinaryMuLaw)
			img.RGBA.SetRGBA(col*8+c, blockRowIndex*8+r, color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255})
		}
	}
}

// readBinaryBlockLLRs reads one 8x8 pixel block and returns the 160
// bit-LLRs (64 Y symbols * 2 bits + 16 Cb + 16 Cr) in the same bit
// order writeBinaryBlockPixels consumed them.
func readBinaryBlockLLRs(img Image, blockRowIndex, col int) []float64 {
	out := make([]float64, binaryBlockBytes*8)
	var cbBits, crBits [16]float64
	for r := 0; r < 8; r++ {
		for c := 0; c < 8; c++ {
			rgba := img.RGBA.RGBAAt(col*8+c, blockRowIndex*8+r)
			pt := obb.DecodeRGB(obb.RGB{rgba.R, rgba.G, rgba.B}, obb.BinaryMuLaw)
			idx := r*8 + c
			msb, lsb := twoBitLLR(pt[0], lumaLLRScale)
			out[idx*2], out[idx*2+1] = msb, lsb

			chromaIdx := (r/2)*4 + c/2
			cbBits[chromaIdx] = oneBitLLR(pt[1], chromaToSymbol[0], chromaToSymbol[1], cbLLRScale)
			crBits[chromaIdx] = oneBitLLR(pt[2], chromaToSymbol[0], chromaToSymbol[1], crLLRScale)
		}
	}
	copy(out[128:144], cbBits[:])
	copy(out[144:160], crBits[:])
	return out
}

// EncodeBinaryRow pads chunk (truncated/zero-extended to BinaryChunkSize
// bytes by the caller) through LDPC, CRC32C, and the permutation, and
// writes the row's 124 data blocks and metadata blocks into img.
func EncodeBinaryRow(img Image, blockRowIndex, localRowIndex int, chunk []byte) error {
	dataBits := bitpack.BytesToBools(chunk, BinaryChunkSize*8)
	codeword, err := ldpc.BinaryGraph().Encode(dataBits)
	if err != nil {
		return err
	}
	parityBits := codeword[ldpc.BinaryK:]
	var parity [28]byte
	copy(parity[:], bitpack.BoolsToBytes(parityBits))

	crc := prng.CRC32C(chunk)

	seed := uint32(BinaryPermutationSeed) + uint32(localRowIndex)
	perm := prng.FisherYatesPermutation(prng.BinaryPermutationSize, seed)
	permuted := permutePairs(chunk, perm)

	for col := 0; col < DataBlocksPerRow; col++ {
		group := permuted[col*binaryBlockBytes : (col+1)*binaryBlockBytes]
		writeBinaryBlockPixels(img, blockRowIndex, col, group)
	}
	return WriteBinaryRowMeta(img, blockRowIndex, parity, crc)
}

// DecodeBinaryRow reads the row at blockRowIndex, reverses the
// permutation, LDPC-decodes, and verifies the CRC32C, returning the
// recovered BinaryChunkSize-byte chunk and whether its checksum
// validated.
func DecodeBinaryRow(img Image, blockRowIndex, localRowIndex int) ([]byte, bool) {
	permutedLLR := make([]float64, 0, ldpc.BinaryK)
	for col := 0; col < DataBlocksPerRow; col++ {
		permutedLLR = append(permutedLLR, readBinaryBlockLLRs(img, blockRowIndex, col)...)
	}

	seed := uint32(BinaryPermutationSeed) + uint32(localRowIndex)
	perm := prng.FisherYatesPermutation(prng.BinaryPermutationSize, seed)
	dataLLR := unpermutePairLLRs(permutedLLR, perm)

	parity, storedCRC := ReadBinaryRowMeta(img, blockRowIndex)
	parityLLR := make([]float64, len(parity)*8)
	parityBits := bitpack.BytesToBools(parity[:], len(parity)*8)
	for i, b := range parityBits {
		if b {
			parityLLR[i] = -10
		} else {
			parityLLR[i] = 10
		}
	}

	full := append(dataLLR, parityLLR...)
	result, err := ldpc.BinaryGraph().Decode(full)
	if err != nil {
		return nil, false
	}

	chunk := bitpack.BoolsToBytes(result.Data)
	valid := prng.CRC32C(chunk) == storedCRC
	return chunk, valid
}
