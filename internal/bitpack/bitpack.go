/*
NAME
  bitpack.go

DESCRIPTION
  bitpack.go packs and unpacks MSB-first bitstreams into and out of
  black/white 8x8 pixel blocks, used for the header, row-metadata, and
  checksum blocks that never go through the OBB color map.

AUTHOR
  PXF contributors

LICENSE
  Copyright (C) 2026 the PXF contributors. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the PXF contributors.
*/

// Package bitpack implements 1-bit-per-pixel encoding of byte streams
// into 8x8 image blocks, MSB-first within each byte and raster order
// within each block.
package bitpack

import (
	"image"
	"image/color"

	"github.com/pkg/errors"
)

// BlockSize is the side length, in pixels, of one block.
const BlockSize = 8

// BytesPerBlock is the number of payload bytes one block carries at
// one bit per pixel (8x8 = 64 bits).
const BytesPerBlock = BlockSize * BlockSize / 8

// ErrLengthNotBlockAligned is returned when a byte slice's length is
// not a multiple of BytesPerBlock.
var ErrLengthNotBlockAligned = errors.New("bitpack: data length not a multiple of 8")

var (
	black = color.RGBA{A: 255}
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// blockOrigin returns the pixel coordinate of a block's top-left
// corner, where blockRow/blockCol are block-grid indices.
func blockOrigin(blockRow, blockCol int) (x, y int) {
	return blockCol * BlockSize, blockRow * BlockSize
}

// WriteBlock writes 8 bytes (64 bits, MSB-first per byte, raster
// order within the block) as black/white pixels into the block at
// (blockRow, blockCol).
func WriteBlock(img *image.RGBA, blockRow, blockCol int, data [BytesPerBlock]byte) {
	ox, oy := blockOrigin(blockRow, blockCol)
	bit := 0
	for row := 0; row < BlockSize; row++ {
		for col := 0; col < BlockSize; col++ {
			byteIdx := bit / 8
			shift := 7 - uint(bit%8)
			on := (data[byteIdx]>>shift)&1 == 1
			c := black
			if on {
				c = white
			}
			img.SetRGBA(ox+col, oy+row, c)
			bit++
		}
	}
}

// ReadBlock reads back the 8 bytes WriteBlock encoded into the block
// at (blockRow, blockCol), thresholding each pixel's luma at the
// midpoint.
func ReadBlock(img *image.RGBA, blockRow, blockCol int) [BytesPerBlock]byte {
	ox, oy := blockOrigin(blockRow, blockCol)
	var out [BytesPerBlock]byte
	bit := 0
	for row := 0; row < BlockSize; row++ {
		for col := 0; col < BlockSize; col++ {
			c := img.RGBAAt(ox+col, oy+row)
			luma := (int(c.R) + int(c.G) + int(c.B)) / 3
			if luma >= 128 {
				byteIdx := bit / 8
				shift := 7 - uint(bit%8)
				out[byteIdx] |= 1 << shift
			}
			bit++
		}
	}
	return out
}

// WriteBlocks writes data (a multiple of BytesPerBlock long) across
// consecutive blocks of blockRow, starting at blockCol.
func WriteBlocks(img *image.RGBA, blockRow, blockCol int, data []byte) error {
	if len(data)%BytesPerBlock != 0 {
		return ErrLengthNotBlockAligned
	}
	numBlocks := len(data) / BytesPerBlock
	for i := 0; i < numBlocks; i++ {
		var chunk [BytesPerBlock]byte
		copy(chunk[:], data[i*BytesPerBlock:(i+1)*BytesPerBlock])
		WriteBlock(img, blockRow, blockCol+i, chunk)
	}
	return nil
}

// ReadBlocks reads numBlocks consecutive blocks of blockRow starting
// at blockCol and returns their concatenated bytes.
func ReadBlocks(img *image.RGBA, blockRow, blockCol, numBlocks int) []byte {
	out := make([]byte, 0, numBlocks*BytesPerBlock)
	for i := 0; i < numBlocks; i++ {
		chunk := ReadBlock(img, blockRow, blockCol+i)
		out = append(out, chunk[:]...)
	}
	return out
}

// BoolsToBytes packs a slice of bits (MSB-first) into bytes, zero
// padding the final byte if len(bits) is not a multiple of 8.
func BoolsToBytes(bits []bool) []byte {
	n := (len(bits) + 7) / 8
	out := make([]byte, n)
	for i, b := range bits {
		if b {
			out[i/8] |= 1 << uint(7-i%8)
		}
	}
	return out
}

// BytesToBools unpacks n bits (MSB-first) from data.
func BytesToBools(data []byte, n int) []bool {
	bits := make([]bool, n)
	for i := 0; i < n; i++ {
		bits[i] = (data[i/8]>>uint(7-i%8))&1 == 1
	}
	return bits
}
