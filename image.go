/*
NAME
  image.go

DESCRIPTION
  image.go defines the Image wire type: a 1024-pixel-wide RGBA buffer
  addressed in 8x8-pixel blocks, 128 per row.

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
	stdimage "image"

	"github.com/ausocean/pxf/internal/bitpack"
)

// ImageWidth is the fixed pixel width of every emitted image.
const ImageWidth = 1024

// BlocksPerRow is the number of 8x8-pixel blocks across one row.
const BlocksPerRow = ImageWidth / bitpack.BlockSize

// DataBlocksPerRow and MetaBlocksPerRow split a block-row's 128
// blocks into payload and metadata regions.
const (
	DataBlocksPerRow = 124
	MetaBlocksPerRow = 4
)

// Block-row roles.
const (
	HeaderBlockRow = 0
	TextBlockRow   = 1
	FirstDataRow   = 2
)

// Image is a named RGBA buffer exactly ImageWidth pixels wide, with
// height a multiple of 8.
type Image struct {
	Name string
	RGBA *stdimage.RGBA
}

// NewImage allocates a blank (opaque black) image with the given
// number of 8-pixel-tall block-rows.
func NewImage(name string, blockRows int) Image {
	rgba := stdimage.NewRGBA(stdimage.Rect(0, 0, ImageWidth, blockRows*bitpack.BlockSize))
	for i := 3; i < len(rgba.Pix); i += 4 {
		rgba.Pix[i] = 255 // opaque alpha
	}
	return Image{Name: name, RGBA: rgba}
}

// BlockRows returns the number of 8-pixel-tall block-rows in the
// image.
func (img Image) BlockRows() int {
	return img.RGBA.Bounds().Dy() / bitpack.BlockSize
}

// Width and Height report the image's pixel dimensions.
func (img Image) Width() int  { return img.RGBA.Bounds().Dx() }
func (img Image) Height() int { return img.RGBA.Bounds().Dy() }

// Data returns the raw RGBA byte buffer, width*height*4 bytes.
func (img Image) Data() []byte { return img.RGBA.Pix }

// FromData wraps a raw RGBA byte buffer (as returned by Data) back
// into an Image for decoding.
func FromData(name string, data []byte, width, height int) Image {
	rgba := &stdimage.RGBA{
		Pix:    data,
		Stride: width * 4,
		Rect:   stdimage.Rect(0, 0, width, height),
	}
	return Image{Name: name, RGBA: rgba}
}

// DataRowBlockCount is the number of audio/binary data blocks
// available starting at FirstDataRow, given the image's total
// block-rows (subtracting the header and text rows).
func (img Image) DataRowBlockCount() int {
	rows := img.BlockRows() - FirstDataRow
	if rows < 0 {
		rows = 0
	}
	return rows * DataBlocksPerRow
}
