/*
NAME
  textrow.go

DESCRIPTION
  textrow.go renders the informational status line on row 1 in a 3x5
  bitmap font, and reserves/writes the header checksum bytes in that
  row's last 4 blocks.

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
	"image/color"
	"strings"
	"unicode"

	"github.com/ausocean/pxf/internal/bitpack"
)

// glyphWidth, glyphHeight are the bitmap font's cell dimensions.
const (
	glyphWidth  = 3
	glyphHeight = 5
)

// glyph3x5 holds 5 rows of 3-bit columns (MSB = leftmost column),
// indexed by rune.
var glyph3x5 = map[rune][glyphHeight]byte{
	' ': {0b000, 0b000, 0b000, 0b000, 0b000},
	'.': {0b000, 0b000, 0b000, 0b000, 0b010},
	':': {0b000, 0b010, 0b000, 0b010, 0b000},
	'-': {0b000, 0b000, 0b111, 0b000, 0b000},
	'_': {0b000, 0b000, 0b000, 0b000, 0b111},
	'?': {0b111, 0b001, 0b010, 0b000, 0b010},
	'0': {0b111, 0b101, 0b101, 0b101, 0b111},
	'1': {0b010, 0b110, 0b010, 0b010, 0b111},
	'2': {0b111, 0b001, 0b111, 0b100, 0b111},
	'3': {0b111, 0b001, 0b111, 0b001, 0b111},
	'4': {0b101, 0b101, 0b111, 0b001, 0b001},
	'5': {0b111, 0b100, 0b111, 0b001, 0b111},
	'6': {0b111, 0b100, 0b111, 0b101, 0b111},
	'7': {0b111, 0b001, 0b001, 0b001, 0b001},
	'8': {0b111, 0b101, 0b111, 0b101, 0b111},
	'9': {0b111, 0b101, 0b111, 0b001, 0b111},
	'A': {0b010, 0b101, 0b111, 0b101, 0b101},
	'B': {0b110, 0b101, 0b110, 0b101, 0b110},
	'C': {0b111, 0b100, 0b100, 0b100, 0b111},
	'D': {0b110, 0b101, 0b101, 0b101, 0b110},
	'E': {0b111, 0b100, 0b110, 0b100, 0b111},
	'F': {0b111, 0b100, 0b110, 0b100, 0b100},
	'G': {0b111, 0b100, 0b101, 0b101, 0b111},
	'H': {0b101, 0b101, 0b111, 0b101, 0b101},
	'I': {0b111, 0b010, 0b010, 0b010, 0b111},
	'J': {0b001, 0b001, 0b001, 0b101, 0b111},
	'K': {0b101, 0b101, 0b110, 0b101, 0b101},
	'L': {0b100, 0b100, 0b100, 0b100, 0b111},
	'M': {0b101, 0b111, 0b111, 0b101, 0b101},
	'N': {0b101, 0b111, 0b111, 0b111, 0b101},
	'O': {0b111, 0b101, 0b101, 0b101, 0b111},
	'P': {0b111, 0b101, 0b111, 0b100, 0b100},
	'Q': {0b111, 0b101, 0b101, 0b111, 0b001},
	'R': {0b111, 0b101, 0b110, 0b101, 0b101},
	'S': {0b111, 0b100, 0b111, 0b001, 0b111},
	'T': {0b111, 0b010, 0b010, 0b010, 0b010},
	'U': {0b101, 0b101, 0b101, 0b101, 0b111},
	'V': {0b101, 0b101, 0b101, 0b101, 0b010},
	'W': {0b101, 0b101, 0b111, 0b111, 0b101},
	'X': {0b101, 0b101, 0b010, 0b101, 0b101},
	'Y': {0b101, 0b101, 0b010, 0b010, 0b010},
	'Z': {0b111, 0b001, 0b010, 0b100, 0b111},
}

// transliterate upper-cases an ASCII rune when the font has a glyph for
// the result; any other rune becomes '?'. Non-ASCII runes are not
// approximated by ASCII letters: every one of them becomes '?'.
func transliterate(r rune) rune {
	if r <= unicode.MaxASCII {
		upper := unicode.ToUpper(r)
		if _, ok := glyph3x5[upper]; ok {
			return upper
		}
	}
	return '?'
}

// checksumReserveWidth is the pixel width reserved at the right edge
// of the text row for the 4 checksum blocks.
const checksumReserveWidth = 32

// drawText renders s starting at (startX, startY) in the 3x5 font with
// 1-pixel glyph spacing, stopping before width-checksumReserveWidth.
func drawText(img *stdimage.RGBA, s string, startX, startY, width int) {
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	x := startX
	limit := width - checksumReserveWidth
	for _, r := range s {
		if x+glyphWidth > limit {
			break
		}
		g, ok := glyph3x5[unicode.ToUpper(r)]
		if !ok {
			g = glyph3x5[transliterate(r)]
		}
		for row := 0; row < glyphHeight; row++ {
			bits := g[row]
			for col := 0; col < glyphWidth; col++ {
				if bits&(1<<uint(glyphWidth-1-col)) != 0 {
					img.SetRGBA(x+col, startY+row, white)
				}
			}
		}
		x += glyphWidth + 1
	}
}

// WriteTextRow draws status on row 1 of img and writes checksum (32
// bytes) as 1-bit-per-pixel into the row's last 4 metadata blocks.
func WriteTextRow(img Image, status string, checksum [32]byte) error {
	rowY := TextBlockRow * bitpack.BlockSize
	drawText(img.RGBA, strings.TrimSpace(status), 4, rowY+2, img.Width())

	checksumBlockCol := BlocksPerRow - MetaBlocksPerRow
	return bitpack.WriteBlocks(img.RGBA, TextBlockRow, checksumBlockCol, checksum[:])
}

// ReadChecksum reads the 32 checksum bytes from row 1's last 4 blocks.
func ReadChecksum(img Image) [32]byte {
	checksumBlockCol := BlocksPerRow - MetaBlocksPerRow
	var out [32]byte
	copy(out[:], bitpack.ReadBlocks(img.RGBA, TextBlockRow, checksumBlockCol, MetaBlocksPerRow))
	return out
}
