/*
NAME
  bitpack_test.go

AUTHOR
  PXF contributors

LICENSE
  Copyright (C) 2026 the PXF contributors. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the PXF contributors.
*/

package bitpack

import (
	"image"
	"testing"
)

func TestBlockRoundtrip(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, BlockSize, BlockSize))
	var data [BytesPerBlock]byte
	for i := range data {
		data[i] = byte(i*37 + 11)
	}
	WriteBlock(img, 0, 0, data)
	got := ReadBlock(img, 0, 0)
	if got != data {
		t.Fatalf("block roundtrip mismatch: got %v, want %v", got, data)
	}
}

func TestBlocksRoundtrip(t *testing.T) {
	const numBlocks = 4
	img := image.NewRGBA(image.Rect(0, 0, BlockSize*numBlocks, BlockSize))
	data := make([]byte, numBlocks*BytesPerBlock)
	for i := range data {
		data[i] = byte(i*13 + 5)
	}
	if err := WriteBlocks(img, 0, 0, data); err != nil {
		t.Fatal(err)
	}
	got := ReadBlocks(img, 0, 0, numBlocks)
	if len(got) != len(data) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(data))
	}
	for i := range data {
		if got[i] != data[i] {
			t.Fatalf("byte %d mismatch: got %#x, want %#x", i, got[i], data[i])
		}
	}
}

func TestWriteBlocksRejectsUnaligned(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, BlockSize, BlockSize))
	if err := WriteBlocks(img, 0, 0, make([]byte, BytesPerBlock+1)); err != ErrLengthNotBlockAligned {
		t.Fatalf("expected ErrLengthNotBlockAligned, got %v", err)
	}
}

func TestBoolsBytesRoundtrip(t *testing.T) {
	bits := []bool{true, false, true, true, false, false, true, false, true, true}
	b := BoolsToBytes(bits)
	got := BytesToBools(b, len(bits))
	for i := range bits {
		if got[i] != bits[i] {
			t.Fatalf("bit %d mismatch: got %v, want %v", i, got[i], bits[i])
		}
	}
}
