/*
NAME
  doc.go

DESCRIPTION
  doc.go is the package-level documentation for pxf.

AUTHOR
  PXF contributors

LICENSE
  Copyright (C) 2026 the PXF contributors. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the PXF contributors.
*/

// Package pxf implements the Pixel Exchange Format: a codec that
// hides PCM audio or arbitrary binary payloads inside one or more
// RGBA image buffers.
//
// Encode converts an AudioInput or a BinaryInput into a slice of
// Images; Decode parses a slice of Images (possibly drawn from more
// than one encoding, or reassembled out of order) back into the
// original payload. Audio images additionally support row-at-a-time
// streaming decode through StreamingAudioDecoder.
//
// Each image is a fixed ImageWidth-pixel-wide RGBA buffer laid out in
// 8x8-pixel blocks: row 0 carries the LDPC-protected header, row 1 a
// human-readable status line and the header's checksum, and every row
// after that 124 data blocks plus 4 metadata blocks. Audio data blocks
// carry an MDCT-derived luma/chroma spatial block mapped through an
// oriented bounding box into RGB; binary data blocks carry a
// Gray-coded, LDPC-protected, permuted byte stream.
package pxf
