/*
NAME
  errors.go

DESCRIPTION
  errors.go defines the sentinel errors returned across the encoder
  and decoder entry points.

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

import "errors"

// Encoder input/metadata errors.
var (
	ErrNoData                 = errors.New("pxf: neither audio nor binary input was provided")
	ErrMixedAudioBinary        = errors.New("pxf: both audio and binary input were provided")
	ErrMetadataTooManyEntries = errors.New("pxf: metadata has more than 255 entries")
	ErrMetadataKeyTooLong     = errors.New("pxf: metadata key longer than 15 bytes")
	ErrMetadataValueTooLong   = errors.New("pxf: metadata value longer than 4095 bytes")
	ErrMetadataTooLarge       = errors.New("pxf: serialized metadata exceeds 747 bytes")
)

// Decoder errors.
var (
	ErrNoSources              = errors.New("pxf: no source images were provided")
	ErrHeaderChecksumInvalid  = errors.New("pxf: header checksum validation failed")
	ErrUnsupportedVersion     = errors.New("pxf: unsupported format version")
	ErrInvalidImageWidth      = errors.New("pxf: image width is not 1024")
	ErrStereoMidSideMismatch  = errors.New("pxf: mid and side images do not share a matching partner")
	ErrSideOnly               = errors.New("pxf: source set contains only side-channel images")
)
