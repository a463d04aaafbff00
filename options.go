/*
NAME
  options.go

DESCRIPTION
  options.go defines encoder inputs, options, and metadata validation.

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

import "sort"

// DefaultMaxHeight is the default cap on emitted image height.
const DefaultMaxHeight = 4096

// MaxMetadataEntries, MaxMetadataKeyLen, MaxMetadataValueLen, and
// MaxMetadataSerializedSize are the hard limits on encoder metadata,
// sized to fit the header's fixed metadata budget.
const (
	MaxMetadataEntries        = 255
	MaxMetadataKeyLen         = 15
	MaxMetadataValueLen       = 4095
	MaxMetadataSerializedSize = 747
)

// AudioInput is the encoder's audio-mode input: one (mono) or two
// (stereo) sample buffers sharing a sample rate, nominally in
// [-1,+1].
type AudioInput struct {
	Channels   [][]float32
	SampleRate int
}

// BinaryInput is the encoder's binary-mode input.
type BinaryInput struct {
	Bytes []byte
}

// EncodeOptions configures one Encode call. Progress, if set, is
// invoked with a percentage in [0,100] at coarse intervals during the
// row loop.
type EncodeOptions struct {
	MaxHeight int
	Metadata  map[string]string
	Progress  func(percent int)
}

// normalizedMaxHeight returns o.MaxHeight, or DefaultMaxHeight if
// unset.
func (o EncodeOptions) normalizedMaxHeight() int {
	if o.MaxHeight <= 0 {
		return DefaultMaxHeight
	}
	return o.MaxHeight
}

// validateMetadata checks the invariants on a metadata map before any
// encoding work begins, and returns its keys in sorted order.
func validateMetadata(meta map[string]string) ([]string, error) {
	if len(meta) > MaxMetadataEntries {
		return nil, ErrMetadataTooManyEntries
	}
	keys := make([]string, 0, len(meta))
	total := 1 // count byte
	for k, v := range meta {
		if len(k) > MaxMetadataKeyLen {
			return nil, ErrMetadataKeyTooLong
		}
		if len(v) > MaxMetadataValueLen {
			return nil, ErrMetadataValueTooLong
		}
		total += 2 + len(k) + len(v) // 2-byte keyLen/valueLen header per entry
		keys = append(keys, k)
	}
	if total > MaxMetadataSerializedSize {
		return nil, ErrMetadataTooLarge
	}
	sort.Strings(keys)
	return keys, nil
}
