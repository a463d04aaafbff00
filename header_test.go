/*
NAME
  header_test.go

DESCRIPTION
  header_test.go checks that a Header and its metadata survive
  serialization and parsing unchanged.

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
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestHeaderRoundtrip(t *testing.T) {
	want := Header{
		Version:      FormatVersion,
		SampleRate:   44100,
		TotalOrBytes: 123456,
		ChannelMode:  ChannelStereoMid,
		Salt:         [4]byte{0xde, 0xad, 0xbe, 0xef},
		ImageIndex:   1,
		TotalImages:  2,
	}
	meta := map[string]string{"fn": "take", "artist": "ocean"}
	keys, err := validateMetadata(meta)
	if err != nil {
		t.Fatalf("validateMetadata: %v", err)
	}

	plaintext := BuildHeaderPlaintext(want, keys, meta)
	got, metaLen := parseFixed(plaintext)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("fixed header mismatch (-want +got):\n%s", diff)
	}

	gotMeta, consumed, err := parseMetadata(plaintext[HeaderFixedSize : HeaderFixedSize+int(metaLen)])
	if err != nil {
		t.Fatalf("parseMetadata: %v", err)
	}
	if diff := cmp.Diff(meta, gotMeta); diff != "" {
		t.Fatalf("metadata mismatch (-want +got):\n%s", diff)
	}
	if consumed != int(metaLen) {
		t.Fatalf("parseMetadata consumed %d bytes, want %d", consumed, metaLen)
	}
}

func TestHeaderChecksumsDetectCorruption(t *testing.T) {
	h := Header{Version: FormatVersion, ChannelMode: ChannelBinary, ImageIndex: 1, TotalImages: 1}
	plaintext := BuildHeaderPlaintext(h, nil, nil)
	sum := HeaderChecksums(plaintext)

	corrupted := append([]byte(nil), plaintext...)
	corrupted[0] ^= 0xff
	if cmp.Equal(HeaderChecksums(corrupted), sum) {
		t.Fatalf("checksum did not change after corrupting the fixed region")
	}
}
