/*
NAME
  testaudio_test.go

AUTHOR
  PXF contributors

LICENSE
  Copyright (C) 2026 the PXF contributors. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the PXF contributors.
*/

package testaudio

import (
	"os"
	"testing"
)

func TestSineToneShape(t *testing.T) {
	b := SineTone(8000, 2, 440, 0.1)
	if len(b.Data) != 800*2 {
		t.Fatalf("got %d samples, want %d", len(b.Data), 800*2)
	}
	if b.Format.Rate != 8000 || b.Format.Channels != 2 {
		t.Fatalf("unexpected format: %+v", b.Format)
	}
}

func TestWAVRoundtrip(t *testing.T) {
	b := SineTone(8000, 1, 220, 0.05)

	f, err := os.CreateTemp(t.TempDir(), "fixture-*.wav")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	if err := EncodeWAV(f, b); err != nil {
		t.Fatal(err)
	}
	if _, err := f.Seek(0, 0); err != nil {
		t.Fatal(err)
	}

	got, err := DecodeWAV(f)
	if err != nil {
		t.Fatal(err)
	}
	if got.Format.Rate != b.Format.Rate || got.Format.Channels != b.Format.Channels {
		t.Fatalf("format mismatch: got %+v, want %+v", got.Format, b.Format)
	}
	if len(got.Data) != len(b.Data) {
		t.Fatalf("sample count mismatch: got %d, want %d", len(got.Data), len(b.Data))
	}
}
