/*
NAME
  pxf_test.go

DESCRIPTION
  pxf_test.go covers end-to-end Encode/Decode scenarios: binary
  byte-exact roundtrip, mono and stereo audio roundtrip within the
  codec's lossy-reconstruction error budget, and multi-image
  reassembly independent of input order.

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
	"math"
	"math/rand"
	"testing"
)

func TestBinaryRoundtrip(t *testing.T) {
	payload := make([]byte, 10000)
	rng := rand.New(rand.NewSource(1))
	rng.Read(payload)

	images, err := Encode(nil, &BinaryInput{Bytes: payload}, EncodeOptions{MaxHeight: 40})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(images) < 2 {
		t.Fatalf("expected payload to span multiple images at MaxHeight=40, got %d", len(images))
	}

	_, binResult, err := Decode(images)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !binResult.ValidChecksum {
		t.Fatalf("ValidChecksum = false")
	}
	if len(binResult.Bytes) != len(payload) {
		t.Fatalf("decoded %d bytes, want %d", len(binResult.Bytes), len(payload))
	}
	for i := range payload {
		if binResult.Bytes[i] != payload[i] {
			t.Fatalf("byte %d mismatch: got 0x%02x, want 0x%02x", i, binResult.Bytes[i], payload[i])
		}
	}
}

func TestBinaryRoundtripOrderIndependent(t *testing.T) {
	payload := make([]byte, 6000)
	rng := rand.New(rand.NewSource(2))
	rng.Read(payload)

	images, err := Encode(nil, &BinaryInput{Bytes: payload}, EncodeOptions{MaxHeight: 24})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(images) < 3 {
		t.Fatalf("expected at least 3 images, got %d", len(images))
	}

	reversed := make([]Image, len(images))
	for i, img := range images {
		reversed[len(images)-1-i] = img
	}

	_, binResult, err := Decode(reversed)
	if err != nil {
		t.Fatalf("Decode (reversed order): %v", err)
	}
	if !binResult.ValidChecksum || len(binResult.Bytes) != len(payload) {
		t.Fatalf("reversed-order decode did not reassemble the payload")
	}
	for i := range payload {
		if binResult.Bytes[i] != payload[i] {
			t.Fatalf("reversed-order byte %d mismatch", i)
		}
	}
}

func TestAudioMonoRoundtripRMSE(t *testing.T) {
	const sampleRate = 44100
	n := sampleRate / 10 // 0.1s
	samples := make([]float32, n)
	for i := range samples {
		samples[i] = float32(0.4 * math.Sin(2*math.Pi*440*float64(i)/float64(sampleRate)))
	}

	images, err := Encode(&AudioInput{Channels: [][]float32{samples}, SampleRate: sampleRate}, nil, EncodeOptions{Metadata: map[string]string{"fn": "mono"}})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(images) != 1 || images[0].Name != "mono" {
		t.Fatalf("expected a single image named %q, got %d images (first name %q)", "mono", len(images), images[0].Name)
	}

	audioResult, _, err := Decode(images)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(audioResult.Channels) != 1 {
		t.Fatalf("expected 1 decoded channel, got %d", len(audioResult.Channels))
	}
	got := audioResult.Channels[0]
	if len(got) < n {
		t.Fatalf("decoded %d samples, want at least %d", len(got), n)
	}

	var sumSq float64
	for i := 0; i < n; i++ {
		d := float64(got[i]) - float64(samples[i])
		sumSq += d * d
	}
	rmse := math.Sqrt(sumSq / float64(n))
	if rmse > 0.1 {
		t.Fatalf("RMSE = %v, want <= 0.1", rmse)
	}
}

func TestAudioStereoPairNaming(t *testing.T) {
	const sampleRate = 8000
	n := sampleRate / 20
	left := make([]float32, n)
	right := make([]float32, n)
	for i := range left {
		left[i] = float32(0.3 * math.Sin(2*math.Pi*220*float64(i)/float64(sampleRate)))
		right[i] = float32(0.3 * math.Sin(2*math.Pi*330*float64(i)/float64(sampleRate)))
	}

	images, err := Encode(&AudioInput{Channels: [][]float32{left, right}, SampleRate: sampleRate}, nil, EncodeOptions{Metadata: map[string]string{"fn": "stereo"}})
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(images) != 2 {
		t.Fatalf("expected 2 images for a single-chunk stereo pair, got %d", len(images))
	}
	if images[0].Name != "stereo_1_2" || images[1].Name != "stereo_2_2" {
		t.Fatalf("unexpected image names: %q, %q", images[0].Name, images[1].Name)
	}

	audioResult, _, err := Decode(images)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(audioResult.Channels) != 2 {
		t.Fatalf("expected 2 decoded channels, got %d", len(audioResult.Channels))
	}
}

func TestMetadataLimitsRejected(t *testing.T) {
	longKey := map[string]string{"this-key-is-too-long": "v"}
	if _, err := Encode(nil, &BinaryInput{Bytes: []byte("x")}, EncodeOptions{Metadata: longKey}); err != ErrMetadataKeyTooLong {
		t.Fatalf("expected ErrMetadataKeyTooLong, got %v", err)
	}

	tooMany := make(map[string]string, 300)
	for i := 0; i < 300; i++ {
		tooMany[string(rune('a'))+string(rune(i))] = "v"
	}
	if _, err := Encode(nil, &BinaryInput{Bytes: []byte("x")}, EncodeOptions{Metadata: tooMany}); err != ErrMetadataTooManyEntries {
		t.Fatalf("expected ErrMetadataTooManyEntries, got %v", err)
	}
}

func TestNoDataAndMixedInputRejected(t *testing.T) {
	if _, err := Encode(nil, nil, EncodeOptions{}); err != ErrNoData {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
	audio := &AudioInput{Channels: [][]float32{{0}}, SampleRate: 8000}
	binary := &BinaryInput{Bytes: []byte{1}}
	if _, err := Encode(audio, binary, EncodeOptions{}); err != ErrMixedAudioBinary {
		t.Fatalf("expected ErrMixedAudioBinary, got %v", err)
	}
}

func TestDecodeNoSources(t *testing.T) {
	if _, _, err := Decode(nil); err != ErrNoSources {
		t.Fatalf("expected ErrNoSources, got %v", err)
	}
}
