/*
NAME
  testaudio.go

DESCRIPTION
  testaudio.go provides PCM fixture helpers for package tests: tone
  generation, WAV encode/decode round trips via go-audio, and FLAC
  fixture decoding via mewkiz/flac. Adapted from the Buffer/
  BufferFormat conventions of codec/pcm.

AUTHOR
  PXF contributors

LICENSE
  Copyright (C) 2026 the PXF contributors. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the PXF contributors.
*/

// Package testaudio provides test-only PCM fixture helpers shared
// across the codec's package tests.
package testaudio

import (
	"io"
	"math"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/mewkiz/flac"
)

// SampleFormat mirrors codec/pcm's sample-format enumeration.
type SampleFormat int

const (
	S16LE SampleFormat = iota
	S32LE
)

// BufferFormat describes a PCM buffer's sample rate and channel count.
type BufferFormat struct {
	SFormat  SampleFormat
	Rate     uint
	Channels uint
}

// Buffer is a fixture PCM buffer: interleaved signed samples plus
// their format.
type Buffer struct {
	Format BufferFormat
	Data   []int
}

// SineTone generates a deterministic interleaved multi-channel sine
// wave fixture, seconds long at freqHz, for use as test input audio.
func SineTone(rate uint, channels int, freqHz float64, seconds float64) Buffer {
	n := int(float64(rate) * seconds)
	data := make([]int, n*channels)
	for i := 0; i < n; i++ {
		v := math.Sin(2 * math.Pi * freqHz * float64(i) / float64(rate))
		for c := 0; c < channels; c++ {
			// Slight per-channel phase offset so stereo fixtures are not
			// byte-identical between channels.
			phase := v
			if c == 1 {
				phase = math.Sin(2*math.Pi*freqHz*float64(i)/float64(rate) + 0.25)
			}
			data[i*channels+c] = int(phase * 0.8 * 32767)
		}
	}
	return Buffer{Format: BufferFormat{SFormat: S16LE, Rate: rate, Channels: uint(channels)}, Data: data}
}

// EncodeWAV writes b as a 16-bit PCM WAV file to w.
func EncodeWAV(w io.WriteSeeker, b Buffer) error {
	enc := wav.NewEncoder(w, int(b.Format.Rate), 16, int(b.Format.Channels), 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: int(b.Format.Channels), SampleRate: int(b.Format.Rate)},
		Data:           b.Data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		return err
	}
	return enc.Close()
}

// DecodeWAV reads a 16-bit PCM WAV file from r into a Buffer.
func DecodeWAV(r io.ReadSeeker) (Buffer, error) {
	dec := wav.NewDecoder(r)
	pcm, err := dec.FullPCMBuffer()
	if err != nil {
		return Buffer{}, err
	}
	return Buffer{
		Format: BufferFormat{SFormat: S16LE, Rate: uint(pcm.Format.SampleRate), Channels: uint(pcm.Format.NumChannels)},
		Data:   pcm.Data,
	}, nil
}

// DecodeFLAC decodes every frame of a FLAC stream from r into an
// interleaved int buffer, used to build payload fixtures from
// compressed test audio.
func DecodeFLAC(r io.Reader) (Buffer, error) {
	stream, err := flac.New(r)
	if err != nil {
		return Buffer{}, err
	}
	defer stream.Close()

	var out []int
	channels := int(stream.Info.NChannels)
	for {
		frame, err := stream.ParseNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Buffer{}, err
		}
		n := len(frame.Subframes[0].Samples)
		for i := 0; i < n; i++ {
			for c := 0; c < channels; c++ {
				out = append(out, int(frame.Subframes[c].Samples[i]))
			}
		}
	}
	return Buffer{
		Format: BufferFormat{SFormat: S16LE, Rate: uint(stream.Info.SampleRate), Channels: uint(channels)},
		Data:   out,
	}, nil
}

