/*
NAME
  ldpc_test.go

AUTHOR
  PXF contributors

LICENSE
  Copyright (C) 2026 the PXF contributors. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the PXF contributors.
*/

package ldpc

import (
	"testing"

	"github.com/ausocean/pxf/internal/prng"
)

// bitsToLLR converts a hard-decision bit vector into channel LLRs of
// magnitude mag (positive for bit 0, negative for bit 1), flipping the
// given bit indices before conversion to simulate channel errors.
func bitsToLLR(bits []bool, flips []int, mag float64) []float64 {
	flipped := append([]bool(nil), bits...)
	for _, i := range flips {
		flipped[i] = !flipped[i]
	}
	llr := make([]float64, len(flipped))
	for i, b := range flipped {
		if b {
			llr[i] = -mag
		} else {
			llr[i] = mag
		}
	}
	return llr
}

func randomBits(n int, seed uint32) []bool {
	r := prng.NewRng(seed)
	bits := make([]bool, n)
	for i := range bits {
		bits[i] = r.NextByte()&1 == 1
	}
	return bits
}

func TestGraphEncodeSyndromeZero(t *testing.T) {
	g := RowMetaGraph()
	data := randomBits(g.K, 1)
	codeword, err := g.Encode(data)
	if err != nil {
		t.Fatal(err)
	}
	if !syndromeIsZero(g.Syndrome(codeword)) {
		t.Fatal("freshly encoded codeword does not satisfy syndrome")
	}
	for v := 0; v < g.K; v++ {
		if codeword[v] != data[v] {
			t.Fatal("systematic encoder changed a data bit")
		}
	}
}

func TestGraphEncodeInvalidLength(t *testing.T) {
	g := RowMetaGraph()
	if _, err := g.Encode(make([]bool, g.K+1)); err != ErrInvalidLength {
		t.Fatalf("expected ErrInvalidLength, got %v", err)
	}
}

func TestDecodeCorrectsErrors(t *testing.T) {
	g := RowMetaGraph()
	data := randomBits(g.K, 99)
	codeword, err := g.Encode(data)
	if err != nil {
		t.Fatal(err)
	}

	eth := (g.N - g.K) / 2
	if eth > 6 {
		eth = 6 // Keep the BFS/SPA cost of this unit test bounded.
	}
	flips := make([]int, eth)
	r := prng.NewRng(7)
	for i := range flips {
		flips[i] = int(r.NextU32Mod(uint32(g.N)))
	}

	llr := bitsToLLR(codeword, flips, 10)
	result, err := g.Decode(llr)
	if err != nil {
		t.Fatal(err)
	}
	if !result.Corrected {
		t.Fatal("decoder failed to converge")
	}
	for i := range data {
		if result.Data[i] != data[i] {
			t.Fatalf("bit %d mismatch after correction", i)
		}
	}
}

func TestDecodeNoErrorsConvergesImmediately(t *testing.T) {
	g := RowMetaGraph()
	data := randomBits(g.K, 5)
	codeword, err := g.Encode(data)
	if err != nil {
		t.Fatal(err)
	}
	llr := bitsToLLR(codeword, nil, 10)
	result, err := g.Decode(llr)
	if err != nil {
		t.Fatal(err)
	}
	if !result.Corrected || result.OSD {
		t.Fatalf("expected clean convergence without OSD, got %+v", result)
	}
}

func TestDecodeInvalidLength(t *testing.T) {
	g := RowMetaGraph()
	if _, err := g.Decode(make([]float64, g.N-1)); err != ErrLLRLength {
		t.Fatalf("expected ErrLLRLength, got %v", err)
	}
}

func TestGraphsHaveExpectedDimensions(t *testing.T) {
	if testing.Short() {
		t.Skip("PEG construction of the full header/binary graphs is slow; skipped with -short")
	}
	cases := []struct {
		name    string
		graph   *Graph
		n, k    int
	}{
		{"header", HeaderGraph(), HeaderN, HeaderK},
		{"rowmeta", RowMetaGraph(), RowMetaN, RowMetaK},
		{"binary", BinaryGraph(), BinaryN, BinaryK},
	}
	for _, c := range cases {
		if c.graph.N != c.n || c.graph.K != c.k {
			t.Errorf("%s graph: got N=%d K=%d, want N=%d K=%d", c.name, c.graph.N, c.graph.K, c.n, c.k)
		}
		for v := 0; v < c.graph.K; v++ {
			checks := c.graph.DataChecks(v)
			if checks[0] == checks[1] && checks[1] == checks[2] {
				t.Errorf("%s graph: variable %d has degenerate edges %v", c.name, v, checks)
			}
		}
	}
}
