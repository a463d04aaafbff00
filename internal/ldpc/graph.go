/*
NAME
  graph.go

DESCRIPTION
  graph.go defines the LDPC Tanner graph representation shared by the
  three fixed codes (header, row metadata, binary), and the systematic
  staircase encoder built directly on top of it.

AUTHOR
  PXF contributors

LICENSE
  Copyright (C) 2026 the PXF contributors. All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the PXF contributors.
*/

// Package ldpc implements the systematic LDPC encoder and layered
// sum-product soft decoder (with an ordered-statistics-decoding
// fallback) used for the header, audio row metadata, and binary row
// payloads.
package ldpc

// Graph is a systematic LDPC Tanner graph H = [H_d | H_p], where H_d is
// built at run time, on first use, by Progressive Edge Growth (column
// weight 3; no precomputed table is shipped) and H_p is
// the dual-diagonal staircase implied by the systematic encoder.
type Graph struct {
	N int // Codeword length (data + parity bits).
	K int // Data bits.
	M int // Parity bits (N - K).

	// dataChecks[v] holds the 3 check indices (0..M-1) variable v
	// (0..K-1) connects to.
	dataChecks [][3]int

	// checkData[c] holds the data variable indices connected to check
	// c; the reverse index of dataChecks.
	checkData [][]int
}

// ParityVar returns the global variable index (0..N-1) of parity bit i.
func (g *Graph) ParityVar(i int) int { return g.K + i }

// Neighbors returns the full list of variable indices (data and
// parity) connected to check c, derived directly from the systematic
// encoder's recursive construction:
//
//	p[0]   =  s[0]
//	p[i]   =  s[i] XOR p[i-1],  i = 1..M-1
//
// so check 0's equation involves only p_0, and check i's equation
// (i>=1) involves p_i and p_{i-1}, in addition to the data variables
// from H_d.
func (g *Graph) Neighbors(c int) []int {
	out := make([]int, 0, len(g.checkData[c])+2)
	out = append(out, g.checkData[c]...)
	out = append(out, g.ParityVar(c))
	if c > 0 {
		out = append(out, g.ParityVar(c-1))
	}
	return out
}

// DataChecks returns the 3 check indices for data variable v.
func (g *Graph) DataChecks(v int) [3]int { return g.dataChecks[v] }

// Encode returns the systematic codeword (data bits followed by parity
// bits) for the given K-bit data vector.
func (g *Graph) Encode(data []bool) ([]bool, error) {
	if len(data) != g.K {
		return nil, ErrInvalidLength
	}
	s := make([]bool, g.M)
	for v := 0; v < g.K; v++ {
		if !data[v] {
			continue
		}
		for _, c := range g.dataChecks[v] {
			s[c] = !s[c]
		}
	}
	parity := make([]bool, g.M)
	parity[0] = s[0]
	for i := 1; i < g.M; i++ {
		parity[i] = s[i] != parity[i-1]
	}
	out := make([]bool, g.N)
	copy(out, data)
	copy(out[g.K:], parity)
	return out, nil
}

// Syndrome returns the M-bit syndrome of a full N-bit codeword (zero iff
// every parity check is satisfied).
func (g *Graph) Syndrome(bits []bool) []bool {
	s := make([]bool, g.M)
	for c := 0; c < g.M; c++ {
		var acc bool
		for _, v := range g.Neighbors(c) {
			if bits[v] {
				acc = !acc
			}
		}
		s[c] = acc
	}
	return s
}

func syndromeIsZero(s []bool) bool {
	for _, b := range s {
		if b {
			return false
		}
	}
	return true
}
