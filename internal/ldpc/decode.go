/*
NAME
  decode.go

DESCRIPTION
  decode.go implements layered Sum-Product soft decoding with an
  Ordered Statistics Decoding fallback.

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
	"math"
	"sort"
)

const (
	maxIterations  = 50
	llrClamp       = 30
	osdCandidates  = 15
	productEpsilon = 1e-6 // Keeps prodExcl away from +/-1 before atanh.
)

// Result is the outcome of a soft decode: the recovered K data bits,
// whether the syndrome was ultimately satisfied, and whether OSD had to
// be invoked to reach that state.
type Result struct {
	Data      []bool
	Corrected bool
	OSD       bool
}

// Decode runs layered Sum-Product decoding of a channel LLR vector of
// length g.N (positive = bit 0, negative = bit 1), falling back to
// Ordered Statistics Decoding if belief propagation fails to converge
// within 50 iterations.
func (g *Graph) Decode(channelLLR []float64) (Result, error) {
	if len(channelLLR) != g.N {
		return Result{}, ErrLLRLength
	}

	lq := append([]float64(nil), channelLLR...)

	// Per-check edge messages R[c][i] correspond to g.Neighbors(c)[i].
	neighbors := make([][]int, g.M)
	edgeMsg := make([][]float64, g.M)
	for c := 0; c < g.M; c++ {
		neighbors[c] = g.Neighbors(c)
		edgeMsg[c] = make([]float64, len(neighbors[c]))
	}

	hard := make([]bool, g.N)
	converged := false
	for iter := 0; iter < maxIterations && !converged; iter++ {
		for c := 0; c < g.M; c++ {
			nb := neighbors[c]
			msgs := edgeMsg[c]
			tanhs := make([]float64, len(nb))
			for i, v := range nb {
				lvc := clamp(lq[v]-msgs[i], -llrClamp, llrClamp)
				tanhs[i] = math.Tanh(lvc / 2)
			}
			for i, v := range nb {
				prod := 1.0
				for j := range nb {
					if j == i {
						continue
					}
					prod *= tanhs[j]
				}
				prod = clamp(prod, -1+productEpsilon, 1-productEpsilon)
				newR := 2 * math.Atanh(prod)
				lq[v] += newR - msgs[i]
				msgs[i] = newR
			}
		}

		for v := 0; v < g.N; v++ {
			hard[v] = lq[v] < 0
		}
		converged = syndromeIsZero(g.Syndrome(hard))
	}

	if converged {
		return Result{Data: append([]bool(nil), hard[:g.K]...), Corrected: true}, nil
	}

	if fixed, ok := g.orderedStatisticsDecode(lq, hard); ok {
		return Result{Data: append([]bool(nil), fixed[:g.K]...), Corrected: true, OSD: true}, nil
	}

	return Result{Data: append([]bool(nil), hard[:g.K]...), Corrected: false}, nil
}

// orderedStatisticsDecode sorts variables by ascending |Lq| (least
// reliable first) and tries flipping each of the osdCandidates least
// reliable bits one at a time, returning the first hard decision whose
// syndrome is satisfied.
func (g *Graph) orderedStatisticsDecode(lq []float64, hard []bool) ([]bool, bool) {
	type entry struct {
		v   int
		abs float64
	}
	entries := make([]entry, g.N)
	for v := range lq {
		entries[v] = entry{v: v, abs: math.Abs(lq[v])}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].abs < entries[j].abs })

	n := osdCandidates
	if n > len(entries) {
		n = len(entries)
	}
	for i := 0; i < n; i++ {
		candidate := append([]bool(nil), hard...)
		v := entries[i].v
		candidate[v] = !candidate[v]
		if syndromeIsZero(g.Syndrome(candidate)) {
			return candidate, true
		}
	}
	return nil, false
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
