/*
NAME
  peg.go

DESCRIPTION
  peg.go implements the Progressive Edge Growth construction of H_d,
  the data half of each fixed LDPC parity-check matrix. The three
  resulting graphs are deterministic functions of (N, K, seed); they
  are built at run time, once and lazily on first use (no precomputed
  table is shipped), and cached as immutable package-level values
  rather than being reconstructed per call.

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
	"github.com/ausocean/pxf/internal/prng"
)

// pegBuilder holds the incremental state of a Progressive Edge Growth
// construction: the bipartite graph built so far between K data
// variables and M checks, plus scratch BFS buffers reused across edge
// selections.
type pegBuilder struct {
	k, m int
	rng  *prng.Rng

	varChecks   [][]int // variable -> checks connected so far.
	checkVars   [][]int // check -> variables connected so far.
	checkDegree []int

	// BFS scratch, reused across calls via generation stamps to avoid
	// reallocating on every edge.
	checkGen  []int
	varGen    []int
	generation int
}

func newPEGBuilder(k, m int, seed uint32) *pegBuilder {
	return &pegBuilder{
		k:           k,
		m:           m,
		rng:         prng.NewRng(seed),
		varChecks:   make([][]int, k),
		checkVars:   make([][]int, m),
		checkDegree: make([]int, m),
		checkGen:    make([]int, m),
		varGen:      make([]int, k),
	}
}

// buildGraph runs PEG for all K variables, each receiving 3 edges, and
// returns the resulting Graph (with N = K + M).
func buildGraph(n, k int, seed uint32) *Graph {
	m := n - k
	b := newPEGBuilder(k, m, seed)
	edges := make([][3]int, k)
	for v := 0; v < k; v++ {
		for e := 0; e < 3; e++ {
			c := b.selectCheck(v)
			edges[v][e] = c
			b.varChecks[v] = append(b.varChecks[v], c)
			b.checkVars[c] = append(b.checkVars[c], v)
			b.checkDegree[c]++
		}
	}
	checkData := make([][]int, m)
	for v := 0; v < k; v++ {
		for _, c := range edges[v] {
			checkData[c] = append(checkData[c], v)
		}
	}
	return &Graph{N: n, K: k, M: m, dataChecks: edges, checkData: checkData}
}

// selectCheck picks the next check for variable v, excluding checks v
// is already connected to, per the Progressive Edge Growth rule: BFS
// from v; checks unreachable get priority (maximizing girth), tied by
// minimum degree; if all candidate checks are reachable, pick the
// minimum-degree check among those at maximum BFS depth. Ties are
// broken by rng.Next32() mod |candidates|.
func (b *pegBuilder) selectCheck(v int) int {
	b.generation++
	gen := b.generation

	excluded := make(map[int]bool, len(b.varChecks[v]))
	for _, c := range b.varChecks[v] {
		excluded[c] = true
	}

	// BFS layers alternate variable -> check -> variable. depth of a
	// check equals (layer index)*2 - 1 when reached from v's
	// perspective (v itself is depth 0).
	b.varGen[v] = gen
	varFrontier := []int{v}
	reachedDepth := make(map[int]int) // check -> BFS depth reached.
	depth := 0
	for len(varFrontier) > 0 {
		depth++
		var checkFrontier []int
		for _, vv := range varFrontier {
			for _, c := range b.varChecks[vv] {
				if b.checkGen[c] == gen {
					continue
				}
				b.checkGen[c] = gen
				reachedDepth[c] = depth
				checkFrontier = append(checkFrontier, c)
			}
		}
		if len(checkFrontier) == 0 {
			break
		}
		depth++
		var nextVars []int
		for _, c := range checkFrontier {
			for _, vv := range b.checkVars[c] {
				if b.varGen[vv] == gen {
					continue
				}
				b.varGen[vv] = gen
				nextVars = append(nextVars, vv)
			}
		}
		varFrontier = nextVars
	}

	var unreached []int
	for c := 0; c < b.m; c++ {
		if excluded[c] {
			continue
		}
		if _, ok := reachedDepth[c]; !ok {
			unreached = append(unreached, c)
		}
	}

	if len(unreached) > 0 {
		return b.pickMinDegree(unreached)
	}

	// All candidate checks reached: pick among those at maximum depth.
	maxDepth := -1
	for c, d := range reachedDepth {
		if excluded[c] {
			continue
		}
		if d > maxDepth {
			maxDepth = d
		}
	}
	var atMax []int
	for c, d := range reachedDepth {
		if excluded[c] {
			continue
		}
		if d == maxDepth {
			atMax = append(atMax, c)
		}
	}
	return b.pickMinDegree(atMax)
}

// pickMinDegree returns the minimum-degree check among candidates,
// breaking ties deterministically with the builder's RNG.
func (b *pegBuilder) pickMinDegree(candidates []int) int {
	minDeg := -1
	var best []int
	// Iterate in ascending index order for determinism before the RNG
	// tie-break is applied.
	sorted := append([]int(nil), candidates...)
	insertionSortInts(sorted)
	for _, c := range sorted {
		d := b.checkDegree[c]
		switch {
		case minDeg == -1 || d < minDeg:
			minDeg = d
			best = []int{c}
		case d == minDeg:
			best = append(best, c)
		}
	}
	if len(best) == 1 {
		return best[0]
	}
	idx := b.rng.NextU32Mod(uint32(len(best)))
	return best[idx]
}

// insertionSortInts sorts small slices without pulling in sort's
// interface overhead on a hot path called K*3 times per graph.
func insertionSortInts(s []int) {
	for i := 1; i < len(s); i++ {
		v := s[i]
		j := i - 1
		for j >= 0 && s[j] > v {
			s[j+1] = s[j]
			j--
		}
		s[j+1] = v
	}
}
