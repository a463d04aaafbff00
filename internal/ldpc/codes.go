/*
NAME
  codes.go

DESCRIPTION
  codes.go exposes the three fixed LDPC codes used by the codec: header
  (N=8192, K=6144), row metadata (N=256, K=224), and binary
  (N=20064, K=19840). Each graph is built once by Progressive Edge
  Growth and memoized as an immutable package-level table.

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

import "sync"

// Code parameters for the three fixed graphs.
const (
	HeaderN = 8192
	HeaderK = 6144

	RowMetaN = 256
	RowMetaK = 224

	BinaryN = 20064
	BinaryK = 19840
)

// PEG construction seeds. These are fixed so the three graphs are
// reproducible immutable tables rather than depending on process
// entropy.
const (
	headerGraphSeed  = 0x50584648 // "PXFH"
	rowMetaGraphSeed = 0x50584652 // "PXFR"
	binaryGraphSeed  = 0x50584642 // "PXFB"
)

var (
	headerGraphOnce  sync.Once
	rowMetaGraphOnce sync.Once
	binaryGraphOnce  sync.Once

	headerGraph  *Graph
	rowMetaGraph *Graph
	binaryGraph  *Graph
)

// HeaderGraph returns the fixed header LDPC graph (N=8192, K=6144).
func HeaderGraph() *Graph {
	headerGraphOnce.Do(func() {
		headerGraph = buildGraph(HeaderN, HeaderK, headerGraphSeed)
	})
	return headerGraph
}

// RowMetaGraph returns the fixed row-metadata LDPC graph (N=256, K=224).
func RowMetaGraph() *Graph {
	rowMetaGraphOnce.Do(func() {
		rowMetaGraph = buildGraph(RowMetaN, RowMetaK, rowMetaGraphSeed)
	})
	return rowMetaGraph
}

// BinaryGraph returns the fixed binary-row LDPC graph (N=20064,
// K=19840).
func BinaryGraph() *Graph {
	binaryGraphOnce.Do(func() {
		binaryGraph = buildGraph(BinaryN, BinaryK, binaryGraphSeed)
	})
	return binaryGraph
}
