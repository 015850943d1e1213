package graph

import (
	"errors"

	"asmgraph/internal/debruijn"
)

type (
	EdgeID   = debruijn.EdgeID
	VertexID = debruijn.VertexID
)

var (
	ErrEdgeNotFound    = errors.New("edge not found")
	ErrVertexNotFound  = errors.New("vertex not found")
	ErrNotCompressible = errors.New("not compressible")
	ErrDisconnected    = errors.New("edges are not adjacent")
)

// Vertex is a junction of the assembly graph. Only outgoing edges are
// stored; incoming edges are the conjugates of the conjugate's outgoing ones.
type Vertex struct {
	ID        VertexID
	Data      debruijn.VertexData
	Conjugate VertexID
	out       []EdgeID
}

// Edge is a directed sequence-carrying edge. A self-conjugate edge is its own Conjugate.
type Edge struct {
	ID        EdgeID
	Start     VertexID
	End       VertexID
	Data      debruijn.EdgeData
	Conjugate EdgeID
}
