package debruijn

import (
	"fmt"

	"asmgraph/internal/sequence"
)

// DataMaster implements the element algebra for graphs of order k.
// Its only state is k, so it is safe for concurrent use.
type DataMaster struct {
	k uint32
}

func NewDataMaster(k uint32) *DataMaster {
	return &DataMaster{k: k}
}

func (m *DataMaster) K() uint32 {
	return m.k
}

// SetK re-keys the algebra between pipeline stages. Data derived under the
// previous k is not revalidated.
func (m *DataMaster) SetK(k uint32) {
	m.k = k
}

// Merge concatenates edge sequences using the declared junction overlaps.
// Coverage of the result is zero; the caller recomputes it.
func (m *DataMaster) Merge(edges []EdgeData, overlaps []uint32, safe bool) (EdgeData, error) {
	seqs := make([]sequence.Sequence, len(edges))
	for i, e := range edges {
		seqs[i] = e.nucls
	}
	merged, err := sequence.MergeOverlapping(seqs, overlaps, safe)
	if err != nil {
		return EdgeData{}, fmt.Errorf("merge %d edges: %w", len(edges), err)
	}
	return NewEdgeData(merged), nil
}

// Split cuts edge at position. The new vertex has overlap k, the left edge
// keeps [0, position+k) and the right edge keeps [position, end). For a
// self-conjugate edge end is shortened by position.
func (m *DataMaster) Split(edge EdgeData, position int, selfConjugate bool) (VertexData, EdgeData, EdgeData, error) {
	size := edge.nucls.Len()
	k := int(m.k)
	if position <= 0 || position >= size {
		return VertexData{}, EdgeData{}, EdgeData{}, fmt.Errorf("%w: split position %d outside (0, %d)", ErrPrecondition, position, size)
	}
	if position+k > size {
		return VertexData{}, EdgeData{}, EdgeData{}, fmt.Errorf("%w: split position %d + k %d exceeds length %d", ErrPrecondition, position, k, size)
	}

	end := size
	if selfConjugate {
		end -= position
		if position > end {
			return VertexData{}, EdgeData{}, EdgeData{}, fmt.Errorf("%w: self-conjugate split at %d past end %d", ErrPrecondition, position, end)
		}
	}

	left := NewEdgeData(edge.nucls.Subseq(0, position+k))
	right := NewEdgeData(edge.nucls.Subseq(position, end))
	return NewSimpleVertex(m.k), left, right, nil
}

// Glue resolves two equivalent edges: the survivor takes the absorbed edge's data.
func (m *DataMaster) Glue(target, source EdgeData) EdgeData {
	return source
}

func (m *DataMaster) IsSelfConjugate(edge EdgeData) bool {
	return edge.nucls.IsPalindrome()
}

// ConjugateEdge returns the reverse-complement edge with zero coverage;
// mirroring coverage onto the conjugate is up to the caller.
func (m *DataMaster) ConjugateEdge(edge EdgeData) EdgeData {
	return NewEdgeData(edge.nucls.ReverseComplement())
}

// ConjugateVertex is the identity: overlaps are strand-symmetric.
func (m *DataMaster) ConjugateVertex(v VertexData) VertexData {
	return v
}

// EdgeLength is the logical length of an edge, its size minus k.
func (m *DataMaster) EdgeLength(edge EdgeData) int {
	return edge.nucls.Len() - int(m.k)
}

// VertexLength panics for complex vertices.
func (m *DataMaster) VertexLength(v VertexData) int {
	return int(v.Overlap())
}
