package graph

import (
	"fmt"

	"asmgraph/internal/debruijn"
)

// SplitEdge cuts an edge at position and returns the new vertex with the
// left and right parts. Raw coverage is shared in proportion to logical
// length; flanking coverage is kept on both parts.
func (g *Graph) SplitEdge(id EdgeID, position int) (VertexID, EdgeID, EdgeID, error) {
	e, ok := g.edges[id]
	if !ok {
		return 0, 0, 0, fmt.Errorf("%w: %d", ErrEdgeNotFound, id)
	}
	selfConj := e.Conjugate == e.ID

	vdata, left, right, err := g.master.Split(e.Data, position, selfConj)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("split edge %d at %d: %w", id, position, err)
	}

	total := g.master.EdgeLength(e.Data)
	leftLen := g.master.EdgeLength(left)
	raw := e.Data.RawCoverage()
	var leftCov uint32
	if total > 0 {
		leftCov = uint32(uint64(raw) * uint64(leftLen) / uint64(total))
	}
	left.SetRawCoverage(leftCov)
	right.SetRawCoverage(raw - leftCov)
	left.SetFlankingCoverage(e.Data.FlankingCoverage())
	right.SetFlankingCoverage(e.Data.FlankingCoverage())

	start, end := e.Start, e.End
	if err := g.DeleteEdge(id); err != nil {
		return 0, 0, 0, err
	}

	v := g.AddVertex(vdata)
	rightEnd := end
	if selfConj {
		rightEnd = g.vertices[v].Conjugate
	}
	l, err := g.AddEdge(start, v, left)
	if err != nil {
		return 0, 0, 0, err
	}
	r, err := g.AddEdge(v, rightEnd, right)
	if err != nil {
		return 0, 0, 0, err
	}
	return v, l, r, nil
}

// MergePath replaces a chain of adjacent edges by a single edge carrying
// the merged sequence and the summed raw coverage. Inner vertices left
// without edges are removed.
func (g *Graph) MergePath(path []EdgeID) (EdgeID, error) {
	if len(path) == 0 {
		return 0, fmt.Errorf("%w: empty path", ErrNotCompressible)
	}

	seen := make(map[EdgeID]bool, 2*len(path))
	data := make([]debruijn.EdgeData, 0, len(path))
	overlaps := make([]uint32, 0, len(path)-1)
	var raw uint64
	for i, id := range path {
		e, ok := g.edges[id]
		if !ok {
			return 0, fmt.Errorf("%w: %d", ErrEdgeNotFound, id)
		}
		if seen[id] || seen[e.Conjugate] {
			return 0, fmt.Errorf("%w: edge %d repeats on the path", ErrNotCompressible, id)
		}
		seen[id], seen[e.Conjugate] = true, true

		if i > 0 {
			prev := g.edges[path[i-1]]
			if prev.End != e.Start {
				return 0, fmt.Errorf("%w: %d -> %d", ErrDisconnected, prev.ID, id)
			}
			ov, simple := g.vertices[e.Start].Data.SimpleOverlap()
			if !simple {
				return 0, fmt.Errorf("%w: vertex %d has complex overlap", ErrNotCompressible, e.Start)
			}
			overlaps = append(overlaps, ov)
		}
		data = append(data, e.Data)
		raw += uint64(e.Data.RawCoverage())
	}

	merged, err := g.master.Merge(data, overlaps, true)
	if err != nil {
		return 0, fmt.Errorf("merge path of %d edges: %w", len(path), err)
	}
	if raw > uint64(^uint32(0)) {
		raw = uint64(^uint32(0))
	}
	merged.SetRawCoverage(uint32(raw))
	merged.SetFlankingCoverage(data[0].FlankingCoverage())

	start := g.edges[path[0]].Start
	end := g.edges[path[len(path)-1]].End
	inner := make([]VertexID, 0, len(path)-1)
	for _, id := range path[1:] {
		inner = append(inner, g.edges[id].Start)
	}
	for _, id := range path {
		if err := g.DeleteEdge(id); err != nil {
			return 0, err
		}
	}

	newID, err := g.AddEdge(start, end, merged)
	if err != nil {
		return 0, err
	}
	for _, v := range inner {
		if g.IsIsolated(v) {
			_ = g.DeleteVertex(v)
		}
	}
	return newID, nil
}

// CanCompress reports whether v is a simple pass-through junction whose
// in and out edges can be merged.
func (g *Graph) CanCompress(v VertexID) bool {
	vert, ok := g.vertices[v]
	if !ok || vert.Data.HasComplexOverlap() {
		return false
	}
	if g.OutgoingEdgeCount(v) != 1 || g.IncomingEdgeCount(v) != 1 {
		return false
	}
	out := g.OutgoingEdges(v)[0]
	in := g.IncomingEdges(v)[0]
	if in == out || in == g.Conjugate(out) {
		return false
	}
	return g.Conjugate(in) != in && g.Conjugate(out) != out
}

// CompressVertex merges the single incoming and outgoing edges of v.
func (g *Graph) CompressVertex(v VertexID) (EdgeID, error) {
	if !g.CanCompress(v) {
		return 0, fmt.Errorf("%w: vertex %d", ErrNotCompressible, v)
	}
	return g.MergePath([]EdgeID{g.IncomingEdges(v)[0], g.OutgoingEdges(v)[0]})
}

// CompressAll merges every non-branching junction and returns how many
// vertex pairs were removed.
func (g *Graph) CompressAll() (int, error) {
	merged := 0
	for {
		changed := false
		for _, v := range g.Vertices() {
			if !g.CanCompress(v) {
				continue
			}
			if _, err := g.CompressVertex(v); err != nil {
				return merged, err
			}
			merged++
			changed = true
		}
		if !changed {
			return merged, nil
		}
	}
}

// GlueEdges folds absorbed into survivor: a fresh edge between the
// survivor's endpoints takes the glued data and both coverages summed,
// and both input edges are deleted.
func (g *Graph) GlueEdges(absorbed, survivor EdgeID) (EdgeID, error) {
	a, ok := g.edges[absorbed]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrEdgeNotFound, absorbed)
	}
	s, ok := g.edges[survivor]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrEdgeNotFound, survivor)
	}
	if absorbed == survivor || a.Conjugate == survivor {
		return 0, fmt.Errorf("cannot glue edge %d onto %d", absorbed, survivor)
	}

	data := g.master.Glue(a.Data, s.Data)
	raw := uint64(a.Data.RawCoverage()) + uint64(s.Data.RawCoverage())
	if raw > uint64(^uint32(0)) {
		raw = uint64(^uint32(0))
	}
	data.SetRawCoverage(uint32(raw))

	aStart, aEnd := a.Start, a.End
	start, end := s.Start, s.End
	if err := g.DeleteEdge(absorbed); err != nil {
		return 0, err
	}
	if err := g.DeleteEdge(survivor); err != nil {
		return 0, err
	}
	id, err := g.AddEdge(start, end, data)
	if err != nil {
		return 0, err
	}
	for _, v := range []VertexID{aStart, aEnd} {
		if g.IsIsolated(v) {
			_ = g.DeleteVertex(v)
		}
	}
	return id, nil
}
