package graph

import (
	"fmt"
	"sort"

	"asmgraph/internal/debruijn"
	"asmgraph/internal/sequence"
)

// Graph is a double-stranded assembly graph. Every vertex and edge has a
// conjugate; structural operations always rewrite both strands.
// Graph is not safe for concurrent mutation.
type Graph struct {
	master   *debruijn.DataMaster
	links    *debruijn.LinkStore
	vertices map[VertexID]*Vertex
	edges    map[EdgeID]*Edge

	nextVertex VertexID
	nextEdge   EdgeID
}

// NewGraph creates an empty graph of order k.
func NewGraph(k uint32) *Graph {
	return &Graph{
		master:   debruijn.NewDataMaster(k),
		links:    debruijn.NewLinkStore(),
		vertices: make(map[VertexID]*Vertex),
		edges:    make(map[EdgeID]*Edge),
	}
}

func (g *Graph) K() uint32 {
	return g.master.K()
}

func (g *Graph) Master() *debruijn.DataMaster {
	return g.master
}

// Links is the arena backing complex vertices of this graph.
func (g *Graph) Links() *debruijn.LinkStore {
	return g.links
}

// AddVertex adds a vertex and its conjugate, returning the first.
func (g *Graph) AddVertex(data debruijn.VertexData) VertexID {
	id := g.nextVertex
	g.nextVertex += 2
	g.insertVertexPair(id, id+1, data)
	return id
}

func (g *Graph) insertVertexPair(id, conj VertexID, data debruijn.VertexData) {
	g.vertices[id] = &Vertex{ID: id, Data: data, Conjugate: conj}
	g.vertices[conj] = &Vertex{ID: conj, Data: g.master.ConjugateVertex(data), Conjugate: id}
	if conj >= g.nextVertex {
		g.nextVertex = conj + 1
		if g.nextVertex%2 == 1 {
			g.nextVertex++
		}
	}
}

// AddEdge adds start->end with data and the reverse-complement edge
// Conjugate(end)->Conjugate(start). A palindromic edge joining a vertex to
// its own conjugate is a single self-conjugate edge.
func (g *Graph) AddEdge(start, end VertexID, data debruijn.EdgeData) (EdgeID, error) {
	sv, ok := g.vertices[start]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrVertexNotFound, start)
	}
	ev, ok := g.vertices[end]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrVertexNotFound, end)
	}

	id := g.nextEdge
	g.nextEdge += 2
	if g.master.IsSelfConjugate(data) && sv.Conjugate == end {
		g.attachEdge(&Edge{ID: id, Start: start, End: end, Data: data, Conjugate: id})
		return id, nil
	}

	conj := g.master.ConjugateEdge(data)
	conj.SetRawCoverage(data.RawCoverage())
	conj.SetFlankingCoverage(data.FlankingCoverage())
	g.attachEdge(&Edge{ID: id, Start: start, End: end, Data: data, Conjugate: id + 1})
	g.attachEdge(&Edge{ID: id + 1, Start: ev.Conjugate, End: sv.Conjugate, Data: conj, Conjugate: id})
	return id, nil
}

func (g *Graph) attachEdge(e *Edge) {
	g.edges[e.ID] = e
	v := g.vertices[e.Start]
	v.out = append(v.out, e.ID)
	if e.ID >= g.nextEdge {
		g.nextEdge = e.ID + 1
		if g.nextEdge%2 == 1 {
			g.nextEdge++
		}
	}
}

// DeleteEdge removes an edge together with its conjugate.
func (g *Graph) DeleteEdge(id EdgeID) error {
	e, ok := g.edges[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrEdgeNotFound, id)
	}
	g.detachEdge(e)
	if e.Conjugate != e.ID {
		g.detachEdge(g.edges[e.Conjugate])
	}
	return nil
}

func (g *Graph) detachEdge(e *Edge) {
	v := g.vertices[e.Start]
	for i, out := range v.out {
		if out == e.ID {
			v.out = append(v.out[:i], v.out[i+1:]...)
			break
		}
	}
	delete(g.edges, e.ID)
}

// DeleteVertex removes an isolated vertex and its conjugate, releasing
// any links a complex vertex still holds.
func (g *Graph) DeleteVertex(id VertexID) error {
	v, ok := g.vertices[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrVertexNotFound, id)
	}
	if !g.IsIsolated(id) {
		return fmt.Errorf("vertex %d still has edges", id)
	}
	if v.Data.HasComplexOverlap() {
		v.Data.ReleaseLinks(g.links)
	}
	delete(g.vertices, v.Conjugate)
	delete(g.vertices, id)
	return nil
}

func (g *Graph) IsIsolated(id VertexID) bool {
	v, ok := g.vertices[id]
	if !ok {
		return false
	}
	return len(v.out) == 0 && len(g.vertices[v.Conjugate].out) == 0
}

func (g *Graph) HasEdge(id EdgeID) bool {
	_, ok := g.edges[id]
	return ok
}

func (g *Graph) HasVertex(id VertexID) bool {
	_, ok := g.vertices[id]
	return ok
}

// Edge returns the edge record; the pointer must not be retained across mutations.
func (g *Graph) Edge(id EdgeID) (*Edge, bool) {
	e, ok := g.edges[id]
	return e, ok
}

func (g *Graph) Vertex(id VertexID) (*Vertex, bool) {
	v, ok := g.vertices[id]
	return v, ok
}

func (g *Graph) EdgeStart(id EdgeID) VertexID {
	return g.mustEdge(id).Start
}

func (g *Graph) EdgeEnd(id EdgeID) VertexID {
	return g.mustEdge(id).End
}

func (g *Graph) Conjugate(id EdgeID) EdgeID {
	return g.mustEdge(id).Conjugate
}

func (g *Graph) ConjugateVertex(id VertexID) VertexID {
	return g.mustVertex(id).Conjugate
}

func (g *Graph) EdgeNucls(id EdgeID) sequence.Sequence {
	return g.mustEdge(id).Data.Nucls()
}

// Length is the logical length of an edge.
func (g *Graph) Length(id EdgeID) int {
	return g.master.EdgeLength(g.mustEdge(id).Data)
}

// Coverage is raw coverage normalized by logical length.
func (g *Graph) Coverage(id EdgeID) float64 {
	e := g.mustEdge(id)
	l := g.master.EdgeLength(e.Data)
	if l <= 0 {
		return 0
	}
	return float64(e.Data.RawCoverage()) / float64(l)
}

// OutgoingEdges returns outgoing edge ids in ascending order.
func (g *Graph) OutgoingEdges(id VertexID) []EdgeID {
	v := g.mustVertex(id)
	out := make([]EdgeID, len(v.out))
	copy(out, v.out)
	sortIDs(out)
	return out
}

// IncomingEdges returns incoming edge ids in ascending order.
func (g *Graph) IncomingEdges(id VertexID) []EdgeID {
	conj := g.mustVertex(g.mustVertex(id).Conjugate)
	in := make([]EdgeID, 0, len(conj.out))
	for _, e := range conj.out {
		in = append(in, g.edges[e].Conjugate)
	}
	sortIDs(in)
	return in
}

func (g *Graph) OutgoingEdgeCount(id VertexID) int {
	return len(g.mustVertex(id).out)
}

func (g *Graph) IncomingEdgeCount(id VertexID) int {
	return len(g.mustVertex(g.mustVertex(id).Conjugate).out)
}

// Edges returns every edge id in ascending order.
func (g *Graph) Edges() []EdgeID {
	return sortedKeys(g.edges)
}

// Vertices returns every vertex id in ascending order.
func (g *Graph) Vertices() []VertexID {
	return sortedKeys(g.vertices)
}

func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

func (g *Graph) VertexCount() int {
	return len(g.vertices)
}

func (g *Graph) mustEdge(id EdgeID) *Edge {
	e, ok := g.edges[id]
	if !ok {
		panic(fmt.Sprintf("graph: edge %d does not exist", id))
	}
	return e
}

func (g *Graph) mustVertex(id VertexID) *Vertex {
	v, ok := g.vertices[id]
	if !ok {
		panic(fmt.Sprintf("graph: vertex %d does not exist", id))
	}
	return v
}

func sortedKeys[K ~uint64, T any](m map[K]T) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sortIDs(keys)
	return keys
}

func sortIDs[K ~uint64](ids []K) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}
