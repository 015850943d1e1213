package neighborhood

import "sort"

// ComponentGraph is a Topology that also knows vertex conjugates.
type ComponentGraph interface {
	Topology
	ConjugateVertex(v VertexID) VertexID
}

// Component is an induced subgraph: a vertex set and the edges with both
// endpoints inside it.
type Component struct {
	Vertices []VertexID
	Edges    []EdgeID
}

// FromVertices builds the component induced by vs. With addConjugate the
// vertex set is first closed under conjugation, so every edge in the
// result has its conjugate alongside.
func FromVertices(g ComponentGraph, vs []VertexID, addConjugate bool) Component {
	set := make(map[VertexID]struct{}, len(vs)*2)
	for _, v := range vs {
		set[v] = struct{}{}
		if addConjugate {
			set[g.ConjugateVertex(v)] = struct{}{}
		}
	}

	edges := make(map[EdgeID]struct{})
	for v := range set {
		for _, e := range g.OutgoingEdges(v) {
			if _, ok := set[g.EdgeEnd(e)]; ok {
				edges[e] = struct{}{}
			}
		}
	}
	return Component{Vertices: sortedKeys(set), Edges: sortedKeys(edges)}
}

// SingleEdge is the component made of e and its endpoints.
func SingleEdge(g ComponentGraph, e EdgeID) Component {
	return FromVertices(g, []VertexID{g.EdgeStart(e), g.EdgeEnd(e)}, true)
}

// Size counts edges up to conjugation.
func (c Component) Size() int {
	return len(c.Edges) / 2
}

func (c Component) HasEdge(e EdgeID) bool {
	i := sort.Search(len(c.Edges), func(i int) bool { return c.Edges[i] >= e })
	return i < len(c.Edges) && c.Edges[i] == e
}

type Verdict int

const (
	Accept Verdict = iota
	TooSmall
	TooLarge
)

func (v Verdict) String() string {
	switch v {
	case Accept:
		return "accept"
	case TooSmall:
		return "too_small"
	case TooLarge:
		return "too_large"
	default:
		return "unknown"
	}
}

// Classify checks a component's size against cfg.
func Classify(c Component, cfg Config) Verdict {
	switch n := c.Size(); {
	case n < cfg.MinSize:
		return TooSmall
	case n > cfg.MaxSize:
		return TooLarge
	default:
		return Accept
	}
}

// Resolve turns a neighborhood into the component to report. Components
// below MinSize collapse to the leader edge alone; ok is false when the
// component exceeds MaxSize and should be skipped.
func Resolve(g ComponentGraph, n Neighborhood, cfg Config) (Component, Verdict, bool) {
	c := FromVertices(g, n.Vertices, true)
	switch v := Classify(c, cfg); v {
	case TooSmall:
		return SingleEdge(g, n.Leader), v, true
	case TooLarge:
		return Component{}, v, false
	default:
		return c, v, true
	}
}
