package graph

import (
	"fmt"

	"asmgraph/internal/debruijn"
	"asmgraph/internal/sequence"
)

// VertexRecord describes one vertex pair.
type VertexRecord struct {
	ID        VertexID          `json:"id"`
	Conjugate VertexID          `json:"conjugate"`
	Overlap   uint32            `json:"overlap,omitempty"`
	Complex   bool              `json:"complex,omitempty"`
	Links     []debruijn.LinkID `json:"links,omitempty"`
}

// EdgeRecord describes one edge pair; the conjugate sequence is implied.
type EdgeRecord struct {
	ID               EdgeID   `json:"id"`
	Conjugate        EdgeID   `json:"conjugate"`
	Start            VertexID `json:"start"`
	End              VertexID `json:"end"`
	Nucls            string   `json:"nucls"`
	RawCoverage      uint32   `json:"raw_coverage"`
	FlankingCoverage uint32   `json:"flanking_coverage,omitempty"`
}

type LinkRecord struct {
	ID      debruijn.LinkID `json:"id"`
	From    EdgeID          `json:"from"`
	To      EdgeID          `json:"to"`
	Overlap uint32          `json:"overlap"`
}

// Snapshot is the flat, strand-reduced form of a graph used for persistence.
type Snapshot struct {
	K        uint32         `json:"k"`
	Vertices []VertexRecord `json:"vertices"`
	Edges    []EdgeRecord   `json:"edges"`
	Links    []LinkRecord   `json:"links,omitempty"`
}

// Snapshot flattens g. Records are ordered by id.
func (g *Graph) Snapshot() *Snapshot {
	s := &Snapshot{K: g.K()}
	linkSeen := make(map[debruijn.LinkID]bool)

	for _, id := range g.Vertices() {
		v := g.vertices[id]
		if v.Conjugate < id {
			continue
		}
		rec := VertexRecord{ID: id, Conjugate: v.Conjugate}
		if ov, ok := v.Data.SimpleOverlap(); ok {
			rec.Overlap = ov
		} else {
			rec.Complex = true
			rec.Links = v.Data.Links()
			for _, l := range rec.Links {
				if linkSeen[l] {
					continue
				}
				linkSeen[l] = true
				link := g.links.Get(l)
				s.Links = append(s.Links, LinkRecord{ID: l, From: link.Edges[0], To: link.Edges[1], Overlap: link.Overlap})
			}
		}
		s.Vertices = append(s.Vertices, rec)
	}

	for _, id := range g.Edges() {
		e := g.edges[id]
		if e.Conjugate < id {
			continue
		}
		s.Edges = append(s.Edges, EdgeRecord{
			ID:               id,
			Conjugate:        e.Conjugate,
			Start:            e.Start,
			End:              e.End,
			Nucls:            e.Data.Nucls().String(),
			RawCoverage:      e.Data.RawCoverage(),
			FlankingCoverage: e.Data.FlankingCoverage(),
		})
	}
	return s
}

// FromSnapshot rebuilds a graph, keeping the recorded ids.
func FromSnapshot(s *Snapshot) (*Graph, error) {
	g := NewGraph(s.K)

	linkIDs := make(map[debruijn.LinkID]debruijn.LinkID, len(s.Links))
	for _, l := range s.Links {
		linkIDs[l.ID] = g.links.New(l.From, l.To, l.Overlap)
	}

	for _, rec := range s.Vertices {
		if _, dup := g.vertices[rec.ID]; dup {
			return nil, fmt.Errorf("duplicate vertex %d", rec.ID)
		}
		data := debruijn.NewSimpleVertex(rec.Overlap)
		if rec.Complex {
			ids := make([]debruijn.LinkID, 0, len(rec.Links))
			for _, l := range rec.Links {
				mapped, ok := linkIDs[l]
				if !ok {
					return nil, fmt.Errorf("vertex %d references unknown link %d", rec.ID, l)
				}
				ids = append(ids, mapped)
			}
			data = debruijn.NewComplexVertex(g.links, ids...)
		}
		g.insertVertexPair(rec.ID, rec.Conjugate, data)
	}

	for _, rec := range s.Edges {
		start, ok := g.vertices[rec.Start]
		if !ok {
			return nil, fmt.Errorf("edge %d: %w: %d", rec.ID, ErrVertexNotFound, rec.Start)
		}
		end, ok := g.vertices[rec.End]
		if !ok {
			return nil, fmt.Errorf("edge %d: %w: %d", rec.ID, ErrVertexNotFound, rec.End)
		}
		nucls, err := sequence.New(rec.Nucls)
		if err != nil {
			return nil, fmt.Errorf("edge %d: %w", rec.ID, err)
		}
		data := debruijn.NewEdgeData(nucls)
		data.SetRawCoverage(rec.RawCoverage)
		data.SetFlankingCoverage(rec.FlankingCoverage)

		g.attachEdge(&Edge{ID: rec.ID, Start: rec.Start, End: rec.End, Data: data, Conjugate: rec.Conjugate})
		if rec.Conjugate == rec.ID {
			continue
		}
		conj := g.master.ConjugateEdge(data)
		conj.SetRawCoverage(rec.RawCoverage)
		conj.SetFlankingCoverage(rec.FlankingCoverage)
		g.attachEdge(&Edge{ID: rec.Conjugate, Start: end.Conjugate, End: start.Conjugate, Data: conj, Conjugate: rec.ID})
	}
	return g, nil
}
