package graph

import "sort"

// Stats summarizes one strand of the graph: each conjugate pair is counted once.
type Stats struct {
	Vertices        int
	Edges           int
	SelfConjugate   int
	ComplexVertices int
	TotalLength     int
	MaxLength       int
	N50             int
}

func (g *Graph) Stats() Stats {
	var s Stats
	if g == nil {
		return s
	}

	for _, id := range g.Vertices() {
		v := g.vertices[id]
		if v.Conjugate < id {
			continue
		}
		s.Vertices++
		if v.Data.HasComplexOverlap() {
			s.ComplexVertices++
		}
	}

	var lengths []int
	for _, id := range g.Edges() {
		e := g.edges[id]
		if e.Conjugate < id {
			continue
		}
		if e.Conjugate == id {
			s.SelfConjugate++
		}
		l := g.Length(id)
		lengths = append(lengths, l)
		s.TotalLength += l
		if l > s.MaxLength {
			s.MaxLength = l
		}
	}
	s.Edges = len(lengths)
	s.N50 = n50(lengths, s.TotalLength)
	return s
}

func n50(lengths []int, total int) int {
	sort.Sort(sort.Reverse(sort.IntSlice(lengths)))
	acc := 0
	for _, l := range lengths {
		acc += l
		if 2*acc >= total {
			return l
		}
	}
	return 0
}
