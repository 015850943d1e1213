package path

import (
	"asmgraph/internal/debruijn"
	"asmgraph/internal/sequence"
)

type EdgeID = debruijn.EdgeID

// Graph is the view of the assembly graph that path algorithms need.
type Graph interface {
	K() uint32
	Length(e EdgeID) int
	EdgeNucls(e EdgeID) sequence.Sequence
	Conjugate(e EdgeID) EdgeID
}

// Gap annotates the junction in front of a path position. Gap may be
// negative for an assumed overlap; the trash counts are unreliable bases at
// the end of the previous edge and the start of the current one.
type Gap struct {
	Gap           int
	TrashPrevious uint32
	TrashCurrent  uint32
}

// Path is an ordered list of edges with a Gap per position. Position 0
// always carries the zero Gap.
type Path struct {
	edges []EdgeID
	gaps  []Gap

	InterstrandBulge bool
}

// New builds a gapless path.
func New(edges ...EdgeID) *Path {
	p := &Path{}
	for _, e := range edges {
		p.PushBack(e, Gap{})
	}
	return p
}

func (p *Path) PushBack(e EdgeID, gap Gap) {
	if len(p.edges) == 0 {
		gap = Gap{}
	}
	p.edges = append(p.edges, e)
	p.gaps = append(p.gaps, gap)
}

func (p *Path) Size() int {
	return len(p.edges)
}

func (p *Path) Empty() bool {
	return len(p.edges) == 0
}

func (p *Path) At(i int) EdgeID {
	return p.edges[i]
}

func (p *Path) Front() EdgeID {
	return p.edges[0]
}

func (p *Path) Back() EdgeID {
	return p.edges[len(p.edges)-1]
}

func (p *Path) GapAt(i int) int {
	return p.gaps[i].Gap
}

func (p *Path) GapInfoAt(i int) Gap {
	return p.gaps[i]
}

func (p *Path) TrashPreviousAt(i int) uint32 {
	return p.gaps[i].TrashPrevious
}

func (p *Path) TrashCurrentAt(i int) uint32 {
	return p.gaps[i].TrashCurrent
}

// Edges returns a copy of the edge list.
func (p *Path) Edges() []EdgeID {
	out := make([]EdgeID, len(p.edges))
	copy(out, p.edges)
	return out
}

// Length is the sum of logical edge lengths and gaps.
func (p *Path) Length(g Graph) int {
	total := 0
	for i, e := range p.edges {
		total += g.Length(e) + p.gaps[i].Gap
	}
	return total
}

// Conjugate returns the path read on the opposite strand. The gap in front
// of position i+1 moves in front of its mirror and the trash counts swap.
func (p *Path) Conjugate(g Graph) *Path {
	c := &Path{InterstrandBulge: p.InterstrandBulge}
	if p.Empty() {
		return c
	}
	c.PushBack(g.Conjugate(p.Back()), Gap{})
	for i := len(p.edges) - 2; i >= 0; i-- {
		next := p.gaps[i+1]
		c.PushBack(g.Conjugate(p.edges[i]), Gap{
			Gap:           next.Gap,
			TrashPrevious: next.TrashCurrent,
			TrashCurrent:  next.TrashPrevious,
		})
	}
	return c
}
