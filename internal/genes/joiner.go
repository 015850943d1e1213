package genes

import (
	"fmt"
	"log/slog"
	"slices"
	"sort"

	"asmgraph/internal/path"
)

// Graph reports the logical length of an edge.
type Graph interface {
	Length(e path.EdgeID) int
}

// Joiner groups transcript paths into genes: two paths land in the same
// gene when they share an edge longer than MinEdgeLen.
type Joiner struct {
	MinEdgeLen int

	uf     *UnionFind
	ids    map[*path.Path]int
	logger *slog.Logger
}

func NewJoiner(minEdgeLen int, logger *slog.Logger) *Joiner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Joiner{
		MinEdgeLen: minEdgeLen,
		uf:         NewUnionFind(0),
		ids:        make(map[*path.Path]int),
		logger:     logger,
	}
}

// Construct assigns pair i the id i on both strands and unions paths that
// share a long edge. It can be called again to regroup another container.
func (j *Joiner) Construct(c *path.Container, g Graph) {
	j.uf = NewUnionFind(c.Len())
	j.ids = make(map[*path.Path]int, 2*c.Len())

	covering := make(map[path.EdgeID][]int)
	cover := func(p *path.Path, id int) {
		for _, e := range p.Edges() {
			// a pair counts once per edge, whichever strand or position
			if ids := covering[e]; !slices.Contains(ids, id) {
				covering[e] = append(ids, id)
			}
		}
	}
	for i, pair := range c.Pairs() {
		j.ids[pair.Path] = i
		j.ids[pair.Conjugate] = i
		cover(pair.Path, i)
		cover(pair.Conjugate, i)
	}

	edges := make([]path.EdgeID, 0, len(covering))
	for e := range covering {
		edges = append(edges, e)
	}
	sort.Slice(edges, func(a, b int) bool { return edges[a] < edges[b] })

	joined := 0
	for _, e := range edges {
		ids := covering[e]
		if g.Length(e) <= j.MinEdgeLen || len(ids) < 2 {
			continue
		}
		j.logger.Debug("long shared edge", slog.Uint64("edge", uint64(e)), slog.Int("paths", len(ids)))
		for _, next := range ids[1:] {
			if !j.uf.Same(ids[0], next) {
				joined++
			}
			j.uf.Union(ids[0], next)
		}
	}
	j.logger.Info("transcripts grouped", slog.Int("paths", c.Len()), slog.Int("unions", joined))
}

// PathID is the id Construct assigned to p (either strand).
func (j *Joiner) PathID(p *path.Path) (int, bool) {
	id, ok := j.ids[p]
	return id, ok
}

// GeneOf returns the representative of the pair's gene, or -1 for a pair
// the last Construct did not see.
func (j *Joiner) GeneOf(pair int) int {
	if pair < 0 || pair >= j.uf.Len() {
		return -1
	}
	return j.uf.Find(pair)
}

// Genes returns the gene representative of every pair, by pair index.
func (j *Joiner) Genes() []int {
	out := make([]int, j.uf.Len())
	for i := range out {
		out[i] = j.uf.Find(i)
	}
	return out
}

// Isoform identifies a transcript within its gene. Genes are numbered by
// first appearance in pair order, isoforms by order within the gene.
type Isoform struct {
	Gene    int
	Isoform int
}

func (iso Isoform) Suffix() string {
	return fmt.Sprintf("_g%d_i%d", iso.Gene, iso.Isoform)
}

// Isoforms numbers every pair as an isoform of its gene.
func (j *Joiner) Isoforms() []Isoform {
	roots := j.Genes()
	geneNum := make(map[int]int)
	counts := make(map[int]int)
	out := make([]Isoform, len(roots))
	for i, r := range roots {
		g, ok := geneNum[r]
		if !ok {
			g = len(geneNum)
			geneNum[r] = g
		}
		out[i] = Isoform{Gene: g, Isoform: counts[g]}
		counts[g]++
	}
	return out
}
