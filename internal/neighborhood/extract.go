package neighborhood

import (
	"log/slog"
	"sort"
)

// Config controls how seed overhangs become traversal budgets and which
// components are worth keeping.
type Config struct {
	// Multiplier scales overhangs into nucleotide budgets
	// (2 for nucleotide profiles, 6 for amino-acid ones).
	Multiplier int
	MinSize    int
	MaxSize    int
}

func DefaultConfig() Config {
	return Config{
		Multiplier: 2,
		MinSize:    2,
		MaxSize:    1000,
	}
}

// Seed is an edge of interest with how far to look behind and ahead of it.
type Seed struct {
	Edge     EdgeID
	Backward int
	Forward  int
}

// SeedSet accumulates overhangs per edge, keeping the largest seen.
type SeedSet struct {
	order []EdgeID
	seeds map[EdgeID]*Seed
}

func NewSeedSet() *SeedSet {
	return &SeedSet{seeds: make(map[EdgeID]*Seed)}
}

func (s *SeedSet) Observe(e EdgeID, backward, forward int) {
	cur, ok := s.seeds[e]
	if !ok {
		cur = &Seed{Edge: e}
		s.seeds[e] = cur
		s.order = append(s.order, e)
	}
	cur.Backward = max(cur.Backward, backward)
	cur.Forward = max(cur.Forward, forward)
}

// Seeds returns the accumulated seeds in first-observed order.
func (s *SeedSet) Seeds() []Seed {
	out := make([]Seed, 0, len(s.order))
	for _, e := range s.order {
		out = append(out, *s.seeds[e])
	}
	return out
}

// Neighborhood is a set of vertices around one or more seed edges. Leader
// is the seed whose neighborhood absorbed the others.
type Neighborhood struct {
	Leader   EdgeID
	Seeds    []EdgeID
	Vertices []VertexID
}

func (n Neighborhood) Contains(v VertexID) bool {
	i := sort.Search(len(n.Vertices), func(i int) bool { return n.Vertices[i] >= v })
	return i < len(n.Vertices) && n.Vertices[i] == v
}

type Extractor struct {
	topo   Topology
	cfg    Config
	logger *slog.Logger
}

func NewExtractor(t Topology, cfg Config, logger *slog.Logger) *Extractor {
	if cfg.Multiplier <= 0 {
		cfg.Multiplier = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{topo: t, cfg: cfg, logger: logger}
}

// Around builds the neighborhood of a single seed: vertices within the
// scaled forward budget of its end, within the backward budget of its
// start, and both endpoints.
func (x *Extractor) Around(s Seed) Neighborhood {
	fwd, back := s.Forward*x.cfg.Multiplier, s.Backward*x.cfg.Multiplier
	start, end := x.topo.EdgeStart(s.Edge), x.topo.EdgeEnd(s.Edge)

	set := map[VertexID]struct{}{start: {}, end: {}}
	var fv, bv []VertexID
	if fwd > 0 {
		fv = Forward(x.topo, end, fwd)
	}
	if back > 0 {
		bv = Backward(x.topo, start, back)
	}
	for _, v := range fv {
		set[v] = struct{}{}
	}
	for _, v := range bv {
		set[v] = struct{}{}
	}
	x.logger.Debug("extracted neighborhood",
		slog.Uint64("edge", uint64(s.Edge)),
		slog.Int("backward_budget", back),
		slog.Int("forward_budget", fwd),
		slog.Int("backward_vertices", len(bv)),
		slog.Int("forward_vertices", len(fv)))

	return Neighborhood{Leader: s.Edge, Seeds: []EdgeID{s.Edge}, Vertices: sortedKeys(set)}
}

// Extract builds one neighborhood per seed and merges overlapping ones.
func (x *Extractor) Extract(seeds []Seed) []Neighborhood {
	hoods := make([]Neighborhood, 0, len(seeds))
	for _, s := range seeds {
		hoods = append(hoods, x.Around(s))
	}
	merged := Merge(x.topo, hoods)
	x.logger.Info("neighborhoods extracted", slog.Int("seeds", len(seeds)), slog.Int("unique", len(merged)))
	return merged
}

// Merge unions neighborhoods until none contains an endpoint of another's
// leader edge. Earlier neighborhoods absorb later ones.
func Merge(t Topology, hoods []Neighborhood) []Neighborhood {
	type working struct {
		Neighborhood
		set   map[VertexID]struct{}
		alive bool
	}
	ws := make([]*working, len(hoods))
	for i, h := range hoods {
		set := make(map[VertexID]struct{}, len(h.Vertices))
		for _, v := range h.Vertices {
			set[v] = struct{}{}
		}
		ws[i] = &working{Neighborhood: h, set: set, alive: true}
	}

	for changed := true; changed; {
		changed = false
		for _, w := range ws {
			if !w.alive {
				continue
			}
			for _, other := range ws {
				if other == w || !other.alive {
					continue
				}
				_, hasStart := w.set[t.EdgeStart(other.Leader)]
				_, hasEnd := w.set[t.EdgeEnd(other.Leader)]
				if !hasStart && !hasEnd {
					continue
				}
				for v := range other.set {
					w.set[v] = struct{}{}
				}
				w.Seeds = append(w.Seeds, other.Seeds...)
				other.alive = false
				changed = true
			}
		}
	}

	out := make([]Neighborhood, 0, len(ws))
	for _, w := range ws {
		if !w.alive {
			continue
		}
		out = append(out, Neighborhood{Leader: w.Leader, Seeds: w.Seeds, Vertices: sortedKeys(w.set)})
	}
	return out
}
