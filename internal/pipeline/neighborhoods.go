package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"asmgraph/internal/graph"
	"asmgraph/internal/metrics"
	"asmgraph/internal/neighborhood"
	"asmgraph/internal/render"
)

// NeighborhoodResult describes one merged neighborhood.
type NeighborhoodResult struct {
	Leader   graph.EdgeID
	Seeds    []graph.EdgeID
	Verdict  neighborhood.Verdict
	Skipped  bool
	Vertices int
	Edges    int
	DotFile  string
}

// NeighborhoodStage carves components around seed edges and optionally
// draws them.
type NeighborhoodStage struct {
	Graph   *graph.Graph
	Config  neighborhood.Config
	DrawDir string
	Logger  *slog.Logger
	Metrics *metrics.Metrics
}

func (s *NeighborhoodStage) Run(ctx context.Context, seeds []neighborhood.Seed) ([]NeighborhoodResult, error) {
	defer s.Metrics.Stage("neighborhood")()
	if s.Logger == nil {
		s.Logger = slog.Default()
	}

	for _, seed := range seeds {
		if !s.Graph.HasEdge(seed.Edge) {
			return nil, fmt.Errorf("seed: %w: %d", graph.ErrEdgeNotFound, seed.Edge)
		}
	}

	hoods := neighborhood.NewExtractor(s.Graph, s.Config, s.Logger).Extract(seeds)
	dot := render.NewDotGenerator()

	results := make([]NeighborhoodResult, 0, len(hoods))
	for i, n := range hoods {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		comp, verdict, ok := neighborhood.Resolve(s.Graph, n, s.Config)
		s.Metrics.Neighborhood(verdict.String())
		res := NeighborhoodResult{Leader: n.Leader, Seeds: n.Seeds, Verdict: verdict, Skipped: !ok}
		if !ok {
			s.Logger.Warn("neighborhood too large, skipped",
				slog.Uint64("leader", uint64(n.Leader)),
				slog.Int("vertices", len(n.Vertices)),
				slog.Int("max_size", s.Config.MaxSize))
			results = append(results, res)
			continue
		}
		res.Vertices, res.Edges = len(comp.Vertices), len(comp.Edges)

		if s.DrawDir != "" {
			file, err := dot.WriteComponent(s.DrawDir, fmt.Sprintf("neighborhood_%d", i), s.Graph, comp, n.Seeds)
			if err != nil {
				return nil, err
			}
			res.DotFile = file
		}
		results = append(results, res)
	}
	return results, nil
}
