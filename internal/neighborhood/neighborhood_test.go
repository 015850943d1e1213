package neighborhood

import (
	"io"
	"log/slog"
	"testing"

	"asmgraph/internal/debruijn"
	"asmgraph/internal/graph"
	"asmgraph/internal/sequence"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTopology struct {
	ends   map[EdgeID][2]VertexID
	length map[EdgeID]int
}

// line builds v0 -e0-> v1 -e1-> ... -> vn with every edge of length l.
func line(n, l int) *fakeTopology {
	f := &fakeTopology{ends: map[EdgeID][2]VertexID{}, length: map[EdgeID]int{}}
	for i := 0; i < n; i++ {
		f.ends[EdgeID(i)] = [2]VertexID{VertexID(i), VertexID(i + 1)}
		f.length[EdgeID(i)] = l
	}
	return f
}

func (f *fakeTopology) EdgeStart(e EdgeID) VertexID {
	return f.ends[e][0]
}

func (f *fakeTopology) EdgeEnd(e EdgeID) VertexID {
	return f.ends[e][1]
}

func (f *fakeTopology) OutgoingEdges(v VertexID) []EdgeID {
	var out []EdgeID
	for e, ends := range f.ends {
		if ends[0] == v {
			out = append(out, e)
		}
	}
	return out
}

func (f *fakeTopology) IncomingEdges(v VertexID) []EdgeID {
	var out []EdgeID
	for e, ends := range f.ends {
		if ends[1] == v {
			out = append(out, e)
		}
	}
	return out
}

func (f *fakeTopology) Length(e EdgeID) int {
	return f.length[e]
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestForward_Budget(t *testing.T) {
	topo := line(10, 10)

	tests := []struct {
		name   string
		budget int
		want   []VertexID
	}{
		{"Zero budget reaches nothing", 0, nil},
		{"Budget below one edge still takes it", 1, []VertexID{1}},
		{"Exact multiple", 20, []VertexID{1, 2}},
		{"Partial edge rounds up", 25, []VertexID{1, 2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Forward(topo, 0, tt.budget)
			if tt.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestForward_ShortestDistanceWins(t *testing.T) {
	// 0 -> 1 -> 2 costs 2, the direct 0 -> 2 edge costs 50.
	topo := line(3, 1)
	topo.ends[10] = [2]VertexID{0, 2}
	topo.length[10] = 50

	assert.Equal(t, []VertexID{1, 2, 3}, Forward(topo, 0, 3))
}

func TestBackward_MirrorsForward(t *testing.T) {
	topo := line(6, 10)
	assert.Equal(t, []VertexID{3, 4}, Backward(topo, 5, 15))
	assert.Equal(t, Forward(Reversed(topo), 5, 15), Backward(topo, 5, 15))
	assert.Same(t, topo, Reversed(Reversed(topo)))
}

func TestSeedSet_KeepsMaximum(t *testing.T) {
	s := NewSeedSet()
	s.Observe(4, 10, 0)
	s.Observe(2, 1, 1)
	s.Observe(4, 3, 7)

	assert.Equal(t, []Seed{
		{Edge: 4, Backward: 10, Forward: 7},
		{Edge: 2, Backward: 1, Forward: 1},
	}, s.Seeds())
}

func TestExtract(t *testing.T) {
	topo := line(6, 10)
	x := NewExtractor(topo, Config{Multiplier: 1, MinSize: 2, MaxSize: 1000}, quietLogger())

	t.Run("Single seed", func(t *testing.T) {
		n := x.Around(Seed{Edge: 2, Backward: 5, Forward: 5})
		assert.Equal(t, []VertexID{1, 2, 3, 4}, n.Vertices)
		assert.True(t, n.Contains(4))
		assert.False(t, n.Contains(5))
	})

	t.Run("Multiplier scales budgets", func(t *testing.T) {
		scaled := NewExtractor(topo, Config{Multiplier: 3}, quietLogger())
		n := scaled.Around(Seed{Edge: 0, Forward: 7})
		assert.Equal(t, []VertexID{0, 1, 2, 3, 4}, n.Vertices)
	})

	t.Run("Overlapping neighborhoods merge", func(t *testing.T) {
		hoods := x.Extract([]Seed{
			{Edge: 0, Forward: 25},
			{Edge: 3},
			{Edge: 5},
		})
		require.Len(t, hoods, 2)
		assert.Equal(t, EdgeID(0), hoods[0].Leader)
		assert.Equal(t, []EdgeID{0, 3}, hoods[0].Seeds)
		assert.Equal(t, []VertexID{0, 1, 2, 3, 4}, hoods[0].Vertices)
		assert.Equal(t, EdgeID(5), hoods[1].Leader)
		assert.Equal(t, []VertexID{5, 6}, hoods[1].Vertices)
	})

	t.Run("Merging repeats until stable", func(t *testing.T) {
		// edge 5 only touches the first neighborhood after it absorbs edge 1's
		hoods := x.Extract([]Seed{
			{Edge: 0},
			{Edge: 5},
			{Edge: 1, Forward: 25},
		})
		require.Len(t, hoods, 1)
		assert.Equal(t, []EdgeID{0, 1, 5}, hoods[0].Seeds)
		assert.Equal(t, []VertexID{0, 1, 2, 3, 4, 5, 6}, hoods[0].Vertices)
	})
}

func edgeData(s string) debruijn.EdgeData {
	return debruijn.NewEdgeData(sequence.MustNew(s))
}

func TestComponent(t *testing.T) {
	g := graph.NewGraph(3)
	v0 := g.AddVertex(debruijn.NewSimpleVertex(3))
	v1 := g.AddVertex(debruijn.NewSimpleVertex(3))
	v2 := g.AddVertex(debruijn.NewSimpleVertex(3))
	e0, err := g.AddEdge(v0, v1, edgeData("ACGTA"))
	require.NoError(t, err)
	e1, err := g.AddEdge(v1, v2, edgeData("GTATT"))
	require.NoError(t, err)

	t.Run("Conjugate closure", func(t *testing.T) {
		c := FromVertices(g, []VertexID{v0, v1}, true)
		assert.Len(t, c.Vertices, 4)
		assert.Equal(t, 1, c.Size())
		assert.True(t, c.HasEdge(e0))
		assert.True(t, c.HasEdge(g.Conjugate(e0)))
		assert.False(t, c.HasEdge(e1))

		plain := FromVertices(g, []VertexID{v0, v1}, false)
		assert.Equal(t, []EdgeID{e0}, plain.Edges)
	})

	t.Run("Classify", func(t *testing.T) {
		cfg := DefaultConfig()
		full := FromVertices(g, []VertexID{v0, v1, v2}, true)
		assert.Equal(t, 2, full.Size())
		assert.Equal(t, Accept, Classify(full, cfg))
		assert.Equal(t, TooSmall, Classify(FromVertices(g, []VertexID{v0, v1}, true), cfg))
		assert.Equal(t, TooLarge, Classify(full, Config{MinSize: 0, MaxSize: 1}))
		assert.Equal(t, "too_large", TooLarge.String())
	})

	t.Run("Resolve collapses small components to the leader", func(t *testing.T) {
		x := NewExtractor(g, Config{Multiplier: 1, MinSize: 2, MaxSize: 1000}, quietLogger())
		n := x.Around(Seed{Edge: e1})
		c, verdict, ok := Resolve(g, n, DefaultConfig())
		require.True(t, ok)
		assert.Equal(t, TooSmall, verdict)
		assert.ElementsMatch(t, []EdgeID{e1, g.Conjugate(e1)}, c.Edges)

		n = x.Around(Seed{Edge: e1, Backward: 1})
		c, verdict, ok = Resolve(g, n, DefaultConfig())
		require.True(t, ok)
		assert.Equal(t, Accept, verdict)
		assert.Len(t, c.Edges, 4)

		_, verdict, ok = Resolve(g, n, Config{MaxSize: 1})
		assert.False(t, ok)
		assert.Equal(t, TooLarge, verdict)
	})
}
