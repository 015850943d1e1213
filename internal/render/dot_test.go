package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"asmgraph/internal/debruijn"
	"asmgraph/internal/graph"
	"asmgraph/internal/neighborhood"
	"asmgraph/internal/sequence"

	"github.com/awalterschulze/gographviz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDotGenerator(t *testing.T) {
	g := graph.NewGraph(3)
	a := g.AddVertex(debruijn.NewSimpleVertex(3))
	b := g.AddVertex(debruijn.NewSimpleVertex(3))
	data := debruijn.NewEdgeData(sequence.MustNew("ACGTA"))
	data.SetRawCoverage(5)
	e, err := g.AddEdge(a, b, data)
	require.NoError(t, err)

	comp := neighborhood.SingleEdge(g, e)
	dot, err := NewDotGenerator().GenerateComponent("hood_0", g, comp, []graph.EdgeID{e})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(dot, "digraph"))
	assert.Contains(t, dot, fmt.Sprintf("id:%d len:2 cov:2.5", e))
	assert.Contains(t, dot, "penwidth=3")

	parsed, err := gographviz.Read([]byte(dot))
	require.NoError(t, err)
	assert.Len(t, parsed.Nodes.Nodes, 4)
	assert.Len(t, parsed.Edges.Edges, 2)

	t.Run("Write to file", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "draw")
		file, err := NewDotGenerator().WriteComponent(dir, "hood_0", g, comp, nil)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "hood_0.dot"), file)

		raw, err := os.ReadFile(file)
		require.NoError(t, err)
		assert.NotContains(t, string(raw), "penwidth")
	})
}
