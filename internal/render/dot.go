package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"asmgraph/internal/graph"
	"asmgraph/internal/neighborhood"

	"github.com/awalterschulze/gographviz"
)

// Graph is what the DOT generator needs to label a component.
type Graph interface {
	EdgeStart(e graph.EdgeID) graph.VertexID
	EdgeEnd(e graph.EdgeID) graph.VertexID
	Length(e graph.EdgeID) int
	Coverage(e graph.EdgeID) float64
}

// DotGenerator draws neighborhood components as Graphviz digraphs.
type DotGenerator struct {
	SeedColor string
	EdgeColor string
}

func NewDotGenerator() *DotGenerator {
	return &DotGenerator{SeedColor: "Red", EdgeColor: "Blue"}
}

// GenerateComponent renders c. Seed edges are drawn in SeedColor and
// thicker than the rest.
func (d *DotGenerator) GenerateComponent(name string, g Graph, c neighborhood.Component, seeds []graph.EdgeID) (string, error) {
	out := gographviz.NewGraph()
	if err := out.SetName(strconv.Quote(name)); err != nil {
		return "", err
	}
	if err := out.SetDir(true); err != nil {
		return "", err
	}
	if err := out.SetStrict(false); err != nil {
		return "", err
	}
	graphName := out.Name

	for _, v := range c.Vertices {
		attr := map[string]string{
			"shape": "circle",
			"label": strconv.Quote(strconv.FormatUint(uint64(v), 10)),
		}
		if err := out.AddNode(graphName, vertexName(v), attr); err != nil {
			return "", fmt.Errorf("failed to add vertex %d: %w", v, err)
		}
	}

	isSeed := make(map[graph.EdgeID]bool, len(seeds))
	for _, e := range seeds {
		isSeed[e] = true
	}
	for _, e := range c.Edges {
		attr := map[string]string{
			"color": d.EdgeColor,
			"label": fmt.Sprintf("\"id:%d len:%d cov:%.1f\"", e, g.Length(e), g.Coverage(e)),
		}
		if isSeed[e] {
			attr["color"] = d.SeedColor
			attr["penwidth"] = "3"
		}
		if err := out.AddEdge(vertexName(g.EdgeStart(e)), vertexName(g.EdgeEnd(e)), true, attr); err != nil {
			return "", fmt.Errorf("failed to add edge %d: %w", e, err)
		}
	}
	return out.String(), nil
}

// WriteComponent renders c into dir/<name>.dot and returns the file path.
func (d *DotGenerator) WriteComponent(dir, name string, g Graph, c neighborhood.Component, seeds []graph.EdgeID) (string, error) {
	dot, err := d.GenerateComponent(name, g, c, seeds)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}
	file := filepath.Join(dir, name+".dot")
	if err := os.WriteFile(file, []byte(dot), 0o644); err != nil {
		return "", fmt.Errorf("failed to write dot file: %w", err)
	}
	return file, nil
}

func vertexName(v graph.VertexID) string {
	return "v" + strconv.FormatUint(uint64(v), 10)
}
