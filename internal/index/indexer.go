package index

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"asmgraph/internal/debruijn"
	"asmgraph/internal/fasta"
	"asmgraph/internal/graph"
	"asmgraph/internal/sequence"
)

// Labels maps the edge labels of the input records to graph edge ids.
type Labels map[string]graph.EdgeID

// Indexer builds assembly graphs from FASTA edge records.
type Indexer struct {
	k        uint32
	compress bool
	logger   *slog.Logger
}

// NewIndexer creates an indexer for graphs of order k.
func NewIndexer(k uint32, logger *slog.Logger) *Indexer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Indexer{k: k, logger: logger}
}

// WithCompression makes the indexer merge non-branching junctions after
// loading. Labels of merged-away edges are dropped.
func (i *Indexer) WithCompression(on bool) *Indexer {
	i.compress = on
	return i
}

// BuildGraph scans a FASTA file or directory and constructs the graph.
func (i *Indexer) BuildGraph(root string) (*graph.Graph, Labels, error) {
	b := i.newBuilder()
	if err := fasta.ScanDir(root, b.add); err != nil {
		return nil, nil, fmt.Errorf("scan failed: %w", err)
	}
	return i.finish(b)
}

// Build constructs the graph from records already in memory.
func (i *Indexer) Build(records []fasta.Record) (*graph.Graph, Labels, error) {
	b := i.newBuilder()
	for _, r := range records {
		if err := b.add(r); err != nil {
			return nil, nil, err
		}
	}
	return i.finish(b)
}

func (i *Indexer) finish(b *builder) (*graph.Graph, Labels, error) {
	i.logger.Info("graph loaded",
		slog.Int("records", len(b.labels)),
		slog.Int("vertices", b.g.VertexCount()),
		slog.Int("edges", b.g.EdgeCount()))

	if i.compress {
		n, err := b.g.CompressAll()
		if err != nil {
			return nil, nil, fmt.Errorf("compression failed: %w", err)
		}
		for label, id := range b.labels {
			if !b.g.HasEdge(id) {
				delete(b.labels, label)
			}
		}
		i.logger.Info("graph compressed", slog.Int("junctions", n), slog.Int("edges", b.g.EdgeCount()))
	}
	return b.g, b.labels, nil
}

type builder struct {
	g        *graph.Graph
	k        uint32
	vertices map[string]graph.VertexID
	labels   Labels
}

func (i *Indexer) newBuilder() *builder {
	return &builder{
		g:        graph.NewGraph(i.k),
		k:        i.k,
		vertices: make(map[string]graph.VertexID),
		labels:   make(Labels),
	}
}

// vertex resolves a label, creating the vertex pair on first use. A
// trailing ' selects the conjugate.
func (b *builder) vertex(label string) graph.VertexID {
	base, conj := strings.CutSuffix(label, "'")
	id, ok := b.vertices[base]
	if !ok {
		id = b.g.AddVertex(debruijn.NewSimpleVertex(b.k))
		b.vertices[base] = id
	}
	if conj {
		return b.g.ConjugateVertex(id)
	}
	return id
}

func (b *builder) add(r fasta.Record) error {
	if _, dup := b.labels[r.ID]; dup {
		return fmt.Errorf("duplicate edge %q", r.ID)
	}
	seq, err := sequence.New(r.Seq)
	if err != nil {
		return fmt.Errorf("edge %q: %w", r.ID, err)
	}
	if seq.Len() <= int(b.k) {
		return fmt.Errorf("edge %q: length %d does not exceed k=%d", r.ID, seq.Len(), b.k)
	}

	data := debruijn.NewEdgeData(seq)
	data.SetRawCoverage(r.Coverage)
	id, err := b.g.AddEdge(b.vertex(r.Start), b.vertex(r.End), data)
	if err != nil {
		return fmt.Errorf("edge %q: %w", r.ID, err)
	}
	b.labels[r.ID] = id
	return nil
}

// SaveGraph writes a JSON snapshot of g to path.
func (i *Indexer) SaveGraph(g *graph.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create graph file: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(g.Snapshot()); err != nil {
		return fmt.Errorf("failed to encode graph: %w", err)
	}
	return nil
}

// LoadGraph reads a JSON snapshot written by SaveGraph.
func (i *Indexer) LoadGraph(path string) (*graph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open graph file: %w", err)
	}
	defer f.Close()

	var s graph.Snapshot
	if err := json.NewDecoder(f).Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to decode graph: %w", err)
	}
	return graph.FromSnapshot(&s)
}
