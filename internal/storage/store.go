package storage

import (
	"context"
	"errors"
	"time"

	"asmgraph/internal/graph"
)

// ErrNoSnapshot is returned when loading from a store that holds no graph.
var ErrNoSnapshot = errors.New("no graph snapshot stored")

// Store combines graph snapshot and contig bookkeeping.
type Store interface {
	GraphStore
	ContigStore
	Close() error
}

// GraphStore persists whole assembly graphs. Each save replaces the
// previous snapshot and gets a fresh id.
type GraphStore interface {
	SaveGraph(ctx context.Context, g *graph.Graph) (string, error)
	LoadGraph(ctx context.Context) (*graph.Graph, error)
	Info(ctx context.Context) (SnapshotInfo, error)
}

// ContigStore records the contigs written from the current snapshot.
type ContigStore interface {
	SaveContigs(ctx context.Context, contigs []ContigRecord) error
	ListContigs(ctx context.Context) ([]ContigRecord, error)
}

type SnapshotInfo struct {
	ID       string
	K        uint32
	Vertices int
	Edges    int
	SavedAt  time.Time
}

// ContigRecord describes one emitted contig.
type ContigRecord struct {
	Name      string
	GraphID   string
	Length    int
	Coverage  float64
	Truncated bool
	Gene      int
	Isoform   int
}
