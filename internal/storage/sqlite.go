package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"asmgraph/internal/debruijn"
	"asmgraph/internal/graph"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates or opens a SQLite database.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		return nil, err
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init schema: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS vertices (
			id INTEGER PRIMARY KEY,
			conjugate INTEGER,
			overlap INTEGER,
			complex INTEGER
		);`,
		`CREATE TABLE IF NOT EXISTS links (
			id INTEGER PRIMARY KEY,
			from_edge INTEGER,
			to_edge INTEGER,
			overlap INTEGER
		);`,
		`CREATE TABLE IF NOT EXISTS vertex_links (
			vertex_id INTEGER,
			position INTEGER,
			link_id INTEGER,
			PRIMARY KEY (vertex_id, position)
		);`,
		`CREATE TABLE IF NOT EXISTS edges (
			id INTEGER PRIMARY KEY,
			conjugate INTEGER,
			start_vertex INTEGER,
			end_vertex INTEGER,
			length INTEGER,
			raw_coverage INTEGER,
			flanking_coverage INTEGER,
			nucls BLOB
		);`,
		`CREATE TABLE IF NOT EXISTS contigs (
			name TEXT PRIMARY KEY,
			graph_id TEXT,
			position INTEGER,
			length INTEGER,
			coverage REAL,
			truncated INTEGER,
			gene INTEGER,
			isoform INTEGER
		);`,
		`CREATE INDEX IF NOT EXISTS idx_edges_start ON edges(start_vertex);`,
	}

	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return err
		}
	}
	return nil
}

// --- GraphStore Implementation ---

// SaveGraph replaces the stored snapshot with g and returns its new id.
func (s *SQLiteStore) SaveGraph(ctx context.Context, g *graph.Graph) (string, error) {
	snap := g.Snapshot()
	id := uuid.NewString()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	for _, table := range []string{"meta", "vertices", "links", "vertex_links", "edges", "contigs"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return "", fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	meta := map[string]string{
		"graph_id": id,
		"k":        strconv.FormatUint(uint64(snap.K), 10),
		"saved_at": time.Now().UTC().Format(time.RFC3339),
	}
	for k, v := range meta {
		if _, err := tx.ExecContext(ctx, "INSERT INTO meta (key, value) VALUES (?, ?)", k, v); err != nil {
			return "", fmt.Errorf("failed to save meta: %w", err)
		}
	}

	// 1. Links
	linkStmt, err := tx.PrepareContext(ctx, "INSERT INTO links (id, from_edge, to_edge, overlap) VALUES (?, ?, ?, ?)")
	if err != nil {
		return "", err
	}
	defer linkStmt.Close()
	for _, l := range snap.Links {
		if _, err := linkStmt.ExecContext(ctx, int64(l.ID), int64(l.From), int64(l.To), int64(l.Overlap)); err != nil {
			return "", fmt.Errorf("failed to save link %d: %w", l.ID, err)
		}
	}

	// 2. Vertices and their link lists
	vertexStmt, err := tx.PrepareContext(ctx, "INSERT INTO vertices (id, conjugate, overlap, complex) VALUES (?, ?, ?, ?)")
	if err != nil {
		return "", err
	}
	defer vertexStmt.Close()
	vlStmt, err := tx.PrepareContext(ctx, "INSERT INTO vertex_links (vertex_id, position, link_id) VALUES (?, ?, ?)")
	if err != nil {
		return "", err
	}
	defer vlStmt.Close()
	for _, v := range snap.Vertices {
		if _, err := vertexStmt.ExecContext(ctx, int64(v.ID), int64(v.Conjugate), int64(v.Overlap), v.Complex); err != nil {
			return "", fmt.Errorf("failed to save vertex %d: %w", v.ID, err)
		}
		for pos, l := range v.Links {
			if _, err := vlStmt.ExecContext(ctx, int64(v.ID), pos, int64(l)); err != nil {
				return "", fmt.Errorf("failed to save vertex link %d: %w", v.ID, err)
			}
		}
	}

	// 3. Edges, nucleotides compressed
	edgeStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO edges (id, conjugate, start_vertex, end_vertex, length, raw_coverage, flanking_coverage, nucls)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return "", err
	}
	defer edgeStmt.Close()
	for _, e := range snap.Edges {
		blob, err := compressNucls(e.Nucls)
		if err != nil {
			return "", err
		}
		if _, err := edgeStmt.ExecContext(ctx, int64(e.ID), int64(e.Conjugate), int64(e.Start), int64(e.End),
			len(e.Nucls), int64(e.RawCoverage), int64(e.FlankingCoverage), blob); err != nil {
			return "", fmt.Errorf("failed to save edge %d: %w", e.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return id, nil
}

func (s *SQLiteStore) meta(ctx context.Context, key string) (string, error) {
	var v string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM meta WHERE key = ?", key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNoSnapshot
	}
	return v, err
}

// LoadGraph rebuilds the stored snapshot.
func (s *SQLiteStore) LoadGraph(ctx context.Context) (*graph.Graph, error) {
	info, err := s.Info(ctx)
	if err != nil {
		return nil, err
	}
	snap := &graph.Snapshot{K: info.K}

	// 1. Links
	rows, err := s.db.QueryContext(ctx, "SELECT id, from_edge, to_edge, overlap FROM links ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query links: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id, from, to, overlap int64
		if err := rows.Scan(&id, &from, &to, &overlap); err != nil {
			return nil, fmt.Errorf("failed to scan link: %w", err)
		}
		snap.Links = append(snap.Links, graph.LinkRecord{
			ID:      debruijn.LinkID(id),
			From:    graph.EdgeID(from),
			To:      graph.EdgeID(to),
			Overlap: uint32(overlap),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read links: %w", err)
	}

	// 2. Vertex link lists
	vertexLinks := make(map[graph.VertexID][]debruijn.LinkID)
	vlRows, err := s.db.QueryContext(ctx, "SELECT vertex_id, link_id FROM vertex_links ORDER BY vertex_id, position")
	if err != nil {
		return nil, fmt.Errorf("failed to query vertex links: %w", err)
	}
	defer vlRows.Close()
	for vlRows.Next() {
		var vid, lid int64
		if err := vlRows.Scan(&vid, &lid); err != nil {
			return nil, fmt.Errorf("failed to scan vertex link: %w", err)
		}
		vertexLinks[graph.VertexID(vid)] = append(vertexLinks[graph.VertexID(vid)], debruijn.LinkID(lid))
	}
	if err := vlRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read vertex links: %w", err)
	}

	// 3. Vertices
	vRows, err := s.db.QueryContext(ctx, "SELECT id, conjugate, overlap, complex FROM vertices ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query vertices: %w", err)
	}
	defer vRows.Close()
	for vRows.Next() {
		var id, conj, overlap int64
		var isComplex bool
		if err := vRows.Scan(&id, &conj, &overlap, &isComplex); err != nil {
			return nil, fmt.Errorf("failed to scan vertex: %w", err)
		}
		snap.Vertices = append(snap.Vertices, graph.VertexRecord{
			ID:        graph.VertexID(id),
			Conjugate: graph.VertexID(conj),
			Overlap:   uint32(overlap),
			Complex:   isComplex,
			Links:     vertexLinks[graph.VertexID(id)],
		})
	}
	if err := vRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read vertices: %w", err)
	}

	// 4. Edges
	eRows, err := s.db.QueryContext(ctx, `
		SELECT id, conjugate, start_vertex, end_vertex, raw_coverage, flanking_coverage, nucls
		FROM edges ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query edges: %w", err)
	}
	defer eRows.Close()
	for eRows.Next() {
		var id, conj, start, end, raw, flanking int64
		var blob []byte
		if err := eRows.Scan(&id, &conj, &start, &end, &raw, &flanking, &blob); err != nil {
			return nil, fmt.Errorf("failed to scan edge: %w", err)
		}
		nucls, err := decompressNucls(blob)
		if err != nil {
			return nil, fmt.Errorf("edge %d: %w", id, err)
		}
		snap.Edges = append(snap.Edges, graph.EdgeRecord{
			ID:               graph.EdgeID(id),
			Conjugate:        graph.EdgeID(conj),
			Start:            graph.VertexID(start),
			End:              graph.VertexID(end),
			Nucls:            nucls,
			RawCoverage:      uint32(raw),
			FlankingCoverage: uint32(flanking),
		})
	}
	if err := eRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read edges: %w", err)
	}

	g, err := graph.FromSnapshot(snap)
	if err != nil {
		return nil, fmt.Errorf("failed to rebuild graph %s: %w", info.ID, err)
	}
	return g, nil
}

// Info describes the stored snapshot without loading it.
func (s *SQLiteStore) Info(ctx context.Context) (SnapshotInfo, error) {
	id, err := s.meta(ctx, "graph_id")
	if err != nil {
		return SnapshotInfo{}, err
	}
	info := SnapshotInfo{ID: id}

	kStr, err := s.meta(ctx, "k")
	if err != nil {
		return SnapshotInfo{}, err
	}
	k, err := strconv.ParseUint(kStr, 10, 32)
	if err != nil {
		return SnapshotInfo{}, fmt.Errorf("corrupt k %q: %w", kStr, err)
	}
	info.K = uint32(k)

	if saved, err := s.meta(ctx, "saved_at"); err == nil {
		info.SavedAt, _ = time.Parse(time.RFC3339, saved)
	}

	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM vertices").Scan(&info.Vertices); err != nil {
		return SnapshotInfo{}, fmt.Errorf("failed to count vertices: %w", err)
	}
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM edges").Scan(&info.Edges); err != nil {
		return SnapshotInfo{}, fmt.Errorf("failed to count edges: %w", err)
	}
	return info, nil
}

// --- ContigStore Implementation ---

// SaveContigs records contigs against the current snapshot in output order.
// Each call replaces the contigs of that snapshot.
func (s *SQLiteStore) SaveContigs(ctx context.Context, contigs []ContigRecord) error {
	graphID, err := s.meta(ctx, "graph_id")
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM contigs WHERE graph_id = ?", graphID); err != nil {
		return fmt.Errorf("failed to clear contigs: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO contigs (name, graph_id, position, length, coverage, truncated, gene, isoform)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, c := range contigs {
		if _, err := stmt.ExecContext(ctx, c.Name, graphID, i, c.Length, c.Coverage, c.Truncated, c.Gene, c.Isoform); err != nil {
			return fmt.Errorf("failed to save contig %s: %w", c.Name, err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) ListContigs(ctx context.Context) ([]ContigRecord, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT name, graph_id, length, coverage, truncated, gene, isoform FROM contigs ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("failed to query contigs: %w", err)
	}
	defer rows.Close()

	var out []ContigRecord
	for rows.Next() {
		var c ContigRecord
		if err := rows.Scan(&c.Name, &c.GraphID, &c.Length, &c.Coverage, &c.Truncated, &c.Gene, &c.Isoform); err != nil {
			return nil, fmt.Errorf("failed to scan contig: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
