package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"asmgraph/internal/debruijn"
	"asmgraph/internal/graph"
	"asmgraph/internal/sequence"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testGraph(t *testing.T) *graph.Graph {
	t.Helper()
	g := graph.NewGraph(3)
	a := g.AddVertex(debruijn.NewSimpleVertex(3))
	b := g.AddVertex(debruijn.NewSimpleVertex(3))

	l0 := g.Links().New(0, 2, 3)
	l1 := g.Links().New(0, 4, 2)
	c := g.AddVertex(debruijn.NewComplexVertex(g.Links(), l0, l1))

	ab := debruijn.NewEdgeData(sequence.MustNew("ACGTA" + strings.Repeat("C", 200)))
	ab.SetRawCoverage(40)
	ab.SetFlankingCoverage(3)
	_, err := g.AddEdge(a, b, ab)
	require.NoError(t, err)
	_, err = g.AddEdge(b, c, debruijn.NewEdgeData(sequence.MustNew("GTATT")))
	require.NoError(t, err)
	return g
}

func TestSQLiteStore_RoundTrip(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	g := testGraph(t)

	id, err := store.SaveGraph(ctx, g)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	loaded, err := store.LoadGraph(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(g.Snapshot(), loaded.Snapshot()); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, g.Stats(), loaded.Stats())

	info, err := store.Info(ctx)
	require.NoError(t, err)
	assert.Equal(t, id, info.ID)
	assert.Equal(t, uint32(3), info.K)
	assert.Equal(t, 3, info.Vertices)
	assert.Equal(t, 2, info.Edges)
	assert.False(t, info.SavedAt.IsZero())
}

func TestSQLiteStore_SaveReplacesSnapshot(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	first, err := store.SaveGraph(ctx, testGraph(t))
	require.NoError(t, err)

	empty := graph.NewGraph(5)
	second, err := store.SaveGraph(ctx, empty)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	loaded, err := store.LoadGraph(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint32(5), loaded.K())
	assert.Zero(t, loaded.EdgeCount())
	assert.Zero(t, loaded.VertexCount())
}

func TestSQLiteStore_Empty(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	_, err := store.LoadGraph(ctx)
	assert.ErrorIs(t, err, ErrNoSnapshot)

	err = store.SaveContigs(ctx, []ContigRecord{{Name: "NODE_1"}})
	assert.ErrorIs(t, err, ErrNoSnapshot)
}

func TestSQLiteStore_Contigs(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	id, err := store.SaveGraph(ctx, testGraph(t))
	require.NoError(t, err)

	require.NoError(t, store.SaveContigs(ctx, []ContigRecord{
		{Name: "NODE_1_length_100", Length: 100, Coverage: 1.5},
		{Name: "NODE_2_length_80", Length: 80, Truncated: true, Gene: 1, Isoform: 2},
	}))

	got, err := store.ListContigs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []ContigRecord{
		{Name: "NODE_1_length_100", GraphID: id, Length: 100, Coverage: 1.5},
		{Name: "NODE_2_length_80", GraphID: id, Length: 80, Truncated: true, Gene: 1, Isoform: 2},
	}, got)

	t.Run("A new run replaces the previous one", func(t *testing.T) {
		require.NoError(t, store.SaveContigs(ctx, []ContigRecord{{Name: "NODE_1_length_50", Length: 50}}))
		got, err := store.ListContigs(ctx)
		require.NoError(t, err)
		assert.Equal(t, []ContigRecord{{Name: "NODE_1_length_50", GraphID: id, Length: 50}}, got)
	})

	t.Run("Output order is kept", func(t *testing.T) {
		var batch []ContigRecord
		for n := 1; n <= 12; n++ {
			batch = append(batch, ContigRecord{Name: fmt.Sprintf("NODE_%d", n), Length: 100 - n})
		}
		require.NoError(t, store.SaveContigs(ctx, batch))
		got, err := store.ListContigs(ctx)
		require.NoError(t, err)
		require.Len(t, got, 12)
		assert.Equal(t, "NODE_2", got[1].Name)
		assert.Equal(t, "NODE_10", got[9].Name)
	})

	_, err = store.SaveGraph(ctx, testGraph(t))
	require.NoError(t, err)
	got, err = store.ListContigs(ctx)
	require.NoError(t, err)
	assert.Empty(t, got, "a new snapshot drops contigs of the old one")
}

func TestNuclsCodec(t *testing.T) {
	seq := strings.Repeat("ACGT", 1000)
	blob, err := compressNucls(seq)
	require.NoError(t, err)
	assert.Less(t, len(blob), len(seq))

	back, err := decompressNucls(blob)
	require.NoError(t, err)
	assert.Equal(t, seq, back)

	_, err = decompressNucls([]byte("not zstd"))
	assert.Error(t, err)
}
