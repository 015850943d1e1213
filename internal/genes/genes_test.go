package genes

import (
	"io"
	"log/slog"
	"testing"

	"asmgraph/internal/path"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnionFind(t *testing.T) {
	uf := NewUnionFind(5)

	t.Run("Singletons", func(t *testing.T) {
		for i := 0; i < uf.Len(); i++ {
			assert.Equal(t, i, uf.Find(i))
		}
	})

	t.Run("Tie bumps the surviving root", func(t *testing.T) {
		uf.Union(1, 2)
		assert.Equal(t, 1, uf.Find(2))
		assert.Equal(t, 1, uf.Rank(1))
		assert.Equal(t, 0, uf.Rank(2))
	})

	t.Run("Lower rank goes under higher rank", func(t *testing.T) {
		uf.Union(3, 1)
		assert.Equal(t, 1, uf.Find(3))
		assert.Equal(t, 1, uf.Rank(1))
	})

	t.Run("Path compression", func(t *testing.T) {
		c := NewUnionFind(4)
		c.Union(0, 1)
		c.Union(2, 3)
		c.Union(0, 2)
		assert.Equal(t, 2, c.parent[3])
		assert.Equal(t, 0, c.Find(3))
		assert.Equal(t, 0, c.parent[3])
	})

	t.Run("MakeSet grows the forest", func(t *testing.T) {
		uf.MakeSet(7)
		assert.Equal(t, 8, uf.Len())
		assert.Equal(t, 7, uf.Find(7))
		assert.Equal(t, 6, uf.Find(6))
	})
}

type lengths map[path.EdgeID]int

func (l lengths) Length(e path.EdgeID) int {
	return l[e]
}

func transcripts() (*path.Container, lengths) {
	g := lengths{0: 500, 1: 500, 2: 1000, 3: 1000, 4: 100, 5: 100, 6: 1000, 7: 1000, 8: 50, 9: 50}
	c := path.NewContainer()
	c.AddPair(path.New(0, 2), path.New(3, 1))
	c.AddPair(path.New(2, 4), path.New(5, 3))
	c.AddPair(path.New(6), path.New(7))
	c.AddPair(path.New(4, 8), path.New(9, 5))
	c.AddPair(path.New(7), path.New(6))
	return c, g
}

func TestJoiner(t *testing.T) {
	c, g := transcripts()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("Paths sharing a long edge form a gene", func(t *testing.T) {
		j := NewJoiner(300, logger)
		j.Construct(c, g)

		assert.Equal(t, []int{0, 0, 2, 3, 2}, j.Genes())
		assert.Equal(t, j.GeneOf(0), j.GeneOf(1))
		assert.NotEqual(t, j.GeneOf(1), j.GeneOf(3), "short shared edge must not join")

		id, ok := j.PathID(c.At(4).Conjugate)
		require.True(t, ok)
		assert.Equal(t, 4, id)

		assert.Equal(t, []Isoform{
			{Gene: 0, Isoform: 0},
			{Gene: 0, Isoform: 1},
			{Gene: 1, Isoform: 0},
			{Gene: 2, Isoform: 0},
			{Gene: 1, Isoform: 1},
		}, j.Isoforms())
		assert.Equal(t, "_g1_i1", j.Isoforms()[4].Suffix())
	})

	t.Run("Before Construct", func(t *testing.T) {
		j := NewJoiner(300, nil)
		assert.Empty(t, j.Genes())
		assert.Empty(t, j.Isoforms())
		assert.Equal(t, -1, j.GeneOf(0))
		_, ok := j.PathID(c.At(0).Path)
		assert.False(t, ok)

		j.Construct(c, g)
		assert.Equal(t, -1, j.GeneOf(c.Len()))
	})

	t.Run("Threshold is strict", func(t *testing.T) {
		j := NewJoiner(1000, logger)
		j.Construct(c, g)
		assert.Equal(t, []int{0, 1, 2, 3, 4}, j.Genes())
	})

	t.Run("Every path has a root", func(t *testing.T) {
		j := NewJoiner(0, logger)
		j.Construct(c, g)
		genes := j.Genes()
		require.Len(t, genes, c.Len())
		for i, root := range genes {
			assert.Equal(t, root, j.GeneOf(root), "pair %d", i)
		}
		// with no threshold, edge 4 links pair 1 and 3 as well
		assert.Equal(t, j.GeneOf(0), j.GeneOf(3))
	})
}
