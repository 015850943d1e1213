package debruijn

import (
	"testing"

	"asmgraph/internal/sequence"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func edge(s string) EdgeData {
	return NewEdgeData(sequence.MustNew(s))
}

func TestDataMaster_SplitMergeInverse(t *testing.T) {
	m := NewDataMaster(3)
	e := edge("ACGTTGCAAGGCTA")

	for p := int(m.K()) + 1; p < e.Size()-int(m.K()); p++ {
		v, left, right, err := m.Split(e, p, false)
		require.NoError(t, err, "position %d", p)

		assert.Equal(t, uint32(3), v.Overlap())
		assert.Equal(t, e.Nucls().Subseq(0, p+3).String(), left.Nucls().String())
		assert.Equal(t, e.Nucls().Suffix(p).String(), right.Nucls().String())

		merged, err := m.Merge([]EdgeData{left, right}, []uint32{m.K()}, true)
		require.NoError(t, err)
		assert.Equal(t, e.Nucls().String(), merged.Nucls().String(), "position %d", p)
	}
}

func TestDataMaster_SplitPreconditions(t *testing.T) {
	m := NewDataMaster(4)
	e := edge("ACGTTGCA")

	for _, p := range []int{0, -1, 8, 9, 5} {
		_, _, _, err := m.Split(e, p, false)
		assert.ErrorIs(t, err, ErrPrecondition, "position %d", p)
	}

	t.Run("Self-conjugate shortens the right edge", func(t *testing.T) {
		m := NewDataMaster(2)
		pal := edge("ACGGCCGT")
		require.True(t, m.IsSelfConjugate(pal))

		_, left, right, err := m.Split(pal, 3, true)
		require.NoError(t, err)
		assert.Equal(t, "ACGGC", left.Nucls().String())
		assert.Equal(t, "GC", right.Nucls().String())

		_, _, _, err = m.Split(pal, 5, true)
		assert.ErrorIs(t, err, ErrPrecondition)
	})
}

func TestDataMaster_MergeDetectsMismatch(t *testing.T) {
	m := NewDataMaster(3)
	a, b := edge("ACGTAC"), edge("GGATT")

	_, err := m.Merge([]EdgeData{a, b}, []uint32{3}, true)
	assert.ErrorIs(t, err, ErrOverlapMismatch)

	merged, err := m.Merge([]EdgeData{a, b}, []uint32{3}, false)
	require.NoError(t, err)
	assert.Equal(t, "ACGTACTT", merged.Nucls().String())
	assert.Zero(t, merged.RawCoverage())
}

func TestDataMaster_Conjugate(t *testing.T) {
	m := NewDataMaster(3)
	e := edge("AACGTTGA")
	e.SetRawCoverage(12)

	c := m.ConjugateEdge(e)
	assert.Equal(t, "TCAACGTT", c.Nucls().String())
	assert.Zero(t, c.RawCoverage())
	assert.Equal(t, e.Nucls().String(), m.ConjugateEdge(c).Nucls().String())
	assert.False(t, m.IsSelfConjugate(e))

	v := NewSimpleVertex(3)
	assert.Equal(t, v, m.ConjugateVertex(v))
}

func TestDataMaster_GlueAndLengths(t *testing.T) {
	m := NewDataMaster(3)
	target, source := edge("ACGTA"), edge("TTTTTTT")
	source.SetRawCoverage(5)

	glued := m.Glue(target, source)
	assert.Equal(t, source, glued)

	assert.Equal(t, 4, m.EdgeLength(source))
	assert.Equal(t, 3, m.VertexLength(NewSimpleVertex(3)))
	assert.Panics(t, func() { m.VertexLength(NewComplexVertex(NewLinkStore())) })

	m.SetK(5)
	assert.Equal(t, 2, m.EdgeLength(source))
}
