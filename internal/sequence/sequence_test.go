package sequence

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("Upper-cases input", func(t *testing.T) {
		s, err := New("acgT")
		require.NoError(t, err)
		assert.Equal(t, "ACGT", s.String())
		assert.Equal(t, 4, s.Len())
	})

	t.Run("Rejects ambiguous bases", func(t *testing.T) {
		_, err := New("ACNT")
		assert.True(t, errors.Is(err, ErrInvalidNucleotide))
	})

	t.Run("Empty is valid", func(t *testing.T) {
		s, err := New("")
		require.NoError(t, err)
		assert.True(t, s.IsEmpty())
	})
}

func TestReverseComplement(t *testing.T) {
	s := MustNew("AACGTTG")
	rc := s.ReverseComplement()
	assert.Equal(t, "CAACGTT", rc.String())
	assert.True(t, rc.ReverseComplement().Equal(s))

	assert.True(t, MustNew("ACGT").IsPalindrome())
	assert.True(t, MustNew("").IsPalindrome())
	assert.False(t, MustNew("ACG").IsPalindrome())
	assert.False(t, s.IsPalindrome())
}

func TestSubseq(t *testing.T) {
	s := MustNew("ACGTACGGA")
	assert.Equal(t, "GTA", s.Subseq(2, 5).String())
	assert.Equal(t, "ACG", s.First(3).String())
	assert.Equal(t, "GGA", s.Last(3).String())
	assert.Equal(t, "CGGA", s.Suffix(5).String())
	assert.Panics(t, func() { s.Subseq(4, 20) })
	assert.Panics(t, func() { s.Subseq(5, 4) })
}

func TestMergeOverlapping(t *testing.T) {
	a := MustNew("ACGTAC")
	b := MustNew("TACGGA")
	c := MustNew("GGATT")

	t.Run("Safe merge of consistent overlaps", func(t *testing.T) {
		got, err := MergeOverlapping([]Sequence{a, b, c}, []uint32{3, 3}, true)
		require.NoError(t, err)
		assert.Equal(t, "ACGTACGGATT", got.String())
	})

	t.Run("Safe merge detects mismatch", func(t *testing.T) {
		_, err := MergeOverlapping([]Sequence{a, c}, []uint32{2}, true)
		assert.ErrorIs(t, err, ErrOverlapMismatch)
	})

	t.Run("Unsafe merge trusts overlap", func(t *testing.T) {
		got, err := MergeOverlapping([]Sequence{a, c}, []uint32{2}, false)
		require.NoError(t, err)
		assert.Equal(t, "ACGTACATT", got.String())
	})

	t.Run("Overlap count must match", func(t *testing.T) {
		_, err := MergeOverlapping([]Sequence{a, b}, []uint32{3, 3}, false)
		assert.ErrorIs(t, err, ErrPrecondition)
	})

	t.Run("Overlap longer than a neighbour", func(t *testing.T) {
		_, err := MergeOverlapping([]Sequence{a, MustNew("AC")}, []uint32{3}, false)
		assert.ErrorIs(t, err, ErrPrecondition)
	})

	t.Run("Single sequence", func(t *testing.T) {
		got, err := MergeUniform([]Sequence{a}, 3, true)
		require.NoError(t, err)
		assert.True(t, got.Equal(a))
	})
}
