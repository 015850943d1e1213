package sequence

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidNucleotide is returned when input contains a symbol outside ACGT.
	ErrInvalidNucleotide = errors.New("invalid nucleotide")
	// ErrPrecondition marks malformed arguments to sequence operations.
	ErrPrecondition = errors.New("sequence precondition violated")
	// ErrOverlapMismatch is a data inconsistency: declared overlaps do not agree byte for byte.
	ErrOverlapMismatch = errors.New("overlap mismatch")
)

var complement = [256]byte{
	'A': 'T', 'C': 'G', 'G': 'C', 'T': 'A',
	'a': 't', 'c': 'g', 'g': 'c', 't': 'a',
}

// Sequence is an immutable nucleotide string over ACGT.
// The zero value is the empty sequence.
type Sequence struct {
	data string
}

// New validates s and returns it as an upper-case Sequence.
func New(s string) (Sequence, error) {
	up := strings.ToUpper(s)
	for i := 0; i < len(up); i++ {
		switch up[i] {
		case 'A', 'C', 'G', 'T':
		default:
			return Sequence{}, fmt.Errorf("%w: %q at position %d", ErrInvalidNucleotide, up[i], i)
		}
	}
	return Sequence{data: up}, nil
}

// MustNew is New for literals known to be valid.
func MustNew(s string) Sequence {
	seq, err := New(s)
	if err != nil {
		panic(err)
	}
	return seq
}

func (s Sequence) Len() int {
	return len(s.data)
}

func (s Sequence) IsEmpty() bool {
	return len(s.data) == 0
}

func (s Sequence) String() string {
	return s.data
}

func (s Sequence) At(i int) byte {
	return s.data[i]
}

func (s Sequence) Bytes() []byte {
	return []byte(s.data)
}

func (s Sequence) Equal(o Sequence) bool {
	return s.data == o.data
}

// Subseq returns the half-open range [from, to). Out-of-range bounds panic.
func (s Sequence) Subseq(from, to int) Sequence {
	if from < 0 || to > len(s.data) || from > to {
		panic(fmt.Sprintf("sequence: subseq [%d, %d) out of range for length %d", from, to, len(s.data)))
	}
	return Sequence{data: s.data[from:to]}
}

// Suffix returns the sequence from position from to the end.
func (s Sequence) Suffix(from int) Sequence {
	return s.Subseq(from, len(s.data))
}

// First returns the leading n bases.
func (s Sequence) First(n int) Sequence {
	return s.Subseq(0, n)
}

// Last returns the trailing n bases.
func (s Sequence) Last(n int) Sequence {
	return s.Subseq(len(s.data)-n, len(s.data))
}

// ReverseComplement returns the sequence of the opposite strand.
func (s Sequence) ReverseComplement() Sequence {
	n := len(s.data)
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[n-1-i] = complement[s.data[i]]
	}
	return Sequence{data: string(out)}
}

// IsPalindrome reports whether s equals its own reverse complement.
func (s Sequence) IsPalindrome() bool {
	n := len(s.data)
	for i := 0; i < n/2+n%2; i++ {
		if s.data[i] != complement[s.data[n-1-i]] {
			return false
		}
	}
	return true
}
