package path

import (
	"errors"
	"fmt"
	"strings"
)

// ErrTrashExceedsEdge means a trash count leaves an edge with a negative usable length.
var ErrTrashExceedsEdge = errors.New("trash exceeds edge length")

// DefaultGapFill is written for each base of an unsequenced gap.
const DefaultGapFill = 'N'

// Contig is the literal sequence of a path. Truncated is set when an
// inconsistent trim stopped reconstruction early; Consumed is the number of
// path positions that were examined before stopping.
type Contig struct {
	Sequence  string
	Truncated bool
	Consumed  int
}

// Reconstructor turns paths into nucleotide strings. It holds no per-call
// state, so one value may serve concurrent callers.
type Reconstructor struct {
	graph   Graph
	gapFill byte
}

func NewReconstructor(g Graph) *Reconstructor {
	return &Reconstructor{graph: g, gapFill: DefaultGapFill}
}

// WithGapFill returns a copy that fills gaps with b.
func (r *Reconstructor) WithGapFill(b byte) *Reconstructor {
	c := *r
	c.gapFill = b
	return &c
}

func (r *Reconstructor) Reconstruct(p *Path) (Contig, error) {
	g := r.graph
	k := int(g.K())
	size := p.Size()

	if p.InterstrandBulge && size == 1 {
		return Contig{Sequence: g.EdgeNucls(p.Back()).Suffix(k).String(), Consumed: 1}, nil
	}

	var sb strings.Builder
	if size > 0 {
		sb.WriteString(g.EdgeNucls(p.At(0)).First(k).String())
	}

	i := 0
	for i < size {
		offset := 0
		for i < size && offset >= g.Length(p.At(i))+p.GapAt(i) {
			offset -= g.Length(p.At(i)) + p.GapAt(i)
			i++
		}
		if i == size {
			break
		}

		overlap := offset + k - p.GapAt(i)
		if overlap < 0 {
			sb.WriteString(strings.Repeat(string(r.gapFill), -overlap))
			overlap = 0
		}

		rightEnd := g.Length(p.At(i)) + k
		if i != size-1 {
			trash := int(p.TrashPreviousAt(i + 1))
			if trash > rightEnd {
				return Contig{}, fmt.Errorf("%w: position %d, trash %d, edge %d of size %d",
					ErrTrashExceedsEdge, i+1, trash, p.At(i), rightEnd)
			}
			rightEnd -= trash
		}

		if rightEnd < overlap {
			return Contig{Sequence: sb.String(), Truncated: true, Consumed: i}, nil
		}
		sb.WriteString(g.EdgeNucls(p.At(i)).Subseq(overlap, rightEnd).String())
		i++
	}
	return Contig{Sequence: sb.String(), Consumed: size}, nil
}
