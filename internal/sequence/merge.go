package sequence

import (
	"fmt"
	"strings"
)

// MergeOverlapping concatenates seqs, dropping overlaps[i] leading bases of
// seqs[i+1]. In safe mode the dropped prefix must equal the suffix of seqs[i].
func MergeOverlapping(seqs []Sequence, overlaps []uint32, safe bool) (Sequence, error) {
	if len(seqs) == 0 {
		return Sequence{}, fmt.Errorf("%w: nothing to merge", ErrPrecondition)
	}
	if len(overlaps) != len(seqs)-1 {
		return Sequence{}, fmt.Errorf("%w: %d sequences need %d overlaps, got %d",
			ErrPrecondition, len(seqs), len(seqs)-1, len(overlaps))
	}

	size := seqs[0].Len()
	for i, ov := range overlaps {
		prev, next := seqs[i], seqs[i+1]
		o := int(ov)
		if o > prev.Len() || o > next.Len() {
			return Sequence{}, fmt.Errorf("%w: overlap %d at junction %d exceeds lengths %d/%d",
				ErrPrecondition, o, i, prev.Len(), next.Len())
		}
		if safe && prev.data[prev.Len()-o:] != next.data[:o] {
			return Sequence{}, fmt.Errorf("%w: junction %d, suffix %q vs prefix %q",
				ErrOverlapMismatch, i, prev.data[prev.Len()-o:], next.data[:o])
		}
		size += next.Len() - o
	}

	var sb strings.Builder
	sb.Grow(size)
	sb.WriteString(seqs[0].data)
	for i, ov := range overlaps {
		sb.WriteString(seqs[i+1].data[ov:])
	}
	return Sequence{data: sb.String()}, nil
}

// MergeUniform merges seqs sharing the same overlap at every junction.
func MergeUniform(seqs []Sequence, overlap uint32, safe bool) (Sequence, error) {
	if len(seqs) == 0 {
		return MergeOverlapping(seqs, nil, safe)
	}
	overlaps := make([]uint32, len(seqs)-1)
	for i := range overlaps {
		overlaps[i] = overlap
	}
	return MergeOverlapping(seqs, overlaps, safe)
}
