package debruijn

import (
	"fmt"
	"math"

	"asmgraph/internal/sequence"
)

// CoverageData is a non-negative read-support counter. It is not length-normalized.
type CoverageData struct {
	value uint32
}

func (c CoverageData) Value() uint32 {
	return c.value
}

func (c *CoverageData) Set(v uint32) {
	c.value = v
}

// Inc adds delta. A negative delta larger than the current value is rejected
// and leaves the counter untouched; growth saturates at math.MaxUint32.
func (c *CoverageData) Inc(delta int) error {
	if delta < 0 {
		d := uint64(-int64(delta))
		if d > uint64(c.value) {
			return fmt.Errorf("%w: %d - %d", ErrCoverageUnderflow, c.value, d)
		}
		c.value -= uint32(d)
		return nil
	}
	sum := uint64(c.value) + uint64(delta)
	if sum > math.MaxUint32 {
		sum = math.MaxUint32
	}
	c.value = uint32(sum)
	return nil
}

// EdgeData owns the full nucleotide content of an edge, k-mer overlaps included.
type EdgeData struct {
	nucls    sequence.Sequence
	raw      CoverageData
	flanking CoverageData
}

func NewEdgeData(nucls sequence.Sequence) EdgeData {
	return EdgeData{nucls: nucls}
}

func (e EdgeData) Nucls() sequence.Sequence {
	return e.nucls
}

func (e EdgeData) Size() int {
	return e.nucls.Len()
}

func (e EdgeData) RawCoverage() uint32 {
	return e.raw.Value()
}

func (e *EdgeData) SetRawCoverage(v uint32) {
	e.raw.Set(v)
}

func (e *EdgeData) IncRawCoverage(delta int) error {
	return e.raw.Inc(delta)
}

func (e EdgeData) FlankingCoverage() uint32 {
	return e.flanking.Value()
}

func (e *EdgeData) SetFlankingCoverage(v uint32) {
	e.flanking.Set(v)
}

func (e *EdgeData) IncFlankingCoverage(d int) error {
	return e.flanking.Inc(d)
}

