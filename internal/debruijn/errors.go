package debruijn

import (
	"errors"

	"asmgraph/internal/sequence"
)

var (
	// ErrPrecondition marks out-of-range arguments such as an invalid split position.
	ErrPrecondition = errors.New("debruijn precondition violated")

	// ErrCoverageUnderflow is returned when a decrement would take coverage below zero.
	ErrCoverageUnderflow = errors.New("coverage underflow")

	// ErrOverlapMismatch is the data-inconsistency error of a safe merge.
	ErrOverlapMismatch = sequence.ErrOverlapMismatch
)
