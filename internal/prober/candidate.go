package prober

import (
	"fmt"
	"iter"
	"strconv"
)

// Candidate is one OTP guess.
type Candidate int

// String renders the candidate as a plain decimal, without zero padding.
func (c Candidate) String() string {
	return strconv.Itoa(int(c))
}

// CandidateRange is the half-open interval [From, To) of candidates to try.
type CandidateRange struct {
	From Candidate
	To   Candidate
}

// DefaultCandidateRange is the range scanned by the probe command.
var DefaultCandidateRange = CandidateRange{From: 1000, To: 1020}

func (r CandidateRange) Validate() error {
	if r.From < 0 {
		return fmt.Errorf("range lower bound cannot be negative, got %d", r.From)
	}
	if r.To <= r.From {
		return fmt.Errorf("range upper bound %d must be greater than lower bound %d", r.To, r.From)
	}
	return nil
}

// Len is the number of candidates in the range.
func (r CandidateRange) Len() int {
	if r.To <= r.From {
		return 0
	}
	return int(r.To - r.From)
}

// All yields every candidate in increasing order, each exactly once.
func (r CandidateRange) All() iter.Seq[Candidate] {
	return func(yield func(Candidate) bool) {
		for c := r.From; c < r.To; c++ {
			if !yield(c) {
				return
			}
		}
	}
}

func (r CandidateRange) String() string {
	return fmt.Sprintf("[%d, %d)", r.From, r.To)
}
