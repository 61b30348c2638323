package prober

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Candidate_String(t *testing.T) {
	assert.Equal(t, "1000", Candidate(1000).String())
	assert.Equal(t, "7", Candidate(7).String())
	assert.Equal(t, "0", Candidate(0).String())
}

func Test_CandidateRange_Validate(t *testing.T) {
	testCases := []struct {
		name            string
		candidateRange  CandidateRange
		wantErrContains string
	}{
		{
			name:            "negative lower bound",
			candidateRange:  CandidateRange{From: -1, To: 10},
			wantErrContains: "range lower bound cannot be negative, got -1",
		},
		{
			name:            "empty range",
			candidateRange:  CandidateRange{From: 1000, To: 1000},
			wantErrContains: "range upper bound 1000 must be greater than lower bound 1000",
		},
		{
			name:            "inverted range",
			candidateRange:  CandidateRange{From: 1020, To: 1000},
			wantErrContains: "range upper bound 1000 must be greater than lower bound 1020",
		},
		{
			name:           "🎉 default range",
			candidateRange: DefaultCandidateRange,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.candidateRange.Validate()
			if tc.wantErrContains != "" {
				assert.EqualError(t, err, tc.wantErrContains)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func Test_CandidateRange_All(t *testing.T) {
	t.Run("default range is strictly increasing and covers every value once", func(t *testing.T) {
		candidates := slices.Collect(DefaultCandidateRange.All())

		assert.Len(t, candidates, 20)
		assert.Equal(t, 20, DefaultCandidateRange.Len())
		assert.Equal(t, Candidate(1000), candidates[0])
		assert.Equal(t, Candidate(1019), candidates[len(candidates)-1])
		for i := 1; i < len(candidates); i++ {
			assert.Equal(t, candidates[i-1]+1, candidates[i])
		}
	})

	t.Run("stops when the consumer stops", func(t *testing.T) {
		var seen []Candidate
		for c := range DefaultCandidateRange.All() {
			seen = append(seen, c)
			if c == 1002 {
				break
			}
		}
		assert.Equal(t, []Candidate{1000, 1001, 1002}, seen)
	})

	t.Run("empty range yields nothing", func(t *testing.T) {
		r := CandidateRange{From: 5, To: 5}
		assert.Empty(t, slices.Collect(r.All()))
		assert.Equal(t, 0, r.Len())
	})
}

func Test_CandidateRange_String(t *testing.T) {
	assert.Equal(t, "[1000, 1020)", DefaultCandidateRange.String())
}
