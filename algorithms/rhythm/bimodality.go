package rhythm

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// BimodalityParams contains thresholds for the two-population test
type BimodalityParams struct {
	// MinSeparationRatio is the minimum slow-mean to fast-mean ratio for
	// the two populations to count as distinct oscillators
	MinSeparationRatio float64 `json:"min_separation_ratio"`

	// MinPopulationShare is the minimum fraction of intervals each
	// population must hold; guards against a handful of outliers (or the
	// coda gaps of a grouped click train) registering as a second oscillator
	MinPopulationShare float64 `json:"min_population_share"`

	// MinIntervals is the minimum number of intervals required to attempt
	// the test at all
	MinIntervals int `json:"min_intervals"`
}

// BimodalityResult contains the outcome of the interval bimodality test
type BimodalityResult struct {
	Bimodal         bool    `json:"bimodal"`
	FastMean        float64 `json:"fast_mean"`        // Mean of the shorter-interval population
	SlowMean        float64 `json:"slow_mean"`        // Mean of the longer-interval population
	SeparationRatio float64 `json:"separation_ratio"` // SlowMean / FastMean
	FastCount       int     `json:"fast_count"`
	SlowCount       int     `json:"slow_count"`
}

// Bimodality tests whether an interval population splits into two
// statistically distinct groups, the timing signature of two concurrent
// oscillators (biphonation in whale vocalization).
//
// The test sorts the intervals, splits at the largest adjacent gap, and
// flags bimodality when the two halves are well separated (slow mean at
// least MinSeparationRatio times the fast mean) and both carry at least
// MinPopulationShare of the intervals.
type Bimodality struct {
	params BimodalityParams
}

// NewBimodality creates a bimodality tester with default parameters
func NewBimodality() *Bimodality {
	return &Bimodality{
		params: BimodalityParams{
			MinSeparationRatio: 2.0,
			MinPopulationShare: 0.25,
			MinIntervals:       4,
		},
	}
}

// NewBimodalityWithParams creates a bimodality tester with custom parameters
func NewBimodalityWithParams(params BimodalityParams) *Bimodality {
	return &Bimodality{params: params}
}

// Compute runs the two-population test on the given intervals (seconds)
func (b *Bimodality) Compute(intervals []float64) *BimodalityResult {
	result := &BimodalityResult{}

	if len(intervals) < b.params.MinIntervals {
		return result
	}

	sorted := make([]float64, len(intervals))
	copy(sorted, intervals)
	sort.Float64s(sorted)

	// Split at the largest adjacent gap
	splitIdx := 0
	largestGap := 0.0
	for i := 1; i < len(sorted); i++ {
		if gap := sorted[i] - sorted[i-1]; gap > largestGap {
			largestGap = gap
			splitIdx = i
		}
	}

	if splitIdx == 0 {
		// All intervals identical
		return result
	}

	fast := sorted[:splitIdx]
	slow := sorted[splitIdx:]

	result.FastMean = stat.Mean(fast, nil)
	result.SlowMean = stat.Mean(slow, nil)
	result.FastCount = len(fast)
	result.SlowCount = len(slow)

	if result.FastMean > 0 {
		result.SeparationRatio = result.SlowMean / result.FastMean
	}

	total := float64(len(sorted))
	fastShare := float64(len(fast)) / total
	slowShare := float64(len(slow)) / total

	result.Bimodal = result.SeparationRatio >= b.params.MinSeparationRatio &&
		fastShare >= b.params.MinPopulationShare &&
		slowShare >= b.params.MinPopulationShare

	return result
}
