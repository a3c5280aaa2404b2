package rhythm

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// CodaGroupingParams contains parameters for coda grouping
type CodaGroupingParams struct {
	// GapFactor sets the coda boundary: an interval longer than
	// GapFactor times the median interval starts a new coda
	GapFactor float64 `json:"gap_factor"`
}

// CodaGroupingResult contains the outcome of grouping clicks into codas
type CodaGroupingResult struct {
	CodaOnsets         []float64 `json:"coda_onsets"`          // First event time of each coda
	NumCodas           int       `json:"num_codas"`            // Number of detected codas
	InterCodaIntervals []float64 `json:"inter_coda_intervals"` // Spacing between coda onsets
	Grouped            bool      `json:"grouped"`              // Whether more than one coda was found
}

// CodaGrouping partitions a click sequence into codas by splitting at
// inter-click gaps that stand well clear of the typical spacing. Whale
// codas are short rhythmic bursts separated by silences several times
// longer than the within-burst click interval, so the coarser inter-coda
// rhythm is recovered by measuring spacing between burst onsets.
type CodaGrouping struct {
	params CodaGroupingParams
}

// NewCodaGrouping creates a coda grouper with default parameters
func NewCodaGrouping() *CodaGrouping {
	return &CodaGrouping{
		params: CodaGroupingParams{
			GapFactor: 3.0,
		},
	}
}

// NewCodaGroupingWithParams creates a coda grouper with custom parameters
func NewCodaGroupingWithParams(params CodaGroupingParams) *CodaGrouping {
	return &CodaGrouping{params: params}
}

// Compute groups the given strictly increasing event timestamps into codas.
// Fewer than two events yields an empty, ungrouped result.
func (cg *CodaGrouping) Compute(events []float64) *CodaGroupingResult {
	result := &CodaGroupingResult{}

	if len(events) < 2 {
		return result
	}

	intervals := make([]float64, len(events)-1)
	for i := 1; i < len(events); i++ {
		intervals[i-1] = events[i] - events[i-1]
	}

	sorted := make([]float64, len(intervals))
	copy(sorted, intervals)
	sort.Float64s(sorted)
	median := stat.Quantile(0.5, stat.Empirical, sorted, nil)

	gapThreshold := cg.params.GapFactor * median

	onsets := []float64{events[0]}
	for i, interval := range intervals {
		if interval > gapThreshold {
			onsets = append(onsets, events[i+1])
		}
	}

	result.CodaOnsets = onsets
	result.NumCodas = len(onsets)
	result.Grouped = len(onsets) > 1

	if result.Grouped {
		result.InterCodaIntervals = make([]float64, len(onsets)-1)
		for i := 1; i < len(onsets); i++ {
			result.InterCodaIntervals[i-1] = onsets[i] - onsets[i-1]
		}
	}

	return result
}
