package rhythm

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// RecoveryParams contains thresholds for the slow-down-then-settle test
type RecoveryParams struct {
	// SlowdownRatio is the maximum late-rate to early-rate ratio that
	// counts as a slow-down
	SlowdownRatio float64 `json:"slowdown_ratio"`

	// TargetHz is the center of the recovery band the late segment must
	// settle into (the grief baseline)
	TargetHz float64 `json:"target_hz"`

	// TargetToleranceHz is the half-width of the recovery band
	TargetToleranceHz float64 `json:"target_tolerance_hz"`

	// MaxSettleCV is the maximum coefficient of variation the late
	// intervals may show and still count as settled
	MaxSettleCV float64 `json:"max_settle_cv"`

	// MinIntervals is the minimum number of intervals required to attempt
	// the test
	MinIntervals int `json:"min_intervals"`
}

// RecoveryResult contains the outcome of the recovery-baseline test
type RecoveryResult struct {
	Detected    bool    `json:"detected"`
	EarlyRateHz float64 `json:"early_rate_hz"` // Local rate of the leading half
	LateRateHz  float64 `json:"late_rate_hz"`  // Local rate of the trailing half
	LateCV      float64 `json:"late_cv"`       // Dispersion of the trailing half
}

// RecoveryDetection looks for a slow-down-then-settle pattern: a trailing
// segment whose local rhythm has dropped well below the leading segment's
// and settled near the low-frequency recovery band. The pattern is the
// timing proxy for post-distress recovery in whale vocalization.
type RecoveryDetection struct {
	params RecoveryParams
}

// NewRecoveryDetection creates a recovery detector with default parameters.
// The default target band is 0.23 Hz +/- 0.12, the documented grief/recovery
// baseline.
func NewRecoveryDetection() *RecoveryDetection {
	return &RecoveryDetection{
		params: RecoveryParams{
			SlowdownRatio:     0.75,
			TargetHz:          0.23,
			TargetToleranceHz: 0.12,
			MaxSettleCV:       0.35,
			MinIntervals:      4,
		},
	}
}

// NewRecoveryDetectionWithParams creates a recovery detector with custom parameters
func NewRecoveryDetectionWithParams(params RecoveryParams) *RecoveryDetection {
	return &RecoveryDetection{params: params}
}

// Compute runs the slow-down-then-settle test on the given intervals (seconds)
func (rd *RecoveryDetection) Compute(intervals []float64) *RecoveryResult {
	result := &RecoveryResult{}

	if len(intervals) < rd.params.MinIntervals {
		return result
	}

	half := len(intervals) / 2
	early := intervals[:half]
	late := intervals[half:]

	earlyMean := stat.Mean(early, nil)
	lateMean := stat.Mean(late, nil)

	if earlyMean <= 0 || lateMean <= 0 {
		return result
	}

	result.EarlyRateHz = 1.0 / earlyMean
	result.LateRateHz = 1.0 / lateMean

	if len(late) >= 2 {
		result.LateCV = math.Sqrt(stat.Variance(late, nil)) / lateMean
	}

	slowedDown := result.LateRateHz <= rd.params.SlowdownRatio*result.EarlyRateHz
	inBand := math.Abs(result.LateRateHz-rd.params.TargetHz) <= rd.params.TargetToleranceHz
	settled := result.LateCV <= rd.params.MaxSettleCV

	result.Detected = slowedDown && inBand && settled

	return result
}
