package pace

import "sort"

// minCalibrationSamples is the number of reaction trials required before a
// baseline is considered meaningful.
const minCalibrationSamples = 5

// Median returns the median of values without mutating the input.
// An empty input yields 0.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

// CalibrationSet collects raw reaction-time samples for deriving a user's
// motor baseline. The median is used rather than the mean so a single
// distracted trial cannot skew the baseline.
type CalibrationSet struct {
	samples []float64
}

// Add records one reaction-time sample in milliseconds.
// Non-positive samples are discarded.
func (c *CalibrationSet) Add(ms float64) {
	if ms <= 0 {
		return
	}
	c.samples = append(c.samples, ms)
}

// Len returns the number of collected samples.
func (c *CalibrationSet) Len() int {
	return len(c.samples)
}

// Baseline returns the median reaction time. ok is false until enough
// samples have been collected.
func (c *CalibrationSet) Baseline() (float64, bool) {
	if len(c.samples) < minCalibrationSamples {
		return 0, false
	}
	return Median(c.samples), true
}
