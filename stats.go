package pace

import "time"

// ItemStats is the per-item memory and speed record. One exists per item
// identifier (an opaque string chosen by the caller); it is created on the
// first response and updated on every response after that.
type ItemStats struct {
	// RecentTimes holds the most recent correct-answer latencies in
	// milliseconds, oldest first, bounded by Config.MaxStoredTimes.
	RecentTimes []float64 `json:"recent_times"`

	// Ewma is the exponentially smoothed latency in milliseconds.
	Ewma float64 `json:"ewma"`

	// SampleCount is the number of correct answers contributing to Ewma.
	SampleCount int `json:"sample_count"`

	// LastSeen is the wall-clock time of the most recent response,
	// correct or not.
	LastSeen time.Time `json:"last_seen"`

	// Stability is the half-life in hours: the elapsed time at which
	// recall probability decays to 50%. nil before the first correct
	// answer.
	Stability *float64 `json:"stability"`

	// LastCorrectAt is the wall-clock time of the most recent correct
	// answer. nil iff the item has never been answered correctly.
	LastCorrectAt *time.Time `json:"last_correct_at"`
}

// clone returns a deep copy of the stats. Pointer fields and the times
// slice are copied by value.
func (s ItemStats) clone() ItemStats {
	out := s
	if s.RecentTimes != nil {
		out.RecentTimes = append([]float64(nil), s.RecentTimes...)
	}
	if s.Stability != nil {
		v := *s.Stability
		out.Stability = &v
	}
	if s.LastCorrectAt != nil {
		v := *s.LastCorrectAt
		out.LastCorrectAt = &v
	}
	return out
}

func (s *ItemStats) setStability(v float64) {
	s.Stability = &v
}

func (s *ItemStats) setLastCorrectAt(t time.Time) {
	s.LastCorrectAt = &t
}
