package pace

import (
	"math"
	"time"
)

// NextEwma applies standard exponential smoothing:
// alpha*sample + (1-alpha)*old.
func NextEwma(old, sample, alpha float64) float64 {
	return alpha*sample + (1-alpha)*old
}

// SpeedScore maps a smoothed latency to [0, 1]:
//
//	score = exp(-k * max(0, ewma - minN))   k = ln2 / (targetN - minN)
//
// where minN and targetN are MinTime and AutomaticityTarget scaled by the
// item's response count. The score is 1.0 at minN, 0.5 at targetN, and
// approaches 0 for very slow responses. Scaling by responseCount keeps the
// score identical for an n-input item answered in n times the latency of a
// one-input item.
func SpeedScore(ewmaMs float64, cfg Config, responseCount int) float64 {
	if responseCount < 1 {
		responseCount = 1
	}
	n := float64(responseCount)
	minN := cfg.MinTime * n
	targetN := cfg.AutomaticityTarget * n
	k := math.Ln2 / (targetN - minN)
	return math.Exp(-k * math.Max(0, ewmaMs-minN))
}

// Automaticity combines recall probability and speed score into a single
// "known without thinking" score.
func Automaticity(recall, speed float64) float64 {
	return recall * speed
}

// recallOf derives the current recall probability from a stored record.
// ok is false when the record cannot be scored: no record, no stability,
// or no correct answer to measure elapsed time from.
func recallOf(stats *ItemStats, now time.Time) (float64, bool) {
	if stats == nil || stats.Stability == nil || stats.LastCorrectAt == nil {
		return 0, false
	}
	elapsed := now.Sub(*stats.LastCorrectAt).Hours()
	return Recall(*stats.Stability, elapsed), true
}

// speedOf derives the current speed score from a stored record. ok is false
// when no correct answer has contributed to the EWMA yet.
func speedOf(stats *ItemStats, cfg Config, responseCount int) (float64, bool) {
	if stats == nil || stats.SampleCount == 0 {
		return 0, false
	}
	return SpeedScore(stats.Ewma, cfg, responseCount), true
}
