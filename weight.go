package pace

import (
	"math"
	"time"
)

// itemWeight computes the selection weight of one item.
//
// An item with no record gets the flat UnseenBoost so the unknown is
// explored early. An item with a record weighs max(ewma, MinTime)/MinTime
// (slower items pull harder, floored at 1), multiplied by a recall weight
// in [1, 2] when the forgetting curve can be evaluated: 1 + (1 - recall),
// so due items are pulled up to twice as hard.
func itemWeight(stats *ItemStats, now time.Time, cfg Config) float64 {
	if stats == nil {
		return cfg.UnseenBoost
	}
	speedWeight := math.Max(stats.Ewma, cfg.MinTime) / cfg.MinTime
	if r, ok := recallOf(stats, now); ok {
		return speedWeight * (1 + (1 - r))
	}
	return speedWeight
}

// selectWeighted draws one item by the cumulative-subtraction method:
// r ∈ [0,1) is scaled by the total weight and each item's weight is
// subtracted until the remainder reaches zero. Zero-weight items are never
// selected. An all-zero weight vector falls back to a uniform pick.
func selectWeighted(items []string, weights []float64, r float64) string {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		idx := int(r * float64(len(items)))
		if idx >= len(items) {
			idx = len(items) - 1
		}
		return items[idx]
	}

	remaining := r * total
	last := 0
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		last = i
		remaining -= w
		if remaining <= 0 {
			return items[i]
		}
	}
	// Floating-point leftovers land on the last positive-weight item.
	return items[last]
}
