package pace

import (
	"testing"
	"time"
)

func TestEvaluatorsEmptySetIsFalse(t *testing.T) {
	// Vacuous truth is rejected: "nothing to master" is not "mastered".
	sel, _ := newTestSelector(t, SelectorConfig{})
	if got, _ := sel.AllMastered(nil); got {
		t.Error("AllMastered([]) = true, want false")
	}
	if got, _ := sel.AllAutomatic(nil); got {
		t.Error("AllAutomatic([]) = true, want false")
	}
	if got, _ := sel.NeedsReview(nil); got {
		t.Error("NeedsReview([]) = true, want false")
	}
}

func TestAllMastered(t *testing.T) {
	sel, clock := newTestSelector(t, SelectorConfig{})
	items := []string{"a", "b"}

	mustRecord(t, sel, "a", 1200, true)
	if got, _ := sel.AllMastered(items); got {
		t.Error("AllMastered with an unseen item should be false")
	}

	mustRecord(t, sel, "b", 1200, true)
	if got, _ := sel.AllMastered(items); !got {
		t.Error("AllMastered right after correct answers should be true")
	}

	// After a half-life, recall 0.5 < threshold 0.9.
	clock.Advance(time.Hour)
	if got, _ := sel.AllMastered(items); got {
		t.Error("AllMastered after recall decayed should be false")
	}
}

func TestAllMasteredRejectsUnscoreable(t *testing.T) {
	sel, _ := newTestSelector(t, SelectorConfig{})
	mustRecord(t, sel, "a", 4000, false) // seen, never correct
	if got, _ := sel.AllMastered([]string{"a"}); got {
		t.Error("AllMastered with a never-correct item should be false")
	}
}

func TestAllAutomaticScenario(t *testing.T) {
	// Default config, one item answered correctly at 1200ms: recall ≈ 1,
	// speed ≈ 0.93 > 0.8 threshold, so the set is automatic immediately.
	sel, clock := newTestSelector(t, SelectorConfig{})
	mustRecord(t, sel, "n", 1200, true)

	if got, _ := sel.AllAutomatic([]string{"n"}); !got {
		t.Error("AllAutomatic immediately after a fast answer should be true")
	}

	// Enough elapsed time drops recall below threshold and automaticity
	// below the bar.
	clock.Advance(20 * time.Hour)
	if got, _ := sel.AllAutomatic([]string{"n"}); got {
		t.Error("AllAutomatic after decay should be false")
	}
}

func TestAllAutomaticRequiresAttempt(t *testing.T) {
	sel, _ := newTestSelector(t, SelectorConfig{})
	mustRecord(t, sel, "a", 1200, true)
	if got, _ := sel.AllAutomatic([]string{"a", "never"}); got {
		t.Error("AllAutomatic with an unattempted item should be false")
	}
}

func TestNeedsReviewScenario(t *testing.T) {
	sel, clock := newTestSelector(t, SelectorConfig{})

	// Two fast correct answers: the item was known at target speed.
	mustRecord(t, sel, "n", 1200, true)
	clock.Advance(time.Minute)
	mustRecord(t, sel, "n", 1200, true)

	// Still fresh: nothing has been forgotten yet.
	if got, _ := sel.NeedsReview([]string{"n"}); got {
		t.Error("NeedsReview while recall is high should be false")
	}

	// Once recall decays below threshold, the set flips to needs-review
	// while AllAutomatic goes false.
	clock.Advance(40 * time.Hour)
	if got, _ := sel.NeedsReview([]string{"n"}); !got {
		t.Error("NeedsReview after decay of a previously-fast item should be true")
	}
	if got, _ := sel.AllAutomatic([]string{"n"}); got {
		t.Error("AllAutomatic after decay should be false")
	}
}

func TestNeedsReviewRequiresHistory(t *testing.T) {
	sel, clock := newTestSelector(t, SelectorConfig{})

	// Only one correct observation: still learning, not review material.
	mustRecord(t, sel, "a", 1200, true)
	clock.Advance(40 * time.Hour)
	if got, _ := sel.NeedsReview([]string{"a"}); got {
		t.Error("NeedsReview with a single observation should be false")
	}
}

func TestNeedsReviewRequiresSpeed(t *testing.T) {
	sel, clock := newTestSelector(t, SelectorConfig{})

	// Two slow answers: the item was never known at speed, keep drilling.
	mustRecord(t, sel, "a", 8000, true)
	clock.Advance(time.Minute)
	mustRecord(t, sel, "a", 8000, true)
	clock.Advance(40 * time.Hour)
	if got, _ := sel.NeedsReview([]string{"a"}); got {
		t.Error("NeedsReview for a never-fast item should be false")
	}
}
