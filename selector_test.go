package pace

import (
	"errors"
	"math/rand"
	"testing"
	"time"
)

var t0 = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestSelector(t *testing.T, cfg SelectorConfig) (*Selector, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: t0}
	if cfg.Storage == nil {
		cfg.Storage = NewMemoryStore()
	}
	if cfg.Now == nil {
		cfg.Now = clock.Now
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(1))
	}
	sel, err := NewSelector(cfg)
	if err != nil {
		t.Fatalf("NewSelector: %v", err)
	}
	return sel, clock
}

func mustRecord(t *testing.T, s *Selector, id string, ms float64, correct bool) ResponseLog {
	t.Helper()
	rl, err := s.RecordResponse(id, ms, correct)
	if err != nil {
		t.Fatalf("RecordResponse(%q): %v", id, err)
	}
	return rl
}

func mustStats(t *testing.T, s *Selector, id string) *ItemStats {
	t.Helper()
	st, err := s.Stats(id)
	if err != nil {
		t.Fatalf("Stats(%q): %v", id, err)
	}
	if st == nil {
		t.Fatalf("Stats(%q) = nil, want record", id)
	}
	return st
}

// --- NewSelector ---

func TestNewSelectorRequiresStorage(t *testing.T) {
	_, err := NewSelector(SelectorConfig{})
	if !errors.Is(err, ErrNoStorage) {
		t.Errorf("err = %v, want ErrNoStorage", err)
	}
}

func TestNewSelectorInvalidConfig(t *testing.T) {
	_, err := NewSelector(SelectorConfig{
		Storage: NewMemoryStore(),
		Config:  Config{EwmaAlpha: 2},
	})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestNewSelectorDefaults(t *testing.T) {
	sel, _ := newTestSelector(t, SelectorConfig{})
	if sel.Config() != DefaultConfig() {
		t.Errorf("Config() = %+v, want defaults", sel.Config())
	}
}

// --- RecordResponse: correct answers ---

func TestRecordResponseEwmaScenario(t *testing.T) {
	sel, _ := newTestSelector(t, SelectorConfig{})
	mustRecord(t, sel, "x", 2000, true)
	mustRecord(t, sel, "x", 1000, true)

	st := mustStats(t, sel, "x")
	// First observation anchors the EWMA; the second smooths:
	// 0.3*1000 + 0.7*2000 = 1700.
	assertFloat(t, "Ewma", st.Ewma, 1700)
	if st.SampleCount != 2 {
		t.Errorf("SampleCount = %d, want 2", st.SampleCount)
	}
	if len(st.RecentTimes) != 2 || st.RecentTimes[0] != 2000 || st.RecentTimes[1] != 1000 {
		t.Errorf("RecentTimes = %v, want [2000 1000]", st.RecentTimes)
	}
	if st.Stability == nil || st.LastCorrectAt == nil {
		t.Fatal("Stability and LastCorrectAt should be set after a correct answer")
	}
	if !st.LastCorrectAt.Equal(t0) {
		t.Errorf("LastCorrectAt = %v, want %v", st.LastCorrectAt, t0)
	}
}

func TestRecordResponseFirstCorrectBaseline(t *testing.T) {
	sel, _ := newTestSelector(t, SelectorConfig{})
	mustRecord(t, sel, "x", 1500, true)
	st := mustStats(t, sel, "x")
	assertFloat(t, "Stability", *st.Stability, DefaultConfig().InitialStability)
}

func TestRecordResponseClampsLatency(t *testing.T) {
	sel, _ := newTestSelector(t, SelectorConfig{})
	rl := mustRecord(t, sel, "x", 50000, true)
	assertFloat(t, "clamped log", rl.ResponseMs, DefaultConfig().MaxResponseTime)
	st := mustStats(t, sel, "x")
	assertFloat(t, "clamped ewma", st.Ewma, DefaultConfig().MaxResponseTime)

	rl = mustRecord(t, sel, "y", -200, true)
	assertFloat(t, "negative clamped", rl.ResponseMs, 0)
}

func TestRecordResponseBoundsRecentTimes(t *testing.T) {
	sel, _ := newTestSelector(t, SelectorConfig{Config: Config{MaxStoredTimes: 3}})
	for _, ms := range []float64{1000, 1100, 1200, 1300, 1400} {
		mustRecord(t, sel, "x", ms, true)
	}
	st := mustStats(t, sel, "x")
	if len(st.RecentTimes) != 3 {
		t.Fatalf("len(RecentTimes) = %d, want 3", len(st.RecentTimes))
	}
	// Oldest dropped first.
	for i, want := range []float64{1200, 1300, 1400} {
		if st.RecentTimes[i] != want {
			t.Errorf("RecentTimes[%d] = %v, want %v", i, st.RecentTimes[i], want)
		}
	}
}

func TestRecordResponseStabilityGrowsAcrossGap(t *testing.T) {
	sel, clock := newTestSelector(t, SelectorConfig{})
	mustRecord(t, sel, "x", 1200, true)
	clock.Advance(100 * time.Hour)
	mustRecord(t, sel, "x", 1200, true)

	st := mustStats(t, sel, "x")
	// Fast answer after a 100h gap triggers self-correction: ≥ 150h.
	if *st.Stability < 150-epsilon {
		t.Errorf("Stability = %v, want ≥ 150 (self-correction)", *st.Stability)
	}
	if !st.LastCorrectAt.Equal(t0.Add(100 * time.Hour)) {
		t.Errorf("LastCorrectAt = %v, want updated to now", st.LastCorrectAt)
	}
}

// --- RecordResponse: wrong answers ---

func TestRecordResponseWrongLeavesSpeedModel(t *testing.T) {
	sel, clock := newTestSelector(t, SelectorConfig{})
	mustRecord(t, sel, "x", 1000, true)
	clock.Advance(time.Hour)
	mustRecord(t, sel, "x", 1000, true) // stability now 2*1.5 = 3h
	before := mustStats(t, sel, "x")

	clock.Advance(time.Hour)
	mustRecord(t, sel, "x", 4000, false)
	after := mustStats(t, sel, "x")

	assertFloat(t, "Ewma untouched", after.Ewma, before.Ewma)
	if after.SampleCount != before.SampleCount {
		t.Errorf("SampleCount = %d, want %d", after.SampleCount, before.SampleCount)
	}
	if len(after.RecentTimes) != len(before.RecentTimes) {
		t.Errorf("RecentTimes = %v, want unchanged %v", after.RecentTimes, before.RecentTimes)
	}
	assertFloat(t, "Stability decayed", *after.Stability, *before.Stability*0.5)
	if !after.LastCorrectAt.Equal(*before.LastCorrectAt) {
		t.Error("LastCorrectAt must not move on a wrong answer")
	}
	if !after.LastSeen.Equal(t0.Add(2 * time.Hour)) {
		t.Errorf("LastSeen = %v, want now", after.LastSeen)
	}
}

func TestRecordResponseWrongFirstSynthesizesRecord(t *testing.T) {
	sel, _ := newTestSelector(t, SelectorConfig{})
	rl := mustRecord(t, sel, "x", 4000, false)
	if rl.Outcome != Wrong {
		t.Errorf("Outcome = %v, want Wrong", rl.Outcome)
	}

	st := mustStats(t, sel, "x")
	cfg := DefaultConfig()
	// Seen and struggling, not unseen.
	if st.SampleCount != 0 {
		t.Errorf("SampleCount = %d, want 0", st.SampleCount)
	}
	if len(st.RecentTimes) != 0 {
		t.Errorf("RecentTimes = %v, want empty", st.RecentTimes)
	}
	assertFloat(t, "Ewma", st.Ewma, cfg.MaxResponseTime)
	assertFloat(t, "Stability", *st.Stability, cfg.InitialStability)
	if st.LastCorrectAt != nil {
		t.Errorf("LastCorrectAt = %v, want nil", st.LastCorrectAt)
	}
	if !st.LastSeen.Equal(t0) {
		t.Errorf("LastSeen = %v, want %v", st.LastSeen, t0)
	}

	// The weighting layer now sees a heavy, seen item.
	w := itemWeight(st, t0, cfg)
	assertFloat(t, "struggling weight", w, cfg.MaxResponseTime/cfg.MinTime)
}

// --- response-count scaling ---

func TestRecordResponseScalesByResponseCount(t *testing.T) {
	counts := func(id string) int {
		if id == "chord" {
			return 3
		}
		return 1
	}
	sel, _ := newTestSelector(t, SelectorConfig{ResponseCounts: counts})

	// 3600ms for a 3-input item is the ratio equivalent of 1200ms for a
	// 1-input item.
	mustRecord(t, sel, "chord", 3600, true)
	mustRecord(t, sel, "single", 1200, true)

	chordSpeed, ok, err := sel.Speed("chord")
	if err != nil || !ok {
		t.Fatalf("Speed(chord) ok=%v err=%v", ok, err)
	}
	singleSpeed, _, _ := sel.Speed("single")
	assertFloat(t, "scaled speed", chordSpeed, singleSpeed)
}

func TestRecordResponseScaledClamp(t *testing.T) {
	counts := func(string) int { return 3 }
	sel, _ := newTestSelector(t, SelectorConfig{ResponseCounts: counts})
	rl := mustRecord(t, sel, "chord", 99999, true)
	assertFloat(t, "scaled ceiling", rl.ResponseMs, DefaultConfig().MaxResponseTime*3)
}

// --- SelectNext ---

func TestSelectNextEmpty(t *testing.T) {
	sel, _ := newTestSelector(t, SelectorConfig{})
	_, err := sel.SelectNext(nil)
	if !errors.Is(err, ErrNoCandidates) {
		t.Errorf("err = %v, want ErrNoCandidates", err)
	}
}

func TestSelectNextSingle(t *testing.T) {
	store := NewMemoryStore()
	sel, _ := newTestSelector(t, SelectorConfig{Storage: store})
	got, err := sel.SelectNext([]string{"only"})
	if err != nil {
		t.Fatalf("SelectNext: %v", err)
	}
	if got != "only" {
		t.Errorf("SelectNext = %q, want %q", got, "only")
	}
	last, _ := store.LastSelected()
	if last != "only" {
		t.Errorf("LastSelected = %q, want %q", last, "only")
	}
}

func TestSelectNextNeverRepeats(t *testing.T) {
	sel, _ := newTestSelector(t, SelectorConfig{})
	items := []string{"a", "b"}
	prev, err := sel.SelectNext(items)
	if err != nil {
		t.Fatal(err)
	}
	// With two candidates, zeroing the previous pick forces alternation.
	for i := 0; i < 20; i++ {
		got, err := sel.SelectNext(items)
		if err != nil {
			t.Fatal(err)
		}
		if got == prev {
			t.Fatalf("round %d repeated %q immediately", i, got)
		}
		prev = got
	}
}

func TestSelectNextDeterministicForFixedInputs(t *testing.T) {
	run := func() []string {
		sel, _ := newTestSelector(t, SelectorConfig{
			Rand: rand.New(rand.NewSource(42)),
		})
		var picks []string
		for i := 0; i < 10; i++ {
			got, err := sel.SelectNext([]string{"a", "b", "c", "d"})
			if err != nil {
				t.Fatal(err)
			}
			picks = append(picks, got)
		}
		return picks
	}
	first := run()
	second := run()
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("pick %d differs: %q vs %q", i, first[i], second[i])
		}
	}
}

func TestSelectNextPrefersUnseen(t *testing.T) {
	// A drilled fast item weighs 1, an unseen item weighs 3; over many
	// draws the unseen item must dominate.
	sel, _ := newTestSelector(t, SelectorConfig{})
	mustRecord(t, sel, "known", 900, true)

	unseen := 0
	for i := 0; i < 200; i++ {
		// Reset the last-selected slot so the anti-repeat rule does not
		// distort the tally.
		if err := sel.store.SetLastSelected(""); err != nil {
			t.Fatal(err)
		}
		got, err := sel.SelectNext([]string{"known", "new"})
		if err != nil {
			t.Fatal(err)
		}
		if got == "new" {
			unseen++
		}
	}
	// Expectation is 75%; anything above 60% clears the bar.
	if unseen < 120 {
		t.Errorf("unseen picked %d/200 times, want > 120", unseen)
	}
}

// --- queries ---

func TestRecallQueryLifecycle(t *testing.T) {
	sel, clock := newTestSelector(t, SelectorConfig{})
	if _, ok, _ := sel.Recall("x"); ok {
		t.Error("Recall before any response should not be scoreable")
	}

	mustRecord(t, sel, "x", 1200, true)
	r, ok, _ := sel.Recall("x")
	if !ok {
		t.Fatal("Recall after a correct answer should be scoreable")
	}
	assertFloat(t, "recall now", r, 1.0)

	clock.Advance(time.Hour) // one half-life at initial stability
	r, _, _ = sel.Recall("x")
	assertFloat(t, "recall at half-life", r, 0.5)
}

func TestAutomaticityThreeStateContract(t *testing.T) {
	sel, _ := newTestSelector(t, SelectorConfig{})

	// Never attempted: absent.
	if _, attempted, _ := sel.AutomaticityForDisplay("x"); attempted {
		t.Error("unattempted item should report attempted=false")
	}
	band, _ := sel.DisplayBand("x")
	if band != BandUnseen {
		t.Errorf("band = %v, want BandUnseen", band)
	}

	// Attempted but never correct: zero, not absent.
	mustRecord(t, sel, "x", 4000, false)
	v, attempted, _ := sel.AutomaticityForDisplay("x")
	if !attempted || v != 0 {
		t.Errorf("struggling item = (%v, %v), want (0, true)", v, attempted)
	}
	band, _ = sel.DisplayBand("x")
	if band != BandWeak {
		t.Errorf("band = %v, want BandWeak", band)
	}

	// Scored.
	mustRecord(t, sel, "x", 1200, true)
	v, attempted, _ = sel.AutomaticityForDisplay("x")
	if !attempted || v <= 0 {
		t.Errorf("scored item = (%v, %v), want positive score", v, attempted)
	}
	band, _ = sel.DisplayBand("x")
	if band != BandAutomatic {
		t.Errorf("band = %v, want BandAutomatic", band)
	}

	// The strict variant agrees on the scored value.
	strict, ok, _ := sel.Automaticity("x")
	if !ok {
		t.Fatal("Automaticity should be scoreable")
	}
	assertFloat(t, "strict matches display", strict, v)
}

// --- SetConfig ---

func TestSetConfigMergesAndValidates(t *testing.T) {
	sel, _ := newTestSelector(t, SelectorConfig{})
	if err := sel.SetConfig(Config{EwmaAlpha: 0.5}); err != nil {
		t.Fatalf("SetConfig: %v", err)
	}
	got := sel.Config()
	assertFloat(t, "alpha updated", got.EwmaAlpha, 0.5)
	assertFloat(t, "min time kept", got.MinTime, DefaultConfig().MinTime)

	if err := sel.SetConfig(Config{EwmaAlpha: 2}); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("err = %v, want ErrInvalidConfig", err)
	}
	assertFloat(t, "rejected patch leaves config", sel.Config().EwmaAlpha, 0.5)
}
