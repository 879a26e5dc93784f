package pace

import (
	"math"
	"math/rand"
	"time"

	"github.com/rs/zerolog"
)

// SelectorConfig configures a Selector.
// Storage is required; every other field has a usable default.
type SelectorConfig struct {
	// Storage holds the per-item stats and the last-selected slot.
	Storage Storage

	// Config supplies the scheduler constants. Zero-valued fields are
	// filled from DefaultConfig.
	Config Config

	// Now supplies the wall clock. nil → time.Now. Each selector
	// operation reads it exactly once.
	Now func() time.Time

	// Rand supplies randomness for the weighted draw. nil → a source
	// seeded from the wall clock. Each selection reads it exactly once.
	Rand *rand.Rand

	// ResponseCounts reports how many discrete inputs an item's correct
	// answer requires (a three-note chord spelled note by note is 3).
	// nil → every item counts as 1.
	ResponseCounts func(itemID string) int

	// Logger receives debug events for recording and selection.
	// nil → no logging.
	Logger *zerolog.Logger
}

// Selector is the stateful façade of the scheduler: it records responses,
// chooses the next item, and answers read-only score queries, all against
// the injected Storage. Operations are synchronous and assume sequential
// access; see Storage.
type Selector struct {
	store  Storage
	cfg    Config
	now    func() time.Time
	rng    *rand.Rand
	counts func(string) int
	log    zerolog.Logger
}

// NewSelector creates a Selector from the given config.
// Zero-value fields are filled with defaults; invalid values return an error.
func NewSelector(cfg SelectorConfig) (*Selector, error) {
	if cfg.Storage == nil {
		return nil, ErrNoStorage
	}

	conf := cfg.Config.applyDefaults()
	if err := conf.Validate(); err != nil {
		return nil, err
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	counts := cfg.ResponseCounts
	if counts == nil {
		counts = func(string) int { return 1 }
	}

	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	return &Selector{
		store:  cfg.Storage,
		cfg:    conf,
		now:    now,
		rng:    rng,
		counts: counts,
		log:    logger,
	}, nil
}

// Config returns the current config snapshot.
func (s *Selector) Config() Config {
	return s.cfg
}

// SetConfig merges the non-zero fields of patch over the current snapshot,
// validates the result, and swaps it in. The previous snapshot is never
// mutated, so other selectors holding it are unaffected.
func (s *Selector) SetConfig(patch Config) error {
	merged := s.cfg.Merge(patch)
	if err := merged.Validate(); err != nil {
		return err
	}
	s.cfg = merged
	return nil
}

// scaledConfig returns the config adjusted for the item's response count.
func (s *Selector) scaledConfig(itemID string) Config {
	return s.cfg.WithResponseCount(s.counts(itemID))
}

// RecordResponse updates the item's memory model from one response and
// persists the result. The latency is clamped to the item's effective
// response-time ceiling before any use. A wrong answer only decays
// stability and touches LastSeen; a wrong answer on a never-seen item
// synthesizes a "seen and struggling" record so the weighting layer stops
// treating the item as unseen.
func (s *Selector) RecordResponse(itemID string, timeMs float64, correct bool) (ResponseLog, error) {
	scfg := s.scaledConfig(itemID)
	clamped := math.Min(math.Max(timeMs, 0), scfg.MaxResponseTime)
	now := s.now()

	prior, err := s.store.GetStats(itemID)
	if err != nil {
		return ResponseLog{}, err
	}

	var st ItemStats
	if correct {
		st = s.applyCorrect(prior, clamped, now, scfg)
	} else {
		st = s.applyWrong(prior, scfg)
	}
	st.LastSeen = now

	if err := s.store.SetStats(itemID, st); err != nil {
		return ResponseLog{}, err
	}

	s.log.Debug().
		Str("item", itemID).
		Bool("correct", correct).
		Float64("response_ms", clamped).
		Float64("stability_hours", *st.Stability).
		Int("samples", st.SampleCount).
		Msg("response recorded")

	return ResponseLog{
		ItemID:     itemID,
		Outcome:    OutcomeFor(correct),
		ResponseMs: clamped,
		RecordedAt: now,
	}, nil
}

func (s *Selector) applyCorrect(prior *ItemStats, clamped float64, now time.Time, scfg Config) ItemStats {
	var st ItemStats
	var priorStability *float64
	elapsedHours := 0.0
	if prior != nil {
		st = prior.clone()
		priorStability = prior.Stability
		if prior.LastCorrectAt != nil {
			elapsedHours = now.Sub(*prior.LastCorrectAt).Hours()
		}
	}

	if st.SampleCount == 0 {
		// First correct observation anchors the average directly.
		st.Ewma = clamped
	} else {
		st.Ewma = NextEwma(st.Ewma, clamped, s.cfg.EwmaAlpha)
	}
	st.SampleCount++

	st.RecentTimes = append(st.RecentTimes, clamped)
	if over := len(st.RecentTimes) - s.cfg.MaxStoredTimes; over > 0 {
		st.RecentTimes = append([]float64(nil), st.RecentTimes[over:]...)
	}

	st.setStability(nextStability(priorStability, clamped, elapsedHours, scfg))
	st.setLastCorrectAt(now)
	return st
}

func (s *Selector) applyWrong(prior *ItemStats, scfg Config) ItemStats {
	if prior == nil {
		// Seen and struggling, not unseen: worst-case speed, baseline
		// stability, no correct answer on record.
		st := ItemStats{
			RecentTimes: []float64{},
			Ewma:        scfg.MaxResponseTime,
		}
		st.setStability(scfg.InitialStability)
		return st
	}
	st := prior.clone()
	st.setStability(stabilityAfterWrong(prior.Stability, s.cfg))
	return st
}

// SelectNext chooses the next item to present from the candidate set.
// An empty set is a caller contract violation and returns ErrNoCandidates.
// A single candidate is returned directly. Otherwise the previously
// selected item is excluded (weight zero) and a weighted draw runs over the
// rest; the winner becomes the new last-selected item.
func (s *Selector) SelectNext(candidates []string) (string, error) {
	if len(candidates) == 0 {
		return "", ErrNoCandidates
	}
	if len(candidates) == 1 {
		if err := s.store.SetLastSelected(candidates[0]); err != nil {
			return "", err
		}
		return candidates[0], nil
	}

	if err := s.store.Preload(candidates); err != nil {
		return "", err
	}
	last, err := s.store.LastSelected()
	if err != nil {
		return "", err
	}

	now := s.now()
	r := s.rng.Float64()

	weights := make([]float64, len(candidates))
	total := 0.0
	for i, id := range candidates {
		if id == last {
			continue // anti-immediate-repeat
		}
		stats, err := s.store.GetStats(id)
		if err != nil {
			return "", err
		}
		weights[i] = itemWeight(stats, now, s.scaledConfig(id))
		total += weights[i]
	}

	choice := selectWeighted(candidates, weights, r)
	if err := s.store.SetLastSelected(choice); err != nil {
		return "", err
	}

	s.log.Debug().
		Str("item", choice).
		Int("candidates", len(candidates)).
		Float64("total_weight", total).
		Msg("item selected")

	return choice, nil
}

// Stats returns a copy of the item's stored record, or nil when the item
// has never been recorded.
func (s *Selector) Stats(itemID string) (*ItemStats, error) {
	return s.store.GetStats(itemID)
}

// Recall returns the item's current recall probability. ok is false when
// the item has no stability or no correct answer on record.
func (s *Selector) Recall(itemID string) (float64, bool, error) {
	stats, err := s.store.GetStats(itemID)
	if err != nil {
		return 0, false, err
	}
	v, ok := recallOf(stats, s.now())
	return v, ok, nil
}

// Speed returns the item's current speed score. ok is false when no correct
// answer has contributed to the EWMA.
func (s *Selector) Speed(itemID string) (float64, bool, error) {
	stats, err := s.store.GetStats(itemID)
	if err != nil {
		return 0, false, err
	}
	v, ok := speedOf(stats, s.cfg, s.counts(itemID))
	return v, ok, nil
}

// Automaticity returns recall × speed. ok is false when either factor is
// unscoreable.
func (s *Selector) Automaticity(itemID string) (float64, bool, error) {
	stats, err := s.store.GetStats(itemID)
	if err != nil {
		return 0, false, err
	}
	v, ok := s.automaticityOf(stats, itemID)
	return v, ok, nil
}

// AutomaticityForDisplay is Automaticity with the three-state UI contract:
// ok is false only for items never attempted; an attempted but unscoreable
// item reports (0, true).
func (s *Selector) AutomaticityForDisplay(itemID string) (float64, bool, error) {
	stats, err := s.store.GetStats(itemID)
	if err != nil {
		return 0, false, err
	}
	if stats == nil {
		return 0, false, nil
	}
	v, ok := s.automaticityOf(stats, itemID)
	if !ok {
		return 0, true, nil
	}
	return v, true, nil
}

// DisplayBand buckets the item for progress displays.
func (s *Selector) DisplayBand(itemID string) (Band, error) {
	v, attempted, err := s.AutomaticityForDisplay(itemID)
	if err != nil {
		return 0, err
	}
	return BandFor(v, attempted, s.cfg.AutomaticityThreshold), nil
}

func (s *Selector) automaticityOf(stats *ItemStats, itemID string) (float64, bool) {
	recall, rok := recallOf(stats, s.now())
	speed, sok := speedOf(stats, s.cfg, s.counts(itemID))
	if !rok || !sok {
		return 0, false
	}
	return Automaticity(recall, speed), true
}
