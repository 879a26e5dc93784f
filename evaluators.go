package pace

// Evaluators are boolean predicates over an item set, used to drive
// user-facing messaging. All three define the empty set as false: "nothing
// to master" is not "mastered".

// AllMastered reports whether every item's current recall is scoreable and
// at or above the recall threshold.
func (s *Selector) AllMastered(itemIDs []string) (bool, error) {
	if len(itemIDs) == 0 {
		return false, nil
	}
	now := s.now()
	for _, id := range itemIDs {
		stats, err := s.store.GetStats(id)
		if err != nil {
			return false, err
		}
		r, ok := recallOf(stats, now)
		if !ok || r < s.cfg.RecallThreshold {
			return false, nil
		}
	}
	return true, nil
}

// AllAutomatic is stricter than AllMastered: every item's display
// automaticity must exceed the automaticity threshold.
func (s *Selector) AllAutomatic(itemIDs []string) (bool, error) {
	if len(itemIDs) == 0 {
		return false, nil
	}
	now := s.now()
	for _, id := range itemIDs {
		stats, err := s.store.GetStats(id)
		if err != nil {
			return false, err
		}
		if stats == nil {
			return false, nil
		}
		recall, rok := recallOf(stats, now)
		speed, sok := speedOf(stats, s.cfg, s.counts(id))
		if !rok || !sok {
			return false, nil
		}
		if Automaticity(recall, speed) <= s.cfg.AutomaticityThreshold {
			return false, nil
		}
	}
	return true, nil
}

// NeedsReview distinguishes "still learning, keep drilling" from "you used
// to know this, go refresh it": every item must have at least two correct
// observations and an EWMA at or under the automaticity target (speed score
// ≥ 0.5), and at least one item's current recall must have dropped below
// the recall threshold.
func (s *Selector) NeedsReview(itemIDs []string) (bool, error) {
	if len(itemIDs) == 0 {
		return false, nil
	}
	now := s.now()
	anyDropped := false
	for _, id := range itemIDs {
		stats, err := s.store.GetStats(id)
		if err != nil {
			return false, err
		}
		if stats == nil || stats.SampleCount < 2 {
			return false, nil
		}
		if SpeedScore(stats.Ewma, s.cfg, s.counts(id)) < 0.5 {
			return false, nil
		}
		if r, ok := recallOf(stats, now); ok && r < s.cfg.RecallThreshold {
			anyDropped = true
		}
	}
	return anyDropped, nil
}
