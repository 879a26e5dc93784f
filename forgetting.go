package pace

import "math"

// selfCorrectionGain is the multiplier applied to the elapsed gap when a
// fast correct answer follows it: the true half-life was at least as long
// as the gap. Empirically tuned; do not re-derive.
const selfCorrectionGain = 1.5

// Recall computes the half-life recall probability 2^(-elapsed/stability).
// Returns 1 when no time has elapsed and 0 when stability is not positive.
// Strictly decreasing in elapsed time for stability > 0.
func Recall(stabilityHours, elapsedHours float64) float64 {
	if elapsedHours <= 0 {
		return 1
	}
	if stabilityHours <= 0 {
		return 0
	}
	return math.Exp2(-elapsedHours / stabilityHours)
}

// nextStability computes the half-life after a correct answer.
//
// With no prior stability the first-correct baseline applies. Otherwise the
// old half-life is multiplied by the growth base and a speed factor, then
// the self-correction rule raises the result when a fast answer arrives
// after a gap: recalling quickly after elapsedHours is direct evidence the
// half-life was at least that long. The result is clamped to
// [InitialStability, MaxStability].
func nextStability(old *float64, responseMs, elapsedHours float64, cfg Config) float64 {
	if old == nil {
		return cfg.InitialStability
	}
	s := *old * cfg.StabilityGrowthBase * speedFactor(responseMs, cfg)
	if responseMs < cfg.SelfCorrectionThreshold && elapsedHours > 0 {
		s = math.Max(s, elapsedHours*selfCorrectionGain)
	}
	return clampStability(s, cfg)
}

// speedFactor interpolates linearly from SpeedBonusMax at MinTime down to
// 0.5 at MaxResponseTime. Latencies outside the range are clamped.
func speedFactor(responseMs float64, cfg Config) float64 {
	t := math.Min(math.Max(responseMs, cfg.MinTime), cfg.MaxResponseTime)
	frac := (t - cfg.MinTime) / (cfg.MaxResponseTime - cfg.MinTime)
	return cfg.SpeedBonusMax + frac*(0.5-cfg.SpeedBonusMax)
}

// stabilityAfterWrong decays the half-life after a wrong answer, but never
// below the first-correct baseline, so one mistake cannot leave an item
// pathologically due forever.
func stabilityAfterWrong(old *float64, cfg Config) float64 {
	if old == nil {
		return cfg.InitialStability
	}
	return math.Max(cfg.InitialStability, *old*cfg.StabilityDecayOnWrong)
}

func clampStability(s float64, cfg Config) float64 {
	return math.Min(math.Max(s, cfg.InitialStability), cfg.MaxStability)
}
