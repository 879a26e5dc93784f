package pace

import "fmt"

// Config holds the tunable constants of the scheduler. It is an immutable
// value: the selector never mutates its config in place, and updates swap in
// a new merged snapshot (see Selector.SetConfig). Zero-valued fields are
// filled with defaults; see field comments.
//
// Latency fields are milliseconds; stability fields are hours.
type Config struct {
	// MinTime is the floor latency: answers at or under it score a perfect
	// speed. Zero → 1000.
	MinTime float64 `json:"min_time_ms" yaml:"min_time_ms"`

	// MaxResponseTime is the clamp ceiling for recorded latencies.
	// Zero → 10000.
	MaxResponseTime float64 `json:"max_response_time_ms" yaml:"max_response_time_ms"`

	// UnseenBoost is the flat selection weight of an item with no stats.
	// Zero → 3.
	UnseenBoost float64 `json:"unseen_boost" yaml:"unseen_boost"`

	// EwmaAlpha is the exponential smoothing factor. Zero → 0.3.
	EwmaAlpha float64 `json:"ewma_alpha" yaml:"ewma_alpha"`

	// MaxStoredTimes bounds the recent-times history per item. Zero → 10.
	MaxStoredTimes int `json:"max_stored_times" yaml:"max_stored_times"`

	// InitialStability is the half-life granted by the first correct
	// answer, in hours. Zero → 1.
	InitialStability float64 `json:"initial_stability_hours" yaml:"initial_stability_hours"`

	// MaxStability caps half-life growth, in hours. Zero → 2160 (90 days).
	MaxStability float64 `json:"max_stability_hours" yaml:"max_stability_hours"`

	// StabilityGrowthBase multiplies stability after each correct answer,
	// before the speed factor. Zero → 2.
	StabilityGrowthBase float64 `json:"stability_growth_base" yaml:"stability_growth_base"`

	// StabilityDecayOnWrong multiplies stability after a wrong answer.
	// Zero → 0.5.
	StabilityDecayOnWrong float64 `json:"stability_decay_on_wrong" yaml:"stability_decay_on_wrong"`

	// RecallThreshold is the recall probability at or above which an item
	// counts as mastered. Zero → 0.9.
	RecallThreshold float64 `json:"recall_threshold" yaml:"recall_threshold"`

	// SelfCorrectionThreshold is the latency under which a correct answer
	// counts as fast for the self-correction rule, in ms. Zero → 2000.
	SelfCorrectionThreshold float64 `json:"self_correction_threshold_ms" yaml:"self_correction_threshold_ms"`

	// SpeedBonusMax is the stability speed factor at MinTime; the factor
	// falls linearly to 0.5 at MaxResponseTime. Zero → 1.5.
	SpeedBonusMax float64 `json:"speed_bonus_max" yaml:"speed_bonus_max"`

	// AutomaticityTarget is the EWMA latency that scores 0.5 speed, in ms.
	// Zero → 3000.
	AutomaticityTarget float64 `json:"automaticity_target_ms" yaml:"automaticity_target_ms"`

	// AutomaticityThreshold is the automaticity score above which an item
	// counts as automatic. Zero → 0.8.
	AutomaticityThreshold float64 `json:"automaticity_threshold" yaml:"automaticity_threshold"`

	// ExpansionThreshold is consumed by the group-recommendation layer
	// built on top of this package; the core only carries it. Zero → 0.8.
	ExpansionThreshold float64 `json:"expansion_threshold" yaml:"expansion_threshold"`
}

// DefaultConfig returns the default scheduler constants.
func DefaultConfig() Config {
	return Config{
		MinTime:                 1000,
		MaxResponseTime:         10000,
		UnseenBoost:             3,
		EwmaAlpha:               0.3,
		MaxStoredTimes:          10,
		InitialStability:        1,
		MaxStability:            2160,
		StabilityGrowthBase:     2,
		StabilityDecayOnWrong:   0.5,
		RecallThreshold:         0.9,
		SelfCorrectionThreshold: 2000,
		SpeedBonusMax:           1.5,
		AutomaticityTarget:      3000,
		AutomaticityThreshold:   0.8,
		ExpansionThreshold:      0.8,
	}
}

// applyDefaults fills zero-valued fields with defaults.
func (c Config) applyDefaults() Config {
	return DefaultConfig().Merge(c)
}

// Merge returns a new snapshot with every non-zero field of patch replacing
// the corresponding field of c. Neither value is mutated.
func (c Config) Merge(patch Config) Config {
	out := c
	if patch.MinTime != 0 {
		out.MinTime = patch.MinTime
	}
	if patch.MaxResponseTime != 0 {
		out.MaxResponseTime = patch.MaxResponseTime
	}
	if patch.UnseenBoost != 0 {
		out.UnseenBoost = patch.UnseenBoost
	}
	if patch.EwmaAlpha != 0 {
		out.EwmaAlpha = patch.EwmaAlpha
	}
	if patch.MaxStoredTimes != 0 {
		out.MaxStoredTimes = patch.MaxStoredTimes
	}
	if patch.InitialStability != 0 {
		out.InitialStability = patch.InitialStability
	}
	if patch.MaxStability != 0 {
		out.MaxStability = patch.MaxStability
	}
	if patch.StabilityGrowthBase != 0 {
		out.StabilityGrowthBase = patch.StabilityGrowthBase
	}
	if patch.StabilityDecayOnWrong != 0 {
		out.StabilityDecayOnWrong = patch.StabilityDecayOnWrong
	}
	if patch.RecallThreshold != 0 {
		out.RecallThreshold = patch.RecallThreshold
	}
	if patch.SelfCorrectionThreshold != 0 {
		out.SelfCorrectionThreshold = patch.SelfCorrectionThreshold
	}
	if patch.SpeedBonusMax != 0 {
		out.SpeedBonusMax = patch.SpeedBonusMax
	}
	if patch.AutomaticityTarget != 0 {
		out.AutomaticityTarget = patch.AutomaticityTarget
	}
	if patch.AutomaticityThreshold != 0 {
		out.AutomaticityThreshold = patch.AutomaticityThreshold
	}
	if patch.ExpansionThreshold != 0 {
		out.ExpansionThreshold = patch.ExpansionThreshold
	}
	return out
}

// Validate checks that the config is internally consistent.
func (c Config) Validate() error {
	if c.MinTime <= 0 {
		return fmt.Errorf("%w: min time %f must be positive", ErrInvalidConfig, c.MinTime)
	}
	if c.MaxResponseTime <= c.MinTime {
		return fmt.Errorf("%w: max response time %f must exceed min time %f",
			ErrInvalidConfig, c.MaxResponseTime, c.MinTime)
	}
	if c.AutomaticityTarget <= c.MinTime {
		return fmt.Errorf("%w: automaticity target %f must exceed min time %f",
			ErrInvalidConfig, c.AutomaticityTarget, c.MinTime)
	}
	if c.EwmaAlpha <= 0 || c.EwmaAlpha > 1 {
		return fmt.Errorf("%w: ewma alpha %f out of range (0, 1]", ErrInvalidConfig, c.EwmaAlpha)
	}
	if c.MaxStoredTimes < 1 {
		return fmt.Errorf("%w: max stored times %d must be positive", ErrInvalidConfig, c.MaxStoredTimes)
	}
	if c.InitialStability <= 0 {
		return fmt.Errorf("%w: initial stability %f must be positive", ErrInvalidConfig, c.InitialStability)
	}
	if c.MaxStability < c.InitialStability {
		return fmt.Errorf("%w: max stability %f below initial stability %f",
			ErrInvalidConfig, c.MaxStability, c.InitialStability)
	}
	if c.StabilityGrowthBase <= 0 {
		return fmt.Errorf("%w: stability growth base %f must be positive", ErrInvalidConfig, c.StabilityGrowthBase)
	}
	if c.StabilityDecayOnWrong <= 0 || c.StabilityDecayOnWrong > 1 {
		return fmt.Errorf("%w: stability decay %f out of range (0, 1]", ErrInvalidConfig, c.StabilityDecayOnWrong)
	}
	if c.RecallThreshold <= 0 || c.RecallThreshold > 1 {
		return fmt.Errorf("%w: recall threshold %f out of range (0, 1]", ErrInvalidConfig, c.RecallThreshold)
	}
	if c.AutomaticityThreshold <= 0 || c.AutomaticityThreshold > 1 {
		return fmt.Errorf("%w: automaticity threshold %f out of range (0, 1]",
			ErrInvalidConfig, c.AutomaticityThreshold)
	}
	if c.UnseenBoost < 1 {
		return fmt.Errorf("%w: unseen boost %f must be at least 1", ErrInvalidConfig, c.UnseenBoost)
	}
	if c.SpeedBonusMax < 0.5 {
		return fmt.Errorf("%w: speed bonus max %f must be at least 0.5", ErrInvalidConfig, c.SpeedBonusMax)
	}
	return nil
}

// WithResponseCount returns a config scaled for an item whose correct answer
// requires n discrete inputs. The four absolute-latency fields are
// multiplied by n so that the ratio of the answer time to the thresholds,
// not the absolute time, determines every score. n < 1 is treated as 1.
func (c Config) WithResponseCount(n int) Config {
	if n <= 1 {
		return c
	}
	return c.scaleLatencies(float64(n))
}

// WithMotorBaseline returns a config rescaled for a user whose measured
// baseline reaction time is baselineMs. A baseline of 1000ms leaves the
// config unchanged; faster users get proportionally tighter thresholds.
// Ratio-based fields (smoothing, growth, thresholds) are untouched.
func (c Config) WithMotorBaseline(baselineMs float64) Config {
	if baselineMs <= 0 {
		return c
	}
	return c.scaleLatencies(baselineMs / 1000)
}

func (c Config) scaleLatencies(scale float64) Config {
	out := c
	out.MinTime *= scale
	out.AutomaticityTarget *= scale
	out.MaxResponseTime *= scale
	out.SelfCorrectionThreshold *= scale
	return out
}
