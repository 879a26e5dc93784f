// Package profile manages on-disk user profiles for the pace scheduler:
// a name, the calibrated motor baseline, and scheduler config overrides.
// Profiles are YAML files; a handful of fields can additionally be
// overridden through PACE_* environment variables.
package profile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/keydrill/pace"
)

// Profile is one user's persistent scheduler settings. The Scheduler block
// holds overrides only: zero-valued fields fall back to pace defaults when
// the config is resolved.
type Profile struct {
	Name            string      `yaml:"name"`
	MotorBaselineMs float64     `yaml:"motor_baseline_ms,omitempty"`
	Scheduler       pace.Config `yaml:"scheduler,omitempty"`
}

// Default returns an empty profile for the given name.
func Default(name string) Profile {
	return Profile{Name: name}
}

// Load reads a profile from a YAML file.
func Load(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("profile: read %q: %w", path, err)
	}
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("profile: parse %q: %w", path, err)
	}
	return p, nil
}

// LoadOrDefault reads a profile, falling back to Default(name) when the
// file does not exist yet.
func LoadOrDefault(path, name string) (Profile, error) {
	p, err := Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(name), nil
		}
		return Profile{}, err
	}
	return p, nil
}

// Save writes the profile as YAML, creating parent directories as needed.
func (p Profile) Save(path string) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("profile: encode: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("profile: create %q: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("profile: write %q: %w", path, err)
	}
	return nil
}

// envOverrides are the fields adjustable without editing the profile file.
type envOverrides struct {
	Name                  string  `env:"PACE_PROFILE_NAME"`
	MotorBaselineMs       float64 `env:"PACE_MOTOR_BASELINE_MS"`
	MinTime               float64 `env:"PACE_MIN_TIME_MS"`
	AutomaticityTarget    float64 `env:"PACE_AUTOMATICITY_TARGET_MS"`
	MaxResponseTime       float64 `env:"PACE_MAX_RESPONSE_TIME_MS"`
	RecallThreshold       float64 `env:"PACE_RECALL_THRESHOLD"`
	AutomaticityThreshold float64 `env:"PACE_AUTOMATICITY_THRESHOLD"`
	UnseenBoost           float64 `env:"PACE_UNSEEN_BOOST"`
}

// ApplyEnv overlays PACE_* environment variables onto the profile.
// Unset variables leave the corresponding fields untouched.
func (p *Profile) ApplyEnv() error {
	var o envOverrides
	if err := env.Parse(&o); err != nil {
		return fmt.Errorf("profile: parse environment: %w", err)
	}
	if o.Name != "" {
		p.Name = o.Name
	}
	if o.MotorBaselineMs > 0 {
		p.MotorBaselineMs = o.MotorBaselineMs
	}
	p.Scheduler = p.Scheduler.Merge(pace.Config{
		MinTime:               o.MinTime,
		AutomaticityTarget:    o.AutomaticityTarget,
		MaxResponseTime:       o.MaxResponseTime,
		RecallThreshold:       o.RecallThreshold,
		AutomaticityThreshold: o.AutomaticityThreshold,
		UnseenBoost:           o.UnseenBoost,
	})
	return nil
}

// SchedulerConfig resolves the effective scheduler config: pace defaults,
// then the profile's overrides, then motor-baseline rescaling.
func (p Profile) SchedulerConfig() pace.Config {
	cfg := pace.DefaultConfig().Merge(p.Scheduler)
	if p.MotorBaselineMs > 0 {
		cfg = cfg.WithMotorBaseline(p.MotorBaselineMs)
	}
	return cfg
}
