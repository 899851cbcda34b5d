package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Weights is the tunable coefficient table for the composite imprint score
// and the XP reward formula. All coefficients must be non-negative so the
// resulting scores stay monotonic in each axis.
type Weights struct {
	Imprint ImprintWeights        `yaml:"imprint"`
	XP      XPWeights             `yaml:"xp"`
	Types   map[string]TypeTuning `yaml:"types"`
}

// ImprintWeights combines the four axis scores into the imprint score.
type ImprintWeights struct {
	Realism       float64 `yaml:"realism"`
	Emotion       float64 `yaml:"emotion"`
	Climax        float64 `yaml:"climax"`
	CompanionBond float64 `yaml:"companion_bond"`
	LongTextBonus float64 `yaml:"long_text_bonus"`
	CompanionHit  float64 `yaml:"companion_hit_bonus"`
}

// XPWeights tunes the XP reward formula.
type XPWeights struct {
	ImprintFactor float64 `yaml:"imprint_factor"`
	DurationBonus float64 `yaml:"duration_bonus"`
	DurationMinMs int64   `yaml:"duration_min_ms"`
}

// TypeTuning carries the per-session-type multipliers and bonuses.
type TypeTuning struct {
	ImprintMultiplier float64 `yaml:"imprint_multiplier"`
	RealismMultiplier float64 `yaml:"realism_multiplier"`
	XPBonus           int     `yaml:"xp_bonus"`
}

// DefaultWeights returns the built-in coefficient table.
func DefaultWeights() *Weights {
	return &Weights{
		Imprint: ImprintWeights{
			Realism:       0.3,
			Emotion:       0.3,
			Climax:        0.2,
			CompanionBond: 0.2,
			LongTextBonus: 5,
			CompanionHit:  10,
		},
		XP: XPWeights{
			ImprintFactor: 2.0,
			DurationBonus: 1.2,
			DurationMinMs: 600000,
		},
		Types: map[string]TypeTuning{
			"text":    {ImprintMultiplier: 1.0, RealismMultiplier: 1.0, XPBonus: 20},
			"image":   {ImprintMultiplier: 0.9, RealismMultiplier: 0.8, XPBonus: 15},
			"deck":    {ImprintMultiplier: 0.8, RealismMultiplier: 0.9, XPBonus: 25},
			"voice":   {ImprintMultiplier: 1.1, RealismMultiplier: 1.1, XPBonus: 30},
			"passive": {ImprintMultiplier: 0.7, RealismMultiplier: 0.7, XPBonus: 10},
		},
	}
}

// LoadWeights reads the YAML weights table at path. A missing file returns
// the defaults (not an error). Negative coefficients are rejected because
// they would break reward monotonicity.
func LoadWeights(path string) (*Weights, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultWeights(), nil
		}
		return nil, err
	}

	w := DefaultWeights()
	if err := yaml.Unmarshal(data, w); err != nil {
		return nil, err
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return w, nil
}

// Validate rejects coefficient tables that would make scoring
// non-monotonic or unbounded.
func (w *Weights) Validate() error {
	axes := []struct {
		name  string
		value float64
	}{
		{"imprint.realism", w.Imprint.Realism},
		{"imprint.emotion", w.Imprint.Emotion},
		{"imprint.climax", w.Imprint.Climax},
		{"imprint.companion_bond", w.Imprint.CompanionBond},
		{"xp.imprint_factor", w.XP.ImprintFactor},
	}
	for _, a := range axes {
		if a.value < 0 {
			return fmt.Errorf("weights: %s must be non-negative, got %v", a.name, a.value)
		}
	}
	sum := w.Imprint.Realism + w.Imprint.Emotion + w.Imprint.Climax + w.Imprint.CompanionBond
	if sum <= 0 {
		return fmt.Errorf("weights: imprint axis weights sum to %v, need > 0", sum)
	}
	for name, t := range w.Types {
		if t.ImprintMultiplier < 0 || t.RealismMultiplier < 0 {
			return fmt.Errorf("weights: type %q has a negative multiplier", name)
		}
	}
	return nil
}

// TypeTuningFor returns the tuning for a session type, defaulting to the
// text profile for unknown types.
func (w *Weights) TypeTuningFor(sessionType string) TypeTuning {
	if t, ok := w.Types[sessionType]; ok {
		return t
	}
	return TypeTuning{ImprintMultiplier: 1.0, RealismMultiplier: 1.0, XPBonus: 0}
}
