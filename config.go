package tinsel

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Config bounds. Out-of-range values are clamped at the boundary by
// Config.Clamp, never rejected.
const (
	MinParticleBudget = 5000
	MaxParticleBudget = 80000

	minExplosionRadius = 5.0
	maxExplosionRadius = 120.0

	minRotationSpeed = 0.0
	maxRotationSpeed = 2.0

	minSnowDensity = 0.0
	maxSnowDensity = 1.0

	minSnowSpeed = 0.5
	maxSnowSpeed = 12.0

	minWindStrength = 0.0
	maxWindStrength = 5.0

	minPhotoScale = 0.5
	maxPhotoScale = 8.0
)

// Config holds every tunable the experience exposes. All fields are bounded;
// call Clamp after construction or decoding. Consumers may assume a clamped
// Config is valid and never re-validate.
type Config struct {
	// ParticleBudget is the total particle count for one generation.
	// Clamped to a floor so the decorative groups never starve.
	ParticleBudget int `yaml:"particleBudget"`
	// ExplosionRadius is the thickness of the exploded-pose shell band,
	// in world units beyond the shell floor.
	ExplosionRadius float64 `yaml:"explosionRadius"`
	// TreeColor is the base foliage color as a hex string ("#34d399").
	TreeColor string `yaml:"treeColor"`
	// RotationSpeed is the idle spin rate in radians per second.
	RotationSpeed float64 `yaml:"rotationSpeed"`
	// SnowDensity scales the snowflake pool, 0 (none) to 1 (full).
	SnowDensity float64 `yaml:"snowDensity"`
	// SnowSpeed is the base fall speed in world units per second.
	SnowSpeed float64 `yaml:"snowSpeed"`
	// WindStrength is the lateral drift applied to snow.
	WindStrength float64 `yaml:"windStrength"`
	// PhotoScale is the displayed size of a photo card at full scale.
	PhotoScale float64 `yaml:"photoScale"`
	// ActiveCardCenters selects the opened-card tilt mode: true re-centers
	// the card, false freezes it at its hover tilt.
	ActiveCardCenters bool `yaml:"activeCardCenters"`
}

// DefaultConfig returns the tuning used when nothing is persisted.
func DefaultConfig() Config {
	return Config{
		ParticleBudget:  18000,
		ExplosionRadius: 30,
		TreeColor:       "#2e8b57",
		RotationSpeed:   0.25,
		SnowDensity:     0.6,
		SnowSpeed:       3.0,
		WindStrength:    0.8,
		PhotoScale:      3.2,
	}
}

// Clamp silently limits every field to its documented bounds and replaces an
// unparseable TreeColor with the default. Never fails.
func (c *Config) Clamp() {
	c.ParticleBudget = clampInt(c.ParticleBudget, MinParticleBudget, MaxParticleBudget)
	c.ExplosionRadius = clamp(c.ExplosionRadius, minExplosionRadius, maxExplosionRadius)
	c.RotationSpeed = clamp(c.RotationSpeed, minRotationSpeed, maxRotationSpeed)
	c.SnowDensity = clamp(c.SnowDensity, minSnowDensity, maxSnowDensity)
	c.SnowSpeed = clamp(c.SnowSpeed, minSnowSpeed, maxSnowSpeed)
	c.WindStrength = clamp(c.WindStrength, minWindStrength, maxWindStrength)
	c.PhotoScale = clamp(c.PhotoScale, minPhotoScale, maxPhotoScale)
	if _, err := ParseHexColor(c.TreeColor); err != nil {
		c.TreeColor = DefaultConfig().TreeColor
	}
}

// ParseConfig decodes YAML into a Config, starting from defaults so that
// absent fields keep their default values, and clamps the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parse config: %w", err)
	}
	cfg.Clamp()
	return cfg, nil
}

// Encode serializes the Config as YAML.
func (c Config) Encode() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return data, nil
}

// regenerates reports whether switching from old to new requires a full
// particle field regeneration (budget or foliage color changed).
func regenerates(old, new Config) bool {
	return old.ParticleBudget != new.ParticleBudget || old.TreeColor != new.TreeColor
}
