package config

import "fmt"

// Profile is a named bundle of difficulty parameters. A profile is fixed for
// the duration of a round; the game only switches profiles between rounds.
type Profile struct {
	Name            string  `yaml:"name"`
	Label           string  `yaml:"label"`
	GapSize         float64 `yaml:"gap_size"`
	HorizontalSpeed float64 `yaml:"horizontal_speed"`  // units per tick
	SpawnIntervalMs float64 `yaml:"spawn_interval_ms"` // elapsed time between spawns
	Gravity         float64 `yaml:"gravity"`           // velocity added per tick
	ImpulseVelocity float64 `yaml:"impulse_velocity"`  // negative = up
}

// Built-in profile names.
const (
	ProfileEasy    = "easy"
	ProfileNormal  = "normal"
	ProfileHard    = "hard"
	ProfileExtreme = "extreme"
)

// Validate checks the profile parameters.
func (p Profile) Validate() error {
	switch {
	case p.Name == "":
		return fmt.Errorf("profile without a name")
	case p.GapSize <= 0:
		return fmt.Errorf("profile %q: gap_size must be positive", p.Name)
	case p.HorizontalSpeed <= 0:
		return fmt.Errorf("profile %q: horizontal_speed must be positive", p.Name)
	case p.SpawnIntervalMs <= 0:
		return fmt.Errorf("profile %q: spawn_interval_ms must be positive", p.Name)
	case p.Gravity <= 0:
		return fmt.Errorf("profile %q: gravity must be positive", p.Name)
	case p.ImpulseVelocity >= 0:
		return fmt.Errorf("profile %q: impulse_velocity must be negative (upward)", p.Name)
	}
	return nil
}

// DisplayName returns the label, falling back to the name.
func (p Profile) DisplayName() string {
	if p.Label != "" {
		return p.Label
	}
	return p.Name
}

// NormalProfile returns the reference tuning.
func NormalProfile() Profile {
	return Profile{
		Name:            ProfileNormal,
		Label:           "Normal",
		GapSize:         150,
		HorizontalSpeed: 2.2,
		SpawnIntervalMs: 1600,
		Gravity:         0.46,
		ImpulseVelocity: -7,
	}
}

// BuiltinProfiles returns the four difficulty tiers, easiest first.
func BuiltinProfiles() []Profile {
	return []Profile{
		{
			Name:            ProfileEasy,
			Label:           "Facile",
			GapSize:         170,
			HorizontalSpeed: 2.0,
			SpawnIntervalMs: 1800,
			Gravity:         0.42,
			ImpulseVelocity: -6.8,
		},
		NormalProfile(),
		{
			Name:            ProfileHard,
			Label:           "Difficile",
			GapSize:         135,
			HorizontalSpeed: 2.6,
			SpawnIntervalMs: 1400,
			Gravity:         0.50,
			ImpulseVelocity: -7.4,
		},
		{
			Name:            ProfileExtreme,
			Label:           "Extrême",
			GapSize:         120,
			HorizontalSpeed: 3.0,
			SpawnIntervalMs: 1200,
			Gravity:         0.55,
			ImpulseVelocity: -7.8,
		},
	}
}
