// Package config provides YAML-based game configuration loading and the
// named difficulty profiles for the game.
package config

import (
	"errors"
	"fmt"
)

// FlappyConfig contains all configuration for the game.
type FlappyConfig struct {
	Field          FieldConfig     `yaml:"field"`
	Character      CharacterConfig `yaml:"character"`
	Obstacles      ObstacleConfig  `yaml:"obstacles"`
	Round          RoundConfig     `yaml:"round"`
	DefaultProfile string          `yaml:"default_profile"`
	Profiles       []Profile       `yaml:"profiles"`
	Labels         []string        `yaml:"labels"`
}

// FieldConfig defines the play field in simulation units (pixels of a 9:16 canvas).
type FieldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// CharacterConfig defines the fixed horizontal position and hitbox of the character.
type CharacterConfig struct {
	X      float64 `yaml:"x"`
	Radius float64 `yaml:"radius"`
}

// ObstacleConfig defines obstacle geometry shared by every profile.
type ObstacleConfig struct {
	Width        float64 `yaml:"width"`
	MinGapTop    float64 `yaml:"min_gap_top"`
	BottomMargin float64 `yaml:"bottom_margin"`
}

// RoundConfig defines per-round timing and presentation choices.
type RoundConfig struct {
	CountdownMs float64 `yaml:"countdown_ms"`
	Backgrounds int     `yaml:"backgrounds"`
}

// Validate checks that the configuration describes a playable game.
func (c FlappyConfig) Validate() error {
	var errs []error

	if c.Field.Width <= 0 || c.Field.Height <= 0 {
		errs = append(errs, fmt.Errorf("field must have positive size, got %gx%g", c.Field.Width, c.Field.Height))
	}
	if c.Character.Radius <= 0 {
		errs = append(errs, fmt.Errorf("character radius must be positive, got %g", c.Character.Radius))
	}
	if c.Obstacles.Width <= 0 {
		errs = append(errs, fmt.Errorf("obstacle width must be positive, got %g", c.Obstacles.Width))
	}
	if c.Round.CountdownMs < 0 {
		errs = append(errs, fmt.Errorf("countdown must not be negative, got %g", c.Round.CountdownMs))
	}
	if len(c.Labels) == 0 {
		errs = append(errs, errors.New("at least one obstacle label is required"))
	}
	if len(c.Profiles) == 0 {
		errs = append(errs, errors.New("at least one profile is required"))
	}

	seen := make(map[string]bool, len(c.Profiles))
	for _, p := range c.Profiles {
		if err := p.Validate(); err != nil {
			errs = append(errs, err)
		}
		if seen[p.Name] {
			errs = append(errs, fmt.Errorf("duplicate profile %q", p.Name))
		}
		seen[p.Name] = true
	}
	if c.DefaultProfile != "" && !seen[c.DefaultProfile] {
		errs = append(errs, fmt.Errorf("default profile %q is not defined", c.DefaultProfile))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// Profile returns the named profile from this configuration.
func (c FlappyConfig) Profile(name string) (Profile, bool) {
	for _, p := range c.Profiles {
		if p.Name == name {
			return p, true
		}
	}
	return Profile{}, false
}

// ProfileAt returns the profile in the given slot (0-based, in file order).
func (c FlappyConfig) ProfileAt(index int) (Profile, bool) {
	if index < 0 || index >= len(c.Profiles) {
		return Profile{}, false
	}
	return c.Profiles[index], true
}

// StartProfile returns the profile a new session starts with: the requested
// name when it exists, otherwise the configured default, otherwise the first.
func (c FlappyConfig) StartProfile(requested string) Profile {
	if p, ok := c.Profile(requested); ok {
		return p
	}
	if p, ok := c.Profile(c.DefaultProfile); ok {
		return p
	}
	if len(c.Profiles) > 0 {
		return c.Profiles[0]
	}
	return NormalProfile()
}
