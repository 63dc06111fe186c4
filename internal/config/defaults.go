package config

import (
	_ "embed"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultLabels are the product names printed on obstacle panels.
var DefaultLabels = []string{
	"PUB TV 3H",
	"LIVE TIKTOK",
	"BUTTER STICK",
	"SAFETY COFFIN",
	"CASQUE ANTI-ODEURS",
	"COUSSIN CONNECTÉ",
	"RÉVEIL BOMBE",
	"LUNETTES ESPION",
}

// DefaultFlappyConfig returns the hard-coded configuration. It mirrors the
// embedded YAML and is used when that cannot be parsed.
func DefaultFlappyConfig() FlappyConfig {
	labels := make([]string, len(DefaultLabels))
	copy(labels, DefaultLabels)

	return FlappyConfig{
		Field: FieldConfig{
			Width:  360,
			Height: 640,
		},
		Character: CharacterConfig{
			X:      90,
			Radius: 16,
		},
		Obstacles: ObstacleConfig{
			Width:        70,
			MinGapTop:    60,
			BottomMargin: 100,
		},
		Round: RoundConfig{
			CountdownMs: 3200,
			Backgrounds: 3,
		},
		DefaultProfile: ProfileNormal,
		Profiles:       BuiltinProfiles(),
		Labels:         labels,
	}
}

// DefaultYAML returns the embedded default YAML, e.g. for `flappy profiles --dump`.
func DefaultYAML() []byte {
	return defaultFlappyYAML
}
