package config

import (
	_ "embed"
)

//go:embed defaults/blockfall.yaml
var defaultYAML []byte

// Default returns the built-in configuration. It mirrors
// defaults/blockfall.yaml and is used when the embedded file cannot be parsed.
func Default() Config {
	return Config{
		Gravity: GravityConfig{
			IntervalMs:    1000,
			MinIntervalMs: 150,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  ProgressionNone,
				MaxAt: 300,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 3.0,
			},
		},
		Theme: ThemeConfig{
			Pieces: map[string]string{
				"I": "cyan",
				"O": "yellow",
				"T": "magenta",
				"S": "green",
				"Z": "red",
				"J": "blue",
				"L": "orange",
			},
			Border: "gray",
			Text:   "white",
			Block:  "[]",
		},
		Storage: StorageConfig{
			Path: "~/.blockfall/scores.db",
		},
		SSH: SSHConfig{
			Enabled:            true,
			Address:            ":23234",
			IdleTimeoutMinutes: 30,
		},
		Web: WebConfig{
			Enabled:     false,
			Address:     ":8080",
			MaxSessions: 64,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
