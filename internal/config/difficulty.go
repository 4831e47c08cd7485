package config

import (
	"math"
	"time"
)

// DifficultyManager calculates the gravity period from score or locked
// pieces.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != ProgressionNone
}

// Level returns the current difficulty level (0.0 to 1.0) based on score or
// locked pieces, whichever the progression type tracks.
func (d *DifficultyManager) Level(score, pieces int) float64 {
	if !d.IsEnabled() {
		if d.cfg.Enabled {
			return d.initialLevel
		}
		return 0
	}

	var progress float64
	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	switch d.cfg.Progression.Type {
	case ProgressionScore:
		progress = float64(score) / maxAt
	case ProgressionPieces:
		progress = float64(pieces) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// Speed returns the fall speed multiplier, from 1 up to 1 + speed_multiplier.
func (d *DifficultyManager) Speed(score, pieces int) float64 {
	return 1.0 + d.Level(score, pieces)*d.cfg.Scaling.SpeedMultiplier
}

// Interval scales base down by the current speed, never going below floor.
func (d *DifficultyManager) Interval(base, floor time.Duration, score, pieces int) time.Duration {
	speed := d.Speed(score, pieces)
	if speed <= 0 {
		return base
	}
	interval := time.Duration(float64(base) / speed)
	if interval < floor {
		return floor
	}
	return interval
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
