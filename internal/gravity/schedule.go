package gravity

import (
	"time"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
)

// Schedule derives the gravity period for the current game.
type Schedule struct {
	base       time.Duration
	floor      time.Duration
	difficulty *config.DifficultyManager
}

// NewSchedule builds a schedule from the gravity and difficulty settings.
// A non-positive base falls back to core.DefaultGravity.
func NewSchedule(g config.GravityConfig, d config.DifficultyConfig) *Schedule {
	base := g.Interval()
	if base <= 0 {
		base = core.DefaultGravity
	}
	floor := g.MinInterval()
	if floor <= 0 || floor > base {
		floor = base
	}
	return &Schedule{
		base:       base,
		floor:      floor,
		difficulty: config.NewDifficultyManager(d),
	}
}

// Fixed returns a schedule that always yields d.
func Fixed(d time.Duration) *Schedule {
	return NewSchedule(
		config.GravityConfig{IntervalMs: int(d / time.Millisecond), MinIntervalMs: int(d / time.Millisecond)},
		config.DifficultyConfig{},
	)
}

// Interval returns the period to use given the current score and the
// number of pieces locked.
func (s *Schedule) Interval(score, pieces int) time.Duration {
	return s.difficulty.Interval(s.base, s.floor, score, pieces)
}

// Base returns the starting period.
func (s *Schedule) Base() time.Duration {
	return s.base
}
