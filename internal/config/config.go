// Package config provides YAML-based configuration loading and difficulty
// management for blockfall.
package config

import "time"

// Config is the complete blockfall configuration.
type Config struct {
	Gravity    GravityConfig    `yaml:"gravity"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Theme      ThemeConfig      `yaml:"theme"`
	Storage    StorageConfig    `yaml:"storage"`
	SSH        SSHConfig        `yaml:"ssh"`
	Web        WebConfig        `yaml:"web"`
	Log        LogConfig        `yaml:"log"`
}

// GravityConfig controls how fast the active piece falls.
type GravityConfig struct {
	IntervalMs    int `yaml:"interval_ms"`     // Base time between gravity steps
	MinIntervalMs int `yaml:"min_interval_ms"` // Floor when difficulty speeds things up
}

// Interval returns the base gravity period.
func (g GravityConfig) Interval() time.Duration {
	return time.Duration(g.IntervalMs) * time.Millisecond
}

// MinInterval returns the shortest allowed gravity period.
func (g GravityConfig) MinInterval() time.Duration {
	return time.Duration(g.MinIntervalMs) * time.Millisecond
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases during a game.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "pieces", or "none"
	MaxAt int    `yaml:"max_at"` // Score/pieces at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to fall speed at max difficulty
}

// Progression types.
const (
	ProgressionScore  = "score"
	ProgressionPieces = "pieces"
	ProgressionNone   = "none"
)

// ThemeConfig maps piece tags and board chrome to color names
// (see core.ParseColor).
type ThemeConfig struct {
	Pieces map[string]string `yaml:"pieces"` // "I", "O", ... -> color name
	Border string            `yaml:"border"`
	Text   string            `yaml:"text"`
	Block  string            `yaml:"block"` // Glyph drawn for one cell, e.g. "[]"
}

// StorageConfig locates the scores database.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// SSHConfig configures the SSH game server.
type SSHConfig struct {
	Enabled            bool   `yaml:"enabled"`
	Address            string `yaml:"address"`
	HostKeyPath        string `yaml:"host_key_path"`
	IdleTimeoutMinutes int    `yaml:"idle_timeout_minutes"`
}

// IdleTimeout returns the idle timeout as a duration.
func (s SSHConfig) IdleTimeout() time.Duration {
	return time.Duration(s.IdleTimeoutMinutes) * time.Minute
}

// WebConfig configures the websocket server for browser clients.
type WebConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Address     string `yaml:"address"`
	MaxSessions int    `yaml:"max_sessions"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ValidPreset reports whether name is a known preset. The empty string is
// accepted and means "leave the config alone".
func ValidPreset(name string) bool {
	switch DifficultyPreset(name) {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return true
	default:
		return false
	}
}
