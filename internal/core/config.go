package core

import "time"

// DefaultGravity is the time between gravity steps when nothing overrides it.
const DefaultGravity = time.Second

// RuntimeConfig contains the per-session settings handed to the terminal
// adapter.
type RuntimeConfig struct {
	ScreenW int    // Screen width in characters
	ScreenH int    // Screen height in characters
	Seed    int64  // RNG seed for deterministic piece order
	Player  string // Name recorded with saved scores
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
		Seed:    0, // 0 means use current time in platform layer
		Player:  "player",
	}
}
