package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/blockfall/internal/core"
)

// ErrInvalid is returned when a loaded configuration fails validation.
var ErrInvalid = errors.New("config: invalid")

// LocalPath is the project-local config file checked after the user file.
const LocalPath = "configs/blockfall.yaml"

// Load loads the blockfall configuration. Files are decoded on top of the
// embedded defaults, so a file only needs the keys it changes.
// Search order: customPath -> ~/.blockfall/config.yaml -> ./configs/blockfall.yaml -> embedded default
func Load(customPath string) (Config, error) {
	cfg := embedded()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	for _, path := range []string{userConfigPath(), LocalPath} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		candidate := embedded()
		if err := yaml.Unmarshal(data, &candidate); err == nil {
			return candidate, candidate.Validate()
		}
	}

	return cfg, cfg.Validate()
}

// embedded returns the embedded defaults, falling back to the hardcoded ones.
func embedded() Config {
	cfg := Default()
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return Default()
	}
	return cfg
}

func userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".blockfall", "config.yaml")
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}

// Marshal renders cfg as YAML.
func Marshal(cfg Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: marshal: %w", err)
	}
	return data, nil
}

// ApplyPreset modifies the config based on a difficulty preset. The empty
// preset leaves cfg untouched.
func ApplyPreset(cfg *Config, preset DifficultyPreset) error {
	if !ValidPreset(string(preset)) {
		return fmt.Errorf("%w: unknown difficulty preset %q", ErrInvalid, preset)
	}
	switch {
	case preset == "":
		return nil
	case IsFixedPreset(preset):
		cfg.Difficulty.Enabled = false
	default:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
		if cfg.Difficulty.Progression.Type == ProgressionNone || cfg.Difficulty.Progression.Type == "" {
			cfg.Difficulty.Progression.Type = ProgressionScore
		}
	}
	return nil
}

// Validate reports every problem found in cfg, wrapped in ErrInvalid.
func (c Config) Validate() error {
	var problems []string

	if c.Gravity.IntervalMs <= 0 {
		problems = append(problems, "gravity.interval_ms must be positive")
	}
	if c.Gravity.MinIntervalMs <= 0 {
		problems = append(problems, "gravity.min_interval_ms must be positive")
	} else if c.Gravity.MinIntervalMs > c.Gravity.IntervalMs {
		problems = append(problems, "gravity.min_interval_ms must not exceed interval_ms")
	}

	switch c.Difficulty.Progression.Type {
	case ProgressionScore, ProgressionPieces, ProgressionNone:
	default:
		problems = append(problems, fmt.Sprintf("difficulty.progression.type %q is not score, pieces or none", c.Difficulty.Progression.Type))
	}
	if c.Difficulty.InitialLevel < 0 || c.Difficulty.InitialLevel > 1 {
		problems = append(problems, "difficulty.initial_level must be within [0, 1]")
	}
	if c.Difficulty.Scaling.SpeedMultiplier < 0 {
		problems = append(problems, "difficulty.scaling.speed_multiplier must not be negative")
	}

	for tag, name := range c.Theme.Pieces {
		if _, ok := core.ParseColor(name); !ok {
			problems = append(problems, fmt.Sprintf("theme.pieces.%s: unknown color %q", tag, name))
		}
	}
	for field, name := range map[string]string{"border": c.Theme.Border, "text": c.Theme.Text} {
		if name == "" {
			continue
		}
		if _, ok := core.ParseColor(name); !ok {
			problems = append(problems, fmt.Sprintf("theme.%s: unknown color %q", field, name))
		}
	}

	if c.Web.MaxSessions < 0 {
		problems = append(problems, "web.max_sessions must not be negative")
	}
	if c.SSH.IdleTimeoutMinutes < 0 {
		problems = append(problems, "ssh.idle_timeout_minutes must not be negative")
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		problems = append(problems, fmt.Sprintf("log.level %q is not debug, info, warn or error", c.Log.Level))
	}

	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(problems, "; "))
}
