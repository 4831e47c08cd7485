// blockfall is a falling-block puzzle game for the terminal, SSH and the
// browser.
//
// Usage:
//
//	blockfall play            - Play in this terminal
//	blockfall serve           - Serve games over SSH and/or websockets
//	blockfall scores          - Show high scores
//	blockfall config          - Print the effective configuration
//
// Global flags:
//
//	--config <path>       - Config YAML (default: search order, then built-in)
//	--db <path>           - Scores database (default from config)
//	--seed <value>        - RNG seed for reproducible piece order
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-level <level>   - debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/config"
)

var (
	// Global flags
	flagConfig     string
	flagDBPath     string
	flagSeed       int64
	flagDifficulty string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blockfall",
	Short: "Blockfall - falling blocks in your terminal",
	Long: `Blockfall is a falling-block puzzle on a 10x15 board. Steer and rotate
the falling piece, fill rows to clear them and score 10 points per row.
The game ends when a new piece has no room to appear.

Available commands:
  play     - Play in this terminal
  serve    - Serve games over SSH and/or websockets
  scores   - View high scores
  config   - Print the effective configuration

Examples:
  blockfall play
  blockfall play --difficulty hard
  blockfall serve --web :8080
  blockfall scores --limit 20`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database (overrides config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig resolves the configuration and applies the global flags.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	if flagDifficulty != "" {
		if err := config.ApplyPreset(&cfg, config.DifficultyPreset(flagDifficulty)); err != nil {
			return cfg, err
		}
	}
	if flagDBPath != "" {
		cfg.Storage.Path = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
