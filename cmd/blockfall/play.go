package main

import (
	"fmt"
	"os"
	"os/user"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/logging"
	"github.com/vovakirdan/blockfall/internal/platform/tui"
	"github.com/vovakirdan/blockfall/internal/storage"
)

var (
	flagPlayer   string
	flagSkipMenu bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a game in the current terminal.

Controls:
  Left/Right, h/l, a/d  - Move
  Down, j/s             - Drop one row
  Up, Space, k/w        - Rotate clockwise
  P                     - Pause
  N                     - New game
  R                     - Restart (after game over)
  Esc/B                 - Back to menu
  Q/Ctrl+C              - Quit

Difficulty options:
  easy   - Start slow, speed up as you score
  normal - Start a little faster, speed up as you score
  hard   - Start fast, speed up as you score
  fixed  - Constant speed from the config's gravity interval

Examples:
  blockfall play
  blockfall play --now
  blockfall play --difficulty hard
  blockfall play --seed 42 --player ada`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagPlayer, "player", "", "Name recorded with your scores (default: OS user)")
	playCmd.Flags().BoolVar(&flagSkipMenu, "now", false, "Skip the title menu and start playing")
}

func runPlay(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := logging.New("blockfall", cfg.Log.Level)

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	runtime := core.RuntimeConfig{
		ScreenW: width,
		ScreenH: height,
		Seed:    flagSeed,
		Player:  playerName(),
	}

	// Open score storage
	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		// Continue without storage - game still works
		logger.Warn("could not open scores database", "error", err)
		store = nil
	}

	runErr := tui.Run(tui.Options{
		Store:   store,
		Config:  cfg,
		Runtime: runtime,
		Source:  "local",
		Logger:  logger,
	}, flagSkipMenu)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		return fmt.Errorf("running game: %w", runErr)
	}
	return nil
}

func playerName() string {
	if flagPlayer != "" {
		return flagPlayer
	}
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return core.DefaultConfig().Player
}
