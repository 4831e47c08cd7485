package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockfall/internal/storage"
)

var (
	flagLimit       int
	flagScoresOf    string
	flagClearScores bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the best recorded games.

Examples:
  blockfall scores
  blockfall scores --limit 25
  blockfall scores --player ada
  blockfall scores --clear`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().StringVar(&flagScoresOf, "player", "", "Only show this player's games")
	scoresCmd.Flags().BoolVar(&flagClearScores, "clear", false, "Delete all recorded scores")
}

func runScores(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagClearScores {
		if err := store.ClearScores(); err != nil {
			return err
		}
		color.Yellow("All scores deleted.")
		return nil
	}

	var scores []storage.ScoreEntry
	if flagScoresOf != "" {
		scores, err = store.PlayerScores(flagScoresOf, flagLimit)
	} else {
		scores, err = store.TopScores(flagLimit)
	}
	if err != nil {
		return err
	}

	title := color.New(color.FgHiCyan, color.Bold)
	title.Println("High Scores - Blockfall")
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'blockfall play' to set the first high score!")
		return nil
	}

	header := color.New(color.Faint)
	gold := color.New(color.FgHiYellow, color.Bold)

	const row = "  %-4v  %-16v  %6v  %4v  %6v  %7v  %-5v  %v\n"
	header.Printf(row, "Rank", "Player", "Score", "Rows", "Pieces", "Time", "From", "Date")
	for i, e := range scores {
		args := []any{
			i + 1, truncate(e.Player, 16), e.Score, e.Rows, e.Pieces,
			e.Duration.Round(time.Second), e.Source, e.CreatedAt.Format("2006-01-02 15:04"),
		}
		if i == 0 {
			gold.Printf(row, args...)
			continue
		}
		fmt.Printf(row, args...)
	}

	if stats, err := store.Stats(); err == nil && stats.GamesCount > 0 {
		fmt.Println()
		fmt.Printf("Games: %d  Best: %s  Average: %.1f  Rows cleared: %d\n",
			stats.GamesCount, color.GreenString("%d", stats.HighScore), stats.AvgScore, stats.TotalRows)
	}
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "."
}
