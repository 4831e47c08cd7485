package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func mustSave(t *testing.T, store *Store, e ScoreEntry) int64 {
	t.Helper()
	id, err := store.SaveScore(e)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	return id
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsScores(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	mustSave(t, store, ScoreEntry{Player: "ada", Score: 40})
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	high, err := store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 40 {
		t.Errorf("Expected high score 40 after reopen, got %d", high)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, ScoreEntry{Player: "ada", Score: 100, Rows: 10, Pieces: 40, Duration: 90 * time.Second, Source: "ssh"})
	mustSave(t, store, ScoreEntry{Player: "bob", Score: 50, Rows: 5, Pieces: 30})
	mustSave(t, store, ScoreEntry{Player: "ada", Score: 200, Rows: 20, Pieces: 70})

	scores, err := store.TopScores(10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not in expected order: %+v", scores)
	}

	second := scores[1]
	if second.Player != "ada" || second.Rows != 10 || second.Pieces != 40 {
		t.Errorf("Fields not round-tripped: %+v", second)
	}
	if second.Duration != 90*time.Second {
		t.Errorf("Duration = %v, expected 90s", second.Duration)
	}
	if second.Source != "ssh" {
		t.Errorf("Source = %q, expected ssh", second.Source)
	}
	if scores[2].Source != "local" {
		t.Errorf("Default source = %q, expected local", scores[2].Source)
	}
	if second.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set by the database")
	}
}

func TestStoreDefaultsPlayer(t *testing.T) {
	store := openTestStore(t)
	mustSave(t, store, ScoreEntry{Score: 10})

	scores, err := store.TopScores(1)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if scores[0].Player != "anonymous" {
		t.Errorf("Player = %q, expected anonymous", scores[0].Player)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		mustSave(t, store, ScoreEntry{Player: "p", Score: (i + 1) * 100})
	}

	scores, err := store.TopScores(3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Errorf("Expected 3 scores with limit, got %d", len(scores))
	}

	// Should be 500, 400, 300 (top 3)
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}

	// Non-positive limit falls back to 10
	all, err := store.TopScores(0)
	if err != nil {
		t.Fatalf("TopScores(0) failed: %v", err)
	}
	if len(all) != 5 {
		t.Errorf("Expected 5 scores with default limit, got %d", len(all))
	}
}

func TestStoreTiesKeepInsertOrder(t *testing.T) {
	store := openTestStore(t)
	first := mustSave(t, store, ScoreEntry{Player: "first", Score: 30})
	mustSave(t, store, ScoreEntry{Player: "second", Score: 30})

	scores, err := store.TopScores(2)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if scores[0].ID != first {
		t.Errorf("Earlier game should rank first on ties, got %+v", scores[0])
	}
}

func TestStorePlayerScores(t *testing.T) {
	store := openTestStore(t)
	mustSave(t, store, ScoreEntry{Player: "ada", Score: 30})
	mustSave(t, store, ScoreEntry{Player: "bob", Score: 90})
	mustSave(t, store, ScoreEntry{Player: "ada", Score: 60})

	scores, err := store.PlayerScores("ada", 10)
	if err != nil {
		t.Fatalf("PlayerScores() failed: %v", err)
	}
	if len(scores) != 2 {
		t.Fatalf("Expected 2 scores for ada, got %d", len(scores))
	}
	if scores[0].Score != 60 {
		t.Errorf("Expected best score 60, got %d", scores[0].Score)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty store, got %d", high)
	}

	mustSave(t, store, ScoreEntry{Player: "p", Score: 100})
	mustSave(t, store, ScoreEntry{Player: "p", Score: 300})
	mustSave(t, store, ScoreEntry{Player: "p", Score: 200})

	high, err = store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if empty.GamesCount != 0 || empty.HighScore != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Expected zero stats for empty store, got %+v", empty)
	}

	mustSave(t, store, ScoreEntry{Player: "p", Score: 10, Rows: 1})
	mustSave(t, store, ScoreEntry{Player: "p", Score: 30, Rows: 3})

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.GamesCount != 2 {
		t.Errorf("GamesCount = %d, expected 2", stats.GamesCount)
	}
	if stats.HighScore != 30 {
		t.Errorf("HighScore = %d, expected 30", stats.HighScore)
	}
	if stats.AvgScore != 20 {
		t.Errorf("AvgScore = %v, expected 20", stats.AvgScore)
	}
	if stats.TotalRows != 4 {
		t.Errorf("TotalRows = %d, expected 4", stats.TotalRows)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	mustSave(t, store, ScoreEntry{Player: "p", Score: 100})
	mustSave(t, store, ScoreEntry{Player: "p", Score: 200})

	if err := store.ClearScores(); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	scores, err := store.TopScores(10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	store, err := Open("~/.blockfall/scores.db")
	if err != nil {
		t.Fatalf("Open() with ~ path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(filepath.Join(home, ".blockfall", "scores.db")); err != nil {
		t.Errorf("Database not created under HOME: %v", err)
	}
}
