package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/engine"
	"github.com/vovakirdan/blockfall/internal/gravity"
	"github.com/vovakirdan/blockfall/internal/storage"
)

// Options configures the terminal front end.
type Options struct {
	Store   *storage.Store // May be nil; scores are then not persisted
	Config  config.Config
	Runtime core.RuntimeConfig
	Source  string // Recorded with saved scores: "local" or "ssh"
	Logger  *log.Logger
}

// GameModel runs one engine. The engine lives for the whole session so the
// high score carries over between games.
type GameModel struct {
	engine   *engine.Engine
	board    *boardView
	clock    *gravity.Clock
	schedule *gravity.Schedule
	theme    Theme
	screen   *core.Screen
	keys     GameKeyMap
	help     help.Model
	opts     Options

	paused     bool
	startedAt  time.Time
	scoreSaved bool
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a game model and starts the first game.
func NewGameModel(opts Options) GameModel {
	if opts.Runtime.Seed == 0 {
		opts.Runtime.Seed = time.Now().UnixNano()
	}

	board := &boardView{}
	engineOpts := []engine.Option{
		engine.WithSink(board),
		engine.WithSeed(opts.Runtime.Seed),
	}
	if opts.Store != nil {
		if high, err := opts.Store.HighScore(); err == nil {
			engineOpts = append(engineOpts, engine.WithHighScore(high))
		} else if opts.Logger != nil {
			opts.Logger.Warn("could not load high score", "error", err)
		}
	}

	h := help.New()
	h.ShowAll = false

	m := GameModel{
		engine:   engine.New(engineOpts...),
		board:    board,
		clock:    &gravity.Clock{},
		schedule: gravity.NewSchedule(opts.Config.Gravity, opts.Config.Difficulty),
		theme:    NewTheme(opts.Config.Theme),
		screen:   core.NewScreen(opts.Runtime.ScreenW, core.Max(0, opts.Runtime.ScreenH-1)),
		keys:     DefaultGameKeyMap(),
		help:     h,
		opts:     opts,
	}
	m.help.Width = opts.Runtime.ScreenW
	m.startGame()
	return m
}

// Init starts gravity for the first game.
func (m GameModel) Init() tea.Cmd {
	return gravityCmd(m.clock.Current(), m.interval())
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.opts.Runtime.ScreenW = msg.Width
		m.opts.Runtime.ScreenH = msg.Height
		m.screen.Resize(msg.Width, core.Max(0, msg.Height-1))
		m.help.Width = msg.Width
		return m, nil
	case GravityMsg:
		return m.handleGravity(msg)
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	action := m.keys.Action(msg)
	switch action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit

	case core.ActionBack:
		m.clock.Stop()
		m.backToMenu = true
		return m, nil

	case core.ActionStart:
		return m, m.restart()

	case core.ActionRestart:
		if m.engine.Status() == engine.StatusGameOver {
			return m, m.restart()
		}

	case core.ActionPause:
		return m, m.togglePause()
	}

	if action.IsMovement() && !m.paused {
		m.engine.Handle(commandFor(action))
		// A soft drop can lock the last piece.
		m.finishIfOver()
		return m, nil
	}

	return m, nil
}

// handleGravity runs one gravity step if the tick belongs to the live clock
// generation and schedules the next one.
func (m GameModel) handleGravity(msg GravityMsg) (tea.Model, tea.Cmd) {
	if !m.clock.Valid(msg.Token) {
		return m, nil
	}
	m.engine.Tick()
	if m.finishIfOver() {
		return m, nil
	}
	return m, gravityCmd(msg.Token, m.interval())
}

// finishIfOver stops gravity and records the score once the game has ended.
func (m *GameModel) finishIfOver() bool {
	if m.engine.Status() != engine.StatusGameOver {
		return false
	}
	m.clock.Stop()
	m.saveScore()
	return true
}

func (m *GameModel) startGame() {
	m.engine.Start()
	m.paused = false
	m.scoreSaved = false
	m.startedAt = time.Now()
	m.clock.Restart()
}

// NewGame leaves the back-to-menu state and starts over.
func (m *GameModel) NewGame() tea.Cmd {
	m.backToMenu = false
	return m.restart()
}

// restart begins a new game, cancelling any pending gravity tick.
func (m *GameModel) restart() tea.Cmd {
	m.startGame()
	return gravityCmd(m.clock.Current(), m.interval())
}

func (m *GameModel) togglePause() tea.Cmd {
	if m.engine.Status() != engine.StatusRunning {
		return nil
	}
	if m.paused {
		m.paused = false
		return gravityCmd(m.clock.Restart(), m.interval())
	}
	m.paused = true
	m.clock.Stop()
	return nil
}

func (m *GameModel) interval() time.Duration {
	return m.schedule.Interval(m.engine.Score(), m.engine.PiecesLocked())
}

// saveScore persists the finished game once.
func (m *GameModel) saveScore() {
	if m.scoreSaved {
		return
	}
	m.scoreSaved = true

	if m.opts.Store == nil || m.engine.Score() <= 0 {
		return
	}
	entry := storage.ScoreEntry{
		Player:   m.opts.Runtime.Player,
		Score:    m.engine.Score(),
		Rows:     m.engine.RowsCleared(),
		Pieces:   m.engine.PiecesLocked(),
		Duration: time.Since(m.startedAt),
		Source:   m.opts.Source,
	}
	if _, err := m.opts.Store.SaveScore(entry); err != nil && m.opts.Logger != nil {
		m.opts.Logger.Warn("could not save score", "player", entry.Player, "error", err)
	}
}

// saveScreenshot writes the current board as plain text.
func (m *GameModel) saveScreenshot() {
	m.render()

	dir := filepath.Join(os.Getenv("HOME"), ".blockfall", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	filename := fmt.Sprintf("blockfall_%s.txt", time.Now().Format("20060102_150405"))
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

// render draws the board and panel into the screen buffer.
func (m *GameModel) render() {
	m.screen.Clear()

	if m.screen.Width() < layoutW || m.screen.Height() < layoutH {
		m.screen.DrawTextCentered(m.screen.Height()/2, "Terminal too small")
		m.screen.DrawTextCentered(m.screen.Height()/2+1, fmt.Sprintf("need %dx%d", layoutW, layoutH+1))
		return
	}

	area := m.screen.Bounds().CenteredIn(layoutW, layoutH)
	m.board.draw(m.screen, area.X, area.Y, m.theme)

	speed := float64(m.schedule.Base()) / float64(m.interval())
	m.board.drawPanel(m.screen, area.X+boardScreenW+2, area.Y+1, m.theme, panelInfo{
		rows:   m.engine.RowsCleared(),
		pieces: m.engine.PiecesLocked(),
		level:  fmt.Sprintf("x%.1f", speed),
		player: m.opts.Runtime.Player,
		paused: m.paused,
	})
}

// View renders the game.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.render()
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Engine exposes the running engine.
func (m GameModel) Engine() *engine.Engine {
	return m.engine
}

// Paused reports whether gravity is suspended by the player.
func (m GameModel) Paused() bool {
	return m.paused
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}
