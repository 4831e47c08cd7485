package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

type screenKind int

const (
	screenMenu screenKind = iota
	screenGame
	screenScores
)

// SessionModel manages the full session flow: menu -> game or scores -> menu.
// It is the top-level model for both local play and SSH sessions.
type SessionModel struct {
	opts       Options
	screen     screenKind
	menu       MenuModel
	scoreboard ScoreboardModel
	gameModel  *GameModel
	quitting   bool
}

// NewSessionModel creates a new session model showing the title menu.
func NewSessionModel(opts Options) SessionModel {
	m := SessionModel{opts: opts}
	m.menu = NewMenuModel(opts.Runtime.ScreenW, opts.Runtime.ScreenH, m.highScore(), opts.Runtime.Player)
	return m
}

// NewGameSession creates a session that skips the title menu and starts
// playing right away. Leaving the game still lands on the menu.
func NewGameSession(opts Options) SessionModel {
	m := NewSessionModel(opts)
	gm := NewGameModel(opts)
	m.gameModel = &gm
	m.screen = screenGame
	return m
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	if m.screen == screenGame {
		return m.gameModel.Init()
	}
	return m.menu.Init()
}

// Update routes messages to the active screen.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.opts.Runtime.ScreenW = wsm.Width
		m.opts.Runtime.ScreenH = wsm.Height
		// The game keeps its own screen buffer; resize it even while hidden.
		if m.gameModel != nil && m.screen != screenGame {
			updated, _ := m.gameModel.Update(msg)
			if gm, ok := updated.(GameModel); ok {
				m.gameModel = &gm
			}
		}
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.menu.Selected() {
	case ChoiceStart:
		m.screen = screenGame
		if m.gameModel == nil {
			gm := NewGameModel(m.opts)
			m.gameModel = &gm
			return m, m.gameModel.Init()
		}
		return m, m.gameModel.NewGame()

	case ChoiceScores:
		m.screen = screenScores
		m.scoreboard = NewScoreboardModel(m.opts.Store, m.opts.Runtime.Player, m.opts.Runtime.ScreenW, m.opts.Runtime.ScreenH)
		return m, m.scoreboard.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.gameModel = &gameModel
	}

	if m.gameModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.gameModel.BackToMenu() {
		return m.toMenu()
	}

	return m, cmd
}

// updateScores handles updates when the scoreboard is shown.
func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.scoreboard.Update(msg)
	if sb, ok := newModel.(ScoreboardModel); ok {
		m.scoreboard = sb
	}

	if m.scoreboard.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.scoreboard.IsGoingBack() {
		return m.toMenu()
	}

	return m, cmd
}

func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.screen = screenMenu
	m.menu = NewMenuModel(m.opts.Runtime.ScreenW, m.opts.Runtime.ScreenH, m.highScore(), m.opts.Runtime.Player)
	return m, m.menu.Init()
}

// highScore prefers the live engine, which already includes the stored best.
func (m SessionModel) highScore() int {
	if m.gameModel != nil {
		return m.gameModel.Engine().HighScore()
	}
	if m.opts.Store != nil {
		if high, err := m.opts.Store.HighScore(); err == nil {
			return high
		}
	}
	return 0
}

// View renders the active screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.gameModel.View()
	case screenScores:
		return m.scoreboard.View()
	default:
		return m.menu.View()
	}
}

// InGame reports whether a board is on screen.
func (m SessionModel) InGame() bool {
	return m.screen == screenGame
}
