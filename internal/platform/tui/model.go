package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the Bubble Tea program on the local terminal. With skipMenu the
// first game begins immediately.
func Run(opts Options, skipMenu bool) error {
	if opts.Source == "" {
		opts.Source = "local"
	}

	model := NewSessionModel(opts)
	if skipMenu {
		model = NewGameSession(opts)
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
