// Package tui provides the Bubble Tea front end for blockfall. It renders
// the board in a terminal, maps keys to engine commands and drives gravity,
// locally or over SSH.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blockfall/internal/gravity"
)

// GravityMsg is sent when a gravity step is due. Token ties it to the
// clock generation that scheduled it.
type GravityMsg struct {
	Token gravity.Token
	At    time.Time
}

// gravityCmd schedules one gravity step after interval.
func gravityCmd(tok gravity.Token, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return GravityMsg{Token: tok, At: t}
	})
}
