package tui

import (
	"fmt"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/engine"
)

// Board geometry on screen, border included.
const (
	boardScreenW = engine.Width*cellWidth + 2
	boardScreenH = engine.Height + 2
	panelW       = 18
	layoutW      = boardScreenW + 2 + panelW
	layoutH      = boardScreenH
)

// boardView mirrors what the engine reports through its sink and draws it.
type boardView struct {
	cells  [engine.CellCount]engine.Kind
	score  int
	high   int
	status engine.Status
}

var _ engine.Sink = (*boardView)(nil)

func (b *boardView) CellsChanged(changes []engine.CellChange) {
	for _, c := range changes {
		if engine.ValidIndex(c.Index) {
			b.cells[c.Index] = c.Kind
		}
	}
}

func (b *boardView) ScoreChanged(score, highScore int) {
	b.score = score
	b.high = highScore
}

func (b *boardView) StatusChanged(status engine.Status) {
	b.status = status
}

// draw paints the bordered grid with its top-left corner at (x, y).
func (b *boardView) draw(s *core.Screen, x, y int, th Theme) {
	s.DrawBox(core.NewRect(x, y, boardScreenW, boardScreenH), th.Border)

	for i, k := range b.cells {
		cx := x + 1 + engine.ColOf(i)*cellWidth
		cy := y + 1 + engine.RowOf(i)
		if k == engine.KindNone {
			s.DrawTextColor(cx, cy, th.Empty, core.ColorGray)
			continue
		}
		s.DrawTextColor(cx, cy, th.Block, th.ColorOf(k))
	}
}

// panelInfo is the side panel content that does not come from the sink.
type panelInfo struct {
	rows   int
	pieces int
	level  string
	player string
	paused bool
}

// drawPanel paints score, counters and status text at (x, y).
func (b *boardView) drawPanel(s *core.Screen, x, y int, th Theme, info panelInfo) {
	lines := []struct {
		label, value string
	}{
		{"PLAYER", info.player},
		{"SCORE", fmt.Sprintf("%d", b.score)},
		{"HIGH", fmt.Sprintf("%d", b.high)},
		{"ROWS", fmt.Sprintf("%d", info.rows)},
		{"PIECES", fmt.Sprintf("%d", info.pieces)},
		{"SPEED", info.level},
	}

	row := y
	for _, l := range lines {
		s.DrawTextColor(x, row, l.label, core.ColorGray)
		s.DrawTextColor(x+8, row, truncate(l.value, panelW-8), th.Text)
		row += 2
	}

	row++
	switch {
	case b.status == engine.StatusGameOver:
		s.DrawTextColor(x, row, "GAME OVER", core.ColorBrightRed)
		s.DrawTextColor(x, row+1, "r: restart", core.ColorGray)
	case info.paused:
		s.DrawTextColor(x, row, "PAUSED", core.ColorBrightYellow)
		s.DrawTextColor(x, row+1, "p: resume", core.ColorGray)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "."
}
