package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/engine"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:       lipgloss.NewStyle(),
	core.ColorRed:           lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:         lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:        lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:          lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:       lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:          lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:         lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBrightGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBrightYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBrightBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorBrightMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorBrightCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorBrightWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorOrange:        lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:          lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// Theme resolves board colors and the cell glyph.
type Theme struct {
	Pieces map[engine.Kind]core.Color
	Border core.Color
	Text   core.Color
	Block  string // Exactly cellWidth runes
	Empty  string
}

const cellWidth = 2

// NewTheme builds a theme from config, filling gaps with defaults.
func NewTheme(cfg config.ThemeConfig) Theme {
	th := defaultTheme()
	for tag, name := range cfg.Pieces {
		k, ok := engine.ParseKind(tag)
		if !ok {
			continue
		}
		if c, ok := core.ParseColor(name); ok {
			th.Pieces[k] = c
		}
	}
	if c, ok := core.ParseColor(cfg.Border); ok && cfg.Border != "" {
		th.Border = c
	}
	if c, ok := core.ParseColor(cfg.Text); ok && cfg.Text != "" {
		th.Text = c
	}
	if len([]rune(cfg.Block)) == cellWidth {
		th.Block = cfg.Block
	}
	return th
}

func defaultTheme() Theme {
	return Theme{
		Pieces: map[engine.Kind]core.Color{
			engine.KindI: core.ColorCyan,
			engine.KindO: core.ColorYellow,
			engine.KindT: core.ColorMagenta,
			engine.KindS: core.ColorGreen,
			engine.KindZ: core.ColorRed,
			engine.KindJ: core.ColorBlue,
			engine.KindL: core.ColorOrange,
		},
		Border: core.ColorGray,
		Text:   core.ColorWhite,
		Block:  "[]",
		Empty:  " .",
	}
}

// ColorOf returns the color for a piece kind.
func (th Theme) ColorOf(k engine.Kind) core.Color {
	if c, ok := th.Pieces[k]; ok {
		return c
	}
	return core.ColorDefault
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Adjacent cells with the same color share one style run.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			runColor := s.GetCell(x, y).Color

			var run strings.Builder
			for ; x < s.Width(); x++ {
				cell := s.GetCell(x, y)
				if cell.Color != runColor {
					break
				}
				run.WriteRune(cell.Rune)
			}

			style, ok := colorStyles[runColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
