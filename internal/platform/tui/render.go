package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Theme maps core.Color to lipgloss styles.
type Theme struct {
	Name   string
	styles map[core.Color]lipgloss.Style
}

func fg(c string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
}

// DarkTheme is the neon-on-black look.
func DarkTheme(particle string) Theme {
	if particle == "" {
		particle = "#00ff88"
	}
	return Theme{
		Name: "dark",
		styles: map[core.Color]lipgloss.Style{
			core.ColorDefault:       lipgloss.NewStyle(),
			core.ColorBorder:        fg("#3a3a5c"),
			core.ColorHUD:           fg("#e0e0ff"),
			core.ColorSnakeHead:     fg("#00ffcc").Bold(true),
			core.ColorSnakeBody:     fg("#00b894"),
			core.ColorFood:          fg("#ff3366"),
			core.ColorFoodGlow:      fg("#ff88aa").Bold(true),
			core.ColorParticle:      fg(particle),
			core.ColorParticleFaint: fg(particle).Faint(true),
			core.ColorOverlay:       fg("#e0e0ff"),
			core.ColorAlert:         fg("#ff3366").Bold(true),
		},
	}
}

// LightTheme is a high-contrast look for light terminals.
func LightTheme(particle string) Theme {
	if particle == "" {
		particle = "#00a060"
	}
	return Theme{
		Name: "light",
		styles: map[core.Color]lipgloss.Style{
			core.ColorDefault:       lipgloss.NewStyle(),
			core.ColorBorder:        fg("#8888aa"),
			core.ColorHUD:           fg("#202040"),
			core.ColorSnakeHead:     fg("#006650").Bold(true),
			core.ColorSnakeBody:     fg("#008866"),
			core.ColorFood:          fg("#cc0033"),
			core.ColorFoodGlow:      fg("#ff0044").Bold(true),
			core.ColorParticle:      fg(particle),
			core.ColorParticleFaint: fg(particle).Faint(true),
			core.ColorOverlay:       fg("#202040"),
			core.ColorAlert:         fg("#cc0033").Bold(true),
		},
	}
}

// ThemeByName returns the named theme, falling back to dark.
func ThemeByName(name, particle string) Theme {
	if name == "light" {
		return LightTheme(particle)
	}
	return DarkTheme(particle)
}

// Toggle switches between dark and light.
func (t Theme) Toggle(particle string) Theme {
	if t.Name == "light" {
		return DarkTheme(particle)
	}
	return LightTheme(particle)
}

func (t Theme) style(c core.Color) lipgloss.Style {
	if s, ok := t.styles[c]; ok {
		return s
	}
	return t.styles[core.ColorDefault]
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen, theme Theme) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color for efficiency
		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			sb.WriteString(theme.style(startColor).Render(run.String()))
		}
	}
	return sb.String()
}
