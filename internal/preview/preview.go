// Package preview draws a grid in the terminal the way the board would show it.
package preview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/1set/vestaboard"
)

var tileColors = map[vestaboard.Code]lipgloss.Color{
	vestaboard.Red:    lipgloss.Color("#DA291C"),
	vestaboard.Orange: lipgloss.Color("#FF7500"),
	vestaboard.Yellow: lipgloss.Color("#FFB81C"),
	vestaboard.Green:  lipgloss.Color("#009A44"),
	vestaboard.Blue:   lipgloss.Color("#0084D5"),
	vestaboard.Violet: lipgloss.Color("#702F8A"),
	vestaboard.White:  lipgloss.Color("#FFFFFF"),
	vestaboard.Black:  lipgloss.Color("#000000"),
}

var (
	flapStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F5F5F5")).Background(lipgloss.Color("#1A1A1A"))
	boardStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#555555"))
)

// Render returns the grid inside a border, one terminal cell per flap.
// Color tiles become colored blanks so every row stays 22 cells wide.
func Render(g vestaboard.Grid) string {
	rows := make([]string, vestaboard.Rows)
	for i, line := range g {
		rows[i] = renderLine(line)
	}
	return boardStyle.Render(strings.Join(rows, "\n"))
}

func renderLine(line vestaboard.Line) string {
	b := strings.Builder{}
	for _, c := range line {
		b.WriteString(renderFlap(c))
	}
	return b.String()
}

func renderFlap(c vestaboard.Code) string {
	if color, ok := tileColors[c]; ok {
		return lipgloss.NewStyle().Background(color).Render(" ")
	}
	glyph, err := vestaboard.Decode(c)
	if err != nil {
		glyph = "?"
	}
	return flapStyle.Render(glyph)
}
