package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/osa030/recoform/internal/app/render"
)

var (
	colorAccent  = lipgloss.Color("#1DB954")
	colorMuted   = lipgloss.Color("241")
	colorError   = lipgloss.Color("#FF5F5F")
	colorSpinner = lipgloss.Color("205")

	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	labelStyle    = lipgloss.NewStyle().Width(18)
	focusedStyle  = lipgloss.NewStyle().Width(18).Bold(true).Foreground(colorAccent)
	mutedStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	rowStyle      = lipgloss.NewStyle().PaddingLeft(18)
	selectedStyle = lipgloss.NewStyle().PaddingLeft(18).Bold(true).Foreground(colorAccent)
	errorStyle    = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	buttonStyle   = lipgloss.NewStyle().Padding(0, 2).Background(colorMuted)
	activeButton  = lipgloss.NewStyle().Padding(0, 2).Background(colorAccent).Bold(true)
	badgeStyle    = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	cardStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorMuted).Padding(0, 1)
)

// RenderCards renders recommendation cards, one per line group, in order.
func RenderCards(cards []render.Card, width int) string {
	if width <= 0 {
		width = 60
	}
	style := cardStyle.Width(width - 2)

	var b strings.Builder
	for _, c := range cards {
		lines := []string{
			fmt.Sprintf("🎵 #%d  %s", c.Rank, badgeStyle.Render(c.Badge)),
			lipgloss.NewStyle().Bold(true).Render(c.TrackName),
			c.TrackArtist,
		}
		if c.Details != "" {
			lines = append(lines, mutedStyle.Render(c.Details))
		}
		b.WriteString(style.Render(strings.Join(lines, "\n")))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderError renders the error message.
func RenderError(message string) string {
	return errorStyle.Render("✗ " + message)
}

// RenderDisplay renders whichever of the result list and error message is visible.
func RenderDisplay(d render.Display, width int) string {
	switch {
	case d.ShowsError():
		return RenderError(d.Error) + "\n"
	case d.ShowsResults():
		return titleStyle.Render("Your recommendations") + "\n" + RenderCards(d.Cards, width)
	default:
		return ""
	}
}
