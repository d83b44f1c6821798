package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studybuddy/internal/ui/theme"
)

// ContentWidth returns the inner width used for centered cards.
func ContentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 72 {
		w = 72
	}
	if w < 20 {
		w = 20
	}
	return w
}

// Card wraps content in a rounded-border card at the given content width.
func Card(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw - 2).
		Padding(1, 2).
		Render(content)
}

// Notice renders a one-line status message. Errors use the error color.
func Notice(text string, isErr bool) string {
	if text == "" {
		return ""
	}
	c := theme.Secondary
	if isErr {
		c = theme.Error
	}
	return lipgloss.NewStyle().Foreground(c).Italic(true).Render(text)
}
