// Package layout draws the frame around every screen: the header with the
// brand, screen title and assistant name, the footer with key hints, and
// the scroll window used by long conversations.
package layout

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/abhisek/studybuddy/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24

	// Below this width the study screen hides its learning path sidebar.
	CompactWidthThreshold = 100
)

const brand = "studybuddy"

// KeyHint is one footer entry, e.g. {"Ctrl+E", "Export"}.
type KeyHint struct {
	Key         string
	Description string
}

func IsCompactWidth(width int) bool {
	return width < CompactWidthThreshold
}

func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage centers msg in the whole terminal.
func RenderMinSizeMessage(msg string, width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Render(msg)
}

// RenderHeader draws the brand on the left, the title in the middle and
// status on the right. The title is cut with an ellipsis when the three do
// not fit, since plan topics can be long.
func RenderHeader(title, status string, width int) string {
	inner := width - 4
	if inner < 0 {
		inner = 0
	}

	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  " + brand)
	right := lipgloss.NewStyle().Foreground(theme.Accent).Render(status)
	room := inner - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if room < 0 {
		room = 0
	}
	center := lipgloss.NewStyle().Foreground(theme.Text).Render(ansi.Truncate(title, room, "…"))

	lw, cw, rw := lipgloss.Width(left), lipgloss.Width(center), lipgloss.Width(right)
	leftGap := max((inner-cw)/2-lw, 1)
	rightGap := max(inner-lw-leftGap-cw-rw, 1)

	return bar().Width(width).Render(left + strings.Repeat(" ", leftGap) + center + strings.Repeat(" ", rightGap) + right)
}

// RenderFooter draws the key hints of the active screen.
func RenderFooter(hints []KeyHint, width int) string {
	key := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	desc := lipgloss.NewStyle().Foreground(theme.TextDim)

	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, key.Render(h.Key)+" "+desc.Render(h.Description))
	}
	return bar().Width(width).Render("  " + strings.Join(parts, "   "))
}

func bar() lipgloss.Style {
	return lipgloss.NewStyle().
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)
}

// RenderFrame stacks header, content and footer, giving content whatever
// height is left.
func RenderFrame(header, content, footer string, width, height int) string {
	rest := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().Width(width).Height(rest).Render(content)
	return header + "\n" + body + "\n" + footer
}

// ClampScroll keeps a window of height lines over total lines inside the
// content.
func ClampScroll(offset, total, height int) int {
	return min(max(offset, 0), max(total-height, 0))
}

// Window returns height lines of content starting at offset, padded with
// blank lines when content is short.
func Window(content string, offset, height int) string {
	if height <= 0 {
		return ""
	}
	lines := strings.Split(content, "\n")
	offset = ClampScroll(offset, len(lines), height)
	end := min(offset+height, len(lines))

	out := make([]string, 0, height)
	out = append(out, lines[offset:end]...)
	for len(out) < height {
		out = append(out, "")
	}
	return strings.Join(out, "\n")
}
