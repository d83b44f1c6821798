package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/studybuddy/internal/ui/theme"
)

var choiceLabels = []string{"A", "B", "C", "D"}

// Choices renders the options of a multiple-choice question. Before an
// answer exists the cursor is highlighted; afterwards the correct option is
// green and a wrong pick red, and the cursor is hidden.
type Choices struct {
	Options []string
	Correct int

	// Chosen is the picked option, or -1.
	Chosen int
	Cursor int
}

// Answered reports whether an option has been picked.
func (c Choices) Answered() bool {
	return c.Chosen >= 0
}

// View renders one line per option.
func (c Choices) View() string {
	var b strings.Builder
	for i, opt := range c.Options {
		label := fmt.Sprint(i + 1)
		if i < len(choiceLabels) {
			label = choiceLabels[i]
		}
		prefix := "  "
		if !c.Answered() && i == c.Cursor {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, label, opt)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case c.Answered() && i == c.Correct:
			style = theme.Correct
			line += "  ✓"
		case c.Answered() && i == c.Chosen:
			style = theme.Incorrect
			line += "  ✗"
		case c.Answered():
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == c.Cursor:
			style = theme.Selected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
