package components

import "github.com/abhisek/studybuddy/internal/ui/theme"

// Button renders a screen action. Screens handle the key that triggers
// it, so the button only reflects whether the action is available.
type Button struct {
	Label  string
	Active bool
}

func NewButton(label string, active bool) Button {
	return Button{Label: label, Active: active}
}

// View renders the button.
func (b Button) View() string {
	if b.Active {
		return theme.ButtonActive.Render("▸ " + b.Label)
	}
	return theme.ButtonInactive.Render(b.Label)
}
