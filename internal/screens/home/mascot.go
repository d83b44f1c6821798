package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studybuddy/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle     MascotVariant = iota
	MascotThinking               // a plan is being prepared
	MascotAlert                  // the last plan request failed
)

const mascotIdle = `┌─────┐
│ ◉ ◉ │
│  ▽  │
│ ≡≡≡ │
└─────┘`

const mascotThinking = `┌─────┐ ?
│ ◔ ◔ │
│  ~  │
│ ≡≡≡ │
└─────┘`

const mascotAlert = `┌─────┐
│ ◉ ◉ │ !
│  △  │
│ ≡≡≡ │
└─────┘`

// RenderMascot returns the mascot art for the given variant.
func RenderMascot(v MascotVariant) string {
	art := mascotIdle
	fg := theme.Primary

	switch v {
	case MascotThinking:
		art = mascotThinking
		fg = theme.Secondary
	case MascotAlert:
		art = mascotAlert
		fg = theme.Accent
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}
