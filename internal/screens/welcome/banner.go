package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studybuddy/internal/ui/theme"
)

const bannerArt = `
 ___ _____ _   _ ___ __   __ ___ _   _ ___  ___ __   __
/ __|_   _| | | |   \\ \ / /| _ ) | | |   \|   \\ \ / /
\__ \ | | | |_| | |) |\ V / | _ \ |_| | |) | |) |\ V /
|___/ |_|  \___/|___/  |_|  |___/\___/|___/|___/  |_|`

const bannerCompact = "S T U D Y B U D D Y"

// RenderBanner returns the banner styled in the primary color, or the
// compact form on terminals narrower than 60 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 60 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
