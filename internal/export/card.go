package export

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/fogleman/gg"
)

const (
	cardWidth  = 480
	cardHeight = 96
)

var (
	cardBackground = color.RGBA{0x1e, 0x1e, 0x2e, 0xff}
	cardTrack      = color.RGBA{0x45, 0x47, 0x5a, 0xff}
	cardFill       = color.RGBA{0xa6, 0xe3, 0xa1, 0xff}
	cardBadge      = color.RGBA{0xf9, 0xe2, 0xaf, 0xff}
)

// ProgressCard draws a PNG summarizing completion and earned badges.
func ProgressCard(p Progress) ([]byte, error) {
	dc := gg.NewContext(cardWidth, cardHeight)

	dc.SetColor(cardBackground)
	dc.DrawRoundedRectangle(0, 0, cardWidth, cardHeight, 12)
	dc.Fill()

	ratio := 0.0
	if p.Total > 0 {
		ratio = float64(p.Completed) / float64(p.Total)
	}

	const barX, barY, barW, barH = 24.0, 24.0, 432.0, 16.0
	dc.SetColor(cardTrack)
	dc.DrawRoundedRectangle(barX, barY, barW, barH, barH/2)
	dc.Fill()
	if ratio > 0 {
		dc.SetColor(cardFill)
		dc.DrawRoundedRectangle(barX, barY, barW*ratio, barH, barH/2)
		dc.Fill()
	}

	dc.SetColor(color.White)
	dc.DrawString(fmt.Sprintf("%d / %d  (%d%%)", p.Completed, p.Total, int(ratio*100+0.5)), barX, 68)

	dc.SetColor(cardBadge)
	for i := 0; i < p.Badges; i++ {
		dc.DrawCircle(cardWidth-32-float64(i)*24, 64, 8)
		dc.Fill()
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode progress card: %w", err)
	}
	return buf.Bytes(), nil
}
