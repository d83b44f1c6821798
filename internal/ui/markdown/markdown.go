// Package markdown renders assistant replies for the terminal with glamour.
package markdown

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"

	"github.com/abhisek/studybuddy/internal/ui/theme"
)

// Renderer caches one glamour renderer per width and palette. Rendered
// output is cached by source text, so unchanged entries are not
// re-rendered on every frame.
type Renderer struct {
	mu    sync.Mutex
	width int
	style string
	term  *glamour.TermRenderer
	cache map[string]string
}

// NewRenderer returns an empty renderer.
func NewRenderer() *Renderer {
	return &Renderer{cache: make(map[string]string)}
}

// Render converts md to styled terminal text wrapped at width. When
// glamour fails the source is returned unchanged.
func (r *Renderer) Render(md string, width int) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	style := theme.Current()
	if r.term == nil || r.width != width || r.style != style {
		term, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(max(width, 20)),
		)
		if err != nil {
			return md
		}
		r.term, r.width, r.style = term, width, style
		clear(r.cache)
	}

	if out, ok := r.cache[md]; ok {
		return out
	}
	out, err := r.term.Render(md)
	if err != nil {
		return md
	}
	out = strings.Trim(out, "\n")
	r.cache[md] = out
	return out
}
