package layout

import (
	"strings"
	"testing"
)

func TestClampScroll(t *testing.T) {
	tests := []struct {
		name                  string
		offset, total, height int
		want                  int
	}{
		{"fits", 3, 5, 10, 0},
		{"negative", -2, 20, 5, 0},
		{"past end", 40, 20, 5, 15},
		{"inside", 7, 20, 5, 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampScroll(tt.offset, tt.total, tt.height); got != tt.want {
				t.Fatalf("ClampScroll(%d, %d, %d) = %d, want %d", tt.offset, tt.total, tt.height, got, tt.want)
			}
		})
	}
}

func TestWindow(t *testing.T) {
	content := "a\nb\nc\nd\ne"

	if got := Window(content, 1, 2); got != "b\nc" {
		t.Fatalf("Window = %q, want %q", got, "b\nc")
	}
	if got := Window(content, 99, 2); got != "d\ne" {
		t.Fatalf("Window past end = %q, want %q", got, "d\ne")
	}
	got := Window("x", 0, 3)
	if strings.Count(got, "\n") != 2 {
		t.Fatalf("short content should be padded to height, got %q", got)
	}
}

func TestRenderHeaderShowsBrandAndStatus(t *testing.T) {
	h := RenderHeader("Plan", "Your AI Assistant: Bilge", 100)
	for _, want := range []string{"studybuddy", "Plan", "Bilge"} {
		if !strings.Contains(h, want) {
			t.Fatalf("header missing %q:\n%s", want, h)
		}
	}
}

func TestRenderHeaderTruncatesLongTitle(t *testing.T) {
	title := strings.Repeat("Photosynthesis ", 20)
	h := RenderHeader(title, "Your AI Assistant: Bilge", 90)
	if !strings.Contains(h, "…") {
		t.Fatalf("long title should be cut with an ellipsis:\n%s", h)
	}
	if !strings.Contains(h, "Bilge") {
		t.Fatalf("status dropped by long title:\n%s", h)
	}
}

func TestRenderMinSizeMessage(t *testing.T) {
	out := RenderMinSizeMessage("Terminal too small", 40, 10)
	if !strings.Contains(out, "Terminal too small") {
		t.Fatalf("message missing:\n%s", out)
	}
}
