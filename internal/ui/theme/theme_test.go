package theme

import "testing"

func TestUseAndToggle(t *testing.T) {
	t.Cleanup(func() { Use(Dark.Name) })

	Use("light")
	if Current() != "light" {
		t.Fatalf("Current() = %q, want light", Current())
	}
	if Text != Light.Text {
		t.Fatalf("Text color not switched to the light palette")
	}

	if got := Toggle(); got != "dark" {
		t.Fatalf("Toggle() = %q, want dark", got)
	}
	if Text != Dark.Text {
		t.Fatalf("Text color not switched back to the dark palette")
	}

	Use("neon")
	if Current() != "dark" {
		t.Fatalf("unknown palette should fall back to dark, got %q", Current())
	}
}
