package speech

import (
	"context"
	"errors"
	"os/exec"
	"sync"
	"testing"
	"time"
)

// fakeSynth blocks each Speak until released or cancelled.
type fakeSynth struct {
	mu      sync.Mutex
	spoken  []string
	release chan struct{}
	err     error
}

func newFakeSynth() *fakeSynth {
	return &fakeSynth{release: make(chan struct{})}
}

func (f *fakeSynth) Speak(ctx context.Context, text string) error {
	f.mu.Lock()
	f.spoken = append(f.spoken, text)
	f.mu.Unlock()
	select {
	case <-f.release:
		return f.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestPlayerToggle(t *testing.T) {
	synth := newFakeSynth()
	p := NewPlayer(synth, nil, nil)

	if !p.Toggle(context.Background(), 7, "**Cells** are small") {
		t.Fatal("expected entry 7 to start speaking")
	}
	if p.Current() != 7 {
		t.Fatalf("current = %d", p.Current())
	}

	// Toggling another entry replaces the speaker.
	if !p.Toggle(context.Background(), 9, "next") {
		t.Fatal("expected entry 9 to start speaking")
	}
	if p.Current() != 9 {
		t.Fatalf("current = %d, want 9", p.Current())
	}

	// Toggling the speaking entry stops it.
	if p.Toggle(context.Background(), 9, "next") {
		t.Fatal("toggle on the speaking entry should stop it")
	}
	if p.Current() != 0 {
		t.Fatalf("current = %d, want 0", p.Current())
	}

	waitFor(t, func() bool {
		synth.mu.Lock()
		defer synth.mu.Unlock()
		return len(synth.spoken) == 2
	})
	if synth.spoken[0] != "Cells are small" {
		t.Fatalf("markdown not stripped: %q", synth.spoken[0])
	}
}

func TestPlayerClearsSlotOnNaturalEnd(t *testing.T) {
	synth := newFakeSynth()
	notified := make(chan struct{}, 1)
	p := NewPlayer(synth, nil, func() { notified <- struct{}{} })

	p.Toggle(context.Background(), 3, "hello")
	close(synth.release)

	select {
	case <-notified:
	case <-time.After(5 * time.Second):
		t.Fatal("no notification after playback ended")
	}
	if p.Current() != 0 {
		t.Fatalf("current = %d after natural end", p.Current())
	}
}

func TestPlayerClearsSlotOnError(t *testing.T) {
	synth := newFakeSynth()
	synth.err = errors.New("no audio device")
	close(synth.release)
	p := NewPlayer(synth, nil, nil)

	p.Toggle(context.Background(), 4, "hello")
	waitFor(t, func() bool { return p.Current() == 0 })
}

func TestPlayerWithoutSynth(t *testing.T) {
	p := NewPlayer(nil, nil, nil)
	if p.Enabled() {
		t.Fatal("player without synth should be disabled")
	}
	if p.Toggle(context.Background(), 1, "x") || p.Current() != 0 {
		t.Fatal("disabled player should never speak")
	}
}

func TestPlainText(t *testing.T) {
	got := PlainText("## Title\n\n- **Bold** item\n- *italic* `code`")
	if got != "Title Bold item italic code" {
		t.Fatalf("PlainText = %q", got)
	}
}

func TestCommandSynthesizer(t *testing.T) {
	if NewCommandSynthesizer("   ") != nil {
		t.Fatal("blank command should disable TTS")
	}
	s := NewCommandSynthesizer("espeak-ng -v tr")
	if s.Command != "espeak-ng" || len(s.Args) != 2 || s.Args[1] != "tr" {
		t.Fatalf("parsed %+v", s)
	}

	if _, err := exec.LookPath("cat"); err != nil {
		t.Skip("cat not available")
	}
	if err := NewCommandSynthesizer("cat").Speak(context.Background(), "hello"); err != nil {
		t.Fatalf("Speak: %v", err)
	}
	err := NewCommandSynthesizer("definitely-not-a-tts-binary").Speak(context.Background(), "x")
	if !errors.Is(err, ErrSpeech) {
		t.Fatalf("expected ErrSpeech, got %v", err)
	}
}
