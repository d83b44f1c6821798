package speech

import (
	"context"
	"errors"
	"testing"
)

type fakeSource struct {
	audio []byte
	err   error
}

func (f *fakeSource) Record(ctx context.Context) ([]byte, error) {
	<-ctx.Done()
	return f.audio, f.err
}

type fakeSTT struct {
	got []byte
}

func (f *fakeSTT) Transcribe(_ context.Context, audio []byte) (string, error) {
	f.got = audio
	return "what is osmosis", nil
}

func TestListenerRoundTrip(t *testing.T) {
	stt := &fakeSTT{}
	l := NewListener(&fakeSource{audio: []byte{1, 2, 3, 4}}, stt)

	if l.Active() {
		t.Fatal("listener should start idle")
	}
	l.Start(context.Background())
	l.Start(context.Background())
	if !l.Active() {
		t.Fatal("listener should be active after Start")
	}

	text, err := l.Stop(context.Background())
	if err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if text != "what is osmosis" || len(stt.got) != 4 {
		t.Fatalf("text = %q, audio = %v", text, stt.got)
	}
	if l.Active() {
		t.Fatal("listener should be idle after Stop")
	}

	if _, err := l.Stop(context.Background()); !errors.Is(err, ErrNotListening) {
		t.Fatalf("expected ErrNotListening, got %v", err)
	}
}

func TestListenerRecordError(t *testing.T) {
	recErr := speechErr("record", errors.New("device busy"))
	l := NewListener(&fakeSource{err: recErr}, &fakeSTT{})
	l.Start(context.Background())

	if _, err := l.Stop(context.Background()); !errors.Is(err, ErrSpeech) {
		t.Fatalf("expected ErrSpeech, got %v", err)
	}
}

func TestNewListenerRequiresBothParts(t *testing.T) {
	if NewListener(nil, &fakeSTT{}) != nil || NewListener(&fakeSource{}, nil) != nil {
		t.Fatal("missing collaborators should disable voice input")
	}
	var l *Listener
	if l.Active() {
		t.Fatal("nil listener is never active")
	}
}

func TestNewRecorder(t *testing.T) {
	if NewRecorder("", 0) != nil {
		t.Fatal("blank command should disable recording")
	}
	r := NewRecorder(DefaultRecordCommand, 0)
	if r.Command != "arecord" || r.SampleRate != 16000 {
		t.Fatalf("parsed %+v", r)
	}
}
