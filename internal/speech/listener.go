package speech

import (
	"context"
	"errors"
	"sync"
)

// AudioSource records audio until its context is cancelled.
type AudioSource interface {
	Record(ctx context.Context) ([]byte, error)
}

// ErrNotListening is returned by Stop when no recording is running.
var ErrNotListening = errors.New("not listening")

// Listener drives voice input: Start begins recording, Stop ends it and
// returns the transcript.
type Listener struct {
	source AudioSource
	stt    Transcriber

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan recording
}

type recording struct {
	audio []byte
	err   error
}

// NewListener returns nil when either collaborator is missing, so callers
// can treat a nil Listener as "voice input unavailable".
func NewListener(source AudioSource, stt Transcriber) *Listener {
	if source == nil || stt == nil {
		return nil
	}
	return &Listener{source: source, stt: stt}
}

// Active reports whether a recording is running.
func (l *Listener) Active() bool {
	if l == nil {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.cancel != nil
}

// Start begins recording. Starting while already recording is a no-op.
func (l *Listener) Start(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan recording, 1)
	l.cancel, l.done = cancel, done

	go func() {
		audio, err := l.source.Record(ctx)
		done <- recording{audio: audio, err: err}
	}()
}

// Stop ends the recording and transcribes it.
func (l *Listener) Stop(ctx context.Context) (string, error) {
	l.mu.Lock()
	cancel, done := l.cancel, l.done
	l.cancel, l.done = nil, nil
	l.mu.Unlock()

	if cancel == nil {
		return "", ErrNotListening
	}
	cancel()

	var rec recording
	select {
	case rec = <-done:
	case <-ctx.Done():
		return "", ctx.Err()
	}
	if rec.err != nil {
		return "", rec.err
	}
	return l.stt.Transcribe(ctx, rec.audio)
}
