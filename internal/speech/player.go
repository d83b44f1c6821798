package speech

import (
	"context"
	"errors"
	"sync"

	"github.com/abhisek/studybuddy/internal/logger"
)

// Player is the single speech slot. At most one entry speaks at a time and
// starting a new one cancels the previous.
type Player struct {
	synth  Synthesizer
	log    *logger.Logger
	notify func()

	mu      sync.Mutex
	current int64
	cancel  context.CancelFunc
	// seq identifies the active playback so a finished earlier playback
	// cannot clear a newer one.
	seq uint64
}

// NewPlayer creates a player. A nil synth makes every Toggle a no-op.
// notify, if non-nil, is called when the speaking entry changes on its own.
func NewPlayer(synth Synthesizer, log *logger.Logger, notify func()) *Player {
	if log == nil {
		log = logger.Nop()
	}
	if notify == nil {
		notify = func() {}
	}
	return &Player{synth: synth, log: log, notify: notify}
}

// Enabled reports whether a synthesizer is configured.
func (p *Player) Enabled() bool {
	return p.synth != nil
}

// Toggle stops id if it is speaking. Otherwise it stops any other speech
// and starts speaking text for id. It reports whether id is now speaking.
func (p *Player) Toggle(ctx context.Context, id int64, text string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.current == id && p.current != 0 {
		p.stopLocked()
		return false
	}
	p.stopLocked()
	if p.synth == nil || text == "" {
		return false
	}

	ctx, cancel := context.WithCancel(ctx)
	p.seq++
	seq := p.seq
	p.current = id
	p.cancel = cancel

	go func() {
		defer cancel()
		err := p.synth.Speak(ctx, PlainText(text))
		if err != nil && !errors.Is(err, context.Canceled) {
			p.log.Debug("speech stopped", "entry", id, "error", err)
		}

		p.mu.Lock()
		if p.seq != seq {
			p.mu.Unlock()
			return
		}
		p.current = 0
		p.cancel = nil
		p.mu.Unlock()
		p.notify()
	}()
	return true
}

// Stop cancels any speech in progress.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
}

// Current returns the entry being spoken, or 0.
func (p *Player) Current() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

func (p *Player) stopLocked() {
	if p.cancel != nil {
		p.cancel()
	}
	p.seq++
	p.current = 0
	p.cancel = nil
}
