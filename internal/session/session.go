// Package session orchestrates a study session: planning, sub-topic
// explanations, questions, "go deeper" requests, challenges, speech, the
// review quiz and note export.
//
// Every learner action runs on the caller's goroutine (a tea.Cmd in the
// UI). The orchestrator mutex guards the session state and is never held
// across a gateway call. Changes are announced on the Events channel.
package session

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/studybuddy/internal/badges"
	"github.com/abhisek/studybuddy/internal/export"
	"github.com/abhisek/studybuddy/internal/llm"
	"github.com/abhisek/studybuddy/internal/locale"
	"github.com/abhisek/studybuddy/internal/logger"
	"github.com/abhisek/studybuddy/internal/progress"
	"github.com/abhisek/studybuddy/internal/quiz"
	"github.com/abhisek/studybuddy/internal/speech"
	"github.com/abhisek/studybuddy/internal/store"
	"github.com/abhisek/studybuddy/internal/transcript"
)

// SpeechSlot reads one transcript entry aloud at a time.
type SpeechSlot interface {
	Toggle(ctx context.Context, id int64, text string) bool
	Stop()
	Current() int64
}

// NotesExporter writes study notes and returns where they went.
type NotesExporter interface {
	Export(ctx context.Context, notes export.Notes) (string, error)
}

// Options wires the orchestrator's collaborators. Provider and Catalog are
// required; the rest default to no-ops.
type Options struct {
	Provider  llm.Provider
	Snapshots store.SnapshotRepo
	Events    store.EventRepo
	Speech    SpeechSlot
	Exporter  NotesExporter
	Catalog   *locale.Catalog
	Logger    *logger.Logger

	// Rand picks challenge topics. Tests inject a seeded source.
	Rand *rand.Rand

	Config     Config
	QuizConfig quiz.Config
}

// Orchestrator owns the session state.
type Orchestrator struct {
	provider  llm.Provider
	snapshots store.SnapshotRepo
	speech    SpeechSlot
	exporter  NotesExporter
	cat       *locale.Catalog
	log       *logger.Logger
	cfg       Config
	sessionID string
	events    chan Event

	transcript *transcript.Log
	quiz       *quiz.Engine

	mu       sync.Mutex
	profile  store.Profile
	tracker  *progress.Tracker
	badges   *badges.Service
	triggers badges.Triggers
	active   string
	activity Activity
	rng      *rand.Rand

	// epoch increments on every reset; work started in an earlier epoch
	// must not touch the state.
	epoch  uint64
	cancel context.CancelFunc
}

// New creates an orchestrator with an empty session.
func New(opts Options) *Orchestrator {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x5eed))
	}
	cfg := opts.Config
	if cfg.MaxSubTopics == 0 {
		cfg = DefaultConfig()
	}
	qcfg := opts.QuizConfig
	if qcfg.Questions == 0 {
		qcfg = quiz.DefaultConfig()
	}

	sessionID := uuid.New().String()
	o := &Orchestrator{
		provider:   opts.Provider,
		snapshots:  opts.Snapshots,
		speech:     opts.Speech,
		exporter:   opts.Exporter,
		cat:        opts.Catalog,
		log:        log.With("session_id", sessionID),
		cfg:        cfg,
		sessionID:  sessionID,
		events:     make(chan Event, 64),
		transcript: transcript.New(),
		badges:     badges.NewService(opts.Events, log),
		rng:        rng,
	}
	if o.speech == nil {
		o.speech = speech.NewPlayer(nil, log, nil)
	}
	o.quiz = quiz.NewEngine(opts.Provider, qcfg, opts.Catalog, log, func() {
		o.emit(Event{Kind: QuizChanged})
	})
	return o
}

// Events delivers change notifications. Events are dropped rather than
// blocking when the receiver falls behind; every event means "re-read View".
func (o *Orchestrator) Events() <-chan Event {
	return o.events
}

// SessionID identifies this run in the LLM and badge logs.
func (o *Orchestrator) SessionID() string {
	return o.sessionID
}

// Quiz exposes the review quiz for rendering.
func (o *Orchestrator) Quiz() *quiz.Engine {
	return o.quiz
}

func (o *Orchestrator) emit(e Event) {
	select {
	case o.events <- e:
	default:
	}
}

// View returns a copy of the session state.
func (o *Orchestrator) View() View {
	o.mu.Lock()
	defer o.mu.Unlock()

	v := View{
		AssistantName:  o.profile.AssistantName,
		UserName:       o.profile.UserName,
		ActiveSubTopic: o.active,
		Activity:       o.activity,
		Entries:        o.transcript.Entries(),
		Badges:         o.badges.Earned(),
		Speaking:       o.speech.Current(),
	}
	if o.tracker != nil {
		v.Plan = o.tracker.Plan()
		v.Steps = o.tracker.Steps()
		v.Completed = o.tracker.CompletedCount()
		v.AllUnlocked = o.tracker.AllUnlocked()
		v.QuizAvailable = o.quizAvailableLocked()
		v.CanChallenge = o.tracker.CompletedCount() > 0
	}
	return v
}

// SetProfile sets the display names used in prompts and messages and the
// user key of the persisted snapshot.
func (o *Orchestrator) SetProfile(p store.Profile) {
	o.mu.Lock()
	o.profile = p
	o.mu.Unlock()
	o.emit(Event{Kind: StateChanged})
}

// UnlockAll opens every sub-topic. It is one-way until the next reset.
func (o *Orchestrator) UnlockAll(ctx context.Context) error {
	o.mu.Lock()
	if o.tracker == nil {
		o.mu.Unlock()
		return ErrNoPlan
	}
	if o.tracker.AllUnlocked() {
		o.mu.Unlock()
		return nil
	}
	o.tracker.UnlockAll()
	user := o.profile.UserName
	o.saveLocked(ctx)
	o.mu.Unlock()

	o.transcript.Append(transcript.Entry{Role: transcript.RoleSystem, Content: o.cat.T(locale.UnlockedAll, user)})
	o.emit(Event{Kind: TranscriptChanged})
	o.emit(Event{Kind: StateChanged})
	return nil
}

// ReturnToMenu abandons the plan: it cancels any request in flight and
// clears the plan, transcript, progress, badges and quiz, and deletes the
// saved snapshot.
func (o *Orchestrator) ReturnToMenu(ctx context.Context) {
	o.mu.Lock()
	o.resetLocked()
	userKey := o.profile.UserKey()
	o.mu.Unlock()

	o.transcript.Reset()
	o.quiz.Exit()
	o.speech.Stop()
	o.deleteSnapshot(ctx, userKey)

	o.emit(Event{Kind: TranscriptChanged})
	o.emit(Event{Kind: StateChanged})
}

// resetLocked clears the learner state. Callers hold o.mu.
func (o *Orchestrator) resetLocked() {
	if o.cancel != nil {
		o.cancel()
		o.cancel = nil
	}
	o.epoch++
	o.activity = Idle
	o.tracker = nil
	o.active = ""
	o.badges.Reset()
	o.triggers = badges.Triggers{}
}

// begin marks the orchestrator busy with a and returns a context that
// ReturnToMenu cancels. Callers hold o.mu and have checked for Idle.
func (o *Orchestrator) begin(ctx context.Context, a Activity) (context.Context, uint64) {
	o.activity = a
	ctx, cancel := context.WithCancel(ctx)
	o.cancel = cancel
	return llm.WithSessionID(ctx, o.sessionID), o.epoch
}

// end restores Idle unless a reset already started a new epoch.
func (o *Orchestrator) end(epoch uint64) {
	o.mu.Lock()
	if o.epoch == epoch {
		o.activity = Idle
		if o.cancel != nil {
			o.cancel()
			o.cancel = nil
		}
	}
	o.mu.Unlock()
	o.emit(Event{Kind: StateChanged})
}

// stale reports whether a reset happened since epoch.
func (o *Orchestrator) stale(epoch uint64) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.epoch != epoch
}

func (o *Orchestrator) personaLocked() persona {
	return persona{
		Assistant: o.profile.AssistantName,
		User:      o.profile.UserName,
		Language:  o.cat.LanguageName(),
	}
}

func (o *Orchestrator) quizAvailableLocked() bool {
	return o.tracker != nil && (o.tracker.AllComplete() || o.tracker.AllUnlocked())
}

// updateBadgesLocked recomputes badges and returns the newly earned ones.
// Callers hold o.mu.
func (o *Orchestrator) updateBadgesLocked(ctx context.Context) []badges.ID {
	if o.tracker == nil {
		return nil
	}
	p := badges.Progress{Completed: o.tracker.CompletedCount(), Total: o.tracker.Plan().Len()}
	newly := o.badges.Update(ctx, o.sessionID, o.profile.UserKey(), p, o.triggers)
	for _, id := range newly {
		o.log.Info("badge earned", "badge", string(id))
	}
	return newly
}

func (o *Orchestrator) announceBadges(newly []badges.ID) {
	if len(newly) > 0 {
		o.emit(Event{Kind: BadgesEarned, Badges: newly})
	}
}
