package session

import (
	"github.com/abhisek/studybuddy/internal/badges"
	"github.com/abhisek/studybuddy/internal/progress"
	"github.com/abhisek/studybuddy/internal/transcript"
)

// Activity is what the orchestrator is doing. Anything but Idle means busy.
type Activity int

const (
	Idle Activity = iota
	Planning
	Explaining
	Answering
	Deepening
	Challenging
)

func (a Activity) String() string {
	switch a {
	case Planning:
		return "planning"
	case Explaining:
		return "explaining"
	case Answering:
		return "answering"
	case Deepening:
		return "deepening"
	case Challenging:
		return "challenging"
	default:
		return "idle"
	}
}

// DeeperKind selects a "go deeper" variant of an earlier reply.
type DeeperKind string

const (
	Summarize DeeperKind = "summarize"
	Analogy   DeeperKind = "analogy"
	Example   DeeperKind = "example"
)

// EventKind tells the UI what changed.
type EventKind int

const (
	TranscriptChanged EventKind = iota
	StateChanged
	BadgesEarned
	QuizChanged
	SpeechChanged
)

// Event is a change notification. Receivers re-read the state with View.
type Event struct {
	Kind EventKind

	// Badges lists newly earned badges for BadgesEarned.
	Badges []badges.ID
}

// View is a read-only copy of the session state.
type View struct {
	AssistantName string
	UserName      string

	// Plan is the zero Plan when no plan exists.
	Plan  progress.Plan
	Steps []progress.Step

	Completed      int
	AllUnlocked    bool
	ActiveSubTopic string
	Activity       Activity

	Entries []transcript.Entry
	Badges  badges.Set

	// Speaking is the entry being read aloud, 0 for none.
	Speaking int64

	QuizAvailable bool
	CanChallenge  bool
}

// HasPlan reports whether a plan exists.
func (v View) HasPlan() bool {
	return !v.Plan.IsZero()
}

// Busy reports whether a request is in flight.
func (v View) Busy() bool {
	return v.Activity != Idle
}
