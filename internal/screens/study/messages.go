package study

import "time"

// action names a learner action whose result arrives asynchronously.
type action int

const (
	actSelect action = iota
	actAsk
	actDeeper
	actChallenge
	actUnlock
	actExport
	actSpeak
)

// actionDoneMsg is sent when an orchestrator call returns.
type actionDoneMsg struct {
	Action action
	Path   string
	Err    error
}

// quizStartedMsg is sent when quiz generation finishes.
type quizStartedMsg struct {
	Err error
}

// voiceDoneMsg carries the transcript of a voice question.
type voiceDoneMsg struct {
	Text string
	Err  error
}

// spinnerTickMsg animates the busy indicator.
type spinnerTickMsg time.Time
