package session

import "errors"

// Validation errors are returned before any gateway call or transcript
// change.
var (
	ErrEmptyInput       = errors.New("input is empty")
	ErrLocked           = errors.New("sub-topic is locked")
	ErrBusy             = errors.New("another request is in progress")
	ErrNoPlan           = errors.New("no study plan")
	ErrNoActiveTopic    = errors.New("no active sub-topic")
	ErrNothingCompleted = errors.New("no completed sub-topics")
	ErrNothingToExport  = errors.New("nothing to export")
	ErrQuizLocked       = errors.New("review quiz is not available yet")
	ErrUnknownEntry     = errors.New("transcript entry cannot be expanded")
	ErrUnknownDeeper    = errors.New("unknown deeper-learning kind")
)

// ErrImage marks a failed illustration. It is logged and never surfaced.
var ErrImage = errors.New("illustration failed")

var errEmptyContent = errors.New("empty content")
