package quiz

import "errors"

var (
	// ErrQuizUnavailable is returned when no usable quiz could be generated.
	ErrQuizUnavailable = errors.New("quiz unavailable")

	ErrAlreadyAnswered = errors.New("question already answered")
	ErrNotFinishable   = errors.New("quiz cannot be finished yet")
	ErrNotInProgress   = errors.New("no quiz in progress")
	ErrNotFinished     = errors.New("quiz is not finished")
	ErrActive          = errors.New("a quiz is already active")
	ErrOutOfRange      = errors.New("question or option out of range")
)
