package speech

import (
	"errors"
	"fmt"
)

// ErrSpeech marks failures of the speech engines. Callers recover from it
// silently; it never reaches the learner.
var ErrSpeech = errors.New("speech failed")

func speechErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrSpeech, op, err)
}
