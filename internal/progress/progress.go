// Package progress tracks which sub-topics of a study plan are completed and
// which are open for study.
//
// Sub-topic i is selectable when everything is unlocked, when it is the
// first one, or when sub-topic i-1 is completed. Selectability is computed
// on every read and never stored.
package progress

import "fmt"

// Tracker holds the completion state for one plan. It is not safe for
// concurrent use; the session serializes access.
type Tracker struct {
	plan        Plan
	completed   map[string]bool
	allUnlocked bool
}

// NewTracker starts tracking plan with nothing completed.
func NewTracker(plan Plan) *Tracker {
	return &Tracker{plan: plan, completed: make(map[string]bool)}
}

// Plan returns the tracked plan.
func (t *Tracker) Plan() Plan {
	return t.plan
}

// Selectable reports whether sub-topic i may be studied.
func (t *Tracker) Selectable(i int) bool {
	if i < 0 || i >= t.plan.Len() {
		return false
	}
	return t.allUnlocked || i == 0 || t.completed[t.plan.At(i-1)]
}

// SelectableByName reports whether the named sub-topic may be studied.
func (t *Tracker) SelectableByName(name string) bool {
	return t.Selectable(t.plan.Index(name))
}

// MarkComplete records name as completed. Completing a topic twice is a no-op.
func (t *Tracker) MarkComplete(name string) error {
	if t.plan.Index(name) < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownSubTopic, name)
	}
	t.completed[name] = true
	return nil
}

// IsCompleted reports whether name has been completed.
func (t *Tracker) IsCompleted(name string) bool {
	return t.completed[name]
}

// UnlockAll opens every sub-topic. It cannot be undone except by Reset.
func (t *Tracker) UnlockAll() {
	t.allUnlocked = true
}

// AllUnlocked reports whether UnlockAll was called.
func (t *Tracker) AllUnlocked() bool {
	return t.allUnlocked
}

// CompletedCount returns the number of completed sub-topics.
func (t *Tracker) CompletedCount() int {
	return len(t.completed)
}

// Completed returns the completed sub-topics in plan order.
func (t *Tracker) Completed() []string {
	var out []string
	for _, s := range t.plan.subTopics {
		if t.completed[s] {
			out = append(out, s)
		}
	}
	return out
}

// AllComplete reports whether every sub-topic is completed.
func (t *Tracker) AllComplete() bool {
	return t.plan.Len() > 0 && len(t.completed) == t.plan.Len()
}

// Ratio returns completed / total, or 0 for an empty plan.
func (t *Tracker) Ratio() float64 {
	if t.plan.Len() == 0 {
		return 0
	}
	return float64(len(t.completed)) / float64(t.plan.Len())
}

// Reset clears completion and the unlock flag.
func (t *Tracker) Reset() {
	t.completed = make(map[string]bool)
	t.allUnlocked = false
}

// Restore loads persisted state. Names that are not in the plan are ignored.
func (t *Tracker) Restore(completed []string, allUnlocked bool) {
	t.Reset()
	for _, name := range completed {
		if t.plan.Index(name) >= 0 {
			t.completed[name] = true
		}
	}
	t.allUnlocked = allUnlocked
}

// Step is the per-sub-topic view used by the plan screen.
type Step struct {
	Index     int
	Name      string
	Completed bool
	Unlocked  bool

	// Next marks the first unlocked step that is not yet completed.
	Next bool
}

// Steps returns one Step per sub-topic in plan order.
func (t *Tracker) Steps() []Step {
	steps := make([]Step, t.plan.Len())
	nextSet := false
	for i, name := range t.plan.subTopics {
		s := Step{
			Index:     i,
			Name:      name,
			Completed: t.completed[name],
			Unlocked:  t.Selectable(i),
		}
		if !nextSet && s.Unlocked && !s.Completed {
			s.Next = true
			nextSet = true
		}
		steps[i] = s
	}
	return steps
}
