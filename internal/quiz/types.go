// Package quiz runs the end-of-plan review quiz: generation, answering,
// per-mistake remediation and the closing corrections summary.
package quiz

// Phase is the lifecycle stage of a quiz.
type Phase int

const (
	Inactive Phase = iota
	InProgress
	Finished
)

func (p Phase) String() string {
	switch p {
	case InProgress:
		return "in_progress"
	case Finished:
		return "finished"
	default:
		return "inactive"
	}
}

// Question is one multiple-choice item with exactly four options.
type Question struct {
	Text    string
	Options []string
	Correct int
}

// TaskState is the state of a remediation task.
type TaskState int

const (
	NotStarted TaskState = iota
	Pending
	Done
	Failed
)

// Task is the remediation for one wrongly answered question. Text holds
// the explanation when Done and the failure message when Failed.
type Task struct {
	State TaskState
	Text  string
}

// Result is the outcome of a finished quiz.
type Result struct {
	Total   int
	Correct int
	Perfect bool
}

// View is a read-only copy of the quiz state for rendering.
type View struct {
	Phase     Phase
	Questions []Question
	// Answers[i] is the chosen option, or -1 while unanswered.
	Answers []int
	Current int
	Tasks   map[int]Task

	Result         Result
	Summary        string
	SummaryPending bool
}

// Answered reports whether question i has an answer.
func (v View) Answered(i int) bool {
	return i >= 0 && i < len(v.Answers) && v.Answers[i] >= 0
}

// IsLast reports whether the current question is the last one.
func (v View) IsLast() bool {
	return len(v.Questions) > 0 && v.Current == len(v.Questions)-1
}
