package session

import (
	"context"

	"github.com/abhisek/studybuddy/internal/llm"
	"github.com/abhisek/studybuddy/internal/locale"
	"github.com/abhisek/studybuddy/internal/quiz"
	"github.com/abhisek/studybuddy/internal/transcript"
)

// StartQuiz generates the review quiz. It is available once every
// sub-topic is complete or all were unlocked. The quiz runs beside the
// conversation and does not make the orchestrator busy.
func (o *Orchestrator) StartQuiz(ctx context.Context) error {
	o.mu.Lock()
	if o.tracker == nil {
		o.mu.Unlock()
		return ErrNoPlan
	}
	if !o.quizAvailableLocked() {
		o.mu.Unlock()
		return ErrQuizLocked
	}
	plan := o.tracker.Plan()
	user := o.profile.UserName
	epoch := o.epoch
	o.mu.Unlock()

	o.speech.Stop()
	err := o.quiz.Start(llm.WithSessionID(ctx, o.sessionID), plan, user)
	if o.stale(epoch) {
		o.quiz.Exit()
		return context.Canceled
	}
	if err != nil {
		o.transcript.Append(transcript.Entry{Role: transcript.RoleSystem, Content: o.cat.T(locale.QuizFailed)})
		o.emit(Event{Kind: TranscriptChanged})
		return err
	}
	o.emit(Event{Kind: QuizChanged})
	return nil
}

// SelectAnswer records the learner's answer to question i. A wrong answer
// starts its remediation note in the background.
func (o *Orchestrator) SelectAnswer(i, option int) error {
	if _, err := o.quiz.SelectAnswer(i, option); err != nil {
		return err
	}
	o.emit(Event{Kind: QuizChanged})
	return nil
}

// NavigateQuiz moves between questions. Moving backwards is allowed.
func (o *Orchestrator) NavigateQuiz(delta int) bool {
	moved := o.quiz.Navigate(delta)
	if moved {
		o.emit(Event{Kind: QuizChanged})
	}
	return moved
}

// FinishQuiz scores the quiz and writes the corrections summary. A perfect
// score earns its badge before the summary request goes out.
func (o *Orchestrator) FinishQuiz(ctx context.Context) (quiz.Result, error) {
	o.speech.Stop()
	ctx = llm.WithSessionID(ctx, o.sessionID)

	res, err := o.quiz.Finish(ctx, func(r quiz.Result) {
		if !r.Perfect {
			return
		}
		o.mu.Lock()
		o.triggers.QuizPerfect = true
		newly := o.updateBadgesLocked(ctx)
		o.saveLocked(ctx)
		o.mu.Unlock()
		o.announceBadges(newly)
	})
	if err != nil {
		return res, err
	}
	o.emit(Event{Kind: QuizChanged})
	return res, nil
}

// ExitQuiz abandons the quiz without scoring it.
func (o *Orchestrator) ExitQuiz() {
	o.speech.Stop()
	o.quiz.Exit()
	o.emit(Event{Kind: QuizChanged})
}

// CloseResults leaves the results screen and resets the quiz.
func (o *Orchestrator) CloseResults() {
	o.speech.Stop()
	o.quiz.CloseResults()
	o.emit(Event{Kind: QuizChanged})
}
