package quiz

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/abhisek/studybuddy/internal/llm"
	"github.com/abhisek/studybuddy/internal/locale"
	"github.com/abhisek/studybuddy/internal/logger"
	"github.com/abhisek/studybuddy/internal/progress"
)

// Engine owns one quiz at a time. It is safe for concurrent use and does
// not depend on the session's busy state, so remediation can run while the
// learner keeps navigating.
type Engine struct {
	provider llm.Provider
	cfg      Config
	cat      *locale.Catalog
	log      *logger.Logger
	notify   func()

	mu        sync.Mutex
	phase     Phase
	starting  bool
	userName  string
	questions []Question
	answers   []int
	current   int
	tasks     map[int]Task
	result    Result
	summary   string
	summaryOn bool

	// gen increments on every reset so that late remediation results from
	// an earlier quiz are discarded.
	gen    uint64
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewEngine creates an inactive quiz engine. notify, if non-nil, is called
// without locks held whenever asynchronous work changes the quiz state.
func NewEngine(provider llm.Provider, cfg Config, cat *locale.Catalog, log *logger.Logger, notify func()) *Engine {
	if log == nil {
		log = logger.Nop()
	}
	if notify == nil {
		notify = func() {}
	}
	return &Engine{
		provider: provider,
		cfg:      cfg,
		cat:      cat,
		log:      log,
		notify:   notify,
		tasks:    make(map[int]Task),
	}
}

type quizOutput struct {
	Quiz []quizItem `json:"quiz"`
}

type quizItem struct {
	Question           string   `json:"question"`
	Options            []string `json:"options"`
	CorrectAnswerIndex int      `json:"correctAnswerIndex"`
}

// Start generates a quiz for plan and moves to InProgress. On failure the
// engine stays Inactive and ErrQuizUnavailable is returned.
func (e *Engine) Start(ctx context.Context, plan progress.Plan, userName string) error {
	e.mu.Lock()
	if e.phase != Inactive || e.starting {
		e.mu.Unlock()
		return ErrActive
	}
	e.starting = true
	e.mu.Unlock()

	questions, err := e.generate(ctx, plan, userName)

	e.mu.Lock()
	e.starting = false
	if err != nil {
		e.mu.Unlock()
		e.log.Warn("quiz generation failed", "topic", plan.MainTopic, "error", err)
		return fmt.Errorf("%w: %w", ErrQuizUnavailable, err)
	}
	e.resetLocked()
	e.phase = InProgress
	e.userName = userName
	e.questions = questions
	e.answers = make([]int, len(questions))
	for i := range e.answers {
		e.answers[i] = -1
	}
	e.ctx, e.cancel = context.WithCancel(context.WithoutCancel(ctx))
	e.mu.Unlock()

	e.log.Info("quiz started", "topic", plan.MainTopic, "questions", len(questions))
	return nil
}

func (e *Engine) generate(ctx context.Context, plan progress.Plan, userName string) ([]Question, error) {
	ctx = llm.WithPurpose(ctx, "quiz")

	req := llm.Request{
		System: quizSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildQuizPrompt(userName, plan.MainTopic, plan.SubTopics(), e.cfg.Questions, e.cat.LanguageName())},
		},
		Schema:      QuizSchema,
		MaxTokens:   e.cfg.MaxTokens,
		Temperature: e.cfg.Temperature,
	}

	resp, err := e.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("quiz generation: %w", err)
	}

	var out quizOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse quiz response: %w", err)
	}

	questions := sanitize(out.Quiz, e.cfg.Questions)
	if len(questions) == 0 {
		return nil, fmt.Errorf("quiz response had no usable questions (%d items)", len(out.Quiz))
	}
	return questions, nil
}

// sanitize drops malformed items and keeps at most limit questions.
func sanitize(items []quizItem, limit int) []Question {
	var out []Question
	for _, it := range items {
		text := strings.TrimSpace(it.Question)
		if text == "" || len(it.Options) != 4 {
			continue
		}
		if it.CorrectAnswerIndex < 0 || it.CorrectAnswerIndex >= len(it.Options) {
			continue
		}
		out = append(out, Question{
			Text:    text,
			Options: append([]string(nil), it.Options...),
			Correct: it.CorrectAnswerIndex,
		})
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// SelectAnswer records option for question i. The first answer wins; later
// calls return false with ErrAlreadyAnswered. A wrong answer schedules its
// remediation.
func (e *Engine) SelectAnswer(i, option int) (bool, error) {
	e.mu.Lock()
	if e.phase != InProgress {
		e.mu.Unlock()
		return false, ErrNotInProgress
	}
	if i < 0 || i >= len(e.questions) || option < 0 || option >= len(e.questions[i].Options) {
		e.mu.Unlock()
		return false, ErrOutOfRange
	}
	if e.answers[i] >= 0 {
		e.mu.Unlock()
		return false, ErrAlreadyAnswered
	}
	e.answers[i] = option
	wrong := option != e.questions[i].Correct
	e.mu.Unlock()

	if wrong {
		e.GenerateRemediation(i)
	}
	return true, nil
}

// GenerateRemediation starts the explanation for a wrongly answered
// question. It starts at most once per question and never regenerates;
// calls for correct, unanswered or already started questions are no-ops.
func (e *Engine) GenerateRemediation(i int) {
	e.mu.Lock()
	if e.phase == Inactive || i < 0 || i >= len(e.questions) {
		e.mu.Unlock()
		return
	}
	chosen := e.answers[i]
	q := e.questions[i]
	if chosen < 0 || chosen == q.Correct || e.tasks[i].State != NotStarted {
		e.mu.Unlock()
		return
	}
	e.tasks[i] = Task{State: Pending}
	gen, ctx, userName := e.gen, e.ctx, e.userName
	e.wg.Add(1)
	e.mu.Unlock()

	go func() {
		defer e.wg.Done()

		text, err := e.remediate(ctx, userName, q, chosen)
		task := Task{State: Done, Text: text}
		if err != nil {
			e.log.Warn("remediation failed", "question", i, "error", err)
			task = Task{State: Failed, Text: e.cat.T(locale.RemediationFailed)}
		}

		e.mu.Lock()
		if e.gen != gen {
			e.mu.Unlock()
			return
		}
		e.tasks[i] = task
		e.mu.Unlock()
		e.notify()
	}()
}

func (e *Engine) remediate(ctx context.Context, userName string, q Question, chosen int) (string, error) {
	ctx = llm.WithPurpose(ctx, "remediation")
	resp, err := e.provider.Generate(ctx, llm.Request{
		System: tutorSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildRemediationPrompt(userName, q, chosen, e.cat.LanguageName())},
		},
		MaxTokens:   e.cfg.RemediationMaxTokens,
		Temperature: e.cfg.RemediationTemperature,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Text()), nil
}

// Navigate moves the current question by delta, clamped to the quiz.
// Moving forward is blocked while the current question is unanswered.
// It reports whether the position changed.
func (e *Engine) Navigate(delta int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.phase != InProgress || delta == 0 {
		return false
	}
	if delta > 0 && e.answers[e.current] < 0 {
		return false
	}
	next := max(0, min(len(e.questions)-1, e.current+delta))
	if next == e.current {
		return false
	}
	e.current = next
	return true
}

// Finish scores the quiz and generates the corrections summary. It is
// only valid on the last question once it has been answered. onScored, if
// non-nil, runs after scoring and before the summary request.
func (e *Engine) Finish(ctx context.Context, onScored func(Result)) (Result, error) {
	e.mu.Lock()
	if e.phase != InProgress {
		e.mu.Unlock()
		return Result{}, ErrNotInProgress
	}
	last := len(e.questions) - 1
	if e.current != last || e.answers[last] < 0 {
		e.mu.Unlock()
		return Result{}, ErrNotFinishable
	}

	res := Result{Total: len(e.questions)}
	for i, q := range e.questions {
		if e.answers[i] == q.Correct {
			res.Correct++
		}
	}
	res.Perfect = res.Correct == res.Total
	e.result = res
	e.phase = Finished
	e.mu.Unlock()

	e.notify()
	e.log.Info("quiz finished", "correct", res.Correct, "total", res.Total)
	if onScored != nil {
		onScored(res)
	}

	if _, err := e.GenerateCorrectionsSummary(ctx); err != nil {
		return res, err
	}
	return res, nil
}

// GenerateCorrectionsSummary builds the closing summary. A perfect quiz
// gets the canned congratulation without a gateway call. Otherwise exactly
// one call lists every wrong answer; its failure is stored as a localized
// message and not returned.
func (e *Engine) GenerateCorrectionsSummary(ctx context.Context) (string, error) {
	e.mu.Lock()
	if e.phase != Finished {
		e.mu.Unlock()
		return "", ErrNotFinished
	}
	var mistakes []mistake
	for i, q := range e.questions {
		if a := e.answers[i]; a >= 0 && a != q.Correct {
			mistakes = append(mistakes, mistake{Question: q.Text, Chosen: q.Options[a], Correct: q.Options[q.Correct]})
		}
	}
	userName, gen := e.userName, e.gen

	if len(mistakes) == 0 {
		e.summary = e.cat.T(locale.ResultsPerfect, userName)
		e.summaryOn = false
		summary := e.summary
		e.mu.Unlock()
		e.notify()
		return summary, nil
	}
	e.summaryOn = true
	e.mu.Unlock()

	summary, err := e.summarize(ctx, userName, mistakes)
	if err != nil {
		e.log.Warn("corrections summary failed", "mistakes", len(mistakes), "error", err)
		summary = e.cat.T(locale.ResultsSummaryFailed)
	}

	e.mu.Lock()
	if e.gen == gen {
		e.summary = summary
		e.summaryOn = false
	}
	e.mu.Unlock()
	e.notify()
	return summary, nil
}

func (e *Engine) summarize(ctx context.Context, userName string, mistakes []mistake) (string, error) {
	ctx = llm.WithPurpose(ctx, "corrections")
	resp, err := e.provider.Generate(ctx, llm.Request{
		System: tutorSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildCorrectionsPrompt(userName, mistakes, e.cat.LanguageName())},
		},
		MaxTokens:   e.cfg.SummaryMaxTokens,
		Temperature: e.cfg.RemediationTemperature,
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Text()), nil
}

// Exit abandons the quiz and returns to the empty Inactive state.
func (e *Engine) Exit() {
	e.mu.Lock()
	e.resetLocked()
	e.mu.Unlock()
}

// CloseResults dismisses the results of a finished quiz.
func (e *Engine) CloseResults() {
	e.Exit()
}

// resetLocked clears all quiz state. Callers hold e.mu.
func (e *Engine) resetLocked() {
	if e.cancel != nil {
		e.cancel()
	}
	e.gen++
	e.phase = Inactive
	e.userName = ""
	e.questions = nil
	e.answers = nil
	e.current = 0
	e.tasks = make(map[int]Task)
	e.result = Result{}
	e.summary = ""
	e.summaryOn = false
	e.ctx, e.cancel = nil, nil
}

// Wait blocks until all remediation goroutines have returned.
func (e *Engine) Wait() {
	e.wg.Wait()
}

// Phase returns the current phase.
func (e *Engine) Phase() Phase {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.phase
}

// Starting reports whether Start is waiting on generation.
func (e *Engine) Starting() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.starting
}

// View returns a copy of the quiz state.
func (e *Engine) View() View {
	e.mu.Lock()
	defer e.mu.Unlock()

	v := View{
		Phase:          e.phase,
		Current:        e.current,
		Answers:        append([]int(nil), e.answers...),
		Tasks:          make(map[int]Task, len(e.tasks)),
		Result:         e.result,
		Summary:        e.summary,
		SummaryPending: e.summaryOn,
	}
	for _, q := range e.questions {
		q.Options = append([]string(nil), q.Options...)
		v.Questions = append(v.Questions, q)
	}
	for i, t := range e.tasks {
		v.Tasks[i] = t
	}
	return v
}
