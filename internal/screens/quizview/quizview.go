// Package quizview runs the review quiz one question at a time.
package quizview

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studybuddy/internal/locale"
	"github.com/abhisek/studybuddy/internal/quiz"
	"github.com/abhisek/studybuddy/internal/router"
	"github.com/abhisek/studybuddy/internal/screen"
	"github.com/abhisek/studybuddy/internal/screens/deps"
	"github.com/abhisek/studybuddy/internal/screens/results"
	"github.com/abhisek/studybuddy/internal/session"
	"github.com/abhisek/studybuddy/internal/ui/components"
	"github.com/abhisek/studybuddy/internal/ui/layout"
	"github.com/abhisek/studybuddy/internal/ui/markdown"
	"github.com/abhisek/studybuddy/internal/ui/theme"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

type spinnerTickMsg time.Time

type finishDoneMsg struct {
	Err error
}

// QuizScreen implements screen.Screen for an in-progress quiz.
type QuizScreen struct {
	d  deps.Deps
	md *markdown.Renderer
	q  quiz.View

	cursor    int
	finishing bool
	done      bool

	scrollOffset int
	frame        int
	ticking      bool
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.BackHandler = (*QuizScreen)(nil)

// New creates a QuizScreen for the orchestrator's started quiz.
func New(d deps.Deps) *QuizScreen {
	s := &QuizScreen{d: d, md: markdown.NewRenderer()}
	s.q = d.Session.Quiz().View()
	return s
}

func (s *QuizScreen) Init() tea.Cmd {
	return s.ensureTicking()
}

func (s *QuizScreen) Title() string {
	return s.d.T(locale.QuizTitle)
}

// HandlesBack makes Esc leave the quiz through ExitQuiz.
func (s *QuizScreen) HandlesBack() bool {
	return true
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "1-4", Description: s.d.T(locale.HintAnswer)},
		{Key: "←→", Description: s.d.T(locale.HintNavigate)},
	}
	if s.q.IsLast() && s.q.Answered(s.q.Current) {
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: s.d.T(locale.QuizFinish)})
	} else {
		hints = append(hints, layout.KeyHint{Key: "Enter", Description: s.d.T(locale.HintSelect)})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: s.d.T(locale.QuizExit)})
}

func (s *QuizScreen) refresh() {
	prev := s.q.Current
	s.q = s.d.Session.Quiz().View()
	if s.q.Current != prev {
		s.cursor = 0
		s.scrollOffset = 0
	}
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case session.Event:
		if msg.Kind != session.QuizChanged {
			return s, nil
		}
		s.refresh()
		return s, s.followPhase()

	case finishDoneMsg:
		s.finishing = false
		s.refresh()
		if msg.Err != nil && !errors.Is(msg.Err, context.Canceled) {
			s.d.Log().Warn("finish quiz failed", "error", msg.Err)
		}
		return s, s.followPhase()

	case spinnerTickMsg:
		s.frame++
		s.refresh()
		if s.needsSpinner() {
			return s, spinnerTick()
		}
		s.ticking = false
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg.String())
	}
	return s, nil
}

// followPhase leaves the quiz screen once the quiz is scored or gone.
func (s *QuizScreen) followPhase() tea.Cmd {
	if s.done {
		return nil
	}
	switch s.q.Phase {
	case quiz.Finished:
		s.done = true
		scr := results.New(s.d)
		return func() tea.Msg { return router.ReplaceScreenMsg{Screen: scr} }
	case quiz.Inactive:
		s.done = true
		return func() tea.Msg { return router.PopScreenMsg{} }
	}
	return nil
}

func (s *QuizScreen) handleKey(key string) (screen.Screen, tea.Cmd) {
	if s.finishing || s.q.Phase != quiz.InProgress {
		return s, nil
	}
	cur := s.q.Current
	var options int
	if cur < len(s.q.Questions) {
		options = len(s.q.Questions[cur].Options)
	}

	switch key {
	case "esc":
		s.done = true
		s.d.Session.ExitQuiz()
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < options-1 {
			s.cursor++
		}
	case "1", "2", "3", "4":
		opt := int(key[0] - '1')
		if opt < options {
			s.cursor = opt
			return s, s.answer(opt)
		}
	case "enter", "space":
		switch {
		case !s.q.Answered(cur):
			return s, s.answer(s.cursor)
		case s.q.IsLast():
			return s, s.finish()
		default:
			s.d.Session.NavigateQuiz(1)
			s.refresh()
		}
	case "right", "l":
		s.d.Session.NavigateQuiz(1)
		s.refresh()
	case "left", "h":
		s.d.Session.NavigateQuiz(-1)
		s.refresh()
	case "pgdown":
		s.scrollOffset += 5
	case "pgup":
		s.scrollOffset = max(0, s.scrollOffset-5)
	}
	return s, nil
}

func (s *QuizScreen) answer(opt int) tea.Cmd {
	if s.q.Answered(s.q.Current) {
		return nil
	}
	if err := s.d.Session.SelectAnswer(s.q.Current, opt); err != nil {
		s.d.Log().Debug("select answer rejected", "error", err)
		return nil
	}
	s.refresh()
	return s.ensureTicking()
}

func (s *QuizScreen) finish() tea.Cmd {
	s.finishing = true
	orch := s.d.Session
	return tea.Batch(
		func() tea.Msg {
			_, err := orch.FinishQuiz(context.Background())
			return finishDoneMsg{Err: err}
		},
		s.ensureTicking(),
	)
}

func (s *QuizScreen) needsSpinner() bool {
	if s.finishing {
		return true
	}
	for _, t := range s.q.Tasks {
		if t.State == quiz.Pending {
			return true
		}
	}
	return false
}

func (s *QuizScreen) ensureTicking() tea.Cmd {
	if s.ticking || !s.needsSpinner() {
		return nil
	}
	s.ticking = true
	return spinnerTick()
}

func spinnerTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}

func (s *QuizScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	if s.q.Current >= len(s.q.Questions) {
		return ""
	}
	cur := s.q.Current
	q := s.q.Questions[cur]

	answered := 0
	for i := range s.q.Questions {
		if s.q.Answered(i) {
			answered++
		}
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(
		s.d.T(locale.QuizQuestionOf, cur+1, len(s.q.Questions))))
	b.WriteString("\n")
	b.WriteString(components.NewProgressBar("", components.Ratio(answered, len(s.q.Questions)), false, cw).View())
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(cw).Render(q.Text))
	b.WriteString("\n\n")

	chosen := -1
	if s.q.Answered(cur) {
		chosen = s.q.Answers[cur]
	}
	b.WriteString(components.Choices{Options: q.Options, Correct: q.Correct, Chosen: chosen, Cursor: s.cursor}.View())

	if task, ok := s.q.Tasks[cur]; ok {
		b.WriteString("\n")
		switch task.State {
		case quiz.Pending:
			spin := lipgloss.NewStyle().Foreground(theme.Secondary).Render(spinnerFrames[s.frame%len(spinnerFrames)])
			b.WriteString(spin + " " + lipgloss.NewStyle().Foreground(theme.TextDim).Render(s.d.T(locale.RemediationPending)))
		case quiz.Failed:
			b.WriteString(components.Notice(task.Text, true))
		case quiz.Done:
			b.WriteString(strings.Trim(s.md.Render(task.Text, cw), "\n"))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(s.renderNav(cur))

	content := b.String()
	s.scrollOffset = layout.ClampScroll(s.scrollOffset, strings.Count(content, "\n")+1, height)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Width(cw).Render(layout.Window(content, s.scrollOffset, height)))
}

func (s *QuizScreen) renderNav(cur int) string {
	if s.finishing {
		spin := lipgloss.NewStyle().Foreground(theme.Secondary).Render(spinnerFrames[s.frame%len(spinnerFrames)])
		return spin + " " + lipgloss.NewStyle().Foreground(theme.TextDim).Render(s.d.T(locale.QuizFinish))
	}
	prev := components.NewButton("← "+s.d.T(locale.QuizPrev), false).View()
	if cur == 0 {
		prev = ""
	}
	label := s.d.T(locale.QuizNext) + " →"
	if s.q.IsLast() {
		label = s.d.T(locale.QuizFinish)
	}
	next := components.NewButton(label, s.q.Answered(cur)).View()
	return lipgloss.JoinHorizontal(lipgloss.Center, prev, "  ", next)
}
