// Package results shows the score of a finished review quiz and the
// corrections summary.
package results

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studybuddy/internal/locale"
	"github.com/abhisek/studybuddy/internal/quiz"
	"github.com/abhisek/studybuddy/internal/router"
	"github.com/abhisek/studybuddy/internal/screen"
	"github.com/abhisek/studybuddy/internal/screens/deps"
	"github.com/abhisek/studybuddy/internal/session"
	"github.com/abhisek/studybuddy/internal/ui/components"
	"github.com/abhisek/studybuddy/internal/ui/layout"
	"github.com/abhisek/studybuddy/internal/ui/markdown"
	"github.com/abhisek/studybuddy/internal/ui/theme"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

type spinnerTickMsg time.Time

// ResultsScreen displays the quiz result.
type ResultsScreen struct {
	d  deps.Deps
	md *markdown.Renderer
	q  quiz.View

	scrollOffset int
	frame        int
	ticking      bool
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

// New creates a ResultsScreen for the orchestrator's finished quiz.
func New(d deps.Deps) *ResultsScreen {
	s := &ResultsScreen{d: d, md: markdown.NewRenderer()}
	s.q = d.Session.Quiz().View()
	return s
}

func (s *ResultsScreen) Init() tea.Cmd {
	if s.q.SummaryPending {
		s.ticking = true
		return spinnerTick()
	}
	return nil
}

func (s *ResultsScreen) Title() string {
	return s.d.T(locale.ResultsTitle)
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: s.d.T(locale.HintScroll)},
		{Key: "Enter", Description: s.d.T(locale.Close)},
	}
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case session.Event:
		if msg.Kind == session.QuizChanged {
			s.q = s.d.Session.Quiz().View()
		}
		if s.q.SummaryPending && !s.ticking {
			s.ticking = true
			return s, spinnerTick()
		}

	case spinnerTickMsg:
		s.frame++
		// The summary lands through a QuizChanged event; poll in case it was dropped.
		s.q = s.d.Session.Quiz().View()
		if s.q.SummaryPending {
			return s, spinnerTick()
		}
		s.ticking = false

	case tea.KeyMsg:
		switch msg.String() {
		case "enter", "esc", "q":
			s.d.Session.CloseResults()
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.scrollOffset > 0 {
				s.scrollOffset--
			}
		case "down", "j":
			s.scrollOffset++
		}
	}
	return s, nil
}

func (s *ResultsScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	res := s.q.Result

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(s.d.T(locale.ResultsTitle)))
	b.WriteString("\n\n")

	scoreColor := theme.Accent
	if res.Perfect {
		scoreColor = theme.Success
	}
	b.WriteString(lipgloss.NewStyle().Foreground(scoreColor).Bold(true).Render(
		s.d.T(locale.ResultsScore, res.Total, res.Correct)))
	b.WriteString("\n")
	b.WriteString(components.NewProgressBar("", components.Ratio(res.Correct, res.Total), true, cw).View())
	b.WriteString("\n\n")

	switch {
	case s.q.SummaryPending:
		spin := lipgloss.NewStyle().Foreground(theme.Secondary).Render(spinnerFrames[s.frame%len(spinnerFrames)])
		b.WriteString(spin + " " + lipgloss.NewStyle().Foreground(theme.TextDim).Render(s.d.T(locale.RemediationPending)))
	case res.Perfect:
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Success).Width(cw).Render("🏆 " + s.q.Summary))
	default:
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(s.d.T(locale.ResultsCorrections)))
		b.WriteString("\n")
		b.WriteString(strings.Trim(s.md.Render(s.q.Summary, cw), "\n"))
	}
	b.WriteString("\n\n")
	b.WriteString(components.NewButton(s.d.T(locale.Close), true).View())

	content := b.String()
	s.scrollOffset = layout.ClampScroll(s.scrollOffset, strings.Count(content, "\n")+1, height)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Width(cw).Render(layout.Window(content, s.scrollOffset, height)))
}

func spinnerTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}
