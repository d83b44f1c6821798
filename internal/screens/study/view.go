package study

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/studybuddy/internal/locale"
	"github.com/abhisek/studybuddy/internal/screens/progressview"
	"github.com/abhisek/studybuddy/internal/transcript"
	"github.com/abhisek/studybuddy/internal/ui/components"
	"github.com/abhisek/studybuddy/internal/ui/layout"
	"github.com/abhisek/studybuddy/internal/ui/theme"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const (
	sidebarWidth = 30
	gutterWidth  = 2
)

func (s *StudyScreen) spinner() string {
	return lipgloss.NewStyle().Foreground(theme.Accent).Render(spinnerFrames[s.frame%len(spinnerFrames)])
}

func (s *StudyScreen) View(width, height int) string {
	mainWidth := width
	var side string
	if !layout.IsCompactWidth(width) {
		side = s.renderSidebar(sidebarWidth, height)
		mainWidth = width - sidebarWidth - 3
	}

	main := s.renderMain(mainWidth, height)
	if side == "" {
		return main
	}

	divider := lipgloss.NewStyle().
		Foreground(theme.Border).
		Render(strings.TrimRight(strings.Repeat("│\n", height), "\n"))
	return lipgloss.JoinHorizontal(lipgloss.Top, side, " ", divider, " ", main)
}

func (s *StudyScreen) renderSidebar(w, height int) string {
	v := s.v
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(s.d.T(locale.LearningPath)))
	b.WriteString("\n\n")

	ratio := components.Ratio(v.Completed, v.Plan.Len())
	b.WriteString(components.NewProgressBar("", ratio, true, w).View())
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Width(w).Render(
		s.d.T(locale.ProgressOverview, v.Completed, v.Plan.Len(), int(ratio*100))))
	b.WriteString("\n\n")

	for _, st := range v.Steps {
		marker := "  "
		if s.focus == focusPath && st.Index == s.pathCursor {
			marker = lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render("› ")
		}
		line := progressview.StepLine(st.Index, st.Name, st.Completed, st.Unlocked)
		if st.Name == v.ActiveSubTopic {
			line = lipgloss.NewStyle().Bold(true).Underline(true).Render(line)
		}
		b.WriteString(lipgloss.NewStyle().MaxWidth(w).Render(marker + line))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	action := func(key string, label string) {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(key))
		b.WriteString(" ")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Render(label))
		b.WriteString("\n")
	}
	if !v.AllUnlocked {
		action("^O", s.d.T(locale.UnlockAllButton))
	}
	if v.CanChallenge {
		action("^G", s.d.T(locale.ChallengeButton))
	}
	switch {
	case s.quizLoading:
		b.WriteString(s.spinner() + " " + lipgloss.NewStyle().Foreground(theme.Accent).Render(s.d.T(locale.QuizLoading)))
		b.WriteString("\n")
	case v.QuizAvailable:
		action("^Q", s.d.T(locale.StartQuiz))
	}

	if icons := badgeIcons(v.Badges); icons != "" {
		b.WriteString("\n")
		b.WriteString(icons)
	}

	return lipgloss.NewStyle().Width(w).Render(layout.Window(strings.TrimRight(b.String(), "\n"), 0, height))
}

func (s *StudyScreen) renderMain(w, height int) string {
	convHeight := height - 3
	if convHeight < 1 {
		convHeight = 1
	}

	content, starts := s.renderConversation(w)
	total := strings.Count(content, "\n") + 1

	switch {
	case s.follow:
		s.scroll = total - convHeight
	case s.focus == focusChat && s.selected != 0:
		if start, ok := starts[s.selected]; ok && (start < s.scroll || start >= s.scroll+convHeight) {
			s.scroll = start
		}
	}
	s.scroll = layout.ClampScroll(s.scroll, total, convHeight)

	var b strings.Builder
	b.WriteString(layout.Window(content, s.scroll, convHeight))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(w, 0))))
	b.WriteString("\n")
	b.WriteString(s.renderStatus())
	b.WriteString("\n")
	b.WriteString(s.renderInput())
	return b.String()
}

func (s *StudyScreen) renderStatus() string {
	switch {
	case s.confirmMenu:
		return lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(
			s.d.T(locale.BackToMenuConfirm) + " (y/n)")
	case s.notice != "":
		return components.Notice(s.notice, s.noticeErr)
	case s.v.Busy():
		return s.spinner() + " " + lipgloss.NewStyle().Foreground(theme.TextDim).Render(
			s.d.T(locale.Thinking, s.v.AssistantName))
	}
	return ""
}

func (s *StudyScreen) renderInput() string {
	if s.listening {
		return s.spinner() + " " + lipgloss.NewStyle().Foreground(theme.Accent).Render(s.d.T(locale.Listening))
	}
	prompt := lipgloss.NewStyle().Foreground(theme.TextDim).Render("› ")
	if s.focus == focusInput {
		prompt = lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("› ")
	}
	return prompt + s.input.View()
}

// renderConversation renders every entry and reports the first line of each.
func (s *StudyScreen) renderConversation(w int) (string, map[int64]int) {
	starts := make(map[int64]int, len(s.v.Entries))
	var lines []string
	for _, e := range s.v.Entries {
		starts[e.ID] = len(lines)
		gutter := strings.Repeat(" ", gutterWidth)
		if s.focus == focusChat && e.ID == s.selected {
			gutter = lipgloss.NewStyle().Foreground(theme.Accent).Render("▌ ")
		}
		for _, l := range strings.Split(s.renderEntry(e, w-gutterWidth), "\n") {
			lines = append(lines, gutter+l)
		}
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n"), starts
}

func (s *StudyScreen) renderEntry(e transcript.Entry, w int) string {
	var b strings.Builder
	switch e.Role {
	case transcript.RoleUser:
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(s.v.UserName))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Width(w).Render(e.Content))
		return b.String()

	case transcript.RoleSystem:
		return theme.Hint.Width(w).Render(e.Content)
	}

	label := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(s.v.AssistantName)
	if s.v.Speaking == e.ID {
		label += " 🔊"
	}
	b.WriteString(label)
	b.WriteString("\n")

	switch {
	case e.Pending && strings.TrimSpace(e.Content) == "":
		b.WriteString(s.spinner() + " " + lipgloss.NewStyle().Foreground(theme.TextDim).Render(
			s.d.T(locale.Thinking, s.v.AssistantName)))
	case e.Pending:
		// Partial markdown renders poorly; stream as plain text.
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Width(w).Render(e.Content))
		b.WriteString(" " + s.spinner())
	default:
		b.WriteString(strings.Trim(s.md.Render(e.Content, w), "\n"))
	}

	for _, img := range e.Images {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(
			fmt.Sprintf("🖼  %s · %d KB", img.MIMEType, (len(img.Data)+1023)/1024)))
	}
	return b.String()
}
