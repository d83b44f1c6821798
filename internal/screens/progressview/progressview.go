// Package progressview shows the plan's progress and the badge board.
package progressview

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studybuddy/internal/badges"
	"github.com/abhisek/studybuddy/internal/locale"
	"github.com/abhisek/studybuddy/internal/router"
	"github.com/abhisek/studybuddy/internal/screen"
	"github.com/abhisek/studybuddy/internal/screens/deps"
	"github.com/abhisek/studybuddy/internal/session"
	"github.com/abhisek/studybuddy/internal/store"
	"github.com/abhisek/studybuddy/internal/ui/components"
	"github.com/abhisek/studybuddy/internal/ui/layout"
	"github.com/abhisek/studybuddy/internal/ui/theme"
)

type awardsLoadedMsg struct {
	EarnedAt map[badges.ID]time.Time
	Err      error
}

// ProgressScreen lists the plan steps and every badge, earned or locked.
type ProgressScreen struct {
	d            deps.Deps
	earnedAt     map[badges.ID]time.Time
	scrollOffset int
}

var _ screen.Screen = (*ProgressScreen)(nil)
var _ screen.KeyHintProvider = (*ProgressScreen)(nil)

// New creates a ProgressScreen.
func New(d deps.Deps) *ProgressScreen {
	return &ProgressScreen{d: d}
}

// Init loads when each badge was first earned by the current user.
func (s *ProgressScreen) Init() tea.Cmd {
	if s.d.Events == nil {
		return nil
	}
	v := s.d.Session.View()
	userKey := store.Profile{AssistantName: v.AssistantName, UserName: v.UserName}.UserKey()
	events := s.d.Events
	return func() tea.Msg {
		records, err := events.QueryBadgeAwards(context.Background(), store.QueryOpts{})
		if err != nil {
			return awardsLoadedMsg{Err: err}
		}
		earned := make(map[badges.ID]time.Time)
		// Newest first, so the last write per badge is the earliest award.
		for _, r := range records {
			if r.UserKey == userKey {
				earned[badges.ID(r.BadgeID)] = r.Timestamp
			}
		}
		return awardsLoadedMsg{EarnedAt: earned}
	}
}

func (s *ProgressScreen) Title() string {
	return s.d.T(locale.ProgressTitle)
}

func (s *ProgressScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: s.d.T(locale.HintScroll)},
		{Key: "Esc", Description: s.d.T(locale.HintBack)},
	}
}

func (s *ProgressScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case awardsLoadedMsg:
		if msg.Err != nil {
			s.d.Log().Warn("load badge awards failed", "error", msg.Err)
			return s, nil
		}
		s.earnedAt = msg.EarnedAt
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
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

func (s *ProgressScreen) View(width, height int) string {
	v := s.d.Session.View()
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(s.renderPlan(v, cw))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(s.d.T(locale.BadgesTitle)))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", cw)))
	b.WriteString("\n")
	b.WriteString(s.renderBadges(v.Badges, cw))

	content := b.String()
	s.scrollOffset = layout.ClampScroll(s.scrollOffset, strings.Count(content, "\n")+1, height)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, layout.Window(content, s.scrollOffset, height))
}

func (s *ProgressScreen) renderPlan(v session.View, cw int) string {
	if !v.HasPlan() {
		return lipgloss.NewStyle().Foreground(theme.TextDim).Render(s.d.T(locale.ProgressNoPlan))
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(v.Plan.MainTopic))
	b.WriteString("\n\n")

	ratio := components.Ratio(v.Completed, v.Plan.Len())
	b.WriteString(components.NewProgressBar("", ratio, true, cw).View())
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(
		s.d.T(locale.ProgressOverview, v.Completed, v.Plan.Len(), int(ratio*100))))
	b.WriteString("\n\n")

	for _, st := range v.Steps {
		b.WriteString(StepLine(st.Index, st.Name, st.Completed, st.Unlocked))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (s *ProgressScreen) renderBadges(earned badges.Set, cw int) string {
	var b strings.Builder
	for _, id := range badges.All() {
		name := id.Name(s.d.Catalog)
		desc := id.Description(s.d.Catalog)

		if earned.Has(id) {
			line := fmt.Sprintf("%s  %s", id.Icon(), name)
			if at, ok := s.earnedAt[id]; ok {
				line += lipgloss.NewStyle().Foreground(theme.TextDim).Render("  " + at.Local().Format("2006-01-02"))
			}
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(line))
		} else {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render("🔒  " + name))
		}
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Width(cw).PaddingLeft(4).Render(desc))
		b.WriteString("\n")
	}
	return b.String()
}

// StepLine renders one plan step with its state marker.
func StepLine(i int, name string, completed, unlocked bool) string {
	label := fmt.Sprintf("%d. %s", i+1, name)
	switch {
	case completed:
		return lipgloss.NewStyle().Foreground(theme.Success).Render("✓ " + label)
	case unlocked:
		return lipgloss.NewStyle().Foreground(theme.Text).Render("○ " + label)
	default:
		return lipgloss.NewStyle().Foreground(theme.TextDim).Render("🔒 " + label)
	}
}
