// Package setup asks for the assistant's name and then the learner's own,
// and stores both in the profile.
package setup

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studybuddy/internal/locale"
	"github.com/abhisek/studybuddy/internal/router"
	"github.com/abhisek/studybuddy/internal/screen"
	"github.com/abhisek/studybuddy/internal/screens/deps"
	"github.com/abhisek/studybuddy/internal/store"
	"github.com/abhisek/studybuddy/internal/ui/components"
	"github.com/abhisek/studybuddy/internal/ui/layout"
	"github.com/abhisek/studybuddy/internal/ui/theme"
)

// Step is the setup progress.
type Step int

const (
	AskAssistantName Step = iota
	AskUserName
	Complete
)

const maxNameLen = 40

// profileSavedMsg reports the outcome of saving the names.
type profileSavedMsg struct {
	Profile store.Profile
	Resumed bool
	Err     error
}

// SetupScreen collects the two display names.
type SetupScreen struct {
	d         deps.Deps
	step      Step
	assistant string
	input     components.TextInput
	errMsg    string
}

var _ screen.Screen = (*SetupScreen)(nil)
var _ screen.KeyHintProvider = (*SetupScreen)(nil)

// New creates the setup screen at its first step.
func New(d deps.Deps) *SetupScreen {
	return &SetupScreen{
		d:     d,
		input: components.NewTextInput(d.T(locale.SetupAssistantPlaceholder), maxNameLen),
	}
}

// Step returns the current step.
func (s *SetupScreen) Step() Step {
	return s.step
}

func (s *SetupScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *SetupScreen) Title() string {
	return s.d.T(locale.SetupScreenTitle)
}

func (s *SetupScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: s.d.T(locale.SetupContinue)},
		{Key: "Ctrl+T", Description: s.d.T(locale.HintTheme)},
		{Key: "Ctrl+C", Description: s.d.T(locale.HintQuit)},
	}
}

func (s *SetupScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case profileSavedMsg:
		return s.handleSaved(msg)

	case tea.KeyMsg:
		if msg.String() == "enter" {
			return s.submit()
		}
	}

	if s.step == Complete {
		return s, nil
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *SetupScreen) submit() (screen.Screen, tea.Cmd) {
	name := strings.TrimSpace(s.input.Value())
	if name == "" || s.step == Complete {
		return s, nil
	}
	s.errMsg = ""

	switch s.step {
	case AskAssistantName:
		s.assistant = name
		s.step = AskUserName
		s.input = components.NewTextInput(s.d.T(locale.SetupUserPlaceholder), maxNameLen)
		return s, s.input.Init()

	case AskUserName:
		s.step = Complete
		p := store.Profile{AssistantName: s.assistant, UserName: name}
		return s, s.save(p)
	}
	return s, nil
}

// save persists the names, hands them to the session and restores any
// plan saved under them.
func (s *SetupScreen) save(p store.Profile) tea.Cmd {
	d := s.d
	return func() tea.Msg {
		ctx := context.Background()
		if d.Profiles != nil {
			if existing, err := d.Profiles.Get(ctx); err == nil && existing != nil {
				p.Theme = existing.Theme
			}
			if p.Theme == "" {
				p.Theme = theme.Current()
			}
			if err := d.Profiles.Save(ctx, p); err != nil {
				return profileSavedMsg{Err: err}
			}
		}
		d.Session.SetProfile(p)
		resumed, err := d.Session.Resume(ctx)
		if err != nil {
			d.Log().Warn("resume after setup failed", "error", err)
		}
		return profileSavedMsg{Profile: p, Resumed: resumed}
	}
}

func (s *SetupScreen) handleSaved(msg profileSavedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.d.Log().Error("save profile failed", "error", msg.Err)
		s.errMsg = s.d.T(locale.ProfileSaveFailed)
		s.step = AskUserName
		return s, nil
	}

	next := s.d.Menu
	if msg.Resumed && s.d.Study != nil {
		next = s.d.Study
	}
	if next == nil {
		return s, nil
	}
	scr := next()
	return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: scr} }
}

func (s *SetupScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var prompt string
	switch s.step {
	case AskAssistantName:
		prompt = s.d.T(locale.SetupAssistantTitle)
	default:
		prompt = s.d.T(locale.SetupUserTitle, s.assistant)
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Width(cw - 6).
		Render(prompt))
	b.WriteString("\n\n")
	b.WriteString(s.input.View())
	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(components.Notice(s.errMsg, true))
	}
	b.WriteString("\n\n")
	b.WriteString(components.NewButton(s.d.T(locale.SetupContinue), s.input.Trimmed() != "").View())

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, components.Card(b.String(), cw))
}
