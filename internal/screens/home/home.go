// Package home is the main menu: the learner types a topic and gets a
// study plan for it.
package home

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studybuddy/internal/locale"
	"github.com/abhisek/studybuddy/internal/router"
	"github.com/abhisek/studybuddy/internal/screen"
	"github.com/abhisek/studybuddy/internal/screens/deps"
	"github.com/abhisek/studybuddy/internal/screens/progressview"
	"github.com/abhisek/studybuddy/internal/session"
	"github.com/abhisek/studybuddy/internal/transcript"
	"github.com/abhisek/studybuddy/internal/ui/components"
	"github.com/abhisek/studybuddy/internal/ui/layout"
	"github.com/abhisek/studybuddy/internal/ui/theme"
)

const maxTopicLen = 120

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// planDoneMsg reports the outcome of CreatePlan.
type planDoneMsg struct {
	Err error
}

type spinnerTickMsg time.Time

// HomeScreen is the topic entry screen.
type HomeScreen struct {
	d        deps.Deps
	input    components.TextInput
	menu     components.Menu
	onMenu   bool
	planning bool
	frame    int
	errMsg   string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates the home screen.
func New(d deps.Deps) *HomeScreen {
	h := &HomeScreen{
		d:     d,
		input: components.NewTextInput(d.T(locale.TopicPlaceholder), maxTopicLen),
	}
	h.menu = components.NewMenu([]components.MenuItem{
		{Label: d.T(locale.CreatePlan), Action: func() tea.Cmd { return h.createPlan() }},
		{Label: d.T(locale.ProgressTitle), Action: func() tea.Cmd {
			scr := progressview.New(d)
			return func() tea.Msg { return router.PushScreenMsg{Screen: scr} }
		}},
		{Label: d.T(locale.HintQuit), Action: func() tea.Cmd { return tea.Quit }},
	})
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.input.Init()
}

func (h *HomeScreen) Title() string {
	return h.d.T(locale.HomeScreenTitle)
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	if h.planning {
		return []layout.KeyHint{{Key: "Ctrl+C", Description: h.d.T(locale.HintQuit)}}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: h.d.T(locale.CreatePlan)},
		{Key: "Tab", Description: h.d.T(locale.HintFocus)},
		{Key: "Ctrl+P", Description: h.d.T(locale.ProgressTitle)},
		{Key: "Ctrl+T", Description: h.d.T(locale.HintTheme)},
		{Key: "Ctrl+C", Description: h.d.T(locale.HintQuit)},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case planDoneMsg:
		return h.handlePlanDone(msg)

	case spinnerTickMsg:
		if !h.planning {
			return h, nil
		}
		h.frame++
		return h, spinnerTick()

	case tea.KeyMsg:
		if h.planning {
			return h, nil
		}
		switch msg.String() {
		case "tab", "shift+tab":
			h.onMenu = !h.onMenu
			if h.onMenu {
				h.input.Blur()
				return h, nil
			}
			return h, h.input.Focus()
		case "ctrl+p":
			scr := progressview.New(h.d)
			return h, func() tea.Msg { return router.PushScreenMsg{Screen: scr} }
		}
		if h.onMenu {
			var cmd tea.Cmd
			h.menu, cmd = h.menu.Update(msg)
			return h, cmd
		}
		if msg.String() == "enter" {
			return h, h.createPlan()
		}
	}

	if h.planning || h.onMenu {
		return h, nil
	}
	var cmd tea.Cmd
	h.input, cmd = h.input.Update(msg)
	return h, cmd
}

func (h *HomeScreen) createPlan() tea.Cmd {
	topic := h.input.Trimmed()
	if topic == "" || h.planning {
		return nil
	}
	h.planning = true
	h.errMsg = ""
	h.frame = 0

	orch := h.d.Session
	return tea.Batch(
		func() tea.Msg {
			return planDoneMsg{Err: orch.CreatePlan(context.Background(), topic)}
		},
		spinnerTick(),
	)
}

func (h *HomeScreen) handlePlanDone(msg planDoneMsg) (screen.Screen, tea.Cmd) {
	h.planning = false
	if msg.Err != nil {
		if errors.Is(msg.Err, context.Canceled) {
			return h, nil
		}
		h.errMsg = lastSystemMessage(h.d.Session.View())
		if h.errMsg == "" {
			h.errMsg = h.d.T(locale.PlanFailed)
		}
		if errors.Is(msg.Err, session.ErrBusy) {
			h.errMsg = h.d.T(locale.Busy)
		}
		return h, nil
	}

	h.input.Reset()
	if h.d.Study == nil {
		return h, nil
	}
	scr := h.d.Study()
	return h, func() tea.Msg { return router.ReplaceScreenMsg{Screen: scr} }
}

func lastSystemMessage(v session.View) string {
	for i := len(v.Entries) - 1; i >= 0; i-- {
		if v.Entries[i].Role == transcript.RoleSystem {
			return v.Entries[i].Content
		}
	}
	return ""
}

func spinnerTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}

func (h *HomeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	v := h.d.Session.View()

	variant := MascotIdle
	switch {
	case h.planning:
		variant = MascotThinking
	case h.errMsg != "":
		variant = MascotAlert
	}

	var sections []string
	sections = append(sections, RenderMascot(variant))
	sections = append(sections, lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Width(cw).
		Align(lipgloss.Center).
		Render(h.d.T(locale.HomeGreeting, v.UserName)))

	var body strings.Builder
	body.WriteString(h.input.View())
	body.WriteString("\n\n")
	switch {
	case h.planning:
		spin := lipgloss.NewStyle().Foreground(theme.Secondary).Render(spinnerFrames[h.frame%len(spinnerFrames)])
		body.WriteString(spin + " " + components.Notice(h.d.T(locale.Planning), false))
	case h.errMsg != "":
		body.WriteString(components.Notice(h.errMsg, true))
	}
	sections = append(sections, components.Card(body.String(), cw))
	sections = append(sections, h.menu.View(h.onMenu))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, sections...))
}
