// Package app hosts the root Bubble Tea model: the screen stack, the
// header and footer, and the bridge that turns orchestrator events into
// messages for the active screen.
package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studybuddy/internal/locale"
	"github.com/abhisek/studybuddy/internal/router"
	"github.com/abhisek/studybuddy/internal/screen"
	"github.com/abhisek/studybuddy/internal/screens/deps"
	"github.com/abhisek/studybuddy/internal/screens/home"
	"github.com/abhisek/studybuddy/internal/screens/setup"
	"github.com/abhisek/studybuddy/internal/screens/study"
	"github.com/abhisek/studybuddy/internal/screens/welcome"
	"github.com/abhisek/studybuddy/internal/session"
	"github.com/abhisek/studybuddy/internal/store"
	"github.com/abhisek/studybuddy/internal/ui/layout"
	"github.com/abhisek/studybuddy/internal/ui/theme"
)

// Options configures the TUI.
type Options struct {
	// Deps carries the orchestrator and repositories. Menu and Study are
	// filled in by the app.
	Deps deps.Deps

	// Profile is the saved profile, or nil on first launch.
	Profile *store.Profile

	SkipWelcome bool
}

// themeSavedMsg reports the outcome of persisting the theme choice.
type themeSavedMsg struct {
	Err error
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	d      deps.Deps
	events <-chan session.Event
	width  int
	height int
}

// NewModel builds the root model and picks the first screen: setup when no
// names are saved, the plan when one was resumed, the menu otherwise.
func NewModel(opts Options) AppModel {
	d := opts.Deps
	d.Menu = func() screen.Screen { return home.New(d) }
	d.Study = func() screen.Screen { return study.New(d) }

	next := func() screen.Screen {
		switch {
		case opts.Profile == nil || opts.Profile.AssistantName == "" || opts.Profile.UserName == "":
			return setup.New(d)
		case d.Session.View().HasPlan():
			return d.Study()
		default:
			return d.Menu()
		}
	}

	var first screen.Screen
	if opts.SkipWelcome {
		first = next()
	} else {
		first = welcome.New(d.T(locale.Tagline), next)
	}

	m := AppModel{router: router.New(first), d: d}
	if d.Session != nil {
		m.events = d.Session.Events()
	}
	return m
}

func (m AppModel) Init() tea.Cmd {
	var initCmd tea.Cmd
	if active := m.router.Active(); active != nil {
		initCmd = active.Init()
	}
	return tea.Batch(initCmd, listen(m.events))
}

// listen waits for the next orchestrator event.
func listen(events <-chan session.Event) tea.Cmd {
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return ev
	}
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case session.Event:
		return m, tea.Batch(m.router.Update(msg), listen(m.events))

	case themeSavedMsg:
		if msg.Err != nil {
			m.d.Log().Warn("save theme failed", "error", msg.Err)
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			if m.d.Session != nil {
				m.d.Session.StopSpeech()
			}
			return m, tea.Quit
		case "ctrl+t":
			return m, m.toggleTheme()
		case "esc":
			if h, ok := m.router.Active().(screen.BackHandler); ok && h.HandlesBack() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// toggleTheme flips the palette and stores the choice in the profile.
func (m AppModel) toggleTheme() tea.Cmd {
	name := theme.Toggle()
	m.d.Log().Info("theme changed", "theme", name)
	profiles := m.d.Profiles
	if profiles == nil {
		return nil
	}
	return func() tea.Msg {
		ctx := context.Background()
		p, err := profiles.Get(ctx)
		if err != nil {
			return themeSavedMsg{Err: err}
		}
		if p == nil {
			// Setup saves the active theme with the names.
			return themeSavedMsg{}
		}
		p.Theme = name
		return themeSavedMsg{Err: profiles.Save(ctx, *p)}
	}
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if frame := m.render(); frame != "" {
		v.SetContent(frame)
	}
	return v
}

// render composes header, active screen and footer for the current size.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		msg := m.d.T(locale.TerminalTooSmall, layout.MinWidth, layout.MinHeight, m.width, m.height)
		return layout.RenderMinSizeMessage(msg, m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	status := ""
	if m.d.Session != nil {
		if name := m.d.Session.View().AssistantName; name != "" {
			status = m.d.T(locale.HeaderAssistant, name)
		}
	}
	header := layout.RenderHeader(title, status, m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: m.d.T(locale.HintBack)},
			{Key: "Ctrl+C", Description: m.d.T(locale.HintQuit)},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "Ctrl+T", Description: m.d.T(locale.HintTheme)},
			{Key: "Ctrl+C", Description: m.d.T(locale.HintQuit)},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(NewModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
