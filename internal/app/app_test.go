package app

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studybuddy/internal/router"
	"github.com/abhisek/studybuddy/internal/screens/screentest"
	"github.com/abhisek/studybuddy/internal/session"
	"github.com/abhisek/studybuddy/internal/store"
	"github.com/abhisek/studybuddy/internal/ui/theme"
)

func sized(m AppModel) AppModel {
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(AppModel)
}

func activeTitle(m AppModel) string {
	return m.router.Active().Title()
}

func TestFirstScreen(t *testing.T) {
	env := screentest.New(t, screentest.Plan("Light", "Calvin Cycle"))
	profile := &store.Profile{AssistantName: "Bilge", UserName: "Ada"}

	m := NewModel(Options{Deps: env.Deps, SkipWelcome: true})
	if got := activeTitle(m); got != "Setup" {
		t.Fatalf("without a profile got %q, want Setup", got)
	}

	m = NewModel(Options{Deps: env.Deps, Profile: profile, SkipWelcome: true})
	if got := activeTitle(m); got != "Home" {
		t.Fatalf("without a plan got %q, want Home", got)
	}

	if err := env.Deps.Session.CreatePlan(context.Background(), "Photosynthesis"); err != nil {
		t.Fatalf("create plan: %v", err)
	}
	m = NewModel(Options{Deps: env.Deps, Profile: profile, SkipWelcome: true})
	if got := activeTitle(m); got != "Photosynthesis" {
		t.Fatalf("with a plan got %q, want the study screen", got)
	}
}

func TestWelcomeComesFirst(t *testing.T) {
	env := screentest.New(t)
	m := NewModel(Options{Deps: env.Deps})
	if got := activeTitle(m); got != "" {
		t.Fatalf("welcome screen should have no title, got %q", got)
	}

	_, cmd := m.Update(screentest.Key('x'))
	if cmd == nil {
		t.Fatal("any key should leave the welcome screen")
	}
	replace, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatal("expected ReplaceScreenMsg")
	}
	if got := replace.Screen.Title(); got != "Setup" {
		t.Fatalf("next screen = %q, want Setup", got)
	}
}

func TestViewShowsHeaderAndHints(t *testing.T) {
	env := screentest.New(t)
	m := sized(NewModel(Options{
		Deps:        env.Deps,
		Profile:     &store.Profile{AssistantName: "Bilge", UserName: "Ada"},
		SkipWelcome: true,
	}))

	content := m.render()
	for _, want := range []string{"studybuddy", "Your AI Assistant: Bilge", "Hi Ada"} {
		if !strings.Contains(content, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestEventsReachActiveScreen(t *testing.T) {
	env := screentest.New(t)
	m := NewModel(Options{Deps: env.Deps, SkipWelcome: true})

	if _, cmd := m.Update(session.Event{Kind: session.StateChanged}); cmd == nil {
		t.Fatal("the app should keep listening for events")
	}
}

func TestToggleThemeSavesProfile(t *testing.T) {
	theme.Use("dark")
	t.Cleanup(func() { theme.Use("dark") })

	env := screentest.New(t)
	ctx := context.Background()
	if err := env.Deps.Profiles.Save(ctx, store.Profile{AssistantName: "Bilge", UserName: "Ada", Theme: "dark"}); err != nil {
		t.Fatal(err)
	}

	m := NewModel(Options{Deps: env.Deps, SkipWelcome: true})
	_, cmd := m.Update(screentest.Ctrl('t'))
	if cmd == nil {
		t.Fatal("expected a save command")
	}
	if got := theme.Current(); got != "light" {
		t.Fatalf("theme = %q, want light", got)
	}

	msg, ok := cmd().(themeSavedMsg)
	if !ok {
		t.Fatal("expected themeSavedMsg")
	}
	if msg.Err != nil {
		t.Fatalf("save theme: %v", msg.Err)
	}

	p, err := env.Deps.Profiles.Get(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if p.Theme != "light" || !strings.EqualFold(p.UserName, "Ada") {
		t.Fatalf("unexpected profile after toggle: %+v", p)
	}
}

func TestEscAtRootDoesNothing(t *testing.T) {
	env := screentest.New(t)
	m := NewModel(Options{
		Deps:        env.Deps,
		Profile:     &store.Profile{AssistantName: "Bilge", UserName: "Ada"},
		SkipWelcome: true,
	})
	if _, cmd := m.Update(screentest.Special(tea.KeyEscape)); cmd != nil {
		t.Fatal("esc on the root screen should not produce a command")
	}
}
