// Package study is the plan screen: the learning path on the left and the
// conversation with the assistant on the right.
package study

import (
	"context"
	"errors"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studybuddy/internal/badges"
	"github.com/abhisek/studybuddy/internal/locale"
	"github.com/abhisek/studybuddy/internal/router"
	"github.com/abhisek/studybuddy/internal/screen"
	"github.com/abhisek/studybuddy/internal/screens/deps"
	"github.com/abhisek/studybuddy/internal/screens/progressview"
	"github.com/abhisek/studybuddy/internal/screens/quizview"
	"github.com/abhisek/studybuddy/internal/session"
	"github.com/abhisek/studybuddy/internal/transcript"
	"github.com/abhisek/studybuddy/internal/ui/components"
	"github.com/abhisek/studybuddy/internal/ui/layout"
	"github.com/abhisek/studybuddy/internal/ui/markdown"
)

type focus int

const (
	focusPath focus = iota
	focusChat
	focusInput
)

const maxQuestionLen = 500

// StudyScreen implements screen.Screen for an active plan.
type StudyScreen struct {
	d  deps.Deps
	md *markdown.Renderer
	v  session.View

	focus      focus
	pathCursor int

	// selected is the assistant entry targeted by deeper and speech keys.
	selected int64
	scroll   int
	follow   bool

	input components.TextInput

	notice    string
	noticeErr bool

	confirmMenu bool
	listening   bool
	quizLoading bool

	frame   int
	ticking bool
}

var _ screen.Screen = (*StudyScreen)(nil)
var _ screen.KeyHintProvider = (*StudyScreen)(nil)
var _ screen.BackHandler = (*StudyScreen)(nil)

// New creates the plan screen for the orchestrator's current plan.
func New(d deps.Deps) *StudyScreen {
	s := &StudyScreen{
		d:      d,
		md:     markdown.NewRenderer(),
		follow: true,
		input:  components.NewTextInput(d.T(locale.QuestionHint), maxQuestionLen),
	}
	s.input.Blur()
	s.refresh()
	for _, st := range s.v.Steps {
		if st.Next {
			s.pathCursor = st.Index
			break
		}
	}
	return s
}

func (s *StudyScreen) Init() tea.Cmd {
	return s.ensureTicking()
}

func (s *StudyScreen) Title() string {
	return s.v.Plan.MainTopic
}

// HandlesBack makes Esc ask before leaving the plan.
func (s *StudyScreen) HandlesBack() bool {
	return true
}

func (s *StudyScreen) refresh() {
	s.v = s.d.Session.View()
	if s.selected != 0 {
		if _, ok := s.entryIndex(s.selected); !ok {
			s.selected = 0
		}
	}
}

func (s *StudyScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case session.Event:
		return s.handleEvent(msg)

	case actionDoneMsg:
		s.refresh()
		s.handleActionDone(msg)
		return s, nil

	case quizStartedMsg:
		return s.handleQuizStarted(msg)

	case voiceDoneMsg:
		s.listening = false
		if msg.Err != nil {
			s.d.Log().Debug("voice input stopped", "error", msg.Err)
			return s, nil
		}
		if text := strings.TrimSpace(msg.Text); text != "" {
			s.input.SetValue(text)
			return s, s.setFocus(focusInput)
		}
		return s, nil

	case spinnerTickMsg:
		s.frame++
		if s.needsSpinner() {
			return s, spinnerTick()
		}
		s.ticking = false
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.focus == focusInput {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *StudyScreen) handleEvent(ev session.Event) (screen.Screen, tea.Cmd) {
	s.refresh()
	if ev.Kind == session.BadgesEarned {
		var names []string
		for _, id := range ev.Badges {
			names = append(names, s.d.T(locale.BadgeEarned, id.Icon(), id.Name(s.d.Catalog)))
		}
		s.setNotice(strings.Join(names, "  "), false)
	}
	if !s.v.HasPlan() && s.d.Menu != nil {
		// The plan was discarded elsewhere; there is nothing left to show.
		scr := s.d.Menu()
		return s, func() tea.Msg { return router.ResetScreenMsg{Screen: scr} }
	}
	return s, s.ensureTicking()
}

func (s *StudyScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.confirmMenu {
		switch key {
		case "y", "Y", "enter":
			s.confirmMenu = false
			return s, s.returnToMenu()
		case "n", "N", "esc":
			s.confirmMenu = false
		}
		return s, nil
	}

	switch key {
	case "esc":
		if s.focus == focusInput && s.input.Value() != "" {
			s.input.Reset()
			return s, nil
		}
		s.confirmMenu = true
		return s, nil
	case "tab":
		return s, s.setFocus((s.focus + 1) % 3)
	case "shift+tab":
		return s, s.setFocus((s.focus + 2) % 3)
	case "pgup":
		s.scrollBy(-10)
		return s, nil
	case "pgdown":
		s.scrollBy(10)
		return s, nil
	case "ctrl+o":
		return s, s.run(actUnlock, s.d.Session.UnlockAll)
	case "ctrl+g":
		return s, s.run(actChallenge, s.d.Session.Challenge)
	case "ctrl+q":
		return s, s.startQuiz()
	case "ctrl+e":
		return s, s.export()
	case "ctrl+r":
		return s, s.toggleVoice()
	case "ctrl+s":
		s.d.Session.StopSpeech()
		return s, nil
	case "ctrl+p":
		scr := progressview.New(s.d)
		return s, func() tea.Msg { return router.PushScreenMsg{Screen: scr} }
	}

	switch s.focus {
	case focusPath:
		return s.handlePathKey(key)
	case focusChat:
		return s.handleChatKey(key)
	default:
		if key == "enter" {
			return s, s.ask()
		}
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
}

func (s *StudyScreen) handlePathKey(key string) (screen.Screen, tea.Cmd) {
	switch key {
	case "up", "k":
		if s.pathCursor > 0 {
			s.pathCursor--
		}
	case "down", "j":
		if s.pathCursor < len(s.v.Steps)-1 {
			s.pathCursor++
		}
	case "enter":
		if s.pathCursor < len(s.v.Steps) {
			name := s.v.Steps[s.pathCursor].Name
			s.follow = true
			return s, s.run(actSelect, func(ctx context.Context) error {
				return s.d.Session.SelectSubTopic(ctx, name)
			})
		}
	}
	return s, nil
}

func (s *StudyScreen) handleChatKey(key string) (screen.Screen, tea.Cmd) {
	switch key {
	case "up", "k":
		s.moveSelection(-1)
	case "down", "j":
		s.moveSelection(1)
	case "s":
		return s, s.deeper(session.Summarize)
	case "a":
		return s, s.deeper(session.Analogy)
	case "e":
		return s, s.deeper(session.Example)
	case "r":
		id := s.selected
		if id == 0 {
			return s, nil
		}
		return s, s.run(actSpeak, func(ctx context.Context) error {
			_, err := s.d.Session.ToggleSpeech(ctx, id)
			return err
		})
	}
	return s, nil
}

func (s *StudyScreen) setFocus(f focus) tea.Cmd {
	s.focus = f
	if f == focusChat {
		s.follow = false
		if s.selected == 0 {
			if ids := s.selectable(); len(ids) > 0 {
				s.selected = ids[len(ids)-1]
			}
		}
	} else {
		s.follow = true
	}
	if f == focusInput {
		return s.input.Focus()
	}
	s.input.Blur()
	return nil
}

// selectable lists the entries that deeper and speech keys can target.
func (s *StudyScreen) selectable() []int64 {
	var ids []int64
	for _, e := range s.v.Entries {
		if e.Role == transcript.RoleAssistant && !e.Pending && strings.TrimSpace(e.Content) != "" {
			ids = append(ids, e.ID)
		}
	}
	return ids
}

func (s *StudyScreen) moveSelection(delta int) {
	ids := s.selectable()
	if len(ids) == 0 {
		return
	}
	pos := len(ids) - 1
	for i, id := range ids {
		if id == s.selected {
			pos = i
			break
		}
	}
	pos = max(0, min(len(ids)-1, pos+delta))
	s.selected = ids[pos]
	s.follow = false
}

func (s *StudyScreen) entryIndex(id int64) (int, bool) {
	for i, e := range s.v.Entries {
		if e.ID == id {
			return i, true
		}
	}
	return 0, false
}

func (s *StudyScreen) scrollBy(n int) {
	s.scroll += n
	if s.scroll < 0 {
		s.scroll = 0
	}
	s.follow = false
}

func (s *StudyScreen) ask() tea.Cmd {
	question := s.input.Trimmed()
	if question == "" {
		return nil
	}
	if s.v.Busy() {
		s.setNotice(s.d.T(locale.Busy), true)
		return nil
	}
	s.input.Reset()
	s.follow = true
	return s.run(actAsk, func(ctx context.Context) error {
		return s.d.Session.AskQuestion(ctx, question)
	})
}

func (s *StudyScreen) deeper(kind session.DeeperKind) tea.Cmd {
	id := s.selected
	if id == 0 {
		return nil
	}
	s.follow = true
	return s.run(actDeeper, func(ctx context.Context) error {
		return s.d.Session.RequestDeeper(ctx, id, kind)
	})
}

func (s *StudyScreen) export() tea.Cmd {
	orch := s.d.Session
	return func() tea.Msg {
		path, err := orch.ExportNotes(context.Background())
		return actionDoneMsg{Action: actExport, Path: path, Err: err}
	}
}

func (s *StudyScreen) startQuiz() tea.Cmd {
	if s.quizLoading {
		return nil
	}
	if !s.v.QuizAvailable {
		s.setNotice(s.d.T(locale.QuizLocked), true)
		return nil
	}
	s.quizLoading = true
	s.notice = ""
	orch := s.d.Session
	return tea.Batch(
		func() tea.Msg { return quizStartedMsg{Err: orch.StartQuiz(context.Background())} },
		s.ensureTicking(),
	)
}

func (s *StudyScreen) handleQuizStarted(msg quizStartedMsg) (screen.Screen, tea.Cmd) {
	s.quizLoading = false
	s.refresh()
	if msg.Err != nil {
		if !errors.Is(msg.Err, context.Canceled) {
			s.setNotice(s.d.T(locale.QuizFailed), true)
		}
		return s, nil
	}
	scr := quizview.New(s.d)
	return s, func() tea.Msg { return router.PushScreenMsg{Screen: scr} }
}

func (s *StudyScreen) toggleVoice() tea.Cmd {
	if s.d.Voice == nil {
		s.setNotice(s.d.T(locale.VoiceUnavailable), true)
		return nil
	}
	if s.listening {
		voice := s.d.Voice
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			text, err := voice.Stop(ctx)
			return voiceDoneMsg{Text: text, Err: err}
		}
	}
	s.d.Session.StopSpeech()
	s.d.Voice.Start(context.Background())
	s.listening = true
	return s.ensureTicking()
}

func (s *StudyScreen) returnToMenu() tea.Cmd {
	if s.listening && s.d.Voice != nil {
		_, _ = s.d.Voice.Stop(context.Background())
		s.listening = false
	}
	s.d.Session.ReturnToMenu(context.Background())
	if s.d.Menu == nil {
		return nil
	}
	scr := s.d.Menu()
	return func() tea.Msg { return router.ResetScreenMsg{Screen: scr} }
}

// run executes fn off the UI goroutine and reports back with actionDoneMsg.
func (s *StudyScreen) run(a action, fn func(context.Context) error) tea.Cmd {
	s.notice = ""
	return tea.Batch(
		func() tea.Msg { return actionDoneMsg{Action: a, Err: fn(context.Background())} },
		s.ensureTicking(),
	)
}

func (s *StudyScreen) handleActionDone(msg actionDoneMsg) {
	if msg.Action == actExport {
		switch {
		case msg.Err == nil:
			s.setNotice(s.d.T(locale.ExportDone, msg.Path), false)
		case errors.Is(msg.Err, session.ErrNothingToExport), errors.Is(msg.Err, session.ErrNoPlan):
			s.setNotice(s.d.T(locale.NothingToExport), true)
		default:
			s.d.Log().Error("export notes failed", "error", msg.Err)
			s.setNotice(s.d.T(locale.ExportFailed), true)
		}
		return
	}
	if msg.Err == nil {
		return
	}
	switch {
	case errors.Is(msg.Err, session.ErrBusy):
		s.setNotice(s.d.T(locale.Busy), true)
	case errors.Is(msg.Err, session.ErrLocked):
		s.setNotice(s.d.T(locale.Locked), true)
	case errors.Is(msg.Err, session.ErrNothingCompleted):
		s.setNotice(s.d.T(locale.NeedsCompletion), true)
	case errors.Is(msg.Err, session.ErrNoActiveTopic):
		s.setNotice(s.d.T(locale.SelectTopicFirst), true)
	default:
		// Gateway failures already show up in the conversation.
		s.d.Log().Debug("study action failed", "action", int(msg.Action), "error", msg.Err)
	}
}

func (s *StudyScreen) setNotice(text string, isErr bool) {
	s.notice, s.noticeErr = text, isErr
}

func (s *StudyScreen) needsSpinner() bool {
	return s.v.Busy() || s.quizLoading || s.listening
}

func (s *StudyScreen) ensureTicking() tea.Cmd {
	if s.ticking {
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

func (s *StudyScreen) KeyHints() []layout.KeyHint {
	if s.confirmMenu {
		return []layout.KeyHint{
			{Key: "Y", Description: s.d.T(locale.HintYes)},
			{Key: "N", Description: s.d.T(locale.HintNo)},
		}
	}
	hints := []layout.KeyHint{{Key: "Tab", Description: s.d.T(locale.HintFocus)}}
	switch s.focus {
	case focusPath:
		hints = append(hints,
			layout.KeyHint{Key: "↑↓", Description: s.d.T(locale.HintNavigate)},
			layout.KeyHint{Key: "Enter", Description: s.d.T(locale.HintSelect)},
		)
	case focusChat:
		hints = append(hints,
			layout.KeyHint{Key: "S/A/E", Description: s.d.T(locale.HintDeeper)},
			layout.KeyHint{Key: "R", Description: s.d.T(locale.Speak)},
		)
	case focusInput:
		hints = append(hints,
			layout.KeyHint{Key: "Enter", Description: s.d.T(locale.HintAsk)},
			layout.KeyHint{Key: "^R", Description: s.d.T(locale.HintVoice)},
		)
	}
	hints = append(hints,
		layout.KeyHint{Key: "^E", Description: s.d.T(locale.HintExport)},
		layout.KeyHint{Key: "^P", Description: s.d.T(locale.ProgressTitle)},
		layout.KeyHint{Key: "Esc", Description: s.d.T(locale.HintMenu)},
	)
	return hints
}

// badgeIcons lists the icons of earned badges in display order.
func badgeIcons(set badges.Set) string {
	var icons []string
	for _, id := range badges.All() {
		if set.Has(id) {
			icons = append(icons, id.Icon())
		}
	}
	return strings.Join(icons, " ")
}
