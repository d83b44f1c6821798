// Package screentest builds screen dependencies backed by a mock provider
// and an in-memory store, and canned provider responses for screen tests.
package screentest

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studybuddy/internal/llm"
	"github.com/abhisek/studybuddy/internal/locale"
	"github.com/abhisek/studybuddy/internal/logger"
	"github.com/abhisek/studybuddy/internal/screens/deps"
	"github.com/abhisek/studybuddy/internal/session"
	"github.com/abhisek/studybuddy/internal/store"
)

// Env is a ready-to-use screen environment.
type Env struct {
	Deps  deps.Deps
	Mock  *llm.MockProvider
	Store *store.Store
}

// New opens an in-memory store and wires an orchestrator to a mock
// provider loaded with responses. Images are disabled.
func New(t *testing.T, responses ...llm.MockResponse) *Env {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	st, err := store.Open(dsn)
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	mock := llm.NewMockProvider(responses...)
	cat := locale.New("en")
	cfg := session.DefaultConfig()
	cfg.Images = false

	orch := session.New(session.Options{
		Provider:  mock,
		Snapshots: st.SnapshotRepo(),
		Events:    st.EventRepo(),
		Catalog:   cat,
		Logger:    logger.Nop(),
		Rand:      rand.New(rand.NewPCG(1, 2)),
		Config:    cfg,
	})
	orch.SetProfile(store.Profile{AssistantName: "Bilge", UserName: "Ada"})

	return &Env{
		Deps: deps.Deps{
			Session:  orch,
			Catalog:  cat,
			Profiles: st.ProfileRepo(),
			Events:   st.EventRepo(),
			Logger:   logger.Nop(),
		},
		Mock:  mock,
		Store: st,
	}
}

// Plan is a structured plan response.
func Plan(subTopics ...string) llm.MockResponse {
	b, _ := json.Marshal(map[string]any{"plan": subTopics})
	return llm.MockResponse{Content: b}
}

// Explanation is a structured sub-topic explanation without an image.
func Explanation(text string) llm.MockResponse {
	b, _ := json.Marshal(map[string]any{"explanation": text, "imagePrompt": ""})
	return llm.MockResponse{Content: b}
}

// Text is a plain or streamed reply.
func Text(text string) llm.MockResponse {
	return llm.MockResponse{Content: json.RawMessage(text)}
}

// Quiz is a quiz of n questions whose correct answer is always option 0.
func Quiz(n int) llm.MockResponse {
	type item struct {
		Question           string   `json:"question"`
		Options            []string `json:"options"`
		CorrectAnswerIndex int      `json:"correctAnswerIndex"`
	}
	items := make([]item, n)
	for i := range items {
		items[i] = item{
			Question: fmt.Sprintf("Question %d?", i+1),
			Options:  []string{"right", "wrong", "also wrong", "nope"},
		}
	}
	b, _ := json.Marshal(map[string]any{"quiz": items})
	return llm.MockResponse{Content: b}
}

// Key builds a key press for a printable rune.
func Key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// Special builds a key press for a named key such as tea.KeyEnter.
func Special(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// Ctrl builds a ctrl+letter key press.
func Ctrl(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Mod: tea.ModCtrl}
}

// Type feeds s to update one rune at a time.
func Type(update func(tea.Msg), s string) {
	for _, r := range s {
		update(Key(r))
	}
}

// Drain runs cmd and every command it leads to, feeding each message to
// update. Messages for which skip returns true are not delivered.
func Drain(cmd tea.Cmd, update func(tea.Msg) tea.Cmd, skip func(tea.Msg) bool) {
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		msg := c()
		if batch, ok := msg.(tea.BatchMsg); ok {
			queue = append(queue, batch...)
			continue
		}
		if msg == nil || (skip != nil && skip(msg)) {
			continue
		}
		queue = append(queue, update(msg))
	}
}
