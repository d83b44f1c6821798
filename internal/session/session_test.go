package session

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand/v2"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/studybuddy/internal/badges"
	"github.com/abhisek/studybuddy/internal/export"
	"github.com/abhisek/studybuddy/internal/llm"
	"github.com/abhisek/studybuddy/internal/locale"
	"github.com/abhisek/studybuddy/internal/quiz"
	"github.com/abhisek/studybuddy/internal/store"
	"github.com/abhisek/studybuddy/internal/transcript"
)

// memSnapshots is an in-memory store.SnapshotRepo.
type memSnapshots struct {
	mu      sync.Mutex
	snaps   map[string]store.Snapshot
	deletes int
	saveErr error
}

func newMemSnapshots() *memSnapshots {
	return &memSnapshots{snaps: make(map[string]store.Snapshot)}
}

func (m *memSnapshots) Save(_ context.Context, snap *store.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.snaps[snap.UserKey] = *snap
	return nil
}

func (m *memSnapshots) Latest(_ context.Context, userKey string) (*store.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.snaps[userKey]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (m *memSnapshots) Delete(_ context.Context, userKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.snaps, userKey)
	m.deletes++
	return nil
}

func (m *memSnapshots) get(userKey string) (store.Snapshot, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.snaps[userKey]
	return s, ok
}

type fakeSpeech struct {
	mu      sync.Mutex
	current int64
	stops   int
}

func (f *fakeSpeech) Toggle(_ context.Context, id int64, _ string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.current == id {
		f.current = 0
		return false
	}
	f.current = id
	return true
}

func (f *fakeSpeech) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.current = 0
	f.stops++
}

func (f *fakeSpeech) Current() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.current
}

type fakeExporter struct {
	notes []export.Notes
	err   error
}

func (f *fakeExporter) Export(_ context.Context, n export.Notes) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.notes = append(f.notes, n)
	return "/tmp/" + export.FileName(n.FilePrefix, n.Topic), nil
}

type fixture struct {
	o      *Orchestrator
	mock   *llm.MockProvider
	snaps  *memSnapshots
	speech *fakeSpeech
	exp    *fakeExporter
	cat    *locale.Catalog
}

func newFixture(t *testing.T, responses ...llm.MockResponse) *fixture {
	t.Helper()
	f := &fixture{
		mock:   llm.NewMockProvider(responses...),
		snaps:  newMemSnapshots(),
		speech: &fakeSpeech{},
		exp:    &fakeExporter{},
		cat:    locale.New("en"),
	}
	cfg := DefaultConfig()
	cfg.Images = false
	f.o = New(Options{
		Provider:  f.mock,
		Snapshots: f.snaps,
		Speech:    f.speech,
		Exporter:  f.exp,
		Catalog:   f.cat,
		Rand:      rand.New(rand.NewPCG(1, 2)),
		Config:    cfg,
	})
	f.o.SetProfile(store.Profile{AssistantName: "Bilge", UserName: "Ada"})
	return f
}

const userKey = "Bilge|Ada"

func planJSON(subs ...string) llm.MockResponse {
	b, _ := json.Marshal(planResponse{Plan: subs})
	return llm.MockResponse{Content: b}
}

func explanationJSON(text string) llm.MockResponse {
	b, _ := json.Marshal(explanationResponse{Explanation: text, ImagePrompt: "a leaf in sunlight"})
	return llm.MockResponse{Content: b}
}

func withPlan(t *testing.T, subs ...string) *fixture {
	t.Helper()
	f := newFixture(t, planJSON(subs...))
	require.NoError(t, f.o.CreatePlan(t.Context(), "Photosynthesis"))
	return f
}

func lastEntry(v View) transcript.Entry {
	return v.Entries[len(v.Entries)-1]
}

func TestCreatePlan(t *testing.T) {
	f := withPlan(t, "Light", " light ", "Calvin Cycle", "", "Chlorophyll")

	v := f.o.View()
	require.True(t, v.HasPlan())
	assert.Equal(t, "Photosynthesis", v.Plan.MainTopic)
	assert.Equal(t, []string{"Light", "Calvin Cycle", "Chlorophyll"}, v.Plan.SubTopics())
	assert.Equal(t, Idle, v.Activity)
	assert.Equal(t, 0, v.Completed)
	assert.False(t, v.QuizAvailable)
	assert.False(t, v.CanChallenge)

	require.Len(t, v.Entries, 1)
	assert.Equal(t, transcript.RoleSystem, v.Entries[0].Role)
	assert.Equal(t, f.cat.T(locale.PlanReady, "Ada", "Bilge"), v.Entries[0].Content)

	req := f.mock.Requests()[0]
	assert.Equal(t, PlanSchema, req.Schema)
	assert.Contains(t, req.System, "Bilge")
	assert.Contains(t, req.Messages[0].Content, "Photosynthesis")

	snap, ok := f.snaps.get(userKey)
	require.True(t, ok)
	assert.Equal(t, store.CurrentSnapshotVersion, snap.Data.Version)
	assert.Equal(t, "Photosynthesis", snap.Data.Plan.MainTopic)
	assert.False(t, snap.Timestamp.IsZero())
}

func TestCreatePlanValidation(t *testing.T) {
	f := newFixture(t)
	assert.ErrorIs(t, f.o.CreatePlan(t.Context(), "   "), ErrEmptyInput)
	assert.Equal(t, 0, f.mock.CallCount())
}

func TestCreatePlanTruncatesLongPlans(t *testing.T) {
	f := withPlan(t, "a", "b", "c", "d", "e", "f", "g", "h", "i")
	assert.Equal(t, DefaultConfig().MaxSubTopics, f.o.View().Plan.Len())
}

func TestCreatePlanFailure(t *testing.T) {
	f := newFixture(t, llm.MockResponse{Err: errors.New("boom")})

	err := f.o.CreatePlan(t.Context(), "Photosynthesis")
	require.Error(t, err)

	v := f.o.View()
	assert.False(t, v.HasPlan())
	assert.Equal(t, Idle, v.Activity)
	require.Len(t, v.Entries, 1)
	assert.Equal(t, f.cat.T(locale.PlanFailed), v.Entries[0].Content)
}

func TestCreatePlanEmptyListFails(t *testing.T) {
	f := newFixture(t, planJSON())
	require.Error(t, f.o.CreatePlan(t.Context(), "Photosynthesis"))
	assert.False(t, f.o.View().HasPlan())
}

func TestCreatePlanDiscardsPreviousSession(t *testing.T) {
	f := withPlan(t, "Light", "Calvin Cycle")
	f.mock.AddResponse(explanationJSON("Light drives it."))
	require.NoError(t, f.o.SelectSubTopic(t.Context(), "Light"))
	require.True(t, f.o.View().Badges.Has(badges.FirstStep))

	f.mock.AddResponse(planJSON("Cells", "DNA"))
	require.NoError(t, f.o.CreatePlan(t.Context(), "Biology"))

	v := f.o.View()
	assert.Equal(t, "Biology", v.Plan.MainTopic)
	assert.Equal(t, 0, v.Completed)
	assert.Equal(t, 0, v.Badges.Len())
	assert.Empty(t, v.ActiveSubTopic)
	require.Len(t, v.Entries, 1)
	assert.GreaterOrEqual(t, f.snaps.deletes, 2)
}

func TestSelectSubTopic(t *testing.T) {
	f := withPlan(t, "Light", "Calvin Cycle", "Chlorophyll")
	f.mock.AddResponse(explanationJSON("**Light** drives it."))

	require.NoError(t, f.o.SelectSubTopic(t.Context(), "Light"))

	v := f.o.View()
	assert.Equal(t, "Light", v.ActiveSubTopic)
	assert.Equal(t, 1, v.Completed)
	assert.True(t, v.CanChallenge)
	require.Len(t, v.Entries, 1)
	e := v.Entries[0]
	assert.Equal(t, transcript.RoleAssistant, e.Role)
	assert.Equal(t, "**Light** drives it.", e.Content)
	assert.Equal(t, "Light", e.SubTopic)
	assert.True(t, e.TopicExplanation)
	assert.False(t, e.Pending)

	assert.True(t, v.Badges.Has(badges.FirstStep))
	assert.True(t, v.Steps[1].Unlocked)
	assert.False(t, v.Steps[2].Unlocked)

	snap, _ := f.snaps.get(userKey)
	assert.Equal(t, []string{"Light"}, snap.Data.Completed)
	assert.Contains(t, snap.Data.Badges, string(badges.FirstStep))
}

func TestSelectSubTopicLocked(t *testing.T) {
	f := withPlan(t, "Light", "Calvin Cycle")
	calls := f.mock.CallCount()

	err := f.o.SelectSubTopic(t.Context(), "Calvin Cycle")
	assert.ErrorIs(t, err, ErrLocked)
	assert.ErrorIs(t, f.o.SelectSubTopic(t.Context(), "Nope"), ErrLocked)
	assert.Equal(t, calls, f.mock.CallCount())
	assert.Len(t, f.o.View().Entries, 1)
}

func TestSelectSubTopicWithoutPlan(t *testing.T) {
	f := newFixture(t)
	assert.ErrorIs(t, f.o.SelectSubTopic(t.Context(), "Light"), ErrNoPlan)
}

func TestSelectSubTopicFailure(t *testing.T) {
	f := withPlan(t, "Light", "Calvin Cycle")
	f.mock.AddResponse(llm.MockResponse{Err: &llm.ErrProviderUnavailable{}})

	require.Error(t, f.o.SelectSubTopic(t.Context(), "Light"))

	v := f.o.View()
	assert.Equal(t, 0, v.Completed)
	require.Len(t, v.Entries, 1)
	assert.Equal(t, f.cat.T(locale.ExplanationFailed), v.Entries[0].Content)
	assert.False(t, v.Entries[0].Pending)
	assert.Equal(t, Idle, v.Activity)
}

func TestSelectSubTopicAttachesIllustration(t *testing.T) {
	f := withPlan(t, "Light")
	f.o.cfg.Images = true
	f.mock.AddResponse(explanationJSON("Light."))
	f.mock.AddResponse(llm.MockResponse{Image: &llm.Image{MIMEType: "image/png", Data: []byte{1, 2, 3}}})

	require.NoError(t, f.o.SelectSubTopic(t.Context(), "Light"))

	e := f.o.View().Entries[0]
	require.Len(t, e.Images, 1)
	assert.Equal(t, "image/png", e.Images[0].MIMEType)
	require.Len(t, f.mock.ImageCalls, 1)
	assert.Equal(t, "a leaf in sunlight", f.mock.ImageCalls[0].Prompt)
}

func TestSelectSubTopicIllustrationFailureIsSilent(t *testing.T) {
	f := withPlan(t, "Light")
	f.o.cfg.Images = true
	f.mock.AddResponse(explanationJSON("Light."))
	f.mock.AddResponse(llm.MockResponse{Err: llm.ErrImageUnsupported})

	require.NoError(t, f.o.SelectSubTopic(t.Context(), "Light"))

	v := f.o.View()
	assert.Equal(t, "Light.", v.Entries[0].Content)
	assert.Empty(t, v.Entries[0].Images)
	assert.Equal(t, 1, v.Completed)
}

func TestAskQuestionStreamsReply(t *testing.T) {
	f := withPlan(t, "Light")
	f.mock.AddResponse(explanationJSON("Light explained."))
	require.NoError(t, f.o.SelectSubTopic(t.Context(), "Light"))

	f.mock.AddResponse(llm.MockResponse{Chunks: []string{"Chloro", "phyll ", "absorbs light."}})
	require.NoError(t, f.o.AskQuestion(t.Context(), "  Why green? "))

	v := f.o.View()
	require.Len(t, v.Entries, 3)
	assert.Equal(t, transcript.RoleUser, v.Entries[1].Role)
	assert.Equal(t, "Why green?", v.Entries[1].Content)
	assert.Equal(t, "Chlorophyll absorbs light.", lastEntry(v).Content)

	reqs := f.mock.Requests()
	prompt := reqs[len(reqs)-1].Messages[0].Content
	assert.Contains(t, prompt, "Light explained.")
	assert.Contains(t, prompt, "Photosynthesis")
	assert.Contains(t, prompt, "Why green?")
}

func TestAskQuestionGrowsReplyByPrefix(t *testing.T) {
	f := withPlan(t, "Light")
	f.mock.AddResponse(explanationJSON("Light explained."))
	require.NoError(t, f.o.SelectSubTopic(t.Context(), "Light"))

	var seen []string
	f.mock.AddResponse(llm.MockResponse{
		Chunks: []string{"Mer", "haba", " dünya"},
		AfterChunk: func(int) {
			v := f.o.View()
			e := lastEntry(v)
			assert.Equal(t, transcript.RoleAssistant, e.Role)
			assert.Equal(t, Answering, v.Activity)
			seen = append(seen, e.Content)
		},
	})
	require.NoError(t, f.o.AskQuestion(t.Context(), "Selam?"))

	require.Equal(t, []string{"Mer", "Merhaba", "Merhaba dünya"}, seen)
	for i := 1; i < len(seen); i++ {
		assert.True(t, strings.HasPrefix(seen[i], seen[i-1]), "%q does not extend %q", seen[i], seen[i-1])
	}
	v := f.o.View()
	assert.Equal(t, "Merhaba dünya", lastEntry(v).Content)
	assert.False(t, lastEntry(v).Pending)
	assert.Equal(t, Idle, v.Activity)
}

func TestAskQuestionValidation(t *testing.T) {
	f := withPlan(t, "Light")
	calls := f.mock.CallCount()

	assert.ErrorIs(t, f.o.AskQuestion(t.Context(), " \n "), ErrEmptyInput)
	assert.ErrorIs(t, f.o.AskQuestion(t.Context(), "Why?"), ErrNoActiveTopic)
	assert.Equal(t, calls, f.mock.CallCount())

	g := newFixture(t)
	assert.ErrorIs(t, g.o.AskQuestion(t.Context(), "hi"), ErrNoPlan)
}

func TestAskQuestionFailure(t *testing.T) {
	f := withPlan(t, "Light")
	f.mock.AddResponse(explanationJSON("Light explained."))
	require.NoError(t, f.o.SelectSubTopic(t.Context(), "Light"))
	f.mock.AddResponse(llm.MockResponse{Err: errors.New("network down")})

	require.Error(t, f.o.AskQuestion(t.Context(), "Why?"))

	v := f.o.View()
	e := lastEntry(v)
	assert.Equal(t, transcript.RoleAssistant, e.Role)
	assert.Equal(t, f.cat.T(locale.QuestionFailed), e.Content)
	assert.Equal(t, Idle, v.Activity)
}

func TestRequestDeeper(t *testing.T) {
	f := withPlan(t, "Light")
	f.mock.AddResponse(explanationJSON("Light explained."))
	require.NoError(t, f.o.SelectSubTopic(t.Context(), "Light"))
	id := f.o.View().Entries[0].ID

	f.mock.AddResponse(llm.MockResponse{Chunks: []string{"Like ", "a solar panel."}})
	require.NoError(t, f.o.RequestDeeper(t.Context(), id, Analogy))

	v := f.o.View()
	require.Len(t, v.Entries, 3)
	assert.Equal(t, f.cat.T(locale.DeeperAnalogy, f.cat.T(locale.DeeperSubjectTopic, "Light")), v.Entries[1].Content)
	assert.Equal(t, "Like a solar panel.", v.Entries[2].Content)
	assert.Equal(t, "Light", v.Entries[2].SubTopic)

	reqs := f.mock.Requests()
	prompt := reqs[len(reqs)-1].Messages[0].Content
	assert.Contains(t, prompt, "Light explained.")
	assert.Contains(t, prompt, "analogy")
}

func TestRequestDeeperValidation(t *testing.T) {
	f := withPlan(t, "Light")
	planEntry := f.o.View().Entries[0].ID

	assert.ErrorIs(t, f.o.RequestDeeper(t.Context(), planEntry, Summarize), ErrUnknownEntry)
	assert.ErrorIs(t, f.o.RequestDeeper(t.Context(), 999, Summarize), ErrUnknownEntry)
	assert.ErrorIs(t, f.o.RequestDeeper(t.Context(), planEntry, DeeperKind("poem")), ErrUnknownDeeper)
}

func TestRequestDeeperFailure(t *testing.T) {
	f := withPlan(t, "Light")
	f.mock.AddResponse(explanationJSON("Light explained."))
	require.NoError(t, f.o.SelectSubTopic(t.Context(), "Light"))
	id := f.o.View().Entries[0].ID

	f.mock.AddResponse(llm.MockResponse{Err: errors.New("boom")})
	require.Error(t, f.o.RequestDeeper(t.Context(), id, Example))
	assert.Equal(t, f.cat.T(locale.DeeperFailed), lastEntry(f.o.View()).Content)
}

func TestChallenge(t *testing.T) {
	f := withPlan(t, "Light", "Calvin Cycle")
	assert.ErrorIs(t, f.o.Challenge(t.Context()), ErrNothingCompleted)

	f.mock.AddResponse(explanationJSON("Light explained."))
	require.NoError(t, f.o.SelectSubTopic(t.Context(), "Light"))

	f.mock.AddResponse(llm.MockResponse{Content: json.RawMessage("  What powers the light reactions?\n")})
	require.NoError(t, f.o.Challenge(t.Context()))

	v := f.o.View()
	require.Len(t, v.Entries, 3)
	assert.Equal(t, transcript.RoleSystem, v.Entries[1].Role)
	assert.Equal(t, f.cat.T(locale.ChallengeIntro, "Ada", "Light"), v.Entries[1].Content)
	assert.Equal(t, "What powers the light reactions?", v.Entries[2].Content)
	assert.True(t, v.Badges.Has(badges.ChallengeMaster))

	snap, _ := f.snaps.get(userKey)
	assert.True(t, snap.Data.ChallengeUsed)
}

func TestChallengeFailureGrantsNothing(t *testing.T) {
	f := withPlan(t, "Light", "Calvin Cycle")
	f.mock.AddResponse(explanationJSON("Light explained."))
	require.NoError(t, f.o.SelectSubTopic(t.Context(), "Light"))

	f.mock.AddResponse(llm.MockResponse{Err: errors.New("boom")})
	require.Error(t, f.o.Challenge(t.Context()))

	v := f.o.View()
	assert.False(t, v.Badges.Has(badges.ChallengeMaster))
	assert.Equal(t, f.cat.T(locale.ChallengeFailed), lastEntry(v).Content)
}

func TestUnlockAll(t *testing.T) {
	f := withPlan(t, "Light", "Calvin Cycle", "Chlorophyll")

	require.NoError(t, f.o.UnlockAll(t.Context()))
	v := f.o.View()
	assert.True(t, v.AllUnlocked)
	assert.True(t, v.QuizAvailable)
	for _, s := range v.Steps {
		assert.True(t, s.Unlocked, s.Name)
	}
	assert.Equal(t, f.cat.T(locale.UnlockedAll, "Ada"), lastEntry(v).Content)

	f.mock.AddResponse(explanationJSON("Chlorophyll explained."))
	require.NoError(t, f.o.SelectSubTopic(t.Context(), "Chlorophyll"))

	g := newFixture(t)
	assert.ErrorIs(t, g.o.UnlockAll(t.Context()), ErrNoPlan)
}

func TestCompletingPlanEarnsBadges(t *testing.T) {
	f := withPlan(t, "Light", "Calvin Cycle")
	f.mock.AddResponse(explanationJSON("One."))
	f.mock.AddResponse(explanationJSON("Two."))
	require.NoError(t, f.o.SelectSubTopic(t.Context(), "Light"))

	v := f.o.View()
	assert.True(t, v.Badges.Has(badges.Halfway))
	assert.False(t, v.QuizAvailable)

	require.NoError(t, f.o.SelectSubTopic(t.Context(), "Calvin Cycle"))
	v = f.o.View()
	assert.True(t, v.Badges.Has(badges.Master))
	assert.True(t, v.QuizAvailable)
}

func TestReturnToMenuClearsEverything(t *testing.T) {
	f := withPlan(t, "Light")
	f.mock.AddResponse(explanationJSON("Light explained."))
	require.NoError(t, f.o.SelectSubTopic(t.Context(), "Light"))

	f.o.ReturnToMenu(t.Context())

	v := f.o.View()
	assert.False(t, v.HasPlan())
	assert.Empty(t, v.Entries)
	assert.Equal(t, 0, v.Badges.Len())
	assert.Empty(t, v.ActiveSubTopic)
	_, ok := f.snaps.get(userKey)
	assert.False(t, ok)
	assert.Equal(t, "Ada", v.UserName)
}

func TestResumeRestoresSnapshot(t *testing.T) {
	f := withPlan(t, "Light", "Calvin Cycle")
	f.mock.AddResponse(explanationJSON("Light explained."))
	require.NoError(t, f.o.SelectSubTopic(t.Context(), "Light"))
	require.NoError(t, f.o.UnlockAll(t.Context()))

	g := newFixture(t)
	g.snaps = f.snaps
	g.o.snapshots = f.snaps

	ok, err := g.o.Resume(t.Context())
	require.NoError(t, err)
	require.True(t, ok)

	v := g.o.View()
	assert.Equal(t, "Photosynthesis", v.Plan.MainTopic)
	assert.Equal(t, 1, v.Completed)
	assert.True(t, v.AllUnlocked)
	assert.True(t, v.Badges.Has(badges.FirstStep))
	require.Len(t, v.Entries, 1)
	assert.Equal(t, g.cat.T(locale.WelcomeBack, "Ada", "Photosynthesis"), v.Entries[0].Content)
}

func TestResumeIsPerUser(t *testing.T) {
	f := withPlan(t, "Light")

	f.o.SetProfile(store.Profile{AssistantName: "Bilge", UserName: "Grace"})
	ok, err := f.o.Resume(t.Context())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestResumeIgnoresUnknownVersion(t *testing.T) {
	f := newFixture(t)
	f.snaps.snaps[userKey] = store.Snapshot{
		UserKey: userKey,
		Data: store.SnapshotData{
			Version: 99,
			Plan:    &store.PlanData{MainTopic: "X", SubTopics: []string{"a"}},
		},
	}
	ok, err := f.o.Resume(t.Context())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, f.o.View().HasPlan())
}

func TestToggleSpeech(t *testing.T) {
	f := withPlan(t, "Light")
	id := f.o.View().Entries[0].ID

	playing, err := f.o.ToggleSpeech(t.Context(), id)
	require.NoError(t, err)
	assert.True(t, playing)
	assert.Equal(t, id, f.o.View().Speaking)

	playing, err = f.o.ToggleSpeech(t.Context(), id)
	require.NoError(t, err)
	assert.False(t, playing)
	assert.Zero(t, f.o.View().Speaking)

	_, err = f.o.ToggleSpeech(t.Context(), 12345)
	assert.ErrorIs(t, err, ErrUnknownEntry)
}

func TestActionsStopSpeech(t *testing.T) {
	f := withPlan(t, "Light")
	f.mock.AddResponse(explanationJSON("Light explained."))
	require.NoError(t, f.o.SelectSubTopic(t.Context(), "Light"))
	id := f.o.View().Entries[0].ID
	_, err := f.o.ToggleSpeech(t.Context(), id)
	require.NoError(t, err)

	f.mock.AddResponse(llm.MockResponse{Content: json.RawMessage("ok")})
	require.NoError(t, f.o.AskQuestion(t.Context(), "hi"))
	assert.Zero(t, f.speech.Current())
}

func TestExportNotes(t *testing.T) {
	f := withPlan(t, "Light")
	_, err := f.o.ExportNotes(t.Context())
	assert.ErrorIs(t, err, ErrNothingToExport)

	f.mock.AddResponse(explanationJSON("Light explained."))
	require.NoError(t, f.o.SelectSubTopic(t.Context(), "Light"))
	f.mock.AddResponse(llm.MockResponse{Content: json.RawMessage("More.")})
	require.NoError(t, f.o.AskQuestion(t.Context(), "More?"))

	path, err := f.o.ExportNotes(t.Context())
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, ".html"), path)

	require.Len(t, f.exp.notes, 1)
	n := f.exp.notes[0]
	assert.Equal(t, f.cat.T(locale.ExportTitle, "Photosynthesis"), n.Title)
	assert.Equal(t, "study-notes", n.FilePrefix)
	require.Len(t, n.Sections, 2)
	assert.Equal(t, "Light", n.Sections[0].Heading)
	assert.Equal(t, "", n.Sections[1].Heading)
	assert.Equal(t, export.Progress{Completed: 1, Total: 1, Badges: 3}, n.Progress)
}

func TestBusyRejectsSecondAction(t *testing.T) {
	f := withPlan(t, "Light")
	f.o.mu.Lock()
	f.o.activity = Answering
	f.o.mu.Unlock()

	assert.ErrorIs(t, f.o.AskQuestion(t.Context(), "hi"), ErrBusy)
	assert.ErrorIs(t, f.o.SelectSubTopic(t.Context(), "Light"), ErrBusy)
	assert.ErrorIs(t, f.o.CreatePlan(t.Context(), "Other"), ErrBusy)
	assert.ErrorIs(t, f.o.Challenge(t.Context()), ErrBusy)
}

// gatedProvider blocks Generate until released, then returns a plan.
type gatedProvider struct {
	*llm.MockProvider
	started chan struct{}
	release chan struct{}
}

func (g *gatedProvider) Generate(ctx context.Context, req llm.Request) (*llm.Response, error) {
	close(g.started)
	select {
	case <-g.release:
	case <-ctx.Done():
	}
	return g.MockProvider.Generate(ctx, req)
}

func TestReturnToMenuDiscardsInFlightPlan(t *testing.T) {
	gp := &gatedProvider{
		MockProvider: llm.NewMockProvider(planJSON("Light")),
		started:      make(chan struct{}),
		release:      make(chan struct{}),
	}
	snaps := newMemSnapshots()
	o := New(Options{Provider: gp, Snapshots: snaps, Catalog: locale.New("en")})
	o.SetProfile(store.Profile{AssistantName: "Bilge", UserName: "Ada"})

	done := make(chan error, 1)
	go func() { done <- o.CreatePlan(context.Background(), "Photosynthesis") }()

	<-gp.started
	assert.Equal(t, Planning, o.View().Activity)
	o.ReturnToMenu(context.Background())
	close(gp.release)

	require.ErrorIs(t, <-done, context.Canceled)
	v := o.View()
	assert.False(t, v.HasPlan())
	assert.Empty(t, v.Entries)
	assert.Equal(t, Idle, v.Activity)
}

func quizResponse(n int) llm.MockResponse {
	type item struct {
		Question           string   `json:"question"`
		Options            []string `json:"options"`
		CorrectAnswerIndex int      `json:"correctAnswerIndex"`
	}
	var items []item
	for i := 0; i < n; i++ {
		items = append(items, item{Question: "Q?", Options: []string{"a", "b", "c", "d"}, CorrectAnswerIndex: 0})
	}
	b, _ := json.Marshal(map[string]any{"quiz": items})
	return llm.MockResponse{Content: b}
}

func TestQuizLifecycle(t *testing.T) {
	f := withPlan(t, "Light")
	assert.ErrorIs(t, f.o.StartQuiz(t.Context()), ErrQuizLocked)

	require.NoError(t, f.o.UnlockAll(t.Context()))
	f.mock.AddResponse(quizResponse(2))
	require.NoError(t, f.o.StartQuiz(t.Context()))
	assert.Equal(t, quiz.InProgress, f.o.Quiz().Phase())

	require.NoError(t, f.o.SelectAnswer(0, 0))
	require.True(t, f.o.NavigateQuiz(1))
	require.NoError(t, f.o.SelectAnswer(1, 0))

	res, err := f.o.FinishQuiz(t.Context())
	require.NoError(t, err)
	assert.True(t, res.Perfect)
	assert.True(t, f.o.View().Badges.Has(badges.QuizChampion))

	snap, _ := f.snaps.get(userKey)
	assert.True(t, snap.Data.QuizPerfect)

	f.o.CloseResults()
	assert.Equal(t, quiz.Inactive, f.o.Quiz().Phase())
}

func TestStartQuizFailure(t *testing.T) {
	f := withPlan(t, "Light")
	require.NoError(t, f.o.UnlockAll(t.Context()))
	f.mock.AddResponse(llm.MockResponse{Err: errors.New("boom")})

	err := f.o.StartQuiz(t.Context())
	assert.ErrorIs(t, err, quiz.ErrQuizUnavailable)
	assert.Equal(t, quiz.Inactive, f.o.Quiz().Phase())
	assert.Equal(t, f.cat.T(locale.QuizFailed), lastEntry(f.o.View()).Content)
}

func TestSnapshotSaveFailureDoesNotFailAction(t *testing.T) {
	f := newFixture(t, planJSON("Light"))
	f.snaps.saveErr = errors.New("disk full")
	require.NoError(t, f.o.CreatePlan(t.Context(), "Photosynthesis"))
	assert.True(t, f.o.View().HasPlan())
}

func TestEventsAreDelivered(t *testing.T) {
	f := withPlan(t, "Light")
	f.mock.AddResponse(explanationJSON("Light explained."))
	require.NoError(t, f.o.SelectSubTopic(t.Context(), "Light"))

	var sawBadges bool
	for {
		select {
		case e := <-f.o.Events():
			if e.Kind == BadgesEarned {
				sawBadges = true
				assert.Contains(t, e.Badges, badges.FirstStep)
			}
			continue
		default:
		}
		break
	}
	assert.True(t, sawBadges)
}
