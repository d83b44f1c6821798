package quizview

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/studybuddy/internal/llm"
	"github.com/abhisek/studybuddy/internal/quiz"
	"github.com/abhisek/studybuddy/internal/router"
	"github.com/abhisek/studybuddy/internal/screens/screentest"
)

func startQuiz(t *testing.T, n int, extra ...llm.MockResponse) (*screentest.Env, *QuizScreen) {
	t.Helper()
	responses := append([]llm.MockResponse{screentest.Plan("Light"), screentest.Quiz(n)}, extra...)
	env := screentest.New(t, responses...)
	ctx := context.Background()
	require.NoError(t, env.Deps.Session.CreatePlan(ctx, "Photosynthesis"))
	require.NoError(t, env.Deps.Session.UnlockAll(ctx))
	require.NoError(t, env.Deps.Session.StartQuiz(ctx))
	return env, New(env.Deps)
}

// drive sends msg and runs the resulting commands, returning router messages.
func drive(s *QuizScreen, msg tea.Msg) []tea.Msg {
	var routed []tea.Msg
	_, cmd := s.Update(msg)
	screentest.Drain(cmd, func(m tea.Msg) tea.Cmd {
		_, next := s.Update(m)
		return next
	}, func(m tea.Msg) bool {
		switch m.(type) {
		case spinnerTickMsg:
			return true
		case router.ReplaceScreenMsg, router.PopScreenMsg:
			routed = append(routed, m)
			return true
		}
		return false
	})
	return routed
}

func TestQuizPerfectRunReplacesWithResults(t *testing.T) {
	env, s := startQuiz(t, 2)

	assert.Contains(t, s.View(100, 30), "Question 1 / 2")

	// Forward is blocked until the question is answered.
	drive(s, screentest.Key('l'))
	assert.Equal(t, 0, s.q.Current)

	drive(s, screentest.Key('1'))
	require.True(t, s.q.Answered(0))
	assert.Contains(t, s.View(100, 30), "✓")

	drive(s, screentest.Special(tea.KeyEnter))
	require.Equal(t, 1, s.q.Current)

	drive(s, screentest.Special(tea.KeyEnter))
	require.True(t, s.q.Answered(1))

	routed := drive(s, screentest.Special(tea.KeyEnter))
	require.Len(t, routed, 1)
	replace, ok := routed[0].(router.ReplaceScreenMsg)
	require.True(t, ok)
	assert.Equal(t, "Quiz Results", replace.Screen.Title())

	qv := env.Deps.Session.Quiz().View()
	assert.Equal(t, quiz.Finished, qv.Phase)
	assert.True(t, qv.Result.Perfect)
}

func TestQuizWrongAnswerShowsRemediation(t *testing.T) {
	env, s := startQuiz(t, 1, screentest.Text("The sun is the energy source."))

	drive(s, screentest.Key('j'))
	drive(s, screentest.Special(tea.KeyEnter))
	require.Equal(t, 1, s.q.Answers[0])

	env.Deps.Session.Quiz().Wait()
	drive(s, spinnerTickMsg{})
	assert.Equal(t, quiz.Done, s.q.Tasks[0].State)
	assert.Contains(t, s.View(100, 30), "energy source")
}

func TestQuizEscExits(t *testing.T) {
	env, s := startQuiz(t, 2)
	require.True(t, s.HandlesBack())

	routed := drive(s, screentest.Special(tea.KeyEscape))
	require.Len(t, routed, 1)
	_, ok := routed[0].(router.PopScreenMsg)
	assert.True(t, ok)
	assert.Equal(t, quiz.Inactive, env.Deps.Session.Quiz().Phase())
}
