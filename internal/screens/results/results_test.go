package results

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/studybuddy/internal/quiz"
	"github.com/abhisek/studybuddy/internal/router"
	"github.com/abhisek/studybuddy/internal/screens/screentest"
)

func TestResultsShowScoreAndCorrections(t *testing.T) {
	env := screentest.New(t,
		screentest.Plan("Light"),
		screentest.Quiz(2),
		screentest.Text("Remediation."),
		screentest.Text("You mixed up **light** reactions."),
	)
	ctx := context.Background()
	orch := env.Deps.Session
	require.NoError(t, orch.CreatePlan(ctx, "Photosynthesis"))
	require.NoError(t, orch.UnlockAll(ctx))
	require.NoError(t, orch.StartQuiz(ctx))
	require.NoError(t, orch.SelectAnswer(0, 1))
	orch.Quiz().Wait()
	require.True(t, orch.NavigateQuiz(1))
	require.NoError(t, orch.SelectAnswer(1, 0))
	_, err := orch.FinishQuiz(ctx)
	require.NoError(t, err)

	s := New(env.Deps)
	assert.Nil(t, s.Init())
	view := s.View(100, 40)
	assert.Contains(t, view, "1 of 2 correct!")
	assert.Contains(t, view, "Review of your mistakes")
	assert.Contains(t, view, "mixed up")

	_, cmd := s.Update(screentest.Special(tea.KeyEnter))
	require.NotNil(t, cmd)
	_, ok := cmd().(router.PopScreenMsg)
	assert.True(t, ok)
	assert.Equal(t, quiz.Inactive, orch.Quiz().Phase())
}

func TestResultsPerfect(t *testing.T) {
	env := screentest.New(t, screentest.Plan("Light"), screentest.Quiz(1))
	ctx := context.Background()
	orch := env.Deps.Session
	require.NoError(t, orch.CreatePlan(ctx, "Photosynthesis"))
	require.NoError(t, orch.UnlockAll(ctx))
	require.NoError(t, orch.StartQuiz(ctx))
	require.NoError(t, orch.SelectAnswer(0, 0))
	_, err := orch.FinishQuiz(ctx)
	require.NoError(t, err)

	view := New(env.Deps).View(100, 40)
	assert.Contains(t, view, "1 of 1 correct!")
	assert.Contains(t, view, "Great job, Ada!")
}
