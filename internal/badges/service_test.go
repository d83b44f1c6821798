package badges

import (
	"context"
	"errors"
	"testing"

	"github.com/abhisek/studybuddy/internal/store"
)

// mockEventRepo implements store.EventRepo for badge tests.
type mockEventRepo struct {
	awards []store.BadgeAwardEventData
	err    error
}

func (m *mockEventRepo) AppendLLMRequest(_ context.Context, _ store.LLMRequestEventData) error {
	return nil
}
func (m *mockEventRepo) QueryLLMEvents(_ context.Context, _ store.QueryOpts) ([]store.LLMRequestEventRecord, error) {
	return nil, nil
}
func (m *mockEventRepo) GetLLMEvent(_ context.Context, _ int) (*store.LLMRequestEventRecord, error) {
	return nil, nil
}
func (m *mockEventRepo) LLMUsageByPurpose(_ context.Context) ([]store.LLMUsageStats, error) {
	return nil, nil
}
func (m *mockEventRepo) LLMUsageByModel(_ context.Context) ([]store.LLMModelUsage, error) {
	return nil, nil
}
func (m *mockEventRepo) AppendBadgeAward(_ context.Context, data store.BadgeAwardEventData) error {
	if m.err != nil {
		return m.err
	}
	m.awards = append(m.awards, data)
	return nil
}
func (m *mockEventRepo) QueryBadgeAwards(_ context.Context, _ store.QueryOpts) ([]store.BadgeAwardRecord, error) {
	return nil, nil
}

func TestServiceUpdatePersistsNewAwardsOnce(t *testing.T) {
	repo := &mockEventRepo{}
	svc := NewService(repo, nil)
	ctx := context.Background()

	newly := svc.Update(ctx, "sess-1", "Bilge|Ada", Progress{1, 5}, Triggers{})
	if len(newly) != 1 || newly[0] != FirstStep {
		t.Fatalf("newly = %v", newly)
	}

	newly = svc.Update(ctx, "sess-1", "Bilge|Ada", Progress{1, 5}, Triggers{ChallengeUsed: true})
	if len(newly) != 1 || newly[0] != ChallengeMaster {
		t.Fatalf("newly = %v", newly)
	}

	if len(repo.awards) != 2 {
		t.Fatalf("awards = %d, want 2", len(repo.awards))
	}
	if repo.awards[0].BadgeID != "first_step" || repo.awards[0].UserKey != "Bilge|Ada" || repo.awards[0].SessionID != "sess-1" {
		t.Fatalf("unexpected award %+v", repo.awards[0])
	}
}

func TestServiceRestoreAndReset(t *testing.T) {
	svc := NewService(nil, nil)
	svc.Restore(NewSet(Halfway))

	newly := svc.Update(context.Background(), "s", "u", Progress{3, 6}, Triggers{})
	for _, id := range newly {
		if id == Halfway {
			t.Fatal("restored badge reported as new")
		}
	}

	earned := svc.Earned()
	earned[QuizChampion] = true
	if svc.Earned().Has(QuizChampion) {
		t.Fatal("Earned must return a copy")
	}

	svc.Reset()
	if svc.Earned().Len() != 0 {
		t.Fatal("reset should clear badges")
	}
}

func TestServiceToleratesRepoErrors(t *testing.T) {
	repo := &mockEventRepo{err: errors.New("disk full")}
	svc := NewService(repo, nil)

	newly := svc.Update(context.Background(), "s", "u", Progress{5, 5}, Triggers{})
	if len(newly) != 4 {
		t.Fatalf("newly = %v", newly)
	}
	if !svc.Earned().Has(Master) {
		t.Fatal("badge should be earned even when the award log fails")
	}
}
