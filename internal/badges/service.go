package badges

import (
	"context"

	"github.com/abhisek/studybuddy/internal/logger"
	"github.com/abhisek/studybuddy/internal/store"
)

// Service keeps the earned badge set for the active learner and records
// each new award in the event log.
type Service struct {
	eventRepo store.EventRepo
	log       *logger.Logger

	earned Set
}

// NewService creates a badge service with no badges earned.
func NewService(eventRepo store.EventRepo, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{eventRepo: eventRepo, log: log, earned: make(Set)}
}

// Earned returns a copy of the earned set.
func (s *Service) Earned() Set {
	return s.earned.Union(nil)
}

// Restore replaces the earned set, e.g. from a saved snapshot.
func (s *Service) Restore(earned Set) {
	s.earned = earned.Union(nil)
}

// Reset clears the earned set.
func (s *Service) Reset() {
	s.earned = make(Set)
}

// Update recomputes badges and persists any newly earned ones.
func (s *Service) Update(ctx context.Context, sessionID, userKey string, p Progress, t Triggers) []ID {
	next, newly := Recompute(s.earned, p, t)
	s.earned = next
	for _, id := range newly {
		s.persist(ctx, sessionID, userKey, id)
	}
	return newly
}

func (s *Service) persist(ctx context.Context, sessionID, userKey string, id ID) {
	if s.eventRepo == nil {
		return
	}
	err := s.eventRepo.AppendBadgeAward(ctx, store.BadgeAwardEventData{
		SessionID: sessionID,
		UserKey:   userKey,
		BadgeID:   string(id),
	})
	if err != nil {
		s.log.Warn("badge award not recorded", "badge", string(id), "error", err)
	}
}
