package session

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/studybuddy/internal/badges"
	"github.com/abhisek/studybuddy/internal/locale"
	"github.com/abhisek/studybuddy/internal/progress"
	"github.com/abhisek/studybuddy/internal/store"
	"github.com/abhisek/studybuddy/internal/transcript"
)

// snapshotLocked captures the state that survives restarts. Callers hold o.mu.
func (o *Orchestrator) snapshotLocked() store.SnapshotData {
	data := store.SnapshotData{
		Version:       store.CurrentSnapshotVersion,
		Badges:        o.badges.Earned().Strings(),
		ChallengeUsed: o.triggers.ChallengeUsed,
		QuizPerfect:   o.triggers.QuizPerfect,
	}
	if o.tracker != nil {
		plan := o.tracker.Plan()
		data.Plan = &store.PlanData{MainTopic: plan.MainTopic, SubTopics: plan.SubTopics()}
		data.Completed = o.tracker.Completed()
		data.AllUnlocked = o.tracker.AllUnlocked()
	}
	return data
}

// saveLocked persists the snapshot. Failures are logged; the session keeps
// running on the in-memory state. Callers hold o.mu.
func (o *Orchestrator) saveLocked(ctx context.Context) {
	if o.snapshots == nil {
		return
	}
	snap := &store.Snapshot{
		UserKey:   o.profile.UserKey(),
		Timestamp: time.Now(),
		Data:      o.snapshotLocked(),
	}
	if err := o.snapshots.Save(context.WithoutCancel(ctx), snap); err != nil {
		o.log.Warn("failed to save snapshot", "error", err)
	}
}

func (o *Orchestrator) deleteSnapshot(ctx context.Context, userKey string) {
	if o.snapshots == nil {
		return
	}
	if err := o.snapshots.Delete(context.WithoutCancel(ctx), userKey); err != nil {
		o.log.Warn("failed to delete snapshot", "error", err)
	}
}

// Resume restores the saved plan, progress and badges of the current
// profile. It reports whether a plan was restored; a restored session opens
// with a welcome-back message.
func (o *Orchestrator) Resume(ctx context.Context) (bool, error) {
	if o.snapshots == nil {
		return false, nil
	}

	o.mu.Lock()
	userKey := o.profile.UserKey()
	user := o.profile.UserName
	o.mu.Unlock()

	snap, err := o.snapshots.Latest(ctx, userKey)
	if err != nil {
		return false, fmt.Errorf("load snapshot: %w", err)
	}
	if snap == nil || snap.Data.Plan == nil {
		return false, nil
	}
	if snap.Data.Version != store.CurrentSnapshotVersion {
		o.log.Warn("ignoring snapshot with unknown version", "version", snap.Data.Version)
		return false, nil
	}

	plan, err := progress.NewPlan(snap.Data.Plan.MainTopic, snap.Data.Plan.SubTopics)
	if err != nil {
		o.log.Warn("ignoring snapshot with invalid plan", "error", err)
		return false, nil
	}
	tracker := progress.NewTracker(plan)
	tracker.Restore(snap.Data.Completed, snap.Data.AllUnlocked)

	o.mu.Lock()
	if o.activity != Idle {
		o.mu.Unlock()
		return false, ErrBusy
	}
	o.resetLocked()
	o.tracker = tracker
	o.badges.Restore(badges.ParseSet(snap.Data.Badges))
	o.triggers = badges.Triggers{
		ChallengeUsed: snap.Data.ChallengeUsed,
		QuizPerfect:   snap.Data.QuizPerfect,
	}
	o.mu.Unlock()

	o.transcript.Reset()
	o.transcript.Append(transcript.Entry{
		Role:    transcript.RoleSystem,
		Content: o.cat.T(locale.WelcomeBack, user, plan.MainTopic),
	})
	o.log.Info("session resumed", "topic", plan.MainTopic, "completed", tracker.CompletedCount())

	o.emit(Event{Kind: TranscriptChanged})
	o.emit(Event{Kind: StateChanged})
	return true, nil
}
