package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// Profile holds the display names and UI preferences of the local user.
type Profile struct {
	AssistantName string
	UserName      string
	Theme         string
	UpdatedAt     time.Time
}

// UserKey identifies whose snapshot is active. It is derived from the
// display names so that renaming starts a fresh plan.
func (p Profile) UserKey() string {
	if p.AssistantName == "" && p.UserName == "" {
		return "default"
	}
	return p.AssistantName + "|" + p.UserName
}

// ProfileRepo manages the single local profile row.
type ProfileRepo interface {
	// Get returns the profile, or nil if setup has not run yet.
	Get(ctx context.Context) (*Profile, error)

	// Save upserts the profile.
	Save(ctx context.Context, p Profile) error

	// ClearNames removes the display names and keeps preferences.
	ClearNames(ctx context.Context) error
}

// PlanData is the persisted form of a study plan.
type PlanData struct {
	MainTopic string   `json:"mainTopic"`
	SubTopics []string `json:"subTopics"`
}

// SnapshotData captures the learner state that survives restarts.
type SnapshotData struct {
	Version       int       `json:"version"`
	Plan          *PlanData `json:"plan,omitempty"`
	Completed     []string  `json:"completed,omitempty"`
	AllUnlocked   bool      `json:"allUnlocked,omitempty"`
	Badges        []string  `json:"badges,omitempty"`
	ChallengeUsed bool      `json:"challengeUsed,omitempty"`
	QuizPerfect   bool      `json:"quizPerfect,omitempty"`
}

// CurrentSnapshotVersion is written by Save and checked on restore.
const CurrentSnapshotVersion = 1

// Snapshot represents a point-in-time capture of learner state.
type Snapshot struct {
	UserKey   string
	Sequence  int64
	Timestamp time.Time
	Data      SnapshotData
}

// SnapshotRepo manages learner state snapshots, one per user key.
type SnapshotRepo interface {
	// Save stores the snapshot, replacing any previous one for its user key.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the snapshot for userKey, or nil if none exists.
	Latest(ctx context.Context, userKey string) (*Snapshot, error)

	// Delete removes the snapshot for userKey. Missing rows are not an error.
	Delete(ctx context.Context, userKey string) error
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	SessionID    string
	Provider     string
	Model        string
	Purpose      string
	Kind         string // "complete", "stream" or "image"
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEventRecord is a stored LLM request event.
type LLMRequestEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsageStats aggregates LLM usage per purpose.
type LLMUsageStats struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMModelUsage aggregates LLM usage per model for cost estimates.
type LLMModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// BadgeAwardEventData records a badge earned during a session.
type BadgeAwardEventData struct {
	SessionID string
	UserKey   string
	BadgeID   string
}

// BadgeAwardRecord is a stored badge award.
type BadgeAwardRecord struct {
	Sequence  int64
	Timestamp time.Time
	BadgeAwardEventData
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error)

	// GetLLMEvent returns a single event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEventRecord, error)

	// LLMUsageByPurpose aggregates calls and tokens per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStats, error)

	// LLMUsageByModel aggregates calls and tokens per model.
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)

	// AppendBadgeAward records a newly earned badge.
	AppendBadgeAward(ctx context.Context, data BadgeAwardEventData) error

	// QueryBadgeAwards returns badge awards, newest first.
	QueryBadgeAwards(ctx context.Context, opts QueryOpts) ([]BadgeAwardRecord, error)
}
